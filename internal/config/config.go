// Package config holds the user-facing settings and resolved toolchain
// locations the launcher turns into a process launch specification.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultConfigFile = "puppet-launcher.yaml"
)

const (
	DefaultTimeout    = 10
	DefaultTCPAddress = "127.0.0.1"
)

// InstallType is a closed variant of the supported toolchain install modes.
// Every switch over it carries a default returning an error so that adding
// a mode is caught at the dispatch sites.
type InstallType string

const (
	// InstallTypePDK is the self-contained install with its own bundled
	// ruby interpreter and gem directories.
	InstallTypePDK InstallType = "pdk"
	// InstallTypeAgent is a system-wide puppet-agent install relying on
	// the host ruby environment.
	InstallTypeAgent InstallType = "agent"
)

// Protocol selects the transport the language server is started with.
type Protocol string

const (
	ProtocolSTDIO Protocol = "stdio"
	ProtocolTCP   Protocol = "tcp"
)

// TCPSettings describes the listen endpoint for the TCP protocol.
type TCPSettings struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
	Port    int    `yaml:"port,omitempty" json:"port,omitempty"`
}

// PuppetSettings are forwarded to the server verbatim through the
// --puppet-settings argument. Empty fields are skipped individually.
type PuppetSettings struct {
	Confdir     string `yaml:"confdir,omitempty" json:"confdir,omitempty"`
	Environment string `yaml:"environment,omitempty" json:"environment,omitempty"`
	ModulePath  string `yaml:"module_path,omitempty" json:"module_path,omitempty"`
	Vardir      string `yaml:"vardir,omitempty" json:"vardir,omitempty"`
}

// EditorServiceSettings describes how the language server should be run.
type EditorServiceSettings struct {
	Protocol      Protocol       `yaml:"protocol" json:"protocol"`
	TCP           TCPSettings    `yaml:"tcp,omitempty" json:"tcp,omitempty"`
	Timeout       int            `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	DebugFilePath string         `yaml:"debug_file_path,omitempty" json:"debug_file_path,omitempty"`
	Puppet        PuppetSettings `yaml:"puppet,omitempty" json:"puppet,omitempty"`
}

// Settings is the user-facing configuration, immutable for the duration of
// one launch-spec build.
type Settings struct {
	InstallType   InstallType           `yaml:"install_type" json:"install_type"`
	EditorService EditorServiceSettings `yaml:"editor_service" json:"editor_service"`
}

// ConnectionConfig holds the resolved filesystem locations needed to run the
// server under each install mode. Fields are plain strings; an empty field
// means the location is not configured and the corresponding environment
// variable stays unset.
type ConnectionConfig struct {
	// Shared
	PuppetBaseDir string `yaml:"puppet_base_dir,omitempty" json:"puppet_base_dir,omitempty"`

	// PDK install locations
	PDKBinDir     string `yaml:"pdk_bin_dir,omitempty" json:"pdk_bin_dir,omitempty"`
	PDKRubyDir    string `yaml:"pdk_ruby_dir,omitempty" json:"pdk_ruby_dir,omitempty"`
	PDKRubyBinDir string `yaml:"pdk_ruby_bin_dir,omitempty" json:"pdk_ruby_bin_dir,omitempty"`
	PDKRubyLib    string `yaml:"pdk_ruby_lib,omitempty" json:"pdk_ruby_lib,omitempty"`
	PDKRubyVerDir string `yaml:"pdk_ruby_ver_dir,omitempty" json:"pdk_ruby_ver_dir,omitempty"`
	PDKGemDir     string `yaml:"pdk_gem_dir,omitempty" json:"pdk_gem_dir,omitempty"`
	PDKGemVerDir  string `yaml:"pdk_gem_ver_dir,omitempty" json:"pdk_gem_ver_dir,omitempty"`

	// System install locations
	RubyDir         string `yaml:"ruby_dir,omitempty" json:"ruby_dir,omitempty"`
	RubyLib         string `yaml:"ruby_lib,omitempty" json:"ruby_lib,omitempty"`
	EnvironmentPath string `yaml:"environment_path,omitempty" json:"environment_path,omitempty"`
	SSLCertFile     string `yaml:"ssl_cert_file,omitempty" json:"ssl_cert_file,omitempty"`
	SSLCertDir      string `yaml:"ssl_cert_dir,omitempty" json:"ssl_cert_dir,omitempty"`
}

// LauncherConfig is the root of the YAML configuration file.
type LauncherConfig struct {
	Settings   Settings         `yaml:"settings" json:"settings"`
	Connection ConnectionConfig `yaml:"connection" json:"connection"`
}

// DefaultConfig returns a configuration targeting a system puppet-agent
// install with the language server on STDIO.
func DefaultConfig() *LauncherConfig {
	return &LauncherConfig{
		Settings: Settings{
			InstallType: InstallTypeAgent,
			EditorService: EditorServiceSettings{
				Protocol: ProtocolSTDIO,
				Timeout:  DefaultTimeout,
			},
		},
		Connection: ConnectionConfig{},
	}
}

// Validate checks the fields a launch-spec build dispatches on. Filesystem
// locations are deliberately not checked; a bad path surfaces at spawn time.
func (c *LauncherConfig) Validate() error {
	switch c.Settings.InstallType {
	case InstallTypePDK, InstallTypeAgent:
	default:
		return fmt.Errorf("unknown install type: %q", c.Settings.InstallType)
	}

	switch c.Settings.EditorService.Protocol {
	case ProtocolSTDIO, ProtocolTCP:
	default:
		return fmt.Errorf("unknown protocol: %q", c.Settings.EditorService.Protocol)
	}

	if port := c.Settings.EditorService.TCP.Port; port < 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 0 and 65535", port)
	}

	if c.Settings.EditorService.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %d", c.Settings.EditorService.Timeout)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".puppet-launcher", DefaultConfigFile)
}
