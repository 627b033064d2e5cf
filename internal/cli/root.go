// Package cli wires the launcher's cobra command tree.
package cli

import (
	"github.com/spf13/cobra"
)

const (
	FlagConfig     = "config"
	FlagServerPath = "server-path"
	FlagWorkspace  = "workspace"
	FlagMode       = "mode"
	FlagJSON       = "json"
	FlagWatch      = "watch"
	FlagForce      = "force"
)

var (
	configPath string
	serverPath string
	workspace  string
	specMode   string
	formatJSON bool
	watchMode  bool
	force      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "puppet-launcher",
	Short: "Puppet Launcher - assembles and spawns the Puppet Editor Services servers",
	Long: `Puppet Launcher derives the command, argument vector, and sanitized
environment needed to run the Puppet Editor Services language server or debug
server, under either a PDK install or a system puppet-agent install, and can
spawn the resolved process directly.

QUICK START:
  puppet-launcher run --server-path ./puppet-languageserver     # Spawn the language server
  puppet-launcher spec                                          # Print the resolved launch spec
  puppet-launcher config init                                   # Write a default configuration

CONFIGURATION:
Settings live in a YAML file (default: puppet-launcher.yaml) describing the
install type, the editor-service protocol (stdio or tcp), forwarded puppet
settings, and the resolved toolchain locations for each install mode.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
