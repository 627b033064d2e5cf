package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads and validates a launcher configuration file. An empty
// path falls back to DefaultConfigFile in the working directory, then to
// the per-user configuration under the home directory.
func LoadConfig(configPath string) (*LauncherConfig, error) {
	configPath = ResolveConfigPath(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", configPath, err)
	}

	var config LauncherConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", configPath, err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}

	return &config, nil
}

// ResolveConfigPath maps an empty path to DefaultConfigFile in the working
// directory, falling back to the per-user config when the working directory
// has none. Explicit paths pass through untouched.
func ResolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if _, err := os.Stat(DefaultConfigFile); os.IsNotExist(err) {
		return GetDefaultConfigPath()
	}
	return DefaultConfigFile
}

// SaveConfig writes a validated configuration to disk, creating the parent
// directory when needed.
func SaveConfig(config *LauncherConfig, configPath string) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if configPath == "" {
		configPath = DefaultConfigFile
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("cannot save invalid configuration: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file %s: %w", configPath, err)
	}

	return nil
}

func applyDefaults(config *LauncherConfig) {
	if config.Settings.InstallType == "" {
		config.Settings.InstallType = InstallTypeAgent
	}
	if config.Settings.EditorService.Protocol == "" {
		config.Settings.EditorService.Protocol = ProtocolSTDIO
	}
	if config.Settings.EditorService.Timeout == 0 {
		config.Settings.EditorService.Timeout = DefaultTimeout
	}
}
