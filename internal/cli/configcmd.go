package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"puppet-launcher/internal/common"
	"puppet-launcher/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the launcher configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default configuration targeting a system puppet-agent install
with the language server on STDIO.

Examples:
  puppet-launcher config init
  puppet-launcher config init --config custom.yaml
  puppet-launcher config init --force`,
	RunE: runConfigInitCmd,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load a configuration file and report whether it parses and validates.
Filesystem locations are not checked; a bad path only surfaces at spawn time.`,
	RunE: runConfigValidateCmd,
}

func runConfigInitCmd(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigFile
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file %s already exists, use --%s to overwrite", path, FlagForce)
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return err
	}

	common.CLILogger.Info("Wrote default configuration to %s", path)
	return nil
}

func runConfigValidateCmd(cmd *cobra.Command, args []string) error {
	path := config.ResolveConfigPath(configPath)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}

	common.CLILogger.Info("%s is valid: install type %s, protocol %s",
		path, cfg.Settings.InstallType, cfg.Settings.EditorService.Protocol)
	return nil
}

func init() {
	configCmd.PersistentFlags().StringVarP(&configPath, FlagConfig, "c", "", "Configuration file path (optional)")
	configInitCmd.Flags().BoolVarP(&force, FlagForce, "f", false, "Overwrite an existing configuration file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	rootCmd.AddCommand(configCmd)
}
