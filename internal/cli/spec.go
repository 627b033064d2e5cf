package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"puppet-launcher/internal/common"
	"puppet-launcher/internal/config"
	"puppet-launcher/internal/launch"
)

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Print the resolved launch spec without spawning",
	Long: `Resolve the configuration into the launch specification — command,
argument vector, and composed child environment — and print it without
starting anything. Useful for inspecting what "run" or "debug" would spawn.

With --watch the spec is re-printed every time the configuration file changes.

Examples:
  puppet-launcher spec
  puppet-launcher spec --mode debug
  puppet-launcher spec --json
  puppet-launcher spec --watch`,
	RunE: runSpecCmd,
}

func runSpecCmd(cmd *cobra.Command, args []string) error {
	if specMode != "language" && specMode != "debug" {
		return fmt.Errorf("invalid --%s %q, expected language or debug", FlagMode, specMode)
	}

	entry := serverPath
	if entry == "" {
		entry = defaultEntryPoint(specMode)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if err := printSpec(cfg, entry); err != nil {
		return err
	}

	if !watchMode {
		return nil
	}

	path := config.ResolveConfigPath(configPath)

	watcher, err := config.NewWatcher(path, func(cfg *config.LauncherConfig, err error) {
		if err != nil {
			common.CLILogger.Error("Config reload failed: %v", err)
			return
		}
		if err := printSpec(cfg, entry); err != nil {
			common.CLILogger.Error("Failed to print spec: %v", err)
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	common.CLILogger.Info("Watching %s for changes, Ctrl-C to stop", path)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	return nil
}

func printSpec(cfg *config.LauncherConfig, entry string) error {
	builder := launch.NewBuilder(cfg)

	var spec launch.Spec
	if specMode == "debug" {
		spec = builder.DebugServerSpec(entry)
	} else {
		spec = builder.LanguageServerSpec(entry, workspaceRoot())
	}

	if formatJSON {
		data, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal spec: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to marshal spec: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func defaultEntryPoint(mode string) string {
	if mode == "debug" {
		return "puppet-debugserver"
	}
	return "puppet-languageserver"
}

func init() {
	specCmd.Flags().StringVarP(&configPath, FlagConfig, "c", "", "Configuration file path (optional)")
	specCmd.Flags().StringVarP(&serverPath, FlagServerPath, "s", "", "Server entry point placed as arg 0 (defaults per mode)")
	specCmd.Flags().StringVarP(&workspace, FlagWorkspace, "w", "", "Workspace root forwarded to the server")
	specCmd.Flags().StringVar(&specMode, FlagMode, "language", "Which server to resolve: language or debug")
	specCmd.Flags().BoolVar(&formatJSON, FlagJSON, false, "Output the spec as JSON instead of YAML")
	specCmd.Flags().BoolVar(&watchMode, FlagWatch, false, "Re-print the spec when the configuration file changes")

	rootCmd.AddCommand(specCmd)
}
