package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"

	"puppet-launcher/internal/common"
	"puppet-launcher/internal/config"
	"puppet-launcher/internal/launch"
	"puppet-launcher/internal/process"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Spawn the language server",
	Long: `Build the language-server launch spec from the configuration and spawn it,
forwarding stdin/stdout/stderr so the launcher can front a STDIO editor session.

Examples:
  puppet-launcher run --server-path ./puppet-languageserver
  puppet-launcher run --server-path ./puppet-languageserver --workspace ~/control-repo
  puppet-launcher run --server-path ./puppet-languageserver --config custom.yaml`,
	RunE: runRunCmd,
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Spawn the debug server",
	Long: `Build the debug-server launch spec from the configuration and spawn it.
The debug transport always binds IPv4 loopback regardless of settings.

Examples:
  puppet-launcher debug --server-path ./puppet-debugserver`,
	RunE: runDebugCmd,
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	spec, err := resolveSpec("language")
	if err != nil {
		return err
	}
	return spawn(spec, "puppet-languageserver")
}

func runDebugCmd(cmd *cobra.Command, args []string) error {
	spec, err := resolveSpec("debug")
	if err != nil {
		return err
	}
	return spawn(spec, "puppet-debugserver")
}

// resolveSpec loads the configuration and builds the requested launch spec.
func resolveSpec(mode string) (launch.Spec, error) {
	if serverPath == "" {
		return launch.Spec{}, fmt.Errorf("--%s is required", FlagServerPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return launch.Spec{}, err
	}

	builder := launch.NewBuilder(cfg)

	switch mode {
	case "debug":
		return builder.DebugServerSpec(serverPath), nil
	default:
		return builder.LanguageServerSpec(serverPath, workspaceRoot()), nil
	}
}

// workspaceRoot resolves the --workspace flag, falling back to the working
// directory, through the same workspace-folder record the editor boundary
// uses.
func workspaceRoot() string {
	dir := workspace
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	folder := launch.FolderForPath(abs, filepath.Base(abs))
	return launch.WorkspaceRoot([]protocol.WorkspaceFolder{folder})
}

func spawn(spec launch.Spec, name string) error {
	runner := process.NewRunner()

	proc, err := runner.Start(spec, name)
	if err != nil {
		return err
	}

	proc.ForwardStdio()

	if err := proc.Wait(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	common.CLILogger.Debug("%s finished", name)
	return nil
}

func init() {
	runCmd.Flags().StringVarP(&configPath, FlagConfig, "c", "", "Configuration file path (optional)")
	runCmd.Flags().StringVarP(&serverPath, FlagServerPath, "s", "", "Path to the puppet-languageserver entry point")
	runCmd.Flags().StringVarP(&workspace, FlagWorkspace, "w", "", "Workspace root forwarded to the server (defaults to the working directory)")

	debugCmd.Flags().StringVarP(&configPath, FlagConfig, "c", "", "Configuration file path (optional)")
	debugCmd.Flags().StringVarP(&serverPath, FlagServerPath, "s", "", "Path to the puppet-debugserver entry point")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(debugCmd)
}
