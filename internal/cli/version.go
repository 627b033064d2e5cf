package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"puppet-launcher/internal/version"
)

var versionJSON bool

type versionInfo struct {
	Version      string `json:"version"`
	GitCommit    string `json:"git_commit"`
	BuildDate    string `json:"build_date"`
	GoVersion    string `json:"go_version"`
	Platform     string `json:"platform"`
	Architecture string `json:"architecture"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long: `Display version information for Puppet Launcher.

Examples:
  puppet-launcher version
  puppet-launcher version --json`,
	RunE: runVersionCmd,
}

func runVersionCmd(cmd *cobra.Command, args []string) error {
	if versionJSON {
		info := versionInfo{
			Version:      version.Version,
			GitCommit:    version.GitCommit,
			BuildDate:    version.BuildDate,
			GoVersion:    runtime.Version(),
			Platform:     runtime.GOOS,
			Architecture: runtime.GOARCH,
		}
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version information: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(version.GetFullVersionInfo())
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, FlagJSON, false, "Output version information in JSON format")

	rootCmd.AddCommand(versionCmd)
}
