package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set by main.go via SetVersion.
var version = "dev"

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "pathlen",
	Short:   "A path length scanner for directory trees",
	Version: version,
	Long: `Pathlen walks a directory tree and reports every entry whose full
path length meets or exceeds a configurable threshold.

Long paths break archive tools, sync clients and Windows programs
limited to 260 characters. Use 'scan' for CI/scripts or 'interactive'
for a terminal UI experience.

Examples:
  pathlen scan                # Scan current directory
  pathlen scan /mnt/share     # Scan specific directory
  pathlen scan --threshold=200
  pathlen scan --format=json
  pathlen interactive         # Launch interactive TUI`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}
}
