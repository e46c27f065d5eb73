package cmd

import (
	"fmt"
	"os"

	"pathlen/internal/record"
	"pathlen/internal/ui"
	"pathlen/internal/walker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	interactiveThreshold int
	interactiveUnit      string
)

// interactiveCmd represents the interactive command.
var interactiveCmd = &cobra.Command{
	Use:   "interactive [path]",
	Short: "Launch interactive TUI for path length scanning",
	Long: `Launch an interactive terminal UI to scan for over-length paths.

Watch progress in real time, browse the offending entries, and
export the results to CSV.

Controls:
  ↑/↓ or j/k    Navigate through results
  f             Cycle result filter
  e             Export results to CSV
  c/esc         Cancel a running scan
  q             Quit`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		unit, err := record.ParseUnit(interactiveUnit)
		exitOnError(err, "Invalid unit")

		// Create and run the Bubble Tea program
		p := tea.NewProgram(ui.New(getPathArg(args), interactiveThreshold, unit))
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running interactive mode: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)

	interactiveCmd.Flags().IntVarP(&interactiveThreshold, "threshold", "t", walker.DefaultThreshold,
		"Minimum path length to report")
	interactiveCmd.Flags().StringVarP(&interactiveUnit, "unit", "u", string(record.DefaultUnit),
		"Length unit: utf16, runes, bytes")
}
