package cmd

import (
	"fmt"
	"os"
	"strings"

	"pathlen/internal/config"
	"pathlen/internal/filter"
	"pathlen/internal/output"
	"pathlen/internal/record"
	"pathlen/internal/session"
	"pathlen/internal/stats"
	"pathlen/internal/walker"

	"github.com/spf13/cobra"
)

// Flag variables for the scan command.
var (
	threshold    int
	unitName     string
	outputFormat string
	outputFile   string
	showAll      bool
	showStats    bool

	// Pattern flags.
	includePatterns []string
	excludePatterns []string
	noConfig        bool
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory tree for over-length paths",
	Long: `Scan a directory tree and report every entry whose full path length
meets or exceeds the threshold.

If no path is provided, scans the current directory.
Lengths are measured in UTF-16 code units by default, which matches
the unit Windows uses for its MAX_PATH limit. Use --unit to measure
in runes or bytes instead.

Symbolic links are reported but never followed. Unreadable
subdirectories are skipped and listed at the end of the report.

Exit codes:
  0 - No paths over the threshold
  1 - Over-threshold paths found, or the scan failed

Examples:
  pathlen scan                       # Scan current directory
  pathlen scan /mnt/share            # Scan specific directory
  pathlen scan --threshold=200       # Custom threshold
  pathlen scan --unit=bytes          # Measure in bytes
  pathlen scan --format=json         # Output JSON to stdout
  pathlen scan --format=yaml         # Output YAML to stdout
  pathlen scan --output=report.csv   # Write CSV report to file
  pathlen scan --output=report.md    # Write Markdown report to file
  pathlen scan --all                 # Include entries under the threshold
  pathlen scan --stats               # Show performance statistics

Note: --format and --output are mutually exclusive.

Pattern filters:
  pathlen scan --include="src/**"
  pathlen scan --exclude="node_modules/**" --exclude="*.tmp"

Config file (.pathlenrc.yaml or .pathlenrc.toml):
  threshold: 200
  unit: utf16
  exclude: ["node_modules/**"]`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Scan options
	scanCmd.Flags().IntVarP(&threshold, "threshold", "t", walker.DefaultThreshold,
		"Minimum path length to report")
	scanCmd.Flags().StringVarP(&unitName, "unit", "u", string(record.DefaultUnit),
		"Length unit: utf16, runes, bytes")

	// Output options
	scanCmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format for stdout: csv, json, yaml, markdown")
	scanCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Write report to file (format inferred from extension: .csv, .json, .yaml, .md)")

	// Filter flags
	scanCmd.Flags().BoolVarP(&showAll, "all", "a", false,
		"Include entries under the threshold in the output")
	scanCmd.Flags().StringSliceVar(&includePatterns, "include", nil,
		"Glob patterns to include, relative to the root (can be repeated)")
	scanCmd.Flags().StringSliceVar(&excludePatterns, "exclude", nil,
		"Glob patterns to exclude, relative to the root (can be repeated)")

	// Stats flag
	scanCmd.Flags().BoolVar(&showStats, "stats", false,
		"Show detailed performance statistics")

	scanCmd.Flags().BoolVar(&noConfig, "no-config", false,
		"Skip loading .pathlenrc config files")
}

// runScan is the main entry point for the scan command.
func runScan(cmd *cobra.Command, args []string) {
	perf := stats.New()
	exitOnError(validateScanFlags(), "Invalid flags")

	root := getPathArg(args)
	useStructuredOutput := outputFormat != ""

	unit, pathFilter := resolveSettings(cmd, root)

	// Phase 1: Walk the tree
	s := session.New(root, threshold, unit)
	perf.StartWalk()
	exitOnError(s.Start(), "Error starting scan")
	<-s.Done()
	exitOnError(s.Err(), "Scan failed")

	records := s.Records()
	if pathFilter != nil {
		records = pathFilter.Apply(records, root)
	}
	summary := record.Summarize(records)
	perf.EndWalk(summary.Total, summary.Dirs, summary.Files,
		summary.Exceeding, len(s.Errors()))

	// Phase 2: Output results
	routeOutput(s, records, summary, perf, useStructuredOutput)

	if summary.HasExceeding() {
		os.Exit(1)
	}
}

// exitOnError prints an error message and exits if err is not nil.
func exitOnError(err error, message string) {
	if err != nil {
		if message != "" {
			fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

// getPathArg returns the path argument or "." as default.
func getPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// resolveSettings merges config file values under CLI flags and builds
// the pattern filter. Flags the user set explicitly always win.
func resolveSettings(cmd *cobra.Command, root string) (record.Unit, *filter.Filter) {
	cfg := &config.Config{}
	if !noConfig {
		loaded, err := config.FindAndLoad(root)
		exitOnError(err, "Error loading config")
		cfg = loaded
	}

	if cfg.Threshold != nil && !cmd.Flags().Changed("threshold") {
		threshold = *cfg.Threshold
	}
	if cfg.Unit != "" && !cmd.Flags().Changed("unit") {
		unitName = cfg.Unit
	}

	// Re-check after the merge: a config file can set values the flag
	// validation never saw.
	if threshold < 0 {
		exitOnError(fmt.Errorf("threshold must be non-negative, got %d", threshold), "Invalid config")
	}

	unit, err := record.ParseUnit(unitName)
	exitOnError(err, "Invalid unit")

	filterCfg := filter.Config{
		Include: append(cfg.Include, includePatterns...),
		Exclude: append(cfg.Exclude, excludePatterns...),
	}
	if filterCfg.IsEmpty() {
		return unit, nil
	}

	pathFilter, err := filter.New(filterCfg)
	exitOnError(err, "Invalid pattern")
	return unit, pathFilter
}

// validateScanFlags checks for invalid flag combinations.
func validateScanFlags() error {
	if outputFormat != "" && outputFile != "" {
		return fmt.Errorf("--format and --output are mutually exclusive; " +
			"use --format for stdout output, or --output for file output")
	}

	if outputFormat != "" && !output.IsValidFormat(outputFormat) {
		return fmt.Errorf("invalid format %q; valid formats: %s",
			outputFormat, strings.Join(output.ValidFormats(), ", "))
	}

	if threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", threshold)
	}

	return nil
}
