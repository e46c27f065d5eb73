package cmd

import (
	"fmt"

	"pathlen/internal/helpers"
	"pathlen/internal/record"
	"pathlen/internal/session"

	"github.com/fatih/color"
)

// outputText prints results as human-readable text to stdout.
// This is the default output mode when no format flag is specified.
func outputText(s *session.Session, records []record.Record, summary record.Summary) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)

	fmt.Println()
	bold.Printf("Scanned %d entries under %s (threshold %d %s)\n",
		summary.Total, s.Root(), s.Threshold(), s.Unit())
	if s.WasCancelled() {
		yellow.Println("Scan was cancelled; results are partial.")
	}
	fmt.Printf("Summary: %d dirs | %d files | %d over threshold | longest %d\n\n",
		summary.Dirs, summary.Files, summary.Exceeding, summary.MaxLength)

	filtered := filterRecords(records)

	if len(filtered) == 0 {
		if showAll {
			fmt.Println("No entries matched.")
		} else {
			green.Println("All paths fit within the threshold!")
		}
		printSubtreeErrors(s, yellow)
		return
	}

	if !showAll {
		fmt.Printf("=== Paths Over Threshold (%d) ===\n\n", len(filtered))
	}
	for _, r := range filtered {
		printRecord(r, s.Threshold(), red)
	}
	fmt.Println()

	printSubtreeErrors(s, yellow)
}

// printRecord prints a single entry with its length and kind.
func printRecord(r record.Record, threshold int, red *color.Color) {
	kind := "file"
	if r.IsDir {
		kind = "dir "
	}

	if r.Exceeds {
		red.Printf("  [%4d] ", r.Length)
		fmt.Printf("%s %s\n", kind, r.Path)
		fmt.Printf("         +%d over the threshold\n", r.Length-threshold)
	} else {
		fmt.Printf("  [%4d] %s %s\n", r.Length, kind, r.Path)
	}
}

// printSubtreeErrors lists directories the walker could not read.
func printSubtreeErrors(s *session.Session, yellow *color.Color) {
	errs := s.Errors()
	if len(errs) == 0 {
		return
	}

	yellow.Printf("=== Unreadable Subtrees (%d) ===\n\n", len(errs))
	for _, e := range errs {
		fmt.Printf("  %s\n", e.Path)
		fmt.Printf("    %s\n", helpers.TruncateText(e.Err.Error(), 100))
	}
	fmt.Println()
}
