package cmd

import (
	"fmt"
	"os"
	"time"

	"pathlen/internal/output"
	"pathlen/internal/record"
	"pathlen/internal/session"
	"pathlen/internal/stats"
)

// buildReport creates an output.Report from a finished session.
// This consolidates all data needed for formatted output.
func buildReport(
	s *session.Session, records []record.Record, summary record.Summary, perf *stats.Stats,
) *output.Report {
	report := &output.Report{
		GeneratedAt:  time.Now(),
		SessionID:    s.ID().String(),
		Root:         s.Root(),
		Threshold:    s.Threshold(),
		Unit:         s.Unit(),
		Summary:      summary,
		Records:      filterRecords(records),
		WasCancelled: s.WasCancelled(),
	}

	for _, e := range s.Errors() {
		report.Errors = append(report.Errors, output.SubtreeError{
			Path: e.Path,
			Err:  e.Err.Error(),
		})
	}

	if showStats && perf != nil {
		report.Stats = perf.ToJSON()
	}

	return report
}

// filterRecords returns the records to include in the output.
// Over-threshold entries only, unless --all is set.
func filterRecords(records []record.Record) []record.Record {
	if showAll {
		return records
	}
	return record.FilterExceeding(records)
}

// routeOutput handles output based on format flags.
func routeOutput(
	s *session.Session, records []record.Record, summary record.Summary,
	perf *stats.Stats, useStructuredOutput bool,
) {
	switch {
	case useStructuredOutput:
		handleStructuredOutput(s, records, summary, perf)
	case outputFile != "":
		handleFileOutput(s, records, summary, perf)
	default:
		outputText(s, records, summary)
		if showStats {
			fmt.Print(perf.String())
		}
	}
}

// handleStructuredOutput formats the report to stdout.
func handleStructuredOutput(
	s *session.Session, records []record.Record, summary record.Summary, perf *stats.Stats,
) {
	perf.StartExport()
	report := buildReport(s, records, summary, perf)

	data, err := output.FormatReport(report, output.Format(outputFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	perf.EndExport()

	fmt.Print(string(data))
}

// handleFileOutput writes the report to a file and prints a summary.
func handleFileOutput(
	s *session.Session, records []record.Record, summary record.Summary, perf *stats.Stats,
) {
	perf.StartExport()
	report := buildReport(s, records, summary, perf)

	if err := output.WriteToFile(report, outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	perf.EndExport()

	fmt.Printf("Wrote report to %s\n", outputFile)

	// Also print summary to stdout
	fmt.Printf("\nSummary: %d entries | %d over threshold | longest %d",
		summary.Total, summary.Exceeding, summary.MaxLength)
	if len(report.Errors) > 0 {
		fmt.Printf(" | %d unreadable", len(report.Errors))
	}
	fmt.Println()

	if showStats {
		fmt.Print(perf.String())
	}
}
