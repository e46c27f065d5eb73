// Package output provides formatting and file writing for scan reports.
// CSV is the primary export format; JSON, YAML and Markdown are offered
// for scripting and CI use.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pathlen/internal/record"
)

// Format represents an output format type.
type Format string

const (
	// FormatCSV outputs the record set as CSV with a header row.
	FormatCSV Format = "csv"
	// FormatJSON outputs as JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs as YAML.
	FormatYAML Format = "yaml"
	// FormatMarkdown outputs as a Markdown report.
	FormatMarkdown Format = "markdown"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatCSV),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatMarkdown),
	}
}

// IsValidFormat checks if a format string is valid.
func IsValidFormat(s string) bool {
	switch Format(strings.ToLower(s)) {
	case FormatCSV, FormatJSON, FormatYAML, FormatMarkdown:
		return true
	default:
		return false
	}
}

// SubtreeError is a soft traversal failure carried into reports.
type SubtreeError struct {
	Path string
	Err  string
}

// Report contains all data needed for output formatting.
type Report struct {
	GeneratedAt  time.Time
	SessionID    string
	Root         string
	Threshold    int
	Unit         record.Unit
	Summary      record.Summary
	Records      []record.Record
	Errors       []SubtreeError
	WasCancelled bool
	Stats        map[string]any
}

// Formatter is the interface that output formatters implement.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// GetFormatter returns the appropriate formatter for a format.
func GetFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatCSV:
		return &CSVFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// FormatReport formats a report using the specified format.
func FormatReport(report *Report, format Format) ([]byte, error) {
	formatter, err := GetFormatter(format)
	if err != nil {
		return nil, err
	}
	return formatter.Format(report)
}

// InferFormat determines the output format from a filename extension.
func InferFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf(
			"cannot infer format from extension %q (supported: .csv, .json, .yaml, .yml, .md, .markdown)",
			ext,
		)
	}
}

// WriteToFile writes a formatted report to a file, inferring the format
// from the filename.
func WriteToFile(report *Report, filename string) error {
	format, err := InferFormat(filename)
	if err != nil {
		return err
	}

	data, err := FormatReport(report, format)
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
