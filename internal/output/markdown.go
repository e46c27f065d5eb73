package output

import (
	"fmt"
	"strings"

	"pathlen/internal/helpers"
	"pathlen/internal/record"
)

// MarkdownFormatter formats reports as Markdown.
type MarkdownFormatter struct{}

// Format implements Formatter.
func (*MarkdownFormatter) Format(report *Report) ([]byte, error) {
	// Pre-grow builder: estimate ~120 bytes per record + ~400 bytes header
	var b strings.Builder
	b.Grow(len(report.Records)*120 + 400)

	b.WriteString("# Path Length Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("**Root:** `%s`  \n", report.Root))
	b.WriteString(fmt.Sprintf("**Threshold:** %d %s  \n", report.Threshold, report.Unit))
	b.WriteString(fmt.Sprintf("**Entries Scanned:** %d\n\n", report.Summary.Total))

	if report.WasCancelled {
		b.WriteString("> Scan was cancelled; results are partial.\n\n")
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Directories | %d |\n", report.Summary.Dirs))
	b.WriteString(fmt.Sprintf("| Files | %d |\n", report.Summary.Files))
	b.WriteString(fmt.Sprintf("| Over threshold | %d |\n", report.Summary.Exceeding))
	b.WriteString(fmt.Sprintf("| Longest path | %d |\n", report.Summary.MaxLength))
	if len(report.Errors) > 0 {
		b.WriteString(fmt.Sprintf("| Unreadable subtrees | %d |\n", len(report.Errors)))
	}
	b.WriteString("\n")

	over := record.FilterExceeding(report.Records)
	if len(over) > 0 {
		b.WriteString(fmt.Sprintf("## Paths Over Threshold (%d)\n\n", len(over)))
		b.WriteString("| Length | Type | Path |\n")
		b.WriteString("|--------|------|------|\n")
		for _, r := range over {
			kind := "file"
			if r.IsDir {
				kind = "dir"
			}
			b.WriteString(fmt.Sprintf("| %d | %s | %s |\n",
				r.Length, kind, escapeMarkdown(r.Path)))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No paths over the threshold.\n\n")
	}

	if len(report.Errors) > 0 {
		b.WriteString(fmt.Sprintf("## Unreadable Subtrees (%d)\n\n", len(report.Errors)))
		for _, e := range report.Errors {
			b.WriteString(fmt.Sprintf("- `%s`: %s\n",
				e.Path, helpers.TruncateText(e.Err, 100)))
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// escapeMarkdown escapes special markdown characters in a string.
func escapeMarkdown(s string) string {
	// Escape pipe characters which break tables
	s = strings.ReplaceAll(s, "|", "\\|")
	// Escape backticks
	s = strings.ReplaceAll(s, "`", "\\`")
	return s
}
