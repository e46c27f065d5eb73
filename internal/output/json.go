package output

import (
	"encoding/json"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// jsonOutput is the JSON structure for output.
type jsonOutput struct {
	GeneratedAt string         `json:"generated_at"`
	SessionID   string         `json:"session_id"`
	Root        string         `json:"root"`
	Threshold   int            `json:"threshold"`
	Unit        string         `json:"unit"`
	Cancelled   bool           `json:"cancelled,omitempty"`
	Summary     jsonSummary    `json:"summary"`
	Records     []jsonRecord   `json:"records"`
	Errors      []jsonError    `json:"errors,omitempty"`
	Stats       map[string]any `json:"stats,omitempty"`
}

type jsonSummary struct {
	Total     int `json:"total"`
	Dirs      int `json:"directories"`
	Files     int `json:"files"`
	Exceeding int `json:"exceeding"`
	MaxLength int `json:"max_length"`
}

type jsonRecord struct {
	Path    string `json:"path"`
	Length  int    `json:"length"`
	IsDir   bool   `json:"is_directory"`
	Exceeds bool   `json:"exceeds_threshold"`
}

type jsonError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Format implements Formatter.
func (*JSONFormatter) Format(report *Report) ([]byte, error) {
	output := jsonOutput{
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		SessionID:   report.SessionID,
		Root:        report.Root,
		Threshold:   report.Threshold,
		Unit:        string(report.Unit),
		Cancelled:   report.WasCancelled,
		Summary: jsonSummary{
			Total:     report.Summary.Total,
			Dirs:      report.Summary.Dirs,
			Files:     report.Summary.Files,
			Exceeding: report.Summary.Exceeding,
			MaxLength: report.Summary.MaxLength,
		},
		Records: make([]jsonRecord, 0, len(report.Records)),
		Stats:   report.Stats,
	}

	for _, r := range report.Records {
		output.Records = append(output.Records, jsonRecord{
			Path:    r.Path,
			Length:  r.Length,
			IsDir:   r.IsDir,
			Exceeds: r.Exceeds,
		})
	}

	for _, e := range report.Errors {
		output.Errors = append(output.Errors, jsonError{Path: e.Path, Error: e.Err})
	}

	return json.MarshalIndent(output, "", "  ")
}
