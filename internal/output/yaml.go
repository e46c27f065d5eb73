package output

import (
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats reports as YAML.
type YAMLFormatter struct{}

// yamlOutput is the YAML structure for output.
type yamlOutput struct {
	GeneratedAt string       `yaml:"generated_at"`
	SessionID   string       `yaml:"session_id"`
	Root        string       `yaml:"root"`
	Unit        string       `yaml:"unit"`
	Records     []yamlRecord `yaml:"records"`
	Errors      []yamlError  `yaml:"errors,omitempty"`
	Summary     yamlSummary  `yaml:"summary"`
	Threshold   int          `yaml:"threshold"`
	Cancelled   bool         `yaml:"cancelled,omitempty"`
}

type yamlSummary struct {
	Total     int `yaml:"total"`
	Dirs      int `yaml:"directories"`
	Files     int `yaml:"files"`
	Exceeding int `yaml:"exceeding"`
	MaxLength int `yaml:"max_length"`
}

type yamlRecord struct {
	Path    string `yaml:"path"`
	Length  int    `yaml:"length"`
	IsDir   bool   `yaml:"is_directory"`
	Exceeds bool   `yaml:"exceeds_threshold"`
}

type yamlError struct {
	Path  string `yaml:"path"`
	Error string `yaml:"error"`
}

// Format implements Formatter.
func (*YAMLFormatter) Format(report *Report) ([]byte, error) {
	output := yamlOutput{
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		SessionID:   report.SessionID,
		Root:        report.Root,
		Threshold:   report.Threshold,
		Unit:        string(report.Unit),
		Cancelled:   report.WasCancelled,
		Summary: yamlSummary{
			Total:     report.Summary.Total,
			Dirs:      report.Summary.Dirs,
			Files:     report.Summary.Files,
			Exceeding: report.Summary.Exceeding,
			MaxLength: report.Summary.MaxLength,
		},
		Records: make([]yamlRecord, 0, len(report.Records)),
	}

	for _, r := range report.Records {
		output.Records = append(output.Records, yamlRecord{
			Path:    r.Path,
			Length:  r.Length,
			IsDir:   r.IsDir,
			Exceeds: r.Exceeds,
		})
	}

	for _, e := range report.Errors {
		output.Errors = append(output.Errors, yamlError{Path: e.Path, Error: e.Err})
	}

	return yaml.Marshal(output)
}
