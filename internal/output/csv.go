package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter formats the record set as CSV. One row per record, header
// first; encoding/csv quotes paths containing the delimiter, quotes or
// newlines, so arbitrary filenames round-trip.
type CSVFormatter struct{}

// csvHeader is the fixed column set consumed by spreadsheet imports.
var csvHeader = []string{"path", "length", "is_directory", "exceeds_threshold"}

// Format implements Formatter.
func (*CSVFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, r := range report.Records {
		row := []string{
			r.Path,
			strconv.Itoa(r.Length),
			strconv.FormatBool(r.IsDir),
			strconv.FormatBool(r.Exceeds),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
