package ui

import (
	"fmt"
	"time"

	"pathlen/internal/output"
	"pathlen/internal/record"
	"pathlen/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// progressInterval is how often the running scan view refreshes.
const progressInterval = 100 * time.Millisecond

// StartScanCmd creates a session for the given root and starts it.
func StartScanCmd(root string, threshold int, unit record.Unit) tea.Cmd {
	return func() tea.Msg {
		s := session.New(root, threshold, unit)
		if err := s.Start(); err != nil {
			return ScanStartedMsg{Err: err}
		}
		return ScanStartedMsg{Session: s}
	}
}

// TickProgressCmd schedules the next progress snapshot read.
func TickProgressCmd(s *session.Session) tea.Cmd {
	return tea.Tick(progressInterval, func(time.Time) tea.Msg {
		return ProgressMsg{Progress: s.Progress()}
	})
}

// WaitDoneCmd blocks until the session reaches a terminal state.
func WaitDoneCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		<-s.Done()
		return ScanDoneMsg{}
	}
}

// ExportCmd writes the session's records as a timestamped CSV report in
// the current working directory.
func ExportCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		filename := fmt.Sprintf("pathlen-%s.csv", time.Now().Format("20060102-150405"))

		records := s.Records()
		report := &output.Report{
			GeneratedAt:  time.Now(),
			SessionID:    s.ID().String(),
			Root:         s.Root(),
			Threshold:    s.Threshold(),
			Unit:         s.Unit(),
			Summary:      record.Summarize(records),
			Records:      records,
			WasCancelled: s.WasCancelled(),
		}
		for _, e := range s.Errors() {
			report.Errors = append(report.Errors, output.SubtreeError{
				Path: e.Path,
				Err:  e.Err.Error(),
			})
		}

		if err := output.WriteToFile(report, filename); err != nil {
			return ExportDoneMsg{Err: err}
		}
		return ExportDoneMsg{Path: filename}
	}
}
