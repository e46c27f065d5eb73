package ui

import (
	"pathlen/internal/session"
)

// ScanStartedMsg is sent when the scan session has been created and started.
type ScanStartedMsg struct {
	Err     error
	Session *session.Session
}

// ProgressMsg carries a progress snapshot while the scan is running.
type ProgressMsg struct {
	Progress session.Progress
}

// ScanDoneMsg is sent when the scan session reaches a terminal state.
type ScanDoneMsg struct{}

// ExportDoneMsg is sent when a report export has finished.
type ExportDoneMsg struct {
	Err  error
	Path string
}
