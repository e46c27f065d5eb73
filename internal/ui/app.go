package ui

import (
	"fmt"

	"pathlen/internal/record"
	"pathlen/internal/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// STATE MACHINE
// =============================================================================

type appState int

const (
	stateStarting appState = iota // Session being created
	stateScanning                 // Traversal in flight
	stateResults                  // Showing results (list view)
)

// =============================================================================
// FILTER TYPES
// =============================================================================

type filterType int

const (
	filterOver  filterType = iota // Entries over the threshold
	filterDirs                    // Over-threshold directories only
	filterFiles                   // Over-threshold files only
	filterAll                     // Every entry visited
)

const filterCount = 4

func (f filterType) String() string {
	switch f {
	case filterOver:
		return "Over Threshold"
	case filterDirs:
		return "Directories"
	case filterFiles:
		return "Files"
	case filterAll:
		return "All Entries"
	default:
		return "Unknown"
	}
}

func (f filterType) Next() filterType {
	return (f + 1) % filterCount
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the main application model.
type Model struct {
	// State
	state    appState
	quitting bool
	err      error

	// Data
	session *session.Session
	records []record.Record
	summary record.Summary

	// Progress tracking
	progress session.Progress

	// Filter
	filter filterType

	// Components
	spinner spinner.Model
	list    list.Model
	help    help.Model
	keys    KeyMap

	// UI state
	width      int
	height     int
	showHelp   bool
	exportNote string

	// Config
	root      string
	threshold int
	unit      record.Unit
}

// New creates and returns a new Model for the given root.
func New(root string, threshold int, unit record.Unit) Model {
	if root == "" {
		root = "."
	}
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle()

	// Initialize help
	h := help.New()

	// Initialize keys
	k := DefaultKeyMap()

	// Initialize list with empty items (will be populated later)
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = SelectedStyle
	delegate.Styles.SelectedDesc = StatusStyle

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Path Length Results"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false) // We use our own help
	l.Styles.Title = TitleStyle

	return Model{
		state:     stateStarting,
		spinner:   s,
		list:      l,
		help:      h,
		keys:      k,
		filter:    filterOver,
		root:      root,
		threshold: threshold,
		unit:      unit,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, StartScanCmd(m.root, m.threshold, m.unit))
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for header, summary, and detail panel
		listHeight := max(msg.Height-12, 5)
		m.list.SetSize(msg.Width, listHeight)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ScanStartedMsg:
		return m.handleScanStarted(msg)

	case ProgressMsg:
		return m.handleProgress(msg)

	case ScanDoneMsg:
		return m.handleScanDone()

	case ExportDoneMsg:
		if msg.Err != nil {
			m.exportNote = ErrorStyle.Render("Export failed: " + msg.Err.Error())
		} else {
			m.exportNote = SuccessStyle.Render("Exported to " + msg.Path)
		}
		return m, nil
	}

	// Pass other messages to list if in results state
	if m.state == stateResults {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys that work in any state
	if key.Matches(msg, m.keys.Quit) {
		if m.session != nil {
			m.session.Cancel()
		}
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.state == stateScanning && key.Matches(msg, m.keys.Cancel) {
		if m.session != nil {
			m.session.Cancel()
		}
		return m, nil
	}

	// State-specific keys
	if m.state == stateResults {
		if key.Matches(msg, m.keys.Filter) {
			m.filter = m.filter.Next()
			m.updateListItems()
			return m, nil
		}

		if key.Matches(msg, m.keys.Export) && m.session != nil {
			return m, ExportCmd(m.session)
		}

		// Pass navigation keys to list
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleScanStarted(msg ScanStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
		m.state = stateResults
		return m, nil
	}
	m.session = msg.Session
	m.state = stateScanning
	return m, tea.Batch(TickProgressCmd(m.session), WaitDoneCmd(m.session))
}

func (m *Model) handleProgress(msg ProgressMsg) (tea.Model, tea.Cmd) {
	m.progress = msg.Progress
	if m.state != stateScanning {
		return m, nil
	}
	return m, TickProgressCmd(m.session)
}

func (m *Model) handleScanDone() (tea.Model, tea.Cmd) {
	m.state = stateResults
	m.progress = m.session.Progress()
	if err := m.session.Err(); err != nil {
		m.err = err
		return m, nil
	}
	m.records = m.session.Records()
	m.summary = record.Summarize(m.records)
	m.updateListItems()
	return m, nil
}

// updateListItems updates the list with filtered records.
func (m *Model) updateListItems() {
	m.list.SetItems(RecordsToItems(m.getFilteredRecords(), m.threshold))
}

// getFilteredRecords returns records based on the current filter.
func (m *Model) getFilteredRecords() []record.Record {
	switch m.filter {
	case filterOver:
		return record.FilterExceeding(m.records)
	case filterDirs:
		return record.FilterDirs(record.FilterExceeding(m.records))
	case filterFiles:
		over := record.FilterExceeding(m.records)
		files := make([]record.Record, 0, len(over))
		for _, r := range over {
			if !r.IsDir {
				files = append(files, r)
			}
		}
		return files
	case filterAll:
		return m.records
	default:
		return nil
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var s string

	// Header
	s += TitleStyle.Render("Pathlen - Path Length Scanner")
	s += "\n\n"

	// Error state
	if m.err != nil {
		s += ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		s += "\n"
		s += HelpStyle.Render("Press q to quit")
		return s
	}

	// State-specific view
	switch m.state {
	case stateStarting:
		s += m.spinner.View() + " Starting scan of " + m.root + "..."

	case stateScanning:
		s += m.renderScanProgress()

	case stateResults:
		s += m.renderResults()
	}

	// Help
	if m.showHelp {
		s += "\n\n" + m.help.View(m.keys)
	} else {
		s += "\n\n" + m.renderShortHelp()
	}

	return s
}

func (m Model) renderScanProgress() string {
	var s string

	s += m.spinner.View() + fmt.Sprintf(" Scanning... %d entries visited", m.progress.EntriesVisited)
	s += "\n\n"

	// Live counts
	s += fmt.Sprintf("  %s  %s",
		ErrorStyle.Render(fmt.Sprintf("⚠ %d over threshold", m.progress.ExceededCount)),
		MutedStyle.Render(fmt.Sprintf("%d unreadable", m.progress.ErrorCount)))

	if m.progress.CurrentPath != "" {
		s += "\n\n" + MutedStyle.Render("  "+m.progress.CurrentPath)
	}

	return s
}

func (m Model) renderResults() string {
	var s string

	// Summary line
	s += fmt.Sprintf("Scanned %d entries under %s (threshold %d %s)",
		m.summary.Total, m.root, m.threshold, m.unit)
	if m.session != nil && m.session.WasCancelled() {
		s += WarningStyle.Render("  [cancelled, partial]")
	}
	s += "\n\n"

	// Category summary
	s += fmt.Sprintf("%s | %s | %s | %s\n\n",
		ErrorStyle.Render(fmt.Sprintf("⚠ %d over", m.summary.Exceeding)),
		NormalStyle.Render(fmt.Sprintf("%d dirs", m.summary.Dirs)),
		NormalStyle.Render(fmt.Sprintf("%d files", m.summary.Files)),
		MutedStyle.Render(fmt.Sprintf("longest %d", m.summary.MaxLength)))

	if m.exportNote != "" {
		s += m.exportNote + "\n\n"
	}

	// Check if everything fits
	if m.summary.Exceeding == 0 {
		s += SuccessStyle.Render("All paths fit within the threshold!")
		return s
	}

	// Filter indicator
	s += fmt.Sprintf("Filter: %s (%d/%d)\n\n",
		SelectedStyle.Render(m.filter.String()),
		len(m.getFilteredRecords()),
		m.summary.Total)

	// List view
	s += m.list.View()

	// Detail panel for selected item
	if selected := m.list.SelectedItem(); selected != nil {
		if item, ok := selected.(RecordItem); ok {
			s += "\n" + item.DetailView()
		}
	}

	return s
}

func (Model) renderShortHelp() string {
	return HelpStyle.Render("↑/↓ navigate • f filter • e export • ? help • q quit")
}
