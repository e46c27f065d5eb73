// Package stats provides performance tracking for scan sessions.
// It captures timing for each phase of execution, memory usage,
// and throughput metrics to help identify bottlenecks on large trees.
package stats

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Stats holds performance metrics for a scan session.
type Stats struct {
	// Timing for each phase
	WalkStart   time.Time
	WalkEnd     time.Time
	ExportStart time.Time
	ExportEnd   time.Time

	// Counts
	EntriesVisited int
	Directories    int
	Files          int
	Exceeded       int
	SubtreeErrors  int

	// Memory stats (captured at end)
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	NumGoroutine int
}

// New creates a new Stats instance.
func New() *Stats {
	return &Stats{}
}

// StartWalk marks the beginning of the traversal phase.
func (s *Stats) StartWalk() {
	s.WalkStart = time.Now()
}

// EndWalk marks the end of the traversal phase and captures memory stats.
func (s *Stats) EndWalk(entries, dirs, files, exceeded, errs int) {
	s.WalkEnd = time.Now()
	s.EntriesVisited = entries
	s.Directories = dirs
	s.Files = files
	s.Exceeded = exceeded
	s.SubtreeErrors = errs
	s.captureMemoryStats()
}

// StartExport marks the beginning of the report export phase.
func (s *Stats) StartExport() {
	s.ExportStart = time.Now()
}

// EndExport marks the end of the report export phase.
func (s *Stats) EndExport() {
	s.ExportEnd = time.Now()
}

// captureMemoryStats reads current memory statistics from runtime.
func (s *Stats) captureMemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.HeapAlloc = m.HeapAlloc
	s.TotalAlloc = m.TotalAlloc
	s.NumGC = m.NumGC
	s.NumGoroutine = runtime.NumGoroutine()
}

// WalkDuration returns the time spent traversing the tree.
func (s *Stats) WalkDuration() time.Duration {
	if s.WalkEnd.IsZero() {
		return 0
	}
	return s.WalkEnd.Sub(s.WalkStart)
}

// ExportDuration returns the time spent writing reports.
func (s *Stats) ExportDuration() time.Duration {
	if s.ExportEnd.IsZero() {
		return 0
	}
	return s.ExportEnd.Sub(s.ExportStart)
}

// TotalDuration returns the total time from walk start to the last
// completed phase.
func (s *Stats) TotalDuration() time.Duration {
	if !s.ExportEnd.IsZero() {
		return s.ExportEnd.Sub(s.WalkStart)
	}
	if s.WalkEnd.IsZero() {
		return 0
	}
	return s.WalkEnd.Sub(s.WalkStart)
}

// EntriesPerSecond returns the throughput of the traversal.
func (s *Stats) EntriesPerSecond() float64 {
	walkDur := s.WalkDuration()
	if walkDur == 0 || s.EntriesVisited == 0 {
		return 0
	}
	return float64(s.EntriesVisited) / walkDur.Seconds()
}

// AvgEntryTime returns the average time per entry visited.
func (s *Stats) AvgEntryTime() time.Duration {
	walkDur := s.WalkDuration()
	if s.EntriesVisited == 0 {
		return 0
	}
	return walkDur / time.Duration(s.EntriesVisited)
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%.1fs", int(d.Minutes()), d.Seconds()-float64(int(d.Minutes())*60))
}

// FormatBytes formats bytes for human-readable display.
func FormatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// String returns a formatted string representation of the stats.
func (s *Stats) String() string {
	var b strings.Builder

	total := s.TotalDuration()

	b.WriteString("\n=== Performance Statistics ===\n\n")

	// Timing breakdown
	b.WriteString("Timing:\n")
	b.WriteString(fmt.Sprintf("  Walk tree:     %8s", FormatDuration(s.WalkDuration())))
	if total > 0 {
		b.WriteString(fmt.Sprintf("  (%4.1f%%)", float64(s.WalkDuration())/float64(total)*100))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  Export report: %8s", FormatDuration(s.ExportDuration())))
	if total > 0 {
		b.WriteString(fmt.Sprintf("  (%4.1f%%)", float64(s.ExportDuration())/float64(total)*100))
	}
	b.WriteString("\n")

	b.WriteString("  ─────────────────────────\n")
	b.WriteString(fmt.Sprintf("  Total:         %8s\n", FormatDuration(total)))

	// Throughput
	b.WriteString("\nThroughput:\n")
	b.WriteString(fmt.Sprintf("  Entries visited:   %5d\n", s.EntriesVisited))
	b.WriteString(fmt.Sprintf("  Directories:       %5d\n", s.Directories))
	b.WriteString(fmt.Sprintf("  Files:             %5d\n", s.Files))
	if s.Exceeded > 0 {
		b.WriteString(fmt.Sprintf("  Over threshold:    %5d\n", s.Exceeded))
	}
	if s.SubtreeErrors > 0 {
		b.WriteString(fmt.Sprintf("  Unreadable:        %5d\n", s.SubtreeErrors))
	}
	b.WriteString(fmt.Sprintf("  Entries/second:    %5.1f\n", s.EntriesPerSecond()))
	b.WriteString(fmt.Sprintf("  Avg per entry:   %7s\n", FormatDuration(s.AvgEntryTime())))

	// Memory
	b.WriteString("\nMemory:\n")
	b.WriteString(fmt.Sprintf("  Heap in use:   %8s\n", FormatBytes(s.HeapAlloc)))
	b.WriteString(fmt.Sprintf("  Total alloc:   %8s\n", FormatBytes(s.TotalAlloc)))
	b.WriteString(fmt.Sprintf("  GC cycles:     %8d\n", s.NumGC))
	b.WriteString(fmt.Sprintf("  Goroutines:    %8d\n", s.NumGoroutine))

	return b.String()
}

// ToJSON returns a map suitable for JSON serialization.
func (s *Stats) ToJSON() map[string]any {
	return map[string]any{
		"timing": map[string]any{
			"walk_ms":   s.WalkDuration().Milliseconds(),
			"export_ms": s.ExportDuration().Milliseconds(),
			"total_ms":  s.TotalDuration().Milliseconds(),
		},
		"throughput": map[string]any{
			"entries_visited":    s.EntriesVisited,
			"directories":        s.Directories,
			"files":              s.Files,
			"over_threshold":     s.Exceeded,
			"subtree_errors":     s.SubtreeErrors,
			"entries_per_second": s.EntriesPerSecond(),
			"avg_entry_us":       s.AvgEntryTime().Microseconds(),
		},
		"memory": map[string]any{
			"heap_bytes":  s.HeapAlloc,
			"total_bytes": s.TotalAlloc,
			"gc_cycles":   s.NumGC,
			"goroutines":  s.NumGoroutine,
		},
	}
}
