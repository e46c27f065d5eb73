// Package session owns one scan lifecycle: it starts the walker on a
// background goroutine, accumulates its records, publishes progress
// snapshots, and exposes cancellation and completion to the caller.
//
// A Session moves through Idle → Running → (Cancelling →) Completed, or
// Idle → Running → Failed. Cancellation is not an error: a cancelled
// session ends Completed with WasCancelled set and a partial result set.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"pathlen/internal/record"
	"pathlen/internal/walker"
)

// ErrInvalidRoot is returned by Start when the root does not exist or is
// not a directory. The session never leaves Idle in that case.
var ErrInvalidRoot = errors.New("root does not exist or is not a directory")

// ErrAlreadyStarted is returned by Start on a session that already ran.
var ErrAlreadyStarted = errors.New("session already started")

// ErrInvalidThreshold is returned by Start for a negative threshold. The
// walker options would silently fall back to the default otherwise, and a
// session must never report a threshold it did not classify against.
var ErrInvalidThreshold = errors.New("threshold must be non-negative")

// State is the lifecycle state of a session.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCancelling
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCancelling:
		return "cancelling"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Progress is an immutable snapshot of a running scan. Reading one never
// blocks on the traversal's I/O.
type Progress struct {
	EntriesVisited int
	ExceededCount  int
	ErrorCount     int
	CurrentPath    string
	Elapsed        time.Duration
	State          State
}

// Session is one scan from Start to Completed or Failed.
type Session struct {
	id        uuid.UUID
	root      string
	threshold int
	unit      record.Unit

	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}

	// progress holds the latest Progress value; writers publish whole
	// copies so readers never observe a half-updated snapshot.
	progress atomic.Value

	// mu guards records, errs, wasCancelled and failErr. Only the
	// consumer goroutine writes them; readers copy under the lock.
	mu           sync.Mutex
	records      []record.Record
	errs         []*walker.SubtreeError
	wasCancelled bool
	failErr      error

	startedAt time.Time
}

// New creates an Idle session. Threshold and unit are fixed for the
// session's lifetime once Start is called.
func New(root string, threshold int, unit record.Unit) *Session {
	s := &Session{
		id:        uuid.New(),
		root:      root,
		threshold: threshold,
		unit:      unit,
		done:      make(chan struct{}),
	}
	s.progress.Store(Progress{State: StateIdle})
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Root returns the directory the scan starts from.
func (s *Session) Root() string { return s.root }

// Threshold returns the configured length threshold.
func (s *Session) Threshold() int { return s.threshold }

// Unit returns the configured length unit.
func (s *Session) Unit() record.Unit { return s.unit }

// Start validates the root and launches the traversal on a background
// goroutine. It returns immediately; the caller observes completion via
// Done or State. Starting a session twice is an error.
func (s *Session) Start() error {
	if s.threshold < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, s.threshold)
	}

	info, err := os.Stat(s.root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidRoot, s.root)
	}

	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.startedAt = time.Now()
	s.publishProgress(Progress{State: StateRunning})

	w := walker.New(s.root, walker.DefaultOptions().
		WithThreshold(s.threshold).
		WithUnit(s.unit))

	go s.consume(w.Walk(ctx))
	return nil
}

// consume drains the walker's event stream, appending records and
// publishing progress until the terminal event arrives.
func (s *Session) consume(events <-chan walker.Event) {
	defer close(s.done)

	visited := 0
	exceeded := 0
	current := ""

	for ev := range events {
		switch ev.Kind {
		case walker.EventRecord:
			visited++
			if ev.Record.Exceeds {
				exceeded++
			}
			current = ev.Record.Path
			s.mu.Lock()
			s.records = append(s.records, ev.Record)
			errCount := len(s.errs)
			s.mu.Unlock()
			s.publishProgress(Progress{
				EntriesVisited: visited,
				ExceededCount:  exceeded,
				ErrorCount:     errCount,
				CurrentPath:    current,
				State:          State(s.state.Load()),
			})

		case walker.EventSubtreeError:
			s.mu.Lock()
			s.errs = append(s.errs, ev.Err)
			errCount := len(s.errs)
			s.mu.Unlock()
			s.publishProgress(Progress{
				EntriesVisited: visited,
				ExceededCount:  exceeded,
				ErrorCount:     errCount,
				CurrentPath:    current,
				State:          State(s.state.Load()),
			})

		case walker.EventDone:
			s.mu.Lock()
			s.wasCancelled = ev.Cancelled
			errCount := len(s.errs)
			s.mu.Unlock()
			s.state.Store(int32(StateCompleted))
			s.publishProgress(Progress{
				EntriesVisited: visited,
				ExceededCount:  exceeded,
				ErrorCount:     errCount,
				CurrentPath:    current,
				State:          StateCompleted,
			})

		case walker.EventFailed:
			s.mu.Lock()
			s.failErr = ev.FailErr
			s.mu.Unlock()
			s.state.Store(int32(StateFailed))
			s.publishProgress(Progress{
				EntriesVisited: visited,
				ExceededCount:  exceeded,
				CurrentPath:    current,
				State:          StateFailed,
			})
		}
	}
}

func (s *Session) publishProgress(p Progress) {
	if !s.startedAt.IsZero() {
		p.Elapsed = time.Since(s.startedAt)
	}
	s.progress.Store(p)
}

// Progress returns the most recently published snapshot. Safe to call
// from any goroutine at any time; never blocks on the scan.
func (s *Session) Progress() Progress {
	return s.progress.Load().(Progress)
}

// Cancel requests cancellation. It is idempotent, a no-op unless the
// session is Running, and returns once the request is recorded rather
// than once the traversal has stopped.
func (s *Session) Cancel() {
	if s.state.CompareAndSwap(int32(StateRunning), int32(StateCancelling)) {
		s.cancel()
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Done is closed when the session reaches Completed or Failed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IsDone reports whether the session has reached a terminal state.
func (s *Session) IsDone() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// WasCancelled reports whether the session ended early by request.
// Meaningful once the session is Completed.
func (s *Session) WasCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wasCancelled
}

// Err returns the fatal error of a Failed session, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failErr
}

// Records returns a snapshot copy of the records accumulated so far:
// partial while Running, final after Completed. Appends never mutate a
// returned slice.
func (s *Session) Records() []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Errors returns a snapshot copy of the subtree errors collected so far.
func (s *Session) Errors() []*walker.SubtreeError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*walker.SubtreeError, len(s.errs))
	copy(out, s.errs)
	return out
}
