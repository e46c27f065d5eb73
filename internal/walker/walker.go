// Package walker enumerates every entry under a root directory, measures
// each full path against a length threshold, and streams the results as
// an ordered sequence of events.
//
// The walk is depth-first with an explicit stack of pending directories,
// so pathologically deep trees cannot exhaust goroutine stack space.
// Within a directory, entries are emitted in directory-listing order
// before any subdirectory is descended into; subdirectories are then
// visited in that same order. The order is deterministic for a given
// tree because os.ReadDir sorts entries by name.
//
// Symbolic links are recorded like any other entry but never followed,
// which makes the walk terminate even when a link points at one of its
// own ancestors. The root is the one exception: a root that is itself a
// symlink to a directory is resolved and scanned.
package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pathlen/internal/record"
)

// EventKind discriminates the events a walk produces.
type EventKind int

const (
	// EventRecord carries one record for a visited entry.
	EventRecord EventKind = iota
	// EventSubtreeError reports a directory that could not be listed.
	// The walk skips that subtree and continues.
	EventSubtreeError
	// EventDone is the final event of a walk that ran to completion or
	// was cancelled.
	EventDone
	// EventFailed is the final event of a walk whose root was unusable.
	EventFailed
)

// Event is one element of the walk's output stream. Events arrive in
// discovery order; EventDone or EventFailed is always last.
type Event struct {
	Kind      EventKind
	Record    record.Record // valid when Kind == EventRecord
	Err       *SubtreeError // valid when Kind == EventSubtreeError
	Cancelled bool          // valid when Kind == EventDone
	FailErr   error         // valid when Kind == EventFailed
}

// SubtreeError describes a directory whose listing failed. It is a soft
// failure: nothing under Path is reported, everything else is.
type SubtreeError struct {
	Path string
	Err  error
}

func (e *SubtreeError) Error() string {
	return fmt.Sprintf("unreadable subtree %s: %v", e.Path, e.Err)
}

func (e *SubtreeError) Unwrap() error {
	return e.Err
}

// Walker walks one root with fixed options.
type Walker struct {
	root string
	opts Options
}

// New creates a Walker for root.
func New(root string, opts Options) *Walker {
	return &Walker{root: root, opts: opts}
}

// Walk starts the traversal on a new goroutine and returns its event
// stream. The channel is closed after the terminal event. Cancelling the
// context stops the walk at the next directory boundary; at most one
// directory's worth of entries is emitted after cancellation.
func (w *Walker) Walk(ctx context.Context) <-chan Event {
	events := make(chan Event, w.opts.Buffer)

	go func() {
		defer close(events)
		w.run(ctx, events)
	}()

	return events
}

func (w *Walker) run(ctx context.Context, events chan<- Event) {
	// Stat, not Lstat: a root that is a symlink to a directory is a
	// scannable root. Only the root link is resolved; entries below it
	// come from ReadDir's lstat semantics and links are never followed.
	info, err := os.Stat(w.root)
	if err != nil {
		events <- Event{Kind: EventFailed, FailErr: fmt.Errorf("stat root: %w", err)}
		return
	}
	if !info.IsDir() {
		events <- Event{Kind: EventFailed, FailErr: fmt.Errorf("root %s is not a directory", w.root)}
		return
	}

	// The root has no parent entry to report it under, so it only gets
	// a record of its own when it is already over the threshold.
	rootRec := record.New(w.root, true, w.opts.Threshold, w.opts.Unit)
	if rootRec.Exceeds {
		if !w.send(ctx, events, Event{Kind: EventRecord, Record: rootRec}) {
			return
		}
	}

	// LIFO stack of pending directories. Subdirectories are pushed in
	// reverse listing order so they pop in listing order, keeping the
	// overall sequence a deterministic depth-first preorder.
	stack := []string{w.root}
	rootListed := false

	for len(stack) > 0 {
		// Cancellation check, once per directory.
		if ctx.Err() != nil {
			events <- Event{Kind: EventDone, Cancelled: true}
			return
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if !rootListed {
				// An unreadable root is fatal; nothing was scanned.
				events <- Event{Kind: EventFailed, FailErr: fmt.Errorf("list root: %w", err)}
				return
			}
			if !w.send(ctx, events, Event{Kind: EventSubtreeError, Err: &SubtreeError{Path: dir, Err: err}}) {
				return
			}
			continue
		}
		rootListed = true

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			// DirEntry types come from lstat, so a symlink to a
			// directory reports ModeSymlink, not IsDir. That is
			// exactly the classification we want: the link itself is
			// recorded, its target is not descended into.
			isDir := entry.IsDir()
			rec := record.New(path, isDir, w.opts.Threshold, w.opts.Unit)
			if !w.send(ctx, events, Event{Kind: EventRecord, Record: rec}) {
				return
			}
			if isDir {
				subdirs = append(subdirs, path)
			}
		}

		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	events <- Event{Kind: EventDone}
}

// send delivers an event unless the context is cancelled mid-send.
// Returning false means the walk should stop; the consumer may already
// be gone, so the terminal event is emitted without blocking.
func (w *Walker) send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		select {
		case events <- Event{Kind: EventDone, Cancelled: true}:
		default:
		}
		return false
	}
}
