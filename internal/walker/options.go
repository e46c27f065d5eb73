package walker

import "pathlen/internal/record"

// Default values for walker options.
const (
	// DefaultThreshold is the path length at which entries are flagged.
	// 240 leaves headroom under the 260-unit Windows MAX_PATH limit for
	// tools that append suffixes or copy into deeper directories.
	DefaultThreshold = 240

	// DefaultBuffer is the event channel buffer. A modest buffer keeps
	// the walk from stalling on a slow consumer without hiding
	// cancellation latency.
	DefaultBuffer = 64
)

// Options configures a walk.
type Options struct {
	// Threshold is the length at or above which entries are flagged.
	Threshold int

	// Unit is the unit path lengths are measured in.
	Unit record.Unit

	// Buffer is the event channel buffer size.
	Buffer int
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Unit:      record.DefaultUnit,
		Buffer:    DefaultBuffer,
	}
}

// WithThreshold sets the flagging threshold. Negative values are ignored.
func (o Options) WithThreshold(n int) Options {
	if n >= 0 {
		o.Threshold = n
	}
	return o
}

// WithUnit sets the length unit.
func (o Options) WithUnit(u record.Unit) Options {
	if u != "" {
		o.Unit = u
	}
	return o
}

// WithBuffer sets the event channel buffer size.
func (o Options) WithBuffer(n int) Options {
	if n > 0 {
		o.Buffer = n
	}
	return o
}
