// Package filter narrows a result set with include/exclude glob patterns.
// Patterns match the path relative to the scan root, with forward-slash
// separators on every platform. Filtering applies to reports only: the
// traversal engine always emits every entry it visits.
package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"pathlen/internal/record"
)

// Config holds the raw patterns a filter is built from.
type Config struct {
	Include []string // if non-empty, only matching records are kept
	Exclude []string // matching records are dropped
}

// IsEmpty reports whether the config has no patterns at all.
func (c Config) IsEmpty() bool {
	return len(c.Include) == 0 && len(c.Exclude) == 0
}

// compiledGlob keeps the original pattern text for error reporting.
type compiledGlob struct {
	pattern  glob.Glob
	original string
}

// Filter applies compiled include/exclude patterns to records.
type Filter struct {
	include []compiledGlob
	exclude []compiledGlob
}

// New compiles the configured patterns. Patterns use '/' as the
// separator character, so '*' does not cross directory boundaries but
// '**' does.
func New(cfg Config) (*Filter, error) {
	f := &Filter{}

	var err error
	if f.include, err = compileAll(cfg.Include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileAll(cfg.Exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileAll(patterns []string) ([]compiledGlob, error) {
	compiled := make([]compiledGlob, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		compiled = append(compiled, compiledGlob{pattern: g, original: p})
	}
	return compiled, nil
}

// Apply returns the records that survive the filter. Records whose path
// cannot be made relative to root are matched against the full path.
func (f *Filter) Apply(records []record.Record, root string) []record.Record {
	if len(f.include) == 0 && len(f.exclude) == 0 {
		return records
	}

	kept := make([]record.Record, 0, len(records))
	for _, r := range records {
		rel, err := filepath.Rel(root, r.Path)
		if err != nil {
			rel = r.Path
		}
		rel = filepath.ToSlash(rel)

		if len(f.include) > 0 && !matchesAny(rel, f.include) {
			continue
		}
		if matchesAny(rel, f.exclude) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func matchesAny(path string, patterns []compiledGlob) bool {
	for _, g := range patterns {
		if g.pattern.Match(path) {
			return true
		}
	}
	return false
}
