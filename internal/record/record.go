// Package record defines the path record produced for every filesystem
// entry visited during a scan, together with the length-unit policy used
// to measure paths.
//
// The default unit is UTF-16 code units, because the 260/240 character
// path limits this tool hunts for are enforced by Windows in UTF-16 code
// units. ASCII-only paths measure the same in every unit; the choice only
// matters for non-ASCII names.
package record

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unit is the unit a path's length is measured in.
type Unit string

const (
	// UnitUTF16 counts UTF-16 code units (the Windows MAX_PATH unit).
	UnitUTF16 Unit = "utf16"
	// UnitRunes counts Unicode code points.
	UnitRunes Unit = "runes"
	// UnitBytes counts raw UTF-8 bytes.
	UnitBytes Unit = "bytes"
)

// DefaultUnit is the unit used when none is configured.
const DefaultUnit = UnitUTF16

// ValidUnits returns all valid unit strings.
func ValidUnits() []string {
	return []string{string(UnitUTF16), string(UnitRunes), string(UnitBytes)}
}

// ParseUnit converts a string into a Unit, defaulting the empty string.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(s)) {
	case "":
		return DefaultUnit, nil
	case UnitUTF16:
		return UnitUTF16, nil
	case UnitRunes:
		return UnitRunes, nil
	case UnitBytes:
		return UnitBytes, nil
	default:
		return "", fmt.Errorf("unknown length unit %q (valid: %s)", s, strings.Join(ValidUnits(), ", "))
	}
}

// Length measures a path in the given unit. It never fails: any string
// that came back from the OS has a well-defined length in every unit.
func Length(path string, unit Unit) int {
	switch unit {
	case UnitBytes:
		return len(path)
	case UnitRunes:
		return utf8.RuneCountInString(path)
	default:
		n := 0
		for _, r := range path {
			n += utf16.RuneLen(r)
		}
		return n
	}
}

// Record is the result for a single filesystem entry. Records are value
// types; the traversal fills them in once and nothing recomputes Length
// downstream.
type Record struct {
	Path    string // full path as returned by the OS, not normalized
	Length  int    // length of Path in the session's unit
	IsDir   bool   // true for real directories (not directory symlinks)
	Exceeds bool   // Length >= threshold at scan time
}

// New builds a Record for path, measuring it in unit and classifying it
// against threshold.
func New(path string, isDir bool, threshold int, unit Unit) Record {
	l := Length(path, unit)
	return Record{
		Path:    path,
		Length:  l,
		IsDir:   isDir,
		Exceeds: l >= threshold,
	}
}

// FilterExceeding returns only the records at or over the threshold.
func FilterExceeding(records []Record) []Record {
	var over []Record
	for _, r := range records {
		if r.Exceeds {
			over = append(over, r)
		}
	}
	return over
}

// FilterDirs returns only the directory records.
func FilterDirs(records []Record) []Record {
	var dirs []Record
	for _, r := range records {
		if r.IsDir {
			dirs = append(dirs, r)
		}
	}
	return dirs
}

// Summary provides aggregate counts over a record set.
type Summary struct {
	Total     int // entries visited
	Dirs      int // directory entries
	Files     int // file (and symlink) entries
	Exceeding int // entries at or over the threshold
	MaxLength int // longest path seen
}

// Summarize computes a Summary from a slice of records.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.IsDir {
			s.Dirs++
		} else {
			s.Files++
		}
		if r.Exceeds {
			s.Exceeding++
		}
		if r.Length > s.MaxLength {
			s.MaxLength = r.Length
		}
	}
	return s
}

// HasExceeding reports whether any entry was over the threshold.
func (s Summary) HasExceeding() bool {
	return s.Exceeding > 0
}
