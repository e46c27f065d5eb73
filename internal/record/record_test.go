package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	t.Parallel()

	t.Run("EmptyDefaultsToUTF16", func(t *testing.T) {
		t.Parallel()
		u, err := ParseUnit("")
		require.NoError(t, err)
		assert.Equal(t, UnitUTF16, u)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		t.Parallel()
		u, err := ParseUnit("RUNES")
		require.NoError(t, err)
		assert.Equal(t, UnitRunes, u)
	})

	t.Run("Unknown", func(t *testing.T) {
		t.Parallel()
		_, err := ParseUnit("codepoints")
		assert.Error(t, err)
	})
}

func TestLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		unit Unit
		want int
	}{
		{"ASCIIBytes", "/r/aaa.txt", UnitBytes, 10},
		{"ASCIIRunes", "/r/aaa.txt", UnitRunes, 10},
		{"ASCIIUTF16", "/r/aaa.txt", UnitUTF16, 10},
		// é is 2 bytes, 1 rune, 1 UTF-16 unit
		{"LatinAccentBytes", "/é", UnitBytes, 3},
		{"LatinAccentRunes", "/é", UnitRunes, 2},
		{"LatinAccentUTF16", "/é", UnitUTF16, 2},
		// 𝄞 (U+1D11E) is 4 bytes, 1 rune, 2 UTF-16 units (surrogate pair)
		{"SurrogatePairBytes", "/𝄞", UnitBytes, 5},
		{"SurrogatePairRunes", "/𝄞", UnitRunes, 2},
		{"SurrogatePairUTF16", "/𝄞", UnitUTF16, 3},
		{"Empty", "", UnitUTF16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Length(tt.path, tt.unit))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("ExceedsAtThreshold", func(t *testing.T) {
		t.Parallel()
		// Classification is >=, not >.
		r := New("/r/aaa.txt", false, 10, UnitUTF16)
		assert.Equal(t, 10, r.Length)
		assert.True(t, r.Exceeds)
	})

	t.Run("BelowThreshold", func(t *testing.T) {
		t.Parallel()
		r := New("/r/aaa.txt", false, 11, UnitUTF16)
		assert.False(t, r.Exceeds)
	})

	t.Run("ZeroThresholdMatchesEverything", func(t *testing.T) {
		t.Parallel()
		r := New("", true, 0, UnitUTF16)
		assert.True(t, r.Exceeds)
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Path: "/r", Length: 2, IsDir: true},
		{Path: "/r/aaa.txt", Length: 10, IsDir: false},
		{Path: "/r/bb", Length: 5, IsDir: true},
		{Path: "/r/bb/cccccccccccccccc.txt", Length: 26, IsDir: false, Exceeds: true},
	}

	s := Summarize(records)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Dirs)
	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 1, s.Exceeding)
	assert.Equal(t, 26, s.MaxLength)
	assert.True(t, s.HasExceeding())
}

func TestFilters(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Path: "/a", IsDir: true},
		{Path: "/a/b", IsDir: false, Exceeds: true},
		{Path: "/a/c", IsDir: true, Exceeds: true},
	}

	over := FilterExceeding(records)
	require.Len(t, over, 2)
	assert.Equal(t, "/a/b", over[0].Path)

	dirs := FilterDirs(records)
	require.Len(t, dirs, 2)
	assert.Equal(t, "/a", dirs[0].Path)
}
