package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathlen/internal/record"
)

func recs(paths ...string) []record.Record {
	out := make([]record.Record, len(paths))
	for i, p := range paths {
		out[i] = record.Record{Path: p}
	}
	return out
}

func paths(records []record.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Path)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	input := recs(
		"/r/docs/readme.md",
		"/r/docs/internal/secret.md",
		"/r/vendor/dep/lib.go",
		"/r/main.go",
	)

	t.Run("EmptyConfigKeepsAll", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{})
		require.NoError(t, err)
		assert.Equal(t, input, f.Apply(input, "/r"))
	})

	t.Run("Include", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{Include: []string{"docs/**"}})
		require.NoError(t, err)
		got := f.Apply(input, "/r")
		assert.Equal(t, []string{
			"/r/docs/readme.md",
			"/r/docs/internal/secret.md",
		}, paths(got))
	})

	t.Run("Exclude", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{Exclude: []string{"vendor/**"}})
		require.NoError(t, err)
		got := f.Apply(input, "/r")
		assert.NotContains(t, paths(got), "/r/vendor/dep/lib.go")
		assert.Len(t, got, 3)
	})

	t.Run("IncludeThenExclude", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{
			Include: []string{"docs/**"},
			Exclude: []string{"**/internal/**"},
		})
		require.NoError(t, err)
		got := f.Apply(input, "/r")
		assert.Equal(t, []string{"/r/docs/readme.md"}, paths(got))
	})

	t.Run("StarDoesNotCrossSeparator", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{Include: []string{"*.go"}})
		require.NoError(t, err)
		got := f.Apply(input, "/r")
		assert.Equal(t, []string{"/r/main.go"}, paths(got))
	})

	t.Run("BlankPatternsSkipped", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{Exclude: []string{"  ", ""}})
		require.NoError(t, err)
		assert.Equal(t, input, f.Apply(input, "/r"))
	})

	t.Run("InvalidPattern", func(t *testing.T) {
		t.Parallel()
		_, err := New(Config{Include: []string{"[invalid"}})
		assert.Error(t, err)
	})

	t.Run("ConfigIsEmpty", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Config{}.IsEmpty())
		assert.False(t, Config{Exclude: []string{"x"}}.IsEmpty())
	})
}
