package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathlen/internal/record"
)

// wait blocks until the session terminates or the test times out.
func wait(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("session did not finish in time")
	}
}

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bb"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "aaa.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bb", "cccccccccccccccc.txt"), nil, 0o644))
	return root
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("IdleUntilStart", func(t *testing.T) {
		t.Parallel()
		s := New(t.TempDir(), 240, record.UnitUTF16)
		assert.Equal(t, StateIdle, s.State())
		assert.Equal(t, StateIdle, s.Progress().State)
		assert.False(t, s.IsDone())
	})

	t.Run("RunsToCompleted", func(t *testing.T) {
		t.Parallel()
		root := makeTree(t)
		threshold := record.Length(filepath.Join(root, "aaa.txt"), record.UnitUTF16) + 1

		s := New(root, threshold, record.UnitUTF16)
		require.NoError(t, s.Start())
		wait(t, s)

		assert.Equal(t, StateCompleted, s.State())
		assert.False(t, s.WasCancelled())
		assert.NoError(t, s.Err())

		recs := s.Records()
		require.Len(t, recs, 3)
		sum := record.Summarize(recs)
		assert.Equal(t, 1, sum.Exceeding)

		p := s.Progress()
		assert.Equal(t, StateCompleted, p.State)
		assert.Equal(t, len(recs), p.EntriesVisited)
		assert.Equal(t, sum.Exceeding, p.ExceededCount)
		assert.Equal(t, sum.Dirs+sum.Files, p.EntriesVisited)
		assert.Positive(t, p.Elapsed)
	})

	t.Run("SymlinkRootCompletes", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		target := makeTree(t)
		link := filepath.Join(base, "link")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		// Start and the walker must agree that a symlink to a directory
		// is a valid root: the session runs to Completed, not Failed.
		s := New(link, 0, record.UnitUTF16)
		require.NoError(t, s.Start())
		wait(t, s)

		assert.Equal(t, StateCompleted, s.State())
		assert.NoError(t, s.Err())
		assert.NotEmpty(t, s.Records())
	})

	t.Run("NegativeThresholdRejected", func(t *testing.T) {
		t.Parallel()
		s := New(makeTree(t), -5, record.UnitUTF16)
		err := s.Start()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
		assert.Equal(t, StateIdle, s.State())
	})

	t.Run("UnreadableRootFails", func(t *testing.T) {
		t.Parallel()
		if os.Geteuid() == 0 {
			t.Skip("permission checks are bypassed for root")
		}
		root := t.TempDir()
		require.NoError(t, os.Chmod(root, 0o000))
		t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

		s := New(root, 240, record.UnitUTF16)
		require.NoError(t, s.Start())
		wait(t, s)

		assert.Equal(t, StateFailed, s.State())
		assert.Error(t, s.Err())
		assert.Equal(t, StateFailed, s.Progress().State)
		assert.Empty(t, s.Records())
	})

	t.Run("InvalidRoot", func(t *testing.T) {
		t.Parallel()
		s := New(filepath.Join(t.TempDir(), "missing"), 240, record.UnitUTF16)
		err := s.Start()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRoot)
		assert.Equal(t, StateIdle, s.State())
	})

	t.Run("FileAsRootIsInvalid", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		file := filepath.Join(root, "f.txt")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		s := New(file, 240, record.UnitUTF16)
		assert.ErrorIs(t, s.Start(), ErrInvalidRoot)
	})

	t.Run("DoubleStart", func(t *testing.T) {
		t.Parallel()
		root := makeTree(t)
		s := New(root, 240, record.UnitUTF16)
		require.NoError(t, s.Start())
		assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)
		wait(t, s)
	})

	t.Run("SessionsHaveDistinctIDs", func(t *testing.T) {
		t.Parallel()
		a := New(t.TempDir(), 240, record.UnitUTF16)
		b := New(t.TempDir(), 240, record.UnitUTF16)
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestCancellation(t *testing.T) {
	t.Parallel()

	t.Run("CancelIsIdempotentAndCompletes", func(t *testing.T) {
		t.Parallel()
		root := makeTree(t)
		s := New(root, 0, record.UnitUTF16)
		require.NoError(t, s.Start())
		s.Cancel()
		s.Cancel() // second request is a no-op
		wait(t, s)

		assert.Equal(t, StateCompleted, s.State())
	})

	t.Run("CancelBeforeStartIsNoop", func(t *testing.T) {
		t.Parallel()
		s := New(makeTree(t), 0, record.UnitUTF16)
		s.Cancel()
		assert.Equal(t, StateIdle, s.State())
		require.NoError(t, s.Start())
		wait(t, s)
	})

	t.Run("NoEventsAfterCompletion", func(t *testing.T) {
		t.Parallel()
		// Build a wide tree so cancellation lands mid-scan at least
		// some of the time; either way the invariant must hold.
		root := t.TempDir()
		for i := 0; i < 50; i++ {
			dir := filepath.Join(root, "d", "e", "f", string(rune('a'+i%26))+string(rune('a'+i/26)))
			require.NoError(t, os.MkdirAll(dir, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), nil, 0o644))
		}

		s := New(root, 0, record.UnitUTF16)
		require.NoError(t, s.Start())
		s.Cancel()
		wait(t, s)

		recsThen := s.Records()
		progThen := s.Progress()
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, len(recsThen), len(s.Records()))
		assert.Equal(t, progThen.EntriesVisited, s.Progress().EntriesVisited)
	})
}

func TestSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("RecordsCopyIsStable", func(t *testing.T) {
		t.Parallel()
		root := makeTree(t)
		s := New(root, 0, record.UnitUTF16)
		require.NoError(t, s.Start())
		wait(t, s)

		recs := s.Records()
		recs[0] = record.Record{Path: "mutated"}
		assert.NotEqual(t, "mutated", s.Records()[0].Path)
	})

	t.Run("ProgressReadableWhileRunning", func(t *testing.T) {
		t.Parallel()
		root := makeTree(t)
		s := New(root, 0, record.UnitUTF16)
		require.NoError(t, s.Start())

		// Concurrent reads must never panic or block; values are
		// whole snapshots.
		for i := 0; i < 100; i++ {
			p := s.Progress()
			assert.GreaterOrEqual(t, p.EntriesVisited, 0)
			_ = s.Records()
		}
		wait(t, s)
	})

	t.Run("ProgressMonotonic", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		for i := 0; i < 30; i++ {
			require.NoError(t, os.WriteFile(filepath.Join(root, string(rune('a'+i%26))+"x.txt"), nil, 0o644))
		}
		s := New(root, 0, record.UnitUTF16)
		require.NoError(t, s.Start())

		prev := 0
		for !s.IsDone() {
			n := s.Progress().EntriesVisited
			assert.GreaterOrEqual(t, n, prev)
			prev = n
		}
		wait(t, s)
		assert.GreaterOrEqual(t, s.Progress().EntriesVisited, prev)
	})

	t.Run("IdempotentRescan", func(t *testing.T) {
		t.Parallel()
		root := makeTree(t)

		run := func() map[string]record.Record {
			s := New(root, 0, record.UnitUTF16)
			require.NoError(t, s.Start())
			wait(t, s)
			out := map[string]record.Record{}
			for _, r := range s.Records() {
				out[r.Path] = r
			}
			return out
		}
		assert.Equal(t, run(), run())
	})
}

func TestSubtreeErrors(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}

	root := t.TempDir()
	blocked := filepath.Join(root, "blocked")
	require.NoError(t, os.MkdirAll(blocked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ok.txt"), nil, 0o644))
	require.NoError(t, os.Chmod(blocked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	s := New(root, 0, record.UnitUTF16)
	require.NoError(t, s.Start())
	wait(t, s)

	assert.Equal(t, StateCompleted, s.State(), "a bad subtree must not fail the session")
	errs := s.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, blocked, errs[0].Path)
	assert.Equal(t, 1, s.Progress().ErrorCount)
}
