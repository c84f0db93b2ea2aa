package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
)

func newReport(id string, started time.Time, broken ...linkcheck.BrokenLink) *linkcheck.Report {
	return &linkcheck.Report{
		RunID:     id,
		Root:      "/repo",
		StartedAt: started,
		Duration:  2 * time.Millisecond,
		Broken:    broken,
		Stats:     linkcheck.Stats{Files: 3, Links: 7, Checked: 5},
	}
}

func TestSQLiteStore_RecordAndQuery(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := t.Context()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, newReport("run-1", base)))
	require.NoError(t, store.Record(ctx, newReport("run-2", base.Add(time.Minute),
		linkcheck.BrokenLink{Source: "docs/a.md", Target: "./missing.md"},
		linkcheck.BrokenLink{Source: "README.md", Target: "<gone.md>"},
	)))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, 2, runs[0].Broken)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, 0, runs[1].Broken)
	assert.Equal(t, 3, runs[1].Files)
	assert.Equal(t, 7, runs[1].Links)
	assert.Equal(t, 5, runs[1].Checked)
	assert.InDelta(t, 2.0, runs[1].DurationMS, 0.001)
	assert.True(t, runs[1].StartedAt.Equal(base))

	links, err := store.BrokenLinks(ctx, "run-2")
	require.NoError(t, err)
	assert.Equal(t, []linkcheck.BrokenLink{
		{Source: "docs/a.md", Target: "./missing.md"},
		{Source: "README.md", Target: "<gone.md>"},
	}, links)

	links, err = store.BrokenLinks(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestSQLiteStore_RecentLimit(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := t.Context()

	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, newReport(id, base.Add(time.Duration(i)*time.Second))))
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	runs, err = store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSQLiteStore_DuplicateRunIsStorageError(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := t.Context()

	report := newReport("dup", time.Now(), linkcheck.BrokenLink{Source: "a.md", Target: "b.md"})
	require.NoError(t, store.Record(ctx, report))
	err = store.Record(ctx, report)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryStorage))

	links, err := store.BrokenLinks(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, links, 1, "failed record must roll back")
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(t.Context(), newReport("persisted", time.Now())))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "persisted", runs[0].ID)
}
