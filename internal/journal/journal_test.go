package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadwood/internal/locator"
	"deadwood/internal/remover"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func removal(name string, start, end int, text string) remover.Removal {
	return remover.Removal{
		Boundary: locator.Boundary{StartLine: start, EndLine: end, Name: name},
		Text:     text,
	}
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, "src/db.ts", removal("saveUserProfile", 10, 20, "function body")))
	require.NoError(t, j.Record(ctx, "src/db.ts", removal("getUserProfile", 30, 40, "other body")))
	require.NoError(t, j.Record(ctx, "src/feeds.ts", removal("updateFeedStats", 5, 9, "feed body")))

	entries, err := j.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "updateFeedStats", entries[0].Name)
	assert.Equal(t, "getUserProfile", entries[1].Name)
	assert.Equal(t, "saveUserProfile", entries[2].Name)

	assert.Equal(t, 10, entries[2].StartLine)
	assert.Equal(t, 20, entries[2].EndLine)
	assert.Equal(t, "function body", entries[2].Content)
	assert.False(t, entries[2].RemovedAt.IsZero())
}

func TestJournal_RecentFiltersByFile(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, "src/db.ts", removal("a", 1, 2, "x")))
	require.NoError(t, j.Record(ctx, "src/feeds.ts", removal("b", 3, 4, "y")))

	entries, err := j.Recent(ctx, "src/feeds.ts", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Name)
}

func TestJournal_RecentLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(ctx, "src/db.ts", removal("f", i+1, i+1, "x")))
	}

	entries, err := j.Recent(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestJournal_ReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, "src/db.ts", removal("keep", 1, 3, "body")))
	require.NoError(t, j.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	entries, err := j2.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].Name)
}
