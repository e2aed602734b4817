package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "data", "libranet.json"))
	require.NoError(t, err)
	return store
}

func sampleSnapshot() *Snapshot {
	borrowed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	due := borrowed.AddDate(0, 0, 3)
	snap := NewSnapshot()
	snap.Members[123456] = &Member{
		ID:            123456,
		Name:          "Alice",
		Address:       "1 Main St",
		Mobile:        "555-0101",
		BorrowedItems: []int64{1001},
		Subscriptions: []Subscription{{Name: "Time", Frequency: "Weekly"}},
		History: []HistoryEntry{{
			Date: borrowed, Action: "Borrowed", Item: "The Hobbit",
			Category: "Book", Details: "Due 2025-03-04",
		}},
		FineDue: 20,
	}
	snap.Items[1001] = &Item{
		ID: 1001, Title: "The Hobbit", Author: "J.R.R. Tolkien",
		Category: CategoryBook, BorrowedBy: 123456,
		BorrowDate: &borrowed, DueDate: &due,
	}
	snap.Items[1002] = &Item{
		ID: 1002, Title: "Becoming (Audiobook)", Author: "Michelle Obama",
		Category: CategoryAudiobook, Available: true, Preview: DummyMP3Bytes(),
	}
	return snap
}

func TestFileStoreMissingFileLoadsEmpty(t *testing.T) {
	store := tempFileStore(t)
	snap, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Members)
	assert.Empty(t, snap.Items)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := tempFileStore(t)
	want := sampleSnapshot()
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	require.Len(t, got.Items, 2)

	mem := got.Members[123456]
	require.NotNil(t, mem)
	assert.Equal(t, "Alice", mem.Name)
	assert.Equal(t, []int64{1001}, mem.BorrowedItems)
	assert.Equal(t, int64(20), mem.FineDue)
	require.Len(t, mem.History, 1)
	assert.Equal(t, "Borrowed", mem.History[0].Action)

	it := got.Items[1001]
	require.NotNil(t, it)
	assert.False(t, it.Available)
	require.NotNil(t, it.DueDate)
	assert.True(t, it.DueDate.Equal(*want.Items[1001].DueDate))

	audio := got.Items[1002]
	require.NotNil(t, audio)
	assert.Equal(t, DummyMP3Bytes(), audio.Preview)
}

func TestFileStoreSnapshotLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "libranet.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleSnapshot()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(raw)

	// Identifier-keyed maps under users/items, ISO-8601 timestamps,
	// base64 preview payloads.
	assert.Contains(t, doc, `"users"`)
	assert.Contains(t, doc, `"items"`)
	assert.Contains(t, doc, `"123456"`)
	assert.Contains(t, doc, `"2025-03-01T12:00:00Z"`)
	assert.Contains(t, doc, `"preview_b64"`)
	assert.NotContains(t, doc, "ID3", "preview must be base64-encoded, not raw")
}

func TestFileStoreOverwrite(t *testing.T) {
	store := tempFileStore(t)
	require.NoError(t, store.Save(sampleSnapshot()))

	empty := NewSnapshot()
	require.NoError(t, store.Save(empty))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Members)
	assert.Empty(t, got.Items)
}
