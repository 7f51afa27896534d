package notary

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)

	rec := Record{
		TxID:         "TX1",
		DocumentID:   "doc-1",
		DocumentName: "Report.pdf",
		FileHash:     "abc123",
		NoteJSON:     `{"type":"DOC"}`,
		Status:       RecordStatusSubmitted,
	}
	require.NoError(t, store.SaveRecord(rec))

	got, found, err := store.GetByTxID("TX1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "doc-1", got.DocumentID)
	assert.Equal(t, RecordStatusSubmitted, got.Status)
	assert.NotZero(t, got.CreatedAtUnix)
}

func TestStoreUpsertPreservesCreation(t *testing.T) {
	store := newTestStore(t)

	rec := Record{TxID: "TX1", DocumentID: "doc-1", DocumentName: "n", FileHash: "h", NoteJSON: "{}", Status: RecordStatusSubmitted}
	require.NoError(t, store.SaveRecord(rec))

	first, _, err := store.GetByTxID("TX1")
	require.NoError(t, err)

	first.Status = RecordStatusConfirmed
	first.ConfirmedRound = 424242
	require.NoError(t, store.SaveRecord(first))

	got, found, err := store.GetByTxID("TX1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, RecordStatusConfirmed, got.Status)
	assert.Equal(t, uint64(424242), got.ConfirmedRound)
	assert.Equal(t, first.CreatedAtUnix, got.CreatedAtUnix)
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.GetByTxID("NOPE")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreRejectsEmptyTxID(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.SaveRecord(Record{DocumentID: "doc-1"}))
}

func TestStoreListRecent(t *testing.T) {
	store := newTestStore(t)

	for _, rec := range []Record{
		{TxID: "TX1", DocumentID: "doc-1", DocumentName: "a", FileHash: "h1", NoteJSON: "{}", Status: RecordStatusConfirmed, CreatedAtUnix: 100},
		{TxID: "TX2", DocumentID: "doc-2", DocumentName: "b", FileHash: "h2", NoteJSON: "{}", Status: RecordStatusFailed, CreatedAtUnix: 200},
		{TxID: "TX3", DocumentID: "doc-3", DocumentName: "c", FileHash: "h3", NoteJSON: "{}", Status: RecordStatusSubmitted, CreatedAtUnix: 300},
	} {
		require.NoError(t, store.SaveRecord(rec))
	}

	recs, err := store.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "TX3", recs[0].TxID)
	assert.Equal(t, "TX2", recs[1].TxID)

	all, err := store.ListRecent(0) // default limit
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNilStoreIsInert(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Close())
	assert.Error(t, store.SaveRecord(Record{TxID: "TX"}))
	_, _, err := store.GetByTxID("TX")
	assert.Error(t, err)
	_, err = store.ListRecent(5)
	assert.Error(t, err)
}
