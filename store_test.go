package stocktrack_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"stocktrack"
	"stocktrack/kv"
)

func TestStoreRoundTrip(t *testing.T) {
	backend := kv.NewMemory()
	store := stocktrack.NewStore(backend, nil)

	now := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	log := []stocktrack.Transaction{
		{
			ID: "a", Kind: stocktrack.KindIn, Item: "bolt", DisplayItem: "Bolt",
			Quantity: 10, UnitPrice: 2.5, TotalPrice: 25, Supplier: "S", ReceivedBy: "R",
			Note: "first batch", Timestamp: now, Date: "8/28/2026", Time: "9:30 AM",
		},
		{
			ID: "b", Kind: stocktrack.KindOut, Item: "bolt", Quantity: 3,
			Person: "P", Reason: "repair", Timestamp: now.Add(time.Hour),
			Date: "8/28/2026", Time: "10:30 AM",
		},
	}
	require.NoError(t, store.SaveAll(log))

	got := store.LoadAll()
	require.Len(t, got, 2)
	for i := range log {
		want := log[i]
		have := got[i]
		assert.True(t, want.Timestamp.Equal(have.Timestamp))
		want.Timestamp = time.Time{}
		have.Timestamp = time.Time{}
		assert.Equal(t, want, have)
	}
}

func TestLoadAllAbsentAndCorrupt(t *testing.T) {
	backend := kv.NewMemory()
	store := stocktrack.NewStore(backend, nil)

	assert.Empty(t, store.LoadAll())

	require.NoError(t, backend.Set(stocktrack.KeyStockData, []byte("not msgpack at all")))
	assert.Empty(t, store.LoadAll(), "corrupt blob reads as empty")

	_, err := store.LoadAllStrict()
	assert.Error(t, err, "strict load surfaces the decode failure")
}

func TestLoadAllAssignsMissingIDs(t *testing.T) {
	backend := kv.NewMemory()
	store := stocktrack.NewStore(backend, nil)

	legacy := []stocktrack.Transaction{
		{Kind: stocktrack.KindIn, Item: "bolt", Quantity: 1},
		{Kind: stocktrack.KindOut, Item: "bolt", Quantity: 1},
	}
	raw, err := msgpack.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, backend.Set(stocktrack.KeyStockData, raw))

	got := store.LoadAll()
	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].ID)
	assert.NotEmpty(t, got[1].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)

	// The assignment is persisted: a second load sees the same IDs.
	again := store.LoadAll()
	require.Len(t, again, 2)
	assert.Equal(t, got[0].ID, again[0].ID)
	assert.Equal(t, got[1].ID, again[1].ID)
}

func TestSaveAllNotifies(t *testing.T) {
	backend := kv.NewMemory()
	store := stocktrack.NewStore(backend, nil)

	fired := 0
	store.Subscribe(func() { fired++ })
	store.Subscribe(func() { fired++ })

	require.NoError(t, store.SaveAll(nil))
	assert.Equal(t, 2, fired)

	require.NoError(t, store.SaveAll(nil))
	assert.Equal(t, 4, fired)
}

func TestLastUpdatedMarker(t *testing.T) {
	backend := kv.NewMemory()
	store := stocktrack.NewStore(backend, nil)

	assert.True(t, store.LastUpdated().IsZero())

	before := time.Now().Add(-time.Second)
	require.NoError(t, store.SaveAll(nil))
	stamp := store.LastUpdated()
	assert.False(t, stamp.IsZero())
	assert.True(t, stamp.After(before))
}
