package kv_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/kv"
)

func runStoreContract(t *testing.T, store kv.Store) {
	t.Helper()

	got, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got, "absent key reads as nil")

	require.NoError(t, store.Set("k", []byte("v1")))
	got, err = store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, store.Set("k", []byte("v2")))
	got, err = store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got, "set overwrites")

	require.NoError(t, store.Delete("k"))
	got, err = store.Get("k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Delete("k"), "deleting an absent key is fine")
}

func TestMemory(t *testing.T) {
	store := kv.NewMemory()
	defer store.Close()
	runStoreContract(t, store)
}

func TestMemoryCopiesValues(t *testing.T) {
	store := kv.NewMemory()
	v := []byte("abc")
	require.NoError(t, store.Set("k", v))
	v[0] = 'x'

	got, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	store, err := kv.OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()
	runStoreContract(t, store)
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	store, err := kv.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("v")))
	require.NoError(t, store.Close())

	reopened, err := kv.OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
