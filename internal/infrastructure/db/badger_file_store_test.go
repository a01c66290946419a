package db

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *BadgerFileStore {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	opts.SyncWrites = false

	badgerDB, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { badgerDB.Close() })

	return NewBadgerFileStore(badgerDB)
}

func TestBadgerFileStorePutAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Put(ctx, "Fact0001.txt", []byte("L|20240513|GASTOS|0\n"))
	require.NoError(t, err)
	assert.Equal(t, "Fact0001.txt", id)

	content, err := store.Get(ctx, "Fact0001.txt")
	require.NoError(t, err)
	assert.Equal(t, "L|20240513|GASTOS|0\n", string(content))

	_, err = store.Get(ctx, "Fact9999.txt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestBadgerFileStorePutEmptyName(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Put(context.Background(), "", []byte("x"))

	assert.Error(t, err)
}

func TestBadgerFileStoreListNames(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Fact0002.txt", "Fact0001.txt", "notes.txt"} {
		_, err := store.Put(ctx, name, []byte("content"))
		require.NoError(t, err)
	}

	names, err := store.ListNames(ctx, "Fact")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fact0001.txt", "Fact0002.txt"}, names)

	all, err := store.ListNames(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.ListNames(ctx, "Ledger")
	require.NoError(t, err)
	assert.Empty(t, none)
}
