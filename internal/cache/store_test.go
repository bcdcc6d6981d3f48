package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreBasicOps(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("missing")
	require.False(t, ok)

	store.Set("a", []byte("1"))
	payload, ok := store.Get("a")
	require.True(t, ok)
	require.Equal(t, []byte("1"), payload)

	store.Set("a", []byte("2"))
	payload, _ = store.Get("a")
	require.Equal(t, []byte("2"), payload)

	store.Delete("a")
	_, ok = store.Get("a")
	require.False(t, ok)
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	store := NewMemoryStore()
	store.Set("chunk:1", []byte("a"))
	store.Set("chunk:2", []byte("b"))
	store.Set("chunks:all", []byte("c"))
	store.Set("search:text:10:q", []byte("d"))

	store.DeletePrefix("chunk:")

	_, ok := store.Get("chunk:1")
	require.False(t, ok)
	_, ok = store.Get("chunk:2")
	require.False(t, ok)
	_, ok = store.Get("chunks:all")
	require.True(t, ok)
	_, ok = store.Get("search:text:10:q")
	require.True(t, ok)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	store.Set("a", []byte("1"))
	store.Set("b", []byte("2"))
	store.Clear()
	require.Equal(t, 0, store.Len())
}
