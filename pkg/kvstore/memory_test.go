package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenscan/nft-indexer/pkg/infra"
)

func TestMemoryStore_MirrorsBadgerSemantics(t *testing.T) {
	store := NewMemoryStore("test", infra.JSON)
	defer store.Close()

	require.NoError(t, store.Set("k", "v"))
	v, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = store.Get("")
	assert.ErrorIs(t, err, ErrKeyEmpty)
}

func TestMemoryStore_StructRoundTrip(t *testing.T) {
	store := NewMemoryStore("", infra.JSON)

	type record struct {
		ID    string `json:"id"`
		Count uint64 `json:"count"`
	}

	require.NoError(t, store.SetAny("records/a", record{ID: "a", Count: 2}))

	var out record
	found, err := store.GetAny("records/a", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record{ID: "a", Count: 2}, out)

	found, err = store.GetAny("records/b", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_ListSortedByKey(t *testing.T) {
	store := NewMemoryStore("", infra.JSON)

	require.NoError(t, store.Set("accounts/0xb", "2"))
	require.NoError(t, store.Set("accounts/0xa", "1"))
	require.NoError(t, store.Set("transfers/tx", "3"))

	kvs, err := store.List("accounts/")
	require.NoError(t, err)
	require.Len(t, kvs, 2)
	assert.Equal(t, "accounts/0xa", kvs[0].Key)
	assert.Equal(t, "accounts/0xb", kvs[1].Key)
}
