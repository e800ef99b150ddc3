package storage

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/gomint/pkg/proto"
)

func mustAddress(t *testing.T, s string) proto.Address {
	a, err := proto.NewAddressFromString(s)
	require.NoError(t, err)
	return a
}

func TestStorageEmpty(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()

	_, ok, err := s.State()
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Asset(1)
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := s.AssetsOf(mustAddress(t, "3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8"))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStorageBatchCommit(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()
	owner := mustAddress(t, "3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8")

	st := State{Name: "Gems", Symbol: "GEM", Price: 1_000_000, SupplyCap: 3, Supply: 2, Collected: 2_000_000, Operator: owner}
	b := s.NewBatch()
	b.PutState(st)
	b.PutAsset(proto.AssetRecord{ID: 2, Owner: owner, Metadata: "b"})
	b.PutAsset(proto.AssetRecord{ID: 1, Owner: owner})
	assert.Equal(t, 5, b.Len())

	// Nothing is visible before the commit.
	_, ok, err := s.State()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Commit(b))

	loaded, ok, err := s.State()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, st, loaded)

	r, ok, err := s.Asset(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, proto.AssetRecord{ID: 2, Owner: owner, Metadata: "b"}, r)

	ids, err := s.AssetsOf(owner)
	require.NoError(t, err)
	assert.Equal(t, []proto.AssetID{1, 2}, ids)
}

func TestStorageReopen(t *testing.T) {
	dir := t.TempDir()
	owner := mustAddress(t, "3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8")

	s, err := Open(dir)
	require.NoError(t, err)
	b := s.NewBatch()
	b.PutState(State{Name: "Gems", Symbol: "GEM", SupplyCap: 10, Supply: 1, Paused: true, Operator: owner})
	b.PutAsset(proto.AssetRecord{ID: 1, Owner: owner, Metadata: "ipfs://x"})
	require.NoError(t, s.Commit(b))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()
	st, ok, err := s.State()
	require.NoError(t, err)
	require.True(t, ok)
	want := State{Name: "Gems", Symbol: "GEM", SupplyCap: 10, Supply: 1, Paused: true, Operator: owner}
	if diff := deep.Equal(want, st); diff != nil {
		t.Errorf("reopened state differs: %v", diff)
	}

	r, ok, err := s.Asset(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ipfs://x", r.Metadata)
}

func TestOwnerKeyRoundTrip(t *testing.T) {
	owner := mustAddress(t, "3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8")
	k := ownerKey{owner: owner, id: 0x0102030405}
	id, ok := idFromOwnerKey(k.bytes())
	require.True(t, ok)
	assert.Equal(t, proto.AssetID(0x0102030405), id)
	_, ok = idFromOwnerKey(k.prefix())
	assert.False(t, ok)
}

func TestAssetCache(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	owner := mustAddress(t, "3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8")
	b := s.NewBatch()
	b.PutAsset(proto.AssetRecord{ID: 1, Owner: owner, Metadata: "a"})
	require.NoError(t, s.Commit(b))
	assert.Zero(t, s.CachedAssets())

	_, ok, err := s.Asset(2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, s.CachedAssets())

	r, ok, err := s.Asset(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), s.CachedAssets())

	cached, ok, err := s.Asset(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r, cached)
	assert.Equal(t, int64(1), s.CachedAssets())
	require.NoError(t, s.Close())
}
