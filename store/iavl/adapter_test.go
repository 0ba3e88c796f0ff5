package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStorePersistsVersions(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, s.LoadLatestVersion())

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("foo"), []byte("bar")))
	require.NoError(t, cache.Set([]byte("fuz"), []byte("baz")))
	require.NoError(t, cache.Write())

	id, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)
	s.Close()

	reopened, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())
	assert.Equal(t, id, reopened.LatestVersion())

	val, err := reopened.Get([]byte("foo"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bar"), val)

	it, err := reopened.Iterator([]byte("f"), []byte("g"))
	require.NoError(t, err)
	defer it.Close()
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"foo", "fuz"}, keys)
}

func TestCommitStoreDiscard(t *testing.T) {
	s := NewMemCommitStore()
	defer s.Close()

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("foo"), []byte("bar")))
	cache.Discard()

	has, err := s.Has([]byte("foo"))
	require.NoError(t, err)
	assert.False(t, has)
}
