package membudget

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgustinJimenez/llama-membudget/util/osx"
)

func TestDescriptorCache(t *testing.T) {
	const key = "http://127.0.0.1:8080/props"

	d := &ModelArchitectureDescriptor{
		Architecture:       "llama",
		BlockCount:         32,
		AttentionHeadCount: 32,
		EmbeddingLength:    4096,
		ModelSize:          8.5,
	}

	t.Run("empty path disables the cache", func(t *testing.T) {
		c := DescriptorCache("")
		_, err := c.Get(key, 0)
		assert.ErrorIs(t, err, ErrDescriptorCacheDisabled)
		assert.ErrorIs(t, c.Put(key, d), ErrDescriptorCacheDisabled)
		assert.ErrorIs(t, c.Delete(key), ErrDescriptorCacheDisabled)
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		c := DescriptorCache(t.TempDir())
		require.NoError(t, c.Put(key, d))
		actual, err := c.Get(key, 0)
		require.NoError(t, err)
		assert.Equal(t, d, actual)
	})

	t.Run("unknown key misses", func(t *testing.T) {
		c := DescriptorCache(t.TempDir())
		_, err := c.Get(key, 0)
		assert.ErrorIs(t, err, ErrDescriptorCacheMissed)
	})

	t.Run("expired entry misses", func(t *testing.T) {
		c := DescriptorCache(t.TempDir())
		require.NoError(t, c.Put(key, d))

		stale := time.Now().Add(-2 * time.Hour)
		require.NoError(t, os.Chtimes(c.getKeyPath(key), stale, stale))

		_, err := c.Get(key, time.Hour)
		assert.ErrorIs(t, err, ErrDescriptorCacheMissed)

		// A negative expiration never expires.
		actual, err := c.Get(key, -1)
		require.NoError(t, err)
		assert.Equal(t, d, actual)
	})

	t.Run("corrupted entry reports instead of decoding", func(t *testing.T) {
		c := DescriptorCache(t.TempDir())
		require.NoError(t, osx.WriteFile(c.getKeyPath(key), []byte("{not json"), 0o600))
		_, err := c.Get(key, 0)
		assert.ErrorIs(t, err, ErrDescriptorCacheCorrupted)

		require.NoError(t, osx.WriteFile(c.getKeyPath(key), []byte(`{"blockCount":32}`), 0o600))
		_, err = c.Get(key, 0)
		assert.ErrorIs(t, err, ErrDescriptorCacheCorrupted)
	})

	t.Run("incomplete descriptor is not cached", func(t *testing.T) {
		c := DescriptorCache(t.TempDir())
		assert.Error(t, c.Put(key, nil))
		assert.Error(t, c.Put(key, &ModelArchitectureDescriptor{}))
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		c := DescriptorCache(t.TempDir())
		require.NoError(t, c.Put(key, d))
		require.NoError(t, c.Delete(key))
		_, err := c.Get(key, 0)
		assert.ErrorIs(t, err, ErrDescriptorCacheMissed)
		assert.ErrorIs(t, c.Delete(key), ErrDescriptorCacheMissed)
	})
}
