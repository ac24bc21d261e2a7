package membudget

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorFromRemoteProps(t *testing.T) {
	ctx := context.Background()

	const props = `{
		"default_generation_settings": {
			"model_meta": {
				"general.architecture": "llama",
				"general.size": 8.5,
				"llama.block_count": 32,
				"llama.attention.head_count": 32,
				"llama.attention.head_count_kv": 8,
				"llama.embedding_length": 4096
			}
		}
	}`

	expected := &ModelArchitectureDescriptor{
		Architecture:         "llama",
		BlockCount:           32,
		AttentionHeadCount:   32,
		AttentionHeadCountKV: 8,
		EmbeddingLength:      4096,
		ModelSize:            8.5,
	}

	t.Run("nested model meta", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(props))
		}))
		defer srv.Close()

		actual, err := DescriptorFromRemoteProps(ctx, srv.URL+"/props", SkipProxy(), SkipDNSCache())
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	})

	t.Run("top-level model meta fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"model_meta": {"general.architecture": "mamba", "mamba.block_count": 64}}`))
		}))
		defer srv.Close()

		actual, err := DescriptorFromRemoteProps(ctx, srv.URL+"/props", SkipProxy(), SkipDNSCache())
		require.NoError(t, err)
		assert.Equal(t, "mamba", actual.Architecture)
		assert.Equal(t, uint64(64), actual.BlockCount)
	})

	t.Run("missing model meta fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := DescriptorFromRemoteProps(ctx, srv.URL+"/props", SkipProxy(), SkipDNSCache())
		assert.Error(t, err)
	})

	t.Run("non-ok status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := DescriptorFromRemoteProps(ctx, srv.URL+"/props", SkipProxy(), SkipDNSCache())
		assert.Error(t, err)
	})

	t.Run("bearer auth is attached", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(props))
		}))
		defer srv.Close()

		_, err := DescriptorFromRemoteProps(ctx, srv.URL+"/props", SkipProxy(), SkipDNSCache())
		assert.Error(t, err)

		actual, err := DescriptorFromRemoteProps(ctx, srv.URL+"/props",
			SkipProxy(), SkipDNSCache(), UseBearerAuth("secret"))
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	})

	t.Run("cache serves repeats", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(props))
		}))
		defer srv.Close()

		cachePath := t.TempDir()
		for i := 0; i < 3; i++ {
			actual, err := DescriptorFromRemoteProps(ctx, srv.URL+"/props",
				SkipProxy(), SkipDNSCache(), UseCachePath(cachePath))
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		}
		assert.Equal(t, int32(1), hits.Load())
	})
}
