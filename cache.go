package membudget

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AgustinJimenez/llama-membudget/util/json"
	"github.com/AgustinJimenez/llama-membudget/util/osx"
	"github.com/AgustinJimenez/llama-membudget/util/stringx"
)

// DescriptorCache is a file-backed cache for remote-fetched descriptors,
// keyed by the source URL.
// An empty path disables the cache.
type DescriptorCache string

var (
	ErrDescriptorCacheDisabled  = errors.New("descriptor cache disabled")
	ErrDescriptorCacheMissed    = errors.New("descriptor cache missed")
	ErrDescriptorCacheCorrupted = errors.New("descriptor cache corrupted")
)

func (c DescriptorCache) getKeyPath(key string) string {
	k := stringx.SumByFNV64a(key)
	return filepath.Join(string(c), k[:1], k)
}

// Get returns the descriptor cached under the given key.
//
// A positive expiration invalidates entries older than the expiration,
// judged by the cache file modification time.
func (c DescriptorCache) Get(key string, exp time.Duration) (*ModelArchitectureDescriptor, error) {
	if c == "" {
		return nil, ErrDescriptorCacheDisabled
	}

	p := c.getKeyPath(key)
	stat, err := os.Stat(p)
	if err != nil || !stat.Mode().IsRegular() {
		return nil, ErrDescriptorCacheMissed
	}
	if exp > 0 && time.Since(stat.ModTime()) > exp {
		return nil, ErrDescriptorCacheMissed
	}

	bs, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var d ModelArchitectureDescriptor
	if err = json.Unmarshal(bs, &d); err != nil || d.Architecture == "" {
		return nil, ErrDescriptorCacheCorrupted
	}

	return &d, nil
}

// Put caches the descriptor under the given key.
func (c DescriptorCache) Put(key string, d *ModelArchitectureDescriptor) error {
	if c == "" {
		return ErrDescriptorCacheDisabled
	}
	if d == nil || d.Architecture == "" {
		return errors.New("descriptor is incomplete")
	}

	bs, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal descriptor: %w", err)
	}

	if err = osx.WriteFile(c.getKeyPath(key), bs, 0o600); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes the descriptor cached under the given key.
func (c DescriptorCache) Delete(key string) error {
	if c == "" {
		return ErrDescriptorCacheDisabled
	}

	p := c.getKeyPath(key)
	if !osx.ExistsFile(p) {
		return ErrDescriptorCacheMissed
	}

	return os.Remove(p)
}
