package membudget

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/AgustinJimenez/llama-membudget/util/anyx"
)

// _FullAttentionIntervalKeySuffix marks the hybrid-attention interval metadata,
// the full key is prefixed with the architecture family,
// e.g. "qwen35moe.full_attention_interval".
const _FullAttentionIntervalKeySuffix = ".full_attention_interval"

// KVCacheLayers returns the number of layers that allocate a KV cache.
//
// Hybrid architectures interleave full-attention layers with
// recurrent/state-space layers that carry no KV cache,
// so only every Nth layer allocates one,
// where N is the full-attention interval announced in the metadata.
// Pure recurrent families, mamba and rwkv, allocate none at all.
// Everything else is a standard transformer caching on every layer.
func (desc *ModelArchitectureDescriptor) KVCacheLayers() uint64 {
	if desc == nil {
		return _DefaultBlockCount
	}

	n := resolveParam(_DefaultBlockCount,
		fromUint(desc.BlockCount),
		fromString(desc.BlockCountRaw),
		fromUint(desc.BlockCountEstimated))

	if iv, ok := findFullAttentionInterval(desc.ExtraMetadata); ok {
		return uint64(math.Ceil(float64(n) / iv))
	}

	arch := strings.ToLower(desc.Architecture)
	if strings.Contains(arch, "mamba") || strings.Contains(arch, "rwkv") {
		return 0
	}

	return n
}

// findFullAttentionInterval scans the metadata for a full-attention interval.
//
// Map iteration order is randomized,
// so "first match wins" is pinned to the lexicographically smallest matching key
// to keep the result reproducible when several families announce an interval.
func findFullAttentionInterval(md map[string]any) (float64, bool) {
	if len(md) == 0 {
		return 0, false
	}

	ks := maps.Keys(md)
	sort.Strings(ks)
	for i := range ks {
		if !strings.HasSuffix(ks[i], _FullAttentionIntervalKeySuffix) {
			continue
		}
		v := anyx.Number[float64](md[ks[i]])
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			continue
		}
		return v, true
	}
	return 0, false
}
