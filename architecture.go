package membudget

import (
	"strconv"
	"strings"
)

// Hard-coded floors when every metadata source fails to resolve,
// matching the defaults the model loaders assume for an unknown transformer.
const (
	_DefaultBlockCount         uint64 = 48
	_DefaultAttentionHeadCount uint64 = 32
	_DefaultEmbeddingLength    uint64 = 4096
)

// ResolvedArchitecture represents the normalized structural parameters of a model,
// every field is guaranteed usable for sizing arithmetic.
type ResolvedArchitecture struct {
	// TotalLayers is the resolved number of transformer blocks.
	TotalLayers uint64 `json:"totalLayers"`
	// KVCacheLayers is the number of layers that allocate a KV cache,
	// see (*ModelArchitectureDescriptor).KVCacheLayers.
	KVCacheLayers uint64 `json:"kvCacheLayers"`
	// AttentionHeadCount is the resolved number of query heads.
	AttentionHeadCount uint64 `json:"attentionHeadCount"`
	// AttentionHeadCountKV is the resolved number of key/value heads,
	// equal to AttentionHeadCount when the model has no Grouped-Query-Attention.
	AttentionHeadCountKV uint64 `json:"attentionHeadCountKV"`
	// EmbeddingLength is the resolved embedding layer length.
	EmbeddingLength uint64 `json:"embeddingLength"`
	// ModelSize is the size of the model weights when loading.
	ModelSize GigabytesScalar `json:"modelSize"`
}

// paramSource yields one candidate value for a structural parameter.
//
// Sources are evaluated in declaration order,
// the first source that reports ok with a positive value wins.
// Keeping the chain as an ordered slice keeps the priority auditable,
// nested conditionals do not.
type paramSource func() (uint64, bool)

func fromUint(v uint64) paramSource {
	return func() (uint64, bool) {
		return v, v > 0
	}
}

func fromString(s string) paramSource {
	return func() (uint64, bool) {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			// Unparseable means absent, not broken.
			return 0, false
		}
		return v, v > 0
	}
}

func resolveParam(def uint64, srcs ...paramSource) uint64 {
	for i := range srcs {
		if v, ok := srcs[i](); ok {
			return v
		}
	}
	return def
}

// ResolveArchitecture normalizes the structural parameters of the descriptor.
//
// Per field, the first defined positive source wins:
// typed field, then raw string field, then estimate (layers only),
// then the hard-coded default.
// ResolveArchitecture never fails,
// a nil or fully empty descriptor resolves to the defaults.
func ResolveArchitecture(desc *ModelArchitectureDescriptor) (ra ResolvedArchitecture) {
	if desc == nil {
		desc = &ModelArchitectureDescriptor{}
	}

	ra.TotalLayers = resolveParam(_DefaultBlockCount,
		fromUint(desc.BlockCount),
		fromString(desc.BlockCountRaw),
		fromUint(desc.BlockCountEstimated))
	ra.AttentionHeadCount = resolveParam(_DefaultAttentionHeadCount,
		fromUint(desc.AttentionHeadCount),
		fromString(desc.AttentionHeadCountRaw))
	ra.AttentionHeadCountKV = resolveParam(ra.AttentionHeadCount,
		fromUint(desc.AttentionHeadCountKV),
		fromString(desc.AttentionHeadCountKVRaw))
	ra.EmbeddingLength = resolveParam(_DefaultEmbeddingLength,
		fromUint(desc.EmbeddingLength),
		fromString(desc.EmbeddingLengthRaw))
	ra.KVCacheLayers = desc.KVCacheLayers()
	ra.ModelSize = desc.ModelSize
	if ra.ModelSize < 0 {
		ra.ModelSize = 0
	}

	return ra
}
