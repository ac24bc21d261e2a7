package membudget

// ModelArchitectureDescriptor represents the structural metadata of a loaded model.
//
// A descriptor is built once when the model metadata is loaded,
// e.g. by DescriptorFromMetadata or DescriptorFromRemoteProps,
// and stays immutable until the model is swapped out.
// The resolvers below never mutate it,
// so a single descriptor can back any number of concurrent estimates.
//
// The same structural fact may be present in several places,
// typed field, raw string field, heuristic estimate,
// because the upstream metadata sources disagree with each other.
// Resolution order lives in ResolveArchitecture.
type ModelArchitectureDescriptor struct {
	// Architecture describes what architecture this model implements,
	// e.g. "llama", "mamba", "qwen35moe".
	//
	// All lowercase ASCII.
	Architecture string `json:"architecture"`

	// BlockCount(n_layer) is the number of transformer blocks.
	BlockCount uint64 `json:"blockCount,omitempty"`
	// BlockCountRaw is the raw string form of the block count,
	// as surfaced by loaders that only expose textual metadata.
	BlockCountRaw string `json:"blockCountRaw,omitempty"`
	// BlockCountEstimated is a previously estimated block count,
	// used when neither BlockCount nor BlockCountRaw resolves.
	BlockCountEstimated uint64 `json:"blockCountEstimated,omitempty"`

	// AttentionHeadCount(n_head) is the number of attention heads.
	AttentionHeadCount uint64 `json:"attentionHeadCount,omitempty"`
	// AttentionHeadCountRaw is the raw string form of AttentionHeadCount.
	AttentionHeadCountRaw string `json:"attentionHeadCountRaw,omitempty"`

	// AttentionHeadCountKV(n_head_kv) is the number of attention heads per group
	// used in Grouped-Query-Attention.
	//
	// If not provided or equal to AttentionHeadCount,
	// the model does not use Grouped-Query-Attention.
	AttentionHeadCountKV uint64 `json:"attentionHeadCountKV,omitempty"`
	// AttentionHeadCountKVRaw is the raw string form of AttentionHeadCountKV.
	AttentionHeadCountKVRaw string `json:"attentionHeadCountKVRaw,omitempty"`

	// EmbeddingLength(n_embd) is the length of the embedding layer.
	EmbeddingLength uint64 `json:"embeddingLength,omitempty"`
	// EmbeddingLengthRaw is the raw string form of EmbeddingLength.
	EmbeddingLengthRaw string `json:"embeddingLengthRaw,omitempty"`

	// ModelSize is the size of the model weights when loading.
	ModelSize GigabytesScalar `json:"modelSize,omitempty"`

	// ExtraMetadata carries the architecture-specific metadata keys
	// that have no typed field above,
	// e.g. "qwen35moe.full_attention_interval".
	ExtraMetadata map[string]any `json:"extraMetadata,omitempty"`
}
