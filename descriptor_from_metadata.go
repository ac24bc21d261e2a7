package membudget

import (
	"strings"

	"github.com/AgustinJimenez/llama-membudget/util/anyx"
)

// DescriptorFromMetadata builds a descriptor from a flat metadata key/value map,
// following the GGUF naming convention,
// "general.*" keys describe the file and "<architecture>.*" keys describe the model.
//
// Numeric values fill the typed fields,
// string values fill the raw fields,
// everything else under the architecture prefix lands in ExtraMetadata.
func DescriptorFromMetadata(md map[string]any) *ModelArchitectureDescriptor {
	if md == nil {
		return nil
	}

	arch := "llama"
	if v, ok := md["general.architecture"]; ok {
		if s := strings.ToLower(strings.TrimSpace(anyx.String(v))); s != "" {
			arch = s
		}
	}

	d := &ModelArchitectureDescriptor{
		Architecture: arch,
	}

	consumed := map[string]struct{}{}
	take := func(key string, typed *uint64, raw *string) {
		v, ok := md[arch+"."+key]
		if !ok {
			return
		}
		consumed[arch+"."+key] = struct{}{}
		if s, ok := v.(string); ok {
			*raw = s
			return
		}
		*typed = anyx.Number[uint64](v)
	}

	take("block_count", &d.BlockCount, &d.BlockCountRaw)
	take("attention.head_count", &d.AttentionHeadCount, &d.AttentionHeadCountRaw)
	take("attention.head_count_kv", &d.AttentionHeadCountKV, &d.AttentionHeadCountKVRaw)
	take("embedding_length", &d.EmbeddingLength, &d.EmbeddingLengthRaw)

	if v, ok := md["general.size"]; ok {
		d.ModelSize = GigabytesScalar(anyx.Number[float64](v))
	}

	prefix := arch + "."
	for k, v := range md {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if _, ok := consumed[k]; ok {
			continue
		}
		if d.ExtraMetadata == nil {
			d.ExtraMetadata = map[string]any{}
		}
		d.ExtraMetadata[k] = v
	}

	return d
}
