package membudget

import (
	"github.com/AgustinJimenez/llama-membudget/util/ptr"
)

// DefaultFixedOverhead is the fixed VRAM overhead assumed for runtime buffers,
// CUDA context and the like,
// applied by the configuration surface when the caller does not override it.
const DefaultFixedOverhead GigabytesScalar = 2.0

// _DefaultContextSize is assumed when the caller does not pick a context size.
const _DefaultContextSize int32 = 4096

// Types for the memory budget estimation.
type (
	// HardwareBudget represents the caller's current view of hardware capacity.
	//
	// It is supplied fresh on every estimation,
	// this package performs no hardware detection of its own.
	HardwareBudget struct {
		// AvailableVRAM is the VRAM capacity of the GPU side.
		AvailableVRAM GigabytesScalar `json:"availableVram"`
		// AvailableRAM is the system RAM capacity of the CPU side.
		AvailableRAM GigabytesScalar `json:"availableRam"`
		// FixedOverhead is the fixed VRAM overhead charged on top of
		// weights and KV cache.
		FixedOverhead GigabytesScalar `json:"fixedOverhead"`
	}

	// MemoryBreakdown represents the estimated result of loading the model
	// with the requested GPU/CPU layer split.
	MemoryBreakdown struct {
		// Layers is the total number of transformer blocks.
		Layers uint64 `json:"layers"`
		// GPULayers is the clamped number of layers placed on the GPU.
		GPULayers uint64 `json:"gpuLayers"`
		// ContextSize is the context length the KV cache is sized for.
		ContextSize int32 `json:"contextSize"`
		// CacheKeyType is the quantization type of the key cache side.
		CacheKeyType CacheType `json:"cacheKeyType"`
		// CacheValueType is the quantization type of the value cache side.
		CacheValueType CacheType `json:"cacheValueType"`
		// VRAM is the budget of the GPU side.
		VRAM VRAMBreakdown `json:"vram"`
		// RAM is the budget of the CPU side.
		RAM RAMBreakdown `json:"ram"`
	}

	// VRAMBreakdown represents the GPU side of a MemoryBreakdown.
	VRAMBreakdown struct {
		// Total is the declared VRAM capacity.
		Total GigabytesScalar `json:"total"`
		// ModelGPU is the weight share of the offloaded layers.
		ModelGPU GigabytesScalar `json:"modelGpu"`
		// KVCache is the attention key/value cache usage.
		KVCache GigabytesScalar `json:"kvCache"`
		// Overhead is the fixed runtime overhead.
		Overhead GigabytesScalar `json:"overhead"`
		// Available is what remains of Total, never negative.
		Available GigabytesScalar `json:"available"`
		// Overcommitted reports whether usage exceeds Total.
		Overcommitted bool `json:"overcommitted"`
	}

	// RAMBreakdown represents the CPU side of a MemoryBreakdown.
	RAMBreakdown struct {
		// Total is the declared RAM capacity.
		Total GigabytesScalar `json:"total"`
		// ModelCPU is the weight share of the layers kept on the CPU.
		ModelCPU GigabytesScalar `json:"modelCpu"`
		// Available is what remains of Total, never negative.
		Available GigabytesScalar `json:"available"`
		// Overcommitted reports whether usage exceeds Total.
		Overcommitted bool `json:"overcommitted"`
	}
)

// EstimateMemoryBreakdown returns the estimated memory consumption of loading
// the described model with the requested GPU/CPU layer split.
//
// The estimation is a pure function of its inputs,
// it performs no I/O, holds no state between calls,
// and is safe to invoke concurrently.
// Hosts re-invoke it on every relevant input change,
// a slider drag included, so it must stay cheap,
// see BreakdownMemo for an optional caller-side memoizer.
//
// A nil descriptor means no model is loaded,
// the result then carries zero usage with the fixed overhead preserved,
// a well-defined empty state rather than an error.
func EstimateMemoryBreakdown(desc *ModelArchitectureDescriptor, hw HardwareBudget, opts ...BudgetEstimateOption) (b MemoryBreakdown) {
	var o _BudgetEstimateOptions
	for _, opt := range opts {
		opt(&o)
	}

	nContext := ptr.Deref(o.ContextSize, _DefaultContextSize)
	kt := ptr.Deref(o.CacheKeyType, CacheTypeF16)
	vt := ptr.Deref(o.CacheValueType, CacheTypeF16)

	b.ContextSize = nContext
	b.CacheKeyType = kt
	b.CacheValueType = vt
	b.VRAM.Total = hw.AvailableVRAM
	b.VRAM.Overhead = hw.FixedOverhead
	b.RAM.Total = hw.AvailableRAM

	if desc == nil {
		b.VRAM.Available = max(0, b.VRAM.Total-b.VRAM.Overhead)
		b.RAM.Available = b.RAM.Total
		return b
	}

	a := ResolveArchitecture(desc)
	b.Layers = a.TotalLayers

	// Clamp the requested split into [0, TotalLayers].
	nGPULayers := a.TotalLayers
	if v := o.GPULayers; v != nil {
		switch {
		case *v < 0:
			nGPULayers = 0
		case uint64(*v) > a.TotalLayers:
			nGPULayers = a.TotalLayers
		default:
			nGPULayers = uint64(*v)
		}
	}
	b.GPULayers = nGPULayers

	var gpuFraction float64
	if a.TotalLayers > 0 {
		gpuFraction = float64(nGPULayers) / float64(a.TotalLayers)
	}

	// Weight,
	// assumed uniformly distributed across layers.
	b.VRAM.ModelGPU = GigabytesScalar(float64(a.ModelSize) * gpuFraction)
	b.RAM.ModelCPU = GigabytesScalar(float64(a.ModelSize) * (1 - gpuFraction))

	// KV cache,
	// entirely GPU resident,
	// sized once per cache side and summed.
	// Architectures with no cacheable attention contribute nothing,
	// degenerate head counts likewise,
	// instead of producing NaN or negative sizes.
	if a.KVCacheLayers > 0 && a.AttentionHeadCount > 0 && a.AttentionHeadCountKV > 0 {
		headDim := float64(a.EmbeddingLength) / float64(a.AttentionHeadCount)
		els := float64(nContext) * float64(a.KVCacheLayers) * float64(a.AttentionHeadCountKV) * headDim
		bs := els*kt.BytesPerElement() + els*vt.BytesPerElement()
		b.VRAM.KVCache = GigabytesScalar(bs / _Gi)
	}

	vramUsed := b.VRAM.ModelGPU + b.VRAM.KVCache + b.VRAM.Overhead
	ramUsed := b.RAM.ModelCPU
	b.VRAM.Available = max(0, b.VRAM.Total-vramUsed)
	b.VRAM.Overcommitted = vramUsed > b.VRAM.Total
	b.RAM.Available = max(0, b.RAM.Total-ramUsed)
	b.RAM.Overcommitted = ramUsed > b.RAM.Total

	return b
}
