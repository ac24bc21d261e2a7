package membudget

type (
	_BudgetEstimateOptions struct {
		GPULayers      *int
		ContextSize    *int32
		CacheKeyType   *CacheType
		CacheValueType *CacheType
	}

	// BudgetEstimateOption is the options for the estimate.
	BudgetEstimateOption func(*_BudgetEstimateOptions)
)

// WithGPULayers sets the number of layers to place on the GPU,
// out-of-range values are clamped into [0, TotalLayers] during the estimate,
// default is placing all layers on the GPU.
func WithGPULayers(layers int) BudgetEstimateOption {
	return func(o *_BudgetEstimateOptions) {
		o.GPULayers = &layers
	}
}

// WithContextSize sets the context length in tokens to size the KV cache for,
// default is 4096.
func WithContextSize(size int32) BudgetEstimateOption {
	return func(o *_BudgetEstimateOptions) {
		if size <= 0 {
			return
		}
		o.ContextSize = &size
	}
}

// WithCacheKeyType sets the quantization type of the key cache side,
// default is f16.
func WithCacheKeyType(t CacheType) BudgetEstimateOption {
	return func(o *_BudgetEstimateOptions) {
		if t == "" {
			return
		}
		o.CacheKeyType = &t
	}
}

// WithCacheValueType sets the quantization type of the value cache side,
// default is f16.
func WithCacheValueType(t CacheType) BudgetEstimateOption {
	return func(o *_BudgetEstimateOptions) {
		if t == "" {
			return
		}
		o.CacheValueType = &t
	}
}
