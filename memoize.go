package membudget

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/AgustinJimenez/llama-membudget/util/ptr"
)

// BreakdownMemo memoizes EstimateMemoryBreakdown results.
//
// Estimation is deterministic,
// identical inputs always produce identical breakdowns,
// so an entry never has to be invalidated while the descriptor stays loaded.
// Swap in a fresh memo, or call Reset, when the model is swapped out.
//
// A BreakdownMemo is safe for concurrent use,
// the zero value is ready to use.
type BreakdownMemo struct {
	group   singleflight.Group
	results sync.Map
}

// Estimate is equivalent to EstimateMemoryBreakdown,
// but concurrent calls with the same inputs share a single computation.
func (m *BreakdownMemo) Estimate(
	desc *ModelArchitectureDescriptor,
	hw HardwareBudget,
	opts ...BudgetEstimateOption,
) MemoryBreakdown {
	var o _BudgetEstimateOptions
	for _, opt := range opts {
		opt(&o)
	}

	key := memoKey(desc, hw, &o)
	if v, ok := m.results.Load(key); ok {
		return v.(MemoryBreakdown)
	}

	v, _, _ := m.group.Do(key, func() (any, error) {
		bd := EstimateMemoryBreakdown(desc, hw, opts...)
		m.results.Store(key, bd)
		return bd, nil
	})

	return v.(MemoryBreakdown)
}

// Reset drops all memoized results.
func (m *BreakdownMemo) Reset() {
	m.results.Range(func(k, _ any) bool {
		m.results.Delete(k)
		return true
	})
}

// memoKey identifies one estimate input set.
// The descriptor participates by identity, not by value,
// descriptors are immutable once built so the pointer is a stable identity.
//
// The key must be lossless:
// scalars render at full precision,
// and an absent GPU layer option is distinguished from any explicit value,
// absent means full offload while a negative value clamps to zero.
// Context size and cache types need no presence marker,
// their absent and explicit-default forms estimate identically.
func memoKey(desc *ModelArchitectureDescriptor, hw HardwareBudget, o *_BudgetEstimateOptions) string {
	gl := "-"
	if o.GPULayers != nil {
		gl = strconv.Itoa(*o.GPULayers)
	}
	return strings.Join([]string{
		fmt.Sprintf("%p", desc),
		strconv.FormatFloat(float64(hw.AvailableVRAM), 'g', -1, 64),
		strconv.FormatFloat(float64(hw.AvailableRAM), 'g', -1, 64),
		strconv.FormatFloat(float64(hw.FixedOverhead), 'g', -1, 64),
		gl,
		strconv.FormatInt(int64(ptr.Deref(o.ContextSize, _DefaultContextSize)), 10),
		string(ptr.Deref(o.CacheKeyType, CacheTypeF16)),
		string(ptr.Deref(o.CacheValueType, CacheTypeF16)),
	}, "|")
}
