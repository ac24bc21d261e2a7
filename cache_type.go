package membudget

import (
	"strings"
)

// CacheType is the quantization type of one side of the KV cache,
// see https://github.com/ggml-org/llama.cpp/blob/fd1234cb468935ea087d6929b2487926c3afff4b/ggml/include/ggml.h#L368-L410
// for the underlying GGML element types.
type CacheType string

// CacheType constants.
const (
	CacheTypeF32  CacheType = "f32"
	CacheTypeF16  CacheType = "f16"
	CacheTypeQ8_0 CacheType = "q8_0"
	CacheTypeQ5_1 CacheType = "q5_1"
	CacheTypeQ5_0 CacheType = "q5_0"
	CacheTypeQ4_1 CacheType = "q4_1"
	CacheTypeQ4_0 CacheType = "q4_0"
)

// _CacheTypeBytesPerElement maps a cache type to its effective bytes per element,
// quantized types amortize the per-block scale factor into the element width,
// e.g. q4_0 stores 4-bit values plus half a bit of scale overhead.
var _CacheTypeBytesPerElement = map[CacheType]float64{
	CacheTypeF32:  4.0,
	CacheTypeF16:  2.0,
	CacheTypeQ8_0: 1.0625,
	CacheTypeQ5_1: 0.6875,
	CacheTypeQ5_0: 0.6875,
	CacheTypeQ4_1: 0.5625,
	CacheTypeQ4_0: 0.5625,
}

// ParseCacheType normalizes a free-form cache type identifier.
func ParseCacheType(s string) CacheType {
	return CacheType(strings.ToLower(strings.TrimSpace(s)))
}

// BytesPerElement returns the effective bytes per cached element,
// case-insensitive on the identifier.
//
// Unrecognized identifiers fall back to the f16 width,
// cache type strings are free-form and forward compatibility beats hard failure.
func (t CacheType) BytesPerElement() float64 {
	if v, ok := _CacheTypeBytesPerElement[ParseCacheType(string(t))]; ok {
		return v
	}
	return _CacheTypeBytesPerElement[CacheTypeF16]
}
