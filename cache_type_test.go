package membudget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheType_BytesPerElement(t *testing.T) {
	cases := []struct {
		name     string
		given    CacheType
		expected float64
	}{
		{"f32", CacheTypeF32, 4.0},
		{"f16", CacheTypeF16, 2.0},
		{"q8_0", CacheTypeQ8_0, 1.0625},
		{"q5_1", CacheTypeQ5_1, 0.6875},
		{"q5_0", CacheTypeQ5_0, 0.6875},
		{"q4_1", CacheTypeQ4_1, 0.5625},
		{"q4_0", CacheTypeQ4_0, 0.5625},
		{"uppercase", "Q4_0", 0.5625},
		{"padded", " f32 ", 4.0},
		{"unknown falls back to f16", "iq4_nl", 2.0},
		{"empty falls back to f16", "", 2.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.given.BytesPerElement())
		})
	}
}

func TestParseCacheType(t *testing.T) {
	assert.Equal(t, CacheTypeQ8_0, ParseCacheType(" Q8_0 "))
	assert.Equal(t, CacheTypeF16, ParseCacheType("F16"))
	assert.Equal(t, CacheType(""), ParseCacheType(""))
}
