package membudget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBytesScalar(t *testing.T) {
	cases := []struct {
		name     string
		given    string
		expected BytesScalar
		fails    bool
	}{
		{"bare", "1024", 1024, false},
		{"kib", "1.5KiB", 1536, false},
		{"mib", "512MiB", 512 * 1024 * 1024, false},
		{"gib", "1GiB", 1 << 30, false},
		{"spaced", " 2 GiB ", 2 << 30, false},
		{"empty", "", 0, true},
		{"garbage", "x", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseBytesScalar(tc.given)
			if tc.fails {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestBytesScalar_String(t *testing.T) {
	assert.Equal(t, "0 B", BytesScalar(0).String())
	assert.Equal(t, "1.50 KiB", BytesScalar(1536).String())
	assert.Equal(t, "1 GiB", BytesScalar(1<<30).String())
	assert.Equal(t, "2.25 MiB", BytesScalar(2359296).String())
}

func TestParseGigabytesScalar(t *testing.T) {
	cases := []struct {
		name     string
		given    string
		expected GigabytesScalar
		fails    bool
	}{
		{"bare number is gib", "12.5", 12.5, false},
		{"suffixed gib", "12.5GiB", 12.5, false},
		{"suffixed mib", "512MiB", 0.5, false},
		{"empty", "", 0, true},
		{"garbage", "many", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseGigabytesScalar(tc.given)
			if tc.fails {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestGigabytesScalar_String(t *testing.T) {
	assert.Equal(t, "0 GiB", GigabytesScalar(0).String())
	assert.Equal(t, "0 GiB", GigabytesScalar(-1).String())
	assert.Equal(t, "2 GiB", GigabytesScalar(2).String())
	assert.Equal(t, "12.50 GiB", GigabytesScalar(12.5).String())
}

func TestGigabytesScalar_Bytes(t *testing.T) {
	assert.Equal(t, BytesScalar(0), GigabytesScalar(-1).Bytes())
	assert.Equal(t, BytesScalar(1<<30), GigabytesScalar(1).Bytes())
	assert.Equal(t, BytesScalar(3<<29), GigabytesScalar(1.5).Bytes())
}
