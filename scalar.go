package membudget

import (
	"errors"
	"strconv"
	"strings"
)

const (
	_Ki = 1 << ((iota + 1) * 10)
	_Mi
	_Gi
	_Ti
	_Pi
)

type (
	// BytesScalar is the scalar for bytes.
	BytesScalar uint64

	// GigabytesScalar is the scalar for gibibytes,
	// which is the unit the whole budget pipeline works in.
	GigabytesScalar float64
)

// _BytesBaseUnitMatrix is the base unit matrix for bytes.
var _BytesBaseUnitMatrix = []struct {
	Base float64
	Unit string
}{
	{_Pi, "Pi"},
	{_Ti, "Ti"},
	{_Gi, "Gi"},
	{_Mi, "Mi"},
	{_Ki, "Ki"},
}

// ParseBytesScalar parses the BytesScalar from the string.
func ParseBytesScalar(s string) (_ BytesScalar, err error) {
	if s == "" {
		return 0, errors.New("invalid BytesScalar")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "B")
	b := float64(1)
	for i := range _BytesBaseUnitMatrix {
		if strings.HasSuffix(s, _BytesBaseUnitMatrix[i].Unit) {
			b = _BytesBaseUnitMatrix[i].Base
			s = strings.TrimSuffix(s, _BytesBaseUnitMatrix[i].Unit)
			break
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return BytesScalar(f * b), nil
}

func (s BytesScalar) String() string {
	if s == 0 {
		return "0 B"
	}
	b, u := float64(1), ""
	for i := range _BytesBaseUnitMatrix {
		if float64(s) >= _BytesBaseUnitMatrix[i].Base {
			b = _BytesBaseUnitMatrix[i].Base
			u = _BytesBaseUnitMatrix[i].Unit
			break
		}
	}
	f := strconv.FormatFloat(float64(s)/b, 'f', 2, 64)
	return strings.TrimSuffix(f, ".00") + " " + u + "B"
}

// Gigabytes converts the BytesScalar to GigabytesScalar.
func (s BytesScalar) Gigabytes() GigabytesScalar {
	return GigabytesScalar(float64(s) / _Gi)
}

// ParseGigabytesScalar parses the GigabytesScalar from the string.
//
// A bare number is taken as GiB,
// a suffixed number goes through ParseBytesScalar,
// so both "12.5" and "12.5GiB" work.
func ParseGigabytesScalar(s string) (_ GigabytesScalar, err error) {
	if s == "" {
		return 0, errors.New("invalid GigabytesScalar")
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return GigabytesScalar(f), nil
	}
	b, err := ParseBytesScalar(s)
	if err != nil {
		return 0, err
	}
	return b.Gigabytes(), nil
}

// Bytes converts the GigabytesScalar to BytesScalar,
// negative values clamp to zero.
func (s GigabytesScalar) Bytes() BytesScalar {
	if s <= 0 {
		return 0
	}
	return BytesScalar(float64(s) * _Gi)
}

func (s GigabytesScalar) String() string {
	if s <= 0 {
		return "0 GiB"
	}
	f := strconv.FormatFloat(float64(s), 'f', 2, 64)
	return strings.TrimSuffix(f, ".00") + " GiB"
}
