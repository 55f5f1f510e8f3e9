package bikestress

import (
	"math"
	"strconv"
)

// Value is a numeric result that may be unknown.
// Zero value of Value is unknown, so a missing score can never silently become 0.
type Value struct {
	v     float64
	known bool
}

// Known wraps v. NaN and infinities are treated as unknown
func Known(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, known: true}
}

// Unknown returns the unknown marker
func Unknown() Value {
	return Value{}
}

// IsKnown reports whether the value is defined
func (val Value) IsKnown() bool {
	return val.known
}

// Get returns the underlying number and whether it's defined
func (val Value) Get() (float64, bool) {
	return val.v, val.known
}

// Or returns the number or fallback when unknown
func (val Value) Or(fallback float64) float64 {
	if !val.known {
		return fallback
	}
	return val.v
}

// String returns empty string for unknown values, so they don't show up as 0 in tables
func (val Value) String() string {
	if !val.known {
		return ""
	}
	return strconv.FormatFloat(val.v, 'f', -1, 64)
}
