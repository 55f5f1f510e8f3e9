package bikestress

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Shape of raw attribute value
type Shape uint16

const (
	SHAPE_MISSING = Shape(iota)
	SHAPE_SINGLE
	SHAPE_SEQUENCE
)

func (iotaIdx Shape) String() string {
	return [...]string{"missing", "single", "sequence"}[iotaIdx]
}

// Scalar is one raw attribute item: a number, a piece of text or an explicit null
type Scalar struct {
	text   string
	num    float64
	isNum  bool
	isNull bool
}

// Number creates numeric scalar. NaN becomes null
func Number(v float64) Scalar {
	if math.IsNaN(v) {
		return Null()
	}
	return Scalar{num: v, isNum: true}
}

// Text creates textual scalar
func Text(s string) Scalar {
	return Scalar{text: s}
}

// Null creates null scalar
func Null() Scalar {
	return Scalar{isNull: true}
}

func (s Scalar) IsNumber() bool {
	return s.isNum
}

func (s Scalar) IsNull() bool {
	return s.isNull
}

// Float returns numeric payload (only meaningful for numbers)
func (s Scalar) Float() float64 {
	return s.num
}

// String returns text representation of scalar. Nulls are empty
func (s Scalar) String() string {
	switch {
	case s.isNull:
		return ""
	case s.isNum:
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	default:
		return s.text
	}
}

// RawValue is an attribute value normalized at the ingestion boundary into
// one of three shapes: missing, a single scalar or an ordered sequence of scalars.
type RawValue struct {
	shape Shape
	items []Scalar
}

// Missing returns absent attribute value
func Missing() RawValue {
	return RawValue{shape: SHAPE_MISSING}
}

// Single wraps one scalar
func Single(s Scalar) RawValue {
	return RawValue{shape: SHAPE_SINGLE, items: []Scalar{s}}
}

// Sequence wraps an ordered list of candidate scalars
func Sequence(items ...Scalar) RawValue {
	cp := make([]Scalar, len(items))
	copy(cp, items)
	return RawValue{shape: SHAPE_SEQUENCE, items: cp}
}

// TextValue is shorthand for Single(Text(s))
func TextValue(s string) RawValue {
	return Single(Text(s))
}

// NumberValue is shorthand for Single(Number(v))
func NumberValue(v float64) RawValue {
	return Single(Number(v))
}

// TextSequence is shorthand for a sequence of text scalars
func TextSequence(values ...string) RawValue {
	items := make([]Scalar, len(values))
	for i, v := range values {
		items[i] = Text(v)
	}
	return Sequence(items...)
}

// RawValueOf converts loosely typed value (as found in decoded JSON or data frames) to RawValue.
// Unsupported types are kept as their fmt representation.
func RawValueOf(v interface{}) RawValue {
	switch t := v.(type) {
	case nil:
		return Missing()
	case RawValue:
		return t
	case Scalar:
		return Single(t)
	case []interface{}:
		items := make([]Scalar, 0, len(t))
		for _, item := range t {
			items = append(items, scalarOf(item))
		}
		return Sequence(items...)
	case []string:
		return TextSequence(t...)
	case []float64:
		items := make([]Scalar, len(t))
		for i, f := range t {
			items[i] = Number(f)
		}
		return Sequence(items...)
	default:
		return Single(scalarOf(t))
	}
}

func scalarOf(v interface{}) Scalar {
	switch t := v.(type) {
	case nil:
		return Null()
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case string:
		return Text(t)
	case bool:
		return Text(strconv.FormatBool(t))
	default:
		return Text(fmt.Sprintf("%v", t))
	}
}

// Shape returns shape of the value
func (r RawValue) Shape() Shape {
	return r.shape
}

// IsMissing reports whether attribute is absent
func (r RawValue) IsMissing() bool {
	return r.shape == SHAPE_MISSING
}

// Items returns scalars of the value: none for missing, one for single, all for sequence
func (r RawValue) Items() []Scalar {
	return r.items
}

// String renders value for tabular output. Sequence items are joined with ';' (OSM multi-value convention)
func (r RawValue) String() string {
	switch r.shape {
	case SHAPE_SINGLE:
		return r.items[0].String()
	case SHAPE_SEQUENCE:
		parts := make([]string, len(r.items))
		for i, item := range r.items {
			parts[i] = item.String()
		}
		return strings.Join(parts, ";")
	default:
		return ""
	}
}
