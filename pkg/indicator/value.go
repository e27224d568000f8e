package indicator

import (
	"strconv"
)

// ValueKind tags the variant held by a Value
type ValueKind int

const (
	// Numeric values carry a float64
	Numeric ValueKind = iota
	// Text values carry a string (e.g. "bullish")
	Text
)

func (k ValueKind) String() string {
	if k == Text {
		return "text"
	}
	return "numeric"
}

// Value is either a number or a string
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Number returns a numeric Value
func Number(f float64) Value {
	return Value{Kind: Numeric, Num: f}
}

// String returns a text Value
func String(s string) Value {
	return Value{Kind: Text, Str: s}
}

// IsNumeric reports whether v holds a number
func (v Value) IsNumeric() bool {
	return v.Kind == Numeric
}

// Format renders a computed value for explanations (two decimals for numbers)
func (v Value) Format() string {
	if v.Kind == Text {
		return strconv.Quote(v.Str)
	}
	return strconv.FormatFloat(v.Num, 'f', 2, 64)
}

// String renders a value with full precision
func (v Value) String() string {
	if v.Kind == Text {
		return strconv.Quote(v.Str)
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}
