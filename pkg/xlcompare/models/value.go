// Package models defines data structures for spreadsheet comparison.
package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the scalar kind of a table value.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindBoolean
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// DateLayout is the rendering used for date values.
const DateLayout = "2006-01-02 15:04:05"

// Value is one table cell: either absent or a typed scalar.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Text  string
	Bool  bool
	Time  time.Time
}

// Null is the absent value.
var Null = Value{}

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// FloatValue returns a float value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// TextValue returns a text value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// DateValue returns a date value.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// IsNumeric reports whether the value is an integer or float.
func (v Value) IsNumeric() bool {
	return v.Kind == KindInteger || v.Kind == KindFloat
}

// String renders the value in its default textual form.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return FormatFloat(v.Float)
	case KindText:
		return v.Text
	case KindBoolean:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindDate:
		if v.Time.IsZero() && v.Text != "" {
			return v.Text
		}
		return v.Time.Format(DateLayout)
	default:
		return "nan"
	}
}

// FormatFloat renders f as the shortest string that round-trips.
// Integral values keep a ".0" suffix; magnitudes below 1e-4 or from 1e16
// use exponent form.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// naStrings are text values read as absent.
var naStrings = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsNAString reports whether s is one of the text markers read as absent.
func IsNAString(s string) bool {
	_, ok := naStrings[s]
	return ok
}
