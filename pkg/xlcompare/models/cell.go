package models

import (
	"strconv"
	"strings"
	"time"
)

// StorageType is the storage tag of a raw grid cell.
type StorageType int

const (
	StorageEmpty StorageType = iota
	StorageText
	StorageNumber
	StorageDate
	StorageBoolean
	StorageError
)

func (s StorageType) String() string {
	switch s {
	case StorageEmpty:
		return "EMPTY"
	case StorageText:
		return "TEXT"
	case StorageNumber:
		return "NUMBER"
	case StorageDate:
		return "DATE"
	case StorageBoolean:
		return "BOOLEAN"
	case StorageError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the storage tag by name.
func (s StorageType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// RawCell is an unprocessed cell read from a sheet grid.
type RawCell struct {
	// Storage is the storage tag reported by the container.
	Storage StorageType `json:"storage"`
	// Text is the raw cell text (unformatted).
	Text string `json:"text,omitempty"`
	// Number holds the numeric value for number cells and date serials.
	Number float64 `json:"number,omitempty"`
	// Time holds the decoded date for date cells when available.
	Time time.Time `json:"-"`
}

// IsEmpty reports whether the cell holds no value.
func (c RawCell) IsEmpty() bool {
	return c.Storage == StorageEmpty
}

// IsNumeric reports whether the cell contributes to numeric sums.
func (c RawCell) IsNumeric() bool {
	return c.Storage == StorageNumber
}

// Value converts the raw cell into a table value.
// Integral number text yields an integer, other numbers a float.
func (c RawCell) Value() Value {
	switch c.Storage {
	case StorageNumber:
		return parseNumber(c.Text, c.Number)
	case StorageText:
		if IsNAString(c.Text) {
			return Null
		}
		return TextValue(c.Text)
	case StorageBoolean:
		return BoolValue(parseBool(c.Text))
	case StorageDate:
		v := DateValue(c.Time)
		if c.Time.IsZero() {
			v.Text = c.Text
		}
		return v
	case StorageError:
		if IsNAString(c.Text) {
			return Null
		}
		return TextValue(c.Text)
	default:
		return Null
	}
}

// parseNumber prefers the raw text so that "25" and "25.0" keep
// their distinct kinds.
func parseNumber(text string, number float64) Value {
	text = strings.TrimSpace(text)
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return FloatValue(f)
	}
	return FloatValue(number)
}

func parseBool(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "TRUE":
		return true
	}
	return false
}
