// Package cellref parses spreadsheet cell addresses and ranges.
package cellref

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidAddress indicates malformed cell or range text.
var ErrInvalidAddress = errors.New("invalid cell address")

// MaxRows is the last addressable worksheet row.
const MaxRows = excelize.TotalRows

// Address is a single cell reference such as "B2".
type Address struct {
	// Column is the upper-case column letter sequence.
	Column string
	// Row is the row number (1-based).
	Row int
}

// String returns the canonical "{column}{row}" form.
func (a Address) String() string {
	return a.Column + strconv.Itoa(a.Row)
}

// ColumnNumber returns the 1-based column index of the address.
func (a Address) ColumnNumber() int {
	n, _ := ColumnLetterToNumber(a.Column)
	return n
}

// Range is a rectangular span between two addresses, inclusive.
// A single-cell range has Start == End.
type Range struct {
	Start Address
	End   Address
}

// String returns "A1:B2", or "A1" for a single-cell range.
func (r Range) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}

// ColumnLetterToNumber converts column letters to a 1-based index
// (A=1, Z=26, AA=27). Letters are case-insensitive.
func ColumnLetterToNumber(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column", ErrInvalidAddress)
	}
	for _, r := range letters {
		if !isLetter(r) {
			return 0, fmt.Errorf("%w: column %q", ErrInvalidAddress, letters)
		}
	}
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %v", ErrInvalidAddress, letters, err)
	}
	return n, nil
}

// ColumnNumberToLetter converts a 1-based column index to letters.
func ColumnNumberToLetter(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: column number %d", ErrInvalidAddress, n)
	}
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "", fmt.Errorf("%w: column number %d: %v", ErrInvalidAddress, n, err)
	}
	return name, nil
}

// ParseAddress parses a token like "b12" into an Address.
// The token must be a letter run followed by a digit run and nothing else.
func ParseAddress(text string) (Address, error) {
	s := strings.ToUpper(strings.TrimSpace(text))

	split := 0
	for split < len(s) && isLetter(rune(s[split])) {
		split++
	}
	letters, digits := s[:split], s[split:]
	if letters == "" {
		return Address{}, fmt.Errorf("%w: %q has no column letters", ErrInvalidAddress, text)
	}
	if digits == "" {
		return Address{}, fmt.Errorf("%w: %q has no row number", ErrInvalidAddress, text)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
		}
	}

	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 || row > MaxRows {
		return Address{}, fmt.Errorf("%w: %q has invalid row %q", ErrInvalidAddress, text, digits)
	}
	if _, err := ColumnLetterToNumber(letters); err != nil {
		return Address{}, err
	}

	return Address{Column: letters, Row: row}, nil
}

// ParseRange parses "A1:C10" or a single address "B2".
// Only the first colon separates the endpoints. Ranges whose end lies
// before their start on either axis are rejected.
func ParseRange(text string) (Range, error) {
	s := strings.ToUpper(strings.TrimSpace(text))

	startText, endText, isSpan := strings.Cut(s, ":")
	if !isSpan {
		addr, err := ParseAddress(s)
		if err != nil {
			return Range{}, err
		}
		return Range{Start: addr, End: addr}, nil
	}

	start, err := ParseAddress(startText)
	if err != nil {
		return Range{}, fmt.Errorf("range %q start: %w", text, err)
	}
	end, err := ParseAddress(endText)
	if err != nil {
		return Range{}, fmt.Errorf("range %q end: %w", text, err)
	}

	if end.ColumnNumber() < start.ColumnNumber() || end.Row < start.Row {
		return Range{}, fmt.Errorf("%w: range %q is reversed", ErrInvalidAddress, text)
	}

	return Range{Start: start, End: end}, nil
}

// Expand lists every address of the range, columns outer and rows inner.
func (r Range) Expand() []Address {
	startCol, endCol := r.Start.ColumnNumber(), r.End.ColumnNumber()
	if endCol < startCol || r.End.Row < r.Start.Row {
		return nil
	}

	cells := make([]Address, 0, (endCol-startCol+1)*(r.End.Row-r.Start.Row+1))
	for col := startCol; col <= endCol; col++ {
		letter, err := ColumnNumberToLetter(col)
		if err != nil {
			return cells
		}
		for row := r.Start.Row; row <= r.End.Row; row++ {
			cells = append(cells, Address{Column: letter, Row: row})
		}
	}
	return cells
}

// Clip returns the part of the range inside the first maxRow rows and
// maxCol columns. ok is false when nothing of the range remains.
func (r Range) Clip(maxRow, maxCol int) (clipped Range, ok bool) {
	startCol, endCol := r.Start.ColumnNumber(), r.End.ColumnNumber()
	startRow, endRow := r.Start.Row, r.End.Row
	endCol = min(endCol, maxCol)
	endRow = min(endRow, maxRow)
	if startCol < 1 || startRow < 1 || endCol < startCol || endRow < startRow {
		return Range{}, false
	}

	endLetter, err := ColumnNumberToLetter(endCol)
	if err != nil {
		return Range{}, false
	}
	return Range{Start: r.Start, End: Address{Column: endLetter, Row: endRow}}, true
}

// Each calls fn with the 1-based column and row of every cell of the
// range in Expand order, without building the address list.
func (r Range) Each(fn func(col, row int)) {
	startCol, endCol := r.Start.ColumnNumber(), r.End.ColumnNumber()
	for col := startCol; col <= endCol; col++ {
		for row := r.Start.Row; row <= r.End.Row; row++ {
			fn(col, row)
		}
	}
}

// ExpandRange parses text and expands it into address strings.
func ExpandRange(text string) ([]string, error) {
	r, err := ParseRange(text)
	if err != nil {
		return nil, err
	}
	addrs := r.Expand()
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out, nil
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
