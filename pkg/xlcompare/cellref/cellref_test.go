package cellref

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnLetterRoundTrip(t *testing.T) {
	for n := 1; n <= 26; n++ {
		letter := string(rune('A' + n - 1))
		got, err := ColumnLetterToNumber(letter)
		require.NoError(t, err)
		assert.Equal(t, n, got)

		back, err := ColumnNumberToLetter(got)
		require.NoError(t, err)
		assert.Equal(t, letter, back)
	}

	tests := []struct {
		letters string
		number  int
	}{
		{"AA", 27},
		{"AZ", 52},
		{"BA", 53},
		{"ZZ", 702},
		{"AAA", 703},
		{"XFD", 16384},
	}
	for _, tt := range tests {
		got, err := ColumnLetterToNumber(tt.letters)
		require.NoError(t, err, tt.letters)
		assert.Equal(t, tt.number, got, tt.letters)

		back, err := ColumnNumberToLetter(tt.number)
		require.NoError(t, err)
		assert.Equal(t, tt.letters, back)
	}
}

func TestColumnLetterToNumberLowercase(t *testing.T) {
	got, err := ColumnLetterToNumber("ab")
	require.NoError(t, err)
	assert.Equal(t, 28, got)
}

func TestColumnConversionErrors(t *testing.T) {
	for _, in := range []string{"", "A1", "a-b", " "} {
		_, err := ColumnLetterToNumber(in)
		assert.True(t, errors.Is(err, ErrInvalidAddress), "input %q", in)
	}
	for _, n := range []int{0, -1} {
		_, err := ColumnNumberToLetter(n)
		assert.True(t, errors.Is(err, ErrInvalidAddress), "input %d", n)
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		input  string
		column string
		row    int
	}{
		{"A1", "A", 1},
		{"b12", "B", 12},
		{" AA100 ", "AA", 100},
	}
	for _, tt := range tests {
		addr, err := ParseAddress(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.column, addr.Column)
		assert.Equal(t, tt.row, addr.Row)
	}
}

func TestParseAddressInvalid(t *testing.T) {
	for _, in := range []string{"", "A", "12", "A0", "A1B", "1A", "A-1", "A1.5", "A1048577", "XFE1", "A99999999999999999999"} {
		_, err := ParseAddress(in)
		assert.True(t, errors.Is(err, ErrInvalidAddress), "input %q: %v", in, err)
	}
}

func TestExpandRange(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"A1:A10", []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10"}},
		{"B2", []string{"B2"}},
		{"A1:C2", []string{"A1", "A2", "B1", "B2", "C1", "C2"}},
		{"a1:b1", []string{"A1", "B1"}},
		{"Z1:AA1", []string{"Z1", "AA1"}},
	}
	for _, tt := range tests {
		got, err := ExpandRange(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}

func TestParseRangeInvalid(t *testing.T) {
	for _, in := range []string{"A1:", ":B2", "A1:B", "A1:B2:C3", "B2:A1", "A5:A1", "1:2"} {
		_, err := ParseRange(in)
		assert.True(t, errors.Is(err, ErrInvalidAddress), "input %q: %v", in, err)
	}
}

func TestRangeString(t *testing.T) {
	r, err := ParseRange("b2")
	require.NoError(t, err)
	assert.Equal(t, "B2", r.String())

	r, err = ParseRange("a1:c3")
	require.NoError(t, err)
	assert.Equal(t, "A1:C3", r.String())
}

func TestParseAddressLimits(t *testing.T) {
	addr, err := ParseAddress("XFD1048576")
	require.NoError(t, err)
	assert.Equal(t, 16384, addr.ColumnNumber())
	assert.Equal(t, MaxRows, addr.Row)
}

func TestRangeClip(t *testing.T) {
	tests := []struct {
		input    string
		maxRow   int
		maxCol   int
		expected string
		ok       bool
	}{
		{"A1:XFD1048576", 3, 2, "A1:B3", true},
		{"B2:C3", 10, 10, "B2:C3", true},
		{"A1:A10", 1, 1, "A1", true},
		{"C1:D5", 5, 2, "", false},
		{"A4:B5", 3, 2, "", false},
		{"A1:B2", 0, 0, "", false},
	}
	for _, tt := range tests {
		r, err := ParseRange(tt.input)
		require.NoError(t, err)
		got, ok := r.Clip(tt.maxRow, tt.maxCol)
		assert.Equal(t, tt.ok, ok, tt.input)
		if tt.ok {
			assert.Equal(t, tt.expected, got.String(), tt.input)
		}
	}
}

func TestRangeEachMatchesExpand(t *testing.T) {
	r, err := ParseRange("Y3:AB5")
	require.NoError(t, err)

	var walked []Address
	r.Each(func(col, row int) {
		letter, err := ColumnNumberToLetter(col)
		require.NoError(t, err)
		walked = append(walked, Address{Column: letter, Row: row})
	})
	assert.Equal(t, r.Expand(), walked)
}
