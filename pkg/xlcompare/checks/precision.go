package checks

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
)

// MaxDigits is the longest digit run a test value may have.
const MaxDigits = 15

// NumericPrecision compares decimal places and digit length of the first
// row where both tables hold a value, for columns numeric in the reference.
// Values are compared by their default renderings, not their magnitudes.
func NumericPrecision(ref, test *models.Table) models.CheckResult {
	var issues []string
	rows := min(ref.NumRows(), test.NumRows())

	for _, name := range ref.CommonColumns(test) {
		refCol, _ := ref.Column(name)
		testCol, _ := test.Column(name)
		if !refCol.Type.IsNumeric() {
			continue
		}

		for idx := 0; idx < rows; idx++ {
			if refCol.Values[idx].IsNull() || testCol.Values[idx].IsNull() {
				continue
			}
			issues = append(issues, compareRendering(name, idx+1, refCol.Render(idx), testCol.Render(idx))...)
			break
		}
	}

	return models.NewCheckResult(models.CheckNumericPrecision, issues)
}

// compareRendering checks one pair of rendered values. row is 1-based.
func compareRendering(column string, row int, refStr, testStr string) []string {
	var issues []string

	if strings.Contains(refStr, ".") || strings.Contains(testStr, ".") {
		refDecimals, testDecimals := DecimalPlaces(refStr), DecimalPlaces(testStr)
		if refDecimals != testDecimals {
			issues = append(issues, fmt.Sprintf("column %q row %d decimal places differ: reference=%d, test=%d",
				column, row, refDecimals, testDecimals))
		}
	}

	refLen, testLen := DigitLength(refStr), DigitLength(testStr)
	if refLen != testLen {
		issues = append(issues, fmt.Sprintf("column %q row %d length differs: reference=%d, test=%d (values: %s vs %s)",
			column, row, refLen, testLen, refStr, testStr))
	}

	if testLen > MaxDigits {
		issues = append(issues, fmt.Sprintf("column %q row %d length exceeds %d: %d (value: %s)",
			column, row, MaxDigits, testLen, testStr))
	}

	return issues
}

// DecimalPlaces counts the characters after the last '.', or 0 without one.
func DecimalPlaces(s string) int {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return 0
	}
	return utf8.RuneCountInString(s[i+1:])
}

// DigitLength is the rendered length with every '.' removed.
func DigitLength(s string) int {
	return utf8.RuneCountInString(strings.ReplaceAll(s, ".", ""))
}
