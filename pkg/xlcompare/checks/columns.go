// Package checks implements the reference-versus-test comparison checks.
//
// Every check is a pure function of its inputs: it never mutates the
// tables it receives and returns a fresh CheckResult.
package checks

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
)

// Columns compares column names and their positions.
func Columns(ref, test *models.Table) models.CheckResult {
	refCols := ref.ColumnNames()
	testCols := test.ColumnNames()

	var issues []string
	if len(refCols) != len(testCols) {
		issues = append(issues, fmt.Sprintf("column count differs: reference=%d, test=%d", len(refCols), len(testCols)))
	}

	if missing := difference(refCols, testCols); len(missing) > 0 {
		issues = append(issues, fmt.Sprintf("missing columns: %s", quoteList(missing)))
	}
	if extra := difference(testCols, refCols); len(extra) > 0 {
		issues = append(issues, fmt.Sprintf("extra columns: %s", quoteList(extra)))
	}

	for _, name := range ref.CommonColumns(test) {
		refIdx, testIdx := ref.Index(name), test.Index(name)
		if refIdx != testIdx {
			issues = append(issues, fmt.Sprintf("column %q position differs: reference=%d, test=%d", name, refIdx, testIdx))
		}
	}

	result := models.NewCheckResult(models.CheckColumns, issues)
	result.ReferenceColumns = refCols
	result.TestColumns = testCols
	return result
}

// difference returns the names of a absent from b, in a's order, once each.
func difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, name := range b {
		inB[name] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, name := range a {
		if inB[name] || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
