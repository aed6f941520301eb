package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
)

// checkTitles are the display titles of each check.
var checkTitles = map[string]string{
	models.CheckColumns:          "Column names and order",
	models.CheckDataTypes:        "Data types",
	models.CheckCellFormats:      "Cell storage formats",
	models.CheckNumericPrecision: "Numeric precision and length",
	models.CheckNullHandling:     "Null handling",
	models.CheckRowCount:         "Row count",
}

// WriteReport renders a comparison report as plain text.
func WriteReport(w io.Writer, r *models.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Reference: %s\nTest:      %s\n\n", r.Reference, r.Test)
	fmt.Fprintf(&b, "Passed %d/%d, failed %d/%d\n", r.PassedCount(), r.Total(), r.Total()-r.PassedCount(), r.Total())
	if r.Passed() {
		b.WriteString("Status: identical\n")
	} else {
		b.WriteString("Status: differences found\n")
	}

	for _, res := range r.Ordered() {
		title := checkTitles[res.Name]
		if title == "" {
			title = res.Name
		}
		b.WriteString("\n")
		if res.Passed {
			fmt.Fprintf(&b, "[PASS] %s\n", title)
			if res.ReferenceRows != nil {
				fmt.Fprintf(&b, "  rows: %d\n", *res.ReferenceRows)
			}
			continue
		}
		fmt.Fprintf(&b, "[FAIL] %s\n", title)
		for _, issue := range res.Issues {
			fmt.Fprintf(&b, "  - %s\n", issue)
		}
	}

	if cols, ok := r.Results[models.CheckColumns]; ok && len(cols.ReferenceColumns) > 0 {
		b.WriteString("\nColumns (reference | test):\n")
		n := max(len(cols.ReferenceColumns), len(cols.TestColumns))
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "  %d. %s | %s\n", i+1, at(cols.ReferenceColumns, i), at(cols.TestColumns, i))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSum renders a sum verification result as plain text.
func WriteSum(w io.Writer, r *models.SumResult) error {
	var b strings.Builder

	if r.Error != "" {
		fmt.Fprintf(&b, "[FAIL] verification failed: %s\n", r.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}

	status := "[PASS] sum matches target"
	if !r.Passed {
		status = "[FAIL] sum does not match target"
	}
	fmt.Fprintf(&b, "%s\n", status)
	fmt.Fprintf(&b, "  range:  %s\n", r.CellRange)
	fmt.Fprintf(&b, "  cells:  %d\n", r.CellsCount)
	fmt.Fprintf(&b, "  sum:    %.10g\n", r.Sum)
	if r.Target != nil {
		fmt.Fprintf(&b, "  target: %.10g (%s)\n", *r.Target, r.TargetCell)
	}
	if !r.Passed {
		fmt.Fprintf(&b, "  diff:   %.10g\n", r.Difference())
	}
	fmt.Fprintf(&b, "  values: %v\n", r.Values)

	_, err := io.WriteString(w, b.String())
	return err
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return "-"
}
