package checks

import (
	"fmt"

	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
)

// DataTypes compares the inferred type of each common column.
func DataTypes(ref, test *models.Table) models.CheckResult {
	var issues []string
	for _, name := range ref.CommonColumns(test) {
		refCol, _ := ref.Column(name)
		testCol, _ := test.Column(name)
		if refCol.Type != testCol.Type {
			issues = append(issues, fmt.Sprintf("column %q type differs: reference=%s, test=%s", name, refCol.Type, testCol.Type))
		}
	}
	return models.NewCheckResult(models.CheckDataTypes, issues)
}

// NullHandling compares the absent-value count of each common column.
func NullHandling(ref, test *models.Table) models.CheckResult {
	var issues []string
	for _, name := range ref.CommonColumns(test) {
		refCol, _ := ref.Column(name)
		testCol, _ := test.Column(name)
		refNulls, testNulls := refCol.NullCount(), testCol.NullCount()
		if refNulls != testNulls {
			issues = append(issues, fmt.Sprintf("column %q null count differs: reference=%d, test=%d", name, refNulls, testNulls))
		}
	}
	return models.NewCheckResult(models.CheckNullHandling, issues)
}

// RowCount compares the number of data rows.
func RowCount(ref, test *models.Table) models.CheckResult {
	refRows, testRows := ref.NumRows(), test.NumRows()

	var issues []string
	if refRows != testRows {
		issues = append(issues, fmt.Sprintf("row count differs: reference=%d, test=%d", refRows, testRows))
	}

	result := models.NewCheckResult(models.CheckRowCount, issues)
	result.ReferenceRows = &refRows
	result.TestRows = &testRows
	return result
}

// CellFormats compares the storage type of every cell in the first data
// row (grid row 1) across the columns both sheets share by position.
func CellFormats(ref, test *models.Sheet) models.CheckResult {
	var issues []string
	if ref.NumRows() > 1 && test.NumRows() > 1 {
		cols := min(ref.NumCols(), test.NumCols())
		for col := 0; col < cols; col++ {
			refCell, testCell := ref.Cell(1, col), test.Cell(1, col)
			if refCell.Storage != testCell.Storage {
				header := ref.Cell(0, col).Text
				issues = append(issues, fmt.Sprintf("column %d %q storage type differs: reference=%s, test=%s",
					col, header, refCell.Storage, testCell.Storage))
			}
		}
	}
	return models.NewCheckResult(models.CheckCellFormats, issues)
}

// Failed returns a failing result carrying a single issue for err.
func Failed(name string, err error) models.CheckResult {
	return models.NewCheckResult(name, []string{fmt.Sprintf("failed to read input: %v", err)})
}
