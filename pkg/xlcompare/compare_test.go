package xlcompare

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
	"github.com/xuri/excelize/v2"
)

func quietOptions() Options {
	log := logrus.New()
	log.SetOutput(io.Discard)
	opts := DefaultOptions()
	opts.Logger = log
	return opts
}

// saveRows writes rows to Sheet1 of a new workbook, starting at A1.
func saveRows(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestCompareIdentical(t *testing.T) {
	rows := [][]interface{}{
		{"name", "age", "salary", "dept"},
		{"Ann", 25, 50000.5, "sales"},
		{"Bob", 30, 60000.75, "tech"},
	}
	ref := saveRows(t, "correct.xlsx", rows)
	test := saveRows(t, "test.xlsx", rows)

	report := Compare(ref, test, quietOptions())
	assert.Equal(t, "correct.xlsx", report.Reference)
	assert.Equal(t, 6, report.Total())
	for _, res := range report.Ordered() {
		assert.True(t, res.Passed, "%s: %v", res.Name, res.Issues)
	}
	assert.True(t, report.Passed())
}

func TestCompareDifferences(t *testing.T) {
	ref := saveRows(t, "correct.xlsx", [][]interface{}{
		{"name", "age", "salary", "dept"},
		{"Ann", 25.5, 50000.5, "sales"},
		{"Bob", 30.25, 60000.75, "tech"},
		{"Cid", 28.5, nil, "hr"},
	})
	test := saveRows(t, "test.xlsx", [][]interface{}{
		{"name", "age", "dept", "salary"},
		{"Ann", 25, "sales", "50000.50"},
		{"Bob", 30, "tech", 60000.75},
	})

	report := Compare(ref, test, quietOptions())
	assert.False(t, report.Passed())

	columns := report.Results[models.CheckColumns]
	assert.False(t, columns.Passed)
	assert.Equal(t, []string{
		`column "salary" position differs: reference=2, test=3`,
		`column "dept" position differs: reference=3, test=2`,
	}, columns.Issues)

	types := report.Results[models.CheckDataTypes]
	assert.Contains(t, types.Issues, `column "age" type differs: reference=float, test=integer`)

	formats := report.Results[models.CheckCellFormats]
	assert.False(t, formats.Passed)

	precision := report.Results[models.CheckNumericPrecision]
	assert.Contains(t, precision.Issues, `column "salary" row 1 decimal places differ: reference=1, test=2`)

	nulls := report.Results[models.CheckNullHandling]
	assert.Equal(t, []string{`column "salary" null count differs: reference=1, test=0`}, nulls.Issues)

	rowCount := report.Results[models.CheckRowCount]
	assert.Equal(t, 3, *rowCount.ReferenceRows)
	assert.Equal(t, 2, *rowCount.TestRows)
}

func TestCompareUnreadableInput(t *testing.T) {
	ref := saveRows(t, "correct.xlsx", [][]interface{}{{"a"}, {1}})
	broken := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, []byte("garbage"), 0644))

	report := Compare(ref, broken, quietOptions())
	require.Equal(t, 6, report.Total())
	assert.Equal(t, 0, report.PassedCount())
	for _, res := range report.Ordered() {
		require.Len(t, res.Issues, 1)
		assert.Contains(t, res.Issues[0], "test file")
	}
}

func TestCompareIdempotent(t *testing.T) {
	ref := saveRows(t, "correct.xlsx", [][]interface{}{{"x", "y"}, {1.5, "a"}, {nil, "b"}})
	test := saveRows(t, "test.xlsx", [][]interface{}{{"y", "x"}, {"a", 2}, {"b", 3}})

	first := Compare(ref, test, quietOptions())
	second := Compare(ref, test, quietOptions())
	assert.Equal(t, first, second)
}

func TestCompareSheets(t *testing.T) {
	sheet := &models.Sheet{Rows: [][]models.RawCell{
		{{Storage: models.StorageText, Text: "v"}},
		{{Storage: models.StorageNumber, Text: "1", Number: 1}},
	}}

	report := CompareSheets(sheet, sheet)
	assert.True(t, report.Passed())
}

func TestCompareLogsFailedChecks(t *testing.T) {
	ref := saveRows(t, "correct.xlsx", [][]interface{}{{"name"}, {"Ann"}, {"Bob"}})
	test := saveRows(t, "test.xlsx", [][]interface{}{{"name"}, {"Ann"}})

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = log

	report := Compare(ref, test, opts)
	require.False(t, report.Passed())

	var warned []interface{}
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = append(warned, entry.Data["check"])
		}
	}
	assert.Equal(t, []interface{}{models.CheckRowCount}, warned)
}

func TestCompareLegacyAgainstPackedXML(t *testing.T) {
	legacy := filepath.Join("loader", "testdata", "typed.xls")
	packed := saveRows(t, "typed.xlsx", [][]interface{}{
		{"name", "amount", "active", "joined", "note"},
		{"Ann", 25, true, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Bob", 12.5, false, time.Date(2023, 3, 16, 0, 0, 0, 0, time.UTC), "late"},
	})

	report := Compare(legacy, packed, quietOptions())
	assert.Equal(t, "typed.xls", report.Reference)
	for _, res := range report.Ordered() {
		assert.True(t, res.Passed, "%s: %v", res.Name, res.Issues)
	}

	report = Compare(packed, legacy, quietOptions())
	assert.True(t, report.Passed())
}
