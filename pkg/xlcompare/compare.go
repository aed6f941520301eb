package xlcompare

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/checks"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/loader"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
	"golang.org/x/sync/errgroup"
)

// document is one decoded input, shared read-only by every check.
type document struct {
	sheet *models.Sheet
	table *models.Table
	err   error
}

func loadDocument(path string, opts Options) document {
	wb, err := loader.Load(path, opts.Format, 0, opts.logger())
	if err != nil {
		return document{err: err}
	}
	return document{sheet: wb.Sheet, table: models.TableFromSheet(wb.Sheet)}
}

// Compare runs every check of the reference file against the test file.
// Read failures never abort the comparison: each affected check fails
// with a descriptive issue.
func Compare(referencePath, testPath string, opts Options) *models.Report {
	log := opts.logger().WithFields(logrus.Fields{"reference": referencePath, "test": testPath})

	var ref, test document
	var g errgroup.Group
	g.Go(func() error {
		ref = loadDocument(referencePath, opts)
		return nil
	})
	g.Go(func() error {
		test = loadDocument(testPath, opts)
		return nil
	})
	_ = g.Wait()

	if ref.err != nil {
		log.WithError(ref.err).Warn("reference file could not be read")
	}
	if test.err != nil {
		log.WithError(test.err).Warn("test file could not be read")
	}

	report := run(ref, test, log)
	report.Reference = filepath.Base(referencePath)
	report.Test = filepath.Base(testPath)
	return report
}

// CompareSheets runs every check on two already-decoded sheets.
func CompareSheets(ref, test *models.Sheet) *models.Report {
	return run(
		document{sheet: ref, table: models.TableFromSheet(ref)},
		document{sheet: test, table: models.TableFromSheet(test)},
		logrus.StandardLogger(),
	)
}

type tableCheck func(ref, test *models.Table) models.CheckResult

func run(ref, test document, log logrus.FieldLogger) *models.Report {
	tableChecks := map[string]tableCheck{
		models.CheckColumns:          checks.Columns,
		models.CheckDataTypes:        checks.DataTypes,
		models.CheckNumericPrecision: checks.NumericPrecision,
		models.CheckNullHandling:     checks.NullHandling,
		models.CheckRowCount:         checks.RowCount,
	}

	results := make(map[string]models.CheckResult, len(models.CheckOrder))
	for _, name := range models.CheckOrder {
		var result models.CheckResult
		switch {
		case ref.err != nil:
			result = checks.Failed(name, fmt.Errorf("reference file: %w", ref.err))
		case test.err != nil:
			result = checks.Failed(name, fmt.Errorf("test file: %w", test.err))
		case name == models.CheckCellFormats:
			result = checks.CellFormats(ref.sheet, test.sheet)
		default:
			result = tableChecks[name](ref.table, test.table)
		}

		entry := log.WithFields(logrus.Fields{"check": name, "issues": len(result.Issues)})
		if result.Passed {
			entry.Debug("check passed")
		} else {
			entry.Warn("check failed")
		}
		results[name] = result
	}

	return &models.Report{Results: results}
}
