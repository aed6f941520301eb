// Package xlcompare compares a reference spreadsheet with a test
// spreadsheet and verifies range sums against target cells.
package xlcompare

import (
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/loader"
)

// Options configures comparison and verification.
type Options struct {
	// Format forces the container format of every input.
	// FormatAuto (or empty) sniffs each file.
	Format loader.Format
	// SheetIndex selects the sheet used by the sum verifier.
	// Comparisons always read the first sheet.
	SheetIndex int
	// Logger receives diagnostics. If nil, the standard logrus logger is used.
	Logger logrus.FieldLogger
}

// DefaultOptions returns options that sniff formats and read sheet 0.
func DefaultOptions() Options {
	return Options{
		Format: loader.FormatAuto,
	}
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}
