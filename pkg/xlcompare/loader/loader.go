// Package loader decodes spreadsheet containers into raw cell grids.
package loader

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
)

// ErrDecodeFailure indicates the container could not be parsed.
var ErrDecodeFailure = errors.New("spreadsheet decode failure")

// ErrUnsupportedContainer indicates a container format that cannot be
// handled by the requested operation.
var ErrUnsupportedContainer = errors.New("unsupported container format")

// ErrSheetIndex indicates a sheet index outside the workbook.
var ErrSheetIndex = errors.New("sheet index out of range")

// Format names a container format.
type Format string

const (
	// FormatAuto sniffs the container content.
	FormatAuto Format = "auto"
	// FormatLegacyBinary is the BIFF .xls container.
	FormatLegacyBinary Format = "xls"
	// FormatPackedXML is the OOXML .xlsx container.
	FormatPackedXML Format = "xlsx"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatLegacyBinary, FormatPackedXML:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q (must be auto, xls, or xlsx)", ErrUnsupportedContainer, s)
}

// Loader decodes one container format.
type Loader interface {
	// Format returns the container format the loader reads.
	Format() Format
	// Load decodes the sheet at sheetIndex of the container at path.
	Load(path string, sheetIndex int) (*models.Workbook, error)
}

// DecodeError represents a failure while decoding a container.
type DecodeError struct {
	Path   string
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports ErrDecodeFailure for every DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailure
}

func newDecodeError(path string, format Format, err error) *DecodeError {
	return &DecodeError{Path: path, Format: format, Err: err}
}

// New returns the loader for an explicit format.
func New(format Format, log logrus.FieldLogger) (Loader, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	switch format {
	case FormatPackedXML:
		return &PackedXMLLoader{log: log}, nil
	case FormatLegacyBinary:
		return &LegacyBinaryLoader{log: log}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedContainer, format)
}

// ForPath returns the loader for the file at path. With FormatAuto the
// container is sniffed; otherwise the declared format is used.
func ForPath(path string, format Format, log logrus.FieldLogger) (Loader, error) {
	if format == "" || format == FormatAuto {
		detected, err := Detect(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}
	return New(format, log)
}

// Load sniffs or uses format to decode the sheet at sheetIndex of path.
func Load(path string, format Format, sheetIndex int, log logrus.FieldLogger) (*models.Workbook, error) {
	l, err := ForPath(path, format, log)
	if err != nil {
		return nil, err
	}
	return l.Load(path, sheetIndex)
}
