package xlcompare

import (
	"errors"

	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/cellref"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/loader"
)

// ErrInvalidAddress indicates malformed cell or range text.
var ErrInvalidAddress = cellref.ErrInvalidAddress

// ErrDecodeFailure indicates a container that could not be parsed.
var ErrDecodeFailure = loader.ErrDecodeFailure

// ErrUnsupportedContainer indicates a container format the operation cannot use.
var ErrUnsupportedContainer = loader.ErrUnsupportedContainer

// ErrSheetIndex indicates a sheet index outside the workbook.
var ErrSheetIndex = loader.ErrSheetIndex

// ErrTargetEmpty indicates the sum target cell holds no value.
var ErrTargetEmpty = errors.New("target cell empty")

// ErrTargetNotNumeric indicates the sum target cell is not a number.
var ErrTargetNotNumeric = errors.New("target cell not numeric")
