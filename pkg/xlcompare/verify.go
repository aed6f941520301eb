package xlcompare

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/cellref"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/loader"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
	"gonum.org/v1/gonum/floats"
)

// SumEpsilon is the absolute tolerance for sum equality.
// It does not scale with magnitude, so very large sums may fail on
// rounding noise alone.
const SumEpsilon = 1e-9

// VerifySum checks that the numeric cells of rangeText in the sheet at
// opts.SheetIndex add up to the value of targetText. Only .xlsx
// containers are supported. Failures are reported in the result's Error.
func VerifySum(path, rangeText, targetText string, opts Options) *models.SumResult {
	log := opts.logger().WithFields(logrus.Fields{"path": path, "range": rangeText, "target": targetText})

	l, err := loader.ForPath(path, opts.Format, opts.logger())
	if err != nil {
		return sumFailure(rangeText, targetText, fmt.Errorf("cannot read file: %w", err), log)
	}
	if l.Format() != loader.FormatPackedXML {
		return sumFailure(rangeText, targetText,
			fmt.Errorf("%w: sum verification requires an .xlsx file, got %s", ErrUnsupportedContainer, l.Format()), log)
	}

	wb, err := l.Load(path, opts.SheetIndex)
	if err != nil {
		return sumFailure(rangeText, targetText, fmt.Errorf("cannot read file: %w", err), log)
	}

	result := VerifySumSheet(wb.Sheet, rangeText, targetText)
	log.WithFields(logrus.Fields{"passed": result.Passed, "sum": result.Sum, "cells": result.CellsCount}).Debug("sum verified")
	return result
}

// VerifySumSheet runs sum verification on an already-decoded sheet.
// Empty, non-numeric and out-of-grid cells in the range are skipped.
// A text target holding a number and a boolean target (0 or 1) are
// coerced; other non-numeric targets are errors.
func VerifySumSheet(sheet *models.Sheet, rangeText, targetText string) *models.SumResult {
	r, err := cellref.ParseRange(rangeText)
	if err != nil {
		return newSumFailure(rangeText, targetText, err)
	}
	target, err := cellref.ParseAddress(targetText)
	if err != nil {
		return newSumFailure(rangeText, targetText, err)
	}

	values := []float64{}
	if used, ok := r.Clip(sheet.NumRows(), sheet.NumCols()); ok {
		used.Each(func(col, row int) {
			cell := sheet.Cell(row-1, col-1)
			if cell.IsNumeric() {
				values = append(values, cell.Number)
			}
		})
	}

	targetCell := sheet.Cell(target.Row-1, target.ColumnNumber()-1)
	if targetCell.IsEmpty() {
		return newSumFailure(rangeText, targetText, fmt.Errorf("%w: %s", ErrTargetEmpty, target))
	}
	targetValue, ok := targetNumber(targetCell)
	if !ok {
		return newSumFailure(rangeText, targetText,
			fmt.Errorf("%w: %s holds %s %q", ErrTargetNotNumeric, target, targetCell.Storage, targetCell.Text))
	}

	sum := floats.Sum(values)

	return &models.SumResult{
		Passed:     math.Abs(sum-targetValue) < SumEpsilon,
		Values:     values,
		Sum:        sum,
		Target:     &targetValue,
		CellRange:  rangeText,
		TargetCell: targetText,
		CellsCount: len(values),
	}
}

func targetNumber(cell models.RawCell) (float64, bool) {
	switch cell.Storage {
	case models.StorageNumber:
		return cell.Number, true
	case models.StorageText:
		v, err := strconv.ParseFloat(strings.TrimSpace(cell.Text), 64)
		return v, err == nil
	case models.StorageBoolean:
		if cell.Value().Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func newSumFailure(rangeText, targetText string, err error) *models.SumResult {
	return &models.SumResult{
		Error:      err.Error(),
		Values:     []float64{},
		CellRange:  rangeText,
		TargetCell: targetText,
	}
}

func sumFailure(rangeText, targetText string, err error, log logrus.FieldLogger) *models.SumResult {
	log.WithError(err).Warn("sum verification failed")
	return newSumFailure(rangeText, targetText, err)
}
