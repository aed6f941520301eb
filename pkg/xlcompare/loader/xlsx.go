package loader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
	"github.com/xuri/excelize/v2"
)

// PackedXMLLoader reads .xlsx containers.
type PackedXMLLoader struct {
	log logrus.FieldLogger
}

// Format returns FormatPackedXML.
func (l *PackedXMLLoader) Format() Format {
	return FormatPackedXML
}

// Load decodes the sheet at sheetIndex into a raw cell grid.
func (l *PackedXMLLoader) Load(path string, sheetIndex int) (*models.Workbook, error) {
	log := l.log.WithFields(logrus.Fields{"path": path, "format": FormatPackedXML, "sheet": sheetIndex})
	log.Debug("opening workbook")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, newDecodeError(path, FormatPackedXML, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(sheetList) {
		return nil, fmt.Errorf("%w: %d (workbook has %d sheets)", ErrSheetIndex, sheetIndex, len(sheetList))
	}
	sheetName := sheetList[sheetIndex]

	rows, err := ReadCells(f, sheetName)
	if err != nil {
		return nil, newDecodeError(path, FormatPackedXML, err)
	}
	log.WithField("rows", len(rows)).Debug("sheet decoded")

	return &models.Workbook{
		BookName:   filepath.Base(path),
		Format:     string(FormatPackedXML),
		SheetNames: sheetList,
		Sheet: &models.Sheet{
			Name:  sheetName,
			Index: sheetIndex,
			Rows:  rows,
		},
	}, nil
}

// ReadCells reads the raw cell grid of a sheet.
func ReadCells(f *excelize.File, sheetName string) ([][]models.RawCell, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	dateStyles := make(map[int]bool)
	result := make([][]models.RawCell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.RawCell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cell, err := readCell(f, sheetName, cellName, raw, dateStyles)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cellName, err)
			}
			cells[colIdx] = cell
		}
		result[rowIdx] = cells
	}

	return result, nil
}

// readCell classifies one non-empty cell by its stored type and style.
func readCell(f *excelize.File, sheetName, cellName, raw string, dateStyles map[int]bool) (models.RawCell, error) {
	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return models.RawCell{}, err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return models.RawCell{Storage: models.StorageBoolean, Text: raw}, nil
	case excelize.CellTypeError:
		return models.RawCell{Storage: models.StorageError, Text: raw}, nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.RawCell{Storage: models.StorageText, Text: raw}, nil
	case excelize.CellTypeDate:
		cell := models.RawCell{Storage: models.StorageDate, Text: raw}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			cell.Time = t
		}
		return cell, nil
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return models.RawCell{Storage: models.StorageText, Text: raw}, nil
	}

	isDate, err := isDateStyle(f, sheetName, cellName, dateStyles)
	if err != nil {
		return models.RawCell{}, err
	}
	if isDate {
		cell := models.RawCell{Storage: models.StorageDate, Text: raw, Number: number}
		if t, err := excelize.ExcelDateToTime(number, false); err == nil {
			cell.Time = t
		}
		return cell, nil
	}

	return models.RawCell{Storage: models.StorageNumber, Text: raw, Number: number}, nil
}

// isDateStyle reports whether the cell's number format displays a date.
// Results are cached per style index.
func isDateStyle(f *excelize.File, sheetName, cellName string, cache map[int]bool) (bool, error) {
	styleID, err := f.GetCellStyle(sheetName, cellName)
	if err != nil {
		return false, err
	}
	if styleID == 0 {
		return false, nil
	}
	if v, ok := cache[styleID]; ok {
		return v, nil
	}

	style, err := f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := isDateNumFmt(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	}
	cache[styleID] = isDate
	return isDate, nil
}

// isDateNumFmt reports whether a built-in number format id is a date or time.
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) || (id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// isDateFormatCode reports whether a custom format code contains date or
// time tokens outside quoted literals and bracketed sections.
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'y', r == 'd', r == 'm', r == 'h', r == 's':
			return true
		}
	}
	return false
}
