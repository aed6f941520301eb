package loader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pbnjay/grate"
	_ "github.com/pbnjay/grate/xls" // registers the BIFF reader
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
)

// LegacyBinaryLoader reads BIFF .xls containers.
type LegacyBinaryLoader struct {
	log logrus.FieldLogger
}

// Format returns FormatLegacyBinary.
func (l *LegacyBinaryLoader) Format() Format {
	return FormatLegacyBinary
}

// Load decodes the sheet at sheetIndex into a raw cell grid.
func (l *LegacyBinaryLoader) Load(path string, sheetIndex int) (*models.Workbook, error) {
	log := l.log.WithFields(logrus.Fields{"path": path, "format": FormatLegacyBinary, "sheet": sheetIndex})
	log.Debug("opening workbook")

	wb, err := grate.Open(path)
	if err != nil {
		return nil, newDecodeError(path, FormatLegacyBinary, err)
	}
	defer wb.Close()

	sheetList, err := wb.List()
	if err != nil {
		return nil, newDecodeError(path, FormatLegacyBinary, err)
	}
	if sheetIndex < 0 || sheetIndex >= len(sheetList) {
		return nil, fmt.Errorf("%w: %d (workbook has %d sheets)", ErrSheetIndex, sheetIndex, len(sheetList))
	}
	sheetName := sheetList[sheetIndex]

	sheet, err := wb.Get(sheetName)
	if err != nil {
		return nil, newDecodeError(path, FormatLegacyBinary, err)
	}

	var rows [][]models.RawCell
	for sheet.Next() {
		rows = append(rows, classifyRow(sheet.Strings(), sheet.Types()))
	}
	if err := sheet.Err(); err != nil {
		return nil, newDecodeError(path, FormatLegacyBinary, err)
	}
	log.WithField("rows", len(rows)).Debug("sheet decoded")

	return &models.Workbook{
		BookName:   filepath.Base(path),
		Format:     string(FormatLegacyBinary),
		SheetNames: sheetList,
		Sheet: &models.Sheet{
			Name:  sheetName,
			Index: sheetIndex,
			Rows:  rows,
		},
	}, nil
}

// classifyRow pairs row values with the reader's per-cell type names.
func classifyRow(values, types []string) []models.RawCell {
	cells := make([]models.RawCell, len(values))
	for i, v := range values {
		typeName := ""
		if i < len(types) {
			typeName = types[i]
		}
		cells[i] = classifyCell(v, typeName)
	}
	return cells
}

// dateLayouts are tried in order when a date cell is rendered as text.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01-02-06",
	"1/2/2006",
	"1/2/06",
	"15:04:05",
}

func classifyCell(value, typeName string) models.RawCell {
	switch strings.ToLower(typeName) {
	case "blank", "":
		if value == "" {
			return models.RawCell{}
		}
		return models.RawCell{Storage: models.StorageText, Text: value}
	case "integer", "float":
		number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return models.RawCell{Storage: models.StorageText, Text: value}
		}
		return models.RawCell{Storage: models.StorageNumber, Text: value, Number: number}
	case "date":
		cell := models.RawCell{Storage: models.StorageDate, Text: value}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				cell.Time = t
				break
			}
		}
		return cell
	case "boolean":
		return models.RawCell{Storage: models.StorageBoolean, Text: value}
	case "error":
		return models.RawCell{Storage: models.StorageError, Text: value}
	default:
		if value == "" {
			return models.RawCell{}
		}
		return models.RawCell{Storage: models.StorageText, Text: value}
	}
}
