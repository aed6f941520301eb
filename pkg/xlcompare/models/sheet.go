package models

// Sheet is the raw cell grid of one sheet, addressed by zero-based
// row and column. Rows may be ragged; missing cells read as empty.
type Sheet struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Index is the zero-based sheet position in the workbook.
	Index int `json:"index"`
	// Rows holds the grid cells row by row.
	Rows [][]RawCell `json:"rows,omitempty"`
}

// Cell returns the cell at (row, col), or an empty cell when out of bounds.
func (s *Sheet) Cell(row, col int) RawCell {
	if s == nil || row < 0 || row >= len(s.Rows) {
		return RawCell{}
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return RawCell{}
	}
	return r[col]
}

// NumRows returns the number of grid rows up to the last non-empty row.
func (s *Sheet) NumRows() int {
	maxRow, _ := s.bounds()
	return maxRow + 1
}

// NumCols returns the number of grid columns up to the last non-empty column.
func (s *Sheet) NumCols() int {
	_, maxCol := s.bounds()
	return maxCol + 1
}

// bounds finds the last non-empty row and column, or -1 when the grid is empty.
func (s *Sheet) bounds() (maxRow, maxCol int) {
	maxRow, maxCol = -1, -1
	if s == nil {
		return
	}
	for rowIdx, row := range s.Rows {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	return
}
