package models

import "fmt"

// ColumnType is the inferred type of a whole column.
type ColumnType string

const (
	TypeInteger ColumnType = "integer"
	TypeFloat   ColumnType = "float"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
	TypeText    ColumnType = "text"
	TypeMixed   ColumnType = "mixed"
)

// IsNumeric reports whether the column type is integer or float.
func (t ColumnType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// Column is a named, ordered sequence of values.
type Column struct {
	Name   string
	Values []Value
	Type   ColumnType
}

// NullCount returns the number of absent values in the column.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// Render returns the default rendering of the value at row,
// widening integers when the column is typed float.
func (c *Column) Render(row int) string {
	v := c.Values[row]
	if c.Type == TypeFloat && v.Kind == KindInteger {
		return FormatFloat(float64(v.Int))
	}
	return v.String()
}

// Table is the header-named, column-oriented view of a sheet.
// All columns have the same length.
type Table struct {
	Columns []Column
	rows    int
}

// NewTable builds a table with the given column names and row-major values.
// Short rows are padded with absent values.
func NewTable(names []string, rows [][]Value) *Table {
	t := &Table{Columns: make([]Column, len(names)), rows: len(rows)}
	for i, name := range names {
		values := make([]Value, len(rows))
		for r, row := range rows {
			if i < len(row) {
				values[r] = row[i]
			}
		}
		t.Columns[i] = Column{Name: name, Values: values, Type: InferType(values)}
	}
	return t
}

// TableFromSheet builds a table using the first grid row as the header.
// Empty header cells are named "Unnamed: <index>".
func TableFromSheet(s *Sheet) *Table {
	numRows, numCols := s.NumRows(), s.NumCols()
	if numRows == 0 {
		return NewTable(nil, nil)
	}

	names := make([]string, numCols)
	for col := 0; col < numCols; col++ {
		header := s.Cell(0, col).Value()
		if header.IsNull() {
			names[col] = fmt.Sprintf("Unnamed: %d", col)
			continue
		}
		names[col] = header.String()
	}

	rows := make([][]Value, 0, numRows-1)
	for r := 1; r < numRows; r++ {
		row := make([]Value, numCols)
		for col := 0; col < numCols; col++ {
			row[col] = s.Cell(r, col).Value()
		}
		rows = append(rows, row)
	}

	return NewTable(names, rows)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return t.rows
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the first column with the given name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the first column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	i := t.Index(name)
	if i < 0 {
		return nil, false
	}
	return &t.Columns[i], true
}

// CommonColumns returns the names of t that also appear in other, in t's
// order, each name once.
func (t *Table) CommonColumns(other *Table) []string {
	seen := make(map[string]bool)
	var common []string
	for _, c := range t.Columns {
		if seen[c.Name] || other.Index(c.Name) < 0 {
			continue
		}
		seen[c.Name] = true
		common = append(common, c.Name)
	}
	return common
}

// InferType derives the column type from its values.
// A column with no values, or integers mixed with absent values, is float.
func InferType(values []Value) ColumnType {
	counts := make(map[Kind]int)
	for _, v := range values {
		counts[v.Kind]++
	}
	nulls := counts[KindNull]
	present := len(values) - nulls

	switch {
	case present == 0:
		return TypeFloat
	case counts[KindInteger] == present:
		if nulls > 0 {
			return TypeFloat
		}
		return TypeInteger
	case counts[KindInteger]+counts[KindFloat] == present:
		return TypeFloat
	case counts[KindBoolean] == present:
		if nulls > 0 {
			return TypeMixed
		}
		return TypeBoolean
	case counts[KindDate] == present:
		return TypeDate
	case counts[KindText] == present:
		return TypeText
	default:
		return TypeMixed
	}
}
