package models

// Workbook describes a decoded container and the sheet read from it.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Format is the container format name ("xls" or "xlsx").
	Format string `json:"format"`
	// SheetNames lists every sheet in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheet is the decoded sheet.
	Sheet *Sheet `json:"sheet,omitempty"`
}
