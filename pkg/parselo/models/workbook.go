package models

// WorkbookData summarizes a workbook for listing.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists sheets in workbook order.
	Sheets []SheetSummary `json:"sheets"`
	// DefinedNames lists the named regions of the workbook.
	DefinedNames []DefinedRegion `json:"defined_names,omitempty"`
}

// SheetSummary describes the populated area of one sheet.
type SheetSummary struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// FirstRow is the first populated row (1-based, 0 when empty).
	FirstRow int `json:"first_row"`
	// LastRow is the last populated row (1-based, 0 when empty).
	LastRow int `json:"last_row"`
	// Cells is the number of present cells.
	Cells int `json:"cells"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
}
