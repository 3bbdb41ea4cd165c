package models

// Sheet is a read-only, fully loaded worksheet. Indexes are zero-based.
type Sheet interface {
	// Name returns the sheet name.
	Name() string
	// Cell returns the cell at row and col, or false when no cell is present.
	Cell(row, col int) (*Cell, bool)
	// FirstRow returns the first populated row index, or -1 for an empty sheet.
	FirstRow() int
	// LastRow returns the last populated row index, or -1 for an empty sheet.
	LastRow() int
}

// SheetData is an in-memory Sheet holding only present cells.
type SheetData struct {
	name     string
	rows     map[int]map[int]*Cell
	firstRow int
	lastRow  int
}

// NewSheetData creates an empty sheet.
func NewSheetData(name string) *SheetData {
	return &SheetData{
		name:     name,
		rows:     make(map[int]map[int]*Cell),
		firstRow: -1,
		lastRow:  -1,
	}
}

// Put stores c at its Row and Col, replacing any previous cell there.
func (s *SheetData) Put(c Cell) {
	row, ok := s.rows[c.Row]
	if !ok {
		row = make(map[int]*Cell)
		s.rows[c.Row] = row
	}
	row[c.Col] = &c

	if s.firstRow < 0 || c.Row < s.firstRow {
		s.firstRow = c.Row
	}
	if c.Row > s.lastRow {
		s.lastRow = c.Row
	}
}

// PutText stores a text cell whose raw and displayed values are both value.
func (s *SheetData) PutText(row, col int, value string) {
	s.Put(Cell{Row: row, Col: col, Kind: CellText, Raw: value, Display: value})
}

// Name returns the sheet name.
func (s *SheetData) Name() string {
	return s.name
}

// Cell returns the cell at row and col.
func (s *SheetData) Cell(row, col int) (*Cell, bool) {
	c, ok := s.rows[row][col]
	return c, ok
}

// FirstRow returns the first populated row index.
func (s *SheetData) FirstRow() int {
	return s.firstRow
}

// LastRow returns the last populated row index.
func (s *SheetData) LastRow() int {
	return s.lastRow
}

// Len returns the number of present cells.
func (s *SheetData) Len() int {
	n := 0
	for _, row := range s.rows {
		n += len(row)
	}
	return n
}
