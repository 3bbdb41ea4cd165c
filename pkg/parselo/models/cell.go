// Package models defines data structures for spreadsheet decoding.
package models

import "time"

// CellKind classifies the stored value of a cell.
type CellKind int

const (
	// CellText is a shared, inline or formula string.
	CellText CellKind = iota
	// CellNumber is a numeric value, possibly formatted as a date.
	CellNumber
	// CellBool is a boolean value.
	CellBool
	// CellDate is an ISO 8601 date stored as text with the "d" type.
	CellDate
	// CellError is an error value such as #DIV/0!.
	CellError
)

var cellKindNames = map[CellKind]string{
	CellText:   "text",
	CellNumber: "number",
	CellBool:   "bool",
	CellDate:   "date",
	CellError:  "error",
}

func (k CellKind) String() string {
	if name, ok := cellKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Cell represents the raw content of one present cell.
type Cell struct {
	// Row is the row index (zero-based).
	Row int `json:"row"`
	// Col is the column index (zero-based).
	Col int `json:"col"`
	// Kind is the stored value type.
	Kind CellKind `json:"kind"`
	// Raw is the stored value without number formatting.
	Raw string `json:"raw"`
	// Display is the value as rendered with the cell's number format.
	Display string `json:"display"`
	// Number is the stored numeric value when Kind is CellNumber.
	Number float64 `json:"number,omitempty"`
	// IsDate reports a numeric cell carrying a date number format, or a CellDate.
	IsDate bool `json:"is_date,omitempty"`
	// Time is the resolved date and time when IsDate is set.
	Time time.Time `json:"time,omitzero"`
}

// IsNumeric reports whether the cell stores a number.
func (c Cell) IsNumeric() bool {
	return c.Kind == CellNumber
}
