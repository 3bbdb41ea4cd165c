package models

import (
	"fmt"
	"strings"

	"github.com/ukaji3/parselo-go/pkg/parselo/coords"
	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
)

// Region is a validated rectangular cell area. Rows are one-based and inclusive;
// columns are letter names. A Region value is immutable once built.
type Region struct {
	rowStart    int
	rowEnd      int
	columnStart string
	columnEnd   string
	startIndex  int
	endIndex    int
}

// NewRegion validates the bounds and builds a Region. It fails when a row is not
// positive, a column is blank or not letters only, or a start lies after its end.
func NewRegion(rowStart, rowEnd int, columnStart, columnEnd string) (Region, error) {
	if err := coords.ValidateRowNumber(rowStart, "rowStart"); err != nil {
		return Region{}, err
	}
	if err := coords.ValidateRowNumber(rowEnd, "rowEnd"); err != nil {
		return Region{}, err
	}
	if err := coords.ValidateColumnName(columnStart, "columnStart"); err != nil {
		return Region{}, err
	}
	if err := coords.ValidateColumnName(columnEnd, "columnEnd"); err != nil {
		return Region{}, err
	}
	if rowStart > rowEnd {
		return Region{}, &errs.RegionError{
			Property: "rowStart",
			Value:    fmt.Sprintf("%d after rowEnd %d", rowStart, rowEnd),
			Err:      errs.ErrInvalidRegionSpec,
		}
	}

	startIndex, err := coords.ToIndex(columnStart)
	if err != nil {
		return Region{}, err
	}
	endIndex, err := coords.ToIndex(columnEnd)
	if err != nil {
		return Region{}, err
	}
	if startIndex > endIndex {
		return Region{}, &errs.RegionError{
			Property: "columnStart",
			Value:    fmt.Sprintf("%s after columnEnd %s", strings.ToUpper(columnStart), strings.ToUpper(columnEnd)),
			Err:      errs.ErrInvalidRegionSpec,
		}
	}

	return Region{
		rowStart:    rowStart,
		rowEnd:      rowEnd,
		columnStart: strings.ToUpper(columnStart),
		columnEnd:   strings.ToUpper(columnEnd),
		startIndex:  startIndex,
		endIndex:    endIndex,
	}, nil
}

// MustRegion is like NewRegion but panics on invalid bounds.
func MustRegion(rowStart, rowEnd int, columnStart, columnEnd string) Region {
	r, err := NewRegion(rowStart, rowEnd, columnStart, columnEnd)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRegion parses an A1 range such as "B3:E5", "$B$3:$E$5" or "'Cars'!B3:E5".
// A single cell reference yields a one-cell region. The sheet qualifier is ignored.
func ParseRegion(ref string) (Region, error) {
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	start, end, found := strings.Cut(ref, ":")
	if !found {
		end = start
	}

	startCol, startRow, err := coords.ParseCellName(start)
	if err != nil {
		return Region{}, err
	}
	endCol, endRow, err := coords.ParseCellName(end)
	if err != nil {
		return Region{}, err
	}
	return NewRegion(startRow, endRow, startCol, endCol)
}

// RowStart returns the first row (one-based).
func (r Region) RowStart() int { return r.rowStart }

// RowEnd returns the last row (one-based, inclusive).
func (r Region) RowEnd() int { return r.rowEnd }

// ColumnStart returns the first column name in upper case.
func (r Region) ColumnStart() string { return r.columnStart }

// ColumnEnd returns the last column name in upper case.
func (r Region) ColumnEnd() string { return r.columnEnd }

// ColumnStartIndex returns the zero-based index of the first column.
func (r Region) ColumnStartIndex() int { return r.startIndex }

// ColumnEndIndex returns the zero-based index of the last column.
func (r Region) ColumnEndIndex() int { return r.endIndex }

// RowCount returns the number of rows in the region.
func (r Region) RowCount() int {
	return r.rowEnd - r.rowStart + 1
}

// ColumnCount returns the number of columns in the region.
func (r Region) ColumnCount() int {
	return r.endIndex - r.startIndex + 1
}

// CellCount returns RowCount * ColumnCount, or false when the product
// exceeds MaxCells.
func (r Region) CellCount() (int, bool) {
	return cellCount(r.RowCount(), r.ColumnCount())
}

// IsSingleRow reports whether the region spans exactly one row.
func (r Region) IsSingleRow() bool {
	return r.RowCount() == 1
}

// IsSingleColumn reports whether the region spans exactly one column.
func (r Region) IsSingleColumn() bool {
	return r.ColumnCount() == 1
}

// IsZero reports whether r is the zero value rather than a built region.
func (r Region) IsZero() bool {
	return r.rowStart == 0
}

// WithRows returns a copy of r spanning other rows.
func (r Region) WithRows(rowStart, rowEnd int) (Region, error) {
	return NewRegion(rowStart, rowEnd, r.columnStart, r.columnEnd)
}

// WithColumns returns a copy of r spanning other columns.
func (r Region) WithColumns(columnStart, columnEnd string) (Region, error) {
	return NewRegion(r.rowStart, r.rowEnd, columnStart, columnEnd)
}

// String returns the region in A1 range notation.
func (r Region) String() string {
	return fmt.Sprintf("%s%d:%s%d", r.columnStart, r.rowStart, r.columnEnd, r.rowEnd)
}

// MarshalText encodes the region in A1 range notation.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes an A1 range.
func (r *Region) UnmarshalText(text []byte) error {
	parsed, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
