// Package extract reads lists and matrices of converted values out of a sheet region.
package extract

import (
	"fmt"

	"github.com/ukaji3/parselo-go/pkg/parselo/convert"
	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

// CheckBounds fails with a *errs.BoundsError when the region rows fall outside
// the populated rows of s.
func CheckBounds(s models.Sheet, r models.Region) error {
	minRow, maxRow := s.FirstRow()+1, s.LastRow()+1
	if s.LastRow() < 0 {
		minRow, maxRow = 1, 0
	}
	if r.RowStart() < minRow || r.RowEnd() > maxRow {
		return &errs.BoundsError{
			SheetName: s.Name(),
			RowStart:  r.RowStart(),
			RowEnd:    r.RowEnd(),
			MinRow:    minRow,
			MaxRow:    maxRow,
		}
	}
	return nil
}

// Cell returns the cell at the zero-based row and column offsets of r, or nil
// when the sheet has no cell there.
func Cell(s models.Sheet, r models.Region, rowOffset, colOffset int) *models.Cell {
	c, ok := s.Cell(r.RowStart()-1+rowOffset, r.ColumnStartIndex()+colOffset)
	if !ok {
		return nil
	}
	return c
}

// List converts a single-row region left to right, or a single-column region
// top to bottom.
func List[T any](s models.Sheet, r models.Region, c convert.Converter[T]) ([]T, error) {
	if !r.IsSingleRow() && !r.IsSingleColumn() {
		return nil, fmt.Errorf("%w: %s spans %d rows and %d columns",
			errs.ErrNotAnArrayRegion, r, r.RowCount(), r.ColumnCount())
	}
	if err := CheckBounds(s, r); err != nil {
		return nil, err
	}

	n, ok := r.CellCount()
	if !ok {
		return nil, fmt.Errorf("%w: %s has more than %d cells", errs.ErrInvalidRegionSpec, r, models.MaxCells)
	}
	out := make([]T, 0, models.Capacity(n))
	for rowOffset := 0; rowOffset < r.RowCount(); rowOffset++ {
		for colOffset := 0; colOffset < r.ColumnCount(); colOffset++ {
			v, err := convertAt(s, r, c, rowOffset, colOffset)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// Matrix converts every cell of r into a row-major matrix.
func Matrix[T any](s models.Sheet, r models.Region, c convert.Converter[T]) (*models.Matrix[T], error) {
	if err := CheckBounds(s, r); err != nil {
		return nil, err
	}
	return models.NewMatrix(r.RowCount(), r.ColumnCount(), func(row, col int) (T, error) {
		return convertAt(s, r, c, row, col)
	})
}

func convertAt[T any](s models.Sheet, r models.Region, c convert.Converter[T], rowOffset, colOffset int) (T, error) {
	v, err := c.ConvertWithDefault(Cell(s, r, rowOffset, colOffset))
	if err != nil {
		return v, &errs.CellError{
			Row:  r.RowStart() - 1 + rowOffset,
			Col:  r.ColumnStartIndex() + colOffset,
			Type: c.Kind.String(),
			Err:  err,
		}
	}
	return v, nil
}
