package models

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
)

// MaxCells is the number of cells in a full xlsx grid (2^20 rows by 2^14
// columns). Larger regions are rejected before any cell is read.
const MaxCells = 1 << 34

// maxPrealloc caps the capacity reserved up front for decoded values.
const maxPrealloc = 1 << 16

func cellCount(rows, columns int) (int, bool) {
	if rows < 0 || columns < 0 || (columns > 0 && rows > math.MaxInt/columns) {
		return 0, false
	}
	n := rows * columns
	return n, n <= MaxCells
}

// Capacity returns a slice capacity for n values, capped so huge regions do
// not reserve memory before any cell is read.
func Capacity(n int) int {
	return min(n, maxPrealloc)
}

// Matrix is a row-major grid of decoded values.
type Matrix[T any] struct {
	rows    int
	columns int
	values  []T
}

// NewMatrix builds a rows x columns matrix by calling value for every cell,
// top to bottom and left to right within a row.
func NewMatrix[T any](rows, columns int, value func(row, col int) (T, error)) (*Matrix[T], error) {
	n, ok := cellCount(rows, columns)
	if !ok {
		return nil, fmt.Errorf("%w: %d x %d cells exceeds %d", errs.ErrInvalidRegionSpec, rows, columns, MaxCells)
	}
	m := &Matrix[T]{
		rows:    rows,
		columns: columns,
		values:  make([]T, 0, Capacity(n)),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			v, err := value(r, c)
			if err != nil {
				return nil, err
			}
			m.values = append(m.values, v)
		}
	}
	return m, nil
}

// RowCount returns the number of rows.
func (m *Matrix[T]) RowCount() int {
	return m.rows
}

// ColumnCount returns the number of values in every row.
func (m *Matrix[T]) ColumnCount() int {
	return m.columns
}

// At returns the value at the zero-based row and column offsets.
func (m *Matrix[T]) At(row, col int) T {
	return m.values[row*m.columns+col]
}

// Row returns a copy of the values of one row.
func (m *Matrix[T]) Row(row int) []T {
	out := make([]T, m.columns)
	copy(out, m.values[row*m.columns:(row+1)*m.columns])
	return out
}

// Rows returns a copy of the matrix as nested slices.
func (m *Matrix[T]) Rows() [][]T {
	out := make([][]T, m.rows)
	for r := range out {
		out[r] = m.Row(r)
	}
	return out
}

// MarshalJSON encodes the matrix as an array of rows.
func (m *Matrix[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}
