// Package errs defines the error kinds shared by the decode packages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidColumnName indicates a column name that is blank or not letters only.
	ErrInvalidColumnName = errors.New("invalid column name")
	// ErrInvalidRowNumber indicates a row number that is not a positive integer.
	ErrInvalidRowNumber = errors.New("invalid row number")
	// ErrInvalidRegionSpec indicates a region whose start lies after its end.
	ErrInvalidRegionSpec = errors.New("invalid region spec")
	// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrRegionOutOfBounds indicates region rows outside the populated rows of a sheet.
	ErrRegionOutOfBounds = errors.New("region out of bounds")
	// ErrNotAnArrayRegion indicates a list was requested over a region with several rows and columns.
	ErrNotAnArrayRegion = errors.New("region is not a single row or column")
	// ErrMissingRowRange indicates a statically bound type without a declared row range.
	ErrMissingRowRange = errors.New("missing row range declaration")
	// ErrNoAnnotatedFields indicates a record type without bound fields.
	ErrNoAnnotatedFields = errors.New("no bound fields")
	// ErrDuplicateColumnBinding indicates two fields bound to the same column or position.
	ErrDuplicateColumnBinding = errors.New("duplicate column binding")
	// ErrFieldColumnCountMismatch indicates the number of bound fields differs from the region width.
	ErrFieldColumnCountMismatch = errors.New("field count does not match column count")
	// ErrUnsupportedConversionType indicates no converter is registered for a type.
	ErrUnsupportedConversionType = errors.New("unsupported conversion type")
	// ErrNotADate indicates a cell that is not a date-formatted number.
	ErrNotADate = errors.New("cell is not a date")
	// ErrNotANumber indicates a cell whose stored value is not numeric.
	ErrNotANumber = errors.New("cell is not a number")
	// ErrValueOutOfRange indicates a number that the target type cannot represent.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrNotABool indicates a cell whose stored value is not boolean.
	ErrNotABool = errors.New("cell is not a boolean")
	// ErrNotConstructible indicates a record type that cannot be instantiated per row.
	ErrNotConstructible = errors.New("record type is not constructible")
	// ErrDefinedNameNotFound indicates the workbook has no defined name with the requested name.
	ErrDefinedNameNotFound = errors.New("defined name not found")
)

// RegionError reports which region property failed validation.
type RegionError struct {
	Property string
	Value    any
	Err      error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("%v: %s=%v", e.Err, e.Property, e.Value)
}

func (e *RegionError) Unwrap() error {
	return e.Err
}

// BoundsError reports the one-based row range a sheet accepts.
type BoundsError struct {
	SheetName string
	RowStart  int
	RowEnd    int
	// MinRow and MaxRow are the accepted bounds, one-based and inclusive.
	MinRow int
	MaxRow int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: rows [%d, %d] of sheet %q, accepted bounds (one-based): [%d, %d]",
		ErrRegionOutOfBounds, e.RowStart, e.RowEnd, e.SheetName, e.MinRow, e.MaxRow)
}

func (e *BoundsError) Unwrap() error {
	return ErrRegionOutOfBounds
}

// ArityError reports a mismatch between bound fields and region columns.
type ArityError struct {
	Fields  int
	Columns int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%v: fields=%d, columns=%d", ErrFieldColumnCountMismatch, e.Fields, e.Columns)
}

func (e *ArityError) Unwrap() error {
	return ErrFieldColumnCountMismatch
}

// CellError represents a conversion failure at a specific cell.
type CellError struct {
	// Row and Col are zero-based.
	Row  int
	Col  int
	Type string
	Err  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell at row=%d col=%d (zero-based) to %s: %v", e.Row, e.Col, e.Type, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// TypeError reports a configuration problem on a record type.
type TypeError struct {
	TypeName string
	Field    string
	Err      error
}

func (e *TypeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("type %s field %s: %v", e.TypeName, e.Field, e.Err)
	}
	return fmt.Sprintf("type %s: %v", e.TypeName, e.Err)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}
