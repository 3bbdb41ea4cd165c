package parselo

import (
	"fmt"

	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
)

// Error kinds returned by the decode functions; match them with errors.Is.
var (
	ErrInvalidColumnName         = errs.ErrInvalidColumnName
	ErrInvalidRowNumber          = errs.ErrInvalidRowNumber
	ErrInvalidRegionSpec         = errs.ErrInvalidRegionSpec
	ErrSheetNotFound             = errs.ErrSheetNotFound
	ErrRegionOutOfBounds         = errs.ErrRegionOutOfBounds
	ErrNotAnArrayRegion          = errs.ErrNotAnArrayRegion
	ErrMissingRowRange           = errs.ErrMissingRowRange
	ErrNoAnnotatedFields         = errs.ErrNoAnnotatedFields
	ErrDuplicateColumnBinding    = errs.ErrDuplicateColumnBinding
	ErrFieldColumnCountMismatch  = errs.ErrFieldColumnCountMismatch
	ErrUnsupportedConversionType = errs.ErrUnsupportedConversionType
	ErrNotADate                  = errs.ErrNotADate
	ErrNotANumber                = errs.ErrNotANumber
	ErrNotABool                  = errs.ErrNotABool
	ErrValueOutOfRange           = errs.ErrValueOutOfRange
	ErrNotConstructible          = errs.ErrNotConstructible
	ErrDefinedNameNotFound       = errs.ErrDefinedNameNotFound
)

// Error types carrying details about a failure; match them with errors.As.
type (
	RegionError = errs.RegionError
	BoundsError = errs.BoundsError
	ArityError  = errs.ArityError
	CellError   = errs.CellError
	TypeError   = errs.TypeError
)

// ExtractionError represents an error during decoding of one sheet.
type ExtractionError struct {
	SheetName string
	Component string // "load", "array", "matrix", "records"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
