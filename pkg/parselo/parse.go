package parselo

import (
	"github.com/ukaji3/parselo-go/pkg/parselo/binder"
	"github.com/ukaji3/parselo-go/pkg/parselo/convert"
	"github.com/ukaji3/parselo-go/pkg/parselo/extract"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

// ParseArray converts a single-row or single-column region with the converter
// registered for kind.
func ParseArray[T any](w *Workbook, sheetName string, kind convert.Kind, region models.Region) ([]T, error) {
	c, err := convert.LookupAs[T](w.opts.Registry, kind)
	if err != nil {
		return nil, err
	}
	s, err := w.sheet(sheetName)
	if err != nil {
		return nil, err
	}
	values, err := extract.List(s, region, c)
	if err != nil {
		return nil, NewExtractionError(sheetName, "array", err)
	}
	return values, nil
}

// ParseMatrix converts every cell of region with the converter registered for kind.
func ParseMatrix[T any](w *Workbook, sheetName string, kind convert.Kind, region models.Region) (*models.Matrix[T], error) {
	c, err := convert.LookupAs[T](w.opts.Registry, kind)
	if err != nil {
		return nil, err
	}
	s, err := w.sheet(sheetName)
	if err != nil {
		return nil, err
	}
	m, err := extract.Matrix(s, region, c)
	if err != nil {
		return nil, NewExtractionError(sheetName, "matrix", err)
	}
	return m, nil
}

// ParseStrings returns the displayed values of a single-row or single-column region.
func (w *Workbook) ParseStrings(sheetName string, region models.Region) ([]string, error) {
	return ParseArray[string](w, sheetName, convert.Text, region)
}

// ParseFloats returns the numeric values of a single-row or single-column region.
func (w *Workbook) ParseFloats(sheetName string, region models.Region) ([]float64, error) {
	return ParseArray[float64](w, sheetName, convert.Float, region)
}

// ParseStringMatrix returns the displayed values of region; empty cells are "".
func (w *Workbook) ParseStringMatrix(sheetName string, region models.Region) (*models.Matrix[string], error) {
	return ParseMatrix[string](w, sheetName, convert.Text, region)
}

// ParseFloatMatrix returns the numeric values of region.
func (w *Workbook) ParseFloatMatrix(sheetName string, region models.Region) (*models.Matrix[float64], error) {
	return ParseMatrix[float64](w, sheetName, convert.Float, region)
}

// Parse decodes the rows T declares through binder.RowRanger, one T per row,
// binding fields tagged with `parselo:"col=..."`.
func Parse[T any](w *Workbook, sheetName string) ([]T, error) {
	s, err := w.sheet(sheetName)
	if err != nil {
		return nil, err
	}
	records, err := binder.DecodeStatic[T](w.binder, s)
	if err != nil {
		return nil, NewExtractionError(sheetName, "records", err)
	}
	return records, nil
}

// ParseRegion decodes region, one T per row, binding fields tagged with
// `parselo:"pos=..."` to the region's columns in position order.
func ParseRegion[T any](w *Workbook, sheetName string, region models.Region) ([]T, error) {
	s, err := w.sheet(sheetName)
	if err != nil {
		return nil, err
	}
	records, err := binder.DecodeDynamic[T](w.binder, s, region)
	if err != nil {
		return nil, NewExtractionError(sheetName, "records", err)
	}
	return records, nil
}

// ParseNamed decodes the range of a defined name like ParseRegion.
func ParseNamed[T any](w *Workbook, definedName string) ([]T, error) {
	dr, err := w.DefinedRegion(definedName)
	if err != nil {
		return nil, err
	}
	return ParseRegion[T](w, dr.SheetName, dr.Region)
}
