package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/parselo-go/pkg/parselo/models"
	"github.com/xuri/excelize/v2"
)

// LoadSheet reads every present cell of a sheet into memory. Each cell keeps its
// stored value, its formatted value and whether its number format is a date.
// Cells whose stored and formatted values are both empty are treated as absent.
func LoadSheet(f *excelize.File, sheetName string) (*models.SheetData, error) {
	formatted, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	formats := newFormatCache(f)

	sheet := models.NewSheetData(sheetName)
	for rowIdx, row := range raw {
		for colIdx, rawValue := range row {
			display := ""
			if rowIdx < len(formatted) && colIdx < len(formatted[rowIdx]) {
				display = formatted[rowIdx][colIdx]
			}
			if rawValue == "" && display == "" {
				continue
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}

			cell := models.Cell{
				Row:     rowIdx,
				Col:     colIdx,
				Kind:    classify(cellType, rawValue),
				Raw:     rawValue,
				Display: display,
			}
			switch cell.Kind {
			case models.CellNumber:
				cell.Number, _ = strconv.ParseFloat(rawValue, 64)
				if formats.isDate(sheetName, cellName) {
					cell.IsDate = true
					cell.Time, _ = excelize.ExcelDateToTime(cell.Number, date1904)
				}
			case models.CellDate:
				cell.IsDate = true
				cell.Time, _ = parseISODate(rawValue)
			}
			sheet.Put(cell)
		}
	}

	return sheet, nil
}

// classify maps an excelize cell type and stored value to a CellKind.
// Numbers are usually stored without a type attribute, so untyped values are
// sniffed the way parseValue does.
func classify(t excelize.CellType, rawValue string) models.CellKind {
	switch t {
	case excelize.CellTypeBool:
		return models.CellBool
	case excelize.CellTypeDate:
		return models.CellDate
	case excelize.CellTypeError:
		return models.CellError
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.CellText
	}
	if _, ok := parseValue(rawValue).(string); ok {
		return models.CellText
	}
	return models.CellNumber
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseISODate parses the ISO 8601 text stored in cells of type "d".
func parseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range isoLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
