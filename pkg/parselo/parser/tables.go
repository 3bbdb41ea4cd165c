package parser

import (
	"github.com/ukaji3/parselo-go/pkg/parselo/coords"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// DetectTables returns the bounding region of the sheet's data when it is
// dense enough to be a table. Callers use it to suggest a region to decode.
func DetectTables(f *excelize.File, sheetName string, params TableDetectionParams) ([]models.Region, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return detectTables(rows, params)
}

func detectTables(rows [][]string, params TableDetectionParams) ([]models.Region, error) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil, nil
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)
	if nonEmptyCells < params.MinNonemptyCells {
		return nil, nil
	}
	if float64(nonEmptyCells)/float64(totalCells) < params.DensityMin {
		return nil, nil
	}

	startCol, err := coords.Letters(minCol)
	if err != nil {
		return nil, err
	}
	endCol, err := coords.Letters(maxCol)
	if err != nil {
		return nil, err
	}
	region, err := models.NewRegion(minRow+1, maxRow+1, startCol, endCol)
	if err != nil {
		return nil, err
	}
	return []models.Region{region}, nil
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}
