package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukaji3/parselo-go/pkg/parselo"
	"github.com/ukaji3/parselo-go/pkg/parselo/convert"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

// Result is the decoded output of one job.
type Result struct {
	Name   string        `json:"name"`
	Sheet  string        `json:"sheet"`
	Range  models.Region `json:"range"`
	Kind   string        `json:"kind"`
	Values any           `json:"values"`
}

// Run executes the jobs in order and stops at the first failure.
func Run(wb *parselo.Workbook, jobs []Job) ([]Result, error) {
	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		res, err := RunJob(wb, j)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", j.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// RunJob executes a single validated job.
func RunJob(wb *parselo.Workbook, j Job) (Result, error) {
	sheet, region := j.Sheet, j.Range
	if j.Defined != "" {
		dr, err := wb.DefinedRegion(j.Defined)
		if err != nil {
			return Result{}, err
		}
		sheet, region = dr.SheetName, dr.Region
	}

	kind := j.ConverterKind()
	var (
		values any
		err    error
	)
	switch kind {
	case convert.Text:
		values, err = decode[string](wb, sheet, kind, j.Shape, region)
	case convert.Int:
		values, err = decode[int](wb, sheet, kind, j.Shape, region)
	case convert.Float:
		values, err = decode[float64](wb, sheet, kind, j.Shape, region)
	case convert.Date:
		values, err = decode[time.Time](wb, sheet, kind, j.Shape, region)
	case convert.Bool:
		values, err = decode[bool](wb, sheet, kind, j.Shape, region)
	case convert.Decimal:
		values, err = decode[decimal.Decimal](wb, sheet, kind, j.Shape, region)
	default:
		return Result{}, fmt.Errorf("%w: %s", parselo.ErrUnsupportedConversionType, kind)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{Name: j.Name, Sheet: sheet, Range: region, Kind: kind.String(), Values: values}, nil
}

func decode[T any](wb *parselo.Workbook, sheet string, kind convert.Kind, shape Shape, region models.Region) (any, error) {
	if shape == ShapeMatrix {
		return parselo.ParseMatrix[T](wb, sheet, kind, region)
	}
	return parselo.ParseArray[T](wb, sheet, kind, region)
}
