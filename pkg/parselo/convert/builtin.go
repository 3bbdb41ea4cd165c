package convert

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

// Strings renders the displayed value of a cell, so numbers keep their format.
var Strings = Converter[string]{
	Kind: Text,
	Convert: func(c *models.Cell) (string, bool, error) {
		return c.Display, c.Display != "", nil
	},
	Default: "",
}

// Ints truncates the stored numeric value toward zero.
var Ints = Converter[int]{
	Kind: Int,
	Convert: func(c *models.Cell) (int, bool, error) {
		if !c.IsNumeric() {
			return 0, false, notNumeric(c)
		}
		n := math.Trunc(c.Number)
		// -float64(math.MinInt) is 2^63, one past math.MaxInt.
		if !(n >= float64(math.MinInt) && n < -float64(math.MinInt)) {
			return 0, false, fmt.Errorf("%w: %v does not fit in an int", errs.ErrValueOutOfRange, c.Number)
		}
		return int(n), true, nil
	},
	Default: math.MinInt,
}

// Floats returns the stored numeric value.
var Floats = Converter[float64]{
	Kind: Float,
	Convert: func(c *models.Cell) (float64, bool, error) {
		if !c.IsNumeric() {
			return 0, false, notNumeric(c)
		}
		return c.Number, true, nil
	},
	Default: math.NaN(),
}

// Dates requires a date-formatted cell and returns its calendar date at UTC midnight.
var Dates = Converter[time.Time]{
	Kind: Date,
	Convert: func(c *models.Cell) (time.Time, bool, error) {
		if !c.IsDate {
			return time.Time{}, false, fmt.Errorf("%w: found %s value %q", errs.ErrNotADate, c.Kind, c.Display)
		}
		if c.Time.IsZero() {
			return time.Time{}, false, nil
		}
		y, m, d := c.Time.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true, nil
	},
	Default: time.Time{},
}

// Bools accepts boolean cells and numeric 0/1.
var Bools = Converter[bool]{
	Kind: Bool,
	Convert: func(c *models.Cell) (bool, bool, error) {
		switch c.Kind {
		case models.CellBool:
			return c.Raw == "1" || strings.EqualFold(c.Raw, "true"), true, nil
		case models.CellNumber:
			return c.Number != 0, true, nil
		}
		return false, false, fmt.Errorf("%w: found %s value %q", errs.ErrNotABool, c.Kind, c.Display)
	},
	Default: false,
}

// Decimals parses the stored numeric text exactly, avoiding float rounding.
var Decimals = Converter[decimal.Decimal]{
	Kind: Decimal,
	Convert: func(c *models.Cell) (decimal.Decimal, bool, error) {
		if !c.IsNumeric() {
			return decimal.Zero, false, notNumeric(c)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(c.Raw))
		if err != nil {
			return decimal.NewFromFloat(c.Number), true, nil
		}
		return d, true, nil
	},
	Default: decimal.Zero,
}

func notNumeric(c *models.Cell) error {
	return fmt.Errorf("%w: found %s value %q", errs.ErrNotANumber, c.Kind, c.Display)
}
