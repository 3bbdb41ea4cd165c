// Package convert turns raw cells into typed values through a registry of
// converters keyed by Kind.
package convert

import (
	"reflect"

	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

// Kind tags a supported target scalar type.
type Kind int

const (
	// Text converts to string using the displayed value.
	Text Kind = iota + 1
	// Int converts to int by truncating the stored number.
	Int
	// Float converts to float64 from the stored number.
	Float
	// Date converts a date-formatted cell to a time.Time at UTC midnight.
	Date
	// Bool converts a boolean cell to bool.
	Bool
	// Decimal converts a numeric cell to an exact decimal.Decimal.
	Decimal
)

var kindNames = map[Kind]string{
	Text:    "text",
	Int:     "int",
	Float:   "float",
	Date:    "date",
	Bool:    "bool",
	Decimal: "decimal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Func converts a present cell. It returns ok=false when the cell holds a
// null-equivalent value, in which case the converter default is used.
type Func[T any] func(c *models.Cell) (value T, ok bool, err error)

// Converter pairs a conversion function with the default used for absent and
// null-equivalent cells.
type Converter[T any] struct {
	Kind    Kind
	Convert Func[T]
	Default T
}

// ConvertWithDefault converts cell, returning the default when cell is nil or
// holds a null-equivalent value.
func (c Converter[T]) ConvertWithDefault(cell *models.Cell) (T, error) {
	if cell == nil {
		return c.Default, nil
	}
	v, ok, err := c.Convert(cell)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		return c.Default, nil
	}
	return v, nil
}

// Entry is the type-erased view of a registered Converter.
type Entry interface {
	// TargetKind returns the kind the entry is registered under.
	TargetKind() Kind
	// GoType returns the Go type produced by the entry.
	GoType() reflect.Type
	// Decode converts a present cell; ok=false signals a null-equivalent value.
	Decode(cell *models.Cell) (value any, ok bool, err error)
	// DefaultValue returns the default for absent and null-equivalent cells.
	DefaultValue() any
}

func (c Converter[T]) TargetKind() Kind {
	return c.Kind
}

func (c Converter[T]) GoType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c Converter[T]) Decode(cell *models.Cell) (any, bool, error) {
	v, ok, err := c.Convert(cell)
	return v, ok, err
}

func (c Converter[T]) DefaultValue() any {
	return c.Default
}
