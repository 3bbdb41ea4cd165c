package binder

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/ukaji3/parselo-go/pkg/parselo/coords"
	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
)

// DefaultTag is the struct tag read by TagDescriber.
const DefaultTag = "parselo"

// Mode selects how fields are bound to columns.
type Mode int

const (
	// Static binds fields to named columns over rows declared on the type.
	Static Mode = iota + 1
	// Dynamic binds fields by position over a region supplied at decode time.
	Dynamic
)

func (m Mode) String() string {
	switch m {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	}
	return "unknown"
}

// FieldBinding ties one struct field to a column.
type FieldBinding struct {
	// Name is the Go field name.
	Name string
	// Index is the reflect field index path, see reflect.Value.FieldByIndex.
	Index []int
	// Type is the declared field type.
	Type reflect.Type
	// Column is the upper-case column name for static bindings.
	Column string
	// ColumnIndex is the zero-based index of Column.
	ColumnIndex int
	// Position is the declared position for dynamic bindings.
	Position int
}

// RowRange is a one-based inclusive row span declared by a record type.
type RowRange struct {
	Start int
	End   int
}

// RowRanger is implemented by record types that declare fixed rows for static
// decoding. The method is called on a zero value.
type RowRanger interface {
	ParseloRows() (start, end int)
}

// Describer resolves the declared bindings of a record type.
type Describer interface {
	// DescribeFields returns the bindings of t for mode, sorted by column for
	// Static and by position for Dynamic.
	DescribeFields(t reflect.Type, mode Mode) ([]FieldBinding, error)
	// DescribeRowRange returns the rows declared by t, if any.
	DescribeRowRange(t reflect.Type) (RowRange, bool)
}

// TagDescriber reads bindings from struct tags of the form
//
//	Producer string `parselo:"col=B"`
//	Year     int    `parselo:"pos=2"`
//	Model    string `parselo:"col=C,pos=1"`
//
// and the row range from RowRanger.
type TagDescriber struct {
	// Tag is the struct tag key; DefaultTag when empty.
	Tag string
}

type tagOptions struct {
	column      string
	hasColumn   bool
	position    int
	hasPosition bool
}

func (d TagDescriber) tag() string {
	if d.Tag == "" {
		return DefaultTag
	}
	return d.Tag
}

// DescribeFields implements Describer.
func (d TagDescriber) DescribeFields(t reflect.Type, mode Mode) ([]FieldBinding, error) {
	var bindings []FieldBinding
	for _, f := range reflect.VisibleFields(t) {
		value, ok := f.Tag.Lookup(d.tag())
		if !ok || value == "-" {
			continue
		}
		opts, err := parseTag(value)
		if err != nil {
			return nil, &errs.TypeError{TypeName: t.String(), Field: f.Name, Err: err}
		}
		if (mode == Static && !opts.hasColumn) || (mode == Dynamic && !opts.hasPosition) {
			continue
		}
		if !f.IsExported() {
			return nil, &errs.TypeError{
				TypeName: t.String(),
				Field:    f.Name,
				Err:      fmt.Errorf("%w: bound field is unexported", errs.ErrNotConstructible),
			}
		}
		if embed, ok := unexportedEmbed(t, f); ok {
			return nil, &errs.TypeError{
				TypeName: t.String(),
				Field:    f.Name,
				Err:      fmt.Errorf("%w: promoted through unexported embedded pointer %s", errs.ErrNotConstructible, embed),
			}
		}

		b := FieldBinding{Name: f.Name, Index: f.Index, Type: f.Type, Position: opts.position}
		if opts.hasColumn {
			b.Column = strings.ToUpper(opts.column)
			b.ColumnIndex, _ = coords.ToIndex(opts.column)
		}
		bindings = append(bindings, b)
	}

	if len(bindings) == 0 {
		return nil, &errs.TypeError{
			TypeName: t.String(),
			Err:      fmt.Errorf("%w: no field tagged for %s binding", errs.ErrNoAnnotatedFields, mode),
		}
	}

	key := func(b FieldBinding) int { return b.Position }
	if mode == Static {
		key = func(b FieldBinding) int { return b.ColumnIndex }
	}
	slices.SortStableFunc(bindings, func(a, b FieldBinding) int {
		return cmp.Compare(key(a), key(b))
	})
	for i := 1; i < len(bindings); i++ {
		if key(bindings[i-1]) == key(bindings[i]) {
			return nil, &errs.TypeError{
				TypeName: t.String(),
				Field:    bindings[i].Name,
				Err:      fmt.Errorf("%w: shares its %s key with %s", errs.ErrDuplicateColumnBinding, mode, bindings[i-1].Name),
			}
		}
	}
	return bindings, nil
}

// DescribeRowRange implements Describer.
func (d TagDescriber) DescribeRowRange(t reflect.Type) (RowRange, bool) {
	rr, ok := reflect.New(t).Interface().(RowRanger)
	if !ok {
		return RowRange{}, false
	}
	start, end := rr.ParseloRows()
	return RowRange{Start: start, End: end}, true
}

// unexportedEmbed reports the first unexported embedded pointer on the path to
// f. Such a pointer cannot be allocated through reflection.
func unexportedEmbed(t reflect.Type, f reflect.StructField) (string, bool) {
	for i := 1; i < len(f.Index); i++ {
		sf := t.FieldByIndex(f.Index[:i])
		if sf.Type.Kind() == reflect.Pointer && !sf.IsExported() {
			return sf.Name, true
		}
	}
	return "", false
}

func parseTag(value string) (tagOptions, error) {
	var opts tagOptions
	for _, part := range strings.Split(value, ",") {
		key, val, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch key {
		case "col":
			if err := coords.ValidateColumnName(val, "col"); err != nil {
				return opts, err
			}
			opts.column, opts.hasColumn = val, true
		case "pos":
			pos, err := strconv.Atoi(val)
			if err != nil || pos < 0 {
				return opts, fmt.Errorf("position %q must be a non-negative integer", val)
			}
			opts.position, opts.hasPosition = pos, true
		case "":
		default:
			return opts, fmt.Errorf("unknown tag option %q", key)
		}
	}
	return opts, nil
}
