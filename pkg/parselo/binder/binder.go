// Package binder decodes sheet regions into slices of tagged structs, one
// struct per row.
package binder

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"sync"

	"github.com/ukaji3/parselo-go/pkg/parselo/convert"
	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
	"github.com/ukaji3/parselo-go/pkg/parselo/extract"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

// Binder resolves record bindings and materializes rows. A Binder is safe for
// concurrent use.
type Binder struct {
	registry  *convert.Registry
	describer Describer
	logger    *slog.Logger

	cache sync.Map // describeKey -> []FieldBinding
}

// Option configures a Binder.
type Option func(*Binder)

// WithDescriber replaces the struct tag describer.
func WithDescriber(d Describer) Option {
	return func(b *Binder) { b.describer = d }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) { b.logger = l }
}

// New creates a Binder converting cells through registry.
func New(registry *convert.Registry, opts ...Option) *Binder {
	b := &Binder{
		registry:  registry,
		describer: TagDescriber{},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type describeKey struct {
	t    reflect.Type
	mode Mode
}

// boundField is a FieldBinding resolved against a region and the registry.
type boundField struct {
	FieldBinding
	column   int
	target   reflect.Type
	nullable bool
	entry    convert.Entry
}

// plan is everything validated before the first row is read.
type plan struct {
	recordType reflect.Type
	pointer    bool
	region     models.Region
	fields     []boundField
}

// DecodeStatic decodes the rows declared by T's RowRanger, binding fields
// tagged with col=.
func DecodeStatic[T any](b *Binder, s models.Sheet) ([]T, error) {
	p, err := b.planStatic(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return run[T](b, s, p)
}

// DecodeDynamic decodes region, binding fields tagged with pos= in position
// order to the region's columns from left to right.
func DecodeDynamic[T any](b *Binder, s models.Sheet, region models.Region) ([]T, error) {
	p, err := b.planDynamic(reflect.TypeFor[T](), region)
	if err != nil {
		return nil, err
	}
	return run[T](b, s, p)
}

func run[T any](b *Binder, s models.Sheet, p *plan) ([]T, error) {
	if err := extract.CheckBounds(s, p.region); err != nil {
		return nil, err
	}

	out := make([]T, 0, models.Capacity(p.region.RowCount()))
	for offset := 0; offset < p.region.RowCount(); offset++ {
		rv, err := b.materialize(s, p, p.region.RowStart()-1+offset)
		if err != nil {
			return nil, err
		}
		if !p.pointer {
			rv = rv.Elem()
		}
		out = append(out, rv.Interface().(T))
	}

	b.logger.Debug("decoded records",
		"sheet", s.Name(),
		"type", p.recordType.String(),
		"region", p.region.String(),
		"rows", len(out))
	return out, nil
}

func (b *Binder) planStatic(t reflect.Type) (*plan, error) {
	recordType, pointer, err := structType(t)
	if err != nil {
		return nil, err
	}

	rows, ok := b.describer.DescribeRowRange(recordType)
	if !ok {
		return nil, &errs.TypeError{
			TypeName: recordType.String(),
			Err:      fmt.Errorf("%w: implement ParseloRows", errs.ErrMissingRowRange),
		}
	}
	bindings, err := b.describe(recordType, Static)
	if err != nil {
		return nil, err
	}

	first, last := bindings[0], bindings[len(bindings)-1]
	region, err := models.NewRegion(rows.Start, rows.End, first.Column, last.Column)
	if err != nil {
		return nil, &errs.TypeError{TypeName: recordType.String(), Err: err}
	}
	return b.resolve(recordType, pointer, region, bindings, Static)
}

func (b *Binder) planDynamic(t reflect.Type, region models.Region) (*plan, error) {
	recordType, pointer, err := structType(t)
	if err != nil {
		return nil, err
	}
	if region.IsZero() {
		return nil, &errs.RegionError{Property: "region", Value: "unset", Err: errs.ErrInvalidRegionSpec}
	}

	bindings, err := b.describe(recordType, Dynamic)
	if err != nil {
		return nil, err
	}
	return b.resolve(recordType, pointer, region, bindings, Dynamic)
}

func (b *Binder) describe(t reflect.Type, mode Mode) ([]FieldBinding, error) {
	key := describeKey{t: t, mode: mode}
	if cached, ok := b.cache.Load(key); ok {
		return cached.([]FieldBinding), nil
	}
	bindings, err := b.describer.DescribeFields(t, mode)
	if err != nil {
		return nil, err
	}
	b.cache.Store(key, bindings)
	return bindings, nil
}

// resolve checks arity and converter availability for every binding.
func (b *Binder) resolve(t reflect.Type, pointer bool, region models.Region, bindings []FieldBinding, mode Mode) (*plan, error) {
	if len(bindings) != region.ColumnCount() {
		return nil, &errs.ArityError{Fields: len(bindings), Columns: region.ColumnCount()}
	}

	fields := make([]boundField, len(bindings))
	for i, fb := range bindings {
		bf := boundField{FieldBinding: fb, target: fb.Type}
		if fb.Type.Kind() == reflect.Pointer {
			bf.target, bf.nullable = fb.Type.Elem(), true
		}

		switch mode {
		case Static:
			bf.column = fb.ColumnIndex
		default:
			bf.column = region.ColumnStartIndex() + i
		}

		kind, err := b.registry.KindOf(bf.target)
		if err != nil {
			return nil, &errs.TypeError{TypeName: t.String(), Field: fb.Name, Err: err}
		}
		if bf.entry, err = b.registry.Lookup(kind); err != nil {
			return nil, &errs.TypeError{TypeName: t.String(), Field: fb.Name, Err: err}
		}
		// Absent cells of non-pointer fields take the default, so it must fit.
		if def := reflect.ValueOf(bf.entry.DefaultValue()); !bf.nullable && def.IsValid() {
			if _, err := fit(def, bf.target); err != nil {
				return nil, &errs.TypeError{
					TypeName: t.String(),
					Field:    fb.Name,
					Err:      fmt.Errorf("%w: %s default: %w", errs.ErrUnsupportedConversionType, kind, err),
				}
			}
		}
		fields[i] = bf
	}

	return &plan{recordType: t, pointer: pointer, region: region, fields: fields}, nil
}

// materialize builds one record from a zero-based row and returns a pointer to it.
func (b *Binder) materialize(s models.Sheet, p *plan, row int) (reflect.Value, error) {
	record := reflect.New(p.recordType)
	for _, f := range p.fields {
		cell, _ := s.Cell(row, f.column)

		value, present, err := decodeCell(f.entry, cell)
		if err != nil {
			return reflect.Value{}, &errs.CellError{Row: row, Col: f.column, Type: f.Type.String(), Err: err}
		}
		if !present && f.nullable {
			continue
		}

		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			continue
		}
		if rv, err = fit(rv, f.target); err != nil {
			return reflect.Value{}, &errs.CellError{Row: row, Col: f.column, Type: f.Type.String(), Err: err}
		}

		dst := fieldByIndex(record.Elem(), f.Index)
		if f.nullable {
			ptr := reflect.New(f.target)
			ptr.Elem().Set(rv)
			rv = ptr
		}
		dst.Set(rv)
	}
	return record, nil
}

// fieldByIndex is reflect.Value.FieldByIndex allocating nil embedded struct
// pointers on the way.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// fit converts v to target. Integer and float32 targets fail with
// errs.ErrValueOutOfRange instead of wrapping.
func fit(v reflect.Value, target reflect.Type) (reflect.Value, error) {
	if v.Type() == target {
		return v, nil
	}

	out := reflect.New(target).Elem()
	overflow := false
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch {
		case v.CanInt():
			overflow = out.OverflowInt(v.Int())
		case v.CanUint():
			overflow = v.Uint() > math.MaxInt64 || out.OverflowInt(int64(v.Uint()))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch {
		case v.CanInt():
			overflow = v.Int() < 0 || out.OverflowUint(uint64(v.Int()))
		case v.CanUint():
			overflow = out.OverflowUint(v.Uint())
		}
	case reflect.Float32:
		if v.CanFloat() {
			overflow = out.OverflowFloat(v.Float())
		}
	}
	if overflow {
		return reflect.Value{}, fmt.Errorf("%w: %v does not fit in %s", errs.ErrValueOutOfRange, v.Interface(), target)
	}
	return v.Convert(target), nil
}

// decodeCell converts cell, reporting present=false when the default was used.
func decodeCell(e convert.Entry, cell *models.Cell) (any, bool, error) {
	if cell == nil {
		return e.DefaultValue(), false, nil
	}
	v, ok, err := e.Decode(cell)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return e.DefaultValue(), false, nil
	}
	return v, true, nil
}

// structType unwraps T to the struct built for every row.
func structType(t reflect.Type) (reflect.Type, bool, error) {
	pointer := false
	if t.Kind() == reflect.Pointer {
		t, pointer = t.Elem(), true
	}
	if t.Kind() != reflect.Struct {
		return nil, false, &errs.TypeError{
			TypeName: t.String(),
			Err:      fmt.Errorf("%w: want a struct or pointer to struct", errs.ErrNotConstructible),
		}
	}
	return t, pointer, nil
}
