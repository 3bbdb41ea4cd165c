package convert

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

// Registry maps kinds to converters. Register during setup only; once built a
// Registry may be read from many goroutines.
type Registry struct {
	byKind map[Kind]Entry
	byType map[reflect.Type]Kind
}

// NewRegistry returns a registry holding the builtin converters.
func NewRegistry() *Registry {
	r := Empty()
	Register(r, Strings)
	Register(r, Ints)
	Register(r, Floats)
	Register(r, Dates)
	Register(r, Bools)
	Register(r, Decimals)
	return r
}

// Empty returns a registry without converters.
func Empty() *Registry {
	return &Registry{
		byKind: make(map[Kind]Entry),
		byType: make(map[reflect.Type]Kind),
	}
}

// Register adds or replaces the converter for c.Kind.
func Register[T any](r *Registry, c Converter[T]) {
	if old, ok := r.byKind[c.Kind]; ok {
		delete(r.byType, old.GoType())
	}
	r.byKind[c.Kind] = c
	r.byType[c.GoType()] = c.Kind
}

// WithDefault replaces the default of the converter registered for kind.
func WithDefault[T any](r *Registry, kind Kind, value T) error {
	c, err := LookupAs[T](r, kind)
	if err != nil {
		return err
	}
	c.Default = value
	Register(r, c)
	return nil
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	return &Registry{
		byKind: maps.Clone(r.byKind),
		byType: maps.Clone(r.byType),
	}
}

// Lookup returns the converter registered for kind.
func (r *Registry) Lookup(kind Kind) (Entry, error) {
	e, ok := r.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedConversionType, kind)
	}
	return e, nil
}

// LookupAs returns the converter for kind typed as Converter[T].
func LookupAs[T any](r *Registry, kind Kind) (Converter[T], error) {
	e, err := r.Lookup(kind)
	if err != nil {
		return Converter[T]{}, err
	}
	c, ok := e.(Converter[T])
	if !ok {
		return Converter[T]{}, fmt.Errorf("%w: %s converter produces %s, not %s",
			errs.ErrUnsupportedConversionType, kind, e.GoType(), reflect.TypeFor[T]())
	}
	return c, nil
}

// KindOf returns the kind whose converter produces t. Types without an exact
// registration fall back to the kind of their underlying basic type, so a
// field of type int64 or a named string type still resolves.
func (r *Registry) KindOf(t reflect.Type) (Kind, error) {
	if k, ok := r.byType[t]; ok {
		return k, nil
	}

	var k Kind
	switch t.Kind() {
	case reflect.String:
		k = Text
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		k = Int
	case reflect.Float32, reflect.Float64:
		k = Float
	case reflect.Bool:
		k = Bool
	}
	if e, ok := r.byKind[k]; ok && e.GoType().ConvertibleTo(t) {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedConversionType, t)
}

// ConvertWithDefault converts cell with the converter for kind. A nil cell or
// a null-equivalent value yields the registered default.
func (r *Registry) ConvertWithDefault(cell *models.Cell, kind Kind) (any, error) {
	e, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return e.DefaultValue(), nil
	}
	v, ok, err := e.Decode(cell)
	if err != nil {
		return nil, err
	}
	if !ok {
		return e.DefaultValue(), nil
	}
	return v, nil
}

// Kinds returns the registered kinds.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.byKind))
	for k := range r.byKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
