// Package parselo decodes regions of xlsx workbooks into lists, matrices and
// tagged structs.
package parselo

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/parselo-go/pkg/parselo/binder"
	"github.com/ukaji3/parselo-go/pkg/parselo/convert"
)

// Options configures a Workbook.
type Options struct {
	// Registry converts cells; nil uses convert.NewRegistry.
	Registry *convert.Registry
	// Describer resolves struct bindings; nil uses binder.TagDescriber.
	Describer binder.Describer
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
	// Password opens encrypted workbooks.
	Password string

	// err is the first failure of an Option, reported by Open.
	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Registry: convert.NewRegistry(),
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// WithRegistry uses r for every conversion.
func WithRegistry(r *convert.Registry) Option {
	return func(o *Options) { o.Registry = r }
}

// WithDescriber replaces the struct tag describer.
func WithDescriber(d binder.Describer) Option {
	return func(o *Options) { o.Describer = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithPassword sets the password for encrypted workbooks.
func WithPassword(password string) Option {
	return func(o *Options) { o.Password = password }
}

// WithDefault overrides the default value used for absent cells of kind. It
// applies to a private copy of the registry. Open fails when T is not the type
// produced by the converter for kind.
func WithDefault[T any](kind convert.Kind, value T) Option {
	return func(o *Options) {
		registry := convert.NewRegistry()
		if o.Registry != nil {
			registry = o.Registry.Clone()
		}
		if err := convert.WithDefault(registry, kind, value); err != nil {
			o.fail(fmt.Errorf("default for %s: %w", kind, err))
			return
		}
		o.Registry = registry
	}
}

func (o *Options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}
	if o.Registry == nil {
		o.Registry = convert.NewRegistry()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o, nil
}
