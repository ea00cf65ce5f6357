package template

import (
	"context"
	_ "embed"
	"io"
	"log/slog"
	"os"
	"sync"
)

// EmbeddedName is the name of the template compiled into the binary.
const EmbeddedName = "parser.py"

//go:embed parser.py
var embedded []byte

// Source provides a [Template].
type Source interface {
	Template(ctx context.Context) (Template, error)
}

// SourceFunc adapts an ordinary function to the [Source] interface.
type SourceFunc func(ctx context.Context) (Template, error)

// Template calls f(ctx).
func (f SourceFunc) Template(ctx context.Context) (Template, error) {
	return f(ctx)
}

// Embedded returns the source of the parser template compiled into the binary.
func Embedded() Source {
	return Static(New(EmbeddedName, embedded))
}

// Static returns a source that always yields t.
func Static(t Template) Source {
	return SourceFunc(func(ctx context.Context) (Template, error) {
		if err := ctx.Err(); err != nil {
			return Template{}, ErrSource.With(slog.String("template", t.name)).Wrap(err)
		}

		return t, nil
	})
}

// FromFile returns a source that reads the template from the file at path
// each time it is requested.
func FromFile(path string) Source {
	return SourceFunc(func(ctx context.Context) (Template, error) {
		if err := ctx.Err(); err != nil {
			return Template{}, ErrSource.With(slog.String("path", path)).Wrap(err)
		}

		buf, err := os.ReadFile(path)
		if err != nil {
			return Template{}, ErrSource.With(slog.String("path", path)).Wrap(err)
		}

		return Template{name: path, content: buf}, nil
	})
}

// FromReader returns a source that reads the template from r on first request.
// Later requests yield the same template, or the same error.
func FromReader(name string, r io.Reader) Source {
	read := sync.OnceValues(func() (Template, error) {
		buf, err := io.ReadAll(r)
		if err != nil {
			return Template{}, ErrSource.With(slog.String("template", name)).Wrap(err)
		}

		return Template{name: name, content: buf}, nil
	})

	return SourceFunc(func(ctx context.Context) (Template, error) {
		if err := ctx.Err(); err != nil {
			return Template{}, ErrSource.With(slog.String("template", name)).Wrap(err)
		}

		return read()
	})
}
