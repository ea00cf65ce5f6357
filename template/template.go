// Package template provides the parser source text emitted by the builder and
// the sources it can be obtained from.
//
// A [Template] is immutable: its content is copied on construction and every
// accessor returns a copy. Templates are obtained through a [Source], which
// lets callers inject the text instead of relying on a hard-wired value:
//
//	src := template.Embedded()          // compiled into the binary
//	src = template.FromFile("base.py")  // versioned separately on disk
//
//	t, err := src.Template(ctx)
package template

import (
	"bytes"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/ardnew/parsebuilder/pkg"
)

// Encoding is the character encoding of every template.
const Encoding = "utf-8"

// Template is an immutable block of parser source text.
type Template struct {
	name    string
	content []byte
}

// New returns a Template with the given name and a copy of content.
func New(name string, content []byte) Template {
	return Template{name: name, content: bytes.Clone(content)}
}

// Name identifies where the template came from.
func (t Template) Name() string { return t.name }

// Bytes returns a copy of the template content.
func (t Template) Bytes() []byte { return bytes.Clone(t.content) }

// String returns the template content.
func (t Template) String() string { return string(t.content) }

// Len returns the size of the template content in bytes.
func (t Template) Len() int { return len(t.content) }

// WriteTo implements [io.WriterTo] by writing the exact template bytes to w.
func (t Template) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.content)

	return int64(n), err
}

// Validate reports whether the template content is valid UTF-8.
func (t Template) Validate() error {
	if utf8.Valid(t.content) {
		return nil
	}

	return ErrEncoding.With(
		slog.String("template", t.name),
		slog.String("encoding", Encoding),
	)
}

// LogValue implements [slog.LogValuer].
func (t Template) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", t.name),
		slog.Int("bytes", len(t.content)),
	)
}

var (
	// ErrEncoding is returned when template content is not valid UTF-8.
	ErrEncoding = pkg.NewError("template is not valid " + Encoding)

	// ErrSource is returned when a template cannot be obtained from its
	// source.
	ErrSource = pkg.NewError("read template")
)
