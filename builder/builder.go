// Package builder writes a parser template verbatim to a file.
//
// The template is injected as a [template.Source]; by default it is the
// parser compiled into the binary. The destination is an explicit argument,
// defaulting to [DefaultFilename] in the working directory.
//
// Content is written to a temporary file in the destination directory and
// renamed over the destination once complete, so a failed build leaves either
// no file or the previous complete content. Concurrent builds of the same
// destination are last-writer-wins, unless overwriting is disabled, in which
// case exactly one of them creates the file.
package builder

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/ardnew/parsebuilder/log"
	"github.com/ardnew/parsebuilder/pkg"
	"github.com/ardnew/parsebuilder/template"
)

// DefaultFilename is the destination used when none is given.
const DefaultFilename = "Parser.py"

// DefaultMode is the permission mode of written files.
const DefaultMode fs.FileMode = 0o644

var (
	// ErrBuild is returned when the parser cannot be written. It wraps the
	// underlying cause, which is typically an I/O error.
	ErrBuild = pkg.NewError("build parser")

	// ErrFileExists is the cause of [ErrBuild] when the destination exists
	// and overwriting is disabled.
	ErrFileExists = pkg.NewError("file exists")
)

type config struct {
	source    template.Source
	mode      fs.FileMode
	noClobber bool
}

// Option configures a [Builder].
type Option = pkg.Option[config]

// WithSource sets the template source. A nil source selects
// [template.Embedded].
func WithSource(src template.Source) Option {
	return func(c config) config {
		if src == nil {
			src = template.Embedded()
		}

		c.source = src

		return c
	}
}

// WithMode sets the permission mode of written files.
func WithMode(mode fs.FileMode) Option {
	return func(c config) config {
		c.mode = mode.Perm()

		return c
	}
}

// WithNoClobber controls whether an existing destination is left untouched.
// When enabled, building onto an existing path fails with [ErrFileExists].
// The complete file is hard-linked to the destination, which fails if the
// path exists at that moment, so a file created after the initial check is
// never replaced. The destination must be on a file system with hard links.
func WithNoClobber(enable bool) Option {
	return func(c config) config {
		c.noClobber = enable

		return c
	}
}

// Builder materializes a template as a file on disk.
// A Builder holds no mutable state and is safe for concurrent use.
type Builder struct {
	config
}

// New returns a Builder writing the embedded template with [DefaultMode],
// overwriting existing files, unless overridden by opts.
func New(opts ...Option) *Builder {
	cfg := pkg.Apply(config{
		source: template.Embedded(),
		mode:   DefaultMode,
	}, opts...)

	return &Builder{config: cfg}
}

// Build writes the embedded template to dest using the default options.
func Build(ctx context.Context, dest string) error {
	return New().Build(ctx, dest)
}

// Template resolves and validates the template without writing it.
func (b *Builder) Template(ctx context.Context) (template.Template, error) {
	tmpl, err := b.source.Template(ctx)
	if err != nil {
		return template.Template{}, err
	}

	if err := tmpl.Validate(); err != nil {
		return template.Template{}, err
	}

	return tmpl, nil
}

// Build writes the exact template bytes to dest, replacing any existing file.
// An empty dest selects [DefaultFilename].
//
// Errors are returned as [ErrBuild] wrapping the cause unchanged, so callers
// can test the cause with [errors.Is], for example against
// [fs.ErrPermission].
func (b *Builder) Build(ctx context.Context, dest string) error {
	if dest == "" {
		dest = DefaultFilename
	}

	path := slog.String("path", dest)

	if err := ctx.Err(); err != nil {
		return ErrBuild.With(path).Wrap(err)
	}

	tmpl, err := b.Template(ctx)
	if err != nil {
		return ErrBuild.With(path).Wrap(err)
	}

	// Fail early, before writing anything. create repeats the check
	// atomically.
	if b.noClobber {
		_, err := os.Lstat(dest)

		switch {
		case err == nil:
			return ErrBuild.With(path).Wrap(ErrFileExists)
		case !errors.Is(err, fs.ErrNotExist):
			return ErrBuild.With(path).Wrap(err)
		}
	}

	if b.noClobber {
		err = create(dest, b.mode, tmpl)
	} else {
		err = write(dest, b.mode, tmpl)
	}

	if err != nil {
		return ErrBuild.With(path).Wrap(err)
	}

	log.DebugContext(ctx, "built parser",
		path,
		slog.String("mode", b.mode.String()),
		slog.Any("template", tmpl),
	)

	return nil
}

// write replaces dest with the content of tmpl. The temporary file is closed
// on every path and removed unless it was renamed into place.
func write(dest string, mode fs.FileMode, tmpl template.Template) error {
	w, err := atomicwriter.New(dest, mode)
	if err != nil {
		return err
	}

	_, werr := tmpl.WriteTo(w)

	return errors.Join(werr, w.Close())
}

// create writes tmpl to a temporary file in the directory of dest and links
// it to dest, failing with [ErrFileExists] if dest exists. The temporary file
// is always removed.
func create(dest string, mode fs.FileMode, tmpl template.Template) (err error) {
	f, err := os.CreateTemp(filepath.Dir(dest), ".tmp-"+filepath.Base(dest))
	if err != nil {
		return err
	}

	defer func() {
		if rerr := os.Remove(f.Name()); err == nil && !errors.Is(rerr, fs.ErrNotExist) {
			err = rerr
		}
	}()

	if _, err := tmpl.WriteTo(f); err != nil {
		return errors.Join(err, f.Close())
	}

	if err := f.Sync(); err != nil {
		return errors.Join(err, f.Close())
	}

	if err := f.Close(); err != nil {
		return err
	}

	// Chmod rather than relying on CreateTemp, which applies the umask.
	if err := os.Chmod(f.Name(), mode); err != nil {
		return err
	}

	if err := os.Link(f.Name(), dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrFileExists
		}

		return err
	}

	return nil
}
