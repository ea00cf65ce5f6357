package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/parsebuilder/builder"
	"github.com/ardnew/parsebuilder/pkg"
	"github.com/ardnew/parsebuilder/template"
)

// Build writes the parser template to a file.
type Build struct {
	Template  string   `help:"Template file used instead of the built-in parser." placeholder:"FILE" short:"t" type:"existingfile"`
	NoClobber bool     `help:"Fail if the destination already exists."           short:"n"`
	Mode      FileMode `default:"${defaultMode}"                                  help:"Permission mode of the written file (octal)."`

	Dest string `arg:"" default:"${defaultFilename}" help:"Destination file." optional:"" type:"path"`
}

// Run executes the build command.
func (b *Build) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return builder.New(
		builder.WithSource(source(b.Template)),
		builder.WithMode(fs.FileMode(b.Mode)),
		builder.WithNoClobber(b.NoClobber),
	).Build(ctx, b.Dest)
}

// source returns the template source for an optional template file.
// A nil source selects the built-in template.
func source(path string) template.Source {
	if path == "" {
		return nil
	}

	return template.FromFile(path)
}

// ErrFileMode is returned when a file mode is not an octal permission.
var ErrFileMode = pkg.NewError("invalid file mode")

// FileMode is a permission mode parsed from and rendered as octal.
type FileMode fs.FileMode

// UnmarshalText implements encoding.TextUnmarshaler. The digits may carry a
// leading "0o" as in YAML 1.2.
func (m *FileMode) UnmarshalText(text []byte) error {
	digits := string(text)
	if rest, ok := strings.CutPrefix(strings.ToLower(digits), "0o"); ok {
		digits = rest
	}

	v, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return ErrFileMode.With(slog.String("mode", string(text))).Wrap(err)
	}

	if fs.FileMode(v)&^fs.ModePerm != 0 {
		return ErrFileMode.With(slog.String("mode", string(text))).
			Wrapf("%q is not a permission", text)
	}

	*m = FileMode(v)

	return nil
}

// String returns the mode in octal with a leading zero, e.g. "0644".
func (m FileMode) String() string {
	return fmt.Sprintf("%#o", uint32(m))
}
