package pkg

import (
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
)

// Descriptor is the packaging descriptor of the distribution: the metadata a
// packaging tool consumes to publish parsebuilder as an installable unit.
// It has no runtime behavior of its own.
type Descriptor struct {
	Name        string       `json:"name"                  yaml:"name"`
	Version     string       `json:"version"               yaml:"version"`
	Description string       `json:"description"           yaml:"description"`
	Author      []AuthorInfo `json:"author"                yaml:"author"`
	License     string       `json:"license"               yaml:"license"`
	Keywords    []string     `json:"keywords,omitempty"    yaml:"keywords,omitempty"`
	Classifiers []string     `json:"classifiers,omitempty" yaml:"classifiers,omitempty"`
	Requires    []string     `json:"requires"              yaml:"requires"`
	Runtime     string       `json:"runtime"               yaml:"runtime"`
}

// Metadata returns the packaging descriptor of this build.
// The returned value is a copy; modifying it does not affect the package
// variables.
func Metadata() Descriptor {
	return Descriptor{
		Name:        Name,
		Version:     Version,
		Description: Description,
		Author:      slices.Clone(Author),
		License:     License,
		Keywords:    slices.Clone(Keywords),
		Classifiers: slices.Clone(Classifiers),
		Requires:    slices.Clone(Requires),
		Runtime:     Runtime,
	}
}

// Validate reports whether d is a publishable descriptor: it must have a
// name, a semantic version, and a well-formed runtime constraint.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidDescriptor.With(slog.String("field", "name")).
			Wrapf("name is empty")
	}

	if _, err := semver.StrictNewVersion(d.Version); err != nil {
		return ErrInvalidDescriptor.
			With(slog.String("field", "version"), slog.String("value", d.Version)).
			Wrap(err)
	}

	if _, err := d.constraint(); err != nil {
		return err
	}

	return nil
}

// Supports reports whether the runtime version satisfies the descriptor's
// runtime constraint. An empty constraint accepts every version.
func (d Descriptor) Supports(runtime string) (bool, error) {
	ver, err := semver.NewVersion(strings.TrimSpace(runtime))
	if err != nil {
		return false, ErrUnsupportedRuntime.
			With(slog.String("runtime", runtime)).
			Wrap(err)
	}

	c, err := d.constraint()
	if err != nil {
		return false, err
	}

	if c == nil {
		return true, nil
	}

	return c.Check(ver), nil
}

func (d Descriptor) constraint() (*semver.Constraints, error) {
	if strings.TrimSpace(d.Runtime) == "" {
		return nil, nil //nolint:nilnil
	}

	c, err := semver.NewConstraint(d.Runtime)
	if err != nil {
		return nil, ErrInvalidDescriptor.
			With(slog.String("field", "runtime"), slog.String("value", d.Runtime)).
			Wrap(err)
	}

	return c, nil
}

// Format identifies an encoding of the descriptor.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats returns the supported descriptor formats.
func Formats() []string {
	return []string{string(FormatYAML), string(FormatJSON)}
}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", ErrInvalidFormat.
			With(
				slog.String("format", s),
				slog.String("valid", strings.Join(Formats(), ",")),
			)
	}
}

// Encode writes d to w in the given format. Indent is the number of spaces
// per nesting level; zero selects the compact form of the format.
func (d Descriptor) Encode(w io.Writer, format Format, indent int) error {
	switch format {
	case FormatYAML:
		var opts []yaml.EncodeOption
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		buf, err := yaml.MarshalWithOptions(d, opts...)
		if err != nil {
			return ErrInvalidFormat.With(slog.String("format", string(format))).Wrap(err)
		}

		_, err = w.Write(buf)

		return err

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", indent))
		}

		return enc.Encode(d)

	default:
		return ErrInvalidFormat.With(slog.String("format", string(format)))
	}
}
