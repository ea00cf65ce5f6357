package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/ardnew/parsebuilder/pkg"
)

// ErrConfig is returned when a configuration file cannot be parsed.
var ErrConfig = pkg.NewError("read configuration file")

// ErrConfigValue is returned when a configuration key holds a value that
// cannot be passed to a flag.
var ErrConfigValue = pkg.NewError("unsupported configuration value")

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The YAML document is converted as follows:
//   - Top-level keys name flags; hyphens and underscores are interchangeable
//     (e.g., "log_level" sets --log-level)
//   - Nested mappings are joined to their parent key with a hyphen, so
//     {log: {level: debug}} also sets --log-level
//   - Scalars are passed to kong as their literal text, except booleans, so
//     an unquoted mode like 0640 keeps its leading zero
//   - Sequences are joined with commas, the separator kong splits slice
//     flags on
//
// Example config file:
//
//	log-level: debug
//	log:
//	  format: text
//	no-clobber: true
//	mode: "0600"
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return config{}, nil
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, ErrConfig.With(slog.String("format", "yaml")).Wrap(err)
	}

	values := config{}

	for _, doc := range file.Docs {
		if err := values.flatten("", doc.Body); err != nil {
			return nil, err
		}
	}

	return values, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// flatten stores the values of the mapping node with keys qualified by
// prefix.
func (r config) flatten(prefix string, node ast.Node) error {
	switch n := node.(type) {
	case nil, *ast.CommentGroupNode:
		return nil

	case ast.MapNode:
		iter := n.MapRange()
		for iter.Next() {
			key := prefix + strings.ReplaceAll(iter.Key().GetToken().Value, "_", "-")

			if _, ok := iter.Value().(ast.MapNode); ok {
				if err := r.flatten(key+"-", iter.Value()); err != nil {
					return err
				}

				continue
			}

			value, ok := scalar(iter.Value())
			if !ok {
				return ErrConfig.With(slog.String("key", key)).
					Wrap(ErrConfigValue.Wrapf("%s: %s", key, iter.Value().Type()))
			}

			r[key] = value
		}

		return nil

	default:
		return ErrConfig.Wrap(
			ErrConfigValue.Wrapf("expected mapping, found %s", node.Type()))
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Keys were normalized to hyphens by flatten.
	if value, ok := r[strings.ReplaceAll(flag.Name, "_", "-")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// scalar converts a YAML node to the form kong's mappers accept. Numbers
// keep their source text so that kong, not YAML, decides their base.
// It reports false for nodes no flag can hold, such as aliases and
// sequences of mappings.
func scalar(node ast.Node) (any, bool) {
	switch n := node.(type) {
	case nil, *ast.NullNode:
		return nil, true

	case *ast.BoolNode:
		return n.Value, true

	case *ast.StringNode:
		return n.Value, true

	case *ast.LiteralNode:
		return n.Value.Value, true

	case *ast.TagNode:
		return scalar(n.Value)

	case *ast.AnchorNode:
		return scalar(n.Value)

	case *ast.SequenceNode:
		parts := make([]string, len(n.Values))

		for i, e := range n.Values {
			v, ok := scalar(e)
			if !ok {
				return nil, false
			}

			parts[i] = fmt.Sprint(v)
		}

		return strings.Join(parts, ","), true

	case ast.ScalarNode:
		return n.GetToken().Value, true

	default:
		return nil, false
	}
}
