package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/moby/sys/atomicwriter"

	"github.com/ardnew/parsebuilder/log"
	"github.com/ardnew/parsebuilder/pkg"
	"github.com/ardnew/parsebuilder/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// configFileMode is the permission mode of the generated configuration file.
const configFileMode fs.FileMode = 0o600

var (
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath, ok := configPath(ctx)
	if !ok {
		panic("internal error: configuration path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	data, err := yaml.MarshalWithOptions(
		i.values(ctx),
		yaml.Indent(defaultConfigIndent),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = atomicwriter.WriteFile(confPath, data, configFileMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// values collects the current value of every configurable flag, in the order
// kong declares them. Flags of all commands are included; a name shared by
// several commands is recorded once.
func (i *Init) values(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)

	prefixIgnore := []string{"help", "force", profile.Tag}

	var (
		items yaml.MapSlice
		seen  = map[string]bool{}
	)

	for _, flag := range allFlags(ktx.Model.Node) {
		if flag.Hidden || seen[flag.Name] ||
			slices.ContainsFunc(prefixIgnore, func(s string) bool {
				return strings.HasPrefix(flag.Name, s)
			}) {
			continue
		}

		seen[flag.Name] = true

		if val := configValue(ktx.FlagValue(flag)); val != nil {
			items = append(items, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return items
}

// allFlags returns the flags of node and all of its descendants, depth first.
func allFlags(node *kong.Node) []*kong.Flag {
	flags := slices.Clone(node.Flags)

	for _, child := range node.Children {
		flags = append(flags, allFlags(child)...)
	}

	return flags
}

// configValue converts a flag value to a value that round-trips through the
// configuration resolver, or nil if the flag is unset.
func configValue(val any) any {
	if s, ok := val.(fmt.Stringer); ok {
		return s.String()
	}

	v := reflect.ValueOf(val)

	switch v.Kind() {
	case reflect.Invalid:
		return nil

	case reflect.String:
		if v.Len() == 0 {
			return nil
		}

		return v.String()

	case reflect.Bool:
		return v.Bool()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()

	case reflect.Float32, reflect.Float64:
		return v.Float()

	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}

		return val

	default:
		return fmt.Sprint(val)
	}
}
