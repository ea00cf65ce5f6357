package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write their output
// to w instead of [os.Stdout].
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// outputFrom retrieves the writer stored in ctx by WithOutput.
// Returns os.Stdout if no writer was stored.
func outputFrom(ctx context.Context) io.Writer {
	w, ok := ctx.Value(outputKey{}).(io.Writer)
	if !ok || w == nil {
		return os.Stdout
	}

	return w
}

// configPath returns the configuration file path from the kong variables.
func configPath(ctx context.Context) (string, bool) {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return "", false
	}

	path, ok := ktx.Model.Vars()[ConfigIdentifier]

	return path, ok && path != ""
}
