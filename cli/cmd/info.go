package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/parsebuilder/log"
	"github.com/ardnew/parsebuilder/pkg"
)

// Info prints the packaging descriptor.
type Info struct {
	Format  string `default:"yaml" enum:"${descriptorFormats}" help:"Output format."                             short:"f"`
	Indent  int    `default:"2"                                help:"Indent width; 0 selects the compact form." short:"i"`
	Runtime string `help:"Fail unless this runtime version is supported." placeholder:"VERSION"`
}

// Run executes the info command.
func (i *Info) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	desc := pkg.Metadata()

	if err := desc.Validate(); err != nil {
		return err
	}

	if i.Runtime != "" {
		ok, err := desc.Supports(i.Runtime)
		if err != nil {
			return err
		}

		if !ok {
			return pkg.ErrUnsupportedRuntime.With(
				slog.String("runtime", i.Runtime),
				slog.String("requires", desc.Runtime),
			)
		}

		log.DebugContext(ctx, "runtime supported",
			slog.String("runtime", i.Runtime),
			slog.String("requires", desc.Runtime),
		)
	}

	format, err := pkg.ParseFormat(i.Format)
	if err != nil {
		return err
	}

	return desc.Encode(outputFrom(ctx), format, i.Indent)
}
