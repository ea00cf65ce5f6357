package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/parsebuilder/builder"
	"github.com/ardnew/parsebuilder/cli/cmd"
	"github.com/ardnew/parsebuilder/pkg"
)

// CLI is the top-level command-line interface for parsebuilder.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Build   cmd.Build   `cmd:"" default:"withargs" help:"Write the parser template to a file (default)"`
	Show    cmd.Show    `cmd:""                    help:"Print the parser template"`
	Info    cmd.Info    `cmd:""                    help:"Print the packaging descriptor"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
	Version cmd.Version `cmd:""                    help:"Print the version"`
}

// Run executes the parsebuilder CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early, e.g. after printing help.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, exit, os.Stdout, defaultDirs(), args...)
}

func run(
	ctx context.Context,
	exit func(code int),
	stdout io.Writer,
	dir dirs,
	args ...string,
) error {
	var cli CLI

	err := dir.mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := dir.configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  dir.cache,
		"defaultFilename":    builder.DefaultFilename,
		"defaultMode":        cmd.FileMode(builder.DefaultMode).String(),
		"descriptorFormats":  strings.Join(pkg.Formats(), ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars(dir))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, os.Stderr),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithOutput(ctx, stdout)

	// Finalize logger configuration with all parsed values including
	// TimeLayout which doesn't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
