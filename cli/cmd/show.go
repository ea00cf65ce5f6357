package cmd

import (
	"context"

	"github.com/ardnew/parsebuilder/builder"
)

// Show prints the parser template that build would write.
type Show struct {
	Template string `help:"Template file used instead of the built-in parser." placeholder:"FILE" short:"t" type:"existingfile"`
}

// Run executes the show command.
func (s *Show) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tmpl, err := builder.New(builder.WithSource(source(s.Template))).Template(ctx)
	if err != nil {
		return err
	}

	_, err = tmpl.WriteTo(outputFrom(ctx))

	return err
}
