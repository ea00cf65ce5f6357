package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/parsebuilder/pkg"
)

// Version prints the version.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	_, err := fmt.Fprintln(outputFrom(ctx), pkg.Version)

	return err
}
