//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionFile string

// Version is the semantic version of the parsebuilder module embedded at build
// time. It is printed by the CLI when users invoke the version subcommand.
var Version = strings.TrimSpace(versionFile)

const (
	// Name is the canonical command and distribution identifier used across
	// the project. For example, it appears in help text and default config
	// paths.
	Name = "parsebuilder"
	// Description is a short, human-readable summary of the project used in
	// help output and in the packaging descriptor.
	Description = "Library for automatic construction of lexers"
	// License is the SPDX identifier of the distribution license.
	License = "MIT"
	// Runtime is the minimum version constraint of the runtime that executes
	// the generated parser.
	Runtime = ">=3.7"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string `json:"name"            yaml:"name"`
	// Email is the author's contact email address.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"Alexander554", "gaa.28112008@gmail.com"},
}

// Keywords are the search terms published with the distribution.
var Keywords = []string{"parsebuilder", "python", "parser"}

// Classifiers are the trove classifiers published with the distribution.
var Classifiers = []string{
	"Programming Language :: Python :: 3.11",
	"License :: OSI Approved :: MIT License",
	"Operating System :: OS Independent",
}

// Requires lists the runtime dependencies of the generated parser.
// The generated parser is self-contained.
var Requires = []string{}
