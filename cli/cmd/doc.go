// Package cmd implements the parsebuilder subcommands: build, show, info,
// init and version.
//
// Commands are run by kong with a [context.Context] carrying the parsed
// [kong.Context] ([WithContext]) and the writer for command output
// ([WithOutput]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
