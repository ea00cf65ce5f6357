// Package cli contains the command line interface for parsebuilder.
//
// # Usage
//
//	parsebuilder [flags] [build] [DEST]
//	parsebuilder show
//	parsebuilder info [--format yaml|json] [--runtime VERSION]
//	parsebuilder init [--force]
//	parsebuilder version
//
// build is the default command: with no arguments, parsebuilder writes
// Parser.py to the working directory.
//
// # Configuration
//
// Flag defaults are read from a YAML file and a JSON file in the XDG config
// directory:
//
//	$XDG_CONFIG_HOME/parsebuilder/config.yaml
//	$XDG_CONFIG_HOME/parsebuilder/config.yaml.json
//
// Keys name flags without the leading dashes, e.g. "log-level: debug" or
// "no-clobber: true". Command-line flags override both files. The init
// command writes the current flag values to the YAML file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Render log output for a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     $XDG_CACHE_HOME/parsebuilder/pprof)
//
// # Examples
//
//	# Write the parser next to a grammar, failing if one exists
//	parsebuilder build --no-clobber grammar/Parser.py
//
//	# Debug logging in text format
//	parsebuilder --log-level=debug --log-format=text build
//
//	# Check a Python version against the packaging descriptor
//	parsebuilder info --runtime 3.11
package cli
