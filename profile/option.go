package profile

import "github.com/ardnew/parsebuilder/pkg"

// Settings selects what to profile and where profiles are written.
type Settings struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option configures the [Settings] used by [Start].
type Option = pkg.Option[Settings]

// WithMode sets the profiling mode. See [Modes] for the supported values.
// An empty or unknown mode disables profiling.
func WithMode(mode string) Option {
	return func(s Settings) Settings {
		s.Mode = mode

		return s
	}
}

// WithPath sets the directory profiles are written to. An empty path selects
// a temporary directory chosen by [github.com/pkg/profile].
func WithPath(path string) Option {
	return func(s Settings) Settings {
		s.Path = path

		return s
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(s Settings) Settings {
		s.Quiet = quiet

		return s
	}
}
