package profile

import "github.com/ardnew/parsebuilder/pkg"

// Stopper stops an active profiler and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling with the given options and returns a [Stopper] that
// must be called to write the profile.
//
// If built without the pprof tag, or if no known mode is selected, Start
// returns a no-op. Stop is always safe to call.
func Start(opts ...Option) Stopper {
	s := pkg.Apply(Settings{}, opts...)
	if s.Mode == "" {
		return ignore{}
	}

	return start(s)
}

// Enabled reports whether the binary was built with profiling support.
func Enabled() bool { return enabled }

type ignore struct{}

func (ignore) Stop() {}
