// Package profile provides optional runtime profiling for parsebuilder.
//
// Profiling is implemented with [github.com/pkg/profile] and must be enabled
// at build time with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Start] always returns a no-op
// [Stopper], so callers never need to check whether profiling is available.
//
// # Modes
//
// With the tag, the following modes are supported (see [Modes]):
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	stop := profile.Start(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//		profile.WithQuiet(true))
//	defer stop.Stop()
//
// Profiles are written to the configured directory with names matching the
// mode (cpu.pprof, mem.pprof, ...) and can be inspected with:
//
//	go tool pprof -http=: $XDG_CACHE_HOME/parsebuilder/pprof/cpu.pprof
//
// The tagged build also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux]. parsebuilder never starts an HTTP server, so
// they are only reachable from programs embedding this package that do.
package profile

// Tag is the build tag required to enable profiling. It also names the
// subdirectory of the cache directory where profiles are written by default.
const Tag = `pprof`
