// Package profile provides optional runtime profiling for tagargs.
//
// Profiling is compiled in only with the "pprof" build tag. Without it,
// [Start] always returns a no-op [Stopper] and [Modes] is empty.
//
//	stop := profile.Start(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/profiles"),
//	)
//	defer stop.Stop()
//
// Profile files are written to the configured directory with names matching
// the mode (cpu.pprof, mem.pprof). Analyze them with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// With the build tag, [net/http/pprof] handlers are also registered on
// [net/http.DefaultServeMux].
package profile
