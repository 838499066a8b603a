// Package profile provides optional runtime profiling for px.
//
// Profiling is compiled in only with the "pprof" build tag, using
// [github.com/pkg/profile] for file-based profiles and registering the
// [net/http/pprof] handlers. Without the tag, [Profiler.Start] always
// returns a no-op and [Modes] is empty.
//
//	go build -tags pprof .
//	px --pprof-mode=cpu --pprof-dir=/tmp/px 'x.upper()' < input.txt
//	go tool pprof /tmp/px/cpu.pprof
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, and trace. Profiles are written to the configured
// directory under the name of the mode, e.g. cpu.pprof.
package profile
