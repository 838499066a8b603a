//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Enabled reports whether profiling support is compiled in.
const Enabled = true

//nolint:gochecknoglobals
var modes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

//nolint:gochecknoglobals
var modeNames = sync.OnceValue(func() []string {
	return slices.Sorted(maps.Keys(modes))
})

// Modes returns the supported profiling modes in sorted order.
func Modes() []string { return slices.Clone(modeNames()) }

func start(p Profiler) Stopper {
	s := session{}.with(withMode(p.Mode))
	if len(s.opts) == 0 {
		return ignore{}
	}

	return profile.Start(s.with(withPath(p.Path), withQuiet(p.Quiet)).opts...)
}
