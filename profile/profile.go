package profile

// Tag is the build tag that enables profiling, and the name of the default
// profile output directory.
const Tag = "pprof"

// Stopper ends a profiling session. Stop is safe to call more than once.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log lines
}

// Start begins profiling and returns the session's Stopper.
//
// When built without the pprof tag, or when Mode is empty or unknown, Start
// returns a no-op Stopper.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
