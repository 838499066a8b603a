//go:build pprof

package profile

import "github.com/pkg/profile"

// setting adds profile options to a session.
type setting func(session) session

// session accumulates the options passed to [profile.Start].
type session struct {
	opts []func(*profile.Profile)
}

func (s session) with(settings ...setting) session {
	for _, set := range settings {
		s = set(s)
	}

	return s
}

func withMode(name string) setting {
	return func(s session) session {
		if fn, ok := modes[name]; ok {
			s.opts = append(s.opts, fn)
		}

		return s
	}
}

func withPath(path string) setting {
	return func(s session) session {
		if path != "" {
			s.opts = append(s.opts, profile.ProfilePath(path))
		}

		return s
	}
}

func withQuiet(quiet bool) setting {
	return func(s session) session {
		if quiet {
			s.opts = append(s.opts, profile.Quiet)
		}

		return s
	}
}
