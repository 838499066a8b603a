package profile

import (
	"slices"
	"testing"
)

func TestProfiler_EmptyModeIsNoop(t *testing.T) {
	s := Profiler{Path: t.TempDir()}.Start()

	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", s)
	}

	s.Stop()
	s.Stop()
}

func TestProfiler_UnknownModeIsNoop(t *testing.T) {
	s := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}.Start()

	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", s)
	}

	s.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %q without profiling support", modes)
		}

		return
	}

	if !slices.IsSorted(modes) || !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %q", modes)
	}
}
