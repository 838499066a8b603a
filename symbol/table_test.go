package symbol

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ardnew/px/value"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

func TestBuild_Tiers(t *testing.T) {
	path := writeFile(t, "user.yaml", "foo: bar\nint: 7\nx: 3\n")

	table, err := NewBuilder(WithFiles(path)).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tests := []struct {
		name    string
		want    any
		defined bool
		found   bool
	}{
		{"foo", "bar", true, true},
		{"int", 7, true, true},
		{"x", 3, true, true},
		{"_pi", 3.141592653589793, false, true},
		{"_sqrt", nil, false, true},
		{"sorted", nil, false, true},
		{"pi", nil, false, false},
		{"missing", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Lookup(tt.name)
			if ok != tt.found {
				t.Fatalf("Lookup(%q) found = %v, want %v", tt.name, ok, tt.found)
			}

			if table.Defines(tt.name) != tt.defined {
				t.Errorf("Defines(%q) = %v, want %v", tt.name, !tt.defined, tt.defined)
			}

			if tt.want != nil && got != tt.want {
				t.Errorf("Lookup(%q) = %#v, want %#v", tt.name, got, tt.want)
			}
		})
	}

	names := table.Names()
	if !slices.IsSorted(names) {
		t.Error("Names() is not sorted")
	}

	if len(names) != table.Len() {
		t.Errorf("len(Names()) = %d, Len() = %d", len(names), table.Len())
	}

	if !slices.Contains(names, "_glob") || !slices.Contains(names, "foo") {
		t.Error("Names() is missing expected entries")
	}
}

func TestBuild_LaterFileWins(t *testing.T) {
	first := writeFile(t, "a.json", `{"name": "first", "keep": 1}`)
	second := writeFile(t, "b.toml", "name = \"second\"\n")

	table, err := NewBuilder(WithFiles(first, "", second)).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if v, _ := table.Lookup("name"); v != "second" {
		t.Errorf("name = %v, want second", v)
	}

	if v, _ := table.Lookup("keep"); v != 1 {
		t.Errorf("keep = %#v, want 1", v)
	}
}

func TestBuild_BadFile(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing", func(t *testing.T) string {
			t.Helper()

			return filepath.Join(t.TempDir(), "none.yaml")
		}},
		{"not_mapping", func(t *testing.T) string {
			t.Helper()

			return writeFile(t, "list.yaml", "- a\n- b\n")
		}},
		{"malformed_json", func(t *testing.T) string {
			t.Helper()

			return writeFile(t, "bad.json", "{")
		}},
		{"malformed_toml", func(t *testing.T) string {
			t.Helper()

			return writeFile(t, "bad.toml", "= 1")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(WithFiles(tt.path(t))).Build(context.Background())
			if !errors.Is(err, ErrSymbolFile) {
				t.Errorf("Build error = %v, want ErrSymbolFile", err)
			}
		})
	}
}

func TestLoadFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"yaml", "s.yml", "n: 1\nl: [a, 2]\n", "{'l': ['a', 2], 'n': 1}"},
		{"yaml_empty", "s.yaml", "", "{}"},
		{"json", "s.json", `{"n": 2, "f": 1.5, "m": {"k": null}}`, "{'f': 1.5, 'm': {'k': None}, 'n': 2}"},
		{"toml", "s.toml", "n = 3\n[t]\nk = \"v\"\n", "{'n': 3, 't': {'k': 'v'}}"},
		{"dotenv", "s.env", "A=1\nB=\"two words\"\n", "{'A': '1', 'B': 'two words'}"},
		{"fallback_yaml", "s.conf", `{"n": 4}`, "{'n': 4}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syms, err := LoadFile(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}

			if got := value.Format(syms); got != tt.want {
				t.Errorf("LoadFile = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	tier := map[string]any{}

	n := register(tier, Library{Name: "a", Symbols: map[string]any{
		"shared":  "a",
		"only_a":  1,
		"_hidden": true,
		"":        false,
	}})
	if n != 2 {
		t.Errorf("first register added %d, want 2", n)
	}

	n = register(tier, Library{Name: "b", Symbols: map[string]any{
		"shared": "b",
		"only_b": 2,
	}})
	if n != 1 {
		t.Errorf("second register added %d, want 1", n)
	}

	if tier["_shared"] != "a" {
		t.Errorf("_shared = %v, want first library's value", tier["_shared"])
	}

	for _, name := range []string{"__hidden", "_hidden", "_"} {
		if _, ok := tier[name]; ok {
			t.Errorf("private name %q was registered", name)
		}
	}
}

func TestWithLibraries(t *testing.T) {
	table, err := NewBuilder(
		WithLibraries(Library{Name: "one", Symbols: map[string]any{"answer": 42}}),
	).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if v, ok := table.Lookup("_answer"); !ok || v != 42 {
		t.Errorf("_answer = %v, %v", v, ok)
	}

	if table.Has("_sqrt") {
		t.Error("default libraries registered despite WithLibraries")
	}

	if !table.Has("len") {
		t.Error("builtins missing")
	}
}

func TestWithSeed_Reproducible(t *testing.T) {
	draw := func() []any {
		table, err := NewBuilder(WithSeed(42)).Build(context.Background())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}

		out := make([]any, 0, 3)

		for _, name := range []string{"_random", "_randint", "_sample"} {
			fn, _ := table.Lookup(name)

			var args []any

			switch name {
			case "_randint":
				args = []any{1, 100}
			case "_sample":
				args = []any{[]any{1, 2, 3, 4, 5}, 3}
			}

			v, err := value.Call(fn, args...)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}

			out = append(out, v)
		}

		return out
	}

	a, b := draw(), draw()
	if value.Format(a) != value.Format(b) {
		t.Errorf("seeded draws differ: %s vs %s", value.Format(a), value.Format(b))
	}
}

func TestNilTable(t *testing.T) {
	var table *Table

	if table.Has("int") || table.Defines("x") || table.Len() != 0 || table.Names() != nil {
		t.Error("nil table should be empty")
	}
}
