package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/px/pipeline"
	"github.com/ardnew/px/pkg"
	"github.com/ardnew/px/symbol"
)

// configHome replaces the user configuration directory for every test.
var configHome string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "px-cli-test")
	if err != nil {
		panic(err)
	}

	configHome = dir
	_ = os.Setenv("XDG_CONFIG_HOME", dir)

	code := m.Run()

	_ = os.RemoveAll(dir)

	os.Exit(code)
}

type cliResult struct {
	out    string
	errOut string
	err    error
}

func runCLI(t *testing.T, input string, interactive bool, args ...string) cliResult {
	t.Helper()

	var out, errOut bytes.Buffer

	streams := Streams{
		In:  pipeline.NewInput(strings.NewReader(input), interactive),
		Out: &out,
		Err: &errOut,
	}

	err := Run(context.Background(), func(code int) {
		t.Fatalf("unexpected exit(%d)", code)
	}, streams, args...)

	return cliResult{out: out.String(), errOut: errOut.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		interactive bool
		args        []string
		wantOut     string
		wantErrOut  string
		wantCode    int
	}{
		{
			name:       "error shown once after aggregate",
			input:      "1\n2\n3\n4\n",
			args:       []string{"-e", "a=0", "b=x", "1", "xargs", "b"},
			wantErrOut: "name 'b' is not defined\n",
			wantCode:   ExitError,
		},
		{
			name:     "errors hidden by default",
			input:    "1\n2\n",
			args:     []string{"foo"},
			wantCode: ExitError,
		},
		{
			name:       "row errors do not stop later rows",
			input:      "0\n4\n8\n",
			args:       []string{"--show-error", "int", "1 / x", "1 / x"},
			wantOut:    "4.0\n8.0\n",
			wantErrOut: "division by zero\n",
			wantCode:   ExitError,
		},
		{
			name:    "show bool",
			input:   "3\n5\n",
			args:    []string{"-b", "int", "x > 4"},
			wantOut: "False\nTrue\n",
		},
		{
			name:        "calculator",
			interactive: true,
			args:        []string{"5", "range", "unxargs"},
			wantOut:     "0\n1\n2\n3\n4\n",
		},
		{
			name:        "aggregate of nothing",
			interactive: true,
			args:        []string{"xargs"},
			wantOut:     "[]\n",
		},
		{
			name:        "hyphenated stage after separator",
			interactive: true,
			args:        []string{"--", "-7 % 3"},
			wantOut:     "2\n",
		},
		{
			name:     "flatten alone",
			args:     []string{"unxargs"},
			wantCode: ExitOK,
		},
		{
			name:    "auto import",
			input:   "{\"a\": 3}\n",
			args:    []string{"json.loads", "x['a']"},
			wantOut: "3\n",
		},
		{
			name:    "binding arithmetic",
			input:   "2\n",
			args:    []string{"-e", "int", "x+5"},
			wantOut: "7\n",
		},
		{
			name:    "boolean filter",
			input:   "5\n7\n3\n4\n",
			args:    []string{"int", "x > 4"},
			wantOut: "5\n7\n",
		},
		{
			name:    "boolean filter shown",
			input:   "5\n7\n3\n4\n",
			args:    []string{"-b", "int", "x > 4"},
			wantOut: "True\nTrue\nFalse\nFalse\n",
		},
		{
			name:       "flatten non-iterable",
			input:      "1\n",
			args:       []string{"-e", "5", "unxargs"},
			wantErrOut: "'int' object is not iterable\n",
			wantCode:   ExitError,
		},
		{
			name:    "string per row",
			input:   "a\nb\n",
			args:    []string{"x + '.txt'"},
			wantOut: "a.txt\nb.txt\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runCLI(t, tt.input, tt.interactive, tt.args...)

			if got.out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", got.out, tt.wantOut)
			}

			if got.errOut != tt.wantErrOut {
				t.Errorf("stderr = %q, want %q", got.errOut, tt.wantErrOut)
			}

			if code := ExitCode(got.err); code != tt.wantCode {
				t.Errorf("ExitCode(%v) = %d, want %d", got.err, code, tt.wantCode)
			}
		})
	}
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no stages", nil},
		{"unknown flag", []string{"--bogus", "x"}},
		{"bad seed", []string{"--seed", "abc", "x"}},
		{"bad log level", []string{"--log-level", "loud", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runCLI(t, "", true, tt.args...)

			if !errors.Is(got.err, ErrUsage) {
				t.Errorf("Run() error = %v, want %v", got.err, ErrUsage)
			}

			if ExitCode(got.err) != ExitUsage {
				t.Errorf("ExitCode() = %d, want %d", ExitCode(got.err), ExitUsage)
			}

			if !strings.HasPrefix(got.errOut, pkg.Name+": error:") {
				t.Errorf("stderr = %q", got.errOut)
			}
		})
	}
}

func TestRun_FatalErrors(t *testing.T) {
	bad := writeFile(t, "bad.yaml", "- not\n- a mapping\n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"compile", []string{"5 +"}, pipeline.ErrCompile},
		{"symbol file", []string{"--symbols", bad, "x"}, symbol.ErrSymbolFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runCLI(t, "1\n", false, tt.args...)

			if !errors.Is(got.err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", got.err, tt.wantErr)
			}

			if ExitCode(got.err) != ExitError {
				t.Errorf("ExitCode() = %d, want %d", ExitCode(got.err), ExitError)
			}

			if got.out != "" {
				t.Errorf("stdout = %q, want empty", got.out)
			}
		})
	}
}

func TestRun_Symbols(t *testing.T) {
	yml := writeFile(t, "a.yaml", "greeting: hello\nn: 1\n")
	tml := writeFile(t, "b.toml", "n = 2\nname = \"px\"\n")

	t.Run("flag", func(t *testing.T) {
		got := runCLI(t, "", true, "--symbols", yml, "greeting + ' ' + str(n)")
		if got.err != nil || got.out != "hello 1\n" {
			t.Errorf("Run() = (%q, %v)", got.out, got.err)
		}
	})

	t.Run("later file wins", func(t *testing.T) {
		got := runCLI(t, "", true, "--symbols", yml, "--symbols", tml, "n")
		if got.err != nil || got.out != "2\n" {
			t.Errorf("Run() = (%q, %v)", got.out, got.err)
		}
	})

	t.Run("user symbol shadows binding", func(t *testing.T) {
		x := writeFile(t, "x.yaml", "x: 42\n")

		got := runCLI(t, "3\n", false, "--symbols", x, "x")
		if got.err != nil || got.out != "42\n" {
			t.Errorf("Run() = (%q, %v)", got.out, got.err)
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("PX_SYMBOL_FILEPATHS", yml+string(os.PathListSeparator)+tml)

		got := runCLI(t, "", true, "greeting + ' ' + name")
		if got.err != nil || got.out != "hello px\n" {
			t.Errorf("Run() = (%q, %v)", got.out, got.err)
		}
	})
}

func TestRun_Seed(t *testing.T) {
	args := []string{"--seed", "42", "_randint(1, 1000000)"}

	first := runCLI(t, "", true, args...)
	second := runCLI(t, "", true, args...)

	if first.err != nil || second.err != nil {
		t.Fatalf("Run() errors: %v, %v", first.err, second.err)
	}

	if first.out == "" || first.out != second.out {
		t.Errorf("seeded runs differ: %q and %q", first.out, second.out)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := filepath.Join(configHome, pkg.Name)
	if pkg.ConfigDir() != dir {
		t.Skipf("configuration directory is %s", pkg.ConfigDir())
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, baseConfig+".yaml")
	if err := os.WriteFile(path, []byte("show_error: true\nlog:\n  level: error\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = os.Remove(path) })

	got := runCLI(t, "1\n", false, "foo")

	if got.errOut != "name 'foo' is not defined\n" {
		t.Errorf("stderr = %q", got.errOut)
	}
}

// errExit is raised by the exit function of TestRun_Version.
var errExit = errors.New("exit")

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer

	code := -1

	func() {
		defer func() {
			if r := recover(); r != nil && r != errExit { //nolint:errorlint
				panic(r)
			}
		}()

		_ = Run(context.Background(), func(c int) {
			code = c

			panic(errExit)
		}, Streams{In: pipeline.NewInput(nil, true), Out: &out, Err: &out}, "--version")
	}()

	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	if !strings.Contains(out.String(), pkg.Version()) {
		t.Errorf("output = %q, want version %s", out.String(), pkg.Version())
	}
}

func TestSymbolFiles(t *testing.T) {
	sep := string(os.PathListSeparator)

	got := symbolFiles([]string{"a.yaml", "b.toml" + sep + sep + "c.env", ""})
	want := []string{"a.yaml", "b.toml", "c.env"}

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("symbolFiles() = %q, want %q", got, want)
	}
}
