package symbol

import (
	"bufio"
	"os"
	"os/user"
	"runtime"
	"strings"
)

// System returns host and process information: the target triple, the
// current user and shell, the working directory, and the environment.
func System() Library {
	return Library{
		Name: "system",
		Symbols: map[string]any{
			"target":   getTarget(),
			"platform": getPlatform(),
			"hostname": getHostname(),
			"user":     getUser(),
			"shell":    getShell(),
			"cwd":      getCwd,
			"env":      getEnv,
			"environ":  environ(nil),
		},
	}
}

// Target identifies an operating system and instruction set architecture.
//
// Leaving the conventions unspecified allows this type to be used
// in a variety of contexts.
type Target struct {
	OS   string
	Arch string
}

// String returns the target as "arch-os".
func (t Target) String() string { return t.Arch + "-" + t.OS }

// getTarget returns the host target using GNU GCC/LLVM naming conventions.
func getTarget() Target {
	t := getPlatform()

	switch t.Arch {
	case "386":
		t.Arch = "i386"
	case "amd64":
		t.Arch = "x86_64"
	case "arm":
		arm, ok := os.LookupEnv("GOARM")
		if ok {
			arm, _, _ = strings.Cut(arm, ",")
			switch strings.TrimSpace(arm) {
			case "5", "6", "7":
				t.Arch = "armv" + arm
			}
		}
	case "arm64":
		if t.OS != "darwin" {
			t.Arch = "aarch64"
		}
	case "mipsle":
		t.Arch = "mipsel"
	}

	return t
}

// getPlatform returns the host target using Go conventions.
func getPlatform() Target {
	var (
		o, a string
		ok   bool
	)

	if o, ok = os.LookupEnv("GOHOSTOS"); !ok {
		if o, ok = os.LookupEnv("GOOS"); !ok {
			o = runtime.GOOS
		}
	}

	if a, ok = os.LookupEnv("GOHOSTARCH"); !ok {
		if a, ok = os.LookupEnv("GOARCH"); !ok {
			a = runtime.GOARCH
		}
	}

	return Target{OS: o, Arch: a}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

// getUser returns the current account as a mapping, or nil when it cannot
// be determined.
func getUser() map[string]any {
	u, err := user.Current()
	if err != nil {
		return nil
	}

	return map[string]any{
		"name":     u.Name,
		"username": u.Username,
		"uid":      u.Uid,
		"gid":      u.Gid,
		"home":     u.HomeDir,
	}
}

// getShell returns $SHELL, falling back to the login shell recorded in
// /etc/passwd.
func getShell() string {
	shell, ok := os.LookupEnv("SHELL")
	if ok {
		return shell
	}

	u, err := user.Current()
	if err != nil || u.Username == "" {
		return ""
	}

	f, err := os.Open("/etc/passwd")
	if err != nil {
		return ""
	}

	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		e := strings.Split(s.Text(), ":")
		if len(e) > 6 && e[0] == u.Username {
			return e[6]
		}
	}

	return ""
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

// getEnv returns the value of an environment variable, or the optional
// fallback when it is unset.
func getEnv(key string, fallback ...string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	if len(fallback) > 0 {
		return fallback[0]
	}

	return ""
}

// environ converts a "KEY=VALUE" list to a mapping.
// If list is nil, os.Environ() is used.
func environ(list []string) map[string]any {
	if list == nil {
		list = os.Environ()
	}

	out := make(map[string]any, len(list))

	for _, entry := range list {
		key, val, ok := strings.Cut(entry, "=")
		if ok {
			out[key] = val
		}
	}

	return out
}
