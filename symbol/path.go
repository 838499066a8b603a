package symbol

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/px/value"
)

// Path returns filesystem path manipulation and inspection functions.
func Path() Library {
	return Library{
		Name: "path",
		Symbols: map[string]any{
			"glob":       pathGlob,
			"abs":        pathAbs,
			"base":       filepath.Base,
			"dir":        filepath.Dir,
			"join":       pathJoin,
			"ext":        filepath.Ext,
			"splitext":   pathSplitext,
			"exists":     fileExists,
			"isdir":      fileIsDir,
			"isfile":     fileIsRegular,
			"islink":     fileIsSymlink,
			"rel":        pathRel,
			"clean":      filepath.Clean,
			"split":      pathSplit,
			"expanduser": pathExpandUser,
			"sep":        string(os.PathSeparator),
			"pathsep":    string(os.PathListSeparator),
		},
	}
}

// pathGlob returns the sorted names matching pattern.
func pathGlob(pattern string) ([]any, error) {
	matches, err := filepath.Glob(pathExpandUser(pattern))
	if err != nil {
		return nil, value.ErrArgument.Wrap(err)
	}

	out := make([]any, len(matches))
	for i, m := range matches {
		out[i] = m
	}

	return out, nil
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathJoin(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathJoin(from, to)
	}

	return p
}

func pathSplit(path string) []any {
	dir, file := filepath.Split(path)

	return []any{strings.TrimSuffix(dir, string(os.PathSeparator)), file}
}

func pathSplitext(path string) []any {
	ext := filepath.Ext(path)

	return []any{strings.TrimSuffix(path, ext), ext}
}

// pathExpandUser replaces a leading "~" with the home directory.
func pathExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return home + path[1:]
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

func fileIsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}
