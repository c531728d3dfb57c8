// Package source provides the inputs that smellscan examines: inline code
// strings, single files, and files collected from directory trees.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// InlineDescription labels every source created from a string.
const InlineDescription = "string"

// Source is something that can be examined.
type Source interface {
	// Description names the source in reports, e.g. "string" or a path.
	Description() string

	// Read returns the Go code to examine.
	Read() ([]byte, error)

	// Inline reports whether the code came from a string rather than a file.
	// Inline code may omit its package clause.
	Inline() bool
}

type stringSource struct {
	code string
}

// FromString wraps inline code. Its description is always "string".
func FromString(code string) Source {
	return stringSource{code: code}
}

func (s stringSource) Description() string   { return InlineDescription }
func (s stringSource) Read() ([]byte, error) { return []byte(s.code), nil }
func (s stringSource) Inline() bool          { return true }

type fileSource struct {
	path string
}

// FromFile wraps a file on disk. Its description is the path as given.
func FromFile(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Description() string { return s.path }
func (s fileSource) Inline() bool        { return false }

func (s fileSource) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // User-provided source path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return data, nil
}

// DefaultExcludes are directory names that are never walked.
var DefaultExcludes = []string{"vendor", "testdata", ".git"}

// Collect expands paths into file sources. Files are used as given;
// directories are walked for .go files, skipping DefaultExcludes, any
// directory named in exclude, and hidden directories. The result is
// sorted by path within each argument and keeps the argument order.
func Collect(paths []string, exclude []string) ([]Source, error) {
	skip := append(slices.Clone(DefaultExcludes), exclude...)

	var sources []Source
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			sources = append(sources, FromFile(p))
			continue
		}

		var files []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != p && (slices.Contains(skip, name) || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}

		slices.Sort(files)
		for _, f := range files {
			sources = append(sources, FromFile(f))
		}
	}
	return sources, nil
}
