// Package fs provides file system adapters for collecting and hashing
// native sources.
package fs

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceWalker = (*Walker)(nil)

// Walker collects source files from the project tree.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// CollectSources walks root and returns every file with the given extension,
// minus the excluded paths. Exclusions are compared against normalized paths.
// The result is sorted so repeated runs over the same tree are identical.
func (w *Walker) CollectSources(root, ext string, exclusions []string) ([]string, error) {
	excluded := make(map[string]bool, len(exclusions))
	for _, x := range exclusions {
		excluded[filepath.Clean(x)] = true
	}

	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		path = filepath.Clean(path)
		if excluded[path] {
			return nil
		}
		sources = append(sources, path)
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk source tree"), "root", root)
	}

	slices.Sort(sources)
	return sources, nil
}
