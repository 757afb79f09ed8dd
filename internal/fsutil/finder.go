// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TaskfileExt is the extension of taskfiles found inside directories.
const TaskfileExt = ".hcl"

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths in lexical order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// FindTaskfiles expands paths into taskfiles. A file path is taken as is,
// whatever its extension; a directory contributes every TaskfileExt file
// below it. Duplicates are dropped. A missing path is an error matching
// fs.ErrNotExist.
func FindTaskfiles(paths ...string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access taskfile path %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		found, err := FindFilesByExtension(p, TaskfileExt)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s for taskfiles: %w", p, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
