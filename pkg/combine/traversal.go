// File: pkg/combine/traversal.go
package combine

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gitlab.com/tozd/go/errors"
)

// ResolveRoot returns the absolute, symlink-free form of root and checks that
// it is an existing directory.
func ResolveRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", rootError("resolve", root, err)
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", rootError("resolve", absRoot, ErrNotExist)
		}
		return "", rootError("resolve", absRoot, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", rootError("stat", resolved, ErrNotExist)
		}
		return "", rootError("stat", resolved, err)
	}
	if !info.IsDir() {
		return "", rootError("stat", resolved, ErrNotDirectory)
	}
	return resolved, nil
}

// Scan returns the absolute paths of every regular file under root, sorted.
// Symlinked files are included when they point at regular files and
// symlinked directories are traversed. Any traversal failure aborts the scan.
func Scan(root string) ([]string, error) {
	resolved, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	var files []string
	onStack := map[string]bool{resolved: true}
	if err := scanDirectory(resolved, resolved, onStack, &files); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// scanDirectory appends the regular files below dir to files. realDir is the
// symlink-free location of dir; onStack holds the real paths of the
// directories currently being visited so that symlink cycles terminate.
func scanDirectory(dir, realDir string, onStack map[string]bool, files *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return rootError("scan", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()

		switch {
		case mode.IsDir():
			if err := descend(path, filepath.Join(realDir, entry.Name()), onStack, files); err != nil {
				return err
			}

		case mode&fs.ModeSymlink != 0:
			info, err := os.Stat(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue // dangling link
				}
				return rootError("scan", path, err)
			}
			if info.Mode().IsRegular() {
				*files = append(*files, path)
				continue
			}
			if !info.IsDir() {
				continue
			}
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return rootError("scan", path, err)
			}
			if onStack[target] {
				continue
			}
			if err := descend(path, target, onStack, files); err != nil {
				return err
			}

		case mode.IsRegular():
			*files = append(*files, path)
		}
	}
	return nil
}

func descend(dir, realDir string, onStack map[string]bool, files *[]string) error {
	onStack[realDir] = true
	defer delete(onStack, realDir)
	return scanDirectory(dir, realDir, onStack, files)
}
