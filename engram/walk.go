package engram

import (
	"os"
	"path/filepath"
	"sort"
)

// discoverFiles returns every regular file under inputPath, as paths
// relative to inputPath, sorted lexicographically so encode is
// deterministic regardless of directory iteration order. If inputPath
// is itself a regular file, the result is that one file under its base
// name.
func discoverFiles(inputPath string) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Base(inputPath)}, nil
	}

	var rel []string
	err = filepath.WalkDir(inputPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		r, err := filepath.Rel(inputPath, path)
		if err != nil {
			return err
		}
		rel = append(rel, filepath.ToSlash(r))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(rel)
	return rel, nil
}

// resolvePath joins a manifest-relative path back onto inputPath,
// matching discoverFiles's convention of storing the base name for a
// single-file input.
func resolvePath(inputPath, relPath string) string {
	info, err := os.Stat(inputPath)
	if err == nil && !info.IsDir() {
		return inputPath
	}
	return filepath.Join(inputPath, filepath.FromSlash(relPath))
}
