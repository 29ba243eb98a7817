package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteFile writes u to path as a crash-safe commit point: write temp,
// fsync temp, rename over the final path, then fsync the containing
// directory so the rename itself survives a crash.
func WriteFile(path string, u *UnifiedManifest) error {
	if u == nil {
		return manifestErrorf("WriteFile", ErrUnknownTag)
	}
	b, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return manifestErrorf("WriteFile", err)
	}
	b = append(b, '\n')

	dir := filepath.Dir(path)
	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return manifestErrorf("WriteFile", err)
	}
	_, werr := f.Write(b)
	serr := f.Sync()
	cerr := f.Close()
	if werr != nil {
		return manifestErrorf("WriteFile", werr)
	}
	if serr != nil {
		return manifestErrorf("WriteFile", serr)
	}
	if cerr != nil {
		return manifestErrorf("WriteFile", cerr)
	}
	if err := os.Rename(tmp, path); err != nil {
		return manifestErrorf("WriteFile", err)
	}

	d, err := os.Open(dir)
	if err != nil {
		return manifestErrorf("WriteFile", err)
	}
	if err := d.Sync(); err != nil {
		_ = d.Close()
		return manifestErrorf("WriteFile", err)
	}
	if err := d.Close(); err != nil {
		return manifestErrorf("WriteFile", err)
	}
	return nil
}

// ReadFile loads and validates a UnifiedManifest written by WriteFile (or
// a legacy flat-format writer). It accepts either shape; IsHierarchical
// reports which one was found.
func ReadFile(path string) (*UnifiedManifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, manifestErrorf("ReadFile", err)
	}
	var u UnifiedManifest
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, manifestErrorf("ReadFile", err)
	}
	if u.Hierarchical == nil && u.Flat == nil {
		return nil, manifestErrorf("ReadFile", ErrUnknownTag)
	}
	if u.Hierarchical != nil && u.Hierarchical.Version != CurrentVersion {
		return nil, manifestErrorf("ReadFile", ErrUnknownVersion)
	}
	return &u, nil
}
