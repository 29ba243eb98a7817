package engram

import "github.com/ternholo/engram/manifest"

// FindSubEngram returns the SubEngram a path decodes to, searching
// man's hierarchical level-0 leaves. Useful for inspecting or
// re-querying a single file's vector without decoding the whole tree.
//
// A legacy flat manifest never stored a per-file vector, only the
// combined root, so for a Flat manifest this returns a SubEngram
// carrying only the id, with a zero Root.
func FindSubEngram(man *manifest.UnifiedManifest, path string) (manifest.SubEngram, error) {
	if man.IsHierarchical() {
		for _, item := range man.Hierarchical.Levels[0].Items {
			if item.Path == path {
				sub, ok := man.Hierarchical.SubEngrams[item.SubEngramID]
				if !ok {
					break
				}
				return sub, nil
			}
		}
		return manifest.SubEngram{}, engramErrorf("FindSubEngram", ErrPathNotFound)
	}

	for _, item := range man.Flat.Blocks {
		if item.Path == path {
			return manifest.SubEngram{ID: item.SubEngramID}, nil
		}
	}
	return manifest.SubEngram{}, engramErrorf("FindSubEngram", ErrPathNotFound)
}
