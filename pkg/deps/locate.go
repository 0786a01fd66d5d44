package deps

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/vouchjs/pkg/errors"
)

// Locate walks up the directory tree from startDir and returns the manifest
// files found in the first directory that contains at least one of the given
// kinds (all known kinds when none are given). Manifests from different
// levels are never combined.
//
// ok is false when the filesystem root was searched without a match. A
// relative startDir is a caller bug and fails with INVALID_INPUT.
func Locate(startDir string, kinds ...ManifestKind) (found []ManifestFile, ok bool, err error) {
	if !filepath.IsAbs(startDir) {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "search path must be absolute: %s", startDir)
	}
	if len(kinds) == 0 {
		kinds = ManifestKinds()
	}

	dir := filepath.Clean(startDir)
	for {
		for _, kind := range kinds {
			path := filepath.Join(dir, kind.FileName())
			if isRegularFile(path) {
				found = append(found, ManifestFile{Kind: kind, Path: path})
			}
		}
		if len(found) > 0 {
			return found, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false, nil
		}
		dir = parent
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
