package deps

import (
	"fmt"
	"path/filepath"

	"github.com/matzehuels/vouchjs/pkg/errors"
)

// ManifestKind identifies a recognized dependency manifest format.
type ManifestKind int

const (
	// ManifestNpmLock is npm's package-lock.json.
	ManifestNpmLock ManifestKind = iota
)

var manifestFileNames = map[ManifestKind]string{
	ManifestNpmLock: "package-lock.json",
}

var manifestKindNames = map[ManifestKind]string{
	ManifestNpmLock: "npm-lock",
}

// ManifestKinds returns every recognized manifest kind in search order.
func ManifestKinds() []ManifestKind {
	return []ManifestKind{ManifestNpmLock}
}

// FileName returns the fixed file name that identifies the manifest kind.
func (k ManifestKind) FileName() string { return manifestFileNames[k] }

// String returns a short identifier for the kind (e.g., "npm-lock").
func (k ManifestKind) String() string {
	if s, ok := manifestKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ManifestKind(%d)", int(k))
}

// ManifestFile references a manifest found on disk.
type ManifestFile struct {
	Kind ManifestKind // Manifest format
	Path string       // Absolute path to the file
}

// ManifestParser reads dependency information from local manifest files.
type ManifestParser interface {
	// Parse reads the manifest at path and returns its sorted, deduplicated
	// dependency records.
	Parse(path string, opts Options) ([]Dependency, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Kind returns the manifest kind handled by this parser.
	Kind() ManifestKind
}

// DetectManifest finds a parser that supports the given file path.
// It fails with UNSUPPORTED if no parser matches.
func DetectManifest(path string, parsers ...ManifestParser) (ManifestParser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported manifest: %s", name)
}
