package javascript

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/matzehuels/vouchjs/pkg/deps"
	"github.com/matzehuels/vouchjs/pkg/errors"
)

// PackageLock parses package-lock.json files (lockfileVersion 1 and 2, which
// both carry the nested "dependencies" tree).
type PackageLock struct{}

func (p *PackageLock) Kind() deps.ManifestKind { return deps.ManifestNpmLock }
func (p *PackageLock) Supports(name string) bool {
	return strings.EqualFold(name, deps.ManifestNpmLock.FileName())
}

// Parse reads the lockfile at path and returns its flattened dependencies.
func (p *PackageLock) Parse(path string, opts deps.Options) ([]deps.Dependency, error) {
	opts = opts.WithDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "read %s", path)
	}
	ds, err := ExtractLockfile(data, opts.IncludeDev)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "parse %s", path)
	}
	opts.Logger("parsed %s: %d dependencies", path, len(ds))
	return ds, nil
}

// ExtractLockfile flattens the nested "dependencies" tree of a lockfile
// into a sorted, de-duplicated list.
//
// Groups are visited breadth first. An entry marked "dev": true is left out
// unless includeDev is set, but its nested group is still visited: a
// production package may sit under a dev-only parent. Entries without a
// usable "version" get the missing-version marker.
func ExtractLockfile(data []byte, includeDev bool) ([]deps.Dependency, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "invalid lockfile json: %s", data)
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeParseFailure, "lockfile is not a JSON object: %s", data)
	}

	set := deps.NewDependencySet()
	var queue []map[string]any
	if group, ok := root["dependencies"].(map[string]any); ok {
		queue = append(queue, group)
	}

	for len(queue) > 0 {
		group := queue[0]
		queue = queue[1:]

		for name, raw := range group {
			entry, ok := raw.(map[string]any)
			if !ok {
				set.Add(deps.Dependency{Name: name, Version: deps.MissingVersion()})
				continue
			}

			if dev, _ := entry["dev"].(bool); includeDev || !dev {
				version, _ := entry["version"].(string)
				set.Add(deps.Dependency{Name: name, Version: deps.ParseVersion(version)})
			}

			if nested, ok := entry["dependencies"].(map[string]any); ok {
				queue = append(queue, nested)
			}
		}
	}

	return set.Sorted(), nil
}

var _ deps.ManifestParser = (*PackageLock)(nil)
