package deps

import (
	"encoding/json"
	"net/url"
	"slices"
	"strings"
)

// DevFlag is the extension argument that enables dev-dependency inclusion
// for file-defined dependency identification.
const DevFlag = "--dev"

// Options configures manifest parsing.
type Options struct {
	IncludeDev bool                 // Include entries marked as dev dependencies
	Logger     func(string, ...any) // Progress/debug callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// ParseExtensionArgs converts host-supplied extension arguments into Options.
// Unknown arguments are ignored.
func ParseExtensionArgs(args []string) Options {
	return Options{IncludeDev: slices.Contains(args, DevFlag)}
}

// Dependency is one resolved dependency: a package name and its version.
type Dependency struct {
	Name    string  `json:"name"`
	Version Version `json:"version"`
}

// Compare orders dependencies by name, then by version.
func (d Dependency) Compare(o Dependency) int {
	if c := strings.Compare(d.Name, o.Name); c != 0 {
		return c
	}
	return d.Version.Compare(o.Version)
}

// SortDependencies sorts ds in ascending (name, version) order.
func SortDependencies(ds []Dependency) {
	slices.SortFunc(ds, Dependency.Compare)
}

// DependencySet accumulates dependencies without duplicates.
type DependencySet struct {
	m map[Dependency]struct{}
}

// NewDependencySet returns an empty set.
func NewDependencySet() *DependencySet {
	return &DependencySet{m: make(map[Dependency]struct{})}
}

// Add inserts d and reports whether it was not already present.
func (s *DependencySet) Add(d Dependency) bool {
	if _, ok := s.m[d]; ok {
		return false
	}
	s.m[d] = struct{}{}
	return true
}

// Len returns the number of distinct dependencies.
func (s *DependencySet) Len() int { return len(s.m) }

// Sorted returns the set contents in ascending (name, version) order.
// The result is never nil.
func (s *DependencySet) Sorted() []Dependency {
	out := make([]Dependency, 0, len(s.m))
	for d := range s.m {
		out = append(out, d)
	}
	SortDependencies(out)
	return out
}

// PackageDependencies lists the dependencies of one package as resolved
// against one registry. The package itself never appears in Dependencies.
type PackageDependencies struct {
	PackageVersion Version      `json:"package_version"`
	RegistryHost   string       `json:"registry_host"`
	Dependencies   []Dependency `json:"dependencies"`
}

// FileDefinedDependencies lists the dependencies recorded in one manifest file.
type FileDefinedDependencies struct {
	Path         string       `json:"path"`
	RegistryHost string       `json:"registry_host"`
	Dependencies []Dependency `json:"dependencies"`
}

// RegistryPackageMetadata locates one package version on a registry.
type RegistryPackageMetadata struct {
	RegistryHost   string   `json:"registry_host"`
	HumanURL       *url.URL `json:"-"`
	ArtifactURL    *url.URL `json:"-"`
	IsPrimary      bool     `json:"is_primary"`
	PackageVersion string   `json:"package_version"`
}

// MarshalJSON renders the URLs as strings.
func (m RegistryPackageMetadata) MarshalJSON() ([]byte, error) {
	type plain RegistryPackageMetadata
	return json.Marshal(struct {
		plain
		HumanURL    string `json:"human_url"`
		ArtifactURL string `json:"artifact_url"`
	}{plain(m), urlString(m.HumanURL), urlString(m.ArtifactURL)})
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

// ParsePackageSpec splits "name@version" into its parts. The leading '@' of
// a scoped name is part of the name: "@types/node@20.1.0" yields
// ("@types/node", "20.1.0") and "@types/node" yields ("@types/node", "").
func ParsePackageSpec(spec string) (name, version string) {
	if i := strings.LastIndex(spec, "@"); i > 0 {
		return spec[:i], spec[i+1:]
	}
	return spec, ""
}

// FormatPackageSpec is the inverse of [ParsePackageSpec]. An empty version
// yields the bare name.
func FormatPackageSpec(name, version string) string {
	if version == "" {
		return name
	}
	return name + "@" + version
}
