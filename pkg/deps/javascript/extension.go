package javascript

import (
	"context"
	"time"

	"github.com/matzehuels/vouchjs/pkg/deps"
	"github.com/matzehuels/vouchjs/pkg/errors"
	"github.com/matzehuels/vouchjs/pkg/integrations/npm"
	"github.com/matzehuels/vouchjs/pkg/observability"
)

// Name identifies this extension to the host.
const Name = "js"

// Operation names reported to [observability.ExtensionHooks].
const (
	OpPackageDependencies       = "identify_package_dependencies"
	OpFileDefinedDependencies   = "identify_file_defined_dependencies"
	OpRegistriesPackageMetadata = "registries_package_metadata"
)

// Extension implements [deps.Extension] for the npm ecosystem.
type Extension struct {
	registry     *npm.Client
	materializer LockfileMaterializer
	parsers      []deps.ManifestParser
	logf         func(string, ...any)
}

// Option configures an Extension.
type Option func(*Extension)

// WithRegistry sets the registry client. The default targets npmjs.com
// without caching.
func WithRegistry(c *npm.Client) Option {
	return func(e *Extension) { e.registry = c }
}

// WithMaterializer sets how lockfiles are produced for operation A.
// The default runs npm.
func WithMaterializer(m LockfileMaterializer) Option {
	return func(e *Extension) { e.materializer = m }
}

// WithLogger sets a debug callback, e.g. (*log.Logger).Debugf.
func WithLogger(fn func(string, ...any)) Option {
	return func(e *Extension) { e.logf = fn }
}

// New creates an Extension.
func New(opts ...Option) *Extension {
	e := &Extension{
		parsers: []deps.ManifestParser{&PackageLock{}},
		logf:    func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = npm.NewClient(nil, npm.Options{})
	}
	if e.materializer == nil {
		e.materializer = &NpmMaterializer{}
	}
	if m, ok := e.materializer.(*NpmMaterializer); ok && m.Logger == nil {
		m.Logger = e.logf
	}
	return e
}

// Name returns "js".
func (e *Extension) Name() string { return Name }

// Registries returns the configured registry host.
func (e *Extension) Registries() []string { return []string{e.registry.Host()} }

// IdentifyPackageDependencies installs name (at version, or the registry's
// choice when version is empty) into a scratch lockfile and returns the
// packages it pulls in, excluding dev dependencies.
//
// Without a version, the package's own version is the greatest version
// recorded for it in the lockfile, compared as strings. Records that share
// the package's name or its version are left out.
func (e *Extension) IdentifyPackageDependencies(ctx context.Context, name, version string, args []string) (result []deps.PackageDependencies, err error) {
	done := e.track(ctx, OpPackageDependencies, name)
	defer func() {
		n := 0
		if len(result) > 0 {
			n = len(result[0].Dependencies)
		}
		done(n, err)
	}()

	if err := errors.ValidatePackageName(name); err != nil {
		return nil, err
	}

	data, err := e.materializer.Materialize(ctx, deps.FormatPackageSpec(name, version))
	if err != nil {
		return nil, err
	}
	records, err := ExtractLockfile(data, false)
	if err != nil {
		return nil, err
	}

	target, err := targetVersion(name, version, records)
	if err != nil {
		return nil, err
	}

	filtered := make([]deps.Dependency, 0, len(records))
	for _, d := range records {
		if d.Name != name && d.Version != target {
			filtered = append(filtered, d)
		}
	}
	e.logf("%s@%s: %d dependencies", name, target, len(filtered))

	return []deps.PackageDependencies{{
		PackageVersion: target,
		RegistryHost:   e.registry.Host(),
		Dependencies:   filtered,
	}}, nil
}

// targetVersion returns the supplied version, or the greatest version among
// records named like the package. records must be sorted.
func targetVersion(name, version string, records []deps.Dependency) (deps.Version, error) {
	if version != "" {
		return deps.NewVersion(version), nil
	}
	found := false
	var best deps.Version
	for _, d := range records {
		if d.Name == name {
			best, found = d.Version, true
		}
	}
	if !found {
		return deps.Version{}, errors.New(errors.ErrCodeNotFound, "failed to find target package %s in dependencies list", name)
	}
	return best, nil
}

// IdentifyFileDefinedDependencies parses the manifests nearest to
// workingDir, which must be absolute. "--dev" in args includes dev
// dependencies. No manifest yields an empty result.
func (e *Extension) IdentifyFileDefinedDependencies(ctx context.Context, workingDir string, args []string) (result []deps.FileDefinedDependencies, err error) {
	done := e.track(ctx, OpFileDefinedDependencies, workingDir)
	defer func() { done(len(result), err) }()

	opts := deps.ParseExtensionArgs(args)
	opts.Logger = e.logf

	manifests, ok, err := deps.Locate(workingDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		e.logf("no manifest found from %s", workingDir)
		return []deps.FileDefinedDependencies{}, nil
	}

	result = make([]deps.FileDefinedDependencies, 0, len(manifests))
	for _, m := range manifests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parser, err := deps.DetectManifest(m.Path, e.parsers...)
		if err != nil {
			return nil, err
		}
		e.logf("found %s at %s", m.Kind, m.Path)
		ds, err := parser.Parse(m.Path, opts)
		if err != nil {
			return nil, err
		}
		result = append(result, deps.FileDefinedDependencies{
			Path:         m.Path,
			RegistryHost: e.registry.Host(),
			Dependencies: ds,
		})
	}
	return result, nil
}

// RegistriesPackageMetadata locates name@version on the registry. An empty
// version selects the latest published one.
func (e *Extension) RegistriesPackageMetadata(ctx context.Context, name, version string) (result []deps.RegistryPackageMetadata, err error) {
	done := e.track(ctx, OpRegistriesPackageMetadata, name)
	defer func() { done(len(result), err) }()

	if err := errors.ValidatePackageName(name); err != nil {
		return nil, err
	}

	var doc *npm.Document
	if version == "" {
		if doc, err = e.registry.FetchDocument(ctx, name, false); err != nil {
			return nil, err
		}
		if version, err = doc.LatestVersion(); err != nil {
			return nil, err
		}
	}

	human, err := e.registry.HumanURL(name, version)
	if err != nil {
		return nil, err
	}

	if doc == nil {
		e.logf("fetching %s", e.registry.DocumentURL(name))
		if doc, err = e.registry.FetchDocument(ctx, name, false); err != nil {
			return nil, err
		}
	}
	archive, err := doc.ArchiveURL(version)
	if err != nil {
		return nil, err
	}

	return []deps.RegistryPackageMetadata{{
		RegistryHost:   e.registry.Host(),
		HumanURL:       human,
		ArtifactURL:    archive,
		IsPrimary:      true,
		PackageVersion: version,
	}}, nil
}

func (e *Extension) track(ctx context.Context, op, target string) func(int, error) {
	hooks := observability.Extension()
	hooks.OnOperationStart(ctx, op, target)
	start := time.Now()
	return func(n int, err error) {
		hooks.OnOperationComplete(ctx, op, target, n, time.Since(start), err)
	}
}

var _ deps.Extension = (*Extension)(nil)
