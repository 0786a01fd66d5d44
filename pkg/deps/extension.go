package deps

import "context"

// Extension is the contract between the host auditing tool and one package
// ecosystem. Every operation returns one element per registry the extension
// resolves against.
type Extension interface {
	// Name returns the fixed identifier of the ecosystem (e.g., "js").
	Name() string

	// Registries returns the host names of the registries this extension
	// resolves against.
	Registries() []string

	// IdentifyPackageDependencies resolves the transitive dependencies of a
	// package. An empty version lets the extension choose the latest one.
	IdentifyPackageDependencies(ctx context.Context, name, version string, args []string) ([]PackageDependencies, error)

	// IdentifyFileDefinedDependencies reads the dependencies recorded in the
	// manifests nearest to workingDir. No manifest yields an empty result,
	// not an error.
	IdentifyFileDefinedDependencies(ctx context.Context, workingDir string, args []string) ([]FileDefinedDependencies, error)

	// RegistriesPackageMetadata locates a package version on each registry.
	// An empty version selects the latest one.
	RegistriesPackageMetadata(ctx context.Context, name, version string) ([]RegistryPackageMetadata, error)
}
