// Package pkg provides the libraries behind vouch-js, a dependency
// extension for the npm ecosystem.
//
// # Overview
//
// An extension answers three questions about JavaScript packages:
//
//  1. Which packages does a published package pull in? npm installs it into
//     a scratch lockfile and the lockfile is read back.
//  2. Which dependencies does a project's package-lock.json record? The
//     nearest lockfile above a working directory is parsed.
//  3. Where does a package version live on the registry? The registry
//     document supplies the tarball URL; the package page is built from a
//     template.
//
// # Layout
//
//   - [deps] - Result types, versions with a missing marker, manifest lookup
//   - [deps/javascript] - The npm extension: lockfile walk, npm subprocess
//   - [integrations] - Shared HTTP client with caching and retries
//   - [integrations/npm] - Registry document fetch and decode
//   - [cache] - File, Redis and null caches for registry documents
//   - [config] - TOML configuration
//   - [observability] - Hooks and OpenTelemetry tracing
//   - [errors] - Coded errors and input validation
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/vouchjs/pkg/deps/javascript"
//	)
//
//	ext := javascript.New()
//	meta, err := ext.RegistriesPackageMetadata(ctx, "left-pad", "")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(meta[0].ArtifactURL)
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/vouchjs/pkg/deps
// [deps/javascript]: https://pkg.go.dev/github.com/matzehuels/vouchjs/pkg/deps/javascript
// [integrations]: https://pkg.go.dev/github.com/matzehuels/vouchjs/pkg/integrations
// [integrations/npm]: https://pkg.go.dev/github.com/matzehuels/vouchjs/pkg/integrations/npm
// [cache]: https://pkg.go.dev/github.com/matzehuels/vouchjs/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/vouchjs/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/vouchjs/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/vouchjs/pkg/errors
package pkg
