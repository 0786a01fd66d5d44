// Package javascript implements the npm ecosystem extension.
//
// # Overview
//
// [Extension] satisfies [deps.Extension] with three operations:
//
//   - IdentifyPackageDependencies: install a package into a scratch
//     lockfile with npm and flatten it
//   - IdentifyFileDefinedDependencies: flatten the package-lock.json
//     nearest to a working directory
//   - RegistriesPackageMetadata: find a version's page and tarball on the
//     registry via [npm.Client]
//
// # Lockfiles
//
// [ExtractLockfile] reads the nested "dependencies" tree written by npm 5
// through 8 (lockfileVersion 1 and 2). Every entry becomes one record; dev
// entries are dropped unless requested, but their children are still read.
// Entries without a version keep a missing-version marker instead of
// failing the parse.
//
// # Materializing
//
// Operation A needs a lockfile for a package that is not installed anywhere.
// [NpmMaterializer] runs
//
//	npm install <name>[@<version>] --package-lock-only
//
// in a fresh temporary directory and removes it afterwards. Tests and
// embedders can swap in any [LockfileMaterializer].
//
// [deps.Extension]: github.com/matzehuels/vouchjs/pkg/deps.Extension
// [npm.Client]: github.com/matzehuels/vouchjs/pkg/integrations/npm.Client
package javascript
