// Package deps defines the data model and host contract shared by every
// ecosystem extension.
//
// # Overview
//
// An extension answers three questions for the host auditing tool:
//
//   - What does package X at version V depend on? ([Extension.IdentifyPackageDependencies])
//   - What does the project rooted near directory D depend on? ([Extension.IdentifyFileDefinedDependencies])
//   - Where does package X at version V live on its registry? ([Extension.RegistriesPackageMetadata])
//
// Answers are expressed with [Dependency] records. A record pairs a package
// name with a [Version] that is either a concrete version string or the
// missing-version marker; a lockfile entry without a resolved version (a
// workspace link, for instance) is data, not a failure.
//
// # Ordering
//
// Dependency lists are sets emitted in ascending (name, version) order.
// Resolved versions compare as plain strings and sort before the
// missing-version marker. No semantic version comparison happens anywhere
// in this module.
//
// # Manifests
//
// [Locate] searches upward from a directory for known manifest files and
// stops at the first directory containing at least one. Each [ManifestKind]
// is handled by a [ManifestParser] supplied by the ecosystem package, see
// [github.com/matzehuels/vouchjs/pkg/deps/javascript].
package deps
