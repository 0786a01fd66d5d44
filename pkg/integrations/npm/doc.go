// Package npm resolves package versions against an npm registry.
//
// # Overview
//
// A [Client] fetches the registry document for a package
// (https://registry.npmjs.com/<name> by default) and answers three
// questions about it:
//
//   - which version is the latest ([Document.LatestVersion])
//   - where the version's archive lives ([Document.ArchiveURL])
//   - which web page describes the version ([Client.HumanURL])
//
// # Usage
//
//	client := npm.NewClient(hc, npm.Options{Host: "npmjs.com"})
//
//	doc, err := client.FetchDocument(ctx, "left-pad", false)
//	if err != nil {
//	    return err
//	}
//	latest, err := doc.LatestVersion()
//	archive, err := doc.ArchiveURL(latest)
//
// # Version Selection
//
// The latest version is the last key of the document's "versions" object.
// The registry lists versions in publication order, so the decoder keeps
// document order instead of comparing version strings. A requested version
// is used verbatim; no range resolution takes place.
//
// # URL Templates
//
// [Options] holds the API and human URL templates. Each may reference
// {host}, {name} and {version}; the host is a construction-time value so
// mirrors and private registries work without code changes.
package npm
