package npm

import (
	"net/url"

	"github.com/mailru/easyjson/jlexer"

	"github.com/matzehuels/vouchjs/pkg/errors"
)

// Document is the part of a registry package document this module reads:
// the keys of "versions" in document order and each version's
// dist.tarball.
type Document struct {
	Name        string
	hasVersions bool
	versions    []string
	tarballs    map[string]string
}

// Versions returns the version keys in document order.
func (d *Document) Versions() []string {
	return append([]string(nil), d.versions...)
}

// LatestVersion returns the last key of the "versions" object. The registry
// lists versions in publication order, so no version comparison happens here.
func (d *Document) LatestVersion() (string, error) {
	if !d.hasVersions {
		return "", errors.New(errors.ErrCodeParseFailure, "failed to find versions section")
	}
	if len(d.versions) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "no versions published for %s", d.Name)
	}
	return d.versions[len(d.versions)-1], nil
}

// ArchiveURL returns versions[version].dist.tarball.
func (d *Document) ArchiveURL(version string) (*url.URL, error) {
	raw, ok := d.tarballs[version]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no archive url for %s@%s", d.Name, version)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeURLFailure, err, "invalid archive url %q", raw)
	}
	if !u.IsAbs() {
		return nil, errors.New(errors.ErrCodeURLFailure, "archive url %q is not absolute", raw)
	}
	return u, nil
}

// ParseDocument decodes a registry document. Bodies that are not a JSON
// object fail with PARSE_FAILURE carrying the raw body.
func ParseDocument(name string, body []byte) (*Document, error) {
	doc := &Document{Name: name, tarballs: make(map[string]string)}

	in := jlexer.Lexer{Data: body}
	if in.IsNull() || !in.IsDelim('{') || in.Error() != nil {
		return nil, parseFailure(name, body, in.Error())
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch {
		case key == "versions" && in.IsDelim('{'):
			doc.hasVersions = true
			doc.readVersions(&in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	in.Consumed()

	if err := in.Error(); err != nil {
		return nil, parseFailure(name, body, err)
	}
	return doc, nil
}

func (d *Document) readVersions(in *jlexer.Lexer) {
	seen := make(map[string]bool)
	in.Delim('{')
	for !in.IsDelim('}') {
		version := in.String()
		in.WantColon()
		if !seen[version] {
			seen[version] = true
			d.versions = append(d.versions, version)
		}
		if tarball, ok := readTarball(in); ok {
			d.tarballs[version] = tarball
		} else {
			delete(d.tarballs, version)
		}
		in.WantComma()
	}
	in.Delim('}')
}

// readTarball consumes one version object and returns its dist.tarball
// when that is a string.
func readTarball(in *jlexer.Lexer) (string, bool) {
	if in.IsNull() || !in.IsDelim('{') {
		in.SkipRecursive()
		return "", false
	}
	var tarball string
	var found bool
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if key == "dist" && in.IsDelim('{') {
			in.Delim('{')
			for !in.IsDelim('}') {
				field := in.UnsafeFieldName(false)
				in.WantColon()
				if field == "tarball" {
					tarball, found = in.Interface().(string)
				} else {
					in.SkipRecursive()
				}
				in.WantComma()
			}
			in.Delim('}')
		} else {
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	return tarball, found
}

func parseFailure(name string, body []byte, cause error) error {
	if cause == nil {
		return errors.New(errors.ErrCodeParseFailure, "registry document for %s is not a JSON object: %s", name, body)
	}
	return errors.Wrap(errors.ErrCodeParseFailure, cause, "invalid registry document for %s: %s", name, body)
}
