package deps

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/matzehuels/vouchjs/pkg/errors"
)

// ErrMissingVersion is reported by [Version.Get] for records whose version
// could not be determined.
var ErrMissingVersion = errors.New(errors.ErrCodeMissingVersion, "missing version")

// Version is either a concrete version string or the missing-version marker.
// The zero value is the missing-version marker. Versions are comparable and
// can be used as map keys.
type Version struct {
	value    string
	resolved bool
}

// NewVersion returns a resolved version. Use [ParseVersion] when the input
// may be empty.
func NewVersion(v string) Version {
	return Version{value: v, resolved: true}
}

// MissingVersion returns the missing-version marker.
func MissingVersion() Version {
	return Version{}
}

// ParseVersion maps an empty string to the missing-version marker and any
// other string to a resolved version.
func ParseVersion(v string) Version {
	if v == "" {
		return MissingVersion()
	}
	return NewVersion(v)
}

// Get returns the version string, or [ErrMissingVersion].
func (v Version) Get() (string, error) {
	if !v.resolved {
		return "", ErrMissingVersion
	}
	return v.value, nil
}

// IsMissing reports whether v is the missing-version marker.
func (v Version) IsMissing() bool { return !v.resolved }

// String returns the version string, or "<missing>" for the marker.
func (v Version) String() string {
	if !v.resolved {
		return "<missing>"
	}
	return v.value
}

// Compare orders resolved versions by byte-wise string comparison, before
// the missing-version marker.
func (v Version) Compare(o Version) int {
	switch {
	case v.resolved && o.resolved:
		return strings.Compare(v.value, o.value)
	case v.resolved:
		return -1
	case o.resolved:
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes a resolved version as a string and the marker as null.
func (v Version) MarshalJSON() ([]byte, error) {
	if !v.resolved {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

// UnmarshalJSON accepts a string or null. Empty strings decode to the marker.
func (v *Version) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = MissingVersion()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(errors.ErrCodeParseFailure, err, "version must be a string or null")
	}
	*v = ParseVersion(s)
	return nil
}
