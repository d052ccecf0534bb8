package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// releaseTagPattern is the literal trigger pattern. Only three dot-separated
// digit sequences prefixed with "v" activate the publisher: no pre-release
// suffix, no build metadata, no bare "1.2.3". Leading zeros are accepted
// because the pattern matches digit sequences, not canonical semver.
var releaseTagPattern = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)

// ReleaseTag is a tag name that activates the publish pipeline.
type ReleaseTag struct {
	Name  string // Tag name as pushed (e.g. "v1.2.3")
	Major int
	Minor int
	Patch int
}

// IsReleaseTag reports whether name matches the release trigger pattern.
func IsReleaseTag(name string) bool {
	return releaseTagPattern.MatchString(name)
}

// ParseReleaseTag parses a tag name into a ReleaseTag. It returns an error
// for any name that does not match the trigger pattern.
func ParseReleaseTag(name string) (*ReleaseTag, error) {
	m := releaseTagPattern.FindStringSubmatch(name)
	if m == nil {
		return nil, goerr.New("tag does not match release pattern", goerr.V("tag", name))
	}

	tag := &ReleaseTag{Name: name}
	for i, dst := range []*int{&tag.Major, &tag.Minor, &tag.Patch} {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return nil, goerr.Wrap(err, "invalid version component", goerr.V("tag", name))
		}
		*dst = n
	}

	return tag, nil
}

// Version returns the version string without the "v" prefix, digits as
// written in the tag.
func (t *ReleaseTag) Version() string {
	return strings.TrimPrefix(t.Name, "v")
}
