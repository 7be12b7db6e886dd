package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// appBuild is overridden at link time:
//
//	-ldflags "-X github.com/thanhnp/psbt-apis/pkg/semver.appBuild=1.2.0+abc123"
var appBuild = "0.1.0-dev"

// Version represents a semantic version
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

var semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// Parse parses a semantic version string, with or without a leading "v"
func Parse(version string) (*Version, error) {
	matches := semverRegex.FindStringSubmatch(strings.TrimSpace(version))
	if matches == nil {
		return nil, fmt.Errorf("invalid semantic version: %q", version)
	}

	v := &Version{Prerelease: matches[4], Build: matches[5]}
	for i, dst := range []*int{&v.Major, &v.Minor, &v.Patch} {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid semantic version: %q: %w", version, err)
		}
		*dst = n
	}
	return v, nil
}

// String returns the string representation of the version
func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// Current returns the version the binary was built with
func Current() *Version {
	v, err := Parse(appBuild)
	if err != nil {
		return &Version{Prerelease: "unknown"}
	}
	return v
}

// AppVersion returns Current as a string
func AppVersion() string {
	return Current().String()
}
