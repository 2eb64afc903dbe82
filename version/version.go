package version

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Version is the service version, bumped manually at release time.
var Version = "0.2.1"

// DevVersion is the service version in development.
var DevVersion = "0.0.0"

var Mode = "prod"

func GetCurrentVersion() string {
	if Mode == "dev" {
		return DevVersion
	}
	return Version
}

// IsVersionGreaterOrEqualThan returns true if version is greater than or
// equal to target.
func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) >= 0
}
