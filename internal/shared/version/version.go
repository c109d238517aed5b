// Package version reports the build version of the binary.
package version

import (
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at link time with -ldflags "-X warden/internal/shared/version.Version=1.2.3".
var (
	Version = "dev"
	Commit  = ""
)

// Normalize ensures version string has "v" prefix for semver compatibility.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Resolve picks the linked version, falling back to the module version
// recorded in the build info. Anything that is not semver reads as "dev".
func Resolve(linked string, info *debug.BuildInfo) string {
	if v := Normalize(linked); semver.IsValid(v) {
		return semver.Canonical(v)
	}
	if info != nil {
		if v := Normalize(info.Main.Version); semver.IsValid(v) {
			return v
		}
	}
	return "dev"
}

// String returns the version and, when known, the commit.
func String() string {
	info, _ := debug.ReadBuildInfo()
	v := Resolve(Version, info)
	if Commit != "" {
		return v + " (" + Commit + ")"
	}
	return v
}
