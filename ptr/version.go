package ptr

import "golang.org/x/mod/semver"

// Version information for the pointer handle runtime.
const (
	// Version is the current version of the handle runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the handle package.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Model is the memory management model in use.
	Model string

	// LeakTracking indicates whether allocation tracking is active.
	LeakTracking bool
}

// GetInfo returns information about the handle runtime.
//
// Example:
//
//	info := ptr.GetInfo()
//	fmt.Printf("uniqueptr %s (%s)\n", info.Version, info.Model)
func GetInfo() Info {
	return Info{
		Version:      Version,
		Model:        "manual handles over a collected heap",
		LeakTracking: LeakTrackingEnabled(),
	}
}

// Compatible reports whether a caller built against the given version can
// use this runtime: the major versions must match and the runtime must
// not be older than what the caller was built against. Malformed versions
// are never compatible.
func Compatible(built string) bool {
	want := canonical(built)
	have := canonical(Version)
	if !semver.IsValid(want) || !semver.IsValid(have) {
		return false
	}
	if semver.Major(want) != semver.Major(have) {
		return false
	}
	return semver.Compare(have, want) >= 0
}

// canonical normalizes a version string to the "vMAJOR.MINOR.PATCH" form
// the semver package expects.
func canonical(v string) string {
	if v == "" {
		return ""
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	return semver.Canonical(v)
}
