// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import (
	"github.com/maloquacious/semver"
)

// version is bumped whenever the rendered text can change for the same
// source and options. Settings carries the core version so that outputs
// from an older compiler are rebuilt.
var version = semver.Version{
	Minor: 1,
	Build: semver.Commit(),
}

// Version returns the compiler version, including the build commit.
func Version() semver.Version {
	return version
}
