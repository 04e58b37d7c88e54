package main

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Build-time variables set during release builds
var (
	// Version is the semantic version of the binary (e.g., "v1.0.0")
	// Set via -ldflags "-X main.Version=<version>" during build
	Version = "dev"

	// GitCommit is the git commit hash at build time
	// Set via -ldflags "-X main.GitCommit=<commit>" during build
	GitCommit = ""

	// BuildDate is the date/time of the build (RFC3339 format)
	// Set via -ldflags "-X main.BuildDate=<date>" during build
	BuildDate = ""
)

const shortHashLength = 7

// buildVersionString joins the version with commit and build date, taking
// them from ldflags first and from the embedded VCS stamp otherwise.
func buildVersionString() string {
	var info *debug.BuildInfo
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = bi
	}
	return formatVersion(Version, GitCommit, BuildDate, vcsSettings(info))
}

// vcsSettings extracts the vcs.* build settings, keyed without the prefix
func vcsSettings(info *debug.BuildInfo) map[string]string {
	settings := make(map[string]string)
	if info == nil {
		return settings
	}
	for _, s := range info.Settings {
		if key, ok := strings.CutPrefix(s.Key, "vcs."); ok {
			settings[key] = s.Value
		}
	}
	return settings
}

func formatVersion(version, commit, date string, vcs map[string]string) string {
	if version == "" {
		version = "dev"
	}
	parts := []string{version}

	// A dirty marker only makes sense for the VCS stamp, not for ldflags
	dirty := false
	if commit == "" {
		commit = vcs["revision"]
		if len(commit) > shortHashLength {
			commit = commit[:shortHashLength]
		}
		dirty = commit != "" && vcs["modified"] == "true"
	}
	if commit != "" {
		parts = append(parts, fmt.Sprintf("commit: %s", commit))
	}

	if date == "" {
		date = vcs["time"]
	}
	if date != "" {
		parts = append(parts, fmt.Sprintf("built: %s", date))
	}

	if dirty {
		parts = append(parts, "dirty")
	}

	return strings.Join(parts, ", ")
}
