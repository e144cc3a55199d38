// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     version
// Description: Build version information
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Build information, set via -ldflags "-X github.com/msto63/glottony/pkg/core/version.Version=..."
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Language is the version of the glottony grammar accepted by the parser
const Language = "1.0"

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Language  string `json:"language" yaml:"language"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Version,
		Language:  Language,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line summary
func (i Info) String() string {
	commit := i.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("glot %s (language %s, commit %s, built %s, %s %s)",
		i.Version, i.Language, commit, i.BuildTime, i.GoVersion, i.Platform)
}
