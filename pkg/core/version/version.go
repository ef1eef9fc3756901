// ============================================================================
// exprfront - Expression language front end
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and the services
// Author:      msto63
// Created:     2025-06-02
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all exprfront components
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Language     = "0.1.0"
	ParseService = "0.1.0"
	REPL         = "0.1.0"
)

// Set at build time with -ldflags "-X github.com/msto63/exprfront/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "language", "exprlang":
		return Language
	case "parsesvc", "parse-service":
		return ParseService
	case "repl":
		return REPL
	default:
		return Platform
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Language  string `json:"language" yaml:"language"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{
		Version:   Platform,
		Language:  Language,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("exprfront %s (language %s, commit %s, built %s, %s %s)",
		i.Version, i.Language, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
