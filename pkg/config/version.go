// Package config holds the build metadata stamped into the innohub binaries.
package config

import (
	"fmt"
	"runtime"
)

// Name is the product name used in version output and outbound requests.
const Name = "innohub"

// Set with -ldflags "-X github.com/good-yellow-bee/innohub/pkg/config.Version=v1.2.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildInfo is the JSON form of the build metadata.
type BuildInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns the metadata of the running binary.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// VersionString is the one-line form printed by the version commands.
func VersionString() string {
	return fmt.Sprintf("%s %s (%s) built at %s with %s", Name, Version, Commit, BuildTime, runtime.Version())
}

// UserAgent identifies outbound calls, e.g. "innohub/v1.2.0".
func UserAgent() string {
	return Name + "/" + Version
}
