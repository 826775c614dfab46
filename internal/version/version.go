// Package version reports what this ghl binary was built from and which
// API version it speaks.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"ghl/internal/config"
)

// Set at build time via ldflags, for example
// -ldflags "-X ghl/internal/version.Version=v1.2.0".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the version report printed by the version command.
type Info struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	Date       string `json:"date"`
	APIVersion string `json:"api_version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get assembles the report for the running binary.
func Get() Info {
	return Info{
		Version:    Version,
		Commit:     Commit,
		Date:       Date,
		APIVersion: config.DefaultAPIVersion,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders the full multi-line report.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ghl %s\n", i.Version)
	fmt.Fprintf(&b, "  commit:      %s\n", i.Commit)
	fmt.Fprintf(&b, "  built:       %s\n", i.Date)
	fmt.Fprintf(&b, "  api version: %s\n", i.APIVersion)
	fmt.Fprintf(&b, "  go:          %s %s", i.GoVersion, i.Platform)
	return b.String()
}

// Short renders just the binary name and version.
func (i Info) Short() string {
	return fmt.Sprintf("ghl %s", i.Version)
}
