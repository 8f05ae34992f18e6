// Package buildinfo reports how the running keychainctl binary was built.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/binbandit/keychainctl/internal/buildinfo.Version=..."
// for release binaries. Empty for local builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

const shortCommit = 12

// Info describes the running binary.
type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Date     string `json:"date,omitempty"`
	Modified bool   `json:"modified,omitempty"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

// Current merges the ldflags values with the build info embedded by the Go
// toolchain. Ldflags values win; a `go install`ed binary has only the
// embedded module version and VCS settings.
func Current() Info {
	info := Info{
		Version:  Version,
		Commit:   Commit,
		Date:     Date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if info.Version == "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = "devel"
	}
	if len(info.Commit) > shortCommit {
		info.Commit = info.Commit[:shortCommit]
	}
	return info
}

// String renders the one-line form, e.g.
//
//	keychainctl v0.3.1 (9f1c2e7a0b1c, 2026-09-30T08:12:44Z) go1.24.2 darwin/arm64
func (i Info) String() string {
	var details []string
	if i.Commit != "" {
		details = append(details, i.Commit)
	}
	if i.Date != "" {
		details = append(details, i.Date)
	}
	if i.Modified {
		details = append(details, "modified")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "keychainctl %s", i.Version)
	if len(details) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(details, ", "))
	}
	fmt.Fprintf(&b, " %s %s", i.Go, i.Platform)
	return b.String()
}
