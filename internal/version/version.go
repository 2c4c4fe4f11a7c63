package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Module is the Go module path reported by /version.
const Module = "babayaga"

// Set with -ldflags "-X babayaga/internal/version.Commit=...". Empty values
// fall back to the VCS stamp the go tool embeds.
var (
	Commit    string
	BuildDate string // YYYY-MM-DD (UTC)
)

// BuildInfo describes the running binary. TickRate and ReplayFormat are
// filled by the host, which knows its configuration.
type BuildInfo struct {
	Module       string `json:"module"`
	Commit       string `json:"commit"`
	BuildDate    string `json:"buildDate,omitempty"`
	Modified     bool   `json:"modified,omitempty"`
	GoVersion    string `json:"goVersion"`
	TickRate     int    `json:"tickRate,omitempty"`
	ReplayFormat uint32 `json:"replayFormat,omitempty"`
}

// Info returns the build metadata of the running binary.
func Info() BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return fromBuildInfo(bi, Commit, BuildDate)
}

func fromBuildInfo(bi *debug.BuildInfo, commit, date string) BuildInfo {
	info := BuildInfo{
		Module:    Module,
		Commit:    commit,
		BuildDate: date,
		GoVersion: runtime.Version(),
	}
	if bi == nil {
		return info
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" && len(s.Value) >= len("2006-01-02") {
				info.BuildDate = s.Value[:len("2006-01-02")]
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String is the one-line form logged at startup.
func (i BuildInfo) String() string {
	commit := coalesce(i.Commit, "unknown")
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if i.Modified {
		commit += "+dirty"
	}
	return fmt.Sprintf("%s commit[%s] built[%s] %s",
		i.Module, commit, coalesce(i.BuildDate, "unknown"), i.GoVersion)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
