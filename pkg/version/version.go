package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const Name = "gridcards"

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "VERSION_PLACEHOLDER"
	CommitSHA = "COMMIT_PLACEHOLDER"
)

const (
	versionPlaceholder = "VERSION_PLACEHOLDER"
	commitPlaceholder  = "COMMIT_PLACEHOLDER"
)

// Info describes the running binary.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
	Platform  string
}

// Get returns the injected build values. Binaries built with go install
// carry no injected values, so the module version and VCS stamp are used.
func Get() Info {
	build, _ := debug.ReadBuildInfo()
	return resolve(Version, CommitSHA, build)
}

func resolve(version, commit string, build *debug.BuildInfo) Info {
	info := Info{
		Version:   version,
		Commit:    commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if version == versionPlaceholder {
		info.Version = "dev"
		if build != nil && build.Main.Version != "" && build.Main.Version != "(devel)" {
			info.Version = build.Main.Version
		}
	}

	if commit == commitPlaceholder {
		info.Commit = "unknown"
		if build != nil {
			var revision, modified string
			for _, s := range build.Settings {
				switch s.Key {
				case "vcs.revision":
					revision = s.Value
				case "vcs.modified":
					modified = s.Value
				}
			}
			if revision != "" {
				info.Commit = revision
				if modified == "true" {
					info.Commit += "-dirty"
				}
			}
		}
	}

	return info
}

func GetVersionInfo() string {
	return Name + " " + Get().Version
}

func GetDetailedVersionInfo() string {
	return Get().String()
}

func (i Info) String() string {
	return fmt.Sprintf("%s\nVersion:  %s\nCommit:   %s\nGo:       %s\nPlatform: %s\n",
		Name, i.Version, i.Commit, i.GoVersion, i.Platform)
}
