package utils

import (
	"runtime/debug"
)

const (
	unknownVersion       = "unknown"
	develVersion         = "(devel)"
	revisionSettingKey   = "vcs.revision"
	modifiedSettingKey   = "vcs.modified"
	shortRevisionLength  = 12
	modifiedRevisionMark = "-dirty"
)

// Version is injected at build time with -ldflags "-X github.com/temirov/unmix/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion prefers the linker-injected Version, then the module version recorded in
// the build info, then the VCS revision the binary was built from.
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	return revisionVersion(buildInfo.Settings)
}

// revisionVersion formats the short VCS revision, marking builds from a modified tree.
func revisionVersion(settings []debug.BuildSetting) string {
	revision := ""
	modified := false
	for _, setting := range settings {
		switch setting.Key {
		case revisionSettingKey:
			revision = setting.Value
		case modifiedSettingKey:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if modified {
		revision += modifiedRevisionMark
	}
	return revision
}
