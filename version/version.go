package version

import "runtime/debug"

// Version can be set at build time, e.g.
// go build -ldflags "-X github.com/vsariola/polyvoice/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short vcs revision of the build, suffixed with -dirty when the
// working tree had local modifications.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	modified := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		return revision + "-dirty"
	}
	return revision
}()

// VersionOrHash is Version when it was set at build time, Hash otherwise.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "(devel)"
}()
