package matsolve

import (
	"runtime/debug"
)

// Version reports the engine version from the embedded build info: the
// module's release tag for tagged builds, the VCS revision otherwise, and
// "devel" when neither is recorded.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "devel"
}
