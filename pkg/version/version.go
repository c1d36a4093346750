// pkg/version/version.go

package version

import (
	"fmt"
	"runtime/debug"
)

var (
	version      = "0.1-dev"
	revision     = "$Format:%h$"
	revisionDate = "$Format:%as$"
)

// Version returns the version in format - `VERSION (REVISIONDATE REVISION)`
// value is assigned in Makefile, or taken from the build info for `go install`
func Version() string {
	rev, date := revision, revisionDate
	if info, ok := debug.ReadBuildInfo(); ok && rev[0] == '$' {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if len(s.Value) > 7 {
					rev = s.Value[:7]
				} else {
					rev = s.Value
				}
			case "vcs.time":
				if len(s.Value) >= 10 {
					date = s.Value[:10]
				}
			}
		}
	}
	return fmt.Sprintf("%v (%v %v)", version, date, rev)
}
