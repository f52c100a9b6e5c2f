// pkg/version/version.go

package version

import "fmt"

var (
	version      = "0.1-dev"
	revision     = "$Format:%h$"
	revisionDate = "$Format:%as$"
)

// Version returns the version in format - `VERSION (REVISIONDATE REVISION)`
// the values are set at build time with -ldflags -X
func Version() string {
	return fmt.Sprintf("%v (%v %v)", version, revisionDate, revision)
}

// UserAgent is sent to HTTP backends.
func UserAgent() string {
	return "AveView/" + version
}
