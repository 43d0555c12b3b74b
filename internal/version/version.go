// Package version carries build identity, overridable via -ldflags.
package version

var (
	AppName = "jivebot"
	Version = "dev"
)

// String returns "name version" for startup logs.
func String() string {
	return AppName + " " + Version
}
