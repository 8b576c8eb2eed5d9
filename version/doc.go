// Package version reports the build version of the consolectl binary.
//
// Values are set at link time, falling back to the module's build info:
//
//	go build -ldflags "-X github.com/kbukum/consoleapi/version.Version=1.0.0"
package version
