// Package version reports the faber build.
//
// Version, commit and build time are stamped with -ldflags and fall back to
// the module build info embedded by the Go toolchain:
//
//	go build -ldflags "-X github.com/kbukum/faber/version.Version=1.0.0" ./cmd/faber
package version
