// Package version holds the focus version string.
package version

// Version is the current focus version. Overridden at build time via
// -ldflags "-X focus/internal/version.Version=...".
var Version = "0.3.0"
