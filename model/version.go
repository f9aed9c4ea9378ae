// Package model defines the inventory data structures shared by the scanners,
// the orchestrators and the renderers.
package model

// VersionInfo contains build-time metadata about the application.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}
