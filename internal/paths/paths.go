// Package paths normalizes file paths against the project root.
//
// All cache keys use the normalized absolute form so equivalent spellings of
// the same path collide correctly; relative forms are computed only for
// display.
package paths

import (
	"path/filepath"
	"strings"
)

// Resolve converts a path to its normalized absolute form.
// Relative paths are resolved against the project root.
func Resolve(path string, projectRoot string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectRoot, path)
	}
	return filepath.Clean(path)
}

// Display converts an absolute path to a project-relative path with forward
// slashes for reports and headers. Paths outside the project root are
// returned in absolute form.
func Display(absolutePath string, projectRoot string) string {
	rel, err := filepath.Rel(filepath.Clean(projectRoot), filepath.Clean(absolutePath))
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(absolutePath)
	}
	return filepath.ToSlash(rel)
}

// IsWithinRoot checks if a path is within the project root
func IsWithinRoot(path string, projectRoot string) bool {
	rel, err := filepath.Rel(filepath.Clean(projectRoot), Resolve(path, projectRoot))
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..")
}
