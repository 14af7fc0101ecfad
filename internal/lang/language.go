// Package lang identifies supported source languages and wraps the
// tree-sitter parsing backend. Extractors consume only node kinds, field
// accessors, and byte ranges from the trees produced here.
package lang

import (
	"path/filepath"
	"strings"
)

// Language represents a supported programming language.
type Language string

const (
	Go         Language = "go"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Python     Language = "python"
	Rust       Language = "rust"
	Java       Language = "java"
)

// FromExtension maps a file extension (with leading dot, case-insensitive)
// to a language. Returns false for unsupported extensions.
func FromExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case ".go":
		return Go, true
	case ".js", ".mjs", ".cjs", ".jsx":
		return JavaScript, true
	case ".ts", ".mts", ".cts", ".tsx":
		return TypeScript, true
	case ".py":
		return Python, true
	case ".rs":
		return Rust, true
	case ".java":
		return Java, true
	default:
		return "", false
	}
}

// FromPath maps a file path to a language by its extension.
func FromPath(path string) (Language, bool) {
	return FromExtension(filepath.Ext(path))
}

// IsSupported reports whether path has an extension with a registered
// extractor.
func IsSupported(path string) bool {
	_, ok := FromPath(path)
	return ok
}
