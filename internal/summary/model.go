// Package summary defines the canonical, language-agnostic model of a source
// file's public surface, and renders it back into deterministic,
// language-idiomatic display text.
package summary

// Model is the intermediate representation of a file's public surface.
// Extractors populate it; Render turns it into display text.
type Model struct {
	// Purpose is the file/module-level doc, from the leading comment block
	// or module docstring.
	Purpose string

	Structs     []Struct
	Traits      []Trait
	Enums       []Enum
	Functions   []Function
	TypeAliases []TypeAlias
	Constants   []Constant

	// Reexports holds opaque re-export/namespace/import-export statements,
	// kept verbatim.
	Reexports []string
}

// Function is a standalone function or a method.
type Function struct {
	Name string
	Doc  string
	// Signature is the rendered signature including visibility, modifiers,
	// generics, parameters, and return type per language.
	Signature string
	Unsafe    bool
	Async     bool
	Public    bool
}

// Field is a public data member of a container.
type Field struct {
	Name   string
	Type   string
	Doc    string
	Public bool
}

// Struct is a class/struct/record-equivalent container.
type Struct struct {
	Name string
	Doc  string
	// Generics is the raw generic parameter clause, e.g. "[T any]" or "<T>".
	Generics string
	// Bounds is the raw supertype clause (extends/implements/base list),
	// empty for languages without one.
	Bounds  string
	Fields  []Field
	Methods []Function
	// Derives holds attribute/decorator lines and keyword modifiers,
	// re-emitted verbatim.
	Derives []string
}

// Trait is an interface/protocol-equivalent container.
type Trait struct {
	Name     string
	Doc      string
	Generics string
	// Bounds is the raw supertype clause, e.g. ": Send + Sync" or
	// "extends Base".
	Bounds string
	// Fields holds property/constant members for languages whose
	// interfaces carry them (TypeScript properties, Java constants).
	Fields  []Field
	Methods []Function
}

// Enum is an enumeration container.
type Enum struct {
	Name     string
	Doc      string
	Generics string
	// Variants may embed associated-data syntax, kept verbatim.
	Variants []string
	// Methods holds inherent behavior attached to the enum (Rust impl
	// blocks, Java enum methods).
	Methods []Function
	Derives []string
}

// TypeAlias is a named type abbreviation.
type TypeAlias struct {
	Name string
	Doc  string
	// Definition is the raw right-hand side, pre-rendered.
	Definition string
}

// Constant is a file-level constant or static.
type Constant struct {
	Name   string
	Doc    string
	Type   string
	Static bool
}

// IsEmpty reports whether the model carries no public surface at all.
func (m *Model) IsEmpty() bool {
	return m.Purpose == "" &&
		len(m.Structs) == 0 &&
		len(m.Traits) == 0 &&
		len(m.Enums) == 0 &&
		len(m.Functions) == 0 &&
		len(m.TypeAliases) == 0 &&
		len(m.Constants) == 0 &&
		len(m.Reexports) == 0
}
