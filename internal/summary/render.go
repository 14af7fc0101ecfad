package summary

import (
	"strings"

	"focus/internal/lang"
)

// Render converts a model into deterministic display text for the given
// language. It is a pure function: identical models render to byte-identical
// text. Section order is fixed: purpose, re-exports, constants, type aliases,
// enums, traits/interfaces, structs/classes (fields before methods), then
// standalone functions. Multi-line docs are reduced to their first line.
func Render(m *Model, language lang.Language) string {
	switch language {
	case lang.Go:
		return renderGo(m)
	case lang.Python:
		return renderPython(m)
	case lang.Rust:
		return renderRust(m)
	case lang.Java:
		return renderJava(m)
	default:
		// JavaScript and TypeScript share a renderer.
		return renderTypeScript(m)
	}
}

// firstLine reduces a doc comment to its first non-empty line.
func firstLine(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

// joinBlocks joins non-empty blocks with blank lines and a trailing newline.
func joinBlocks(blocks []string) string {
	var kept []string
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			kept = append(kept, strings.TrimRight(b, "\n"))
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "\n\n") + "\n"
}

// splitModifiers separates attribute-like derive entries (decorator or
// attribute lines, emitted verbatim above the header) from plain keyword
// modifiers (joined inline before the container keyword).
func splitModifiers(derives []string) (attrs []string, keywords []string) {
	for _, d := range derives {
		if strings.HasPrefix(d, "@") || strings.HasPrefix(d, "#") {
			attrs = append(attrs, d)
		} else {
			keywords = append(keywords, d)
		}
	}
	return attrs, keywords
}

func docLine(b *strings.Builder, doc, prefix, indent string) {
	if line := firstLine(doc); line != "" {
		b.WriteString(indent)
		b.WriteString(prefix)
		b.WriteString(" ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// --- Go ---

func renderGo(m *Model) string {
	var blocks []string

	if m.Purpose != "" {
		blocks = append(blocks, "// "+firstLine(m.Purpose))
	}
	if len(m.Reexports) > 0 {
		blocks = append(blocks, strings.Join(m.Reexports, "\n"))
	}

	for _, c := range m.Constants {
		var b strings.Builder
		docLine(&b, c.Doc, "//", "")
		b.WriteString("const " + c.Name)
		if c.Type != "" {
			b.WriteString(" " + c.Type)
		}
		blocks = append(blocks, b.String())
	}

	for _, a := range m.TypeAliases {
		var b strings.Builder
		docLine(&b, a.Doc, "//", "")
		b.WriteString("type " + a.Name + " " + a.Definition)
		blocks = append(blocks, b.String())
	}

	for _, t := range m.Traits {
		var b strings.Builder
		docLine(&b, t.Doc, "//", "")
		header := "type " + t.Name + t.Generics + " interface"
		if len(t.Methods) == 0 {
			b.WriteString(header + " {}")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + " {\n")
		for _, fn := range t.Methods {
			docLine(&b, fn.Doc, "//", "\t")
			b.WriteString("\t" + fn.Signature + "\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, s := range m.Structs {
		var b strings.Builder
		docLine(&b, s.Doc, "//", "")
		header := "type " + s.Name + s.Generics + " struct"
		if len(s.Fields) == 0 {
			b.WriteString(header + " {}")
		} else {
			b.WriteString(header + " {\n")
			for _, f := range s.Fields {
				docLine(&b, f.Doc, "//", "\t")
				b.WriteString("\t" + f.Name)
				if f.Type != "" {
					b.WriteString(" " + f.Type)
				}
				b.WriteString("\n")
			}
			b.WriteString("}")
		}
		// Methods follow the type declaration, Go style.
		for _, fn := range s.Methods {
			b.WriteString("\n\n")
			if line := firstLine(fn.Doc); line != "" {
				b.WriteString("// " + line + "\n")
			}
			b.WriteString(fn.Signature)
		}
		blocks = append(blocks, b.String())
	}

	for _, fn := range m.Functions {
		var b strings.Builder
		docLine(&b, fn.Doc, "//", "")
		b.WriteString(fn.Signature)
		blocks = append(blocks, b.String())
	}

	return joinBlocks(blocks)
}

// --- TypeScript / JavaScript ---

func renderTypeScript(m *Model) string {
	var blocks []string

	if m.Purpose != "" {
		blocks = append(blocks, "// "+firstLine(m.Purpose))
	}
	if len(m.Reexports) > 0 {
		blocks = append(blocks, strings.Join(m.Reexports, "\n"))
	}

	for _, c := range m.Constants {
		var b strings.Builder
		docLine(&b, c.Doc, "//", "")
		b.WriteString("export const " + c.Name)
		if c.Type != "" {
			b.WriteString(": " + c.Type)
		}
		blocks = append(blocks, b.String())
	}

	for _, a := range m.TypeAliases {
		var b strings.Builder
		docLine(&b, a.Doc, "//", "")
		b.WriteString("export type " + a.Name + " = " + a.Definition)
		blocks = append(blocks, b.String())
	}

	for _, e := range m.Enums {
		var b strings.Builder
		docLine(&b, e.Doc, "//", "")
		header := "export enum " + e.Name
		if len(e.Variants) == 0 {
			b.WriteString(header + " {}")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + " {\n")
		for _, v := range e.Variants {
			b.WriteString("    " + v + ",\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, t := range m.Traits {
		var b strings.Builder
		docLine(&b, t.Doc, "//", "")
		header := "export interface " + t.Name + t.Generics
		if t.Bounds != "" {
			header += " " + t.Bounds
		}
		if len(t.Fields) == 0 && len(t.Methods) == 0 {
			b.WriteString(header + " {}")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + " {\n")
		for _, f := range t.Fields {
			docLine(&b, f.Doc, "//", "    ")
			b.WriteString("    " + f.Name)
			if f.Type != "" {
				b.WriteString(": " + f.Type)
			}
			b.WriteString("\n")
		}
		for _, fn := range t.Methods {
			docLine(&b, fn.Doc, "//", "    ")
			b.WriteString("    " + fn.Signature + "\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, s := range m.Structs {
		var b strings.Builder
		docLine(&b, s.Doc, "//", "")
		attrs, keywords := splitModifiers(s.Derives)
		for _, a := range attrs {
			b.WriteString(a + "\n")
		}
		header := "export "
		if len(keywords) > 0 {
			header += strings.Join(keywords, " ") + " "
		}
		header += "class " + s.Name + s.Generics
		if s.Bounds != "" {
			header += " " + s.Bounds
		}
		if len(s.Fields) == 0 && len(s.Methods) == 0 {
			b.WriteString(header + " {}")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + " {\n")
		for _, f := range s.Fields {
			docLine(&b, f.Doc, "//", "    ")
			b.WriteString("    " + f.Name)
			if f.Type != "" {
				b.WriteString(": " + f.Type)
			}
			b.WriteString("\n")
		}
		for _, fn := range s.Methods {
			docLine(&b, fn.Doc, "//", "    ")
			b.WriteString("    " + fn.Signature + "\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, fn := range m.Functions {
		var b strings.Builder
		docLine(&b, fn.Doc, "//", "")
		b.WriteString(fn.Signature)
		blocks = append(blocks, b.String())
	}

	return joinBlocks(blocks)
}

// --- Python ---

func renderPython(m *Model) string {
	var blocks []string

	if m.Purpose != "" {
		blocks = append(blocks, `"""`+firstLine(m.Purpose)+`"""`)
	}
	if len(m.Reexports) > 0 {
		blocks = append(blocks, strings.Join(m.Reexports, "\n"))
	}

	for _, c := range m.Constants {
		var b strings.Builder
		docLine(&b, c.Doc, "#", "")
		b.WriteString(c.Name)
		if c.Type != "" {
			b.WriteString(": " + c.Type)
		}
		blocks = append(blocks, b.String())
	}

	for _, a := range m.TypeAliases {
		var b strings.Builder
		docLine(&b, a.Doc, "#", "")
		b.WriteString(a.Name + " = " + a.Definition)
		blocks = append(blocks, b.String())
	}

	for _, s := range m.Structs {
		var b strings.Builder
		docLine(&b, s.Doc, "#", "")
		attrs, _ := splitModifiers(s.Derives)
		for _, a := range attrs {
			b.WriteString(a + "\n")
		}
		header := "class " + s.Name + s.Generics + s.Bounds
		if len(s.Fields) == 0 && len(s.Methods) == 0 {
			b.WriteString(header + ": ...")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + ":\n")
		for _, f := range s.Fields {
			docLine(&b, f.Doc, "#", "    ")
			b.WriteString("    " + f.Name)
			if f.Type != "" {
				b.WriteString(": " + f.Type)
			}
			b.WriteString("\n")
		}
		for _, fn := range s.Methods {
			docLine(&b, fn.Doc, "#", "    ")
			b.WriteString("    " + fn.Signature + ": ...\n")
		}
		b.WriteString("")
		blocks = append(blocks, strings.TrimRight(b.String(), "\n"))
	}

	for _, fn := range m.Functions {
		var b strings.Builder
		docLine(&b, fn.Doc, "#", "")
		b.WriteString(fn.Signature + ": ...")
		blocks = append(blocks, b.String())
	}

	return joinBlocks(blocks)
}

// --- Rust ---

func renderRust(m *Model) string {
	var blocks []string

	if m.Purpose != "" {
		blocks = append(blocks, "//! "+firstLine(m.Purpose))
	}
	if len(m.Reexports) > 0 {
		blocks = append(blocks, strings.Join(m.Reexports, "\n"))
	}

	for _, c := range m.Constants {
		var b strings.Builder
		docLine(&b, c.Doc, "///", "")
		if c.Static {
			b.WriteString("pub static " + c.Name)
		} else {
			b.WriteString("pub const " + c.Name)
		}
		if c.Type != "" {
			b.WriteString(": " + c.Type)
		}
		blocks = append(blocks, b.String())
	}

	for _, a := range m.TypeAliases {
		var b strings.Builder
		docLine(&b, a.Doc, "///", "")
		b.WriteString("pub type " + a.Name + " = " + a.Definition)
		blocks = append(blocks, b.String())
	}

	for _, e := range m.Enums {
		var b strings.Builder
		docLine(&b, e.Doc, "///", "")
		attrs, _ := splitModifiers(e.Derives)
		for _, a := range attrs {
			b.WriteString(a + "\n")
		}
		header := "pub enum " + e.Name + e.Generics
		if len(e.Variants) == 0 {
			b.WriteString(header + " {}")
		} else {
			b.WriteString(header + " {\n")
			for _, v := range e.Variants {
				b.WriteString("    " + v + ",\n")
			}
			b.WriteString("}")
		}
		writeRustImpl(&b, e.Name, e.Methods)
		blocks = append(blocks, b.String())
	}

	for _, t := range m.Traits {
		var b strings.Builder
		docLine(&b, t.Doc, "///", "")
		header := "pub trait " + t.Name + t.Generics + t.Bounds
		if len(t.Methods) == 0 {
			b.WriteString(header + " {}")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + " {\n")
		for _, fn := range t.Methods {
			docLine(&b, fn.Doc, "///", "    ")
			b.WriteString("    " + fn.Signature + "\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, s := range m.Structs {
		var b strings.Builder
		docLine(&b, s.Doc, "///", "")
		attrs, _ := splitModifiers(s.Derives)
		for _, a := range attrs {
			b.WriteString(a + "\n")
		}
		header := "pub struct " + s.Name + s.Generics
		if len(s.Fields) == 0 {
			b.WriteString(header + " {}")
		} else {
			b.WriteString(header + " {\n")
			for _, f := range s.Fields {
				docLine(&b, f.Doc, "///", "    ")
				b.WriteString("    pub " + f.Name)
				if f.Type != "" {
					b.WriteString(": " + f.Type)
				}
				b.WriteString(",\n")
			}
			b.WriteString("}")
		}
		writeRustImpl(&b, s.Name, s.Methods)
		blocks = append(blocks, b.String())
	}

	for _, fn := range m.Functions {
		var b strings.Builder
		docLine(&b, fn.Doc, "///", "")
		b.WriteString(fn.Signature)
		blocks = append(blocks, b.String())
	}

	return joinBlocks(blocks)
}

// writeRustImpl renders inherent methods as an impl block after the type.
func writeRustImpl(b *strings.Builder, name string, methods []Function) {
	if len(methods) == 0 {
		return
	}
	b.WriteString("\n\nimpl " + name + " {\n")
	for _, fn := range methods {
		docLine(b, fn.Doc, "///", "    ")
		b.WriteString("    " + fn.Signature + "\n")
	}
	b.WriteString("}")
}

// --- Java ---

func renderJava(m *Model) string {
	var blocks []string

	if m.Purpose != "" {
		blocks = append(blocks, "// "+firstLine(m.Purpose))
	}
	if len(m.Reexports) > 0 {
		blocks = append(blocks, strings.Join(m.Reexports, "\n"))
	}

	for _, c := range m.Constants {
		var b strings.Builder
		docLine(&b, c.Doc, "//", "")
		b.WriteString("public ")
		if c.Static {
			b.WriteString("static ")
		}
		if c.Type != "" {
			b.WriteString(c.Type + " ")
		}
		b.WriteString(c.Name)
		blocks = append(blocks, b.String())
	}

	for _, e := range m.Enums {
		var b strings.Builder
		docLine(&b, e.Doc, "//", "")
		attrs, keywords := splitModifiers(e.Derives)
		for _, a := range attrs {
			b.WriteString(a + "\n")
		}
		header := javaHeader(keywords, "enum", e.Name+e.Generics, "")
		if len(e.Variants) == 0 && len(e.Methods) == 0 {
			b.WriteString(header + " {}")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + " {\n")
		for _, v := range e.Variants {
			b.WriteString("    " + v + ",\n")
		}
		if len(e.Methods) > 0 && len(e.Variants) > 0 {
			b.WriteString("\n")
		}
		for _, fn := range e.Methods {
			docLine(&b, fn.Doc, "//", "    ")
			b.WriteString("    " + fn.Signature + "\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, t := range m.Traits {
		var b strings.Builder
		docLine(&b, t.Doc, "//", "")
		header := "public interface " + t.Name + t.Generics
		if t.Bounds != "" {
			header += " " + t.Bounds
		}
		if len(t.Fields) == 0 && len(t.Methods) == 0 {
			b.WriteString(header + " {}")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + " {\n")
		for _, f := range t.Fields {
			docLine(&b, f.Doc, "//", "    ")
			b.WriteString("    " + javaField(f) + "\n")
		}
		for _, fn := range t.Methods {
			docLine(&b, fn.Doc, "//", "    ")
			b.WriteString("    " + fn.Signature + "\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, s := range m.Structs {
		var b strings.Builder
		docLine(&b, s.Doc, "//", "")
		attrs, keywords := splitModifiers(s.Derives)
		for _, a := range attrs {
			b.WriteString(a + "\n")
		}
		header := javaHeader(keywords, "class", s.Name+s.Generics, s.Bounds)
		if len(s.Fields) == 0 && len(s.Methods) == 0 {
			b.WriteString(header + " {}")
			blocks = append(blocks, b.String())
			continue
		}
		b.WriteString(header + " {\n")
		for _, f := range s.Fields {
			docLine(&b, f.Doc, "//", "    ")
			b.WriteString("    " + javaField(f) + "\n")
		}
		for _, fn := range s.Methods {
			docLine(&b, fn.Doc, "//", "    ")
			b.WriteString("    " + fn.Signature + "\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, fn := range m.Functions {
		var b strings.Builder
		docLine(&b, fn.Doc, "//", "")
		b.WriteString(fn.Signature)
		blocks = append(blocks, b.String())
	}

	return joinBlocks(blocks)
}

// javaHeader composes a container header from keyword modifiers.
func javaHeader(keywords []string, kind, name, bounds string) string {
	header := ""
	if len(keywords) > 0 {
		header = strings.Join(keywords, " ") + " "
	}
	header += kind + " " + name
	if bounds != "" {
		header += " " + bounds
	}
	return header
}

// javaField renders a field as "Type name"; Type carries any keyword
// modifiers the extractor preserved (e.g. "static final int").
func javaField(f Field) string {
	if f.Type == "" {
		return f.Name
	}
	return f.Type + " " + f.Name
}
