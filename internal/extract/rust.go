package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"focus/internal/summary"
)

// rustPublic reports whether an item carries a bare `pub` modifier.
// Restricted visibility like pub(crate) is not externally public.
func rustPublic(node *sitter.Node, source []byte) bool {
	vis := firstChildOfType(node, "visibility_modifier")
	return vis != nil && strings.TrimSpace(vis.Content(source)) == "pub"
}

// extractRust walks a Rust source file. Inherent impl blocks are collected
// separately and their public methods attached to the matching struct or
// enum; trait impls contribute nothing to the summary.
func extractRust(root *sitter.Node, source []byte, opts Options) *summary.Model {
	m := &summary.Model{}
	m.Purpose = truncateLines(rustInnerDoc(root, source), opts.MaxDocLines)

	structIndex := map[string]int{}
	enumIndex := map[string]int{}
	implMethods := map[string][]summary.Function{}

	rustExtractScope(m, root, source, structIndex, enumIndex, implMethods, opts)

	for name, fns := range implMethods {
		if idx, ok := structIndex[name]; ok {
			m.Structs[idx].Methods = append(m.Structs[idx].Methods, fns...)
		} else if idx, ok := enumIndex[name]; ok {
			m.Enums[idx].Methods = append(m.Enums[idx].Methods, fns...)
		}
	}
	return m
}

func rustExtractScope(m *summary.Model, scope *sitter.Node, source []byte, structIndex, enumIndex map[string]int, implMethods map[string][]summary.Function, opts Options) {
	for i := uint32(0); i < scope.NamedChildCount(); i++ {
		node := scope.NamedChild(int(i))

		switch node.Type() {
		case "struct_item":
			if !rustPublic(node, source) {
				continue
			}
			doc, attrs := rustDocAndAttrs(node, source, opts)
			st := summary.Struct{
				Name:     fieldText(node, "name", source),
				Doc:      doc,
				Generics: fieldText(node, "type_parameters", source),
				Derives:  attrs,
			}
			if body := node.ChildByFieldName("body"); body != nil && body.Type() == "field_declaration_list" {
				for _, fd := range childrenOfType(body, "field_declaration") {
					if !rustPublic(fd, source) {
						continue
					}
					st.Fields = append(st.Fields, summary.Field{
						Name:   fieldText(fd, "name", source),
						Type:   fieldText(fd, "type", source),
						Doc:    docAbove(fd, source, 0, opts.MaxDocLines),
						Public: true,
					})
				}
			}
			structIndex[st.Name] = len(m.Structs)
			m.Structs = append(m.Structs, st)

		case "enum_item":
			if !rustPublic(node, source) {
				continue
			}
			doc, attrs := rustDocAndAttrs(node, source, opts)
			e := summary.Enum{
				Name:     fieldText(node, "name", source),
				Doc:      doc,
				Generics: fieldText(node, "type_parameters", source),
				Derives:  attrs,
			}
			if body := node.ChildByFieldName("body"); body != nil {
				for _, v := range childrenOfType(body, "enum_variant") {
					e.Variants = append(e.Variants, collapse(v.Content(source)))
				}
			}
			enumIndex[e.Name] = len(m.Enums)
			m.Enums = append(m.Enums, e)

		case "trait_item":
			if !rustPublic(node, source) {
				continue
			}
			doc, _ := rustDocAndAttrs(node, source, opts)
			tr := summary.Trait{
				Name:     fieldText(node, "name", source),
				Doc:      doc,
				Generics: fieldText(node, "type_parameters", source),
			}
			if bounds := node.ChildByFieldName("bounds"); bounds != nil {
				tr.Bounds = collapse(bounds.Content(source))
			}
			if body := node.ChildByFieldName("body"); body != nil {
				for j := uint32(0); j < body.NamedChildCount(); j++ {
					member := body.NamedChild(int(j))
					switch member.Type() {
					case "function_item", "function_signature_item":
						tr.Methods = append(tr.Methods, rustFunction(member, source, opts))
					}
				}
			}
			m.Traits = append(m.Traits, tr)

		case "function_item":
			if !rustPublic(node, source) {
				continue
			}
			m.Functions = append(m.Functions, rustFunction(node, source, opts))

		case "impl_item":
			// Trait impls (impl Trait for Type) are not part of the
			// inherent surface.
			if node.ChildByFieldName("trait") != nil {
				continue
			}
			typeName := stripGenerics(fieldText(node, "type", source))
			if body := node.ChildByFieldName("body"); body != nil {
				for j := uint32(0); j < body.NamedChildCount(); j++ {
					member := body.NamedChild(int(j))
					if member.Type() != "function_item" || !rustPublic(member, source) {
						continue
					}
					implMethods[typeName] = append(implMethods[typeName], rustFunction(member, source, opts))
				}
			}

		case "type_item":
			if !rustPublic(node, source) {
				continue
			}
			doc, _ := rustDocAndAttrs(node, source, opts)
			m.TypeAliases = append(m.TypeAliases, summary.TypeAlias{
				Name:       fieldText(node, "name", source) + fieldText(node, "type_parameters", source),
				Doc:        doc,
				Definition: fieldText(node, "type", source),
			})

		case "const_item", "static_item":
			if !rustPublic(node, source) {
				continue
			}
			doc, _ := rustDocAndAttrs(node, source, opts)
			m.Constants = append(m.Constants, summary.Constant{
				Name:   fieldText(node, "name", source),
				Doc:    doc,
				Type:   fieldText(node, "type", source),
				Static: node.Type() == "static_item",
			})

		case "use_declaration":
			if !rustPublic(node, source) {
				continue
			}
			m.Reexports = append(m.Reexports, collapse(node.Content(source)))

		case "mod_item":
			if !rustPublic(node, source) {
				continue
			}
			m.Reexports = append(m.Reexports, "pub mod "+fieldText(node, "name", source)+";")
			if body := node.ChildByFieldName("body"); body != nil {
				rustExtractScope(m, body, source, structIndex, enumIndex, implMethods, opts)
			}
		}
	}
}

func rustFunction(node *sitter.Node, source []byte, opts Options) summary.Function {
	doc, _ := rustDocAndAttrs(node, source, opts)
	sig := sliceUpTo(node, node.ChildByFieldName("body"), source)
	sig = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sig), ";"))
	return summary.Function{
		Name:      fieldText(node, "name", source),
		Doc:       doc,
		Signature: sig,
		Unsafe:    strings.Contains(sig+" ", "unsafe fn "),
		Async:     strings.Contains(sig+" ", "async fn "),
		Public:    strings.HasPrefix(sig, "pub "),
	}
}

// rustDocAndAttrs walks backward over the attribute and doc-comment lines
// above an item. Attributes and docs may interleave; both blocks are
// returned in source order.
func rustDocAndAttrs(node *sitter.Node, source []byte, opts Options) (string, []string) {
	var docParts, attrs []string
	expectRow := int(node.StartPoint().Row) - 1

	for prev := node.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		if int(prev.EndPoint().Row) < expectRow {
			break
		}
		switch prev.Type() {
		case "attribute_item":
			attrs = append([]string{collapse(prev.Content(source))}, attrs...)
		case "line_comment", "block_comment":
			text := prev.Content(source)
			if strings.HasPrefix(text, "//!") {
				// Inner docs belong to the enclosing module.
				return truncateLines(strings.Join(docParts, "\n"), opts.MaxDocLines), attrs
			}
			docParts = append([]string{cleanComment(text)}, docParts...)
		default:
			return truncateLines(strings.Join(docParts, "\n"), opts.MaxDocLines), attrs
		}
		expectRow = int(prev.StartPoint().Row) - 1
	}

	return truncateLines(strings.Join(docParts, "\n"), opts.MaxDocLines), attrs
}

// rustInnerDoc collects the file's leading //! comment block.
func rustInnerDoc(root *sitter.Node, source []byte) string {
	var parts []string
	for i := uint32(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(int(i))
		if child.Type() != "line_comment" && child.Type() != "block_comment" {
			break
		}
		text := child.Content(source)
		if !strings.HasPrefix(text, "//!") && !strings.HasPrefix(text, "/*!") {
			break
		}
		parts = append(parts, cleanComment(strings.TrimPrefix(text, "/*!")))
	}
	return strings.Join(parts, "\n")
}
