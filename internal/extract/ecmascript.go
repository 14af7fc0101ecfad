package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"focus/internal/summary"
)

var ecmaDeclKinds = map[string]bool{
	"export_statement":           true,
	"function_declaration":       true,
	"class_declaration":          true,
	"abstract_class_declaration": true,
	"interface_declaration":      true,
	"type_alias_declaration":     true,
	"enum_declaration":           true,
	"lexical_declaration":        true,
	"import_statement":           true,
}

// extractECMAScript handles JavaScript, TypeScript, and TSX. Only
// export-qualified declarations are public; everything else is module-local.
func extractECMAScript(root *sitter.Node, source []byte, opts Options) *summary.Model {
	m := &summary.Model{}
	purpose, purposeEnd := leadingComments(root, source, ecmaDeclKinds, opts.MaxDocLines)
	m.Purpose = purpose

	extractECMAScope(m, root, source, purposeEnd, opts)
	return m
}

// extractECMAScope walks one statement scope (the module, or a namespace
// body) for exported declarations.
func extractECMAScope(m *summary.Model, scope *sitter.Node, source []byte, purposeEnd uint32, opts Options) {
	for i := uint32(0); i < scope.NamedChildCount(); i++ {
		node := scope.NamedChild(int(i))
		if node.Type() != "export_statement" {
			continue
		}

		doc := docAbove(node, source, purposeEnd, opts.MaxDocLines)

		decl := node.ChildByFieldName("declaration")
		if decl == nil {
			decl = node.ChildByFieldName("value")
		}
		if decl == nil {
			// export * from "./x", export { a, b } from "./x",
			// export { a as b }: kept verbatim.
			m.Reexports = append(m.Reexports, collapse(node.Content(source)))
			continue
		}

		switch decl.Type() {
		case "function_declaration", "generator_function_declaration":
			name := fieldText(decl, "name", source)
			sig := "export " + sliceUpTo(decl, decl.ChildByFieldName("body"), source)
			m.Functions = append(m.Functions, summary.Function{
				Name:      name,
				Doc:       doc,
				Signature: sig,
				Async:     strings.Contains(sig, "async "),
				Public:    true,
			})

		case "class_declaration", "abstract_class_declaration":
			m.Structs = append(m.Structs, extractECMAClass(decl, source, doc, opts))

		case "interface_declaration":
			m.Traits = append(m.Traits, extractECMAInterface(decl, source, doc, opts))

		case "type_alias_declaration":
			m.TypeAliases = append(m.TypeAliases, summary.TypeAlias{
				Name:       fieldText(decl, "name", source) + fieldText(decl, "type_parameters", source),
				Doc:        doc,
				Definition: fieldText(decl, "value", source),
			})

		case "enum_declaration":
			e := summary.Enum{Name: fieldText(decl, "name", source), Doc: doc}
			if body := decl.ChildByFieldName("body"); body != nil {
				for j := uint32(0); j < body.NamedChildCount(); j++ {
					member := body.NamedChild(int(j))
					switch member.Type() {
					case "enum_assignment", "property_identifier", "string":
						e.Variants = append(e.Variants, collapse(member.Content(source)))
					}
				}
			}
			m.Enums = append(m.Enums, e)

		case "lexical_declaration", "variable_declaration":
			extractECMAConsts(m, decl, source, doc)

		case "internal_module", "module":
			name := fieldText(decl, "name", source)
			m.Reexports = append(m.Reexports, "export namespace "+name)
			if body := decl.ChildByFieldName("body"); body != nil {
				extractECMAScope(m, body, source, purposeEnd, opts)
			}
		}
	}
}

// extractECMAConsts handles "export const x = ..." declarators: arrow
// functions become function entries, everything else a constant.
func extractECMAConsts(m *summary.Model, decl *sitter.Node, source []byte, doc string) {
	for _, vd := range childrenOfType(decl, "variable_declarator") {
		name := fieldText(vd, "name", source)
		if name == "" {
			continue
		}
		value := vd.ChildByFieldName("value")
		if value != nil && (value.Type() == "arrow_function" || value.Type() == "function_expression" || value.Type() == "function") {
			sig := "export const " + name + " = " + sliceUpTo(value, value.ChildByFieldName("body"), source)
			sig = strings.TrimRight(sig, " ")
			m.Functions = append(m.Functions, summary.Function{
				Name:      name,
				Doc:       doc,
				Signature: sig,
				Async:     strings.Contains(sig, "async "),
				Public:    true,
			})
		} else {
			m.Constants = append(m.Constants, summary.Constant{
				Name: name,
				Doc:  doc,
				Type: ecmaTypeAnnotation(vd, source),
			})
		}
		doc = ""
	}
}

func extractECMAClass(decl *sitter.Node, source []byte, doc string, opts Options) summary.Struct {
	st := summary.Struct{
		Name:     fieldText(decl, "name", source),
		Doc:      doc,
		Generics: fieldText(decl, "type_parameters", source),
	}
	if decl.Type() == "abstract_class_declaration" {
		st.Derives = append(st.Derives, "abstract")
	}
	for _, dec := range childrenOfType(decl, "decorator") {
		st.Derives = append(st.Derives, collapse(dec.Content(source)))
	}
	if heritage := firstChildOfType(decl, "class_heritage"); heritage != nil {
		st.Bounds = collapse(heritage.Content(source))
	}

	body := decl.ChildByFieldName("body")
	if body == nil {
		return st
	}
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(int(i))
		memberDoc := docAbove(member, source, 0, opts.MaxDocLines)

		switch member.Type() {
		case "method_definition", "abstract_method_signature", "method_signature":
			name := fieldText(member, "name", source)
			if !ecmaMemberPublic(member, name, source) {
				continue
			}
			sig := sliceUpTo(member, member.ChildByFieldName("body"), source)
			sig = strings.TrimSuffix(strings.TrimSpace(sig), ";")
			st.Methods = append(st.Methods, summary.Function{
				Name:      name,
				Doc:       memberDoc,
				Signature: sig,
				Async:     strings.HasPrefix(sig, "async ") || strings.Contains(sig, " async "),
				Public:    true,
			})

		case "public_field_definition", "field_definition", "property_signature":
			name := fieldText(member, "name", source)
			if !ecmaMemberPublic(member, name, source) {
				continue
			}
			st.Fields = append(st.Fields, summary.Field{
				Name:   name,
				Type:   ecmaTypeAnnotation(member, source),
				Doc:    memberDoc,
				Public: true,
			})
		}
	}
	return st
}

func extractECMAInterface(decl *sitter.Node, source []byte, doc string, opts Options) summary.Trait {
	tr := summary.Trait{
		Name:     fieldText(decl, "name", source),
		Doc:      doc,
		Generics: fieldText(decl, "type_parameters", source),
	}
	if ext := firstChildOfType(decl, "extends_type_clause"); ext != nil {
		tr.Bounds = collapse(ext.Content(source))
	} else if ext := firstChildOfType(decl, "extends_clause"); ext != nil {
		tr.Bounds = collapse(ext.Content(source))
	}

	body := decl.ChildByFieldName("body")
	if body == nil {
		return tr
	}
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(int(i))
		memberDoc := docAbove(member, source, 0, opts.MaxDocLines)

		switch member.Type() {
		case "property_signature":
			tr.Fields = append(tr.Fields, summary.Field{
				Name:   ecmaPropertyName(member, source),
				Type:   ecmaTypeAnnotation(member, source),
				Doc:    memberDoc,
				Public: true,
			})
		case "method_signature", "call_signature", "construct_signature":
			sig := strings.TrimSuffix(strings.TrimSpace(collapse(member.Content(source))), ";")
			tr.Methods = append(tr.Methods, summary.Function{
				Name:      fieldText(member, "name", source),
				Doc:       memberDoc,
				Signature: sig,
				Public:    true,
			})
		}
	}
	return tr
}

// ecmaPropertyName keeps optional markers, e.g. "retries?".
func ecmaPropertyName(member *sitter.Node, source []byte) string {
	name := fieldText(member, "name", source)
	if hasChildOfType(member, "?") {
		name += "?"
	}
	return name
}

// ecmaTypeAnnotation returns the declared type without the leading colon.
func ecmaTypeAnnotation(node *sitter.Node, source []byte) string {
	typ := node.ChildByFieldName("type")
	if typ == nil {
		typ = firstChildOfType(node, "type_annotation")
	}
	if typ == nil {
		return ""
	}
	text := collapse(typ.Content(source))
	text = strings.TrimPrefix(text, ":")
	return strings.TrimSpace(text)
}

// ecmaMemberPublic filters private and protected class members, including
// ECMAScript #-private names.
func ecmaMemberPublic(member *sitter.Node, name string, source []byte) bool {
	if strings.HasPrefix(name, "#") {
		return false
	}
	if am := firstChildOfType(member, "accessibility_modifier"); am != nil {
		switch am.Content(source) {
		case "private", "protected":
			return false
		}
	}
	return true
}
