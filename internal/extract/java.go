package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"focus/internal/summary"
)

var javaDeclKinds = map[string]bool{
	"class_declaration":      true,
	"interface_declaration":  true,
	"enum_declaration":       true,
	"record_declaration":     true,
	"package_declaration":    true,
	"import_declaration":     true,
	"annotation_declaration": true,
}

// extractJava walks a Java compilation unit. Only public types surface;
// nested public types are hoisted to the top level of the model.
func extractJava(root *sitter.Node, source []byte, opts Options) *summary.Model {
	m := &summary.Model{}
	purpose, purposeEnd := leadingComments(root, source, javaDeclKinds, opts.MaxDocLines)
	m.Purpose = purpose

	javaExtractTypes(m, root, source, purposeEnd, opts)
	return m
}

func javaExtractTypes(m *summary.Model, scope *sitter.Node, source []byte, purposeEnd uint32, opts Options) {
	for i := uint32(0); i < scope.NamedChildCount(); i++ {
		node := scope.NamedChild(int(i))

		switch node.Type() {
		case "class_declaration", "record_declaration":
			if !javaHasModifier(node, "public", source) {
				continue
			}
			m.Structs = append(m.Structs, javaClass(m, node, source, purposeEnd, opts))

		case "interface_declaration":
			if !javaHasModifier(node, "public", source) {
				continue
			}
			m.Traits = append(m.Traits, javaInterface(node, source, purposeEnd, opts))

		case "enum_declaration":
			if !javaHasModifier(node, "public", source) {
				continue
			}
			m.Enums = append(m.Enums, javaEnum(m, node, source, purposeEnd, opts))
		}
	}
}

func javaClass(m *summary.Model, node *sitter.Node, source []byte, purposeEnd uint32, opts Options) summary.Struct {
	annotations, keywords := javaModifiers(node, source)
	st := summary.Struct{
		Name:     fieldText(node, "name", source),
		Doc:      docAbove(node, source, purposeEnd, opts.MaxDocLines),
		Generics: fieldText(node, "type_parameters", source),
		Derives:  append(annotations, keywords...),
	}

	var bounds []string
	if sup := node.ChildByFieldName("superclass"); sup != nil {
		bounds = append(bounds, collapse(sup.Content(source)))
	}
	if ifc := node.ChildByFieldName("interfaces"); ifc != nil {
		bounds = append(bounds, collapse(ifc.Content(source)))
	}
	st.Bounds = strings.Join(bounds, " ")

	if node.Type() == "record_declaration" {
		if params := node.ChildByFieldName("parameters"); params != nil {
			for _, p := range childrenOfType(params, "formal_parameter") {
				st.Fields = append(st.Fields, summary.Field{
					Name:   fieldText(p, "name", source),
					Type:   fieldText(p, "type", source),
					Public: true,
				})
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return st
	}
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(int(i))
		switch member.Type() {
		case "field_declaration":
			st.Fields = append(st.Fields, javaFields(member, source, opts)...)
		case "method_declaration", "constructor_declaration":
			if fn, ok := javaMethod(member, source, opts); ok {
				st.Methods = append(st.Methods, fn)
			}
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			// Hoist nested public types.
			javaHoist(m, member, source, opts)
		}
	}
	return st
}

func javaInterface(node *sitter.Node, source []byte, purposeEnd uint32, opts Options) summary.Trait {
	tr := summary.Trait{
		Name:     fieldText(node, "name", source),
		Doc:      docAbove(node, source, purposeEnd, opts.MaxDocLines),
		Generics: fieldText(node, "type_parameters", source),
	}
	var bounds []string
	if ext := firstChildOfType(node, "extends_interfaces"); ext != nil {
		bounds = append(bounds, collapse(ext.Content(source)))
	}
	tr.Bounds = strings.Join(bounds, " ")

	body := node.ChildByFieldName("body")
	if body == nil {
		return tr
	}
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(int(i))
		switch member.Type() {
		case "constant_declaration", "field_declaration":
			tr.Fields = append(tr.Fields, javaInterfaceConstants(member, source, opts)...)
		case "method_declaration":
			sig := javaMemberSignature(member, source)
			tr.Methods = append(tr.Methods, summary.Function{
				Name:      fieldText(member, "name", source),
				Doc:       docAbove(member, source, 0, opts.MaxDocLines),
				Signature: sig,
				Public:    true,
			})
		}
	}
	return tr
}

func javaEnum(m *summary.Model, node *sitter.Node, source []byte, purposeEnd uint32, opts Options) summary.Enum {
	annotations, keywords := javaModifiers(node, source)
	e := summary.Enum{
		Name:    fieldText(node, "name", source),
		Doc:     docAbove(node, source, purposeEnd, opts.MaxDocLines),
		Derives: append(annotations, keywords...),
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return e
	}
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(int(i))
		switch member.Type() {
		case "enum_constant":
			e.Variants = append(e.Variants, collapse(member.Content(source)))
		case "enum_body_declarations":
			for j := uint32(0); j < member.NamedChildCount(); j++ {
				decl := member.NamedChild(int(j))
				switch decl.Type() {
				case "method_declaration", "constructor_declaration":
					if fn, ok := javaMethod(decl, source, opts); ok {
						e.Methods = append(e.Methods, fn)
					}
				case "class_declaration", "interface_declaration", "enum_declaration":
					javaHoist(m, decl, source, opts)
				}
			}
		}
	}
	return e
}

// javaHoist lifts a nested public type to the model's top level.
func javaHoist(m *summary.Model, node *sitter.Node, source []byte, opts Options) {
	if !javaHasModifier(node, "public", source) {
		return
	}
	switch node.Type() {
	case "class_declaration", "record_declaration":
		m.Structs = append(m.Structs, javaClass(m, node, source, 0, opts))
	case "interface_declaration":
		m.Traits = append(m.Traits, javaInterface(node, source, 0, opts))
	case "enum_declaration":
		m.Enums = append(m.Enums, javaEnum(m, node, source, 0, opts))
	}
}

// javaMethod builds a method entry if the member is public. Abstract and
// interface methods have no body; the trailing semicolon is dropped.
func javaMethod(member *sitter.Node, source []byte, opts Options) (summary.Function, bool) {
	if !javaHasModifier(member, "public", source) {
		return summary.Function{}, false
	}
	sig := javaMemberSignature(member, source)
	return summary.Function{
		Name:      fieldText(member, "name", source),
		Doc:       docAbove(member, source, 0, opts.MaxDocLines),
		Signature: sig,
		Public:    true,
	}, true
}

// javaFields expands a public field_declaration; one declaration may carry
// several declarators. Keyword modifiers other than public stay on the type.
func javaFields(member *sitter.Node, source []byte, opts Options) []summary.Field {
	if !javaHasModifier(member, "public", source) {
		return nil
	}
	doc := docAbove(member, source, 0, opts.MaxDocLines)
	typ := javaFieldType(member, source)

	var out []summary.Field
	for _, vd := range childrenOfType(member, "variable_declarator") {
		out = append(out, summary.Field{
			Name:   fieldText(vd, "name", source),
			Type:   typ,
			Doc:    doc,
			Public: true,
		})
		doc = ""
	}
	return out
}

// javaInterfaceConstants treats interface fields as implicitly public.
func javaInterfaceConstants(member *sitter.Node, source []byte, opts Options) []summary.Field {
	doc := docAbove(member, source, 0, opts.MaxDocLines)
	typ := javaFieldType(member, source)

	var out []summary.Field
	for _, vd := range childrenOfType(member, "variable_declarator") {
		out = append(out, summary.Field{
			Name:   fieldText(vd, "name", source),
			Type:   typ,
			Doc:    doc,
			Public: true,
		})
		doc = ""
	}
	return out
}

// javaFieldType prefixes the declared type with keyword modifiers other
// than public, e.g. "static final int".
func javaFieldType(member *sitter.Node, source []byte) string {
	_, keywords := javaModifiers(member, source)
	var parts []string
	for _, kw := range keywords {
		if kw != "public" {
			parts = append(parts, kw)
		}
	}
	if typ := fieldText(member, "type", source); typ != "" {
		parts = append(parts, typ)
	}
	return strings.Join(parts, " ")
}

// javaMemberSignature slices a member's header up to its body or semicolon.
func javaMemberSignature(member *sitter.Node, source []byte) string {
	sig := sliceUpTo(member, member.ChildByFieldName("body"), source)
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sig), ";"))
}

// javaModifiers splits a declaration's modifiers node into annotation lines
// and keyword modifiers.
func javaModifiers(node *sitter.Node, source []byte) (annotations, keywords []string) {
	mods := firstChildOfType(node, "modifiers")
	if mods == nil {
		return nil, nil
	}
	for i := uint32(0); i < mods.ChildCount(); i++ {
		child := mods.Child(int(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case "marker_annotation", "annotation":
			annotations = append(annotations, collapse(child.Content(source)))
		default:
			keywords = append(keywords, collapse(child.Content(source)))
		}
	}
	return annotations, keywords
}

// javaHasModifier checks the modifiers node for a keyword.
func javaHasModifier(node *sitter.Node, keyword string, source []byte) bool {
	_, keywords := javaModifiers(node, source)
	for _, kw := range keywords {
		if kw == keyword {
			return true
		}
	}
	return false
}
