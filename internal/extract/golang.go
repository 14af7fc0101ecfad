package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"focus/internal/summary"
)

// goExported reports whether a Go identifier is exported.
func goExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// extractGo walks a Go source file for its exported surface. Methods are
// top-level declarations in Go, so they are collected in a second pass and
// attached to their receiver's struct entry.
func extractGo(root *sitter.Node, source []byte, opts Options) *summary.Model {
	m := &summary.Model{}
	purpose, purposeEnd := leadingComments(root, source, nil, opts.MaxDocLines)
	m.Purpose = purpose

	structIndex := map[string]int{}
	type pendingMethod struct {
		receiver string
		fn       summary.Function
	}
	var methods []pendingMethod

	for i := uint32(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(int(i))

		switch node.Type() {
		case "function_declaration":
			name := fieldText(node, "name", source)
			if !goExported(name) {
				continue
			}
			m.Functions = append(m.Functions, summary.Function{
				Name:      name,
				Doc:       docAbove(node, source, purposeEnd, opts.MaxDocLines),
				Signature: goFuncSignature(node, source),
				Public:    true,
			})

		case "method_declaration":
			name := fieldText(node, "name", source)
			if !goExported(name) {
				continue
			}
			methods = append(methods, pendingMethod{
				receiver: goReceiverType(node, source),
				fn: summary.Function{
					Name:      name,
					Doc:       docAbove(node, source, purposeEnd, opts.MaxDocLines),
					Signature: goFuncSignature(node, source),
					Public:    true,
				},
			})

		case "type_declaration":
			doc := docAbove(node, source, purposeEnd, opts.MaxDocLines)
			for j := uint32(0); j < node.NamedChildCount(); j++ {
				spec := node.NamedChild(int(j))
				extractGoTypeSpec(m, structIndex, spec, source, doc, purposeEnd, opts)
			}

		case "const_declaration":
			declDoc := docAbove(node, source, purposeEnd, opts.MaxDocLines)
			for _, spec := range childrenOfType(node, "const_spec") {
				doc := docAbove(spec, source, purposeEnd, opts.MaxDocLines)
				if doc == "" {
					doc = declDoc
					declDoc = ""
				}
				typ := fieldText(spec, "type", source)
				for _, id := range childrenOfType(spec, "identifier") {
					name := id.Content(source)
					if !goExported(name) {
						continue
					}
					m.Constants = append(m.Constants, summary.Constant{
						Name: name,
						Doc:  doc,
						Type: typ,
					})
					doc = ""
				}
			}
		}
	}

	for _, pm := range methods {
		if idx, ok := structIndex[pm.receiver]; ok {
			m.Structs[idx].Methods = append(m.Structs[idx].Methods, pm.fn)
		}
	}

	return m
}

// extractGoTypeSpec handles one type_spec or type_alias inside a
// type_declaration.
func extractGoTypeSpec(m *summary.Model, structIndex map[string]int, spec *sitter.Node, source []byte, declDoc string, purposeEnd uint32, opts Options) {
	if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
		return
	}
	name := fieldText(spec, "name", source)
	if !goExported(name) {
		return
	}

	doc := docAbove(spec, source, purposeEnd, opts.MaxDocLines)
	if doc == "" {
		doc = declDoc
	}
	generics := fieldText(spec, "type_parameters", source)
	body := spec.ChildByFieldName("type")
	if body == nil {
		return
	}

	if spec.Type() == "type_alias" {
		m.TypeAliases = append(m.TypeAliases, summary.TypeAlias{
			Name:       name,
			Doc:        doc,
			Definition: "= " + collapse(body.Content(source)),
		})
		return
	}

	switch body.Type() {
	case "struct_type":
		st := summary.Struct{Name: name, Doc: doc, Generics: generics}
		if list := firstChildOfType(body, "field_declaration_list"); list != nil {
			for _, fd := range childrenOfType(list, "field_declaration") {
				st.Fields = append(st.Fields, goStructFields(fd, source, purposeEnd, opts)...)
			}
		}
		structIndex[name] = len(m.Structs)
		m.Structs = append(m.Structs, st)

	case "interface_type":
		tr := summary.Trait{Name: name, Doc: doc, Generics: generics}
		for j := uint32(0); j < body.NamedChildCount(); j++ {
			member := body.NamedChild(int(j))
			switch member.Type() {
			case "method_spec", "method_elem":
				mname := fieldText(member, "name", source)
				if !goExported(mname) {
					continue
				}
				tr.Methods = append(tr.Methods, summary.Function{
					Name:      mname,
					Doc:       docAbove(member, source, purposeEnd, opts.MaxDocLines),
					Signature: collapse(member.Content(source)),
					Public:    true,
				})
			case "interface_type_name", "type_identifier", "qualified_type", "type_elem":
				// Embedded interface.
				tr.Methods = append(tr.Methods, summary.Function{
					Name:      collapse(member.Content(source)),
					Signature: collapse(member.Content(source)),
					Public:    true,
				})
			}
		}
		m.Traits = append(m.Traits, tr)

	default:
		m.TypeAliases = append(m.TypeAliases, summary.TypeAlias{
			Name:       name,
			Doc:        doc,
			Definition: collapse(body.Content(source)),
		})
	}
}

// goStructFields expands one field_declaration, which may declare several
// names or an embedded type.
func goStructFields(fd *sitter.Node, source []byte, purposeEnd uint32, opts Options) []summary.Field {
	doc := docAbove(fd, source, purposeEnd, opts.MaxDocLines)
	typ := fieldText(fd, "type", source)

	names := childrenOfType(fd, "field_identifier")
	if len(names) == 0 {
		// Embedded field: the type stands in for the name.
		if typ == "" || !goExported(lastPathSegment(typ)) {
			return nil
		}
		return []summary.Field{{Name: typ, Doc: doc, Public: true}}
	}

	var out []summary.Field
	for _, n := range names {
		name := n.Content(source)
		if !goExported(name) {
			continue
		}
		out = append(out, summary.Field{Name: name, Type: typ, Doc: doc, Public: true})
		doc = ""
	}
	return out
}

// goFuncSignature slices the declaration header, excluding the body.
func goFuncSignature(node *sitter.Node, source []byte) string {
	return sliceUpTo(node, node.ChildByFieldName("body"), source)
}

// goReceiverType extracts the bare receiver type name, stripping pointer
// markers and type parameters.
func goReceiverType(node *sitter.Node, source []byte) string {
	recv := node.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	for i := uint32(0); i < recv.NamedChildCount(); i++ {
		param := recv.NamedChild(int(i))
		if param.Type() != "parameter_declaration" {
			continue
		}
		typ := fieldText(param, "type", source)
		typ = strings.TrimPrefix(typ, "*")
		if i := strings.IndexByte(typ, '['); i >= 0 {
			typ = typ[:i]
		}
		return strings.TrimSpace(typ)
	}
	return ""
}

// lastPathSegment returns the identifier after the final dot, for embedded
// fields like sync.Mutex.
func lastPathSegment(typ string) string {
	typ = strings.TrimPrefix(typ, "*")
	if i := strings.LastIndexByte(typ, '.'); i >= 0 {
		return typ[i+1:]
	}
	return typ
}
