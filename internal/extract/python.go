package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"focus/internal/summary"
)

// pyPublic applies the underscore convention: any leading underscore makes a
// name private, dunders included.
func pyPublic(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_")
}

// extractPython walks a Python module. Public surface is every top-level
// def, class, and assignment whose name has no leading underscore.
func extractPython(root *sitter.Node, source []byte, opts Options) *summary.Model {
	m := &summary.Model{}

	start := uint32(0)
	if ds := pyModuleDocstring(root, source); ds != nil {
		m.Purpose = truncateLines(pyStringText(ds, source), opts.MaxDocLines)
		start = 1
	}

	for i := start; i < root.NamedChildCount(); i++ {
		node := root.NamedChild(int(i))
		pyExtractStatement(m, node, source, opts)
	}
	return m
}

func pyExtractStatement(m *summary.Model, node *sitter.Node, source []byte, opts Options) {
	var decorators []string
	if node.Type() == "decorated_definition" {
		for _, d := range childrenOfType(node, "decorator") {
			decorators = append(decorators, collapse(d.Content(source)))
		}
		inner := node.ChildByFieldName("definition")
		if inner == nil {
			return
		}
		node = inner
	}

	switch node.Type() {
	case "function_definition":
		name := fieldText(node, "name", source)
		if !pyPublic(name) {
			return
		}
		fn := pyFunction(node, source, opts)
		// Standalone decorated functions keep their decorator lines in the
		// signature so @overload and friends stay visible.
		if len(decorators) > 0 {
			fn.Signature = strings.Join(decorators, " ") + " " + fn.Signature
		}
		m.Functions = append(m.Functions, fn)

	case "class_definition":
		name := fieldText(node, "name", source)
		if !pyPublic(name) {
			return
		}
		m.Structs = append(m.Structs, pyClass(node, source, decorators, opts))

	case "expression_statement":
		pyExtractAssignment(m, node, source, opts)
	}
}

func pyFunction(node *sitter.Node, source []byte, opts Options) summary.Function {
	sig := sliceUpTo(node, node.ChildByFieldName("body"), source)
	sig = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sig), ":"))
	return summary.Function{
		Name:      fieldText(node, "name", source),
		Doc:       pyDoc(node, source, opts),
		Signature: sig,
		Async:     strings.HasPrefix(sig, "async "),
		Public:    true,
	}
}

func pyClass(node *sitter.Node, source []byte, decorators []string, opts Options) summary.Struct {
	st := summary.Struct{
		Name:    fieldText(node, "name", source),
		Doc:     pyDoc(node, source, opts),
		Derives: decorators,
	}
	if sup := node.ChildByFieldName("superclasses"); sup != nil {
		st.Bounds = collapse(sup.Content(source))
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return st
	}
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		stmt := body.NamedChild(int(i))
		if stmt.Type() == "decorated_definition" {
			if inner := stmt.ChildByFieldName("definition"); inner != nil {
				stmt = inner
			}
		}
		switch stmt.Type() {
		case "function_definition":
			if !pyPublic(fieldText(stmt, "name", source)) {
				continue
			}
			st.Methods = append(st.Methods, pyFunction(stmt, source, opts))

		case "expression_statement":
			if assign := firstChildOfType(stmt, "assignment"); assign != nil {
				name, typ := pyAssignTarget(assign, source)
				if !pyPublic(name) {
					continue
				}
				st.Fields = append(st.Fields, summary.Field{Name: name, Type: typ, Public: true})
			}
		}
	}
	return st
}

// pyExtractAssignment records public module-level bindings as constants.
func pyExtractAssignment(m *summary.Model, stmt *sitter.Node, source []byte, opts Options) {
	assign := firstChildOfType(stmt, "assignment")
	if assign == nil {
		return
	}
	name, typ := pyAssignTarget(assign, source)
	if !pyPublic(name) {
		return
	}
	m.Constants = append(m.Constants, summary.Constant{
		Name: name,
		Doc:  docAbove(stmt, source, 0, opts.MaxDocLines),
		Type: typ,
	})
}

func pyAssignTarget(assign *sitter.Node, source []byte) (string, string) {
	left := assign.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" {
		return "", ""
	}
	return left.Content(source), fieldText(assign, "type", source)
}

// pyDoc prefers the body docstring, falling back to # comments above.
func pyDoc(node *sitter.Node, source []byte, opts Options) string {
	if body := node.ChildByFieldName("body"); body != nil && body.NamedChildCount() > 0 {
		first := body.NamedChild(0)
		if first.Type() == "expression_statement" {
			if s := firstChildOfType(first, "string"); s != nil {
				return truncateLines(pyStringText(s, source), opts.MaxDocLines)
			}
		}
	}
	target := node
	if parent := node.Parent(); parent != nil && parent.Type() == "decorated_definition" {
		target = parent
	}
	return docAbove(target, source, 0, opts.MaxDocLines)
}

// pyModuleDocstring returns the module's leading string literal, if any.
func pyModuleDocstring(root *sitter.Node, source []byte) *sitter.Node {
	if root.NamedChildCount() == 0 {
		return nil
	}
	first := root.NamedChild(0)
	if first.Type() != "expression_statement" {
		return nil
	}
	return firstChildOfType(first, "string")
}

// pyStringText strips quote delimiters from a string literal.
func pyStringText(s *sitter.Node, source []byte) string {
	text := s.Content(source)
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, q) && strings.HasSuffix(text, q) && len(text) >= 2*len(q) {
			text = text[len(q) : len(text)-len(q)]
			break
		}
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}
