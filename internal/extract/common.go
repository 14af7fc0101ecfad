package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// collapse flattens a multi-line snippet to a single line with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateLines keeps at most max lines of a doc comment.
func truncateLines(doc string, max int) string {
	if doc == "" || max <= 0 {
		return doc
	}
	lines := strings.Split(doc, "\n")
	if len(lines) <= max {
		return doc
	}
	return strings.Join(lines[:max], "\n")
}

func isCommentKind(kind string) bool {
	switch kind {
	case "comment", "line_comment", "block_comment":
		return true
	}
	return false
}

// cleanComment strips comment markers from a raw comment node's text,
// preserving line structure.
func cleanComment(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "/*") {
		raw = strings.TrimPrefix(raw, "/**")
		raw = strings.TrimPrefix(raw, "/*")
		raw = strings.TrimSuffix(raw, "*/")
	}

	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "//!"):
			line = strings.TrimPrefix(line, "//!")
		case strings.HasPrefix(line, "///"):
			line = strings.TrimPrefix(line, "///")
		case strings.HasPrefix(line, "//"):
			line = strings.TrimPrefix(line, "//")
		case strings.HasPrefix(line, "#"):
			line = strings.TrimPrefix(line, "#")
		case strings.HasPrefix(line, "*"):
			line = strings.TrimPrefix(line, "*")
		}
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// docAbove collects the contiguous comment block directly above node.
// Comments already claimed as file purpose (ending before purposeEnd) and
// comment blocks separated from the declaration by a blank line are not
// doc comments.
func docAbove(node *sitter.Node, source []byte, purposeEnd uint32, maxLines int) string {
	var parts []string
	expectRow := int(node.StartPoint().Row) - 1

	for prev := node.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		if !isCommentKind(prev.Type()) {
			break
		}
		if purposeEnd > 0 && prev.StartByte() < purposeEnd {
			break
		}
		if int(prev.EndPoint().Row) < expectRow {
			break
		}
		parts = append([]string{cleanComment(prev.Content(source))}, parts...)
		expectRow = int(prev.StartPoint().Row) - 1
	}

	return truncateLines(strings.Join(parts, "\n"), maxLines)
}

// leadingComments collects the comment block at the top of a file as its
// purpose, returning the cleaned text and the byte offset where the block
// ends so declaration docs do not re-claim it.
func leadingComments(root *sitter.Node, source []byte, stopKinds map[string]bool, maxLines int) (string, uint32) {
	var parts []string
	var end uint32
	lastRow := -1

	for i := uint32(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(int(i))
		if !isCommentKind(child.Type()) {
			// The purpose block must precede the first declaration. If
			// it sits directly above that declaration it is the
			// declaration's doc, not the file's purpose; only a block
			// separated by a blank line (or a comment block followed by
			// more comments) counts. We keep the simple rule: leading
			// comments adjacent to the first declaration belong to the
			// declaration when a doc lookup would claim them.
			if stopKinds[child.Type()] && len(parts) > 0 && lastRow >= 0 &&
				int(child.StartPoint().Row) == lastRow+1 {
				// Adjacent to first declaration: not a purpose block.
				return "", 0
			}
			break
		}
		if lastRow >= 0 && int(child.StartPoint().Row) > lastRow+1 {
			// Blank line inside the leading comments ends the block.
			break
		}
		parts = append(parts, cleanComment(child.Content(source)))
		end = child.EndByte()
		lastRow = int(child.EndPoint().Row)
	}

	return truncateLines(strings.Join(parts, "\n"), maxLines), end
}

// sliceUpTo returns the collapsed source text from node start to stop's
// start, or the whole node when stop is nil.
func sliceUpTo(node, stop *sitter.Node, source []byte) string {
	end := node.EndByte()
	if stop != nil {
		end = stop.StartByte()
	}
	if end <= node.StartByte() || end > uint32(len(source)) {
		return collapse(node.Content(source))
	}
	return collapse(string(source[node.StartByte():end]))
}

// fieldText returns the text of a named field child, or "".
func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return collapse(child.Content(source))
}

// hasChildOfType reports whether node has a direct child of the given kind.
func hasChildOfType(node *sitter.Node, kind string) bool {
	return firstChildOfType(node, kind) != nil
}

// firstChildOfType returns the first direct child of the given kind.
func firstChildOfType(node *sitter.Node, kind string) *sitter.Node {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child != nil && child.Type() == kind {
			return child
		}
	}
	return nil
}

// childrenOfType returns all direct children of the given kind.
func childrenOfType(node *sitter.Node, kind string) []*sitter.Node {
	var out []*sitter.Node
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child != nil && child.Type() == kind {
			out = append(out, child)
		}
	}
	return out
}

// stripGenerics removes a trailing generic argument clause from a type name,
// so "Registry<T>" matches the declaration "Registry".
func stripGenerics(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}
