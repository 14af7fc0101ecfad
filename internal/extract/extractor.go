// Package extract builds summary models from source files using tree-sitter.
// Each supported language has its own extractor walking the concrete syntax
// tree for public declarations; everything else about a file is discarded.
package extract

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	focuserrors "focus/internal/errors"
	"focus/internal/lang"
	"focus/internal/summary"
)

// DefaultMaxDocLines bounds how many doc-comment lines survive extraction.
const DefaultMaxDocLines = 5

// Options tunes extraction behavior.
type Options struct {
	// MaxDocLines caps retained doc-comment lines per declaration.
	// Zero means DefaultMaxDocLines.
	MaxDocLines int
}

// Extractor turns source bytes into summary models.
type Extractor struct {
	parser *lang.Parser
	opts   Options
}

// NewExtractor creates an extractor with the given options.
func NewExtractor(opts Options) *Extractor {
	if opts.MaxDocLines <= 0 {
		opts.MaxDocLines = DefaultMaxDocLines
	}
	return &Extractor{
		parser: lang.NewParser(),
		opts:   opts,
	}
}

// Extract parses source and returns its public-surface model. A tree
// containing syntax errors yields a PARSE_FAILED error; extraction never
// guesses at a broken file's surface.
func (e *Extractor) Extract(ctx context.Context, source []byte, language lang.Language, path string) (*summary.Model, error) {
	root, err := e.parser.Parse(ctx, source, language, path)
	if err != nil {
		return nil, focuserrors.Wrap(focuserrors.ParseFailed, fmt.Sprintf("cannot parse %s", path), err)
	}
	if root.HasError() {
		return nil, focuserrors.NewParseFailed(path, diagnose(root))
	}

	switch language {
	case lang.Go:
		return extractGo(root, source, e.opts), nil
	case lang.JavaScript, lang.TypeScript:
		return extractECMAScript(root, source, e.opts), nil
	case lang.Python:
		return extractPython(root, source, e.opts), nil
	case lang.Rust:
		return extractRust(root, source, e.opts), nil
	case lang.Java:
		return extractJava(root, source, e.opts), nil
	default:
		return nil, focuserrors.New(focuserrors.UnsupportedFileType, fmt.Sprintf("no extractor for %s", language))
	}
}

// Text extracts and renders in one step.
func (e *Extractor) Text(ctx context.Context, source []byte, language lang.Language, path string) (string, error) {
	model, err := e.Extract(ctx, source, language, path)
	if err != nil {
		return "", err
	}
	return summary.Render(model, language), nil
}

// diagnose locates the first error node for the PARSE_FAILED message.
func diagnose(root *sitter.Node) string {
	var bad *sitter.Node

	var walk func(*sitter.Node) bool
	walk = func(n *sitter.Node) bool {
		if n == nil {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			bad = n
			return true
		}
		for i := uint32(0); i < n.ChildCount(); i++ {
			if walk(n.Child(int(i))) {
				return true
			}
		}
		return false
	}
	walk(root)

	if bad == nil {
		return "syntax error"
	}
	return fmt.Sprintf("syntax error near line %d", bad.StartPoint().Row+1)
}
