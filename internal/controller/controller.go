// Package controller implements the file lifecycle state machine: which
// file is fully loaded, which are summarized, and how each operation moves
// files between those states.
package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"focus/internal/cache"
	focuserrors "focus/internal/errors"
	"focus/internal/extract"
	"focus/internal/lang"
	"focus/internal/paths"
)

// Tag marks whether a result carries full content or a summary.
type Tag string

const (
	TagFull    Tag = "FULL"
	TagSummary Tag = "SUMMARY"
)

// FileResult is the outcome of a content-returning operation.
type FileResult struct {
	Path    string `json:"path"`
	RelPath string `json:"relPath"`
	Tag     Tag    `json:"tag"`
	Content string `json:"content"`
	// Note carries a diagnostic when a summary fell back to full content.
	Note string `json:"note,omitempty"`
}

// Header renders the single-line content header.
func (r *FileResult) Header() string {
	return fmt.Sprintf("=== %s [%s] ===", r.RelPath, r.Tag)
}

// Render returns the header followed by the body, with the note appended
// as a trailing comment line when present.
func (r *FileResult) Render() string {
	var b strings.Builder
	b.WriteString(r.Header())
	b.WriteString("\n")
	b.WriteString(r.Content)
	if r.Note != "" {
		if !strings.HasSuffix(r.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("(" + r.Note + ")\n")
	}
	return b.String()
}

// Controller orchestrates reads, edits, and writes against the context
// cache. Operations are serialized by the cache's own locking plus the
// one-writer assumption of the transport layer.
type Controller struct {
	cache     *cache.Context
	extractor *extract.Extractor
	root      string
	logger    *slog.Logger
}

// New creates a controller rooted at projectRoot.
func New(ctx *cache.Context, extractor *extract.Extractor, projectRoot string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		cache:     ctx,
		extractor: extractor,
		root:      projectRoot,
		logger:    logger,
	}
}

// Cache exposes the underlying context cache for status and test hooks.
func (c *Controller) Cache() *cache.Context {
	return c.cache
}

// Read returns a file's full content and makes it the active file. The
// previously active file, if different, is summarized best-effort first;
// failure to summarize it never blocks the new activation.
func (c *Controller) Read(ctx context.Context, path string) (*FileResult, error) {
	abs := paths.Resolve(path, c.root)
	rel := paths.Display(abs, c.root)

	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, focuserrors.NewNotFound(rel)
		}
		return nil, focuserrors.Wrap(focuserrors.ReadFailed, fmt.Sprintf("cannot read %s", rel), err)
	}

	result := &FileResult{Path: abs, RelPath: rel, Tag: TagFull, Content: string(content)}
	if !lang.IsSupported(abs) {
		return result, nil
	}

	c.activate(ctx, abs)
	return result, nil
}

// Peek returns a file's summary without touching the active pointer. The
// active file always comes back in full; anything else gets a fresh or
// re-extracted summary, falling back to full content with a diagnostic when
// extraction fails.
func (c *Controller) Peek(ctx context.Context, path string) (*FileResult, error) {
	abs := paths.Resolve(path, c.root)
	rel := paths.Display(abs, c.root)

	language, supported := lang.FromPath(abs)
	if !supported || c.cache.IsActive(abs) {
		content, err := os.ReadFile(abs)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, focuserrors.NewNotFound(rel)
			}
			return nil, focuserrors.Wrap(focuserrors.ReadFailed, fmt.Sprintf("cannot read %s", rel), err)
		}
		return &FileResult{Path: abs, RelPath: rel, Tag: TagFull, Content: string(content)}, nil
	}

	if !c.cache.IsStale(abs) {
		if entry, ok := c.cache.Summary(abs); ok {
			return &FileResult{Path: abs, RelPath: rel, Tag: TagSummary, Content: entry.Summary}, nil
		}
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, focuserrors.NewNotFound(rel)
		}
		return nil, focuserrors.Wrap(focuserrors.ReadFailed, fmt.Sprintf("cannot read %s", rel), err)
	}

	text, err := c.extractor.Text(ctx, content, language, abs)
	if err != nil {
		c.logger.Debug("summary extraction failed, serving full content",
			"path", rel, "error", err)
		return &FileResult{
			Path:    abs,
			RelPath: rel,
			Tag:     TagFull,
			Content: string(content),
			Note:    fmt.Sprintf("summary unavailable: %v", err),
		}, nil
	}

	c.cache.SetSummary(abs, rel, text, content)
	return &FileResult{Path: abs, RelPath: rel, Tag: TagSummary, Content: text}, nil
}

// Edit replaces exactly one occurrence of old with new in the file. Zero
// occurrences or more than one reject the edit without touching the file.
// Mutations are confined to the project root.
func (c *Controller) Edit(ctx context.Context, path, oldText, newText string) (*FileResult, error) {
	abs := paths.Resolve(path, c.root)
	rel := paths.Display(abs, c.root)

	if !paths.IsWithinRoot(abs, c.root) {
		return nil, focuserrors.New(focuserrors.WriteFailed, fmt.Sprintf("refusing to modify %s outside the project root", rel))
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, focuserrors.NewNotFound(rel)
		}
		return nil, focuserrors.Wrap(focuserrors.ReadFailed, fmt.Sprintf("cannot read %s", rel), err)
	}

	content := string(raw)
	switch n := strings.Count(content, oldText); {
	case n == 0:
		return nil, focuserrors.NewNoMatch(rel)
	case n > 1:
		return nil, focuserrors.NewAmbiguousMatch(rel, n)
	}

	updated := strings.Replace(content, oldText, newText, 1)
	if err := os.WriteFile(abs, []byte(updated), 0o644); err != nil {
		return nil, focuserrors.Wrap(focuserrors.WriteFailed, fmt.Sprintf("cannot write %s", rel), err)
	}

	result := &FileResult{Path: abs, RelPath: rel, Tag: TagFull, Content: fmt.Sprintf("edited %s", rel)}
	if !lang.IsSupported(abs) {
		return result, nil
	}

	c.activate(ctx, abs)
	c.refreshSummary(ctx, abs, rel, []byte(updated))
	return result, nil
}

// Write creates or overwrites a file, creating parent directories as
// needed, then activates it with an eager summary refresh. Targets outside
// the project root are rejected.
func (c *Controller) Write(ctx context.Context, path, content string) (*FileResult, error) {
	abs := paths.Resolve(path, c.root)
	rel := paths.Display(abs, c.root)

	if !paths.IsWithinRoot(abs, c.root) {
		return nil, focuserrors.New(focuserrors.WriteFailed, fmt.Sprintf("refusing to write %s outside the project root", rel))
	}

	if dir := filepath.Dir(abs); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, focuserrors.Wrap(focuserrors.WriteFailed, fmt.Sprintf("cannot create directory for %s", rel), err)
		}
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return nil, focuserrors.Wrap(focuserrors.WriteFailed, fmt.Sprintf("cannot write %s", rel), err)
	}

	result := &FileResult{Path: abs, RelPath: rel, Tag: TagFull, Content: fmt.Sprintf("wrote %s (%d bytes)", rel, len(content))}
	if !lang.IsSupported(abs) {
		return result, nil
	}

	c.activate(ctx, abs)
	c.refreshSummary(ctx, abs, rel, []byte(content))
	return result, nil
}

// Forget drops all tracking for a path.
func (c *Controller) Forget(path string) (bool, string) {
	abs := paths.Resolve(path, c.root)
	rel := paths.Display(abs, c.root)
	if c.cache.Forget(abs) {
		return true, fmt.Sprintf("removed %s from context", rel)
	}
	return false, fmt.Sprintf("%s was not tracked", rel)
}

// activate makes abs the active file, summarizing the previously active
// file first. Summarization failures are swallowed: the previous file may
// have been deleted or broken, and that must not block the switch.
func (c *Controller) activate(ctx context.Context, abs string) {
	previous := c.cache.SetActiveFile(abs)
	if previous == "" || previous == abs {
		return
	}

	content, err := os.ReadFile(previous)
	if err != nil {
		c.logger.Debug("previous active file unreadable, leaving cache as-is",
			"path", previous, "error", err)
		return
	}
	language, ok := lang.FromPath(previous)
	if !ok {
		return
	}
	text, err := c.extractor.Text(ctx, content, language, previous)
	if err != nil {
		c.logger.Debug("previous active file failed to summarize",
			"path", previous, "error", err)
		return
	}
	c.cache.SetSummary(previous, paths.Display(previous, c.root), text, content)
}

// refreshSummary re-extracts a just-written file so its cache entry is warm
// for the next deactivation. Extraction failure only logs; the write or
// edit already succeeded.
func (c *Controller) refreshSummary(ctx context.Context, abs, rel string, content []byte) {
	language, ok := lang.FromPath(abs)
	if !ok {
		return
	}
	text, err := c.extractor.Text(ctx, content, language, abs)
	if err != nil {
		c.logger.Debug("eager re-extraction failed", "path", rel, "error", err)
		return
	}
	c.cache.SetSummary(abs, rel, text, content)
}
