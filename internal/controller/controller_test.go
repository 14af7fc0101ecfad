package controller

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"focus/internal/cache"
	focuserrors "focus/internal/errors"
	"focus/internal/extract"
)

func newTestController(t *testing.T) (*Controller, string) {
	t.Helper()
	root := t.TempDir()
	ctx := cache.NewContext(cache.Config{MaxTrackedFiles: 10})
	extractor := extract.NewExtractor(extract.Options{})
	return New(ctx, extractor, root, nil), root
}

func writeSource(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sourceA = `package a

// Greet says hello.
func Greet(name string) string {
	return "hello " + name
}
`

const sourceB = `package b

// Add sums two ints.
func Add(x, y int) int {
	return x + y
}
`

func TestReadActivates(t *testing.T) {
	c, root := newTestController(t)
	writeSource(t, root, "a.go", sourceA)

	result, err := c.Read(context.Background(), "a.go")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if result.Tag != TagFull {
		t.Errorf("tag = %q", result.Tag)
	}
	if result.Content != sourceA {
		t.Error("read should return full content")
	}
	if result.Header() != "=== a.go [FULL] ===" {
		t.Errorf("header = %q", result.Header())
	}
	if active := c.Cache().ActiveFile(); active != filepath.Join(root, "a.go") {
		t.Errorf("active = %q", active)
	}
}

func TestReadSwitchSummarizesPrevious(t *testing.T) {
	c, root := newTestController(t)
	pathA := writeSource(t, root, "a.go", sourceA)
	writeSource(t, root, "b.go", sourceB)

	if _, err := c.Read(context.Background(), "a.go"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Read(context.Background(), "b.go"); err != nil {
		t.Fatal(err)
	}

	entry, ok := c.Cache().Summary(pathA)
	if !ok {
		t.Fatal("previous active file should have been summarized")
	}
	if !strings.Contains(entry.Summary, "func Greet(name string) string") {
		t.Errorf("summary = %q", entry.Summary)
	}
	if strings.Contains(entry.Summary, "return") {
		t.Errorf("summary leaked body: %q", entry.Summary)
	}
}

func TestReadUnsupportedPassthrough(t *testing.T) {
	c, root := newTestController(t)
	writeSource(t, root, "notes.txt", "plain text\n")

	result, err := c.Read(context.Background(), "notes.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if result.Tag != TagFull {
		t.Errorf("tag = %q", result.Tag)
	}
	if c.Cache().ActiveFile() != "" {
		t.Error("unsupported files must not become active")
	}
}

func TestReadMissingFile(t *testing.T) {
	c, _ := newTestController(t)

	_, err := c.Read(context.Background(), "missing.go")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := focuserrors.CodeOf(err); code != focuserrors.FileNotFound {
		t.Errorf("code = %q", code)
	}
}

func TestPeekNeverSwitches(t *testing.T) {
	c, root := newTestController(t)
	pathA := writeSource(t, root, "a.go", sourceA)
	writeSource(t, root, "b.go", sourceB)

	if _, err := c.Read(context.Background(), "a.go"); err != nil {
		t.Fatal(err)
	}

	result, err := c.Peek(context.Background(), "b.go")
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if result.Tag != TagSummary {
		t.Errorf("tag = %q", result.Tag)
	}
	if !strings.Contains(result.Content, "func Add(x, y int) int") {
		t.Errorf("content = %q", result.Content)
	}
	if c.Cache().ActiveFile() != pathA {
		t.Error("peek must not move the active pointer")
	}
}

func TestPeekActiveReturnsFull(t *testing.T) {
	c, root := newTestController(t)
	writeSource(t, root, "a.go", sourceA)

	if _, err := c.Read(context.Background(), "a.go"); err != nil {
		t.Fatal(err)
	}

	result, err := c.Peek(context.Background(), "a.go")
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if result.Tag != TagFull || result.Content != sourceA {
		t.Errorf("active peek should be full content, got tag %q", result.Tag)
	}
}

func TestPeekStaleReextracts(t *testing.T) {
	c, root := newTestController(t)
	writeSource(t, root, "a.go", sourceA)
	writeSource(t, root, "b.go", sourceB)

	// Activate a then b so a has a cached summary.
	if _, err := c.Read(context.Background(), "a.go"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Read(context.Background(), "b.go"); err != nil {
		t.Fatal(err)
	}

	writeSource(t, root, "a.go", `package a

// Farewell says goodbye.
func Farewell() string {
	return "bye"
}
`)

	result, err := c.Peek(context.Background(), "a.go")
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if result.Tag != TagSummary {
		t.Errorf("tag = %q", result.Tag)
	}
	if !strings.Contains(result.Content, "Farewell") {
		t.Errorf("stale summary served: %q", result.Content)
	}
}

func TestPeekParseFailureFallsBack(t *testing.T) {
	c, root := newTestController(t)
	broken := "package a\n\nfunc Broken( {\n"
	writeSource(t, root, "broken.go", broken)

	result, err := c.Peek(context.Background(), "broken.go")
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if result.Tag != TagFull {
		t.Errorf("tag = %q", result.Tag)
	}
	if result.Content != broken {
		t.Error("fallback should carry full content")
	}
	if result.Note == "" {
		t.Error("fallback should carry a diagnostic note")
	}
}

func TestEditExactlyOnce(t *testing.T) {
	c, root := newTestController(t)
	path := writeSource(t, root, "a.go", sourceA)

	if _, err := c.Edit(context.Background(), "a.go", `"hello "`, `"hi "`); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	updated, _ := os.ReadFile(path)
	if !strings.Contains(string(updated), `"hi " + name`) {
		t.Errorf("file not edited: %s", updated)
	}
	if c.Cache().ActiveFile() != path {
		t.Error("edited file should become active")
	}
	// Eager re-extraction keeps the cache warm.
	if entry, ok := c.Cache().Summary(path); !ok || entry.Summary == "" {
		t.Error("edit should refresh the cache entry")
	}
}

func TestEditNoMatch(t *testing.T) {
	c, root := newTestController(t)
	path := writeSource(t, root, "a.go", sourceA)

	_, err := c.Edit(context.Background(), "a.go", "nonexistent text", "x")
	if err == nil {
		t.Fatal("expected no-match error")
	}
	if code := focuserrors.CodeOf(err); code != focuserrors.NoMatch {
		t.Errorf("code = %q", code)
	}

	content, _ := os.ReadFile(path)
	if string(content) != sourceA {
		t.Error("failed edit must not modify the file")
	}
}

func TestEditAmbiguous(t *testing.T) {
	c, root := newTestController(t)
	path := writeSource(t, root, "a.go", "package a\n\nvar X = 1\nvar Y = 1\n")

	_, err := c.Edit(context.Background(), "a.go", "= 1", "= 2")
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	if code := focuserrors.CodeOf(err); code != focuserrors.AmbiguousMatch {
		t.Errorf("code = %q", code)
	}
	if !strings.Contains(err.Error(), "2") {
		t.Errorf("error should report the occurrence count: %v", err)
	}

	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "var X = 1") {
		t.Error("failed edit must not modify the file")
	}
}

func TestWriteCreatesAndActivates(t *testing.T) {
	c, root := newTestController(t)

	result, err := c.Write(context.Background(), filepath.Join("nested", "dir", "new.go"), sourceA)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(result.Content, "wrote") {
		t.Errorf("result = %q", result.Content)
	}

	path := filepath.Join(root, "nested", "dir", "new.go")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("written file unreadable: %v", err)
	}
	if string(content) != sourceA {
		t.Error("written content mismatch")
	}
	if c.Cache().ActiveFile() != path {
		t.Error("written file should become active")
	}
}

func TestMutationsConfinedToRoot(t *testing.T) {
	c, root := newTestController(t)

	outside := filepath.Join(filepath.Dir(root), "escape.go")
	_, err := c.Write(context.Background(), outside, sourceA)
	if err == nil {
		t.Fatal("write outside the project root must be rejected")
	}
	if code := focuserrors.CodeOf(err); code != focuserrors.WriteFailed {
		t.Errorf("code = %q", code)
	}
	if _, statErr := os.Stat(outside); statErr == nil {
		t.Error("rejected write must not create the file")
	}

	_, err = c.Edit(context.Background(), filepath.Join("..", "escape.go"), "a", "b")
	if err == nil {
		t.Fatal("edit outside the project root must be rejected")
	}
	if code := focuserrors.CodeOf(err); code != focuserrors.WriteFailed {
		t.Errorf("code = %q", code)
	}
}

func TestForgetClearsActivity(t *testing.T) {
	c, root := newTestController(t)
	writeSource(t, root, "a.go", sourceA)

	if _, err := c.Read(context.Background(), "a.go"); err != nil {
		t.Fatal(err)
	}

	tracked, _ := c.Forget("a.go")
	if !tracked {
		t.Error("forget of the active file should report tracked")
	}
	if c.Cache().ActiveFile() != "" {
		t.Error("forget must clear the active pointer")
	}

	tracked, msg := c.Forget("a.go")
	if tracked || !strings.Contains(msg, "not tracked") {
		t.Errorf("second forget: tracked=%t msg=%q", tracked, msg)
	}
}

func TestStatusReport(t *testing.T) {
	c, root := newTestController(t)
	writeSource(t, root, "a.go", sourceA)
	writeSource(t, root, "b.go", sourceB)

	if _, err := c.Read(context.Background(), "a.go"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Read(context.Background(), "b.go"); err != nil {
		t.Fatal(err)
	}

	status := c.Status()
	if status.ActiveFile != "b.go" {
		t.Errorf("active = %q", status.ActiveFile)
	}
	if len(status.Entries) != 1 || status.Entries[0].RelPath != "a.go" {
		t.Fatalf("entries = %+v", status.Entries)
	}
	if status.UncompactedSize <= status.ContextSize {
		t.Errorf("expected savings: context=%d uncompacted=%d",
			status.ContextSize, status.UncompactedSize)
	}

	report := status.Format()
	for _, want := range []string{"Active file: b.go", "a.go", "Savings:"} {
		if !strings.Contains(report, want) {
			t.Errorf("missing %q in report:\n%s", want, report)
		}
	}
}
