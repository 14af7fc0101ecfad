package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSetSummaryAndLookup(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 10})

	entry := c.SetSummary("/p/a.go", "a.go", "summary text", []byte("full content"))
	if entry.FullSize != len("full content") || entry.SummarySize != len("summary text") {
		t.Errorf("sizes = %d, %d", entry.FullSize, entry.SummarySize)
	}

	got, ok := c.Summary("/p/a.go")
	if !ok || got.Summary != "summary text" {
		t.Fatalf("lookup failed: %+v", got)
	}
	if _, ok := c.Summary("/p/missing.go"); ok {
		t.Error("lookup of untracked path should fail")
	}
}

func TestEvictionLRU(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 2})

	c.SetSummary("/p/a.go", "a.go", "sa", []byte("a"))
	c.SetSummary("/p/b.go", "b.go", "sb", []byte("b"))
	// Touch a so b becomes the LRU entry.
	c.Summary("/p/a.go")
	c.SetSummary("/p/c.go", "c.go", "sc", []byte("c"))

	if _, ok := c.Summary("/p/b.go"); ok {
		t.Error("b should have been evicted as least recently used")
	}
	if _, ok := c.Summary("/p/a.go"); !ok {
		t.Error("a should survive")
	}
	if _, ok := c.Summary("/p/c.go"); !ok {
		t.Error("c should survive")
	}
}

func TestEvictionNeverRemovesActiveFile(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 2})

	c.SetActiveFile("/p/active.go")
	c.SetSummary("/p/active.go", "active.go", "sa", []byte("a"))
	c.SetSummary("/p/b.go", "b.go", "sb", []byte("b"))
	// The active entry is the oldest; eviction must skip it.
	c.SetSummary("/p/c.go", "c.go", "sc", []byte("c"))

	if _, ok := c.Summary("/p/active.go"); !ok {
		t.Error("active file entry must never be evicted")
	}
	if c.Len() > 3 {
		t.Errorf("len = %d", c.Len())
	}
	if _, ok := c.Summary("/p/b.go"); ok {
		t.Error("b should have been evicted instead of the active file")
	}
}

func TestSetActiveFileRefreshesRecency(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 2})

	c.SetSummary("/p/a.go", "a.go", "sa", []byte("a"))
	c.SetSummary("/p/b.go", "b.go", "sb", []byte("b"))

	// Activation is an access: a moves off the LRU end even after the
	// active pointer moves on.
	c.SetActiveFile("/p/a.go")
	c.ClearActiveFile()

	c.SetSummary("/p/c.go", "c.go", "sc", []byte("c"))

	if _, ok := c.Summary("/p/a.go"); !ok {
		t.Error("recently activated entry should survive eviction")
	}
	if _, ok := c.Summary("/p/b.go"); ok {
		t.Error("b should have been evicted as least recently used")
	}
}

func TestStalenessRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.go", "package a\n")

	c := NewContext(Config{MaxTrackedFiles: 10})
	content, _ := os.ReadFile(path)
	c.SetSummary(path, "a.go", "summary", content)

	if c.IsStale(path) {
		t.Error("freshly cached entry should not be stale")
	}

	writeFile(t, dir, "a.go", "package a\n\nfunc Changed() {}\n")
	if !c.IsStale(path) {
		t.Error("entry should be stale after on-disk mutation")
	}

	content, _ = os.ReadFile(path)
	c.SetSummary(path, "a.go", "summary2", content)
	if c.IsStale(path) {
		t.Error("re-caching current content should clear staleness")
	}
}

func TestIsStaleMissingCases(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 10})

	if !c.IsStale("/nonexistent/path.go") {
		t.Error("untracked path is stale by definition")
	}

	c.SetSummary("/nonexistent/path.go", "path.go", "s", []byte("x"))
	if !c.IsStale("/nonexistent/path.go") {
		t.Error("unreadable file must be treated as stale")
	}
}

func TestForget(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 10})

	c.SetActiveFile("/p/a.go")
	c.SetSummary("/p/a.go", "a.go", "s", []byte("x"))

	if !c.Forget("/p/a.go") {
		t.Error("forget of tracked path should report true")
	}
	if c.ActiveFile() != "" {
		t.Error("forgetting the active path must deactivate it")
	}
	if _, ok := c.Summary("/p/a.go"); ok {
		t.Error("entry should be gone")
	}
	if c.Forget("/p/a.go") {
		t.Error("forget of untracked path should report false")
	}
}

func TestForgetActiveWithoutEntry(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 10})
	c.SetActiveFile("/p/a.go")

	if !c.Forget("/p/a.go") {
		t.Error("active-only path still counts as tracked")
	}
	if c.ActiveFile() != "" {
		t.Error("active pointer should be cleared")
	}
}

func TestSetActiveFileReturnsPrevious(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 10})

	if prev := c.SetActiveFile("/p/a.go"); prev != "" {
		t.Errorf("prev = %q", prev)
	}
	if prev := c.SetActiveFile("/p/b.go"); prev != "/p/a.go" {
		t.Errorf("prev = %q", prev)
	}
	if !c.IsActive("/p/b.go") || c.IsActive("/p/a.go") {
		t.Error("active pointer wrong after switch")
	}
}

func TestReset(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 10})
	c.SetActiveFile("/p/a.go")
	c.SetSummary("/p/b.go", "b.go", "s", []byte("x"))

	c.Reset()

	if c.ActiveFile() != "" || c.Len() != 0 {
		t.Error("reset should clear all state")
	}
}

func TestEntriesSorted(t *testing.T) {
	c := NewContext(Config{MaxTrackedFiles: 10})
	c.SetSummary("/p/z.go", "z.go", "s", []byte("x"))
	c.SetSummary("/p/a.go", "a.go", "s", []byte("x"))
	c.SetSummary("/p/m.go", "m.go", "s", []byte("x"))

	entries := c.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].RelPath != "a.go" || entries[2].RelPath != "z.go" {
		t.Errorf("entries not sorted: %v, %v, %v",
			entries[0].RelPath, entries[1].RelPath, entries[2].RelPath)
	}
}

func TestHashContent(t *testing.T) {
	h1 := HashContent([]byte("alpha"))
	h2 := HashContent([]byte("alpha"))
	h3 := HashContent([]byte("beta"))

	if h1 != h2 {
		t.Error("hash must be deterministic")
	}
	if h1 == h3 {
		t.Error("different content must hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}
