// Package cache holds the in-memory context state: which file is fully
// loaded, and the structural summaries standing in for every other tracked
// file. All state is process-local and rebuilt on demand after restart.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sort"
	"sync"
	"time"
)

// CachedSummary is one tracked file's summary entry.
type CachedSummary struct {
	// Summary is the rendered structural summary text.
	Summary string
	// ContentHash is the sha256 of the file content the summary was
	// extracted from, lowercase hex.
	ContentHash string
	// FullSize is the byte size of that content.
	FullSize int
	// SummarySize is the byte size of the summary text.
	SummarySize int
	// LastAccess orders entries for eviction.
	LastAccess time.Time
	// RelPath is the project-relative display path.
	RelPath string
}

// Entry pairs a path with its cached summary for status reporting.
type Entry struct {
	Path    string
	Cached  *CachedSummary
	RelPath string
}

// Config bounds the cache.
type Config struct {
	// MaxTrackedFiles caps summary entries; the active file never counts
	// against it and is never evicted.
	MaxTrackedFiles int
}

// Context tracks the active file and the summary cache. Safe for
// concurrent use.
type Context struct {
	mu        sync.Mutex
	cfg       Config
	active    string
	summaries map[string]*CachedSummary
	// order is LRU: least recently used first, most recent last.
	order []string
}

// NewContext creates an empty context.
func NewContext(cfg Config) *Context {
	if cfg.MaxTrackedFiles <= 0 {
		cfg.MaxTrackedFiles = 50
	}
	return &Context{
		cfg:       cfg,
		summaries: make(map[string]*CachedSummary),
	}
}

// HashContent computes the lowercase hex sha256 of file content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ActiveFile returns the currently active path, or "".
func (c *Context) ActiveFile() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetActiveFile marks path as the single fully-loaded file and returns the
// previously active path ("" if none). The caller is responsible for
// summarizing the previous file; its stale cache entry, if any, stays put
// and is caught by the staleness check on next access. Activation counts as
// an access: an existing entry for path moves to the fresh end of the
// recency order.
func (c *Context) SetActiveFile(path string) (previous string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	previous = c.active
	c.active = path
	if entry, ok := c.summaries[path]; ok {
		entry.LastAccess = time.Now()
		c.touch(path)
	}
	return previous
}

// ClearActiveFile deactivates without activating a replacement.
func (c *Context) ClearActiveFile() string {
	return c.SetActiveFile("")
}

// IsActive reports whether path is the active file.
func (c *Context) IsActive(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != "" && c.active == path
}

// Summary returns the cached entry for path and bumps its recency.
func (c *Context) Summary(path string) (*CachedSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.summaries[path]
	if !ok {
		return nil, false
	}
	entry.LastAccess = time.Now()
	c.touch(path)
	return entry, true
}

// SetSummary stores a summary extracted from content, then evicts
// least-recently-used entries beyond the cap. The active file is exempt
// from eviction.
func (c *Context) SetSummary(path, relPath, summaryText string, content []byte) *CachedSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &CachedSummary{
		Summary:     summaryText,
		ContentHash: HashContent(content),
		FullSize:    len(content),
		SummarySize: len(summaryText),
		LastAccess:  time.Now(),
		RelPath:     relPath,
	}
	c.summaries[path] = entry
	c.touch(path)
	c.evict()
	return entry
}

// IsStale reports whether the cached summary for path no longer matches the
// file on disk. Missing entries and unreadable files count as stale.
func (c *Context) IsStale(path string) bool {
	c.mu.Lock()
	entry, ok := c.summaries[path]
	c.mu.Unlock()
	if !ok {
		return true
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return true
	}
	return HashContent(content) != entry.ContentHash
}

// Forget drops the cache entry for path and deactivates it if active.
// Returns whether anything was tracked under path.
func (c *Context) Forget(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, had := c.summaries[path]
	delete(c.summaries, path)
	c.remove(path)
	if c.active == path {
		c.active = ""
		had = true
	}
	return had
}

// Reset drops all state.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = ""
	c.summaries = make(map[string]*CachedSummary)
	c.order = nil
}

// Entries returns all cached summaries sorted by display path.
func (c *Context) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, 0, len(c.summaries))
	for path, entry := range c.summaries {
		out = append(out, Entry{Path: path, Cached: entry, RelPath: entry.RelPath})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RelPath < out[j].RelPath
	})
	return out
}

// Len returns the number of cached summaries.
func (c *Context) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.summaries)
}

// touch moves path to the most-recently-used end of the order list.
func (c *Context) touch(path string) {
	c.remove(path)
	c.order = append(c.order, path)
}

func (c *Context) remove(path string) {
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// evict drops least-recently-used entries until the cap holds. The active
// path is popped from the order list but its entry survives; a later touch
// re-inserts it. Callers hold the lock.
func (c *Context) evict() {
	for len(c.summaries) > c.cfg.MaxTrackedFiles {
		if len(c.order) == 0 {
			return
		}
		victim := c.order[0]
		c.order = c.order[1:]
		if victim == c.active {
			continue
		}
		delete(c.summaries, victim)
	}
}
