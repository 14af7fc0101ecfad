package extract

import (
	"context"
	"strings"
	"testing"

	"focus/internal/lang"
	"focus/internal/summary"
)

func extractSource(t *testing.T, source string, language lang.Language, path string) *summary.Model {
	t.Helper()
	e := NewExtractor(Options{})
	model, err := e.Extract(context.Background(), []byte(source), language, path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return model
}

func TestExtractGo(t *testing.T) {
	source := `// Package store persists items.
package store

import "sync"

// MaxItems bounds the store.
const MaxItems = 100

const internalLimit = 5

// ID identifies an item.
type ID string

// Store holds items by ID.
type Store struct {
	mu sync.Mutex
	// Items maps IDs to payloads.
	Items map[ID][]byte
}

// Get returns the item for id.
func (s *Store) Get(id ID) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Items[id]
	return b, ok
}

func (s *Store) purge() {}

// New creates an empty store.
func New() *Store {
	return &Store{Items: make(map[ID][]byte)}
}

func helper() {}
`

	m := extractSource(t, source, lang.Go, "store.go")

	if !strings.Contains(m.Purpose, "Package store persists items.") {
		t.Errorf("purpose = %q", m.Purpose)
	}

	if len(m.Constants) != 1 || m.Constants[0].Name != "MaxItems" {
		t.Fatalf("constants = %+v", m.Constants)
	}
	if len(m.TypeAliases) != 1 || m.TypeAliases[0].Name != "ID" {
		t.Fatalf("type aliases = %+v", m.TypeAliases)
	}

	if len(m.Structs) != 1 {
		t.Fatalf("structs = %+v", m.Structs)
	}
	st := m.Structs[0]
	if st.Name != "Store" {
		t.Errorf("struct name = %q", st.Name)
	}
	// mu is unexported and must not appear.
	if len(st.Fields) != 1 || st.Fields[0].Name != "Items" {
		t.Errorf("fields = %+v", st.Fields)
	}
	// Get attaches to Store; purge is unexported.
	if len(st.Methods) != 1 || st.Methods[0].Name != "Get" {
		t.Errorf("methods = %+v", st.Methods)
	}
	if sig := st.Methods[0].Signature; !strings.Contains(sig, "func (s *Store) Get(id ID)") {
		t.Errorf("method signature = %q", sig)
	}

	if len(m.Functions) != 1 || m.Functions[0].Name != "New" {
		t.Errorf("functions = %+v", m.Functions)
	}
	if doc := m.Functions[0].Doc; doc != "New creates an empty store." {
		t.Errorf("function doc = %q", doc)
	}
}

func TestExtractGoInterface(t *testing.T) {
	source := `package store

// Backend abstracts persistence.
type Backend interface {
	// Load reads a blob.
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}
`

	m := extractSource(t, source, lang.Go, "backend.go")

	if len(m.Traits) != 1 {
		t.Fatalf("traits = %+v", m.Traits)
	}
	tr := m.Traits[0]
	if tr.Name != "Backend" || len(tr.Methods) != 2 {
		t.Fatalf("trait = %+v", tr)
	}
	if tr.Methods[0].Name != "Load" || tr.Methods[1].Name != "Save" {
		t.Errorf("methods = %+v", tr.Methods)
	}
}

func TestExtractGoDocLineBudget(t *testing.T) {
	source := `// Package sched runs background work.
// Jobs are queued in arrival order.
// Workers drain the queue concurrently.
package sched

// Run starts the scheduler.
// It blocks until the context is cancelled.
// Panics in jobs are recovered and logged.
// Completed jobs are reported on the results channel.
func Run() {}
`

	e := NewExtractor(Options{MaxDocLines: 2})
	m, err := e.Extract(context.Background(), []byte(source), lang.Go, "sched.go")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	wantPurpose := "Package sched runs background work.\nJobs are queued in arrival order."
	if m.Purpose != wantPurpose {
		t.Errorf("purpose = %q", m.Purpose)
	}

	if len(m.Functions) != 1 {
		t.Fatalf("functions = %+v", m.Functions)
	}
	wantDoc := "Run starts the scheduler.\nIt blocks until the context is cancelled."
	if m.Functions[0].Doc != wantDoc {
		t.Errorf("doc = %q", m.Functions[0].Doc)
	}
}

func TestExtractGoSyntaxError(t *testing.T) {
	e := NewExtractor(Options{})
	_, err := e.Extract(context.Background(), []byte("package broken\n\nfunc Oops( {"), lang.Go, "broken.go")
	if err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestExtractGoRenderRoundTrip(t *testing.T) {
	source := `package tiny

// Answer is the canonical value.
const Answer = 42

// Double doubles v.
func Double(v int) int { return v * 2 }
`
	e := NewExtractor(Options{})
	text, err := e.Text(context.Background(), []byte(source), lang.Go, "tiny.go")
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	for _, want := range []string{"const Answer", "func Double(v int) int"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in rendered summary:\n%s", want, text)
		}
	}
	if strings.Contains(text, "return") {
		t.Errorf("function body leaked into summary:\n%s", text)
	}
}
