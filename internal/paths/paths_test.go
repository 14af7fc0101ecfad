package paths

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		path, root, want string
	}{
		{"a.go", "/proj", "/proj/a.go"},
		{"./a.go", "/proj", "/proj/a.go"},
		{"sub/../a.go", "/proj", "/proj/a.go"},
		{"/abs/b.go", "/proj", "/abs/b.go"},
		{"/abs/x/../b.go", "/proj", "/abs/b.go"},
	}
	for _, tc := range cases {
		if got := Resolve(tc.path, tc.root); got != tc.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tc.path, tc.root, got, tc.want)
		}
	}
}

func TestResolveCollapsesEquivalentSpellings(t *testing.T) {
	root := "/proj"
	a := Resolve("pkg/a.go", root)
	b := Resolve("./pkg/./a.go", root)
	c := Resolve("/proj/pkg/a.go", root)
	if a != b || b != c {
		t.Errorf("spellings diverge: %q, %q, %q", a, b, c)
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		abs, root, want string
	}{
		{"/proj/a.go", "/proj", "a.go"},
		{"/proj/sub/b.go", "/proj", "sub/b.go"},
		{"/elsewhere/c.go", "/proj", "/elsewhere/c.go"},
	}
	for _, tc := range cases {
		if got := Display(tc.abs, tc.root); got != tc.want {
			t.Errorf("Display(%q, %q) = %q, want %q", tc.abs, tc.root, got, tc.want)
		}
	}
}

func TestIsWithinRoot(t *testing.T) {
	if !IsWithinRoot("a.go", "/proj") {
		t.Error("relative path should be within root")
	}
	if !IsWithinRoot("/proj/sub/a.go", "/proj") {
		t.Error("nested absolute path should be within root")
	}
	if IsWithinRoot("/other/a.go", "/proj") {
		t.Error("outside path reported as within root")
	}
	if IsWithinRoot("../escape.go", "/proj") {
		t.Error("parent traversal reported as within root")
	}
}
