package lang

import "testing"

func TestFromExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want Language
		ok   bool
	}{
		{".go", Go, true},
		{".js", JavaScript, true},
		{".mjs", JavaScript, true},
		{".jsx", JavaScript, true},
		{".ts", TypeScript, true},
		{".tsx", TypeScript, true},
		{".py", Python, true},
		{".rs", Rust, true},
		{".java", Java, true},
		{".GO", Go, true},
		{".txt", "", false},
		{".md", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := FromExtension(tc.ext)
		if got != tc.want || ok != tc.ok {
			t.Errorf("FromExtension(%q) = %q, %t", tc.ext, got, ok)
		}
	}
}

func TestFromPath(t *testing.T) {
	if got, ok := FromPath("internal/cache/cache.go"); !ok || got != Go {
		t.Errorf("FromPath go file = %q, %t", got, ok)
	}
	if got, ok := FromPath("src/App.test.tsx"); !ok || got != TypeScript {
		t.Errorf("FromPath tsx file = %q, %t", got, ok)
	}
	if _, ok := FromPath("README"); ok {
		t.Error("extensionless path should be unsupported")
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("main.rs") {
		t.Error("rust should be supported")
	}
	if IsSupported("notes.txt") {
		t.Error("plain text should be unsupported")
	}
}
