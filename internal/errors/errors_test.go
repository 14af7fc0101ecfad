package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(FileNotFound, "File not found: a.go")
	if got := err.Error(); got != "[FILE_NOT_FOUND] File not found: a.go" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("permission denied")
	wrapped := Wrap(ReadFailed, "Failed to read a.go", cause)
	if !strings.Contains(wrapped.Error(), "permission denied") {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewNoMatch("a.go")); got != NoMatch {
		t.Errorf("code = %q", got)
	}
	if got := CodeOf(fmt.Errorf("outer: %w", NewNotFound("b.go"))); got != FileNotFound {
		t.Errorf("code through wrapping = %q", got)
	}
	if got := CodeOf(errors.New("plain")); got != InternalError {
		t.Errorf("plain error code = %q", got)
	}
}

func TestIsCode(t *testing.T) {
	err := NewAmbiguousMatch("a.go", 3)
	if !IsCode(err, AmbiguousMatch) {
		t.Error("IsCode should match")
	}
	if IsCode(err, NoMatch) {
		t.Error("IsCode should not match a different code")
	}
	if !strings.Contains(err.Error(), "3 occurrences") {
		t.Errorf("message = %q", err.Error())
	}
}
