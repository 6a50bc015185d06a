package ids

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewTaskID(t *testing.T) {
	id := NewTaskID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a UUID, got %q: %v", id, err)
	}
}

func TestNewTaskID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewTaskID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}

func TestNewShareCode(t *testing.T) {
	code := NewShareCode()

	if len(code) != ShareCodeLength {
		t.Fatalf("expected code length %d, got %d: %q", ShareCodeLength, len(code), code)
	}
	for _, c := range code {
		if !strings.ContainsRune(ShareCodeAlphabet, c) {
			t.Errorf("code contains invalid character %q: %q", c, code)
		}
	}
	if !IsShareCode(code) {
		t.Errorf("generated code %q does not pass IsShareCode", code)
	}
}

func TestRandomString_Edges(t *testing.T) {
	if got := RandomString(ShareCodeAlphabet, 0); got != "" {
		t.Fatalf("expected empty string for zero length, got %q", got)
	}
	if got := RandomString("", 5); got != "" {
		t.Fatalf("expected empty string for empty alphabet, got %q", got)
	}
	if got := RandomString("x", 4); got != "xxxx" {
		t.Fatalf("expected xxxx, got %q", got)
	}
}

func TestIsShareCode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{code: "aB3dE5gH9k", want: true},
		{code: "aB3dE5gH9", want: false},
		{code: "aB3dE5gH9kX", want: false},
		{code: "aB3dE5gH9-", want: false},
		{code: "aB3dE/gH9k", want: false},
		{code: "", want: false},
	}

	for _, tc := range cases {
		if got := IsShareCode(tc.code); got != tc.want {
			t.Errorf("IsShareCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
