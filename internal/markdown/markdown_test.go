package markdown

import (
	"errors"
	"strings"
	"testing"
)

type stubRenderer func(string) (string, error)

func (f stubRenderer) Render(value string) (string, error) {
	return f(value)
}

func withRenderer(t *testing.T, width int, r renderer) {
	t.Helper()

	rendererMu.Lock()
	prev, hadPrev := renderers[width]
	renderers[width] = r
	rendererMu.Unlock()

	t.Cleanup(func() {
		rendererMu.Lock()
		defer rendererMu.Unlock()
		if hadPrev {
			renderers[width] = prev
		} else {
			delete(renderers, width)
		}
	})
}

func TestRenderRecoversFromRendererPanic(t *testing.T) {
	withRenderer(t, 20, stubRenderer(func(string) (string, error) { panic("boom") }))

	if out := Render(20, 0, []byte("hello\n")); string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", out)
	}
}

func TestRenderFallsBackOnError(t *testing.T) {
	withRenderer(t, 21, stubRenderer(func(string) (string, error) { return "", errors.New("nope") }))

	if out := Render(21, 0, []byte("hello\r\n")); string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", out)
	}
}

func TestRenderIndents(t *testing.T) {
	withRenderer(t, 18, stubRenderer(func(value string) (string, error) { return value + "\nsecond\n\n", nil }))

	out := Render(20, 2, []byte("first"))
	if string(out) != "  first\n  second" {
		t.Fatalf("expected indented output, got %q", out)
	}
}

func TestRenderBlankInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   "} {
		if out := Render(80, 0, []byte(input)); out != nil {
			t.Fatalf("expected nil for %q, got %q", input, out)
		}
	}
}

func TestRenderWithGlamour(t *testing.T) {
	out := string(Render(80, 0, []byte("- one\n- two")))
	if !strings.Contains(out, "one") || !strings.Contains(out, "two") {
		t.Fatalf("expected list items in output, got %q", out)
	}
}
