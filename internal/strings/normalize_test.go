package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  "",
		},
		{
			name:  "single token",
			input: "milk",
			want:  "milk",
		},
		{
			name:  "collapses spaces",
			input: "pay   the    rent",
			want:  "pay the rent",
		},
		{
			name:  "collapses newlines",
			input: "pay\n\n the\trent",
			want:  "pay the rent",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeWhitespace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeLowerTrimSpace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already lower", input: "high", want: "high"},
		{name: "mixed case", input: "MeDiUm", want: "medium"},
		{name: "surrounding space", input: "  Low \n", want: "low"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLowerTrimSpace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	got := NormalizeNewlines("one\r\ntwo\rthree\n")
	if got != "one\ntwo\nthree\n" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	got := TrimTrailingNewlines("body\r\n\n")
	if got != "body" {
		t.Fatalf("expected body, got %q", got)
	}
}

func TestTrimTrailingSlash(t *testing.T) {
	cases := map[string]string{
		"http://localhost:8080/":   "http://localhost:8080",
		"http://localhost:8080///": "http://localhost:8080",
		"http://localhost:8080":    "http://localhost:8080",
		"":                         "",
	}
	for input, want := range cases {
		if got := TrimTrailingSlash(input); got != want {
			t.Fatalf("TrimTrailingSlash(%q) = %q, want %q", input, got, want)
		}
	}
}
