package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDataDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	dir, err := DefaultDataDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".local", "share", "taskshare")
	if dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestDefaultDatabasePathUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	path, err := DefaultDatabasePath()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".local", "share", "taskshare", "taskshare.db")
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
}

func TestGlobalConfigPathUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	path, err := GlobalConfigPath()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".config", "taskshare", "config.toml")
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
}

func TestWorkingDirMatchesGetwd(t *testing.T) {
	want, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	got, err := WorkingDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	cases := []struct {
		input string
		want  string
	}{
		{input: "~", want: filepath.Join("/tmp", "test-home")},
		{input: "~/data", want: filepath.Join("/tmp", "test-home", "data")},
		{input: "/var/data", want: "/var/data"},
		{input: "relative/~/x", want: "relative/~/x"},
		{input: "~other", want: "~other"},
	}

	for _, tc := range cases {
		got, err := ExpandHome(tc.input)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
