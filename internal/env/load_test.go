package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nFOO=bar\nQUOTED=\"hello world\"\nBROKEN\n=nokey\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOO", "")
	t.Setenv("QUOTED", "")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("FOO"); got != "bar" {
		t.Errorf("FOO = %q", got)
	}
	if got := os.Getenv("QUOTED"); got != "hello world" {
		t.Errorf("QUOTED = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}

func TestGet(t *testing.T) {
	t.Setenv("SOME_KEY", "set")
	if got := Get("SOME_KEY", "fb"); got != "set" {
		t.Errorf("Get = %q", got)
	}
	if got := Get("SOME_UNSET_KEY", "fb"); got != "fb" {
		t.Errorf("fallback = %q", got)
	}
}
