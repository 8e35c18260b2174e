package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystemSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.js")
	if err := os.WriteFile(path, []byte("var x = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	content, err := NewFilesystem().Read(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(content) != "var x = 1;" {
		t.Errorf("content = %q", content)
	}
}

func TestMapSource(t *testing.T) {
	src := MapSource{"a.js": []byte("hello")}

	content, err := src.Read("a.js")
	if err != nil || string(content) != "hello" {
		t.Errorf("Read = %q, %v", content, err)
	}

	_, err = src.Read("missing.js")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file should report not-exist, got %v", err)
	}
}
