package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invite.ics")

	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}
	if err := WriteFile(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFile() returned an error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() returned an error: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Expected 'new', got %q", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() returned an error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("Expected mode 0644, got %o", perm)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() returned an error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestWriteFile_Errors(t *testing.T) {
	if err := WriteFile("", []byte("x"), 0o600); err == nil {
		t.Error("Expected error for empty path")
	}

	path := filepath.Join(t.TempDir(), "nope", "invite.ics")
	if err := WriteFile(path, []byte("x"), 0o600); err == nil {
		t.Error("Expected error for missing directory")
	}
	if _, err := os.Stat(filepath.Dir(path)); !os.IsNotExist(err) {
		t.Errorf("Expected directory to stay absent, stat returned %v", err)
	}
}
