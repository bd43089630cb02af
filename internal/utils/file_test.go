package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "a.nupkg")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing directory", path: tmpDir, want: true},
		{name: "missing directory", path: filepath.Join(tmpDir, "missing"), want: false},
		{name: "file is not a directory", path: filePath, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirExists(tt.path); got != tt.want {
				t.Errorf("DirExists() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(filePath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(filePath) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true for missing file")
	}
	if FileExists(tmpDir) {
		t.Error("FileExists() = true for a directory")
	}
}

func TestCreateDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parent", "child")
	if err := CreateDir(path, "nested"); err != nil {
		t.Fatalf("CreateDir() error = %v", err)
	}
	if !DirExists(path) {
		t.Errorf("CreateDir() directory was not created: %s", path)
	}
	if err := CreateDir(path, "nested"); err != nil {
		t.Errorf("CreateDir() on existing dir error = %v", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "pkgs", "foo", "1.0.0", "foo.1.0.0.nupkg")

	if err := WriteFileAtomic(dest, strings.NewReader("archive")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "archive" {
		t.Errorf("content = %q, want %q", data, "archive")
	}

	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the final file, got %d entries", len(entries))
	}
}
