package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirExists checks if a directory exists at the given path.
func DirExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	return err == nil && info.IsDir()
}

// FileExists checks if a regular file exists at the given path.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

// CreateDir creates a directory if it doesn't exist.
func CreateDir(path, name string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create %s dir: %w", name, err)
	}
	return nil
}

// WriteFileAtomic copies r into path through a temporary sibling file and a rename,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, r io.Reader) error {
	if err := CreateDir(filepath.Dir(path), "parent"); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
