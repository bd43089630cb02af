package utils

import (
	"path/filepath"
	"strings"
)

// NormalizePath cleans a path and optionally lower-cases it.
// Empty input stays empty.
func NormalizePath(p string, lowercase bool) string {
	if p == "" {
		return ""
	}
	p = filepath.Clean(p)
	if lowercase {
		p = strings.ToLower(p)
	}
	return p
}

// ResolvePath makes p absolute relative to base. Absolute paths are only cleaned.
func ResolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// AncestorDirs returns dir and each of its parents, outermost first.
// Example: "/a/b" -> ["/", "/a", "/a/b"]
func AncestorDirs(dir string) []string {
	dir = filepath.Clean(dir)
	var dirs []string
	for {
		dirs = append(dirs, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
