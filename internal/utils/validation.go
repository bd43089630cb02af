package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Dot-separated runs of letters, digits, '_' and '-'
	packageIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)
	// Same, with '+' allowed before build metadata
	versionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+([.+][A-Za-z0-9_-]+)*$`)
)

// ValidatePackageID validates a package identifier.
// A valid id is made of letters, digits, '.', '_' and '-', and neither starts nor
// ends with a dot, so it is always a single safe path segment.
func ValidatePackageID(id string) error {
	if id == "" {
		return fmt.Errorf("package id cannot be empty")
	}
	if !packageIDPattern.MatchString(id) {
		return fmt.Errorf("invalid package id %q", id)
	}
	return nil
}

// ValidateVersion validates a package version string.
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	if !versionPattern.MatchString(version) {
		return fmt.Errorf("invalid version %q", version)
	}
	return nil
}

// WithinDir reports whether path is dir or lies below it after cleaning.
func WithinDir(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
