package utils

import (
	"net/url"
	"path/filepath"
	"strings"
)

// IsHTTPURL reports whether s is an absolute http or https URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// LocalPath converts a file:// URL to a filesystem path. Other input is returned cleaned.
func LocalPath(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "file://") {
		if u, err := url.Parse(s); err == nil {
			return filepath.FromSlash(u.Path)
		}
	}
	return filepath.Clean(s)
}
