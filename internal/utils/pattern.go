package utils

import (
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobFiles returns the slash-separated paths under root matching pattern,
// skipping directories. Unreadable subtrees are ignored.
func GlobFiles(root, pattern string) ([]string, error) {
	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

