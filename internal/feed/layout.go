package feed

import (
	"path/filepath"
	"strings"

	"github.com/rahulagarwal0605/feedrestore/internal/constants"
)

// ArchiveName returns the canonical lower-cased archive file name for a package.
func ArchiveName(id, version string) string {
	return strings.ToLower(id) + "." + strings.ToLower(version) + constants.PackageArchiveExt
}

// HashFileName returns the name of the SHA-512 file stored next to an archive.
func HashFileName(id, version string) string {
	return ArchiveName(id, version) + constants.PackageHashExt
}

// V3PackageDir returns the version folder of a package in a V3 layout rooted at root.
func V3PackageDir(root, id, version string) string {
	return filepath.Join(root, strings.ToLower(id), strings.ToLower(version))
}

// V3PackagePath returns the archive path of a package in a V3 layout rooted at root.
func V3PackagePath(root, id, version string) string {
	return filepath.Join(V3PackageDir(root, id, version), ArchiveName(id, version))
}

// FlatPackagePath returns the archive path of a package in a flat folder.
// The id and version keep their case, matching how flat feeds are usually populated.
func FlatPackagePath(root, id, version string) string {
	return filepath.Join(root, id+"."+version+constants.PackageArchiveExt)
}
