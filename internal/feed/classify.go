package feed

import (
	"path"
	"strings"

	"github.com/rahulagarwal0605/feedrestore/internal/constants"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// Archive globs. Flat feeds accept any extension case; version folders are matched
// in lower case because the V3 layout lower-cases every path segment.
const (
	flatArchivePattern    = "*.[nN][uU][pP][kK][gG]"
	versionArchivePattern = "*/*/*" + constants.PackageArchiveExt
)

// Classify determines the feed type of a source. It works for both offline and online
// sources and never caches: a missing folder classifies as FileSystemUnknown and
// should be classified again once it exists.
func Classify(source PackageSource) FeedType {
	if source.IsRemote() {
		if utils.HasSuffixFold(source.Source(), constants.ServiceIndexExt) {
			return HTTPV3
		}
		return HTTPV2
	}

	if !source.IsLocal() {
		return FileSystemUnknown
	}

	root := source.Source()
	if !utils.DirExists(root) {
		// Check again later
		return FileSystemUnknown
	}

	// Flat archives take precedence over a version-folder structure in the same directory.
	if hasFlatArchives(root) {
		return FileSystemV2
	}

	if archives := versionFolderArchives(root); len(archives) > 0 {
		return classifyVersionFolders(archives)
	}

	return FileSystemUnknown
}

// hasFlatArchives reports whether root directly contains package archives.
func hasFlatArchives(root string) bool {
	files, err := utils.GlobFiles(root, flatArchivePattern)
	return err == nil && len(files) > 0
}

// versionFolderArchives returns archives found at {id}/{version}/*.nupkg under root.
func versionFolderArchives(root string) []string {
	files, err := utils.GlobFiles(root, versionArchivePattern)
	if err != nil {
		return nil
	}
	return files
}

// classifyVersionFolders distinguishes the V3 layout, where the archive is named after
// its folders, from nested V2 layouts that merely group archives into folders.
func classifyVersionFolders(archives []string) FeedType {
	for _, archive := range archives {
		if isV3Archive(archive) {
			return FileSystemV3
		}
	}
	return FileSystemV2
}

// isV3Archive checks "id/version/id.version.nupkg" with case-normalized comparison.
func isV3Archive(archive string) bool {
	versionDir, file := path.Split(archive)
	versionDir = strings.TrimSuffix(versionDir, "/")
	idDir, version := path.Split(versionDir)
	id := strings.TrimSuffix(idDir, "/")
	if id == "" || version == "" {
		return false
	}
	return strings.ToLower(file) == ArchiveName(id, version)
}
