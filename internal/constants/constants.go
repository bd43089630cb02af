// Package constants provides shared constants used across the feedrestore codebase.
//
// Constants are organized by category:
//   - File names: Configuration and manifest file names
//   - File extensions: Package archive and graph description extensions
//   - Graph description: Line prefixes and property keys of the graph format
//   - Protocol: HTTP feed conventions
//   - Environment: Environment variable names
package constants

// File names
const (
	// SettingsFileName is the name of the feedrestore settings file.
	SettingsFileName = "feedrestore.yaml"

	// ManifestFileName is the conventional name of a project's package manifest.
	ManifestFileName = "package.yaml"

	// AppDirName is the directory name used under user config and home directories.
	AppDirName = "feedrestore"
)

// File extensions
const (
	// GraphFileExt marks a file as a dependency graph description.
	GraphFileExt = ".dg"

	// PackageArchiveExt is the file extension of package archives.
	PackageArchiveExt = ".nupkg"

	// PackageHashExt is appended to an archive name for its SHA-512 hash file.
	PackageHashExt = ".sha512"

	// ServiceIndexExt marks a remote source as a V3 service index.
	ServiceIndexExt = ".json"
)

// Graph description
const (
	// GraphEntryPointPrefix starts a top-level project line: "#:<buildPath>".
	GraphEntryPointPrefix = "#:"

	// GraphPropertyPrefix starts a property line: "+:<buildPath>|<key>|<value>".
	GraphPropertyPrefix = "+:"

	// GraphCommentPrefix starts a comment line.
	GraphCommentPrefix = "//"

	// GraphSeparator separates fields on reference and property lines.
	GraphSeparator = "|"

	// PropertyManifestPath is the property key holding a project's manifest path.
	PropertyManifestPath = "ManifestPath"

	// PropertyProjectName is the property key holding a project's display name.
	PropertyProjectName = "ProjectName"

	// PropertyBuildPath overrides a project's build description path; empty clears it.
	PropertyBuildPath = "BuildPath"
)

// Protocol
const (
	// PackageBaseAddressType is the V3 service index resource type for the flat container.
	PackageBaseAddressType = "PackageBaseAddress/3.0.0"

	// SessionIDHeader carries the restore session id on every remote request.
	SessionIDHeader = "X-Feedrestore-Session-Id"
)

// Environment
const (
	// EnvPackagesFolder overrides the global packages folder.
	EnvPackagesFolder = "FEEDRESTORE_PACKAGES"

	// EnvConfigFile names an explicit settings file.
	EnvConfigFile = "FEEDRESTORE_CONFIG"
)
