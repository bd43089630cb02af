// Package graph reads dependency graph descriptions into project nodes.
package graph

import (
	"path/filepath"
	"strings"
)

// ProjectNode is a project in the graph with its outgoing references.
type ProjectNode struct {
	ID           string // Identity as written in the graph description
	Name         string // Display name, defaults to the build file's base name
	ManifestPath string // Package manifest; empty for non-restorable projects
	BuildPath    string // Build description; empty when the project has none

	references []string // Keys of referenced nodes, in declaration order
	declared   bool     // Seen as a declaration rather than only as a reference target
}

// IsEntryPoint reports whether the project can be restored on its own.
func (n *ProjectNode) IsEntryPoint() bool {
	return n.ManifestPath != "" && n.BuildPath != ""
}

// DisplayName returns Name, falling back to the build path's base name and then the ID.
func (n *ProjectNode) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	if n.BuildPath != "" {
		return strings.TrimSuffix(filepath.Base(n.BuildPath), filepath.Ext(n.BuildPath))
	}
	return n.ID
}

// nodeKey normalizes a project identity for lookups.
func nodeKey(id string) string {
	return strings.ToLower(filepath.Clean(strings.TrimSpace(id)))
}
