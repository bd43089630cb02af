package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rahulagarwal0605/feedrestore/internal/constants"
	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/manifest"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// Workspace is a temporary tree of projects with a dependency graph.
type Workspace struct {
	Root  string
	lines []string
}

// SetupTestWorkspace creates an empty workspace whose settings file clears inherited sources.
func SetupTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws := &Workspace{Root: t.TempDir()}
	WriteFile(t, ws.SettingsFile(), "clear: true\n")
	return ws
}

// SettingsFile returns the workspace settings file path.
func (w *Workspace) SettingsFile() string {
	return filepath.Join(w.Root, constants.SettingsFileName)
}

// AddProject writes a manifest for name and declares it in the graph.
// Top-level projects become entry points.
func (w *Workspace) AddProject(t *testing.T, name string, topLevel bool, deps ...manifest.Dependency) string {
	t.Helper()
	m := manifest.Manifest{Name: name, Dependencies: deps}
	manifestPath := filepath.Join(w.Root, name, constants.ManifestFileName)
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
		t.Fatalf("Failed to create project directory: %v", err)
	}
	if err := utils.WriteYAML(manifestPath, &m); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	buildPath := w.BuildPath(name)
	if topLevel {
		w.lines = append(w.lines, constants.GraphEntryPointPrefix+buildPath)
	}
	w.lines = append(w.lines, fmt.Sprintf("%s%s|%s|%s", constants.GraphPropertyPrefix, buildPath, constants.PropertyManifestPath, manifestPath))
	return buildPath
}

// AddReference adds a reference edge between two projects.
func (w *Workspace) AddReference(from, to string) {
	w.lines = append(w.lines, w.BuildPath(from)+constants.GraphSeparator+w.BuildPath(to))
}

// BuildPath returns the build description path of a project.
func (w *Workspace) BuildPath(name string) string {
	return filepath.Join(w.Root, name, name+".proj")
}

// GraphLines returns the graph description built so far.
func (w *Workspace) GraphLines() []string {
	return append([]string(nil), w.lines...)
}

// WriteGraph writes the graph description to name under the workspace root.
func (w *Workspace) WriteGraph(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(w.Root, name)
	WriteFile(t, path, strings.Join(w.lines, "\n")+"\n")
	return path
}

// CreateFlatFeed creates a folder holding archives named {id}.{version}.nupkg.
func CreateFlatFeed(t *testing.T, packages ...manifest.Dependency) string {
	t.Helper()
	dir := t.TempDir()
	for _, p := range packages {
		WriteFile(t, feed.FlatPackagePath(dir, p.ID, p.Version), p.String())
	}
	return dir
}

// CreateV3Feed creates a folder in {id}/{version}/{id}.{version}.nupkg layout.
func CreateV3Feed(t *testing.T, packages ...manifest.Dependency) string {
	t.Helper()
	dir := t.TempDir()
	for _, p := range packages {
		WriteFile(t, feed.V3PackagePath(dir, p.ID, p.Version), p.String())
	}
	return dir
}

// Package returns a dependency.
func Package(id, version string) manifest.Dependency {
	return manifest.Dependency{ID: id, Version: version}
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads a file's contents.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	return string(data)
}
