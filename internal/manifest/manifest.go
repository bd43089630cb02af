// Package manifest loads project manifests, the pinned dependency lists restored by the engine.
package manifest

import (
	"fmt"
	"strings"

	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// Manifest represents a project's package.yaml.
type Manifest struct {
	Name         string       `yaml:"name"`
	Dependencies []Dependency `yaml:"dependencies,omitempty"`

	Path string `yaml:"-"` // File the manifest was loaded from
}

// Dependency is a pinned package requirement.
type Dependency struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
}

// String returns "id version".
func (d Dependency) String() string {
	return d.ID + " " + d.Version
}

// Validate checks that the id and version are well formed.
func (d Dependency) Validate() error {
	if err := utils.ValidatePackageID(d.ID); err != nil {
		return err
	}
	if err := utils.ValidateVersion(d.Version); err != nil {
		return fmt.Errorf("%s: %w", d.ID, err)
	}
	return nil
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	m, err := utils.ReadYAMLFile[Manifest](path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m.Path = path

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return m, nil
}

// Validate checks every dependency and rejects duplicate ids.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool)
	for _, dep := range m.Dependencies {
		if err := dep.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(dep.ID)
		if seen[key] {
			return fmt.Errorf("duplicate dependency %s", dep.ID)
		}
		seen[key] = true
	}
	return nil
}
