package utils

import (
	"path/filepath"
	"testing"
)

type yamlSample struct {
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
}

func TestWriteAndReadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	in := yamlSample{Name: "app", Sources: []string{"/feeds/local"}}

	if err := WriteYAML(path, in); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	out, err := ReadYAMLFile[yamlSample](path)
	if err != nil {
		t.Fatalf("ReadYAMLFile() error = %v", err)
	}
	if out.Name != "app" || len(out.Sources) != 1 || out.Sources[0] != "/feeds/local" {
		t.Errorf("ReadYAMLFile() = %+v", out)
	}
}

func TestReadYAMLFileIfExists(t *testing.T) {
	got, err := ReadYAMLFileIfExists[yamlSample](filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("ReadYAMLFileIfExists() error = %v", err)
	}
	if got != nil {
		t.Errorf("ReadYAMLFileIfExists() = %+v, want nil", got)
	}
}
