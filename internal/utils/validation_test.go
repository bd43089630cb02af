package utils

import (
	"path/filepath"
	"testing"
)

func TestValidatePackageID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{id: "Newtonsoft.Json", wantErr: false},
		{id: "My_Lib-2", wantErr: false},
		{id: "", wantErr: true},
		{id: "a/b", wantErr: true},
		{id: `a\b`, wantErr: true},
		{id: "a b", wantErr: true},
		{id: ".", wantErr: true},
		{id: "..", wantErr: true},
		{id: ".hidden", wantErr: true},
		{id: "trailing.", wantErr: true},
		{id: "a..b", wantErr: true},
		{id: "a?b", wantErr: true},
		{id: "a#b", wantErr: true},
		{id: "a%2fb", wantErr: true},
	}

	for _, tt := range tests {
		if err := ValidatePackageID(tt.id); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePackageID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{version: "1.0.0", wantErr: false},
		{version: "2.0.0-beta.1", wantErr: false},
		{version: "1.0.0+build.5", wantErr: false},
		{version: "", wantErr: true},
		{version: "../1.0", wantErr: true},
		{version: "1.0/2", wantErr: true},
		{version: "..", wantErr: true},
		{version: ".1", wantErr: true},
		{version: "1.0.", wantErr: true},
		{version: "1.0?x", wantErr: true},
		{version: "1.0#x", wantErr: true},
	}

	for _, tt := range tests {
		if err := ValidateVersion(tt.version); (err != nil) != tt.wantErr {
			t.Errorf("ValidateVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
		}
	}
}

func TestWithinDir(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "pkgs")
	tests := []struct {
		path string
		want bool
	}{
		{path: root, want: true},
		{path: filepath.Join(root, "foo", "1.0.0", "foo.1.0.0.nupkg"), want: true},
		{path: filepath.Join(root, "..", "1.0.0", "x.nupkg"), want: false},
		{path: filepath.Join(string(filepath.Separator), "pkgs2", "x"), want: false},
		{path: filepath.Join(root, "..foo", "x"), want: true},
	}

	for _, tt := range tests {
		if got := WithinDir(root, tt.path); got != tt.want {
			t.Errorf("WithinDir(%q, %q) = %v, want %v", root, tt.path, got, tt.want)
		}
	}
}
