package task

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/provider"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
	"github.com/rahulagarwal0605/feedrestore/internal/settings"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRestoreTask_Execute(t *testing.T) {
	root := t.TempDir()
	feedDir := filepath.Join(root, "feed")

	writeFile(t, filepath.Join(feedDir, "Demo.1.0.0.nupkg"), "demo")
	writeFile(t, filepath.Join(root, "app", "package.yaml"), "name: app\ndependencies:\n  - id: Demo\n    version: 1.0.0\n")
	writeFile(t, filepath.Join(root, "lib", "package.yaml"), "name: lib\n")

	lines := []string{
		"#:app/app.proj",
		"+:app/app.proj|ManifestPath|app/package.yaml",
		"+:lib/lib.proj|ManifestPath|lib/package.yaml",
		"app/app.proj|lib/lib.proj",
	}

	tests := []struct {
		name    string
		sources []feed.PackageSource
		want    bool
	}{
		{name: "package available", sources: []feed.PackageSource{feed.NewPackageSource(feedDir)}, want: true},
		{name: "package missing", sources: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)
			globalDir := filepath.Join(t.TempDir(), "packages")
			task := &RestoreTask{
				GraphLines: lines,
				BaseDir:    root,
				Config: &session.Config{
					Settings: &settings.Settings{GlobalPackagesFolder: globalDir, Sources: tt.sources},
				},
			}

			if got := task.Execute(context.Background(), &log); got != tt.want {
				t.Errorf("Execute() = %v, want %v\n%s", got, tt.want, buf.String())
			}
			if !strings.Contains(buf.String(), "Restore summary") {
				t.Errorf("summary not logged:\n%s", buf.String())
			}
		})
	}
}

func TestRestoreTask_EmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	task := &RestoreTask{Config: &session.Config{Settings: &settings.Settings{}}}

	if !task.Execute(context.Background(), &log) {
		t.Error("Execute() = false, want vacuous success")
	}
	if !strings.Contains(buf.String(), "No restore requests were created") {
		t.Errorf("expected warning for empty graph:\n%s", buf.String())
	}
}

func TestRestoreTask_ExecuteTwice(t *testing.T) {
	root := t.TempDir()
	feedDir := filepath.Join(root, "feed")
	writeFile(t, filepath.Join(feedDir, "Demo.1.0.0.nupkg"), "demo")
	writeFile(t, filepath.Join(root, "app", "package.yaml"), "name: app\ndependencies:\n  - id: Demo\n    version: 1.0.0\n")

	lines := []string{
		"#:app/app.proj",
		"+:app/app.proj|ManifestPath|app/package.yaml",
	}
	sources := []feed.PackageSource{feed.NewPackageSource(feedDir)}

	tests := []struct {
		name      string
		providers *provider.Cache
	}{
		{name: "task-owned provider cache"},
		{name: "caller provider cache", providers: provider.NewCache(nil, false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &session.Config{
				Settings: &settings.Settings{
					GlobalPackagesFolder: filepath.Join(t.TempDir(), "packages"),
					Sources:              sources,
				},
				ProviderCache: tt.providers,
			}
			task := &RestoreTask{GraphLines: lines, BaseDir: root, Config: cfg}

			for run := 1; run <= 2; run++ {
				var buf bytes.Buffer
				log := zerolog.New(&buf)
				if !task.Execute(context.Background(), &log) {
					t.Fatalf("run %d: Execute() = false\n%s", run, buf.String())
				}
				if cfg.CacheContext != nil {
					t.Errorf("run %d: cache context left on config", run)
				}
				if cfg.ProviderCache != tt.providers {
					t.Errorf("run %d: provider cache not restored", run)
				}
			}
		})
	}
}
