package request

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ferrors "github.com/rahulagarwal0605/feedrestore/internal/errors"
	"github.com/rahulagarwal0605/feedrestore/internal/graph"
	"github.com/rahulagarwal0605/feedrestore/internal/provider"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
	"github.com/rahulagarwal0605/feedrestore/internal/settings"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// setupWorkspace writes projects a, b and c where a references c.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		writeFile(t, filepath.Join(root, name, "package.yaml"), "name: "+name+"\n")
	}
	writeFile(t, filepath.Join(root, "restore.dg"), strings.Join([]string{
		"#:a/a.proj",
		"#:b/b.proj",
		"+:a/a.proj|ManifestPath|a/package.yaml",
		"+:b/b.proj|ManifestPath|b/package.yaml",
		"+:c/c.proj|ManifestPath|c/package.yaml",
		"a/a.proj|c/c.proj",
	}, "\n"))
	return root
}

func newConfig(t *testing.T) *session.Config {
	t.Helper()
	return &session.Config{
		Settings:      &settings.Settings{GlobalPackagesFolder: filepath.Join(t.TempDir(), "packages")},
		ProviderCache: provider.NewCache(nil, false),
	}
}

func referenceIDs(nodes []*graph.ProjectNode) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestGraphFileProvider_Supports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "restore.dg"), "")
	writeFile(t, filepath.Join(root, "upper.DG"), "")
	writeFile(t, filepath.Join(root, "restore.txt"), "")

	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr error
	}{
		{name: "graph file", input: filepath.Join(root, "restore.dg"), want: true},
		{name: "upper-case extension", input: filepath.Join(root, "upper.DG"), want: true},
		{name: "missing file", input: filepath.Join(root, "missing.dg"), want: false},
		{name: "other extension", input: filepath.Join(root, "restore.txt"), want: false},
		{name: "empty", input: "", wantErr: ferrors.ErrInputPathRequired},
		{name: "blank", input: "  ", wantErr: ferrors.ErrInputPathRequired},
	}

	p := NewGraphFileProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Supports(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Supports() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Supports() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGraphFileProvider_CreateRequests(t *testing.T) {
	root := setupWorkspace(t)
	cfg := newConfig(t)

	requests, err := NewGraphFileProvider().CreateRequests(context.Background(), filepath.Join(root, "restore.dg"), cfg)
	if err != nil {
		t.Fatalf("CreateRequests() error = %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("CreateRequests() returned %d requests, want 2", len(requests))
	}

	a, b := requests[0], requests[1]
	if a.Err != nil || b.Err != nil {
		t.Fatalf("unexpected request errors: %v, %v", a.Err, b.Err)
	}
	if a.BuildPath != filepath.Join(root, "a", "a.proj") {
		t.Errorf("BuildPath = %q", a.BuildPath)
	}
	if a.ManifestPath != filepath.Join(root, "a", "package.yaml") {
		t.Errorf("ManifestPath = %q", a.ManifestPath)
	}
	if a.Manifest == nil || a.Manifest.Name != "a" {
		t.Errorf("Manifest = %+v", a.Manifest)
	}

	if got := referenceIDs(a.References); len(got) != 1 || got[0] != "c/c.proj" {
		t.Errorf("a references = %v, want [c/c.proj]", got)
	}
	if got := referenceIDs(b.References); len(got) != 0 {
		t.Errorf("b references = %v, want none", got)
	}

	if a.Cache == nil || a.Cache != b.Cache {
		t.Error("requests with equal settings should share one cache entry")
	}
	if cfg.ProviderCache.Len() != 1 {
		t.Errorf("provider cache has %d entries, want 1", cfg.ProviderCache.Len())
	}
}

func TestGraphFileProvider_CreateRequests_MissingManifest(t *testing.T) {
	root := setupWorkspace(t)
	if err := os.Remove(filepath.Join(root, "b", "package.yaml")); err != nil {
		t.Fatal(err)
	}

	requests, err := NewGraphFileProvider().CreateRequests(context.Background(), filepath.Join(root, "restore.dg"), newConfig(t))
	if err != nil {
		t.Fatalf("CreateRequests() error = %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("CreateRequests() returned %d requests, want 2", len(requests))
	}
	if requests[0].Err != nil {
		t.Errorf("a should build cleanly, got %v", requests[0].Err)
	}
	if requests[1].Err == nil {
		t.Error("b should carry the manifest error")
	}
}

func TestGraphFileProvider_CreateRequests_CacheKeyError(t *testing.T) {
	root := setupWorkspace(t)
	cfg := newConfig(t)
	cfg.Settings = &settings.Settings{} // No global packages folder

	requests, err := NewGraphFileProvider().CreateRequests(context.Background(), filepath.Join(root, "restore.dg"), cfg)
	if err != nil {
		t.Fatalf("CreateRequests() error = %v", err)
	}
	for _, req := range requests {
		if req.Err == nil {
			t.Errorf("%s: expected cache key error", req.ProjectPath())
		}
	}
}

type failingResolver struct{}

func (failingResolver) ResolveSettings(ctx context.Context, startDir string) (*settings.Settings, error) {
	return nil, errors.New("unreadable settings")
}

func TestGraphFileProvider_CreateRequests_SettingsError(t *testing.T) {
	root := setupWorkspace(t)
	cfg := &session.Config{SettingsResolver: failingResolver{}, ProviderCache: provider.NewCache(nil, false)}

	requests, err := NewGraphFileProvider().CreateRequests(context.Background(), filepath.Join(root, "restore.dg"), cfg)
	if err != nil {
		t.Fatalf("CreateRequests() error = %v", err)
	}
	if len(requests) != 2 || requests[0].Err == nil || requests[1].Err == nil {
		t.Error("every request should carry the settings error")
	}
}

func TestGraphFileProvider_CreateRequests_Canceled(t *testing.T) {
	root := setupWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGraphFileProvider().CreateRequests(ctx, filepath.Join(root, "restore.dg"), newConfig(t)); err == nil {
		t.Error("CreateRequests() expected error for cancelled context")
	}
}

func TestPreloadedGraphProvider(t *testing.T) {
	root := setupWorkspace(t)
	data, err := os.ReadFile(filepath.Join(root, "restore.dg"))
	if err != nil {
		t.Fatal(err)
	}

	p := NewPreloadedGraphProvider(strings.Split(string(data), "\n"))
	p.BaseDir = root

	requests, err := p.CreateRequests(context.Background(), newConfig(t))
	if err != nil {
		t.Fatalf("CreateRequests() error = %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("CreateRequests() returned %d requests, want 2", len(requests))
	}
	if requests[0].ProjectName() != "a" || requests[1].ProjectName() != "b" {
		t.Errorf("names = %q, %q", requests[0].ProjectName(), requests[1].ProjectName())
	}
}

func TestPreloadedGraphProvider_Empty(t *testing.T) {
	requests, err := NewPreloadedGraphProvider(nil).CreateRequests(context.Background(), newConfig(t))
	if err != nil {
		t.Fatalf("CreateRequests() error = %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("CreateRequests() returned %d requests, want 0", len(requests))
	}
}
