package feed

import (
	"path/filepath"
	"testing"
)

func TestFeedType_String(t *testing.T) {
	tests := []struct {
		t    FeedType
		want string
	}{
		{t: HTTPV2, want: "HttpV2"},
		{t: HTTPV3, want: "HttpV3"},
		{t: FileSystemV2, want: "FileSystemV2"},
		{t: FileSystemV3, want: "FileSystemV3"},
		{t: FileSystemUnknown, want: "FileSystemUnknown"},
		{t: FeedType(42), want: "FeedType(42)"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %v, want %v", got, tt.want)
		}
	}
}

func TestPackageSource(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSource string
		wantRemote bool
		wantLocal  bool
	}{
		{name: "https url", input: " https://feed.local/v3/index.json ", wantSource: "https://feed.local/v3/index.json", wantRemote: true},
		{name: "local path cleaned", input: "/srv/feeds/../local/", wantSource: "/srv/local", wantLocal: true},
		{name: "file url", input: "file:///srv/local", wantSource: filepath.FromSlash("/srv/local"), wantLocal: true},
		{name: "empty", input: "", wantSource: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPackageSource(tt.input)
			if s.Source() != tt.wantSource {
				t.Errorf("Source() = %q, want %q", s.Source(), tt.wantSource)
			}
			if s.IsRemote() != tt.wantRemote {
				t.Errorf("IsRemote() = %v, want %v", s.IsRemote(), tt.wantRemote)
			}
			if s.IsLocal() != tt.wantLocal {
				t.Errorf("IsLocal() = %v, want %v", s.IsLocal(), tt.wantLocal)
			}
		})
	}
}

func TestPackageSource_Equal(t *testing.T) {
	if !NewPackageSource("https://feed.local/api/v2/").Equal(NewPackageSource("https://feed.local/api/v2")) {
		t.Error("trailing slash should not affect equality")
	}
	if !NewPackageSource("/srv/a/").Equal(NewNamedPackageSource("local", "/srv/a")) {
		t.Error("names should not affect equality")
	}
	if NewPackageSource("/srv/a").Equal(NewPackageSource("/srv/b")) {
		t.Error("different paths should not be equal")
	}
}

func TestLayoutPaths(t *testing.T) {
	if got := ArchiveName("Foo.Bar", "1.0.0-Beta"); got != "foo.bar.1.0.0-beta.nupkg" {
		t.Errorf("ArchiveName() = %v", got)
	}
	if got := HashFileName("Foo", "1.0.0"); got != "foo.1.0.0.nupkg.sha512" {
		t.Errorf("HashFileName() = %v", got)
	}
	want := filepath.Join("/pkgs", "foo", "1.0.0", "foo.1.0.0.nupkg")
	if got := V3PackagePath("/pkgs", "Foo", "1.0.0"); got != want {
		t.Errorf("V3PackagePath() = %v, want %v", got, want)
	}
	if got := FlatPackagePath("/feed", "Foo", "1.0.0"); got != filepath.Join("/feed", "Foo.1.0.0.nupkg") {
		t.Errorf("FlatPackagePath() = %v", got)
	}
}
