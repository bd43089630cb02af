package provider

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
)

func TestNewCacheKey(t *testing.T) {
	dir := t.TempDir()
	sourcesA := []feed.PackageSource{feed.NewPackageSource("https://api.example.org/v3/index.json")}
	sourcesB := []feed.PackageSource{feed.NewPackageSource("https://api.example.org/v3/index.json")}

	a, err := NewCacheKey(dir, []string{filepath.Join(dir, "fallback")}, sourcesA, false)
	require.NoError(t, err)
	b, err := NewCacheKey(dir+string(filepath.Separator), []string{filepath.Join(dir, "fallback")}, sourcesB, false)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.String(), b.String())
}

func TestNewCacheKey_Differs(t *testing.T) {
	dir := t.TempDir()
	base := []feed.PackageSource{feed.NewPackageSource("https://a.example.org/v3/index.json")}

	tests := []struct {
		name     string
		global   string
		fallback []string
		sources  []feed.PackageSource
	}{
		{name: "global folder", global: filepath.Join(dir, "other"), sources: base},
		{name: "fallback folders", global: dir, fallback: []string{filepath.Join(dir, "fb")}, sources: base},
		{name: "sources", global: dir, sources: []feed.PackageSource{feed.NewPackageSource("https://b.example.org/v3/index.json")}},
		{name: "source order", global: dir, sources: append(base, feed.NewPackageSource("https://b.example.org/v3/index.json"))},
	}

	ref, err := NewCacheKey(dir, nil, base, false)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewCacheKey(tt.global, tt.fallback, tt.sources, false)
			require.NoError(t, err)
			assert.False(t, ref.Equal(key))
			assert.NotEqual(t, ref.String(), key.String())
		})
	}
}

func TestNewCacheKey_Lowercase(t *testing.T) {
	dir := t.TempDir()
	a, err := NewCacheKey(filepath.Join(dir, "Packages"), nil, nil, true)
	require.NoError(t, err)
	b, err := NewCacheKey(filepath.Join(dir, "packages"), nil, nil, true)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestNewCacheKey_RequiresGlobalFolder(t *testing.T) {
	_, err := NewCacheKey("  ", nil, nil, false)
	assert.Error(t, err)
}

func TestNewCacheKey_LowercaseLocalSources(t *testing.T) {
	dir := t.TempDir()
	upper := []feed.PackageSource{
		feed.NewPackageSource(filepath.Join(dir, "Feed")),
		feed.NewPackageSource("https://api.example.org/V3/index.json"),
	}
	lower := []feed.PackageSource{
		feed.NewPackageSource(filepath.Join(dir, "feed")),
		feed.NewPackageSource("https://api.example.org/V3/index.json"),
	}

	a, err := NewCacheKey(dir, nil, upper, true)
	require.NoError(t, err)
	b, err := NewCacheKey(dir, nil, lower, true)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, "https://api.example.org/V3/index.json", a.Sources[1])

	caseSensitive, err := NewCacheKey(dir, nil, upper, false)
	require.NoError(t, err)
	assert.False(t, caseSensitive.Equal(b))
}
