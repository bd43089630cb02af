// Package request builds restore requests from dependency graph descriptions.
package request

import (
	"context"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/graph"
	"github.com/rahulagarwal0605/feedrestore/internal/manifest"
	"github.com/rahulagarwal0605/feedrestore/internal/provider"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
	"github.com/rahulagarwal0605/feedrestore/internal/settings"
)

// Request is the unit of restore work for one entry-point project.
type Request struct {
	Project      *graph.ProjectNode
	ManifestPath string // Absolute
	BuildPath    string

	Manifest   *manifest.Manifest
	References []*graph.ProjectNode // Transitive, excluding Project
	Settings   *settings.Settings
	Sources    []feed.PackageSource
	Cache      *provider.SharedCache

	// Err is set when the request could not be completed. Executing it must
	// produce a failed result carrying this error.
	Err error
}

// ProjectPath identifies the originating project.
func (r *Request) ProjectPath() string {
	if r.BuildPath != "" {
		return r.BuildPath
	}
	return r.ManifestPath
}

// ProjectName returns the display name of the originating project.
func (r *Request) ProjectName() string {
	if r.Project == nil {
		return r.ProjectPath()
	}
	return r.Project.DisplayName()
}

// Provider turns inputs it recognizes into restore requests.
type Provider interface {
	// Supports reports whether input is handled by this provider.
	// Returns errors.ErrInputPathRequired for an empty input.
	Supports(ctx context.Context, input string) (bool, error)
	// CreateRequests returns one request per entry point, in discovery order.
	CreateRequests(ctx context.Context, input string, cfg *session.Config) ([]*Request, error)
}

// PreloadedProvider produces requests from data it already holds.
type PreloadedProvider interface {
	CreateRequests(ctx context.Context, cfg *session.Config) ([]*Request, error)
}
