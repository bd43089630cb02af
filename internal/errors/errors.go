// Package errors provides shared error variables used across the feedrestore codebase.
//
// Errors are organized by domain:
//   - Request errors: Contract violations when building restore requests
//   - Graph errors: Related to dependency graph lookups
//   - Cache errors: Related to the session cache context
//   - Restore errors: Related to executing restore requests
package errors

import "errors"

// Request errors are returned by request providers and the orchestrator.
var (
	// ErrInputPathRequired is returned when a provider is asked about an empty input.
	ErrInputPathRequired = errors.New("input path is required")

	// ErrNoExecutor is returned when the orchestrator has no execution engine.
	ErrNoExecutor = errors.New("restore executor not configured")

	// ErrNoProvider is returned when no request provider supports an input.
	ErrNoProvider = errors.New("no request provider supports input")
)

// Graph errors are returned by dependency graph lookups.
var (
	// ErrProjectNotFound is returned when a build path does not name a known project.
	ErrProjectNotFound = errors.New("project not found in graph")
)

// Cache errors are returned by the session cache context.
var (
	// ErrCacheContextClosed is returned when the cache context was released.
	ErrCacheContextClosed = errors.New("cache context closed")
)

// Restore errors are returned while executing restore requests.
var (
	// ErrPackageNotFound is returned when no feed provides a package.
	ErrPackageNotFound = errors.New("package not found")

	// ErrSourceUnavailable is returned when a feed cannot be reached or read.
	ErrSourceUnavailable = errors.New("source unavailable")
)
