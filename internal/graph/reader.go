package graph

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/constants"
	ferrors "github.com/rahulagarwal0605/feedrestore/internal/errors"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// Reader answers entry-point and reference queries over a parsed graph description.
// It is read-only after construction and safe for concurrent use, provided the
// logger is.
type Reader struct {
	log      *zerolog.Logger
	nodes    map[string]*ProjectNode
	topLevel []string // Keys of top-level projects in description order
}

// NewReader parses graph description lines. Malformed lines are skipped with a warning;
// parsing itself never fails.
func NewReader(lines []string, log *zerolog.Logger) *Reader {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	r := &Reader{
		log:   log,
		nodes: make(map[string]*ProjectNode),
	}

	seenTop := make(map[string]bool)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, constants.GraphCommentPrefix) {
			continue
		}

		switch {
		case strings.HasPrefix(line, constants.GraphEntryPointPrefix):
			id := strings.TrimSpace(strings.TrimPrefix(line, constants.GraphEntryPointPrefix))
			if id == "" {
				r.warnMalformed(i, raw)
				continue
			}
			r.declare(id)
			if key := nodeKey(id); !seenTop[key] {
				seenTop[key] = true
				r.topLevel = append(r.topLevel, key)
			}

		case strings.HasPrefix(line, constants.GraphPropertyPrefix):
			fields := utils.SplitFields(strings.TrimPrefix(line, constants.GraphPropertyPrefix), constants.GraphSeparator)
			if len(fields) != 3 || fields[0] == "" || fields[1] == "" {
				r.warnMalformed(i, raw)
				continue
			}
			r.setProperty(r.declare(fields[0]), fields[1], fields[2])

		default:
			fields := utils.SplitFields(line, constants.GraphSeparator)
			if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
				r.warnMalformed(i, raw)
				continue
			}
			from := r.declare(fields[0])
			to := nodeKey(fields[1])
			if _, ok := r.nodes[to]; !ok {
				r.nodes[to] = newNode(fields[1])
			}
			from.references = append(from.references, to)
		}
	}

	return r
}

func newNode(id string) *ProjectNode {
	id = strings.TrimSpace(id)
	return &ProjectNode{ID: id, BuildPath: id}
}

// declare returns the node for id, creating it if needed, and marks it declared.
func (r *Reader) declare(id string) *ProjectNode {
	key := nodeKey(id)
	node, ok := r.nodes[key]
	if !ok {
		node = newNode(id)
		r.nodes[key] = node
	}
	node.declared = true
	return node
}

func (r *Reader) setProperty(node *ProjectNode, key, value string) {
	switch key {
	case constants.PropertyManifestPath:
		node.ManifestPath = value
	case constants.PropertyProjectName:
		node.Name = value
	case constants.PropertyBuildPath:
		node.BuildPath = value
	default:
		r.log.Debug().Str("project", node.ID).Str("property", key).Msg("Ignoring unknown project property")
	}
}

func (r *Reader) warnMalformed(index int, line string) {
	r.log.Warn().Int("line", index+1).Str("text", line).Msg("Skipping malformed graph line")
}

// GetEntryPoints returns the top-level projects that have both a manifest and a build
// description, in the order they appear in the description.
func (r *Reader) GetEntryPoints() []*ProjectNode {
	var entryPoints []*ProjectNode
	for _, key := range r.topLevel {
		node := r.nodes[key]
		if !node.IsEntryPoint() {
			r.log.Debug().Str("project", node.ID).Msg("Skipping project without manifest or build description")
			continue
		}
		entryPoints = append(entryPoints, node)
	}
	return entryPoints
}

// Project returns the node whose identity or build path matches path.
func (r *Reader) Project(path string) (*ProjectNode, bool) {
	key := nodeKey(path)
	if node, ok := r.nodes[key]; ok && node.declared {
		return node, true
	}
	for _, node := range r.nodes {
		if node.declared && node.BuildPath != "" && nodeKey(node.BuildPath) == key {
			return node, true
		}
	}
	return nil, false
}

// Lookup is Project with an error for unknown paths.
func (r *Reader) Lookup(path string) (*ProjectNode, error) {
	node, ok := r.Project(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ferrors.ErrProjectNotFound)
	}
	return node, nil
}

// GetReferences returns every project reachable from the project at buildPath by
// following reference edges, excluding the project itself, in breadth-first order.
// An unknown buildPath yields an empty result. References to projects that are never
// declared are dangling: they are skipped with a warning.
func (r *Reader) GetReferences(buildPath string) []*ProjectNode {
	start, ok := r.Project(buildPath)
	if !ok {
		r.log.Warn().Str("project", buildPath).Msg("Project not found in dependency graph")
		return nil
	}

	startKey := nodeKey(start.ID)
	visited := map[string]bool{startKey: true}
	queue := []*ProjectNode{start}
	var refs []*ProjectNode

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, key := range node.references {
			if visited[key] {
				continue
			}
			visited[key] = true

			target := r.nodes[key]
			if !target.declared {
				r.log.Warn().
					Str("project", start.ID).
					Str("from", node.ID).
					Str("reference", target.ID).
					Msg("Skipping reference to unknown project")
				continue
			}

			refs = append(refs, target)
			queue = append(queue, target)
		}
	}

	return refs
}

// Len returns the number of declared projects.
func (r *Reader) Len() int {
	n := 0
	for _, node := range r.nodes {
		if node.declared {
			n++
		}
	}
	return n
}
