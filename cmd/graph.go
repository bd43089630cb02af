package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/graph"
)

// GraphCmd prints the entry points of a dependency graph and their references.
type GraphCmd struct {
	File    string `arg:"" help:"Dependency graph file" type:"existingfile"`
	Project string `short:"p" help:"Only print this project (build path) and its references"`
}

// Run executes the graph command.
func (c *GraphCmd) Run(globals *GlobalOptions, log *zerolog.Logger, ctx context.Context) error {
	lines, _, err := ReadGraphLines(ctx, c.File)
	if err != nil {
		return err
	}

	reader := graph.NewReader(lines, log)
	log.Debug().Int("projects", reader.Len()).Msg("Read dependency graph")

	if c.Project == "" {
		printGraph(os.Stdout, reader)
		return nil
	}

	node, err := reader.Lookup(c.Project)
	if err != nil {
		return fmt.Errorf("lookup project: %w", err)
	}
	printProject(os.Stdout, reader, node)
	return nil
}
