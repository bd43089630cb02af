package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/task"
)

// TaskCmd runs the host build task over graph lines.
type TaskCmd struct {
	File string `short:"f" help:"Read graph lines from this file instead of stdin" type:"existingfile"`
}

// Run executes the task command.
func (c *TaskCmd) Run(globals *GlobalOptions, log *zerolog.Logger, ctx context.Context) error {
	defer WriteMetrics(globals.MetricsFile, log)

	lines, baseDir, err := ReadGraphLines(ctx, c.File)
	if err != nil {
		return err
	}

	t := &task.RestoreTask{
		GraphLines: lines,
		BaseDir:    baseDir,
		Config:     NewSessionConfig(globals, log),
	}
	if !t.Execute(ctx, log) {
		return fmt.Errorf("restore task failed")
	}
	return nil
}
