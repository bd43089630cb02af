package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/metrics"
)

// ClassifyCmd prints the feed type of package sources.
type ClassifyCmd struct {
	Sources []string `arg:"" help:"Package source URLs or folders"`
}

// Run executes the classify command.
func (c *ClassifyCmd) Run(globals *GlobalOptions, log *zerolog.Logger, ctx context.Context) error {
	defer WriteMetrics(globals.MetricsFile, log)

	sources, err := AbsSources(c.Sources)
	if err != nil {
		return err
	}
	return printClassification(os.Stdout, sources, log)
}

func printClassification(w io.Writer, sources []string, log *zerolog.Logger) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, src := range sources {
		feedType := feed.Classify(feed.NewPackageSource(src))
		metrics.RecordClassification(feedType.String())
		if feedType == feed.FileSystemUnknown {
			log.Debug().Str("source", src).Msg("Source layout not recognized yet")
		}
		fmt.Fprintf(tw, "%s\t%s\n", src, feedType)
	}
	return tw.Flush()
}
