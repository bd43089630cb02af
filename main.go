package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/cmd"
	"github.com/rahulagarwal0605/feedrestore/internal/logger"
	"github.com/rahulagarwal0605/feedrestore/internal/settings"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type mainCmd struct {
	cmd.GlobalOptions

	Version   versionFlag `name:"version" help:"Print version information"`
	Verbosity int         `short:"v" type:"counter" help:"Increase verbosity"`
	Dir       string      `short:"C" help:"Change directory before running"`

	Restore  cmd.RestoreCmd  `cmd:"" help:"Restore packages for dependency graph files"`
	Task     cmd.TaskCmd     `cmd:"" help:"Run the build task over graph lines (stdin by default)"`
	Classify cmd.ClassifyCmd `cmd:"" help:"Print the feed type of package sources"`
	Graph    cmd.GraphCmd    `cmd:"" help:"Print entry points and references of a dependency graph"`
}

type versionFlag bool

func (v versionFlag) BeforeApply(app *kong.Kong) error {
	app.Stdout.Write([]byte("feedrestore " + version + " (" + commit + ") built on " + date + "\n"))
	os.Exit(0)
	return nil
}

func main() {
	log := logger.Init()

	// Context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithLogger(ctx, &log)

	// Signal handling
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	go func() {
		<-sigc
		log.Warn().Msg("Interrupted, finishing up...")
		cancel()
	}()

	// Parse CLI
	var cli mainCmd
	parser := kong.Must(&cli,
		kong.Name("feedrestore"),
		kong.Description("Restore packages for graphs of projects from local and remote feeds"),
		kong.UsageOnError(),
		kong.Vars{
			"defaultPackagesDir": settings.DefaultGlobalPackagesFolder(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(&log, (*zerolog.Logger)(nil)),
	)

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	zerolog.SetGlobalLevel(logger.LevelForVerbosity(cli.Verbosity))

	// Change directory if requested
	if cli.Dir != "" {
		if err := os.Chdir(cli.Dir); err != nil {
			log.Fatal().Err(err).Str("dir", cli.Dir).Msg("Failed to change directory")
		}
	}

	// Run command
	err = kctx.Run(&cli.GlobalOptions, &log, ctx)
	kctx.FatalIfErrorf(err)
}
