// Package cli is the command-line surface of coursedb: seeding, exercise
// listing, user upserts and per-user submission reports. There is no network
// surface; every command talks to the SQLite store directly.
package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"coursedb/internal/config"
	"coursedb/internal/course"
)

// Run registers the commands and dispatches. The returned value is the
// process exit status.
func Run(ctx context.Context, out io.Writer) int {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&seedCmd{out: out}, "")
	subcommands.Register(&addUserCmd{out: out}, "")
	subcommands.Register(&exercisesCmd{out: out}, "")
	subcommands.Register(&reportCmd{out: out}, "")

	flag.Parse()
	return int(subcommands.Execute(ctx))
}

// openGradebook builds the full stack from the environment: config, logger,
// store, service. The caller owns closing the store.
func openGradebook() (*course.Gradebook, *course.SQLiteStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)

	store, err := course.NewSQLiteStore(cfg.Database.Path, log)
	if err != nil {
		return nil, nil, err
	}

	return course.NewGradebook(store, store, store, log), store, nil
}
