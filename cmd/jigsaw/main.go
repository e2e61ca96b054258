package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
)

type rootCmd struct{}

func (r *rootCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "jigsaw",
		Usage: "[subcommand] [flags]",
		Desc:  "Cut images into jigsaw puzzles and lay out the pieces.",
	}
}

func (r *rootCmd) Run(fl *pflag.FlagSet) {
	fl.Usage()
	os.Exit(2)
}

func (r *rootCmd) Subcommands() []cli.Command {
	return []cli.Command{
		&layoutCmd{},
		&cutCmd{},
		&sheetCmd{},
		&catalogCmd{},
	}
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	cli.RunRoot(&rootCmd{})
}

// fatal logs err and exits. Subcommand Run methods cannot return errors.
func fatal(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("FAILED")
	}
}
