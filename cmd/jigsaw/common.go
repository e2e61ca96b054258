package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/erinpentecost/LivelyJigsaw/internal/config"
	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// commonFlags are shared by every subcommand. Flags the user set win over
// the config file.
type commonFlags struct {
	configPath string
	difficulty int
	seed       uint64
	out        string
	verbose    bool
}

func (c *commonFlags) register(fl *pflag.FlagSet) {
	fl.StringVarP(&c.configPath, "config", "c", "jigsaw.yaml", "YAML config file")
	fl.IntVarP(&c.difficulty, "difficulty", "d", jigsaw.DefaultDifficulty,
		fmt.Sprintf("pieces along the shorter side (%d-%d)", jigsaw.MinDifficulty, jigsaw.MaxDifficulty))
	fl.Uint64Var(&c.seed, "seed", 0, "scatter seed, 0 picks one at random")
	fl.StringVarP(&c.out, "out", "o", "", "output directory")
	fl.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
}

// load resolves the effective config for this run. The file is validated only
// after flags and the command's own overrides are applied.
func (c *commonFlags) load(fl *pflag.FlagSet, overrides ...func(*config.Config)) (config.Config, error) {
	if c.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	cfg, err := config.Read(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if fl.Changed("difficulty") {
		cfg.Difficulty = c.difficulty
	}
	if fl.Changed("seed") {
		cfg.Seed = c.seed
	}
	if fl.Changed("out") {
		cfg.Output.Dir = c.out
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config %q: %w", c.configPath, err)
	}
	log.Debug().
		Str("config", c.configPath).
		Int("difficulty", cfg.Difficulty).
		Uint64("seed", cfg.Seed).
		Msg("Loaded config")
	return cfg, nil
}

// newSession starts a puzzle for spec using the config's settings and seed.
func newSession(cfg config.Config, spec jigsaw.ImageSpec) (*jigsaw.Session, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	return jigsaw.NewSession(spec, settings, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)))
}

func imageArg(fl *pflag.FlagSet) (string, error) {
	if fl.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one argument, got %d", fl.NArg())
	}
	return fl.Arg(0), nil
}

// outputDir creates the directory for a named image's files.
func outputDir(cfg config.Config, imagePath string) (string, error) {
	base := filepath.Base(imagePath)
	dir := filepath.Join(cfg.Output.Dir, strings.TrimSuffix(base, filepath.Ext(base)))
	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", dir, err)
	}
	return dir, nil
}
