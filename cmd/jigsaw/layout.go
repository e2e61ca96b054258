package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erinpentecost/LivelyJigsaw/internal/export"
	"github.com/erinpentecost/LivelyJigsaw/internal/imagespec"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
)

type layoutCmd struct {
	common commonFlags
	format string
	write  bool
}

func (c *layoutCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "layout",
		Usage: "[flags] <image>",
		Desc:  "Compute the grid, piece layout and scattered start for an image and print the manifest.",
	}
}

func (c *layoutCmd) RegisterFlags(fl *pflag.FlagSet) {
	c.common.register(fl)
	fl.StringVarP(&c.format, "format", "f", "json", "manifest format: json or yaml")
	fl.BoolVarP(&c.write, "write", "w", false, "write the manifest into the output directory instead of stdout")
}

func (c *layoutCmd) Run(fl *pflag.FlagSet) {
	fatal(c.run(fl, os.Stdout))
}

func (c *layoutCmd) run(fl *pflag.FlagSet, stdout io.Writer) error {
	path, err := imageArg(fl)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(c.format)
	if err != nil {
		return err
	}
	cfg, err := c.common.load(fl)
	if err != nil {
		return err
	}
	spec, _, err := imagespec.Probe(path)
	if err != nil {
		return err
	}
	session, err := newSession(cfg, spec)
	if err != nil {
		return err
	}
	m := export.Manifest{Source: path, Seed: cfg.Seed, Session: session}

	if !c.write {
		return export.WriteManifest(stdout, m, format)
	}
	dir, err := outputDir(cfg, path)
	if err != nil {
		return err
	}
	return writeManifestFile(filepath.Join(dir, "manifest."+string(format)), m, format)
}

func writeManifestFile(path string, m export.Manifest, format export.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest %q: %w", path, err)
	}
	if err := export.WriteManifest(f, m, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close manifest %q: %w", path, err)
	}
	log.Info().Str("path", path).Int("pieces", len(m.Session.Pieces)).Msg("Wrote manifest")
	return nil
}
