package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/erinpentecost/LivelyJigsaw/internal/config"
	"github.com/erinpentecost/LivelyJigsaw/internal/cutter"
	"github.com/erinpentecost/LivelyJigsaw/internal/export"
	"github.com/erinpentecost/LivelyJigsaw/internal/imagespec"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
)

type cutCmd struct {
	common  commonFlags
	format  string
	maxSize int
}

func (c *cutCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "cut",
		Usage: "[flags] <image>",
		Desc:  "Cut an image into one texture per piece and write them with a manifest.",
	}
}

func (c *cutCmd) RegisterFlags(fl *pflag.FlagSet) {
	c.common.register(fl)
	fl.StringVarP(&c.format, "texture-format", "t", "", "piece texture format: png, bmp, tiff or dds")
	fl.IntVar(&c.maxSize, "max-texture-size", 0, "scale pieces down to a power of two no larger than this")
}

func (c *cutCmd) Run(fl *pflag.FlagSet) {
	fatal(c.run(context.Background(), fl))
}

func (c *cutCmd) run(ctx context.Context, fl *pflag.FlagSet) error {
	path, err := imageArg(fl)
	if err != nil {
		return err
	}
	cfg, err := c.common.load(fl, func(cfg *config.Config) {
		if fl.Changed("texture-format") {
			cfg.Output.TextureFormat = c.format
		}
		if fl.Changed("max-texture-size") {
			cfg.Output.MaxTextureSize = c.maxSize
		}
	})
	if err != nil {
		return err
	}
	format, err := cutter.ParseFormat(cfg.Output.TextureFormat)
	if err != nil {
		return err
	}

	log.Info().Str("image", path).Msg("Loading image")
	img, err := imagespec.Load(path)
	if err != nil {
		return err
	}
	session, err := newSession(cfg, imagespec.Spec(img))
	if err != nil {
		return err
	}

	log.Info().Int("pieces", len(session.Pieces)).Stringer("grid", session.Shape).Msg("Cutting pieces")
	textures, err := cutter.Cut(ctx, img, session.Pieces, session.Shape, cutter.Options{
		MaxTextureSize: cfg.Output.MaxTextureSize,
		Threads:        cfg.Threads,
	})
	if err != nil {
		return fmt.Errorf("cut %q: %w", path, err)
	}

	dir, err := outputDir(cfg, path)
	if err != nil {
		return err
	}
	if err := cutter.WriteAll(ctx, dir, format, textures, cfg.Threads); err != nil {
		return err
	}
	return writeManifestFile(filepath.Join(dir, "manifest.json"), export.Manifest{
		Source:   path,
		Seed:     cfg.Seed,
		Session:  session,
		Textures: textures,
	}, export.JSON)
}
