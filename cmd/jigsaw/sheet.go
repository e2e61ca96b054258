package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erinpentecost/LivelyJigsaw/internal/export"
	"github.com/erinpentecost/LivelyJigsaw/internal/imagespec"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
)

type sheetCmd struct {
	common    commonFlags
	pieceSize float64
}

func (c *sheetCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "sheet",
		Usage: "[flags] <image>",
		Desc:  "Write a printable PDF sheet and DXF cut lines for an image's puzzle.",
	}
}

func (c *sheetCmd) RegisterFlags(fl *pflag.FlagSet) {
	c.common.register(fl)
	fl.Float64Var(&c.pieceSize, "piece-size", 40, "piece height in DXF drawing units (mm)")
}

func (c *sheetCmd) Run(fl *pflag.FlagSet) {
	fatal(c.run(fl))
}

func (c *sheetCmd) run(fl *pflag.FlagSet) error {
	path, err := imageArg(fl)
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
	dir, err := outputDir(cfg, path)
	if err != nil {
		return err
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	pdfPath := filepath.Join(dir, "sheet.pdf")
	f, err := os.Create(pdfPath)
	if err != nil {
		return fmt.Errorf("create sheet %q: %w", pdfPath, err)
	}
	if err := export.WriteSheetPDF(f, session, title); err != nil {
		f.Close()
		return fmt.Errorf("write sheet %q: %w", pdfPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close sheet %q: %w", pdfPath, err)
	}
	log.Info().Str("path", pdfPath).Msg("Wrote sheet")

	dxfPath := filepath.Join(dir, "cut.dxf")
	if err := export.WriteCutLinesDXF(dxfPath, session, c.pieceSize); err != nil {
		return err
	}
	log.Info().Str("path", dxfPath).Msg("Wrote cut lines")
	return nil
}
