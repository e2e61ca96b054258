package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erinpentecost/LivelyJigsaw/internal/cutter"
	"github.com/erinpentecost/LivelyJigsaw/internal/export"
	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.coder.com/cli"
)

type flagged interface {
	cli.Command
	RegisterFlags(fl *pflag.FlagSet)
}

func parse(t *testing.T, c flagged, args ...string) *pflag.FlagSet {
	t.Helper()
	fl := pflag.NewFlagSet(c.Spec().Name, pflag.ContinueOnError)
	c.RegisterFlags(fl)
	require.NoError(t, fl.Parse(args))
	return fl
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// fixture returns an image path and a config path that does not exist.
func fixture(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	img := filepath.Join(dir, "castle.png")
	writePNG(t, img, 80, 40)
	return img, filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "out")
}

func TestSubcommands(t *testing.T) {
	names := []string{}
	for _, c := range (&rootCmd{}).Subcommands() {
		names = append(names, c.Spec().Name)
	}
	require.Equal(t, []string{"layout", "cut", "sheet", "catalog"}, names)
}

func TestLayoutPrintsManifest(t *testing.T) {
	img, cfg, _ := fixture(t)
	c := &layoutCmd{}
	fl := parse(t, c, "--config", cfg, "--seed", "42", "-d", "3", img)

	var buf bytes.Buffer
	require.NoError(t, c.run(fl, &buf))

	m, err := export.ReadManifest(&buf, export.JSON)
	require.NoError(t, err)
	require.Equal(t, uint64(42), m.Seed)
	require.Equal(t, 6, m.Session.Shape.Columns)
	require.Equal(t, 3, m.Session.Shape.Rows)
	require.Len(t, m.Session.Pieces, 18)
}

func TestLayoutSeedIsReproducible(t *testing.T) {
	img, cfg, _ := fixture(t)
	run := func() export.Manifest {
		c := &layoutCmd{}
		fl := parse(t, c, "--config", cfg, "--seed", "9", "--format", "yaml", img)
		var buf bytes.Buffer
		require.NoError(t, c.run(fl, &buf))
		m, err := export.ReadManifest(&buf, export.YAML)
		require.NoError(t, err)
		return m
	}
	a, b := run(), run()
	for i := range a.Session.Pieces {
		require.Equal(t, a.Session.Pieces[i].Position, b.Session.Pieces[i].Position)
	}
}

func TestLayoutWritesManifestFile(t *testing.T) {
	img, cfg, out := fixture(t)
	c := &layoutCmd{}
	fl := parse(t, c, "--config", cfg, "--out", out, "--write", img)
	require.NoError(t, c.run(fl, &bytes.Buffer{}))
	require.FileExists(t, filepath.Join(out, "castle", "manifest.json"))
}

func TestLayoutRejectsBadInput(t *testing.T) {
	img, cfg, _ := fixture(t)

	c := &layoutCmd{}
	require.Error(t, c.run(parse(t, c, "--config", cfg), &bytes.Buffer{}))

	c = &layoutCmd{}
	require.Error(t, c.run(parse(t, c, "--config", cfg, "-d", "9", img), &bytes.Buffer{}))

	c = &layoutCmd{}
	require.Error(t, c.run(parse(t, c, "--config", cfg, "--format", "xml", img), &bytes.Buffer{}))
}

func TestConfigFileIsOverriddenByFlags(t *testing.T) {
	img, _, _ := fixture(t)
	cfg := filepath.Join(t.TempDir(), "jigsaw.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("difficulty: 2\nseed: 5\n"), 0666))

	c := &layoutCmd{}
	var buf bytes.Buffer
	require.NoError(t, c.run(parse(t, c, "--config", cfg, img), &buf))
	m, err := export.ReadManifest(&buf, export.JSON)
	require.NoError(t, err)
	require.Equal(t, uint64(5), m.Seed)
	require.Equal(t, 2, m.Session.Shape.Rows)

	c = &layoutCmd{}
	buf.Reset()
	require.NoError(t, c.run(parse(t, c, "--config", cfg, "-d", "5", img), &buf))
	m, err = export.ReadManifest(&buf, export.JSON)
	require.NoError(t, err)
	require.Equal(t, 5, m.Session.Shape.Rows)
}

func TestFlagsRepairInvalidConfigFile(t *testing.T) {
	img, _, out := fixture(t)
	cfg := filepath.Join(t.TempDir(), "jigsaw.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("difficulty: 9\noutput:\n  texture_format: gif\n"), 0666))

	c := &layoutCmd{}
	require.ErrorIs(t, c.run(parse(t, c, "--config", cfg, img), &bytes.Buffer{}), jigsaw.ErrInvalidDifficulty)

	c = &layoutCmd{}
	var buf bytes.Buffer
	require.Error(t, c.run(parse(t, c, "--config", cfg, "-d", "4", img), &buf),
		"texture format in the file is still invalid")

	cut := &cutCmd{}
	fl := parse(t, cut, "--config", cfg, "--out", out, "-d", "2", "-t", "png", img)
	require.NoError(t, cut.run(context.Background(), fl))
	require.FileExists(t, filepath.Join(out, "castle", "manifest.json"))
}

func TestCutWritesTextures(t *testing.T) {
	img, cfg, out := fixture(t)
	c := &cutCmd{}
	fl := parse(t, c, "--config", cfg, "--out", out, "-d", "2", "-t", "bmp", img)
	require.NoError(t, c.run(context.Background(), fl))

	dir := filepath.Join(out, "castle")
	for id := range 8 {
		require.FileExists(t, filepath.Join(dir, cutter.FileName(id, cutter.BMP)))
	}
	f, err := os.Open(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	defer f.Close()
	m, err := export.ReadManifest(f, export.JSON)
	require.NoError(t, err)
	require.Len(t, m.Textures, 8)
}

func TestSheetWritesPDFAndDXF(t *testing.T) {
	img, cfg, out := fixture(t)
	c := &sheetCmd{}
	fl := parse(t, c, "--config", cfg, "--out", out, img)
	require.NoError(t, c.run(fl))

	raw, err := os.ReadFile(filepath.Join(out, "castle", "sheet.pdf"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
	require.FileExists(t, filepath.Join(out, "castle", "cut.dxf"))
}

func TestCatalogListsImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wide.png"), 60, 30)
	writePNG(t, filepath.Join(dir, "square.png"), 20, 20)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0666))

	c := &catalogCmd{}
	fl := parse(t, c, "--config", filepath.Join(dir, "missing.yaml"), "-d", "2", dir)
	var buf bytes.Buffer
	require.NoError(t, c.run(context.Background(), fl, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "square.png")
	require.Contains(t, lines[1], "2x2")
	require.Contains(t, lines[2], "wide.png")
	require.Contains(t, lines[2], "4x2")
}
