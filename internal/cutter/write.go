package cutter

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/erinpentecost/LivelyJigsaw/internal/dds"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"
)

type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	DDS  Format = "dds"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case PNG, BMP, TIFF, DDS:
		return f, nil
	case "":
		return PNG, nil
	}
	return "", fmt.Errorf("unknown texture format %q", s)
}

func (f Format) encode(w io.Writer, m image.Image) error {
	switch f {
	case BMP:
		return bmp.Encode(w, m)
	case TIFF:
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	case DDS:
		return dds.Encode(w, m)
	default:
		return png.Encode(w, m)
	}
}

// FileName is the texture file name for a piece.
func FileName(id int, f Format) string {
	return fmt.Sprintf("piece_%d.%s", id, f)
}

// WriteAll encodes every texture into dir and records the file name on it.
func WriteAll(ctx context.Context, dir string, f Format, textures []*PieceTexture, threads int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %q: %w", dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for _, tex := range textures {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := FileName(tex.ID, f)
			if err := writeTexture(filepath.Join(dir, name), f, tex.Image); err != nil {
				return err
			}
			tex.File = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("write piece textures: %w", err)
	}
	log.Info().Str("dir", dir).Int("pieces", len(textures)).Str("format", string(f)).Msg("Wrote piece textures")
	return nil
}

func writeTexture(path string, f Format, m image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := f.encode(out, m); err != nil {
		out.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return out.Close()
}
