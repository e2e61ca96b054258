// Package cutter slices a source image into one texture per puzzle piece,
// following the same grid the layout uses for UVs.
package cutter

import (
	"context"
	"fmt"
	"image"
	"math/bits"

	"github.com/erinpentecost/LivelyJigsaw/internal/hue"
	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

type PieceTexture struct {
	ID int `json:"id" yaml:"id"`

	// Rect is the source region in image coordinates.
	Rect  image.Rectangle `json:"-" yaml:"-"`
	Image image.Image     `json:"-" yaml:"-"`
	Color hue.Summary     `json:"color" yaml:"color"`
	File  string          `json:"file,omitempty" yaml:"file,omitempty"`
}

type Options struct {
	// MaxTextureSize caps the longer side of each texture. Larger pieces are
	// scaled down to the biggest power of two that fits. Zero disables scaling.
	MaxTextureSize int
	Threads        int
}

// PieceRect maps a grid cell to pixels. UV v grows upward while image y grows
// downward, so row 0 is the bottom strip of the image. Boundaries truncate, so
// neighbouring rectangles share edges and together cover the image exactly.
func PieceRect(bounds image.Rectangle, shape jigsaw.GridShape, col, row int) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	flipped := shape.Rows - 1 - row

	return image.Rect(
		bounds.Min.X+col*w/shape.Columns,
		bounds.Min.Y+flipped*h/shape.Rows,
		bounds.Min.X+(col+1)*w/shape.Columns,
		bounds.Min.Y+(flipped+1)*h/shape.Rows,
	)
}

// Cut returns one texture per piece, ordered by piece ID.
func Cut(ctx context.Context, img image.Image, pieces []jigsaw.PieceDescriptor, shape jigsaw.GridShape, opts Options) ([]*PieceTexture, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("cut: %w", err)
	}
	b := img.Bounds()
	if b.Dx() < shape.Columns || b.Dy() < shape.Rows {
		return nil, fmt.Errorf("cut: %w: %dx%d image is smaller than a %s grid",
			jigsaw.ErrInvalidDimensions, b.Dx(), b.Dy(), shape)
	}

	for _, p := range pieces {
		if p.Col < 0 || p.Col >= shape.Columns || p.Row < 0 || p.Row >= shape.Rows {
			return nil, fmt.Errorf("cut: %w: piece %d at (%d,%d) is outside a %s grid",
				jigsaw.ErrInvalidDimensions, p.ID, p.Col, p.Row, shape)
		}
	}

	out := make([]*PieceTexture, len(pieces))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Threads, 1))
	for i, p := range pieces {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := PieceRect(b, shape, p.Col, p.Row)
			out[i] = &PieceTexture{
				ID:    p.ID,
				Rect:  r,
				Image: scaleDown(crop(img, r), opts.MaxTextureSize),
				Color: hue.Summarize(img, r),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cut pieces: %w", err)
	}
	return out, nil
}

// crop copies r into a fresh RGBA anchored at the origin.
func crop(img image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

func scaleDown(src *image.RGBA, maxSize int) *image.RGBA {
	if maxSize <= 0 {
		return src
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	long := max(w, h)
	if long <= maxSize {
		return src
	}
	target := prevPoT(uint64(maxSize))
	nw := max(1, int(uint64(w)*target/uint64(long)))
	nh := max(1, int(uint64(h)*target/uint64(long)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// prevPoT is the largest power of two <= n.
func prevPoT(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	return 1 << (bits.Len64(n) - 1)
}
