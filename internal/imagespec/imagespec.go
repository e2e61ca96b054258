// Package imagespec finds puzzle images on disk and reads their pixel size.
package imagespec

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dblezek/tga"
	"github.com/erinpentecost/LivelyJigsaw/internal/dds"
	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

type format struct {
	name         string
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

// TGA has no magic number, so every format is picked by extension rather than
// by sniffing.
var formats = map[string]format{
	".png":  {"png", png.Decode, png.DecodeConfig},
	".jpg":  {"jpeg", jpeg.Decode, jpeg.DecodeConfig},
	".jpeg": {"jpeg", jpeg.Decode, jpeg.DecodeConfig},
	".gif":  {"gif", gif.Decode, gif.DecodeConfig},
	".bmp":  {"bmp", bmp.Decode, bmp.DecodeConfig},
	".tif":  {"tiff", tiff.Decode, tiff.DecodeConfig},
	".tiff": {"tiff", tiff.Decode, tiff.DecodeConfig},
	".webp": {"webp", webp.Decode, webp.DecodeConfig},
	".dds":  {"dds", decodeDDS, dds.DecodeConfig},
	".tga":  {"tga", tga.Decode, configByDecoding(tga.Decode)},
}

func decodeDDS(r io.Reader) (image.Image, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return dds.Decode(raw)
}

func configByDecoding(decode func(io.Reader) (image.Image, error)) func(io.Reader) (image.Config, error) {
	return func(r io.Reader) (image.Config, error) {
		img, err := decode(r)
		if err != nil {
			return image.Config{}, err
		}
		return image.Config{
			ColorModel: img.ColorModel(),
			Width:      img.Bounds().Dx(),
			Height:     img.Bounds().Dy(),
		}, nil
	}
}

// Supported reports whether path has an extension this package can read.
func Supported(path string) bool {
	_, ok := formats[strings.ToLower(filepath.Ext(path))]
	return ok
}

func formatFor(path string) (format, error) {
	f, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return format{}, fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}
	return f, nil
}

// Probe reads just enough of the file to learn its size. It returns the
// format name alongside the spec.
func Probe(path string) (jigsaw.ImageSpec, string, error) {
	f, err := formatFor(path)
	if err != nil {
		return jigsaw.ImageSpec{}, "", err
	}
	in, err := os.Open(path)
	if err != nil {
		return jigsaw.ImageSpec{}, "", fmt.Errorf("open %q: %w", path, err)
	}
	defer in.Close()

	cfg, err := f.decodeConfig(bufio.NewReader(in))
	if err != nil {
		return jigsaw.ImageSpec{}, "", fmt.Errorf("read %s header of %q: %w", f.name, path, err)
	}
	spec := jigsaw.ImageSpec{PixelWidth: cfg.Width, PixelHeight: cfg.Height}
	if err := spec.Validate(); err != nil {
		return jigsaw.ImageSpec{}, "", fmt.Errorf("probe %q: %w", path, err)
	}
	return spec, f.name, nil
}

// Load decodes the whole image.
func Load(path string) (image.Image, error) {
	f, err := formatFor(path)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer in.Close()

	img, err := f.decode(bufio.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("decode %s image %q: %w", f.name, path, err)
	}
	return img, nil
}

// Spec returns the ImageSpec of an already decoded image.
func Spec(img image.Image) jigsaw.ImageSpec {
	b := img.Bounds()
	return jigsaw.ImageSpec{PixelWidth: b.Dx(), PixelHeight: b.Dy()}
}
