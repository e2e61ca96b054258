package dds

import (
	"fmt"
	"image"

	"github.com/mauserzjeh/dxt"
)

// Decode supports DXT1, DXT3, DXT5 and uncompressed 24/32-bit surfaces.
func Decode(raw []byte) (image.Image, error) {
	h, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}
	data := raw[totalHeader:]
	if len(data) == 0 {
		return nil, fmt.Errorf("dds: no image data")
	}

	var pix []byte
	switch h.fourCC {
	case "DXT1":
		pix, err = dxt.DecodeDXT1(data, uint(h.width), uint(h.height))
	case "DXT3":
		pix, err = dxt.DecodeDXT3(data, uint(h.width), uint(h.height))
	case "DXT5":
		pix, err = dxt.DecodeDXT5(data, uint(h.width), uint(h.height))
	case "DX10":
		return nil, fmt.Errorf("dds: DX10 header not supported")
	default:
		if h.rgbBitCount != 24 && h.rgbBitCount != 32 {
			return nil, fmt.Errorf("dds: unsupported FourCC %q or rgbBits=%d", h.fourCC, h.rgbBitCount)
		}
		pix, err = decodeUncompressed(data, h)
	}
	if err != nil {
		return nil, fmt.Errorf("dds: decode %s: %w", h.fourCC, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(h.width), int(h.height)))
	if len(pix) != len(img.Pix) {
		return nil, fmt.Errorf("dds: decoded %d bytes, want %d", len(pix), len(img.Pix))
	}
	copy(img.Pix, pix)
	return img, nil
}

// decodeUncompressed handles tightly packed scanlines. A red mask in the low
// byte means R,G,B,A order on disk; anything else is treated as B,G,R,A.
func decodeUncompressed(data []byte, h header) ([]byte, error) {
	bpp := int(h.rgbBitCount / 8)
	w, ht := int(h.width), int(h.height)
	if len(data) < w*ht*bpp {
		return nil, fmt.Errorf("data too small (%d < %d)", len(data), w*ht*bpp)
	}
	rgbOrder := h.rMask == 0x000000FF

	out := make([]byte, w*ht*4)
	for i, o := 0, 0; o < len(out); i, o = i+bpp, o+4 {
		r, g, b := data[i+2], data[i+1], data[i]
		if rgbOrder {
			r, b = b, r
		}
		a := byte(0xFF)
		if bpp == 4 {
			a = data[i+3]
		}
		out[o], out[o+1], out[o+2], out[o+3] = r, g, b, a
	}
	return out, nil
}
