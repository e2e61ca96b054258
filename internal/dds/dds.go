// Package dds reads and writes DirectDraw Surface textures: enough to size
// puzzle images shipped as DDS and to write piece textures back out.
package dds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

const (
	magic = "DDS "

	headerSize  = 124
	totalHeader = len(magic) + headerSize
	pfOffset    = 72
	pfSize      = 32

	flagCaps        = 0x1
	flagHeight      = 0x2
	flagWidth       = 0x4
	flagPitch       = 0x8
	flagPixelFormat = 0x1000

	pfAlphaPixels = 0x1
	pfRGB         = 0x40

	capsTexture = 0x1000
)

func init() {
	image.RegisterFormat("dds", magic, func(r io.Reader) (image.Image, error) {
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return Decode(raw)
	}, DecodeConfig)
}

// header is the subset of DDS_HEADER fields this package uses.
type header struct {
	width       uint32
	height      uint32
	pitch       uint32
	fourCC      string
	rgbBitCount uint32
	rMask       uint32
}

func parseHeader(raw []byte) (header, error) {
	if len(raw) < totalHeader {
		return header{}, fmt.Errorf("dds: data too short for header: %d < %d", len(raw), totalHeader)
	}
	if string(raw[:len(magic)]) != magic {
		return header{}, fmt.Errorf("dds: missing magic %q", magic)
	}
	hdr := raw[len(magic):totalHeader]
	pf := hdr[pfOffset : pfOffset+pfSize]

	h := header{
		height:      binary.LittleEndian.Uint32(hdr[8:12]),
		width:       binary.LittleEndian.Uint32(hdr[12:16]),
		pitch:       binary.LittleEndian.Uint32(hdr[16:20]),
		fourCC:      string(pf[8:12]),
		rgbBitCount: binary.LittleEndian.Uint32(pf[12:16]),
		rMask:       binary.LittleEndian.Uint32(pf[16:20]),
	}

	// Some exporters misplace the FourCC.
	if h.fourCC == "\x00\x00\x00\x00" {
		for _, s := range []string{"DXT1", "DXT3", "DXT5", "DX10"} {
			if bytes.Contains(hdr, []byte(s)) {
				h.fourCC = s
				break
			}
		}
	}
	if h.width == 0 || h.height == 0 {
		return header{}, fmt.Errorf("dds: empty %dx%d surface", h.width, h.height)
	}
	return h, nil
}

// DecodeConfig reads only the header.
func DecodeConfig(r io.Reader) (image.Config, error) {
	raw := make([]byte, totalHeader)
	if _, err := io.ReadFull(r, raw); err != nil {
		return image.Config{}, fmt.Errorf("dds: read header: %w", err)
	}
	h, err := parseHeader(raw)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(h.width),
		Height:     int(h.height),
	}, nil
}
