package dds

import (
	"encoding/binary"
	"errors"
	"image"
	"image/draw"
	"io"
)

// Encode writes m as an uncompressed 32-bit DDS with bytes in R,G,B,A order.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return errors.New("dds: empty image")
	}
	rgba, ok := m.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(b)
		draw.Draw(rgba, b, m, b.Min, draw.Src)
	}
	width, height := b.Dx(), b.Dy()
	rowBytes := width * 4

	var hdr [headerSize]byte
	put := func(off int, v uint32) { binary.LittleEndian.PutUint32(hdr[off:], v) }
	put(0, headerSize)
	put(4, flagCaps|flagHeight|flagWidth|flagPixelFormat|flagPitch)
	put(8, uint32(height))
	put(12, uint32(width))
	put(16, uint32(rowBytes))
	put(pfOffset, pfSize)
	put(pfOffset+4, pfRGB|pfAlphaPixels)
	put(pfOffset+12, 32)
	// Little-endian masks so the on-disk order is R, G, B, A.
	put(pfOffset+16, 0x000000FF)
	put(pfOffset+20, 0x0000FF00)
	put(pfOffset+24, 0x00FF0000)
	put(pfOffset+28, 0xFF000000)
	put(104, capsTexture)

	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := rgba.PixOffset(b.Min.X, y)
		if _, err := w.Write(rgba.Pix[off : off+rowBytes]); err != nil {
			return err
		}
	}
	return nil
}
