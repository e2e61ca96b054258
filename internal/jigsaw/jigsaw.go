// Package jigsaw cuts an image into a rectangular grid of pieces and works out
// where each piece goes: its size, its place in the assembled picture, the part
// of the texture it shows, and a random starting spot inside the viewport.
//
// Placement space is normalized so the assembled picture is one unit tall and
// (pixelWidth/pixelHeight) units wide, centred on the origin.
package jigsaw

import (
	"errors"
	"fmt"
)

const (
	MinDifficulty     = 2
	MaxDifficulty     = 6
	DefaultDifficulty = 4

	// RestingDepth is the Z of every piece, assembled or scattered.
	RestingDepth = -1.0

	// FrameDepth is the Z of the border outline.
	FrameDepth = 0.0

	// BorderLineWidth is the stroke width handed to whatever draws the border.
	BorderLineWidth = 0.1
)

var (
	ErrInvalidDimensions    = errors.New("invalid dimensions")
	ErrInvalidDifficulty    = errors.New("invalid difficulty")
	ErrPieceExceedsViewport = errors.New("pieces do not fit in viewport")
)

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// ImageSpec is the pixel size of a source image.
type ImageSpec struct {
	PixelWidth  int `json:"pixelWidth" yaml:"pixel_width"`
	PixelHeight int `json:"pixelHeight" yaml:"pixel_height"`
}

func (s ImageSpec) Validate() error {
	if s.PixelWidth <= 0 || s.PixelHeight <= 0 {
		return fmt.Errorf("%w: image is %dx%d", ErrInvalidDimensions, s.PixelWidth, s.PixelHeight)
	}
	return nil
}

// Aspect is width over height.
func (s ImageSpec) Aspect() float64 {
	return float64(s.PixelWidth) / float64(s.PixelHeight)
}

func (s ImageSpec) String() string {
	return fmt.Sprintf("%dx%d", s.PixelWidth, s.PixelHeight)
}
