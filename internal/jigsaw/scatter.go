package jigsaw

import (
	"fmt"
	"math"
)

// Source is a uniform random source over [0,1). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	Float64() float64
}

// Viewport is the visible area, as half extents around the origin.
type Viewport struct {
	HalfWidth  float64 `json:"halfWidth" yaml:"half_width"`
	HalfHeight float64 `json:"halfHeight" yaml:"half_height"`
}

// ViewportFromCamera derives the visible area of an orthographic camera whose
// size is its half height, on a screen of the given pixel size.
func ViewportFromCamera(orthoSize float64, screenWidth, screenHeight int) (Viewport, error) {
	if !positiveFinite(orthoSize) || screenWidth <= 0 || screenHeight <= 0 {
		return Viewport{}, fmt.Errorf("%w: camera size %g on %dx%d screen",
			ErrInvalidDimensions, orthoSize, screenWidth, screenHeight)
	}
	aspect := float64(screenWidth) / float64(screenHeight)
	return Viewport{
		HalfWidth:  orthoSize * aspect,
		HalfHeight: orthoSize,
	}, nil
}

// ScatterBounds shrinks the viewport by the rendered piece size so that every
// scattered piece stays fully on screen.
func ScatterBounds(unit PieceUnit, viewport Viewport, containerScale Vec2) (boundX, boundY float64, err error) {
	if !positiveFinite(containerScale.X) || !positiveFinite(containerScale.Y) {
		return 0, 0, fmt.Errorf("%w: container scale %gx%g", ErrInvalidDimensions, containerScale.X, containerScale.Y)
	}
	if !positiveFinite(unit.Width) || !positiveFinite(unit.Height) {
		return 0, 0, fmt.Errorf("%w: piece unit %gx%g", ErrInvalidDimensions, unit.Width, unit.Height)
	}
	if !finite(viewport.HalfWidth) || !finite(viewport.HalfHeight) {
		return 0, 0, fmt.Errorf("%w: viewport %gx%g", ErrInvalidDimensions, viewport.HalfWidth, viewport.HalfHeight)
	}
	boundX = viewport.HalfWidth - unit.Width*containerScale.X
	boundY = viewport.HalfHeight - unit.Height*containerScale.Y
	if !(boundX > 0 && boundY > 0) {
		return 0, 0, fmt.Errorf("%w: piece %gx%g at scale %gx%g in viewport %gx%g",
			ErrPieceExceedsViewport,
			unit.Width, unit.Height,
			containerScale.X, containerScale.Y,
			viewport.HalfWidth, viewport.HalfHeight)
	}
	return boundX, boundY, nil
}

// Scatter draws an independent uniform position for every piece inside the
// shrunken viewport. Pieces may overlap.
func Scatter(pieces []PieceDescriptor, unit PieceUnit, viewport Viewport, containerScale Vec2, rng Source) ([]Vec3, error) {
	boundX, boundY, err := ScatterBounds(unit, viewport, containerScale)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}

	out := make([]Vec3, len(pieces))
	for i := range pieces {
		x := uniform(rng, boundX)
		y := uniform(rng, boundY)
		out[i] = Vec3{X: x, Y: y, Z: RestingDepth}
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// positiveFinite is false for NaN and +Inf.
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func uniform(rng Source, bound float64) float64 {
	return -bound + 2*bound*rng.Float64()
}

// Apply writes scattered positions into the matching descriptors.
func Apply(pieces []PieceDescriptor, positions []Vec3) error {
	if len(pieces) != len(positions) {
		return fmt.Errorf("apply positions: have %d positions for %d pieces", len(positions), len(pieces))
	}
	for i := range pieces {
		pieces[i].Position = positions[i]
	}
	return nil
}
