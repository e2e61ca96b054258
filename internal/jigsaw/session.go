package jigsaw

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Settings are the knobs the embedding application supplies when a puzzle starts.
type Settings struct {
	Difficulty     int
	Viewport       Viewport
	ContainerScale Vec2
	Centering      Centering
}

func DefaultSettings() Settings {
	return Settings{
		Difficulty:     DefaultDifficulty,
		Viewport:       Viewport{HalfWidth: 5 * 16.0 / 9.0, HalfHeight: 5},
		ContainerScale: Vec2{X: 1, Y: 1},
	}
}

// Session is everything computed when an image is picked: the grid, every
// piece with its scattered start position, and the border outline.
type Session struct {
	ID       string            `json:"id" yaml:"id"`
	Image    ImageSpec         `json:"image" yaml:"image"`
	Shape    GridShape         `json:"shape" yaml:"shape"`
	Unit     PieceUnit         `json:"unit" yaml:"unit"`
	Viewport Viewport          `json:"viewport" yaml:"viewport"`
	Pieces   []PieceDescriptor `json:"pieces" yaml:"pieces"`
	Border   BorderQuad        `json:"border" yaml:"border"`
}

// NewSession runs dimensioning, layout, scatter and border as one step. On any
// error nothing is returned.
func NewSession(spec ImageSpec, settings Settings, rng Source) (*Session, error) {
	shape, err := ComputeGridShape(spec.PixelWidth, spec.PixelHeight, settings.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("start session for %s image: %w", spec, err)
	}
	unit, pieces, err := BuildLayout(spec, shape, WithCentering(settings.Centering))
	if err != nil {
		return nil, fmt.Errorf("start session for %s image: %w", spec, err)
	}
	positions, err := Scatter(pieces, unit, settings.Viewport, settings.ContainerScale, rng)
	if err != nil {
		return nil, fmt.Errorf("start session for %s image: %w", spec, err)
	}
	if err := Apply(pieces, positions); err != nil {
		return nil, fmt.Errorf("start session for %s image: %w", spec, err)
	}
	border := ComputeBorder(unit, shape)

	s := &Session{
		ID:       uuid.NewString(),
		Image:    spec,
		Shape:    shape,
		Unit:     unit,
		Viewport: settings.Viewport,
		Pieces:   pieces,
		Border:   border,
	}
	log.Debug().
		Str("session", s.ID).
		Float64("unitWidth", unit.Width).
		Int("columns", shape.Columns).
		Float64("halfWidth", border.Width()/2).
		Msg("Started puzzle session")
	return s, nil
}

// Piece looks a piece up by ID.
func (s *Session) Piece(id int) (PieceDescriptor, bool) {
	if id < 0 || id >= len(s.Pieces) {
		return PieceDescriptor{}, false
	}
	return s.Pieces[id], true
}
