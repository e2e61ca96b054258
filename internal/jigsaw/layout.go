package jigsaw

import (
	"fmt"
)

// PieceUnit is the size of one cell in placement space. Height is normalized
// to the unit interval; width carries the image aspect ratio.
type PieceUnit struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func NewPieceUnit(spec ImageSpec, shape GridShape) PieceUnit {
	return PieceUnit{
		Width:  spec.Aspect() / float64(shape.Columns),
		Height: 1 / float64(shape.Rows),
	}
}

// UVQuad holds texture coordinates for a piece's corners in the order
// bottom-left, bottom-right, top-left, top-right.
type UVQuad [4]Vec2

const (
	UVBottomLeft = iota
	UVBottomRight
	UVTopLeft
	UVTopRight
)

// Area is the fraction of the texture the quad covers.
func (q UVQuad) Area() float64 {
	return (q[UVBottomRight].X - q[UVBottomLeft].X) * (q[UVTopLeft].Y - q[UVBottomLeft].Y)
}

type PieceDescriptor struct {
	ID  int `json:"id" yaml:"id"`
	Col int `json:"col" yaml:"col"`
	Row int `json:"row" yaml:"row"`

	// LocalPosition is where the piece sits in the assembled picture.
	LocalPosition Vec3   `json:"localPosition" yaml:"local_position"`
	LocalScale    Vec3   `json:"localScale" yaml:"local_scale"`
	UV            UVQuad `json:"uv" yaml:"uv"`

	// Position is the current world position. It starts at LocalPosition and is
	// overwritten once by Apply after scattering.
	Position Vec3 `json:"position" yaml:"position"`

	Neighbors map[Direction]int `json:"neighbors" yaml:"neighbors"`
}

func (p PieceDescriptor) Name() string {
	return fmt.Sprintf("Piece %d", p.ID)
}

// Centering picks the term used to centre rows vertically.
type Centering int

const (
	// CenterLegacy offsets rows by half the column count, as the game always has.
	// On non-square grids this leaves the assembled picture off centre vertically.
	CenterLegacy Centering = iota
	// CenterRows offsets rows by half the row count.
	CenterRows
)

func (c Centering) String() string {
	switch c {
	case CenterRows:
		return "rows"
	default:
		return "legacy"
	}
}

// ParseCentering accepts "legacy", "rows" or "" (legacy).
func ParseCentering(s string) (Centering, error) {
	switch s {
	case "", "legacy":
		return CenterLegacy, nil
	case "rows":
		return CenterRows, nil
	default:
		return CenterLegacy, fmt.Errorf("unknown vertical centering %q", s)
	}
}

type layoutOptions struct {
	centering Centering
}

type LayoutOption func(*layoutOptions)

// WithCentering selects the vertical centering term.
func WithCentering(c Centering) LayoutOption {
	return func(o *layoutOptions) { o.centering = c }
}

// WithRowCentering is WithCentering(CenterRows).
func WithRowCentering() LayoutOption {
	return WithCentering(CenterRows)
}

// BuildLayout produces one descriptor per grid cell in row-major order.
func BuildLayout(spec ImageSpec, shape GridShape, opts ...LayoutOption) (PieceUnit, []PieceDescriptor, error) {
	if err := spec.Validate(); err != nil {
		return PieceUnit{}, nil, fmt.Errorf("build layout: %w", err)
	}
	if err := shape.Validate(); err != nil {
		return PieceUnit{}, nil, fmt.Errorf("build layout: %w", err)
	}
	o := layoutOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	unit := NewPieceUnit(spec, shape)
	w, h := unit.Width, unit.Height
	cols, rows := float64(shape.Columns), float64(shape.Rows)

	originX := -w * cols / 2
	originY := -h * cols / 2
	if o.centering == CenterRows {
		originY = -h * rows / 2
	}

	stepU := 1 / cols
	stepV := 1 / rows

	pieces := make([]PieceDescriptor, 0, shape.Count())
	for row := 0; row < shape.Rows; row++ {
		for col := 0; col < shape.Columns; col++ {
			c, r := float64(col), float64(row)
			local := Vec3{
				X: originX + w*c + w/2,
				Y: originY + h*r + h/2,
				Z: RestingDepth,
			}
			pieces = append(pieces, PieceDescriptor{
				ID:            row*shape.Columns + col,
				Col:           col,
				Row:           row,
				LocalPosition: local,
				LocalScale:    Vec3{X: w, Y: h, Z: 1},
				UV: UVQuad{
					{X: stepU * c, Y: stepV * r},
					{X: stepU * (c + 1), Y: stepV * r},
					{X: stepU * c, Y: stepV * (r + 1)},
					{X: stepU * (c + 1), Y: stepV * (r + 1)},
				},
				Position:  local,
				Neighbors: neighborsOf(col, row, shape),
			})
		}
	}
	return unit, pieces, nil
}
