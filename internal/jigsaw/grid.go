package jigsaw

import "fmt"

type GridShape struct {
	Columns int `json:"columns" yaml:"columns"`
	Rows    int `json:"rows" yaml:"rows"`
}

func (g GridShape) Validate() error {
	if g.Columns < 1 || g.Rows < 1 {
		return fmt.Errorf("%w: grid is %dx%d", ErrInvalidDimensions, g.Columns, g.Rows)
	}
	return nil
}

// Count is the number of pieces in the grid.
func (g GridShape) Count() int {
	return g.Columns * g.Rows
}

func (g GridShape) String() string {
	return fmt.Sprintf("%dx%d", g.Columns, g.Rows)
}

// ValidateDifficulty reports whether d is inside [MinDifficulty, MaxDifficulty].
func ValidateDifficulty(d int) error {
	if d < MinDifficulty || d > MaxDifficulty {
		return fmt.Errorf("%w: %d is outside [%d,%d]", ErrInvalidDifficulty, d, MinDifficulty, MaxDifficulty)
	}
	return nil
}

// ComputeGridShape gives the shorter image side exactly difficulty cells. The
// longer side gets difficulty*longer/shorter cells, truncated, so the grid
// only approximates the image aspect ratio.
func ComputeGridShape(pixelWidth, pixelHeight, difficulty int) (GridShape, error) {
	if err := (ImageSpec{PixelWidth: pixelWidth, PixelHeight: pixelHeight}).Validate(); err != nil {
		return GridShape{}, err
	}
	if err := ValidateDifficulty(difficulty); err != nil {
		return GridShape{}, err
	}

	if pixelWidth < pixelHeight {
		return GridShape{
			Columns: difficulty,
			Rows:    difficulty * pixelHeight / pixelWidth,
		}, nil
	}
	return GridShape{
		Columns: difficulty * pixelWidth / pixelHeight,
		Rows:    difficulty,
	}, nil
}
