package jigsaw

type Direction string

// Rows grow upward in placement space, so North is row+1.
const (
	North Direction = "north"
	South Direction = "south"
	West  Direction = "west"
	East  Direction = "east"
)

func neighborsOf(col, row int, shape GridShape) map[Direction]int {
	out := make(map[Direction]int, 4)
	id := func(c, r int) int { return r*shape.Columns + c }

	if row+1 < shape.Rows {
		out[North] = id(col, row+1)
	}
	if row > 0 {
		out[South] = id(col, row-1)
	}
	if col+1 < shape.Columns {
		out[East] = id(col+1, row)
	}
	if col > 0 {
		out[West] = id(col-1, row)
	}
	return out
}

// Opposite returns the direction that points back at the neighbour.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}
