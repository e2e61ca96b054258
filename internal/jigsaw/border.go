package jigsaw

// BorderQuad outlines the assembled picture. Corners run top-left, top-right,
// bottom-right, bottom-left.
type BorderQuad struct {
	Corners   [4]Vec3 `json:"corners" yaml:"corners"`
	LineWidth float64 `json:"lineWidth" yaml:"line_width"`
}

func (b BorderQuad) Width() float64 {
	return b.Corners[1].X - b.Corners[0].X
}

func (b BorderQuad) Height() float64 {
	return b.Corners[0].Y - b.Corners[3].Y
}

// ComputeBorder uses the solved layout only, never the scattered positions.
func ComputeBorder(unit PieceUnit, shape GridShape) BorderQuad {
	halfWidth := unit.Width * float64(shape.Columns) / 2
	halfHeight := unit.Height * float64(shape.Rows) / 2

	return BorderQuad{
		Corners: [4]Vec3{
			{X: -halfWidth, Y: halfHeight, Z: FrameDepth},
			{X: halfWidth, Y: halfHeight, Z: FrameDepth},
			{X: halfWidth, Y: -halfHeight, Z: FrameDepth},
			{X: -halfWidth, Y: -halfHeight, Z: FrameDepth},
		},
		LineWidth: BorderLineWidth,
	}
}
