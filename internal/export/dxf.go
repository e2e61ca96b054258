package export

import (
	"fmt"

	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

const (
	cutLayer    = "CUT"
	borderLayer = "BORDER"
)

// WriteCutLinesDXF writes the grid as straight LINE entities, scaled so one
// piece height is unitsPerPiece drawing units and the bottom-left corner of the
// frame sits at the origin. Interior cuts go on the CUT layer and the frame on
// the BORDER layer.
func WriteCutLinesDXF(path string, s *jigsaw.Session, unitsPerPiece float64) error {
	if s == nil || len(s.Pieces) == 0 {
		return fmt.Errorf("no pieces to export")
	}
	if unitsPerPiece <= 0 {
		return fmt.Errorf("units per piece %v: %w", unitsPerPiece, jigsaw.ErrInvalidDimensions)
	}

	d := dxf.NewDrawing()
	if err := cutLines(d, s, unitsPerPiece); err != nil {
		return err
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf %s: %w", path, err)
	}
	return nil
}

func cutLines(d *drawing.Drawing, s *jigsaw.Session, unitsPerPiece float64) error {
	cols, rows := s.Shape.Columns, s.Shape.Rows
	scale := unitsPerPiece / s.Unit.Height
	w := s.Unit.Width * scale
	h := s.Unit.Height * scale
	totalW, totalH := w*float64(cols), h*float64(rows)

	if _, err := d.AddLayer(cutLayer, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", cutLayer, err)
	}
	for c := 1; c < cols; c++ {
		x := w * float64(c)
		if _, err := d.Line(x, 0, 0, x, totalH, 0); err != nil {
			return fmt.Errorf("draw column cut %d: %w", c, err)
		}
	}
	for r := 1; r < rows; r++ {
		y := h * float64(r)
		if _, err := d.Line(0, y, 0, totalW, y, 0); err != nil {
			return fmt.Errorf("draw row cut %d: %w", r, err)
		}
	}

	if _, err := d.AddLayer(borderLayer, color.Blue, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", borderLayer, err)
	}
	frame := [4][2]float64{{0, totalH}, {totalW, totalH}, {totalW, 0}, {0, 0}}
	for i, p := range frame {
		q := frame[(i+1)%len(frame)]
		if _, err := d.Line(p[0], p[1], 0, q[0], q[1], 0); err != nil {
			return fmt.Errorf("draw border edge %d: %w", i, err)
		}
	}
	return nil
}
