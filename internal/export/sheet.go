package export

import (
	"fmt"
	"io"
	"math"

	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"github.com/go-pdf/fpdf"
)

type rgb struct {
	R, G, B int
}

var pieceColors = []rgb{
	{R: 76, G: 175, B: 80},
	{R: 33, G: 150, B: 243},
	{R: 255, G: 152, B: 0},
	{R: 156, G: 39, B: 176},
	{R: 0, G: 188, B: 212},
	{R: 244, G: 67, B: 54},
	{R: 255, G: 235, B: 59},
	{R: 121, G: 85, B: 72},
}

// A4 landscape, millimetres.
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	margin       = 15.0
	headerHeight = 12.0
	drawTop      = margin + headerHeight + 5.0
)

// extent is an axis-aligned box in placement space (y up).
type extent struct {
	minX, minY, maxX, maxY float64
}

func emptyExtent() extent {
	return extent{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
}

func (e *extent) add(x, y float64) {
	e.minX = min(e.minX, x)
	e.minY = min(e.minY, y)
	e.maxX = max(e.maxX, x)
	e.maxY = max(e.maxY, y)
}

// pageMap fits an extent into the drawing area and flips y.
type pageMap struct {
	ext        extent
	scale      float64
	offX, offY float64
}

func newPageMap(ext extent) pageMap {
	availW := pageWidth - 2*margin
	availH := pageHeight - drawTop - margin
	w, h := ext.maxX-ext.minX, ext.maxY-ext.minY
	scale := min(availW/w, availH/h)
	return pageMap{
		ext:   ext,
		scale: scale,
		offX:  margin + (availW-w*scale)/2,
		offY:  drawTop + (availH-h*scale)/2,
	}
}

func (p pageMap) point(x, y float64) (float64, float64) {
	return p.offX + (x-p.ext.minX)*p.scale, p.offY + (p.ext.maxY-y)*p.scale
}

// rect converts a centre and size into a page rectangle's top-left and size.
func (p pageMap) rect(cx, cy, w, h float64) (x, y, pw, ph float64) {
	x, y = p.point(cx-w/2, cy+h/2)
	return x, y, w * p.scale, h * p.scale
}

// WriteSheetPDF draws the assembled layout on the first page and the scattered
// start positions inside the viewport on the second.
func WriteSheetPDF(w io.Writer, s *jigsaw.Session, title string) error {
	if s == nil || len(s.Pieces) == 0 {
		return fmt.Errorf("no pieces to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, margin)

	pdf.AddPage()
	header(pdf, fmt.Sprintf("%s: %s grid, %d pieces", title, s.Shape, len(s.Pieces)))
	assembled := emptyExtent()
	for _, c := range s.Border.Corners {
		assembled.add(c.X, c.Y)
	}
	for _, p := range s.Pieces {
		addPiece(&assembled, p.LocalPosition, p.LocalScale)
	}
	drawPieces(pdf, newPageMap(assembled), s, func(p jigsaw.PieceDescriptor) jigsaw.Vec3 { return p.LocalPosition })

	pdf.AddPage()
	header(pdf, fmt.Sprintf("%s: scattered start, session %s", title, s.ID))
	view := emptyExtent()
	view.add(-s.Viewport.HalfWidth, -s.Viewport.HalfHeight)
	view.add(s.Viewport.HalfWidth, s.Viewport.HalfHeight)
	for _, p := range s.Pieces {
		addPiece(&view, p.Position, p.LocalScale)
	}
	pm := newPageMap(view)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	x, y, pw, ph := pm.rect(0, 0, 2*s.Viewport.HalfWidth, 2*s.Viewport.HalfHeight)
	pdf.Rect(x, y, pw, ph, "D")
	drawPieces(pdf, pm, s, func(p jigsaw.PieceDescriptor) jigsaw.Vec3 { return p.Position })

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render sheet: %w", err)
	}
	return pdf.Output(w)
}

func header(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageWidth-2*margin, headerHeight, text, "", 0, "L", false, 0, "")
}

func addPiece(e *extent, pos, scale jigsaw.Vec3) {
	e.add(pos.X-scale.X/2, pos.Y-scale.Y/2)
	e.add(pos.X+scale.X/2, pos.Y+scale.Y/2)
}

func drawPieces(pdf *fpdf.Fpdf, pm pageMap, s *jigsaw.Session, at func(jigsaw.PieceDescriptor) jigsaw.Vec3) {
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(40, 40, 40)
	fontSize := max(4, min(10, s.Unit.Height*pm.scale))
	pdf.SetFont("Helvetica", "", fontSize)

	for _, p := range s.Pieces {
		c := pieceColors[p.ID%len(pieceColors)]
		pdf.SetFillColor(c.R, c.G, c.B)
		pos := at(p)
		x, y, w, h := pm.rect(pos.X, pos.Y, p.LocalScale.X, p.LocalScale.Y)
		pdf.Rect(x, y, w, h, "FD")

		label := fmt.Sprintf("%d", p.ID)
		lw := pdf.GetStringWidth(label)
		pdf.Text(x+(w-lw)/2, y+h/2+fontSize*0.35/2, label)
	}

	// Border on top, in line width proportional to the placement units.
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(max(0.2, s.Border.LineWidth*pm.scale/10))
	corners := s.Border.Corners
	for i := range corners {
		next := corners[(i+1)%len(corners)]
		x1, y1 := pm.point(corners[i].X, corners[i].Y)
		x2, y2 := pm.point(next.X, next.Y)
		pdf.Line(x1, y1, x2, y2)
	}
}
