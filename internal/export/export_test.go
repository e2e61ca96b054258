package export

import (
	"bytes"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/erinpentecost/LivelyJigsaw/internal/cutter"
	"github.com/erinpentecost/LivelyJigsaw/internal/hue"
	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func testSession(t *testing.T, w, h int) *jigsaw.Session {
	t.Helper()
	s, err := jigsaw.NewSession(
		jigsaw.ImageSpec{PixelWidth: w, PixelHeight: h},
		jigsaw.DefaultSettings(),
		rand.New(rand.NewPCG(7, 11)),
	)
	require.NoError(t, err)
	return s
}

func TestManifestRoundTrip(t *testing.T) {
	s := testSession(t, 800, 400)
	m := Manifest{
		Source:  "castle.png",
		Seed:    7,
		Session: s,
		Textures: []*cutter.PieceTexture{
			{ID: 0, File: "piece_0.png", Color: hue.Summary{Hue: 120, Saturation: 0.5, Lightness: 0.25}},
		},
	}

	for _, f := range []Format{JSON, YAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteManifest(&buf, m, f))

			got, err := ReadManifest(&buf, f)
			require.NoError(t, err)
			require.Equal(t, m.Source, got.Source)
			require.Equal(t, m.Seed, got.Seed)
			require.Equal(t, *s, *got.Session)
			require.Len(t, got.Textures, 1)
			require.Equal(t, "piece_0.png", got.Textures[0].File)
			require.Equal(t, m.Textures[0].Color, got.Textures[0].Color)
		})
	}
}

func TestManifestListsEveryPiece(t *testing.T) {
	s := testSession(t, 1000, 1000)
	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf, Manifest{Session: s}, JSON))

	got, err := ReadManifest(&buf, JSON)
	require.NoError(t, err)
	require.Len(t, got.Session.Pieces, 16)
	for i, p := range got.Session.Pieces {
		require.Equal(t, i, p.ID)
	}
}

func TestReadManifestRejectsGarbage(t *testing.T) {
	_, err := ReadManifest(bytes.NewBufferString("{not json"), JSON)
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": JSON, "json": JSON, "yaml": YAML, "yml": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestWriteSheetPDF(t *testing.T) {
	s := testSession(t, 800, 400)
	var buf bytes.Buffer
	require.NoError(t, WriteSheetPDF(&buf, s, "castle"))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	require.Greater(t, buf.Len(), 1000)
}

func TestWriteSheetPDFEmptySession(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteSheetPDF(&buf, &jigsaw.Session{}, "empty"))
	require.Zero(t, buf.Len())
}

func TestPageMapFitsExtent(t *testing.T) {
	ext := emptyExtent()
	ext.add(-2, -1)
	ext.add(2, 1)
	pm := newPageMap(ext)

	x0, y0 := pm.point(-2, 1)
	x1, y1 := pm.point(2, -1)
	require.GreaterOrEqual(t, x0, margin)
	require.GreaterOrEqual(t, y0, drawTop)
	require.LessOrEqual(t, x1, pageWidth-margin+1e-9)
	require.LessOrEqual(t, y1, pageHeight-margin+1e-9)
	require.Less(t, y0, y1, "y must flip so up is toward the top of the page")
}

func TestWriteCutLinesDXF(t *testing.T) {
	cases := []struct {
		w, h int
	}{
		{800, 400},
		{400, 800},
		{500, 500},
	}
	for _, tc := range cases {
		s := testSession(t, tc.w, tc.h)
		path := filepath.Join(t.TempDir(), "cut.dxf")
		require.NoError(t, WriteCutLinesDXF(path, s, 25))

		d, err := dxf.Open(path)
		require.NoError(t, err)

		lines := 0
		maxX, maxY := 0.0, 0.0
		for _, e := range d.Entities() {
			l, ok := e.(*entity.Line)
			if !ok {
				continue
			}
			lines++
			maxX = max(maxX, l.Start[0], l.End[0])
			maxY = max(maxY, l.Start[1], l.End[1])
		}
		require.Equal(t, (s.Shape.Columns+1)+(s.Shape.Rows+1), lines)
		require.InDelta(t, 25*float64(s.Shape.Rows), maxY, 1e-6)
		require.InDelta(t, 25*s.Unit.Width/s.Unit.Height*float64(s.Shape.Columns), maxX, 1e-6)
	}
}

func TestWriteCutLinesDXFRejectsBadScale(t *testing.T) {
	s := testSession(t, 800, 400)
	err := WriteCutLinesDXF(filepath.Join(t.TempDir(), "cut.dxf"), s, 0)
	require.ErrorIs(t, err, jigsaw.ErrInvalidDimensions)
}
