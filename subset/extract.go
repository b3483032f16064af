// seehuhn.de/go/fontfilter - a web service for visual font filters
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package subset

import (
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontfilter"
)

// An Extractor copies glyph outlines from a source font onto editable
// destination glyphs.  The extraction strategy is chosen once per source
// font, not per glyph.
type Extractor interface {
	// CopyOutline replays the outline of gid as pen commands onto g.
	// The copy is pure data transcoding: coordinates, curve degree and
	// contour order are preserved.  Quadratic curves are promoted to the
	// exactly equivalent cubics.
	CopyOutline(g *cff.Glyph, gid glyph.ID) error
}

// NewExtractor returns the extraction strategy for the source font's
// outline kind.
func NewExtractor(src *fontfilter.Source) Extractor {
	switch src.Kind {
	case fontfilter.KindCFF:
		return &cffExtractor{outlines: src.Font.Outlines.(*cff.Outlines)}
	case fontfilter.KindCFF2:
		return &cff2Extractor{face: src.Face}
	case fontfilter.KindGlyf:
		return &glyfExtractor{outlines: src.Font.Outlines.(*glyf.Outlines)}
	default:
		panic("unexpected outline kind")
	}
}

type cffExtractor struct {
	outlines *cff.Outlines
}

func (e *cffExtractor) CopyOutline(g *cff.Glyph, gid glyph.ID) error {
	if int(gid) >= len(e.outlines.Glyphs) {
		return fmt.Errorf("fontfilter: glyph %d out of range", gid)
	}
	orig := e.outlines.Glyphs[gid]
	if orig == nil {
		return nil
	}
	for _, cmd := range orig.Cmds {
		switch cmd.Op {
		case cff.OpMoveTo:
			g.MoveTo(cmd.Args[0], cmd.Args[1])
		case cff.OpLineTo:
			g.LineTo(cmd.Args[0], cmd.Args[1])
		case cff.OpCurveTo:
			g.CurveTo(cmd.Args[0], cmd.Args[1],
				cmd.Args[2], cmd.Args[3],
				cmd.Args[4], cmd.Args[5])
		default:
			// hinting operators carry no outline data
		}
	}
	return nil
}

type glyfExtractor struct {
	outlines *glyf.Outlines
}

func (e *glyfExtractor) CopyOutline(g *cff.Glyph, gid glyph.ID) error {
	if int(gid) >= len(e.outlines.Glyphs) {
		return fmt.Errorf("fontfilter: glyph %d out of range", gid)
	}
	if e.outlines.Glyphs[gid] == nil {
		return nil
	}
	glyphPath := e.outlines.Path(gid)
	for cmd, pts := range glyphPath.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			g.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			g.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			g.CurveTo(pts[0].X, pts[0].Y,
				pts[1].X, pts[1].Y,
				pts[2].X, pts[2].Y)
		case path.CmdClose:
			// CFF contours close implicitly
		}
	}
	return nil
}

type cff2Extractor struct {
	face *font.Face
}

func (e *cff2Extractor) CopyOutline(g *cff.Glyph, gid glyph.ID) error {
	data := e.face.GlyphData(font.GID(gid))
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		// blank glyph, or glyph data in a non-outline format
		return nil
	}
	replaySegments(g, outline.Segments)
	return nil
}

// replaySegments copies scaler segments onto g.
func replaySegments(g *cff.Glyph, segments []ot.Segment) {
	var curX, curY float64
	for _, seg := range segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			curX = float64(seg.Args[0].X)
			curY = float64(seg.Args[0].Y)
			g.MoveTo(curX, curY)
		case ot.SegmentOpLineTo:
			curX = float64(seg.Args[0].X)
			curY = float64(seg.Args[0].Y)
			g.LineTo(curX, curY)
		case ot.SegmentOpQuadTo:
			qx := float64(seg.Args[0].X)
			qy := float64(seg.Args[0].Y)
			ex := float64(seg.Args[1].X)
			ey := float64(seg.Args[1].Y)
			g.CurveTo(
				curX+2*(qx-curX)/3, curY+2*(qy-curY)/3,
				ex+2*(qx-ex)/3, ey+2*(qy-ey)/3,
				ex, ey)
			curX, curY = ex, ey
		case ot.SegmentOpCubeTo:
			g.CurveTo(
				float64(seg.Args[0].X), float64(seg.Args[0].Y),
				float64(seg.Args[1].X), float64(seg.Args[1].Y),
				float64(seg.Args[2].X), float64(seg.Args[2].Y))
			curX = float64(seg.Args[2].X)
			curY = float64(seg.Args[2].Y)
		}
	}
}
