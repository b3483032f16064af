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
	"testing"

	"github.com/google/go-cmp/cmp"
	ot "github.com/go-text/typesetting/font/opentype"

	"seehuhn.de/go/sfnt/cff"
)

func point(x, y float32) ot.SegmentPoint {
	return ot.SegmentPoint{X: x, Y: y}
}

func TestReplaySegments(t *testing.T) {
	segments := []ot.Segment{
		{Op: ot.SegmentOpMoveTo, Args: [3]ot.SegmentPoint{point(10, 20)}},
		{Op: ot.SegmentOpLineTo, Args: [3]ot.SegmentPoint{point(100, 20)}},
		{Op: ot.SegmentOpQuadTo, Args: [3]ot.SegmentPoint{
			point(130, 50), point(100, 80),
		}},
		{Op: ot.SegmentOpCubeTo, Args: [3]ot.SegmentPoint{
			point(90, 90), point(20, 90), point(10, 20),
		}},
	}

	g := cff.NewGlyph("test", 0)
	replaySegments(g, segments)

	// The quadratic curve with control point (130, 50) from (100, 20)
	// to (100, 80) promotes to the cubic with control points
	// (100, 20) + 2/3*(30, 30) = (120, 40) and
	// (100, 80) + 2/3*(30, -30) = (120, 60).
	want := []cff.GlyphOp{
		{Op: cff.OpMoveTo, Args: []float64{10, 20}},
		{Op: cff.OpLineTo, Args: []float64{100, 20}},
		{Op: cff.OpCurveTo, Args: []float64{120, 40, 120, 60, 100, 80}},
		{Op: cff.OpCurveTo, Args: []float64{90, 90, 20, 90, 10, 20}},
	}
	if d := cmp.Diff(want, g.Cmds); d != "" {
		t.Errorf("outline differs (-want +got):\n%s", d)
	}
}

func TestReplaySegmentsQuadAfterMove(t *testing.T) {
	// the current point for the promotion is the moveto target
	segments := []ot.Segment{
		{Op: ot.SegmentOpMoveTo, Args: [3]ot.SegmentPoint{point(0, 0)}},
		{Op: ot.SegmentOpQuadTo, Args: [3]ot.SegmentPoint{
			point(30, 0), point(30, 30),
		}},
	}

	g := cff.NewGlyph("test", 0)
	replaySegments(g, segments)

	want := []cff.GlyphOp{
		{Op: cff.OpMoveTo, Args: []float64{0, 0}},
		{Op: cff.OpCurveTo, Args: []float64{20, 0, 30, 10, 30, 30}},
	}
	if d := cmp.Diff(want, g.Cmds); d != "" {
		t.Errorf("outline differs (-want +got):\n%s", d)
	}
}

func TestReplaySegmentsEmpty(t *testing.T) {
	g := cff.NewGlyph("test", 0)
	replaySegments(g, nil)
	if len(g.Cmds) != 0 {
		t.Errorf("unexpected commands: %v", g.Cmds)
	}
}
