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

package filter

import (
	"fmt"
	"image"

	"golang.org/x/image/vector"

	"seehuhn.de/go/sfnt/cff"
)

// rasterizer replaces each glyph outline by one square contour per
// covered cell of a resolution x resolution grid over the em box.
type rasterizer struct{}

func (rasterizer) Identifier() string { return "rasterizer" }

func (rasterizer) Suffixes() []string { return []string{"Rasterized"} }

func (rasterizer) NeedsWidths() bool { return false }

func (rasterizer) Apply(req *Request) ([]Output, error) {
	res := req.Params.Resolution
	if res <= 0 {
		return nil, fmt.Errorf("resolution %d out of range", res)
	}

	f := req.Minimal.Font
	outlines := req.Minimal.Outlines()
	upem := float64(f.UnitsPerEm)
	cell := upem / float64(res)
	// The grid covers the em box: x in [0, upem), y from the descender
	// line upwards.
	bottom := float64(f.Descent)

	for i, g := range outlines.Glyphs {
		if len(g.Cmds) == 0 {
			continue
		}
		mask := fillMask(g.Cmds, res, upem, bottom)

		g2 := cff.NewGlyph(g.Name, g.Width)
		for row := 0; row < res; row++ {
			for col := 0; col < res; col++ {
				if mask.AlphaAt(col, row).A < 0x80 {
					continue
				}
				x0 := float64(col) * cell
				x1 := float64(col+1) * cell
				// row 0 is the top scanline of the em box
				y1 := bottom + upem - float64(row)*cell
				y0 := y1 - cell
				g2.MoveTo(x0, y0)
				g2.LineTo(x1, y0)
				g2.LineTo(x1, y1)
				g2.LineTo(x0, y1)
			}
		}
		outlines.Glyphs[i] = g2
	}

	return []Output{&fontOutput{font: f}}, nil
}

// fillMask fills the outline into a res x res alpha mask; a cell counts
// as covered when its accumulated coverage is at least one half.
func fillMask(cmds []cff.GlyphOp, res int, upem, bottom float64) *image.Alpha {
	ras := vector.NewRasterizer(res, res)
	scale := float64(res) / upem
	top := bottom + upem

	// font units -> grid coordinates, y flipped
	px := func(x float64) float32 { return float32(x * scale) }
	py := func(y float64) float32 { return float32((top - y) * scale) }

	started := false
	for _, cmd := range cmds {
		switch cmd.Op {
		case cff.OpMoveTo:
			if started {
				ras.ClosePath()
			}
			ras.MoveTo(px(cmd.Args[0]), py(cmd.Args[1]))
			started = true
		case cff.OpLineTo:
			ras.LineTo(px(cmd.Args[0]), py(cmd.Args[1]))
		case cff.OpCurveTo:
			ras.CubeTo(
				px(cmd.Args[0]), py(cmd.Args[1]),
				px(cmd.Args[2]), py(cmd.Args[3]),
				px(cmd.Args[4]), py(cmd.Args[5]))
		}
	}
	if started {
		ras.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, res, res))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
