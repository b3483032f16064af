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
	"math"
)

// extruder appends an angle-displaced silhouette to every outline,
// giving the glyphs a fixed-direction depth.  It is the only filter that
// needs advance widths: the displaced silhouette must stay consistent
// with the glyph's horizontal metrics, and the output font also carries
// the kerning pairs merged in by the dispatcher.
type extruder struct{}

func (extruder) Identifier() string { return "extruder" }

func (extruder) Suffixes() []string { return []string{"Extruded"} }

func (extruder) NeedsWidths() bool { return true }

func (extruder) Apply(req *Request) ([]Output, error) {
	f := req.Minimal.Font
	outlines := req.Minimal.Outlines()

	// extrusion vector: one tenth of an em in the requested direction
	rad := float64(req.Params.Angle) * math.Pi / 180
	depth := float64(f.UnitsPerEm) / 10
	dx := math.Round(math.Cos(rad) * depth)
	dy := math.Round(math.Sin(rad) * depth)

	for _, g := range outlines.Glyphs {
		if len(g.Cmds) == 0 {
			continue
		}
		g.Cmds = append(translated(g.Cmds, dx, dy), g.Cmds...)
	}

	return []Output{&fontOutput{font: f}}, nil
}
