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
)

// rotorizer produces a fixed pair of fonts: the underlay carries the
// rotation body (the outline swept sideways by the rotation depth), the
// overlay carries the unchanged front face.  Layered on top of each
// other they give the rotated-solid effect.
type rotorizer struct{}

func (rotorizer) Identifier() string { return "rotorizer" }

func (rotorizer) Suffixes() []string {
	return []string{"Rotorized Underlay", "Rotorized Overlay"}
}

func (rotorizer) NeedsWidths() bool { return false }

func (rotorizer) Apply(req *Request) ([]Output, error) {
	depth := req.Params.Depth
	if depth < 0 {
		return nil, fmt.Errorf("depth %d out of range", depth)
	}

	overlay := req.Minimal.Font

	underlayFont, underlayOutlines := cloneFont(overlay)
	half := float64(depth) / 2
	for _, g := range underlayOutlines.Glyphs {
		if len(g.Cmds) == 0 {
			continue
		}
		body := translated(g.Cmds, -half, 0)
		body = append(body, translated(g.Cmds, half, 0)...)
		g.Cmds = body
	}

	return []Output{
		&fontOutput{font: underlayFont},
		&fontOutput{font: overlay},
	}, nil
}
