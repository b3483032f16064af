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
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontfilter"
)

// Close expands a glyph set with every glyph transitively referenced as
// a component of a composite glyph.  Entries already present keep their
// position; new component glyphs are appended in discovery order.  The
// visited set makes the traversal terminate even if a malformed font
// contains a component reference cycle.
func Close(src *fontfilter.Source, glyphs []glyph.ID) []glyph.ID {
	seen := make(map[glyph.ID]bool, len(glyphs))
	res := make([]glyph.ID, 0, len(glyphs))
	var todo []glyph.ID

	for _, gid := range glyphs {
		if seen[gid] {
			continue
		}
		seen[gid] = true
		res = append(res, gid)
		todo = append(todo, gid)
	}

	for len(todo) > 0 {
		gid := todo[0]
		todo = todo[1:]
		for _, comp := range src.Components(gid) {
			if seen[comp] {
				continue
			}
			seen[comp] = true
			res = append(res, comp)
			todo = append(todo, comp)
		}
	}

	return res
}
