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

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontfilter"
)

func simple() *glyf.Glyph {
	return &glyf.Glyph{Data: glyf.SimpleGlyph{}}
}

func composite(refs ...glyph.ID) *glyf.Glyph {
	comps := make([]glyf.GlyphComponent, len(refs))
	for i, gid := range refs {
		comps[i] = glyf.GlyphComponent{GlyphIndex: gid}
	}
	return &glyf.Glyph{Data: glyf.CompositeGlyph{Components: comps}}
}

func glyfSource(glyphs glyf.Glyphs) *fontfilter.Source {
	return &fontfilter.Source{
		Kind: fontfilter.KindGlyf,
		Font: &sfnt.Font{Outlines: &glyf.Outlines{Glyphs: glyphs}},
	}
}

func TestClose(t *testing.T) {
	// 4 refers to 2 and 5; 5 refers to 6; 7 contains itself and 4
	glyphs := glyf.Glyphs{
		nil,             // 0
		simple(),        // 1
		simple(),        // 2
		simple(),        // 3
		composite(2, 5), // 4
		composite(6),    // 5
		simple(),        // 6
		composite(4, 7), // 7
	}
	src := glyfSource(glyphs)

	cases := []struct {
		name string
		in   []glyph.ID
		want []glyph.ID
	}{
		{
			name: "no composites",
			in:   []glyph.ID{1, 3},
			want: []glyph.ID{1, 3},
		},
		{
			name: "components appended in discovery order",
			in:   []glyph.ID{4},
			want: []glyph.ID{4, 2, 5, 6},
		},
		{
			name: "already present components are not duplicated",
			in:   []glyph.ID{2, 4},
			want: []glyph.ID{2, 4, 5, 6},
		},
		{
			name: "self reference terminates",
			in:   []glyph.ID{7},
			want: []glyph.ID{7, 4, 2, 5, 6},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Close(src, c.in)
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("closure differs (-want +got):\n%s", d)
			}

			// closing a closed set is a no-op
			again := Close(src, got)
			if d := cmp.Diff(got, again); d != "" {
				t.Errorf("closure not idempotent (-want +got):\n%s", d)
			}
		})
	}
}

func TestCloseDuplicateInput(t *testing.T) {
	src := glyfSource(glyf.Glyphs{nil, simple(), simple()})
	got := Close(src, []glyph.ID{1, 2, 1})
	want := []glyph.ID{1, 2}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("closure differs (-want +got):\n%s", d)
	}
}
