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

// Package fonttest provides deterministic fonts for use in unit tests.
package fonttest

import (
	"bytes"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// NewCFF creates a small CFF-outlined font with hand-made glyphs.
//
// The font maps the following characters, with distinct advance widths
// so that tests can tell the glyphs apart:
//
//	" "    -> GID 1 (width 250, blank)
//	"A", "Ä" -> GID 2 (width 500, a square)
//	"B"    -> GID 3 (width 550, a triangle)
//	"C"    -> GID 4 (width 600, two nested contours)
func NewCFF() *sfnt.Font {
	encoding := make([]glyph.ID, 256)
	encoding[' '] = 1
	encoding['A'] = 2
	encoding['B'] = 3
	encoding['C'] = 4
	encoding[0xC4] = 2

	outlines := &cff.Outlines{
		Private: []*type1.PrivateDict{
			{
				BlueValues: []funit.Int16{0, 0, 500, 500},
				BlueScale:  0.039625,
				BlueShift:  7,
				BlueFuzz:   1,
			},
		},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: encoding,
	}

	notdef := cff.NewGlyph(".notdef", 500)
	notdef.MoveTo(50, 0)
	notdef.LineTo(450, 0)
	notdef.LineTo(450, 700)
	notdef.LineTo(50, 700)
	outlines.Glyphs = append(outlines.Glyphs, notdef)

	space := cff.NewGlyph("space", 250)
	outlines.Glyphs = append(outlines.Glyphs, space)

	a := cff.NewGlyph("A", 500)
	a.MoveTo(100, 0)
	a.LineTo(400, 0)
	a.LineTo(400, 500)
	a.LineTo(100, 500)
	outlines.Glyphs = append(outlines.Glyphs, a)

	b := cff.NewGlyph("B", 550)
	b.MoveTo(100, 0)
	b.LineTo(450, 0)
	b.LineTo(275, 500)
	outlines.Glyphs = append(outlines.Glyphs, b)

	c := cff.NewGlyph("C", 600)
	c.MoveTo(50, 0)
	c.LineTo(550, 0)
	c.LineTo(550, 500)
	c.LineTo(50, 500)
	c.MoveTo(150, 100)
	c.LineTo(150, 400)
	c.LineTo(450, 400)
	c.LineTo(450, 100)
	outlines.Glyphs = append(outlines.Glyphs, c)

	subtable := cmap.Format4{
		0x0020: 1,
		'A':    2,
		'B':    3,
		'C':    4,
		0x00C4: 2,
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	font := &sfnt.Font{
		FamilyName: "Boxy",
		IsRegular:  true,

		CreationTime:     now,
		ModificationTime: now,

		UnitsPerEm: 1000,
		FontMatrix: [6]float64{0.001, 0, 0, 0.001, 0, 0},

		Ascent:    700,
		Descent:   -200,
		LineGap:   100,
		CapHeight: 500,
		XHeight:   350,

		Outlines: outlines,
	}
	font.InstallCMap(subtable)

	return font
}

// CFFData returns the font from NewCFF serialized to an OpenType file.
func CFFData() []byte {
	buf := &bytes.Buffer{}
	_, err := NewCFF().Write(buf)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// GlyfData returns a real TrueType font with glyf outlines, composite
// glyphs and a large character map.
func GlyfData() []byte {
	return goregular.TTF
}
