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

package fontfilter

import (
	"errors"
	"testing"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"seehuhn.de/go/fontfilter/internal/fonttest"
)

func TestParseSourceCFF(t *testing.T) {
	src, err := ParseSource(fonttest.CFFData())
	if err != nil {
		t.Fatal(err)
	}
	if src.Kind != KindCFF {
		t.Errorf("wrong outline kind: got %s, want CFF", src.Kind)
	}
	if src.FamilyName != "Boxy" {
		t.Errorf("wrong family name: got %q", src.FamilyName)
	}
	if src.Subfamily != "Regular" {
		t.Errorf("wrong subfamily: got %q", src.Subfamily)
	}
	if src.UnitsPerEm != 1000 {
		t.Errorf("wrong units per em: got %d", src.UnitsPerEm)
	}
	if src.Ascent != 700 || src.Descent != -200 {
		t.Errorf("wrong vertical metrics: got %d/%d", src.Ascent, src.Descent)
	}
	if gid := src.CMap.Lookup('A'); gid == 0 {
		t.Error("cmap does not map 'A'")
	}
}

func TestParseSourceGlyf(t *testing.T) {
	src, err := ParseSource(fonttest.GlyfData())
	if err != nil {
		t.Fatal(err)
	}
	if src.Kind != KindGlyf {
		t.Errorf("wrong outline kind: got %s, want glyf", src.Kind)
	}
	if src.UnitsPerEm != 2048 {
		t.Errorf("wrong units per em: got %d", src.UnitsPerEm)
	}
	if gid := src.CMap.Lookup('A'); gid == 0 {
		t.Error("cmap does not map 'A'")
	}
	if src.Font == nil {
		t.Error("Font not set for glyf source")
	}
}

func TestParseSourceInvalid(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("not a font"),
		fonttest.CFFData()[:20],
	}
	for i, data := range cases {
		if _, err := ParseSource(data); err == nil {
			t.Errorf("case %d: expected error for invalid input", i)
		}
	}
}

func TestKindPrecedence(t *testing.T) {
	cff := ot.MustNewTag("CFF ")
	cff2 := ot.MustNewTag("CFF2")
	glyf := ot.MustNewTag("glyf")
	head := ot.MustNewTag("head")

	cases := []struct {
		tags []ot.Tag
		want OutlineKind
	}{
		{[]ot.Tag{head, cff}, KindCFF},
		{[]ot.Tag{head, cff2}, KindCFF2},
		{[]ot.Tag{head, glyf}, KindGlyf},
		{[]ot.Tag{glyf, cff2, cff}, KindCFF},
		{[]ot.Tag{glyf, cff2}, KindCFF2},
	}
	for i, c := range cases {
		got, err := kindFromTags(c.tags)
		if err != nil {
			t.Errorf("case %d: unexpected error %v", i, err)
			continue
		}
		if got != c.want {
			t.Errorf("case %d: got %s, want %s", i, got, c.want)
		}
	}

	_, err := kindFromTags([]ot.Tag{head})
	if !errors.Is(err, ErrNoOutlines) {
		t.Errorf("got %v, want ErrNoOutlines", err)
	}
}

func TestGlyphWidth(t *testing.T) {
	src, err := ParseSource(fonttest.CFFData())
	if err != nil {
		t.Fatal(err)
	}
	gid := src.CMap.Lookup('A')
	if w := src.GlyphWidth(gid); w != 500 {
		t.Errorf("wrong width for 'A': got %g, want 500", w)
	}
	if w := src.GlyphWidth(9999); w != 0 {
		t.Errorf("wrong width for out-of-range glyph: got %g", w)
	}
}

func TestGlyphName(t *testing.T) {
	src, err := ParseSource(fonttest.CFFData())
	if err != nil {
		t.Fatal(err)
	}
	if name := src.GlyphName(0); name != ".notdef" {
		t.Errorf("wrong name for glyph 0: got %q", name)
	}
	gid := src.CMap.Lookup('A')
	if name := src.GlyphName(gid); name != "A" {
		t.Errorf("wrong name for 'A': got %q", name)
	}
}

func TestComponentsNonGlyf(t *testing.T) {
	src, err := ParseSource(fonttest.CFFData())
	if err != nil {
		t.Fatal(err)
	}
	if comps := src.Components(1); comps != nil {
		t.Errorf("CFF glyphs have no components, got %v", comps)
	}
}

func TestSubfamilyFromAspect(t *testing.T) {
	cases := []struct {
		aspect font.Aspect
		want   string
	}{
		{font.Aspect{}, "Regular"},
		{font.Aspect{Weight: font.WeightNormal}, "Regular"},
		{font.Aspect{Weight: font.WeightBold}, "Bold"},
		{font.Aspect{Style: font.StyleItalic}, "Italic"},
		{
			font.Aspect{Weight: font.WeightBold, Style: font.StyleItalic},
			"Bold Italic",
		},
	}
	for _, c := range cases {
		if got := subfamilyFromAspect(c.aspect); got != c.want {
			t.Errorf("subfamilyFromAspect(%v) = %q, want %q",
				c.aspect, got, c.want)
		}
	}
}

func TestRanges(t *testing.T) {
	ranges := []Range{{Low: 32, High: 126}, {Low: 0xC0, High: 0xFF}}
	cases := []struct {
		r    rune
		want bool
	}{
		{' ', true},
		{'~', true},
		{31, false},
		{127, false},
		{0xC4, true},
		{0x100, false},
	}
	for _, c := range cases {
		if got := InRanges(ranges, c.r); got != c.want {
			t.Errorf("InRanges(%q): got %t, want %t", c.r, got, c.want)
		}
	}
}
