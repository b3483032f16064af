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
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
)

// OutlineKind identifies which outline table of a font is authoritative.
// A well-formed font has exactly one of these; if several tables coexist
// the fixed precedence CFF > CFF2 > glyf applies.
type OutlineKind int

const (
	KindCFF OutlineKind = iota + 1
	KindCFF2
	KindGlyf
)

func (k OutlineKind) String() string {
	switch k {
	case KindCFF:
		return "CFF"
	case KindCFF2:
		return "CFF2"
	case KindGlyf:
		return "glyf"
	default:
		return fmt.Sprintf("OutlineKind(%d)", int(k))
	}
}

// ErrNoOutlines is returned for uploads without a supported outline table.
var ErrNoOutlines = errors.New("fontfilter: no CFF, CFF2 or glyf table")

// A Source is the read-only view of an uploaded font binary.  All fields
// are set during ParseSource and never change afterwards; a Source is
// request-scoped and safe to share within one request.
type Source struct {
	// Data holds the original upload bytes, unmodified.
	Data []byte

	Kind OutlineKind

	// Font is the parsed font for CFF and glyf sources.  It is nil for
	// CFF2 sources.
	Font *sfnt.Font

	// Face is the parsed font for CFF2 sources.  It is nil otherwise.
	Face *font.Face

	// CMap is the best Unicode subtable of the font's cmap.
	CMap cmap.Subtable

	FamilyName string
	Subfamily  string

	UnitsPerEm uint16

	Ascent    funit.Int16
	Descent   funit.Int16
	LineGap   funit.Int16
	CapHeight funit.Int16
	XHeight   funit.Int16
}

// ParseSource parses an uploaded font binary.  Parse failures and missing
// required tables are reported as errors; they correspond to client
// errors at the HTTP boundary.
func ParseSource(data []byte) (*Source, error) {
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontfilter: reading table directory: %w", err)
	}

	kind, err := kindFromTags(ld.Tables())
	if err != nil {
		return nil, err
	}
	logrus.Debugf("source font uses %s outlines", kind)

	src := &Source{
		Data: data,
		Kind: kind,
	}
	switch kind {
	case KindCFF, KindGlyf:
		f, err := sfnt.Read(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("fontfilter: parsing font: %w", err)
		}
		sub, err := f.CMapTable.GetBest()
		if err != nil {
			return nil, fmt.Errorf("fontfilter: no usable cmap: %w", err)
		}
		src.Font = f
		src.CMap = sub
		src.FamilyName = f.FamilyName
		src.Subfamily = f.Subfamily()
		src.UnitsPerEm = f.UnitsPerEm
		src.Ascent = f.Ascent
		src.Descent = f.Descent
		src.LineGap = f.LineGap
		src.CapHeight = f.CapHeight
		src.XHeight = f.XHeight

	case KindCFF2:
		ft, err := font.NewFont(ld)
		if err != nil {
			return nil, fmt.Errorf("fontfilter: parsing font: %w", err)
		}
		face := font.NewFace(ft)

		raw, err := ld.RawTable(ot.MustNewTag("cmap"))
		if err != nil {
			return nil, fmt.Errorf("fontfilter: no usable cmap: %w", err)
		}
		table, err := cmap.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("fontfilter: no usable cmap: %w", err)
		}
		sub, err := table.GetBest()
		if err != nil {
			return nil, fmt.Errorf("fontfilter: no usable cmap: %w", err)
		}

		desc, _ := font.Describe(ld, nil)

		src.Face = face
		src.CMap = sub
		src.FamilyName = desc.Family
		src.Subfamily = subfamilyFromAspect(desc.Aspect)
		src.UnitsPerEm = face.Upem()
		if ext, ok := face.FontHExtents(); ok {
			src.Ascent = funit.Int16(ext.Ascender)
			src.Descent = funit.Int16(ext.Descender)
			src.LineGap = funit.Int16(ext.LineGap)
		}
	}

	return src, nil
}

// GlyphWidth returns the advance width of a glyph in font units.
func (s *Source) GlyphWidth(gid glyph.ID) float64 {
	switch s.Kind {
	case KindCFF:
		o := s.Font.Outlines.(*cff.Outlines)
		if int(gid) >= len(o.Glyphs) {
			return 0
		}
		return float64(o.Glyphs[gid].Width)
	case KindGlyf:
		o := s.Font.Outlines.(*glyf.Outlines)
		if o.Widths == nil || int(gid) >= len(o.Widths) {
			return 0
		}
		return float64(o.Widths[gid])
	case KindCFF2:
		return float64(s.Face.HorizontalAdvance(font.GID(gid)))
	default:
		panic("unexpected outline kind")
	}
}

// Components returns the glyphs directly referenced as components of gid.
// Only glyf outlines have composite glyphs; for the other kinds the
// result is always nil.
func (s *Source) Components(gid glyph.ID) []glyph.ID {
	if s.Kind != KindGlyf {
		return nil
	}
	o := s.Font.Outlines.(*glyf.Outlines)
	if int(gid) >= len(o.Glyphs) {
		return nil
	}
	return o.Glyphs[gid].Components()
}

// GlyphName returns the glyph's name, or a synthetic one if the font
// does not provide names.
func (s *Source) GlyphName(gid glyph.ID) string {
	if s.Kind != KindCFF2 {
		if name := s.Font.GlyphName(gid); name != "" {
			return name
		}
	}
	if gid == 0 {
		return ".notdef"
	}
	return fmt.Sprintf("g%d", gid)
}

func kindFromTags(tags []ot.Tag) (OutlineKind, error) {
	var hasCFF, hasCFF2, hasGlyf bool
	for _, tag := range tags {
		switch tag {
		case ot.MustNewTag("CFF "):
			hasCFF = true
		case ot.MustNewTag("CFF2"):
			hasCFF2 = true
		case ot.MustNewTag("glyf"):
			hasGlyf = true
		}
	}
	switch {
	case hasCFF:
		return KindCFF, nil
	case hasCFF2:
		return KindCFF2, nil
	case hasGlyf:
		return KindGlyf, nil
	default:
		return 0, ErrNoOutlines
	}
}

func subfamilyFromAspect(a font.Aspect) string {
	var sub string
	if a.Weight >= font.WeightBold {
		sub = "Bold"
	}
	if a.Style == font.StyleItalic {
		if sub != "" {
			sub += " "
		}
		sub += "Italic"
	}
	if sub == "" {
		sub = "Regular"
	}
	return sub
}
