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
	"strings"
	"time"

	"golang.org/x/text/language"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/fontfilter"
	"seehuhn.de/go/fontfilter/charmap"
)

// Options controls which optional data the assembler copies from the
// source font.
type Options struct {
	// CopyNames copies the family and subfamily names onto the minimal
	// font.  It is set for download requests only; preview fonts carry
	// no identity metadata.
	CopyNames bool

	// CopyWidths copies per-glyph advance widths.  Only the filter
	// variant that builds width-aware geometry needs them; for the other
	// filters width handling is deferred to the filter itself.
	CopyWidths bool
}

// A Minimal is a newly assembled editable font containing only the
// glyphs of one closed selection.  Glyph 0 is always .notdef.
type Minimal struct {
	Font *sfnt.Font

	// Glyphs lists the source glyph IDs in minimal font order.
	Glyphs []glyph.ID

	// NewGID maps source glyph IDs to their position in the minimal font.
	NewGID map[glyph.ID]glyph.ID

	outlines *cff.Outlines
}

// Assemble builds the minimal font for a closed glyph set.  Units per em
// and vertical metrics are always copied from the source; identity
// metadata and widths are gated by opts.  Outlines are extracted for
// every glyph with the strategy matching the source's outline kind.
func Assemble(src *fontfilter.Source, cm *charmap.Map, glyphs []glyph.ID, opts Options) (*Minimal, error) {
	order := make([]glyph.ID, 0, len(glyphs)+1)
	order = append(order, 0)
	for _, gid := range glyphs {
		if gid == 0 {
			continue
		}
		order = append(order, gid)
	}

	ext := NewExtractor(src)
	outlines := &cff.Outlines{
		Private: []*type1.PrivateDict{
			{
				BlueScale: 0.039625,
				BlueShift: 7,
				BlueFuzz:  1,
			},
		},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: make([]glyph.ID, 256),
	}

	m := &Minimal{
		Glyphs: order,
		NewGID: make(map[glyph.ID]glyph.ID, len(order)),
	}

	var needFormat12 bool
	runes := make(map[glyph.ID]rune) // keyed by minimal GID
	for i, gid := range order {
		newGID := glyph.ID(i)
		m.NewGID[gid] = newGID

		var width float64
		if opts.CopyWidths {
			width = src.GlyphWidth(gid)
		}
		g := cff.NewGlyph(src.GlyphName(gid), width)
		if err := ext.CopyOutline(g, gid); err != nil {
			return nil, err
		}
		outlines.Glyphs = append(outlines.Glyphs, g)

		if r, ok := cm.Rune(gid); ok && gid != 0 {
			runes[newGID] = r
			if r < 256 {
				outlines.Encoding[r] = newGID
			}
			if r > 0xFFFF {
				needFormat12 = true
			}
		}
	}

	upem := float64(src.UnitsPerEm)
	f := &sfnt.Font{
		UnitsPerEm: src.UnitsPerEm,
		FontMatrix: [6]float64{1 / upem, 0, 0, 1 / upem, 0, 0},

		Ascent:    src.Ascent,
		Descent:   src.Descent,
		LineGap:   src.LineGap,
		CapHeight: src.CapHeight,
		XHeight:   src.XHeight,

		IsRegular: true,

		CreationTime:     time.Now(),
		ModificationTime: time.Now(),

		Outlines: outlines,
	}

	if needFormat12 {
		sub := cmap.Format12{}
		for newGID, r := range runes {
			sub[uint32(r)] = newGID
		}
		f.InstallCMap(sub)
	} else {
		sub := cmap.Format4{}
		for newGID, r := range runes {
			sub[uint16(r)] = newGID
		}
		f.InstallCMap(sub)
	}

	m.Font = f
	m.outlines = outlines

	if opts.CopyNames {
		m.ImportIdentity(src, false)
	}

	return m, nil
}

// Outlines returns the editable outlines of the minimal font.
func (m *Minimal) Outlines() *cff.Outlines {
	return m.outlines
}

// Rune returns the Unicode value of a minimal font glyph, looked up via
// its source glyph and the reverse character map.
func (m *Minimal) Rune(cm *charmap.Map, newGID glyph.ID) (rune, bool) {
	if int(newGID) >= len(m.Glyphs) {
		return 0, false
	}
	return cm.Rune(m.Glyphs[newGID])
}

// ImportIdentity copies the source font's identity metadata onto the
// minimal font.  With extended set, font-wide descriptive metadata is
// copied as well; this is used by the filter variant that re-exports
// installable fonts.
func (m *Minimal) ImportIdentity(src *fontfilter.Source, extended bool) {
	m.Font.FamilyName = src.FamilyName
	applySubfamily(m.Font, src.Subfamily)

	if !extended || src.Font == nil {
		return
	}
	orig := src.Font
	m.Font.Version = orig.Version
	m.Font.CreationTime = orig.CreationTime
	m.Font.ModificationTime = orig.ModificationTime
	m.Font.Description = orig.Description
	m.Font.SampleText = orig.SampleText
	m.Font.Copyright = orig.Copyright
	m.Font.Trademark = orig.Trademark
	m.Font.License = orig.License
	m.Font.LicenseURL = orig.LicenseURL
	m.Font.PermUse = orig.PermUse
	m.Font.Width = orig.Width
	m.Font.Weight = orig.Weight
	m.Font.UnderlinePosition = orig.UnderlinePosition
	m.Font.UnderlineThickness = orig.UnderlineThickness
	m.Font.ItalicAngle = orig.ItalicAngle
}

// applySubfamily maps a subfamily name onto the font's style flags, from
// which the subfamily string is derived again when the font is written.
func applySubfamily(f *sfnt.Font, sub string) {
	f.IsBold = strings.Contains(sub, "Bold")
	f.IsItalic = strings.Contains(sub, "Italic") || strings.Contains(sub, "Oblique")
	f.IsOblique = strings.Contains(sub, "Oblique")
	f.IsRegular = !f.IsBold && !f.IsItalic
}

// MergeKerning merges horizontal pair kerning, given in source glyph IDs
// and font units, into the minimal font as a GPOS "kern" feature.  Pairs
// involving glyphs outside the minimal font are dropped.
func (m *Minimal) MergeKerning(pairs map[glyph.Pair]funit.Int16) {
	if len(pairs) == 0 {
		return
	}

	kern := gtab.Gpos2_1{}
	for pair, adj := range pairs {
		left, ok := m.NewGID[pair.Left]
		if !ok {
			continue
		}
		right, ok := m.NewGID[pair.Right]
		if !ok {
			continue
		}
		kern[glyph.Pair{Left: left, Right: right}] = &gtab.PairAdjust{
			First: &gtab.GposValueRecord{XAdvance: adj},
		}
	}
	if len(kern) == 0 {
		return
	}

	m.Font.Gpos = &gtab.Info{
		ScriptList: map[language.Tag]*gtab.Features{
			language.Und: {Optional: []gtab.FeatureIndex{0}},
		},
		FeatureList: []*gtab.Feature{
			{Tag: "kern", Lookups: []gtab.LookupIndex{0}},
		},
		LookupList: []*gtab.LookupTable{
			{
				Meta:      &gtab.LookupMetaInfo{LookupType: 2},
				Subtables: []gtab.Subtable{kern},
			},
		},
	}
}
