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

// Package kerning extracts horizontal pair kerning from a font by
// shaping character pairs with a HarfBuzz-style shaper.  The shaper sees
// the original upload bytes, so kerning from both "kern" and GPOS tables
// is picked up without this package knowing either table format.
package kerning

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontfilter/charmap"
)

// Extract shapes every ordered pair of distinct preview characters and
// records the advance adjustments the font applies to them.  The result
// maps source glyph ID pairs to kerning values in font units; pairs
// whose glyphs are not in the selected set are omitted.
func Extract(data []byte, previewString string, cm *charmap.Map, selected []glyph.ID) (map[glyph.Pair]funit.Int16, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontfilter: parsing font for shaping: %w", err)
	}

	selSet := make(map[glyph.ID]bool, len(selected))
	for _, gid := range selected {
		selSet[gid] = true
	}

	// preview characters with a glyph, deduplicated by first occurrence
	var chars []rune
	gids := make(map[rune]glyph.ID)
	seen := make(map[rune]bool)
	for _, r := range previewString {
		if seen[r] {
			continue
		}
		seen[r] = true
		gid, ok := cm.Lookup(r)
		if !ok || !selSet[gid] {
			continue
		}
		chars = append(chars, r)
		gids[r] = gid
	}

	upem := face.Upem()
	shaper := &shaping.HarfbuzzShaper{}

	pairs := make(map[glyph.Pair]funit.Int16)
	for _, a := range chars {
		width := float64(face.HorizontalAdvance(font.GID(gids[a])))
		for _, b := range chars {
			text := []rune{a, b}
			out := shaper.Shape(shaping.Input{
				Text:      text,
				RunStart:  0,
				RunEnd:    len(text),
				Direction: di.DirectionLTR,
				Face:      face,
				Size:      fixed.I(int(upem)),
			})
			if len(out.Glyphs) != 2 {
				// the pair shaped into a ligature or split apart;
				// there is no pair adjustment to record
				continue
			}
			shaped := float64(out.Glyphs[0].XAdvance) / 64
			kern := math.Round(shaped - width)
			if kern == 0 {
				continue
			}
			pairs[glyph.Pair{Left: gids[a], Right: gids[b]}] = funit.Int16(kern)
		}
	}

	logrus.Debugf("extracted %d kerning pairs from %d preview characters",
		len(pairs), len(chars))
	return pairs, nil
}
