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

// Package subset computes the minimal set of glyphs needed for a request
// and assembles them into a new, editable font.
package subset

import (
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontfilter"
	"seehuhn.de/go/fontfilter/charmap"
)

// Mode is the processing intent of a request.
type Mode int

const (
	// ModePreview selects the glyphs of a short literal string.
	ModePreview Mode = iota + 1

	// ModeDownload selects every glyph whose code point lies in the
	// configured download ranges.
	ModeDownload
)

// A Selection is an ordered glyph set together with the preview
// characters that have no glyph in the font.  The order is the insertion
// order; it carries no meaning beyond reproducibility.
type Selection struct {
	Glyphs []glyph.ID

	// Missing lists the preview characters without a glyph mapping, one
	// entry per occurrence in the preview string.  It is always empty in
	// download mode.
	Missing []rune
}

// Select computes the initial glyph set for a request.  In preview mode
// the characters of previewString are deduplicated by first occurrence
// and mapped through the character map; characters without a glyph are
// skipped silently and recorded in Missing.  In download mode every
// (glyph, code point) pair of the reverse map whose code point lies in
// ranges is selected, in ascending code point order, and previewString
// is ignored.  A glyph reachable from several code points is judged by
// the one surviving in the reverse map only.
func Select(mode Mode, cm *charmap.Map, previewString string, ranges []fontfilter.Range) *Selection {
	sel := &Selection{}
	seen := make(map[glyph.ID]bool)
	add := func(gid glyph.ID) {
		if seen[gid] {
			return
		}
		seen[gid] = true
		sel.Glyphs = append(sel.Glyphs, gid)
	}

	switch mode {
	case ModePreview:
		for _, r := range previewString {
			gid, ok := cm.Lookup(r)
			if !ok {
				sel.Missing = append(sel.Missing, r)
				continue
			}
			add(gid)
		}
	case ModeDownload:
		for _, e := range cm.All() {
			if r, ok := cm.Rune(e.GID); !ok || r != e.Rune {
				continue
			}
			if fontfilter.InRanges(ranges, e.Rune) {
				add(e.GID)
			}
		}
	default:
		panic("unexpected selection mode")
	}

	return sel
}
