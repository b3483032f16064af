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

// Package charmap provides a bidirectional view of a font's best Unicode
// character map.
package charmap

import (
	"sort"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// An Entry is one (code point, glyph) pair of the character map.
type Entry struct {
	Rune rune
	GID  glyph.ID
}

// A Map is a read-only bidirectional character map.  The forward
// direction maps code points to glyphs, the reverse direction is the
// plain inversion: if several code points map to the same glyph, the one
// encountered last while walking the code range in ascending order wins.
type Map struct {
	forward map[rune]glyph.ID
	reverse map[glyph.ID]rune
	entries []Entry
}

// New builds a Map from the best cmap subtable of a font.  The mapped
// code points are visited once, in ascending order, so the result is
// deterministic for a given font.  Map-backed subtable formats are
// iterated directly; only other formats fall back to scanning the code
// range, which for a format 12 subtable covering astral planes could
// mean millions of lookups.
func New(sub cmap.Subtable) *Map {
	m := &Map{
		forward: make(map[rune]glyph.ID),
		reverse: make(map[glyph.ID]rune),
	}
	switch s := sub.(type) {
	case cmap.Format4:
		keys := maps.Keys(s)
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, c := range keys {
			m.add(rune(c), s[c])
		}
	case cmap.Format12:
		keys := maps.Keys(s)
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, c := range keys {
			m.add(rune(c), s[c])
		}
	default:
		low, high := sub.CodeRange()
		for r := low; r <= high; r++ {
			m.add(r, sub.Lookup(r))
		}
	}
	return m
}

func (m *Map) add(r rune, gid glyph.ID) {
	if gid == 0 {
		return
	}
	m.forward[r] = gid
	m.reverse[gid] = r
	m.entries = append(m.entries, Entry{Rune: r, GID: gid})
}

// Lookup maps a code point to its glyph.
func (m *Map) Lookup(r rune) (glyph.ID, bool) {
	gid, ok := m.forward[r]
	return gid, ok
}

// Rune maps a glyph back to a code point.  Glyphs reached only through
// component closure, and glyphs not covered by the cmap, have no code
// point.
func (m *Map) Rune(gid glyph.ID) (rune, bool) {
	r, ok := m.reverse[gid]
	return r, ok
}

// All returns every mapped (code point, glyph) pair in ascending code
// point order.  The returned slice must not be modified.
func (m *Map) All() []Entry {
	return m.entries
}

// Len returns the number of mapped code points.
func (m *Map) Len() int {
	return len(m.forward)
}
