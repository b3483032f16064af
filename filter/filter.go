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

// Package filter applies one of the visual font filters to an assembled
// minimal font.  The set of filters is closed: rasterizer, rotorizer and
// extruder.
package filter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontfilter"
	"seehuhn.de/go/fontfilter/charmap"
	"seehuhn.de/go/fontfilter/kerning"
	"seehuhn.de/go/fontfilter/subset"
)

// ErrUnknownFilter is returned for filter identifiers outside the closed
// set.  The server maps it to a not-found response.
var ErrUnknownFilter = errors.New("fontfilter: unknown filter")

// Params carries the per-filter numeric parameters.  Each filter reads
// exactly one of the fields.
type Params struct {
	Resolution int // rasterizer: cells per em
	Depth      int // rotorizer: rotation depth in font units
	Angle      int // extruder: extrusion direction in degrees
}

// DefaultParams returns the parameter defaults applied when a request
// does not override them.
func DefaultParams() Params {
	return Params{
		Resolution: 30,
		Depth:      200,
		Angle:      330,
	}
}

// An Output is one font produced by a filter.  Renaming goes through
// this interface so that it works uniformly for whatever concrete font
// representation a filter returns.
type Output interface {
	// Rename appends a suffix to the font's identity names.  Outline and
	// metric data are not touched.
	Rename(suffix string)

	// Encode serializes the font into its binary form.
	Encode() ([]byte, error)
}

// A Request bundles everything a filter may need: the assembled minimal
// font, the source it came from, and the request parameters.
type Request struct {
	Source        *fontfilter.Source
	Minimal       *subset.Minimal
	CharMap       *charmap.Map
	Selection     []glyph.ID // closed glyph set, in source glyph IDs
	PreviewString string
	Params        Params
}

// A Filter is one member of the closed filter set.
type Filter interface {
	// Identifier returns the name used in request URLs.
	Identifier() string

	// Suffixes returns the name suffix for each output font, in output
	// order.  Its length is the number of fonts the filter produces.
	Suffixes() []string

	// NeedsWidths reports whether the assembler must copy per-glyph
	// advance widths for this filter.
	NeedsWidths() bool

	// Apply transforms the minimal font.  The minimal font must not be
	// used again afterwards; filters may mutate it.
	Apply(req *Request) ([]Output, error)
}

// Lookup resolves a filter identifier.  It is the fast-reject gate:
// handlers call it before reading the uploaded font.
func Lookup(identifier string) (Filter, error) {
	switch identifier {
	case "rasterizer":
		return rasterizer{}, nil
	case "rotorizer":
		return rotorizer{}, nil
	case "extruder":
		return extruder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, identifier)
	}
}

// Dispatch runs a filter on an assembled minimal font, including the
// extruder's pre-steps, and renames every output with the filter's
// suffix table.
func Dispatch(f Filter, req *Request) ([]Output, error) {
	if _, isExtruder := f.(extruder); isExtruder {
		req.Minimal.ImportIdentity(req.Source, true)
		pairs, err := kerning.Extract(req.Source.Data, req.PreviewString, req.CharMap, req.Selection)
		if err != nil {
			return nil, err
		}
		req.Minimal.MergeKerning(pairs)
	}

	out, err := f.Apply(req)
	if err != nil {
		return nil, fmt.Errorf("fontfilter: filter %q: %w", f.Identifier(), err)
	}

	suffixes := f.Suffixes()
	if len(out) != len(suffixes) {
		return nil, fmt.Errorf("fontfilter: filter %q produced %d fonts, want %d",
			f.Identifier(), len(out), len(suffixes))
	}
	for i, o := range out {
		o.Rename(suffixes[i])
	}
	logrus.Debugf("filter %q produced %d font(s)", f.Identifier(), len(out))
	return out, nil
}

// fontOutput is the Output implementation for filters that produce
// sfnt-backed fonts.
type fontOutput struct {
	font *sfnt.Font
}

// Rename appends the suffix to the family name.  The family name is the
// font's only free-form identity string; the subfamily is derived from
// the style flags when the font is written, and the full name from both.
func (o *fontOutput) Rename(suffix string) {
	if o.font.FamilyName == "" {
		o.font.FamilyName = suffix
		return
	}
	o.font.FamilyName += " " + suffix
}

func (o *fontOutput) Encode() ([]byte, error) {
	buf := &bytes.Buffer{}
	if _, err := o.font.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cloneFont makes a copy of a minimal font whose outlines can be edited
// without affecting the original.  Glyph records are copied, shared
// immutable data (private dict, encoding) is not.
func cloneFont(f *sfnt.Font) (*sfnt.Font, *cff.Outlines) {
	orig := f.Outlines.(*cff.Outlines)
	outlines := &cff.Outlines{
		Glyphs:   make([]*cff.Glyph, len(orig.Glyphs)),
		Private:  orig.Private,
		FDSelect: orig.FDSelect,
		Encoding: orig.Encoding,
	}
	for i, g := range orig.Glyphs {
		g2 := *g
		outlines.Glyphs[i] = &g2
	}
	f2 := f.Clone()
	f2.Outlines = outlines
	return f2, outlines
}

// translated returns a copy of the glyph's pen commands shifted by
// (dx, dy).
func translated(cmds []cff.GlyphOp, dx, dy float64) []cff.GlyphOp {
	res := make([]cff.GlyphOp, 0, len(cmds))
	for _, cmd := range cmds {
		args := make([]float64, len(cmd.Args))
		copy(args, cmd.Args)
		for i := 0; i+1 < len(args); i += 2 {
			args[i] += dx
			args[i+1] += dy
		}
		res = append(res, cff.GlyphOp{Op: cmd.Op, Args: args})
	}
	return res
}
