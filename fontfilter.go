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

// Package fontfilter implements the request pipeline of a font filter
// service: an uploaded font is reduced to the glyphs needed for the
// request, the reduced font is handed to one of the visual filters, and
// the results are serialized back to the caller.
package fontfilter

// A Range is an inclusive range of Unicode code points.
type Range struct {
	Low, High rune
}

// Contains reports whether r lies inside the range.
func (rr Range) Contains(r rune) bool {
	return r >= rr.Low && r <= rr.High
}

// DefaultDownloadRanges is the fixed code point policy for download
// requests: printable ASCII.  Callers which need output parity with the
// service must use the same ranges.
var DefaultDownloadRanges = []Range{
	{Low: 32, High: 126},
}

// InRanges reports whether r is contained in any of the given ranges.
func InRanges(ranges []Range, r rune) bool {
	for _, rr := range ranges {
		if rr.Contains(r) {
			return true
		}
	}
	return false
}

// MaxPreviewLen is the maximum number of characters accepted in a
// preview string.
const MaxPreviewLen = 30

// Config is the process-wide configuration.  It is constructed once at
// startup and never mutated afterwards.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string

	// Origins is the CORS allow-list.  Requests from origins not in the
	// list fall back to the wildcard origin.
	Origins []string

	// Debug enables verbose logging and verbose HTTP error bodies.
	// It has no effect on pipeline semantics.
	Debug bool

	// DownloadRanges restricts glyph selection for download requests.
	DownloadRanges []Range
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Addr:           "localhost:8000",
		Origins:        []string{"http://localhost:3000"},
		DownloadRanges: DefaultDownloadRanges,
	}
}
