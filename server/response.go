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

package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontfilter/filter"
	"seehuhn.de/go/fontfilter/subset"
)

// previewResponse is the JSON body of a preview request.  The warnings
// list and the echoed preview string are always present, even when
// empty.
type previewResponse struct {
	Fonts         []string `json:"fonts"`
	Warnings      []string `json:"warnings"`
	PreviewString string   `json:"preview_string"`
}

// downloadResponse is the JSON body of a download request.
type downloadResponse struct {
	Fonts []string `json:"fonts"`
}

// assembleResponse serializes the filter outputs to base64, appends the
// original upload for the extruder, and computes the missing-character
// warning list.
func assembleResponse(flt filter.Filter, out []filter.Output, original []byte, mode subset.Mode, preview string, missing []rune) (any, error) {
	fonts := make([]string, 0, len(out)+1)
	for _, o := range out {
		data, err := o.Encode()
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, base64.StdEncoding.EncodeToString(data))
	}
	if flt.Identifier() == "extruder" {
		fonts = append(fonts, base64.StdEncoding.EncodeToString(original))
	}

	if mode != subset.ModePreview {
		return &downloadResponse{Fonts: fonts}, nil
	}

	resp := &previewResponse{
		Fonts:    fonts,
		Warnings: []string{},
	}
	if len(missing) > 0 {
		chars := make([]string, len(missing))
		for i, r := range missing {
			chars[i] = string(r)
		}
		resp.Warnings = append(resp.Warnings,
			"Your font is missing these characters: "+strings.Join(chars, ", "))
	}

	missingSet := make(map[rune]bool, len(missing))
	for _, r := range missing {
		missingSet[r] = true
	}
	resp.PreviewString = strings.Map(func(r rune) rune {
		if missingSet[r] {
			return -1
		}
		return r
	}, preview)

	return resp, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("writing response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	if s.cfg.Debug {
		logrus.Debugf("request rejected (%d): %s", status, msg)
	}
	s.writeJSON(w, status, map[string]string{"error": msg})
}
