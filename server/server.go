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

// Package server provides the HTTP boundary of the font filter service.
package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontfilter"
	"seehuhn.de/go/fontfilter/charmap"
	"seehuhn.de/go/fontfilter/filter"
	"seehuhn.de/go/fontfilter/subset"
)

// maxUploadSize bounds the multipart form memory for one request.
const maxUploadSize = 32 << 20

// A Server handles filter requests.  It holds only the immutable startup
// configuration; every request runs its own pipeline with no shared
// mutable state.
type Server struct {
	cfg fontfilter.Config
	mux *http.ServeMux
}

// New creates a Server for the given configuration.
func New(cfg fontfilter.Config) *Server {
	if cfg.DownloadRanges == nil {
		cfg.DownloadRanges = fontfilter.DefaultDownloadRanges
	}
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /filters/{filterIdentifier}", s.handlePreview)
	s.mux.HandleFunc("POST /filters/{filterIdentifier}/get", s.handleDownload)
	return s
}

// Handler returns the server's handler chain, including the CORS
// middleware.
func (s *Server) Handler() http.Handler {
	return s.cors(s.mux)
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() error {
	logrus.Infof("listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, subset.ModePreview)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, subset.ModeDownload)
}

// handle runs the full pipeline for one request.  The filter identifier
// is validated first, then the form fields, and only then is the upload
// parsed as a font; errors abort the request as a whole.
func (s *Server) handle(w http.ResponseWriter, r *http.Request, mode subset.Mode) {
	identifier := r.PathValue("filterIdentifier")
	flt, err := filter.Lookup(identifier)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "filter not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	preview := r.FormValue("preview_string")
	if len([]rune(preview)) > fontfilter.MaxPreviewLen {
		s.writeError(w, http.StatusBadRequest, "preview_string too long")
		return
	}
	if mode == subset.ModePreview && preview == "" {
		s.writeError(w, http.StatusBadRequest, "preview_string is required")
		return
	}

	params, err := formParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid filter parameter")
		return
	}

	file, _, err := r.FormFile("font_file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "font_file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "reading font_file failed")
		return
	}

	src, err := fontfilter.ParseSource(data)
	if err != nil {
		logrus.Debugf("font parsing failed: %v", err)
		s.writeError(w, http.StatusBadRequest, "font_file is not a usable font")
		return
	}

	cm := charmap.New(src.CMap)
	sel := subset.Select(mode, cm, preview, s.cfg.DownloadRanges)
	closed := subset.Close(src, sel.Glyphs)

	minimal, err := subset.Assemble(src, cm, closed, subset.Options{
		CopyNames:  mode == subset.ModeDownload,
		CopyWidths: flt.NeedsWidths(),
	})
	if err != nil {
		logrus.Debugf("assembly failed: %v", err)
		s.writeError(w, http.StatusBadRequest, "font_file is not a usable font")
		return
	}

	out, err := filter.Dispatch(flt, &filter.Request{
		Source:        src,
		Minimal:       minimal,
		CharMap:       cm,
		Selection:     closed,
		PreviewString: preview,
		Params:        params,
	})
	if err != nil {
		logrus.Errorf("filter %q failed: %v", identifier, err)
		s.writeError(w, http.StatusInternalServerError, "filter failed")
		return
	}

	resp, err := assembleResponse(flt, out, data, mode, preview, sel.Missing)
	if err != nil {
		logrus.Errorf("response encoding failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "encoding output failed")
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// formParams reads the filter parameters from the form, falling back to
// the documented defaults.
func formParams(r *http.Request) (filter.Params, error) {
	params := filter.DefaultParams()
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"resolution", &params.Resolution},
		{"depth", &params.Depth},
		{"angle", &params.Angle},
	} {
		v := r.FormValue(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, err
		}
		*p.dst = n
	}
	return params, nil
}

// cors applies the allow-list with wildcard fallback and answers
// preflight requests.  This is transport policy only.
func (s *Server) cors(h http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.cfg.Origins))
	for _, o := range s.cfg.Origins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			} else {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
