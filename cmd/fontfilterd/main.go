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

// Fontfilterd serves the font filter API over HTTP.
package main

import (
	"flag"
	"strings"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontfilter"
	"seehuhn.de/go/fontfilter/server"
)

func main() {
	cfg := fontfilter.DefaultConfig()

	addr := flag.String("addr", cfg.Addr, "address to listen on")
	origins := flag.String("origins", strings.Join(cfg.Origins, ","),
		"comma-separated list of allowed CORS origins")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg.Addr = *addr
	cfg.Origins = strings.Split(*origins, ",")
	cfg.Debug = *debug
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	srv := server.New(cfg)
	if err := srv.ListenAndServe(); err != nil {
		logrus.Fatal(err)
	}
}
