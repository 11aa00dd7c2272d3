/*
   Gen3Save - Generation III cartridge save decoder
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of Gen3Save.

   Gen3Save is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   Gen3Save is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with Gen3Save. If not, see <http://www.gnu.org/licenses/>.
*/

package control

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/gen3save/pkg/format"
	"github.com/xelalexv/gen3save/pkg/rom"
	"github.com/xelalexv/gen3save/pkg/save"
)

//
func (a *api) getSave(w http.ResponseWriter, req *http.Request) {

	if a.fs == nil {
		handleError(fmt.Errorf("no save repository configured"),
			http.StatusServiceUnavailable, w)
		return
	}

	file := getArg(req, "file")
	if file == "" {
		handleError(fmt.Errorf("no save file specified"),
			http.StatusUnprocessableEntity, w)
		return
	}

	// cleaning against root keeps the path inside the repo
	r, err := format.OpenSave(a.fs, filepath.Clean("/"+file))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if os.IsNotExist(err) {
			status = http.StatusNotFound
		}
		handleError(err, status, w)
		return
	}

	a.sendSave(w, req, r)
}

//
func (a *api) decode(w http.ResponseWriter, req *http.Request) {

	in := http.MaxBytesReader(w, req.Body, maxUploadSize)
	defer in.Close()

	r, err := format.NewSaveReader(in, getArg(req, "compressor"))
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	a.sendSave(w, req, r)
}

//
func (a *api) sendSave(w http.ResponseWriter, req *http.Request,
	r io.ReadSeeker) {

	opts := []save.Option{save.WithLogger(log.WithField("remote", req.RemoteAddr))}
	if isFlagSet(req, "storage") {
		opts = append(opts, save.WithStorage())
	}

	diag := &save.Diagnostics{}
	s, err := save.NewDecoder(opts...).Decode(r, diag)
	if err != nil {
		handleError(fmt.Errorf("save corrupted: %v", err),
			http.StatusUnprocessableEntity, w)
		return
	}

	rep := NewReport(s, rom.NewNames(a.tables, MissReporter(diag)), diag)

	if wantsJSON(req) {
		sendJSONReply(rep, http.StatusOK, w)
		return
	}

	var buf bytes.Buffer
	rep.Write(&buf)
	sendReply(buf.Bytes(), http.StatusOK, w)
}
