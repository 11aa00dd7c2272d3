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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/xelalexv/gen3save/pkg/archive"
	"github.com/xelalexv/gen3save/pkg/rom"
)

// largest request body accepted for decoding; compressed saves are well below
const maxUploadSize = 1048576

//
type APIServer interface {
	Serve() error
	Stop() error
}

// NewAPIServer creates an API server listening on addr. Save files requested
// by path are looked up in repo, search requests are served from index. Both
// repo and index are optional. tables are used for resolving ids to names, and
// may be nil.
func NewAPIServer(addr, repo string, index *archive.Index,
	tables rom.Lookup) APIServer {

	ret := &api{
		address: addr,
		index:   index,
		tables:  tables,
	}

	if repo != "" {
		ret.fs = afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), repo))
	}

	return ret
}

//
type api struct {
	address string
	server  *http.Server
	fs      afero.Fs
	index   *archive.Index
	tables  rom.Lookup
}

//
func (a *api) Serve() error {

	addr := a.address
	if !strings.Contains(addr, ":") {
		addr = fmt.Sprintf(":%s", addr)
	}

	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Infof("API server listening on %s", addr)
	if err := a.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

//
func (a *api) Stop() error {
	if a.server == nil {
		return nil
	}
	log.Info("API server stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.server.Shutdown(ctx)
}

//
func (a *api) router() http.Handler {

	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/save", a.getSave).Methods("GET")
	router.HandleFunc("/decode", a.decode).Methods("POST")
	router.HandleFunc("/search", a.search).Methods("GET")
	router.HandleFunc("/version", a.version).Methods("GET")

	router.Use(logRequest)
	return router
}

//
func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.WithFields(log.Fields{
			"method": req.Method,
			"uri":    req.RequestURI,
			"remote": req.RemoteAddr,
		}).Debug("API request")
		next.ServeHTTP(w, req)
	})
}

//
func handleError(e error, statusCode int, w http.ResponseWriter) bool {

	if e == nil {
		return false
	}

	log.Errorf("%v", e)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := io.WriteString(w, fmt.Sprintf("%v\n", e)); err != nil {
		log.Errorf("problem sending error response: %v", err)
	}

	return true
}

//
func sendReply(body []byte, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Errorf("problem sending response: %v", err)
	}
}

//
func sendJSONReply(obj interface{}, statusCode int, w http.ResponseWriter) {

	body, err := json.Marshal(obj)
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Errorf("problem sending JSON response: %v", err)
	}
}

//
func getArg(req *http.Request, arg string) string {
	return req.URL.Query().Get(arg)
}

//
func getIntArg(req *http.Request, arg string, def int) (int, error) {
	if v := getArg(req, arg); v != "" {
		ret, err := strconv.Atoi(v)
		if err != nil {
			return def, fmt.Errorf("invalid value for '%s': %v", arg, err)
		}
		return ret, nil
	}
	return def, nil
}

//
func isFlagSet(req *http.Request, flag string) bool {
	if vals, ok := req.URL.Query()[flag]; ok {
		return len(vals) == 0 || vals[0] != "false"
	}
	return false
}

//
func wantsJSON(req *http.Request) bool {
	return isFlagSet(req, "json") ||
		strings.Contains(req.Header.Get("Accept"), "application/json")
}
