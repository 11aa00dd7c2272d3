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
	"net/http"

	"github.com/xelalexv/gen3save/pkg/archive"
)

// search queries the save archive. The term is a query string, the optional
// items argument caps the number of hits.
func (a *api) search(w http.ResponseWriter, req *http.Request) {

	if a.index == nil {
		handleError(fmt.Errorf("no save archive indexed"),
			http.StatusServiceUnavailable, w)
		return
	}

	max, err := getIntArg(req, "items", 100)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	res, err := a.index.Search(getArg(req, "term"), max)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	sendSearchResult(w, req, res)
}

//
func sendSearchResult(w http.ResponseWriter, req *http.Request,
	res *archive.SearchResult) {

	if wantsJSON(req) {
		sendJSONReply(res, http.StatusOK, w)
		return
	}

	var buf bytes.Buffer
	res.Write(&buf)
	sendReply(buf.Bytes(), http.StatusOK, w)
}
