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
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/gen3save/pkg/archive"
	"github.com/xelalexv/gen3save/pkg/save"
	"github.com/xelalexv/gen3save/pkg/save/savetest"
)

//
func newSearchServer(t *testing.T, players ...string) *httptest.Server {

	tmp := t.TempDir()
	repo := filepath.Join(tmp, "repo")
	require.NoError(t, os.MkdirAll(repo, 0755))

	for ix, p := range players {
		img := savetest.Build(&savetest.Slot{
			Counter: 1,
			Profile: savetest.Profile{Name: p, Hours: 1},
			State: savetest.State{
				Money:  uint32(100 * (ix + 1)),
				Seen:   []uint16{1, 4},
				Caught: []uint16{4},
			},
		}, nil)[:save.SlotSectors*save.SectorSize]
		require.NoError(t, os.WriteFile(
			filepath.Join(repo, fmt.Sprintf("%s%d.sav", p, ix)), img, 0644))
	}

	ix, err := archive.NewIndex(filepath.Join(tmp, "index"), repo)
	require.NoError(t, err)
	require.NoError(t, ix.Start())
	t.Cleanup(ix.Stop)

	a := NewAPIServer(":0", repo, ix, testTables(t)).(*api)
	srv := httptest.NewServer(a.router())
	t.Cleanup(srv.Close)
	return srv
}

//
func TestSearch_Text(t *testing.T) {

	srv := newSearchServer(t, "ROXANNE", "BRENDAN")

	status, body := call(t, "GET", srv.URL+"/search?term=roxanne", nil, false)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), "ROXANNE0.sav")
	assert.Contains(t, string(body), "money    100")
	assert.Contains(t, string(body), "seen   2  caught   1")
	assert.Contains(t, string(body), "total hits: 1\n")
	assert.NotContains(t, string(body), "BRENDAN")
}

//
func TestSearch_JSONTruncated(t *testing.T) {

	srv := newSearchServer(t, "NORMAN", "NORMAN", "NORMAN")

	status, body := call(t, "GET", srv.URL+"/search?term=norman&items=2",
		nil, true)
	require.Equal(t, http.StatusOK, status, string(body))

	var res archive.SearchResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Len(t, res.Hits, 2)
	assert.Equal(t, uint64(3), res.Total)
	assert.False(t, res.Complete)
	assert.Equal(t, "NORMAN", res.Hits[0].Player)

	status, body = call(t, "GET", srv.URL+"/search?term=norman&items=2",
		nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "total hits: 3, showing first 2\n")
}

//
func TestSearch_BadArgs(t *testing.T) {

	srv := newSearchServer(t, "ROXANNE")

	status, _ := call(t, "GET", srv.URL+"/search", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = call(t, "GET", srv.URL+"/search?term=roxanne&items=x", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = call(t, "GET", srv.URL+"/search?term=roxanne&items=0", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
