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
	"compress/gzip"
	"encoding/binary"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/gen3save/pkg/rom"
	"github.com/xelalexv/gen3save/pkg/save"
	"github.com/xelalexv/gen3save/pkg/save/savetest"
	"github.com/xelalexv/gen3save/pkg/util"
)

//
func partyRecord(species, item, move uint16, level byte) []byte {
	rec := make([]byte, 100)
	binary.LittleEndian.PutUint16(rec[32:], species)
	binary.LittleEndian.PutUint16(rec[34:], item)
	binary.LittleEndian.PutUint16(rec[44:], move)
	rec[84] = level
	return rec
}

// testImage returns a single slot image, so that decoding it does not involve
// a fallback
func testImage() []byte {
	img := savetest.Build(&savetest.Slot{
		Counter: 3,
		Profile: savetest.Profile{
			Name:      "MAY",
			Gender:    1,
			TrainerID: [4]byte{0x39, 0x30, 0x01, 0x00},
			Hours:     12,
			Minutes:   5,
			Seconds:   9,
		},
		State: savetest.State{
			Money:      4711,
			Seen:       []uint16{1, 4, 7},
			Caught:     []uint16{4},
			PartyCount: 1,
			Party:      [][]byte{partyRecord(280, 13, 33, 9)},
		},
	}, nil)
	return img[:save.SlotSectors*save.SectorSize]
}

//
func testTables(t *testing.T) *rom.Tables {
	tables := rom.NewTables()
	require.NoError(t, tables.Add(rom.Species, &rom.Record{ID: 280, Name: "TORCHIC"}))
	require.NoError(t, tables.Add(rom.Moves, &rom.Record{ID: 33, Name: "TACKLE"}))
	return tables
}

//
func newTestServer(t *testing.T, fs afero.Fs) *httptest.Server {
	a := NewAPIServer(":0", "", nil, testTables(t)).(*api)
	a.fs = fs
	srv := httptest.NewServer(a.router())
	t.Cleanup(srv.Close)
	return srv
}

//
func call(t *testing.T, method, url string, body []byte,
	json bool) (int, []byte) {

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	if json {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	ret, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, ret
}

//
func TestDecode_Text(t *testing.T) {

	srv := newTestServer(t, nil)
	status, body := call(t, "POST", srv.URL+"/decode", testImage(), false)

	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), "MAY (female)")
	assert.Contains(t, string(body), "trainer id: 12345 (secret 00001)")
	assert.Contains(t, string(body), "12:05:09")
	assert.Contains(t, string(body), "TORCHIC")
	assert.Contains(t, string(body), "[TACKLE]")
	// item 13 is not in the tables
	assert.Contains(t, string(body), "@#13")
	assert.Contains(t, string(body), "no items entry for id 13")
}

//
func TestDecode_JSONCompressed(t *testing.T) {

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(testImage())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	srv := newTestServer(t, nil)
	status, body := call(t, "POST", srv.URL+"/decode?compressor=gz",
		buf.Bytes(), true)
	require.Equal(t, http.StatusOK, status, string(body))

	var rep map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.Equal(t, "MAY", rep["player"])
	assert.Equal(t, "female", rep["gender"])
	assert.Equal(t, "12345", rep["trainerId"])
	assert.Equal(t, float64(4711), rep["money"])
	assert.Equal(t, "12:05:09", rep["playTime"])
	assert.Len(t, rep["seen"], 3)
	assert.Len(t, rep["caught"], 1)

	party := rep["party"].([]interface{})
	require.Len(t, party, 1)
	p := party[0].(map[string]interface{})
	assert.Equal(t, "TORCHIC", p["speciesName"])
	assert.Equal(t, float64(9), p["level"])
	assert.Equal(t, float64(280), p["species"])

	assert.Equal(t,
		[]interface{}{"no items entry for id 13"}, rep["warnings"])
}

//
func TestDecode_Fallback(t *testing.T) {

	img := savetest.Build(
		&savetest.Slot{Counter: 5, Profile: savetest.Profile{Name: "NEW"}},
		&savetest.Slot{Counter: 4, Profile: savetest.Profile{Name: "OLD"}})
	savetest.Flip(img, savetest.PhysicalIndex(0, 0, save.SectionState), 0x290)

	srv := newTestServer(t, nil)
	status, body := call(t, "POST", srv.URL+"/decode?json", img, false)
	require.Equal(t, http.StatusOK, status, string(body))

	var rep Report
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.Equal(t, "OLD", rep.Player)
	assert.Equal(t, 2, rep.Slot)
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "fell back")
}

//
func TestDecode_Errors(t *testing.T) {

	srv := newTestServer(t, nil)

	status, body := call(t, "POST", srv.URL+"/decode", []byte("garbage"), false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(body), "save corrupted")

	status, _ = call(t, "POST", srv.URL+"/decode?compressor=rar", testImage(), false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = call(t, "GET", srv.URL+"/decode", nil, false)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

//
func TestGetSave(t *testing.T) {

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ruby/ruby.sav", testImage(), 0644))

	srv := newTestServer(t, fs)

	status, body := call(t, "GET", srv.URL+"/save?file=ruby/ruby.sav", nil, true)
	require.Equal(t, http.StatusOK, status, string(body))
	var rep Report
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.Equal(t, "MAY", rep.Player)
	assert.Nil(t, rep.Storage)

	status, body = call(t, "GET",
		srv.URL+"/save?file=ruby/ruby.sav&storage", nil, true)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &rep))
	require.NotNil(t, rep.Storage)
	assert.Equal(t, 1, rep.Storage.CurrentBox)

	status, _ = call(t, "GET", srv.URL+"/save?file=missing.sav", nil, false)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, "GET",
		srv.URL+"/save?file=../../ruby/ruby.sav", nil, false)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, "GET", srv.URL+"/save", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

//
func TestGetSave_NoRepo(t *testing.T) {
	srv := newTestServer(t, nil)
	status, _ := call(t, "GET", srv.URL+"/save?file=ruby.sav", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

//
func TestSearch_NoIndex(t *testing.T) {
	srv := newTestServer(t, nil)
	status, _ := call(t, "GET", srv.URL+"/search?term=may", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

//
func TestVersion(t *testing.T) {

	srv := newTestServer(t, nil)

	status, body := call(t, "GET", srv.URL+"/version", nil, true)
	require.Equal(t, http.StatusOK, status)
	var ver Version
	require.NoError(t, json.Unmarshal(body, &ver))
	assert.Equal(t, util.Gen3SaveVersion, ver.Server)

	status, body = call(t, "GET", srv.URL+"/version", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "server:")
}
