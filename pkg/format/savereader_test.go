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

package format_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/xelalexv/gen3save/pkg/format"
)

var payload = bytes.Repeat([]byte{0xAB, 0xCD}, 1024)

func gzipped(t *testing.T, name string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Name = name
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, names ...string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, n := range names {
		f, err := w.Create(n)
		require.NoError(t, err)
		_, err = f.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func xzed(t *testing.T) []byte {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func readAll(t *testing.T, r io.Reader) []byte {
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}

func TestOpenSave(t *testing.T) {

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/saves/ruby.sav", payload, 0644))
	require.NoError(t, afero.WriteFile(fs, "/saves/emerald.sav.gz",
		gzipped(t, "emerald.sav"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/saves/fire.zip",
		zipped(t, "firered.srm", "other.txt"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/saves/leaf.fla.xz", xzed(t), 0644))

	tests := []struct {
		path       string
		name       string
		typ        string
		compressor string
	}{
		{"/saves/ruby.sav", "ruby", "sav", ""},
		{"/saves/emerald.sav.gz", "emerald", "sav", "gzip"},
		{"/saves/fire.zip", "firered", "srm", "zip"},
		{"/saves/leaf.fla.xz", "leaf", "fla", "xz"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r, err := format.OpenSave(fs, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.name, r.Name())
			assert.Equal(t, tc.typ, r.Type())
			assert.Equal(t, tc.compressor, r.Compressor())
			assert.Equal(t, int64(len(payload)), r.Size())
			assert.Equal(t, payload, readAll(t, r))

			_, err = r.Seek(2, io.SeekStart)
			require.NoError(t, err)
			assert.Equal(t, payload[2:], readAll(t, r))
		})
	}
}

func TestOpenSave_Missing(t *testing.T) {
	_, err := format.OpenSave(afero.NewMemMapFs(), "/nope.sav")
	assert.Error(t, err)
}

func TestNewSaveReader_Errors(t *testing.T) {

	_, err := format.NewSaveReader(bytes.NewReader(payload), "rar")
	assert.EqualError(t, err, "unsupported compressor: rar")

	_, err = format.NewSaveReader(bytes.NewReader(payload), "gz")
	assert.Error(t, err)

	_, err = format.NewSaveReader(bytes.NewReader(zipped(t)), "zip")
	assert.EqualError(t, err, "empty zip archive")

	_, err = format.NewSaveReader(
		bytes.NewReader(make([]byte, format.MaxSaveSize+1)), "")
	assert.Error(t, err)
}

func TestSplitNameTypeCompressor(t *testing.T) {

	tests := []struct {
		file, name, typ, compressor string
	}{
		{"/a/b/emerald.sav", "emerald", "sav", ""},
		{"emerald.SAV.GZ", "emerald", "sav", "gz"},
		{"pokemon.firered.sav.7z", "pokemon.firered", "sav", "7z"},
		{"notes.txt", "notes.txt", "", ""},
		{"My.Game.sav", "My.Game", "sav", ""},
		{"Route.Notes.TXT", "Route.Notes.TXT", "", ""},
		{"plain", "plain", "", ""},
	}

	for _, tc := range tests {
		name, typ, comp := format.SplitNameTypeCompressor(tc.file)
		assert.Equal(t, tc.name, name, tc.file)
		assert.Equal(t, tc.typ, typ, tc.file)
		assert.Equal(t, tc.compressor, comp, tc.file)
	}

	assert.True(t, format.IsSaveFile("x.srm.zip"))
	assert.False(t, format.IsSaveFile("x.zip"))
}
