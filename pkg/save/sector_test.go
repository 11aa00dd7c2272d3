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

package save_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/gen3save/pkg/save"
	"github.com/xelalexv/gen3save/pkg/save/savetest"
)

func TestReadSectorAt(t *testing.T) {

	img := make([]byte, 3*save.SectorSize)
	data := bytes.Repeat([]byte{1, 2, 3, 4}, 10)
	savetest.WriteSector(img, 2, 7, data, 42)

	s, err := save.ReadSectorAt(bytes.NewReader(img), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Index)
	assert.Equal(t, uint16(7), s.ID)
	assert.Equal(t, save.Checksum(data), s.Checksum)
	assert.Equal(t, uint32(savetest.Security), s.Security)
	assert.Equal(t, uint32(42), s.Counter)
	assert.Len(t, s.Payload(), save.SectorDataSize)
	assert.Equal(t, data, s.Payload()[:len(data)])

	valid, err := s.Validate(len(data))
	require.NoError(t, err)
	assert.Equal(t, data, valid)
}

func TestReadSectorAt_Truncated(t *testing.T) {

	tests := []struct {
		name string
		size int
		op   string
	}{
		{"missing", save.SectorSize, "failed to read sector data"},
		{"short payload", 2*save.SectorSize - 100, "failed to read sector data"},
		{"short footer", 2*save.SectorSize - 4, "failed to read sector footer"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := save.ReadSectorAt(bytes.NewReader(make([]byte, tc.size)), 1)
			var ioErr *save.IOError
			require.ErrorAs(t, err, &ioErr)
			assert.Equal(t, tc.op, ioErr.Op)
			assert.True(t, errors.Is(err, io.EOF) ||
				errors.Is(err, io.ErrUnexpectedEOF))
		})
	}
}

func TestSector_ValidateMismatch(t *testing.T) {

	img := make([]byte, save.SectorSize)
	savetest.WriteSector(img, 0, 0, []byte{1, 0, 0, 0}, 1)
	savetest.Flip(img, 0, 0)

	s, err := save.ReadSectorAt(bytes.NewReader(img), 0)
	require.NoError(t, err)

	_, err = s.Validate(4)
	var corrupt *save.CorruptDataError
	require.ErrorAs(t, err, &corrupt)
	assert.Contains(t, err.Error(), "expected 0x00FE, got 0x0001")
}

func TestSector_Emit(t *testing.T) {
	img := make([]byte, save.SectorSize)
	savetest.WriteSector(img, 0, 3, []byte("ABCD"), 9)
	s, err := save.ReadSectorAt(bytes.NewReader(img), 0)
	require.NoError(t, err)

	var sb strings.Builder
	s.Emit(&sb)
	assert.Contains(t, sb.String(), "section: 3")
	assert.Contains(t, sb.String(), "counter: 9")
	assert.Contains(t, sb.String(), "|ABCD")
}
