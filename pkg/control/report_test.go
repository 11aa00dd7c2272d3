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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/gen3save/pkg/rom"
	"github.com/xelalexv/gen3save/pkg/save"
	"github.com/xelalexv/gen3save/pkg/save/savetest"
)

// pokedex ids in the report are the ids stored in the save, national numbers
// from the tables must not replace them
func TestNewReport_PokedexIDs(t *testing.T) {

	img := savetest.Build(&savetest.Slot{
		Counter: 1,
		Profile: savetest.Profile{Name: "MAY"},
		State: savetest.State{
			Seen:   []uint16{25, 277},
			Caught: []uint16{277},
		},
	}, nil)[:save.SlotSectors*save.SectorSize]

	tables := rom.NewTables()
	require.NoError(t, tables.Add(rom.Species,
		&rom.Record{ID: 277, Name: "TREECKO", National: 252}))

	diag := &save.Diagnostics{}
	s, err := save.NewDecoder().Decode(bytes.NewReader(img), diag)
	require.NoError(t, err)

	rep := NewReport(s, rom.NewNames(tables, MissReporter(diag)), diag)
	assert.Equal(t, []uint16{25, 277}, rep.Seen)
	assert.Equal(t, []uint16{277}, rep.Caught)

	var buf bytes.Buffer
	rep.Write(&buf)
	assert.Contains(t, buf.String(), "2 seen, 1 caught")
}
