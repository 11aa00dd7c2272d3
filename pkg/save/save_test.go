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
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xelalexv/gen3save/pkg/save"
	"github.com/xelalexv/gen3save/pkg/save/savetest"
)

func TestPlayTime(t *testing.T) {
	assert.Equal(t, 3723*time.Second, save.PlayTime(1, 2, 3))
	assert.Equal(t, 65535*time.Hour+59*time.Minute+59*time.Second,
		save.PlayTime(65535, 59, 59))
}

func TestStatusTable(t *testing.T) {

	seen := make([]byte, save.PokedexBytes)
	caught := make([]byte, save.PokedexBytes)
	savetest.SetFlags(seen, 3, 17, 999)
	savetest.SetFlags(caught, 17, 42)

	// bit 3 of byte 0 counted from the most significant bit
	assert.Equal(t, byte(0x10), seen[0])

	st := save.NewStatusTable(seen, caught)
	assert.Equal(t, []uint16{3, 17, 999}, st.Seen())
	assert.Equal(t, []uint16{17, 42}, st.Caught())

	assert.Equal(t, save.Seen, st.Status(3))
	assert.Equal(t, save.Caught, st.Status(17))
	assert.Equal(t, save.Caught, st.Status(42))
	assert.Equal(t, save.Unseen, st.Status(4))
	assert.Equal(t, save.Unseen, st.Status(1000))
	assert.True(t, st.IsSeen(999))
	assert.False(t, st.IsCaught(999))
	assert.Equal(t, 4, st.Len())
	assert.Equal(t, "caught", save.Caught.String())
}

func TestStatusTable_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gen := rapid.SliceOfNDistinct(rapid.Uint16Range(0, 999), 0, 50,
			func(v uint16) uint16 { return v })
		seenIDs := gen.Draw(t, "seen")
		caughtIDs := gen.Draw(t, "caught")

		seen := make([]byte, save.PokedexBytes)
		caught := make([]byte, save.PokedexBytes)
		savetest.SetFlags(seen, seenIDs...)
		savetest.SetFlags(caught, caughtIDs...)
		st := save.NewStatusTable(seen, caught)

		assert.ElementsMatch(t, seenIDs, st.Seen())
		assert.ElementsMatch(t, caughtIDs, st.Caught())
	})
}

func TestTrainerID(t *testing.T) {
	id := save.TrainerID{0x01, 0x00, 0xFF, 0xFF}
	assert.Equal(t, uint16(1), id.Public())
	assert.Equal(t, uint16(0xFFFF), id.Secret())
	assert.Equal(t, "00001", id.String())
}

func TestGender_MarshalText(t *testing.T) {
	txt, err := save.Female.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "female", string(txt))
	assert.Equal(t, "male", save.Male.String())

	var g save.Gender
	require.NoError(t, g.UnmarshalText([]byte("female")))
	assert.Equal(t, save.Female, g)
	assert.Error(t, g.UnmarshalText([]byte("other")))
}

func partyRecord(species uint16, level byte) []byte {
	rec := make([]byte, 100)
	binary.LittleEndian.PutUint16(rec[32:], species)
	rec[84] = level
	return rec
}

func TestDecode_Party(t *testing.T) {

	slot := newSlot("Red", 1, 0)
	slot.State.PartyCount = 2
	slot.State.Party = [][]byte{partyRecord(25, 5), partyRecord(1, 7)}

	s, _, _, err := decode(t, savetest.Build(slot, nil))
	require.NoError(t, err)
	require.Len(t, s.Party, 2)
	assert.Equal(t, uint16(25), s.Party[0].Species)
	assert.Equal(t, uint8(5), s.Party[0].Level)
	assert.Equal(t, uint16(1), s.Party[1].Species)
	assert.True(t, s.Party[1].InParty)
}

func TestDecode_InvalidPartyCount(t *testing.T) {

	slot := newSlot("Red", 1, 0)
	slot.State.PartyCount = 7
	img := savetest.Build(slot, nil)[:save.SlotSectors*save.SectorSize]

	_, _, _, err := decode(t, img)
	var invalid *save.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 7, invalid.Value)
}

func TestDecode_Storage(t *testing.T) {

	slot := newSlot("Red", 1, 6)
	slot.CurrentBox = 3
	slot.Boxes = map[int][]byte{
		0:                     partyRecord(151, 0)[:80],
		2*save.BoxSlots + 29:  partyRecord(150, 0)[:80],
		13*save.BoxSlots + 29: partyRecord(386, 0)[:80],
	}
	img := savetest.Build(slot, nil)

	s, _, _, err := decode(t, img)
	require.NoError(t, err)
	assert.Nil(t, s.Storage)

	s, _, _, err = decode(t, img, save.WithStorage())
	require.NoError(t, err)
	require.NotNil(t, s.Storage)

	st := s.Storage
	assert.Equal(t, 3, st.CurrentBox)
	assert.Equal(t, 3, st.Count())
	require.Len(t, st.Boxes[0].Entries, 1)
	assert.Equal(t, 0, st.Boxes[0].Entries[0].Slot)
	assert.Equal(t, uint16(151), st.Boxes[0].Entries[0].Species)
	require.Len(t, st.Boxes[2].Entries, 1)
	assert.Equal(t, 29, st.Boxes[2].Entries[0].Slot)
	require.Len(t, st.Boxes[13].Entries, 1)
	assert.Equal(t, uint16(386), st.Boxes[13].Entries[0].Species)
	assert.False(t, st.Boxes[13].Entries[0].InParty)
}

func TestDecode_StorageCorrupt(t *testing.T) {

	slot := newSlot("Red", 1, 0)
	img := savetest.Build(slot, nil)[:save.SlotSectors*save.SectorSize]
	savetest.Flip(img, savetest.PhysicalIndex(0, 0, save.SectionStorageLast), 0)

	s, _, _, err := decode(t, img)
	require.NoError(t, err)
	assert.Equal(t, "Red", s.PlayerName)

	_, _, _, err = decode(t, img, save.WithStorage())
	var corrupt *save.CorruptDataError
	assert.ErrorAs(t, err, &corrupt)
}
