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

// Package savetest builds synthetic save images for tests. Images have the
// layout of a 128KiB flash save: two slots of 14 sectors each, followed by
// unused sectors. Everything not explicitly set is left zero, sectors of a
// missing slot and unused sectors are left in erased state (0xFF).
package savetest

import (
	"encoding/binary"
	"fmt"

	"github.com/xelalexv/gen3save/pkg/charset"
	"github.com/xelalexv/gen3save/pkg/save"
)

//
const (
	ImageSectors = 32
	ImageSize    = ImageSectors * save.SectorSize
	Security     = 0x08012025
)

//
type Profile struct {
	Name      string
	Gender    byte
	TrainerID [4]byte
	Hours     uint16
	Minutes   uint8
	Seconds   uint8
}

//
type State struct {
	Money      uint32
	Seen       []uint16
	Caught     []uint16
	PartyCount uint32
	// raw party records, at most 6 of 100 bytes each
	Party [][]byte
}

//
type Slot struct {
	Counter uint32
	// physical position of section 0 within the slot
	Rotation int
	Profile  Profile
	State    State
	// raw box records of 80 bytes, keyed by box*30 + slot
	Boxes      map[int][]byte
	CurrentBox uint32
}

// PhysicalIndex returns the index of the physical sector holding section id,
// for a slot with the given rotation.
func PhysicalIndex(slot, rotation, id int) int {
	return slot*save.SlotSectors + (rotation+id)%save.SlotSectors
}

// Build builds a save image. A nil slot is left in erased state. Build panics
// on data that cannot be encoded.
func Build(first, second *Slot) []byte {

	img := make([]byte, ImageSize)
	for ix := range img {
		img[ix] = 0xFF
	}

	for slot, s := range []*Slot{first, second} {
		if s == nil {
			continue
		}
		for id, data := range s.sections() {
			ix := PhysicalIndex(slot, s.Rotation, id)
			WriteSector(img, ix, uint16(id), data, s.Counter)
		}
	}

	return img
}

// WriteSector writes a sector with a valid checksum into img at physical
// index ix. data is the declared content of the section and is zero padded
// to the payload size.
func WriteSector(img []byte, ix int, id uint16, data []byte, counter uint32) {

	sector := img[ix*save.SectorSize : (ix+1)*save.SectorSize]
	for i := range sector[:save.SectorDataSize] {
		sector[i] = 0
	}
	copy(sector, data)

	footer := sector[save.SectorDataSize:]
	binary.LittleEndian.PutUint16(footer[0:], id)
	binary.LittleEndian.PutUint16(footer[2:], save.Checksum(data))
	binary.LittleEndian.PutUint32(footer[4:], Security)
	binary.LittleEndian.PutUint32(footer[8:], counter)
}

// Flip inverts one byte at offset within the payload of physical sector ix,
// leaving its checksum stale.
func Flip(img []byte, ix, offset int) {
	img[ix*save.SectorSize+offset] ^= 0xFF
}

//
func (s *Slot) sections() [save.SectionCount][]byte {

	var ret [save.SectionCount][]byte
	for id := range ret {
		ret[id] = make([]byte, save.SectionSize(id))
	}

	s.profile(ret[save.SectionProfile])
	s.state(ret[save.SectionState])

	storage := s.storage()
	for id := save.SectionStorageFirst; id <= save.SectionStorageLast; id++ {
		storage = storage[copy(ret[id], storage):]
	}

	return ret
}

//
func (s *Slot) profile(data []byte) {

	name, err := charset.Encode(s.Profile.Name)
	if err != nil {
		panic(err)
	}
	if len(name) > save.PlayerNameLength+1 {
		panic(fmt.Sprintf("player name too long: %s", s.Profile.Name))
	}

	copy(data[0x00:], name)
	data[0x08] = s.Profile.Gender
	copy(data[0x0A:], s.Profile.TrainerID[:])
	binary.LittleEndian.PutUint16(data[0x0E:], s.Profile.Hours)
	data[0x10] = s.Profile.Minutes
	data[0x11] = s.Profile.Seconds
}

//
func (s *Slot) state(data []byte) {

	binary.LittleEndian.PutUint32(data[0x0034:], s.State.PartyCount)
	for ix, p := range s.State.Party {
		copy(data[0x0038+ix*100:0x0038+(ix+1)*100], p)
	}

	binary.LittleEndian.PutUint32(data[0x0290:], s.State.Money)
	SetFlags(data[0x0310:0x0310+save.PokedexBytes], s.State.Seen...)
	SetFlags(data[0x038D:0x038D+save.PokedexBytes], s.State.Caught...)
}

//
func (s *Slot) storage() []byte {
	ret := make([]byte, 4+save.BoxCount*save.BoxSlots*80)
	binary.LittleEndian.PutUint32(ret, s.CurrentBox)
	for pos, rec := range s.Boxes {
		copy(ret[4+pos*80:4+(pos+1)*80], rec)
	}
	return ret
}

// SetFlags sets the bits for ids in a pokedex bitset, most significant bit
// first.
func SetFlags(flags []byte, ids ...uint16) {
	for _, id := range ids {
		flags[id/8] |= 1 << (7 - id%8)
	}
}
