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

package save

import (
	"io"
)

// Assembler locates the logical sections of one slot. The sectors of a slot
// are not stored in logical order: the game rotates the physical position of
// section 0 with every save, and section n follows n sectors after it,
// wrapping around at the end of the slot.
type Assembler struct {
	r          io.ReadSeeker
	slot       int
	head       *Sector
	headOffset int
}

// NewAssembler creates an assembler for slot, given the first physical sector
// of that slot. The id stored in the first sector determines where the head
// sector, i.e. the one holding section 0, is located.
func NewAssembler(r io.ReadSeeker, slot int, first *Sector) (*Assembler, error) {

	if slot < 0 || slot >= SlotCount {
		panic("invalid slot")
	}

	if first.ID >= SectionCount {
		return nil, invalidValue("section id", int(first.ID),
			"value below 14")
	}

	a := &Assembler{
		r:          r,
		slot:       slot,
		headOffset: (SlotSectors - int(first.ID)) % SlotSectors,
	}

	if a.headOffset == 0 {
		a.head = first

	} else {
		var err error
		if a.head, err = ReadSectorAt(r, a.PhysicalIndex(0)); err != nil {
			return nil, err
		}
		if a.head.ID != 0 {
			return nil, corrupt(
				"expected section 0 in sector %d, got section %d",
				a.head.Index, a.head.ID)
		}
	}

	return a, nil
}

// Slot returns the slot this assembler operates on.
func (a *Assembler) Slot() int {
	return a.slot
}

// Head returns the sector holding section 0.
func (a *Assembler) Head() *Sector {
	return a.head
}

// PhysicalIndex returns the index of the physical sector holding section id.
func (a *Assembler) PhysicalIndex(id int) int {
	return a.slot*SlotSectors + (a.headOffset+id)%SlotSectors
}

// Sector reads the physical sector holding section id, and makes sure it
// actually does.
func (a *Assembler) Sector(id int) (*Sector, error) {

	if id == 0 {
		return a.head, nil
	}

	s, err := ReadSectorAt(a.r, a.PhysicalIndex(id))
	if err != nil {
		return nil, err
	}

	if int(s.ID) != id {
		return nil, corrupt("expected section %d in sector %d, got section %d",
			id, s.Index, s.ID)
	}

	return s, nil
}

// Section returns the validated bytes of section id. Only the declared size of
// the section is returned, trailing padding of the sector is dropped.
func (a *Assembler) Section(id int) ([]byte, error) {

	size := SectionSize(id)
	if size < 0 {
		return nil, invalidValue("section id", id, "value below 14")
	}

	s, err := a.Sector(id)
	if err != nil {
		return nil, err
	}

	return s.Validate(size)
}

// Sections validates the given sections and returns their bytes, concatenated
// in the order of ids.
func (a *Assembler) Sections(ids ...int) ([]byte, error) {

	size := 0
	for _, id := range ids {
		size += SectionSize(id)
	}

	ret := make([]byte, 0, size)
	for _, id := range ids {
		data, err := a.Section(id)
		if err != nil {
			return nil, err
		}
		ret = append(ret, data...)
	}

	return ret, nil
}
