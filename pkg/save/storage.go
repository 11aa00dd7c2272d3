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
	"encoding/binary"

	"github.com/xelalexv/gen3save/pkg/pokemon"
)

// PC storage layout
const (
	BoxCount = 14
	BoxSlots = 30
	// boxes follow the 4 byte current box index
	boxesOffset = 4
)

// Storage is the content of the PC boxes.
type Storage struct {
	CurrentBox int
	Boxes      [BoxCount]Box
}

// Box holds the occupied slots of one PC box.
type Box struct {
	Entries []BoxEntry
}

// BoxEntry is a creature stored in a box slot.
type BoxEntry struct {
	Slot int
	*pokemon.Pokemon
}

// Count returns the total number of stored creatures.
func (s *Storage) Count() int {
	ret := 0
	for _, b := range s.Boxes {
		ret += len(b.Entries)
	}
	return ret
}

// storageSections lists the sections holding PC storage, in logical order
func storageSections() []int {
	ret := make([]int, 0, SectionStorageLast-SectionStorageFirst+1)
	for id := SectionStorageFirst; id <= SectionStorageLast; id++ {
		ret = append(ret, id)
	}
	return ret
}

//
func decodeStorage(data []byte) (*Storage, error) {

	need := boxesOffset + BoxCount*BoxSlots*pokemon.BoxedSize
	if len(data) < need {
		return nil, corrupt("storage too short, want %d bytes, got %d",
			need, len(data))
	}

	current := binary.LittleEndian.Uint32(data)
	if current >= BoxCount {
		return nil, invalidValue("current box", int(current), "value below 14")
	}

	s := &Storage{CurrentBox: int(current)}
	pos := boxesOffset

	for box := range s.Boxes {
		for slot := 0; slot < BoxSlots; slot++ {
			p, err := pokemon.Decode(data[pos : pos+pokemon.BoxedSize])
			if err != nil {
				return nil, &CorruptDataError{Reason: "box record", Err: err}
			}
			if !p.IsEmpty() {
				s.Boxes[box].Entries = append(s.Boxes[box].Entries,
					BoxEntry{Slot: slot, Pokemon: p})
			}
			pos += pokemon.BoxedSize
		}
	}

	return s, nil
}
