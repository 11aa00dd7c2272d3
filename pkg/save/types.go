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

// physical layout of the save memory
const (
	SectorSize     = 0x1000
	SectorDataSize = 0xFF4
	FooterSize     = SectorSize - SectorDataSize

	SlotSectors = 14
	SlotCount   = 2

	// SectionCount is the number of logical sections in one slot; every
	// section occupies exactly one sector of the slot
	SectionCount = SlotSectors
)

// logical sections
const (
	SectionProfile = 0
	SectionState   = 1
	// PC storage spans sections 5 through 13
	SectionStorageFirst = 5
	SectionStorageLast  = 13
)

// declared sizes of the logical sections, i.e. the number of payload bytes
// used by each section and covered by its checksum
var sectionSizes = [SectionCount]int{
	0xF24, // profile
	0xFF4, // state
	0xFF0,
	0xFF0,
	0xD98,
	0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, // storage
	0x7D0,
}

// SectionSize returns the declared size of a logical section, or -1 if the
// id is unknown.
func SectionSize(id int) int {
	if id < 0 || id >= SectionCount {
		return -1
	}
	return sectionSizes[id]
}
