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
	"fmt"
)

// Checksum computes the 16 bit fold checksum of data: all little-endian 32 bit
// words are summed up with wrap-around, then the upper and lower half of the
// sum are added. The length of data has to be a multiple of 4.
func Checksum(data []byte) uint16 {

	if len(data)%4 != 0 {
		panic(fmt.Sprintf("got data of size non-divisible by 4: %d", len(data)))
	}

	var sum uint32
	for ix := 0; ix < len(data); ix += 4 {
		sum += binary.LittleEndian.Uint32(data[ix:])
	}

	return uint16(sum>>16) + uint16(sum)
}
