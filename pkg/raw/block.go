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

package raw

import (
	"encoding/binary"
	"fmt"
)

// Field denotes a field within a block as {offset, length}.
type Field = [2]int

// Block provides named, little-endian access to the fields of a fixed byte
// layout. All fields of the index are checked against the data length when
// the block is created, so accessors never read out of bounds.
type Block struct {
	index map[string]Field
	Data  []byte
}

//
func NewBlock(index map[string]Field, data []byte) (*Block, error) {
	for name, f := range index {
		if f[0] < 0 || f[1] < 0 || f[0]+f[1] > len(data) {
			return nil, fmt.Errorf(
				"field '%s' at %d, length %d exceeds block length %d",
				name, f[0], f[1], len(data))
		}
	}
	return &Block{index: index, Data: data}, nil
}

//
func (b *Block) field(name string) Field {
	f, ok := b.index[name]
	if !ok {
		panic(fmt.Sprintf("unknown block field '%s'", name))
	}
	return f
}

// Get returns the bytes of the named field. The returned slice shares the
// block's backing array.
func (b *Block) Get(name string) []byte {
	f := b.field(name)
	return b.Data[f[0] : f[0]+f[1]]
}

//
func (b *Block) GetByte(name string) byte {
	return b.GetByteAt(name, 0)
}

// GetByteAt returns the ix-th byte of the named field.
func (b *Block) GetByteAt(name string, ix int) byte {
	return b.element(name, ix, 1)[0]
}

//
func (b *Block) GetUint16(name string) uint16 {
	return b.GetUint16At(name, 0)
}

// GetUint16At returns the ix-th 16 bit word of the named field.
func (b *Block) GetUint16At(name string, ix int) uint16 {
	return binary.LittleEndian.Uint16(b.element(name, ix, 2))
}

//
func (b *Block) GetUint32(name string) uint32 {
	return binary.LittleEndian.Uint32(b.element(name, 0, 4))
}

//
func (b *Block) element(name string, ix, size int) []byte {
	f := b.field(name)
	start := ix * size
	if ix < 0 || start+size > f[1] {
		panic(fmt.Sprintf(
			"element %d of size %d out of range for field '%s' of length %d",
			ix, size, name, f[1]))
	}
	return b.Data[f[0]+start : f[0]+start+size]
}

// Len returns the length of the named field.
func (b *Block) Len(name string) int {
	return b.field(name)[1]
}
