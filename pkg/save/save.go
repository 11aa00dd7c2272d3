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
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/xelalexv/gen3save/pkg/pokemon"
)

// Save is the decoded content of one save slot. It is only ever produced from
// validated sections.
type Save struct {
	Slot    int
	Counter uint32

	PlayerName string
	Gender     Gender
	TrainerID  TrainerID
	PlayTime   time.Duration

	Money   uint32
	Pokedex *StatusTable
	Party   []*pokemon.Pokemon

	// only present when decoded with WithStorage
	Storage *Storage
}

//
type Gender byte

//
const (
	Male Gender = iota
	Female
)

//
func genderFromByte(b byte) (Gender, error) {
	switch b {
	case 0:
		return Male, nil
	case 1:
		return Female, nil
	}
	return 0, invalidValue("gender", int(b), "0 or 1")
}

//
func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

//
func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

//
func (g *Gender) UnmarshalText(text []byte) error {
	switch string(text) {
	case "male":
		*g = Male
	case "female":
		*g = Female
	default:
		return fmt.Errorf("invalid gender: %s", text)
	}
	return nil
}

// TrainerID is the raw 4 byte trainer id.
type TrainerID [4]byte

// Public returns the visible part of the id, i.e. the lower 16 bits.
func (t TrainerID) Public() uint16 {
	return uint16(t[1])<<8 | uint16(t[0])
}

// Secret returns the secret part of the id, i.e. the upper 16 bits.
func (t TrainerID) Secret() uint16 {
	return uint16(t[3])<<8 | uint16(t[2])
}

//
func (t TrainerID) String() string {
	return fmt.Sprintf("%05d", t.Public())
}

// Status is the pokedex status of an entry.
type Status int

//
const (
	Unseen Status = iota
	Seen
	Caught
)

//
func (s Status) String() string {
	switch s {
	case Seen:
		return "seen"
	case Caught:
		return "caught"
	}
	return "unseen"
}

// StatusTable holds the pokedex flags. Seen and caught flags are kept as two
// independent bitsets.
type StatusTable struct {
	seen   *bitset.BitSet
	caught *bitset.BitSet
}

// NewStatusTable creates a status table from the raw seen and caught bitsets.
// Bit j of byte i, counting from the most significant bit, denotes entry
// i*8+j.
func NewStatusTable(seen, caught []byte) *StatusTable {
	return &StatusTable{seen: parseFlags(seen), caught: parseFlags(caught)}
}

//
func parseFlags(flags []byte) *bitset.BitSet {
	ret := bitset.New(uint(len(flags) * 8))
	for ix, f := range flags {
		for bit := 0; bit < 8; bit++ {
			if f&(1<<(7-bit)) != 0 {
				ret.Set(uint(ix*8 + bit))
			}
		}
	}
	return ret
}

// Status returns the status of entry id. Caught takes precedence over seen.
func (t *StatusTable) Status(id uint16) Status {
	if t.caught.Test(uint(id)) {
		return Caught
	}
	if t.seen.Test(uint(id)) {
		return Seen
	}
	return Unseen
}

//
func (t *StatusTable) IsSeen(id uint16) bool {
	return t.seen.Test(uint(id))
}

//
func (t *StatusTable) IsCaught(id uint16) bool {
	return t.caught.Test(uint(id))
}

// Seen returns the ids of all entries with the seen flag set, ascending.
func (t *StatusTable) Seen() []uint16 {
	return ids(t.seen)
}

// Caught returns the ids of all entries with the caught flag set, ascending.
func (t *StatusTable) Caught() []uint16 {
	return ids(t.caught)
}

// Len returns the number of entries that are not unseen.
func (t *StatusTable) Len() int {
	return int(t.seen.UnionCardinality(t.caught))
}

//
func ids(b *bitset.BitSet) []uint16 {
	ret := make([]uint16, 0, b.Count())
	for ix, ok := b.NextSet(0); ok; ix, ok = b.NextSet(ix + 1) {
		ret = append(ret, uint16(ix))
	}
	return ret
}
