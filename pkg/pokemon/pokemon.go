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

// Package pokemon decodes stored creature records. Records are bit packed and
// stored as fixed size byte spans, 80 bytes for creatures in PC boxes, and 100
// bytes for creatures in the party, which carry additional battle stats.
package pokemon

import (
	"fmt"

	"github.com/xelalexv/gen3save/pkg/charset"
	"github.com/xelalexv/gen3save/pkg/raw"
)

//
const (
	BoxedSize = 80
	PartySize = 100
	MoveCount = 4
)

var recordIndex = map[string]raw.Field{
	"personality": {0, 4},
	"otID":        {4, 4},
	"nickname":    {8, 10},
	"language":    {18, 1},
	"otName":      {20, 7},
	"markings":    {27, 1},
	"species":     {32, 2},
	"item":        {34, 2},
	"experience":  {36, 4},
	"ppBonuses":   {40, 1},
	"friendship":  {41, 1},
	"ball":        {42, 1},
	"moves":       {44, 2 * MoveCount},
	"pp":          {52, MoveCount},
	"evs":         {56, StatCount},
	"ivs":         {72, 4},
}

var partyIndex = map[string]raw.Field{
	"level":     {84, 1},
	"currentHP": {86, 2},
	"stats":     {88, 2 * StatCount},
}

// bit layout of the IV word: six 5 bit fields in storage order starting at
// bit 0, followed by the egg flag in bit 30 and the alternate ability flag in
// bit 31
const (
	ivBits       = 5
	ivMask       = 1<<ivBits - 1
	ivEggBit     = 30
	ivAbilityBit = 31
)

//
type Move struct {
	ID      uint16 `json:"id"`
	PP      uint8  `json:"pp"`
	PPBonus uint8  `json:"ppBonus"`
}

// Pokemon is one decoded creature record. All numeric ids are passed through
// as stored; resolving them to names is up to the ROM tables. Per-stat arrays
// are in canonical order, see Stat.
type Pokemon struct {
	Personality uint32  `json:"personality"`
	OTID        uint32  `json:"otId"`
	Nickname    string  `json:"nickname"`
	Language    uint8   `json:"language"`
	OTName      string  `json:"otName"`
	Markings    [4]bool `json:"markings"`

	Species    uint16 `json:"species"`
	Item       uint16 `json:"item"`
	Experience uint32 `json:"experience"`
	Friendship uint8  `json:"friendship"`
	Ball       uint8  `json:"ball"`

	Moves [MoveCount]Move `json:"moves"`

	EVs [StatCount]uint8 `json:"evs"`
	IVs [StatCount]uint8 `json:"ivs"`

	IsEgg         bool `json:"isEgg"`
	HiddenAbility bool `json:"hiddenAbility"`

	// only set for party records
	InParty   bool              `json:"inParty"`
	Level     uint8             `json:"level,omitempty"`
	CurrentHP uint16            `json:"currentHp,omitempty"`
	Stats     [StatCount]uint16 `json:"stats"`
}

// Decode decodes a record from data. If data is at least PartySize long, it
// is decoded as a party record. Apart from the length of data, nothing is
// validated.
func Decode(data []byte) (*Pokemon, error) {

	if len(data) < BoxedSize {
		return nil, fmt.Errorf(
			"record too short, want at least %d bytes, got %d", BoxedSize, len(data))
	}

	b, err := raw.NewBlock(recordIndex, data[:BoxedSize])
	if err != nil {
		return nil, err
	}

	p := &Pokemon{
		Personality: b.GetUint32("personality"),
		OTID:        b.GetUint32("otID"),
		Nickname:    charset.Decode(b.Get("nickname")),
		Language:    b.GetByte("language"),
		OTName:      charset.Decode(b.Get("otName")),
		Species:     b.GetUint16("species"),
		Item:        b.GetUint16("item"),
		Experience:  b.GetUint32("experience"),
		Friendship:  b.GetByte("friendship"),
		Ball:        b.GetByte("ball"),
	}

	markings := b.GetByte("markings")
	for ix := range p.Markings {
		p.Markings[ix] = markings&(1<<ix) != 0
	}

	bonuses := b.GetByte("ppBonuses")
	for ix := range p.Moves {
		p.Moves[ix] = Move{
			ID:      b.GetUint16At("moves", ix),
			PP:      b.GetByteAt("pp", ix),
			PPBonus: PPBonus(bonuses, ix),
		}
	}

	var evs [StatCount]uint8
	copy(evs[:], b.Get("evs"))
	p.EVs = Canonical(evs)

	ivs, egg, ability := UnpackIVs(b.GetUint32("ivs"))
	p.IVs = Canonical(ivs)
	p.IsEgg = egg
	p.HiddenAbility = ability

	if len(data) >= PartySize {
		if err := p.decodeParty(data[:PartySize]); err != nil {
			return nil, err
		}
	}

	return p, nil
}

//
func (p *Pokemon) decodeParty(data []byte) error {

	b, err := raw.NewBlock(partyIndex, data)
	if err != nil {
		return err
	}

	p.InParty = true
	p.Level = b.GetByte("level")
	p.CurrentHP = b.GetUint16("currentHP")

	var stats [StatCount]uint16
	for ix := range stats {
		stats[ix] = b.GetUint16At("stats", ix)
	}
	p.Stats = Canonical(stats)

	return nil
}

// PPBonus returns the PP bonus of the move at index ix from the packed bonus
// byte, where each move takes 2 bits, move 0 in bits 0-1.
func PPBonus(packed byte, ix int) uint8 {
	return (packed >> (2 * uint(ix))) & 0x03
}

// UnpackIVs splits the IV word into six 5 bit IVs in storage order, the egg
// flag (bit 30), and the alternate ability flag (bit 31).
func UnpackIVs(word uint32) (ivs [StatCount]uint8, egg, ability bool) {
	for ix := range ivs {
		ivs[ix] = uint8((word >> (ivBits * uint(ix))) & ivMask)
	}
	egg = word&(1<<ivEggBit) != 0
	ability = word&(1<<ivAbilityBit) != 0
	return
}

// IsEmpty determines whether this is a placeholder for an empty slot.
func (p *Pokemon) IsEmpty() bool {
	return p.Species == 0
}
