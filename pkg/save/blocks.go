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
	"time"

	"github.com/xelalexv/gen3save/pkg/charset"
	"github.com/xelalexv/gen3save/pkg/pokemon"
	"github.com/xelalexv/gen3save/pkg/raw"
)

//
const (
	PlayerNameLength = 7
	PokedexBytes     = 125
	PartyMax         = 6
)

var profileIndex = map[string]raw.Field{
	"name":      {0x00, PlayerNameLength + 1},
	"gender":    {0x08, 1},
	"warpFlags": {0x09, 1},
	"trainerID": {0x0A, 4},
	"hours":     {0x0E, 2},
	"minutes":   {0x10, 1},
	"seconds":   {0x11, 1},
}

var stateIndex = map[string]raw.Field{
	"partyCount": {0x0034, 4},
	"party":      {0x0038, PartyMax * pokemon.PartySize},
	"money":      {0x0290, 4},
	"seen":       {0x0310, PokedexBytes},
	"caught":     {0x038D, PokedexBytes},
}

// profile is the content of section 0
type profile struct {
	name      string
	gender    Gender
	trainerID TrainerID
	playTime  time.Duration
}

//
func decodeProfile(data []byte) (*profile, error) {

	b, err := raw.NewBlock(profileIndex, data)
	if err != nil {
		return nil, &CorruptDataError{Reason: "profile block", Err: err}
	}

	p := &profile{name: charset.Decode(b.Get("name"))}

	if p.gender, err = genderFromByte(b.GetByte("gender")); err != nil {
		return nil, err
	}

	copy(p.trainerID[:], b.Get("trainerID"))
	p.playTime = PlayTime(
		b.GetUint16("hours"), b.GetByte("minutes"), b.GetByte("seconds"))

	return p, nil
}

// PlayTime combines the stored play time fields into a duration.
func PlayTime(hours uint16, minutes, seconds uint8) time.Duration {
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
}

// state is the content of section 1
type state struct {
	money   uint32
	pokedex *StatusTable
	party   []*pokemon.Pokemon
}

//
func decodeState(data []byte) (*state, error) {

	b, err := raw.NewBlock(stateIndex, data)
	if err != nil {
		return nil, &CorruptDataError{Reason: "state block", Err: err}
	}

	s := &state{
		money:   b.GetUint32("money"),
		pokedex: NewStatusTable(b.Get("seen"), b.Get("caught")),
	}

	count := b.GetUint32("partyCount")
	if count > PartyMax {
		return nil, invalidValue("party size", int(count), "value from 0 to 6")
	}

	party := b.Get("party")
	for ix := 0; ix < int(count); ix++ {
		p, err := pokemon.Decode(
			party[ix*pokemon.PartySize : (ix+1)*pokemon.PartySize])
		if err != nil {
			return nil, &CorruptDataError{Reason: "party record", Err: err}
		}
		s.party = append(s.party, p)
	}

	return s, nil
}
