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

package pokemon

// Stat identifies one of the six stats, in canonical display order.
type Stat int

//
const (
	HP Stat = iota
	Attack
	Defense
	SpAttack
	SpDefense
	Speed
)

// StatCount is the number of stats
const StatCount = 6

// order in which per-stat values are stored in save memory and ROM, i.e.
// storageOrder[i] is the canonical stat of the i-th stored value
var storageOrder = [StatCount]Stat{HP, Attack, Defense, Speed, SpAttack, SpDefense}

var statNames = [StatCount]string{
	"HP", "Attack", "Defense", "SpAttack", "SpDefense", "Speed"}

//
func (s Stat) String() string {
	if s < 0 || s >= StatCount {
		return "unknown"
	}
	return statNames[s]
}

// Canonical reorders per-stat values from storage order (HP, Atk, Def, Speed,
// SpA, SpD) to canonical order (HP, Atk, Def, SpA, SpD, Speed).
func Canonical[T any](stored [StatCount]T) [StatCount]T {
	var ret [StatCount]T
	for ix, s := range storageOrder {
		ret[s] = stored[ix]
	}
	return ret
}
