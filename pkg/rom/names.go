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

package rom

import (
	"fmt"
)

// Miss is called by Names for every id that could not be resolved.
type Miss func(t Table, id uint16)

// Names resolves ids to display names against a Lookup. Unresolvable ids are
// rendered as '#<id>' and reported via the miss callback, if set.
type Names struct {
	lookup Lookup
	miss   Miss
}

// NewNames creates a name resolver. lookup may be nil, in which case all ids
// are rendered numerically without reporting misses.
func NewNames(lookup Lookup, miss Miss) *Names {
	return &Names{lookup: lookup, miss: miss}
}

// Name returns the name of id in table t.
func (n *Names) Name(t Table, id uint16) string {

	if n.lookup == nil {
		return fmt.Sprintf("#%d", id)
	}

	if rec, ok := n.lookup.Lookup(t, id); ok {
		return rec.Name
	}

	if n.miss != nil {
		n.miss(t, id)
	}
	return fmt.Sprintf("#%d", id)
}

// National maps a species id to its national dex number. If the species is
// unknown, or the table has no national numbers, the species id is returned.
func (n *Names) National(species uint16) uint16 {
	if n.lookup != nil {
		if rec, ok := n.lookup.Lookup(Species, species); ok && rec.National > 0 {
			return rec.National
		}
	}
	return species
}
