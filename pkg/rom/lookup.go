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

// Package rom provides name and stat lookup for the numeric ids found in save
// data. Tables are extracted from a game ROM by external tooling and stored as
// YAML; this package only consumes them.
package rom

import (
	"fmt"
	"io"
	"sort"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Table names a lookup table.
type Table string

//
const (
	Species   Table = "species"
	Moves     Table = "moves"
	Items     Table = "items"
	Abilities Table = "abilities"
)

// Record is one entry of a lookup table. Which of the optional fields are
// set depends on the table.
type Record struct {
	ID   uint16 `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	// species
	National  uint16    `yaml:"national,omitempty" json:"national,omitempty"`
	BaseStats [6]uint8  `yaml:"baseStats,omitempty" json:"baseStats,omitempty"`
	Types     []string  `yaml:"types,omitempty" json:"types,omitempty"`
	Abilities [2]uint16 `yaml:"abilities,omitempty" json:"abilities,omitempty"`
	// moves
	PP    uint8 `yaml:"pp,omitempty" json:"pp,omitempty"`
	Power uint8 `yaml:"power,omitempty" json:"power,omitempty"`
	// items
	Price uint16 `yaml:"price,omitempty" json:"price,omitempty"`
}

// Lookup resolves numeric ids to records.
type Lookup interface {
	Lookup(t Table, id uint16) (*Record, bool)
}

// Tables is a Lookup backed by in-memory tables.
type Tables struct {
	tables map[Table]map[uint16]*Record
}

//
func NewTables() *Tables {
	return &Tables{tables: make(map[Table]map[uint16]*Record)}
}

// LoadTables reads tables from YAML, given as a mapping of table name to a
// list of records.
func LoadTables(r io.Reader) (*Tables, error) {

	var raw map[Table][]*Record
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return NewTables(), nil
		}
		return nil, fmt.Errorf("error parsing ROM tables: %v", err)
	}

	ret := NewTables()
	for t, recs := range raw {
		for _, rec := range recs {
			if err := ret.Add(t, rec); err != nil {
				return nil, err
			}
		}
		log.WithFields(log.Fields{
			"table": t, "records": len(recs)}).Debug("ROM table loaded")
	}

	return ret, nil
}

// Add adds a record to table t. Adding a nil record, or one with an id that is
// already present in the table, is an error.
func (t *Tables) Add(table Table, rec *Record) error {

	if rec == nil {
		return fmt.Errorf("empty record in table %s", table)
	}

	tab, ok := t.tables[table]
	if !ok {
		tab = make(map[uint16]*Record)
		t.tables[table] = tab
	}

	if _, dup := tab[rec.ID]; dup {
		return fmt.Errorf("duplicate id %d in table %s", rec.ID, table)
	}

	tab[rec.ID] = rec
	return nil
}

//
func (t *Tables) Lookup(table Table, id uint16) (*Record, bool) {
	rec, ok := t.tables[table][id]
	return rec, ok
}

// Len returns the number of records in table.
func (t *Tables) Len(table Table) int {
	return len(t.tables[table])
}

// Names returns the names of all tables present, sorted.
func (t *Tables) Names() []string {
	ret := make([]string, 0, len(t.tables))
	for name := range t.tables {
		ret = append(ret, string(name))
	}
	sort.Strings(ret)
	return ret
}
