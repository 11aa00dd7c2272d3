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

package control

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xelalexv/gen3save/pkg/pokemon"
	"github.com/xelalexv/gen3save/pkg/rom"
	"github.com/xelalexv/gen3save/pkg/save"
)

// Report is the presentation of a decoded save, with ids resolved to names
// where possible.
type Report struct {
	Slot      int          `json:"slot"`
	Counter   uint32       `json:"counter"`
	Player    string       `json:"player"`
	Gender    save.Gender  `json:"gender"`
	TrainerID string       `json:"trainerId"`
	SecretID  uint16       `json:"secretId"`
	PlayTime  string       `json:"playTime"`
	Money     uint32       `json:"money"`
	Seen      []uint16     `json:"seen"`
	Caught    []uint16     `json:"caught"`
	Party     []*Creature  `json:"party"`
	Storage   *BoxesReport `json:"storage,omitempty"`
	Warnings  []string     `json:"warnings,omitempty"`
}

// Creature is a decoded creature record with names resolved.
type Creature struct {
	*pokemon.Pokemon
	Slot        int      `json:"slot"`
	SpeciesName string   `json:"speciesName"`
	ItemName    string   `json:"itemName,omitempty"`
	MoveNames   []string `json:"moveNames"`
}

//
type BoxesReport struct {
	CurrentBox int           `json:"currentBox"`
	Boxes      [][]*Creature `json:"boxes"`
}

// MissReporter returns a rom.Miss that records each unresolvable id once as a
// warning in diag.
func MissReporter(diag *save.Diagnostics) rom.Miss {
	reported := make(map[string]bool)
	return func(t rom.Table, id uint16) {
		key := fmt.Sprintf("%s/%d", t, id)
		if !reported[key] {
			reported[key] = true
			diag.Warnf("no %s entry for id %d", t, id)
		}
	}
}

// NewReport creates the report for s. Warnings are taken from diag after all
// names have been resolved, so that lookup misses are included.
func NewReport(s *save.Save, names *rom.Names, diag *save.Diagnostics) *Report {

	ret := &Report{
		Slot:      s.Slot + 1,
		Counter:   s.Counter,
		Player:    s.PlayerName,
		Gender:    s.Gender,
		TrainerID: s.TrainerID.String(),
		SecretID:  s.TrainerID.Secret(),
		PlayTime:  formatPlayTime(s.PlayTime),
		Money:     s.Money,
		Seen:      s.Pokedex.Seen(),
		Caught:    s.Pokedex.Caught(),
	}

	for ix, p := range s.Party {
		ret.Party = append(ret.Party, newCreature(ix+1, p, names))
	}

	if s.Storage != nil {
		ret.Storage = &BoxesReport{
			CurrentBox: s.Storage.CurrentBox + 1,
			Boxes:      make([][]*Creature, len(s.Storage.Boxes)),
		}
		for bx, b := range s.Storage.Boxes {
			box := make([]*Creature, 0, len(b.Entries))
			for _, e := range b.Entries {
				box = append(box, newCreature(e.Slot+1, e.Pokemon, names))
			}
			ret.Storage.Boxes[bx] = box
		}
	}

	if diag != nil {
		for _, w := range diag.Warnings {
			ret.Warnings = append(ret.Warnings, w.String())
		}
	}

	return ret
}

//
func newCreature(slot int, p *pokemon.Pokemon, names *rom.Names) *Creature {

	ret := &Creature{
		Pokemon:     p,
		Slot:        slot,
		SpeciesName: names.Name(rom.Species, p.Species),
	}

	if p.Item != 0 {
		ret.ItemName = names.Name(rom.Items, p.Item)
	}

	for _, m := range p.Moves {
		if m.ID != 0 {
			ret.MoveNames = append(ret.MoveNames, names.Name(rom.Moves, m.ID))
		}
	}

	return ret
}

//
func formatPlayTime(d time.Duration) string {
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Write writes a human readable rendition of the report to w.
func (r *Report) Write(w io.Writer) {

	fmt.Fprintf(w, "\nplayer:     %s (%s)\n", r.Player, r.Gender)
	fmt.Fprintf(w, "trainer id: %s (secret %05d)\n", r.TrainerID, r.SecretID)
	fmt.Fprintf(w, "play time:  %s\n", r.PlayTime)
	fmt.Fprintf(w, "money:      %d\n", r.Money)
	fmt.Fprintf(w, "pokedex:    %d seen, %d caught\n", len(r.Seen), len(r.Caught))
	fmt.Fprintf(w, "slot:       %d (save counter %d)\n", r.Slot, r.Counter)

	fmt.Fprintf(w, "\nparty:\n")
	if len(r.Party) == 0 {
		fmt.Fprintf(w, "  (empty)\n")
	}
	for _, c := range r.Party {
		c.write(w)
	}

	if r.Storage != nil {
		fmt.Fprintf(w, "\nPC storage, current box %d:\n", r.Storage.CurrentBox)
		for bx, b := range r.Storage.Boxes {
			if len(b) == 0 {
				continue
			}
			fmt.Fprintf(w, "\n box %d:\n", bx+1)
			for _, c := range b {
				c.write(w)
			}
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "\nwarnings:\n")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}

	fmt.Fprintln(w)
}

//
func (c *Creature) write(w io.Writer) {

	if c.IsEgg {
		fmt.Fprintf(w, "  %2d  %-10s egg\n", c.Slot, c.SpeciesName)
		return
	}

	fmt.Fprintf(w, "  %2d  %-10s %-10s", c.Slot, c.Nickname, c.SpeciesName)
	if c.InParty {
		fmt.Fprintf(w, " Lv %3d  HP %3d/%3d", c.Level, c.CurrentHP,
			c.Stats[pokemon.HP])
	}
	if c.ItemName != "" {
		fmt.Fprintf(w, "  @%s", c.ItemName)
	}
	if len(c.MoveNames) > 0 {
		fmt.Fprintf(w, "  [%s]", strings.Join(c.MoveNames, ", "))
	}
	fmt.Fprintln(w)
}
