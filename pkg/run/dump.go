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

package run

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/afero"

	"github.com/xelalexv/gen3save/pkg/format"
	"github.com/xelalexv/gen3save/pkg/save"
)

//
func NewDump() *Dump {

	d := &Dump{fs: afero.NewOsFs()}
	d.Runner = *NewRunner(
		"dump -i|--input {file} [-l|--slot {slot}] [-n|--section {section}]",
		"hex dump a save file",
		`
Use the dump command to output a hex dump of a save slot. Without a section,
all sectors of the slot are dumped as stored, including their footers and
regardless of checksums. With a section, only the validated data of that
section is dumped. Without a slot, the most recently written slot is used.`,
		"", runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.Input, "input", "i", "", nil, "save input file", true)
	d.AddSetting(&d.Slot, "slot", "l", "", 0, "save slot (1 or 2)", false)
	d.AddSetting(&d.Section, "section", "n", "", -1,
		fmt.Sprintf("section to dump (0-%d)", save.SectionCount-1), false)

	return d
}

//
type Dump struct {
	Runner
	//
	Input   string
	Slot    int
	Section int
	//
	fs afero.Fs
}

//
func (d *Dump) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	if d.Slot < 0 || d.Slot > save.SlotCount {
		return fmt.Errorf("invalid slot: %d", d.Slot)
	}
	if d.Section >= save.SectionCount {
		return fmt.Errorf("invalid section: %d", d.Section)
	}

	r, err := format.OpenSave(d.fs, d.Input)
	if err != nil {
		return err
	}

	slot := d.Slot - 1
	if slot < 0 {
		if slot, err = mostRecentSlot(r); err != nil {
			return err
		}
	}

	first, err := save.ReadSectorAt(r, slot*save.SlotSectors)
	if err != nil {
		return err
	}

	out := d.out()

	if d.Section < 0 {
		for ix := 0; ix < save.SlotSectors; ix++ {
			s, err := save.ReadSectorAt(r, slot*save.SlotSectors+ix)
			if err != nil {
				return err
			}
			s.Emit(out)
		}
		fmt.Fprintln(out)
		return nil
	}

	a, err := save.NewAssembler(r, slot, first)
	if err != nil {
		return err
	}

	data, err := a.Section(d.Section)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSLOT %d, SECTION %d (sector %d), %d bytes:\n",
		slot+1, d.Section, a.PhysicalIndex(d.Section), len(data))
	dumper := hex.Dumper(out)
	defer fmt.Fprintln(out)
	defer dumper.Close()
	_, err = dumper.Write(data)
	return err
}

// mostRecentSlot returns the slot with the higher write counter. A slot whose
// first sector cannot be read loses.
func mostRecentSlot(r *format.SaveReader) (int, error) {

	first, err1 := save.ReadSectorAt(r, 0)
	second, err2 := save.ReadSectorAt(r, save.SlotSectors)

	switch {
	case err1 == nil && err2 == nil:
		if second.Counter > first.Counter {
			return 1, nil
		}
		return 0, nil
	case err1 == nil:
		return 0, nil
	case err2 == nil:
		return 1, nil
	}

	return -1, err1
}
