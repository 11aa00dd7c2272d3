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

package save_test

import (
	"bytes"
	"io"

	"github.com/xelalexv/gen3save/pkg/save"
	"github.com/xelalexv/gen3save/pkg/save/savetest"
)

// newSlot creates a valid slot with the given player name and write counter
func newSlot(name string, counter uint32, rotation int) *savetest.Slot {
	return &savetest.Slot{
		Counter:  counter,
		Rotation: rotation,
		Profile: savetest.Profile{
			Name:      name,
			Gender:    1,
			TrainerID: [4]byte{0x39, 0x30, 0x01, 0x00},
			Hours:     12,
			Minutes:   34,
			Seconds:   56,
		},
		State: savetest.State{
			Money:  3000,
			Seen:   []uint16{1, 4, 7},
			Caught: []uint16{1},
		},
	}
}

// trackingReader records the physical sectors that were read
type trackingReader struct {
	r       *bytes.Reader
	sectors []int
}

func newTrackingReader(img []byte) *trackingReader {
	return &trackingReader{r: bytes.NewReader(img)}
}

func (t *trackingReader) Read(p []byte) (int, error) {
	pos, _ := t.r.Seek(0, io.SeekCurrent)
	t.sectors = append(t.sectors, int(pos/save.SectorSize))
	return t.r.Read(p)
}

func (t *trackingReader) Seek(offset int64, whence int) (int64, error) {
	return t.r.Seek(offset, whence)
}

// touched determines whether any sector of slot other than its first sector
// was read
func (t *trackingReader) touched(slot int) bool {
	for _, s := range t.sectors {
		if s > slot*save.SlotSectors && s < (slot+1)*save.SlotSectors {
			return true
		}
	}
	return false
}
