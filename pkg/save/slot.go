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
	"io"

	log "github.com/sirupsen/logrus"
)

// Option configures a Decoder.
type Option func(d *Decoder)

// WithStorage makes the decoder also decode PC storage.
func WithStorage() Option {
	return func(d *Decoder) {
		d.storage = true
	}
}

// WithLogger sets the logger to use. Default, and used when l is nil, is the
// standard logger.
func WithLogger(l log.FieldLogger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// Decoder decodes save files. A Decoder holds no state between calls and may
// be used for any number of decodes.
type Decoder struct {
	logger  log.FieldLogger
	storage bool
}

//
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, o := range opts {
		o(d)
	}
	if d.logger == nil {
		d.logger = log.StandardLogger()
	}
	return d
}

// Read decodes a save with a default decoder.
func Read(r io.ReadSeeker, diag *Diagnostics) (*Save, error) {
	return NewDecoder().Decode(r, diag)
}

// Decode reads the first sector of both slots, and decodes the slot with the
// higher write counter. If that fails, the other slot is decoded instead, and
// a warning is recorded in diag. If only one of the first sectors can be
// read, only that slot is tried. A returned Save is always completely valid.
func (d *Decoder) Decode(r io.ReadSeeker, diag *Diagnostics) (*Save, error) {

	first, err1 := ReadSectorAt(r, 0)
	second, err2 := ReadSectorAt(r, SlotSectors)

	switch {

	case err1 == nil && err2 == nil:
		if first.Counter >= second.Counter {
			return d.decodeWithFallback(r, 0, first, second, diag)
		}
		return d.decodeWithFallback(r, 1, second, first, diag)

	case err1 == nil:
		d.logger.WithField("error", err2).Debug("slot 2 not readable")
		return d.decodeSlot(r, 0, first)

	case err2 == nil:
		d.logger.WithField("error", err1).Debug("slot 1 not readable")
		return d.decodeSlot(r, 1, second)
	}

	return nil, err1
}

//
func (d *Decoder) decodeWithFallback(r io.ReadSeeker, slot int, first,
	fallback *Sector, diag *Diagnostics) (*Save, error) {

	ret, err := d.decodeSlot(r, slot, first)
	if err == nil {
		return ret, nil
	}

	d.logger.WithFields(log.Fields{
		"slot":  slot + 1,
		"error": err,
	}).Warn("failed to read most recent save, falling back to other slot")

	diag.Warn(Warning{
		Slot:    slot,
		Message: "failed to read most recent save, fell back to other slot",
		Err:     err,
	})

	return d.decodeSlot(r, slot^1, fallback)
}

//
func (d *Decoder) decodeSlot(r io.ReadSeeker, slot int, first *Sector) (
	*Save, error) {

	logger := d.logger.WithField("slot", slot+1)
	logger.Debug("decoding slot")

	a, err := NewAssembler(r, slot, first)
	if err != nil {
		return nil, err
	}
	logger.WithField("head", a.Head().Index).Debug("slot head sector resolved")

	data, err := a.Section(SectionProfile)
	if err != nil {
		return nil, err
	}
	prof, err := decodeProfile(data)
	if err != nil {
		return nil, err
	}

	if data, err = a.Section(SectionState); err != nil {
		return nil, err
	}
	st, err := decodeState(data)
	if err != nil {
		return nil, err
	}

	ret := &Save{
		Slot:       slot,
		Counter:    a.Head().Counter,
		PlayerName: prof.name,
		Gender:     prof.gender,
		TrainerID:  prof.trainerID,
		PlayTime:   prof.playTime,
		Money:      st.money,
		Pokedex:    st.pokedex,
		Party:      st.party,
	}

	if d.storage {
		if data, err = a.Sections(storageSections()...); err != nil {
			return nil, err
		}
		if ret.Storage, err = decodeStorage(data); err != nil {
			return nil, err
		}
	}

	logger.WithFields(log.Fields{
		"player":  ret.PlayerName,
		"counter": ret.Counter}).Debug("slot decoded")

	return ret, nil
}
