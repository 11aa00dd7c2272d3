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
)

// Warning is a non-fatal event that occurred while decoding, e.g. a fallback
// to the older save slot.
type Warning struct {
	Slot    int    `json:"slot"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

//
func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %v", w.Message, w.Err)
	}
	return w.Message
}

// Diagnostics collects warnings during a decode call. It is passed explicitly
// into each decode, a nil *Diagnostics discards all warnings.
type Diagnostics struct {
	Warnings []Warning
}

// Warn records a warning.
func (d *Diagnostics) Warn(w Warning) {
	if d != nil {
		d.Warnings = append(d.Warnings, w)
	}
}

// Warnf records a warning not tied to a particular slot.
func (d *Diagnostics) Warnf(format string, a ...interface{}) {
	d.Warn(Warning{Slot: -1, Message: fmt.Sprintf(format, a...)})
}

// Len returns the number of recorded warnings.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Warnings)
}
