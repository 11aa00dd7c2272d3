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

// IOError signals that the underlying source could not supply the requested
// bytes, e.g. because the save file is truncated.
type IOError struct {
	Op  string
	Err error
}

//
func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error (maybe corrupt save file): %s: %v", e.Op, e.Err)
}

//
func (e *IOError) Unwrap() error {
	return e.Err
}

// CorruptDataError signals data that was read completely, but failed
// validation: checksum mismatch, unexpected section id, or an enumerated
// field holding an unknown value.
type CorruptDataError struct {
	Reason string
	Err    error
}

//
func corrupt(format string, a ...interface{}) *CorruptDataError {
	return &CorruptDataError{Reason: fmt.Sprintf(format, a...)}
}

//
func (e *CorruptDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt save data: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt save data: %s", e.Reason)
}

//
func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// InvalidValueError carries the offending raw value of an enumerated field.
type InvalidValueError struct {
	Field string
	Value int
	Want  string
}

//
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %d, expected %s", e.Field, e.Value, e.Want)
}

//
func invalidValue(field string, value int, want string) *CorruptDataError {
	return &CorruptDataError{
		Reason: fmt.Sprintf("invalid %s", field),
		Err:    &InvalidValueError{Field: field, Value: value, Want: want},
	}
}
