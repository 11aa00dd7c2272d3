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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
)

// footer field offsets, relative to the start of the sector
const (
	footerID       = SectorDataSize
	footerChecksum = footerID + 2
	footerSecurity = footerChecksum + 2
	footerCounter  = footerSecurity + 4
)

// Sector is a physical sector of the save memory: payload followed by footer.
type Sector struct {
	data [SectorDataSize]byte
	//
	Index    int
	ID       uint16
	Checksum uint16
	Security uint32
	Counter  uint32
}

// ReadSectorAt seeks to the physical sector at index and reads it.
func ReadSectorAt(r io.ReadSeeker, index int) (*Sector, error) {

	if _, err := r.Seek(int64(index)*SectorSize, io.SeekStart); err != nil {
		return nil, &IOError{Op: fmt.Sprintf("sector %d not found", index), Err: err}
	}

	s, err := ReadSector(r)
	if err != nil {
		return nil, err
	}

	s.Index = index
	return s, nil
}

// ReadSector reads one sector from the current position of r. Index of the
// returned sector is -1.
func ReadSector(r io.Reader) (*Sector, error) {

	buf := make([]byte, SectorSize)
	if n, err := io.ReadFull(r, buf); err != nil {
		op := "failed to read sector data"
		if n >= SectorDataSize {
			op = "failed to read sector footer"
		}
		return nil, &IOError{Op: op, Err: err}
	}

	s := &Sector{
		Index:    -1,
		ID:       binary.LittleEndian.Uint16(buf[footerID:]),
		Checksum: binary.LittleEndian.Uint16(buf[footerChecksum:]),
		Security: binary.LittleEndian.Uint32(buf[footerSecurity:]),
		Counter:  binary.LittleEndian.Uint32(buf[footerCounter:]),
	}
	copy(s.data[:], buf)

	return s, nil
}

// Payload returns a copy of the complete payload, including any padding
// beyond the declared size of the section stored in this sector.
func (s *Sector) Payload() []byte {
	ret := make([]byte, SectorDataSize)
	copy(ret, s.data[:])
	return ret
}

// Validate checks the footer checksum against the first size bytes of the
// payload and returns those bytes if they are valid.
func (s *Sector) Validate(size int) ([]byte, error) {

	if size < 0 || size > SectorDataSize {
		panic(fmt.Sprintf("invalid validation size: %d", size))
	}

	want := Checksum(s.data[:size])
	if want != s.Checksum {
		return nil, corrupt(
			"invalid checksum in sector %d (section %d), expected 0x%04X, got 0x%04X",
			s.Index, s.ID, want, s.Checksum)
	}

	ret := make([]byte, size)
	copy(ret, s.data[:size])
	return ret, nil
}

// String gives a one line summary of the footer.
func (s *Sector) String() string {
	return fmt.Sprintf(
		"sector %d - section: %d, checksum: 0x%04X, security: 0x%08X, counter: %d",
		s.Index, s.ID, s.Checksum, s.Security, s.Counter)
}

// Emit emits the sector footer summary and a hex dump of the payload.
func (s *Sector) Emit(w io.Writer) {
	io.WriteString(w, fmt.Sprintf("\nSECTOR: %s\n", s))
	d := hex.Dumper(w)
	defer d.Close()
	d.Write(s.data[:])
}
