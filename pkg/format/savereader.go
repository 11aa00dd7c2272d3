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

package format

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

// MaxSaveSize is the largest save image accepted after decompression. Flash
// saves are 128KiB.
const MaxSaveSize = 128 * 1024

// OpenSave opens the save file at path from fs. Compressor and type are
// derived from the file name.
func OpenSave(fs afero.Fs, path string) (*SaveReader, error) {

	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name, typ, comp := SplitNameTypeCompressor(path)

	ret, err := NewSaveReader(f, comp)
	if err != nil {
		return nil, fmt.Errorf("cannot read save file '%s': %v", path, err)
	}

	if ret.name == "" {
		ret.name = name
	}
	if typ != "" {
		ret.typ = typ
	}

	return ret, nil
}

// NewSaveReader reads a complete save image from r, decompressing it with the
// given compressor first, if any. Supported compressors are gzip, zip, 7z, and
// xz. An empty compressor reads r as is.
func NewSaveReader(r io.Reader, compressor string) (*SaveReader, error) {

	log.WithField("compressor", compressor).Debug("save reader requested")

	var ret *SaveReader
	var err error

	switch compressor {

	case "gzip":
		fallthrough
	case "gz":
		ret, err = getGZipReader(r)

	case "zip":
		ret, err = getZipReader(r, false)

	case "7z":
		ret, err = getZipReader(r, true)

	case "xz":
		ret, err = getXZReader(r)

	case "":
		ret = &SaveReader{}
		err = ret.slurp(r)

	default:
		err = fmt.Errorf("unsupported compressor: %s", compressor)
	}

	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"compressor": ret.compressor,
		"name":       ret.name,
		"type":       ret.typ,
		"size":       ret.Size()}).Debug("save reader created")

	return ret, nil
}

// SaveReader is an in-memory, seekable save image.
type SaveReader struct {
	*bytes.Reader
	//
	name       string
	typ        string
	compressor string
}

//
func (r *SaveReader) Name() string {
	return r.name
}

//
func (r *SaveReader) Type() string {
	return r.typ
}

//
func (r *SaveReader) Compressor() string {
	return r.compressor
}

//
func (r *SaveReader) slurp(in io.Reader) error {

	var sponge bytes.Buffer
	n, err := io.Copy(&sponge, io.LimitReader(in, MaxSaveSize+1))
	if err != nil {
		return err
	}

	if n > MaxSaveSize {
		return fmt.Errorf("save image too large, limit is %d bytes", MaxSaveSize)
	}

	r.Reader = bytes.NewReader(sponge.Bytes())
	return nil
}

//
func getGZipReader(r io.Reader) (*SaveReader, error) {

	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gzr.Close()

	ret := &SaveReader{compressor: "gzip"}
	ret.name, ret.typ, _ = SplitNameTypeCompressor(gzr.Name)

	return ret, ret.slurp(gzr)
}

//
func getXZReader(r io.Reader) (*SaveReader, error) {

	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}

	ret := &SaveReader{compressor: "xz"}
	return ret, ret.slurp(xzr)
}

//
func getZipReader(r io.Reader, zip7 bool) (*SaveReader, error) {

	var sponge bytes.Buffer
	size, err := io.Copy(&sponge, r)
	if err != nil {
		return nil, err
	}

	ret := &SaveReader{}
	var entry io.ReadCloser

	if zip7 {
		zr, err := sevenzip.NewReader(bytes.NewReader(sponge.Bytes()), size)
		if err != nil {
			return nil, err
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("empty 7-zip archive")
		}
		if len(zr.File) > 1 {
			log.Warn("7-zip archive has more than one entry, using first")
		}

		ret.name, ret.typ, _ = SplitNameTypeCompressor(zr.File[0].Name)
		ret.compressor = "7z"
		entry, err = zr.File[0].Open()
		if err != nil {
			return nil, err
		}

	} else {
		zr, err := zip.NewReader(bytes.NewReader(sponge.Bytes()), size)
		if err != nil {
			return nil, err
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("empty zip archive")
		}
		if len(zr.File) > 1 {
			log.Warn("zip archive has more than one entry, using first")
		}

		ret.name, ret.typ, _ = SplitNameTypeCompressor(zr.File[0].Name)
		ret.compressor = "zip"
		entry, err = zr.File[0].Open()
		if err != nil {
			return nil, err
		}
	}

	defer entry.Close()
	return ret, ret.slurp(entry)
}

// SplitNameTypeCompressor splits a save file name into base name, save type,
// and compressor, e.g. 'emerald.sav.gz' yields 'emerald', 'sav', 'gz'.
func SplitNameTypeCompressor(file string) (name, typ, compressor string) {

	_, n := filepath.Split(file)

	for {
		ext := filepath.Ext(n)
		if ext == "" {
			name = n
			break
		}

		n = strings.TrimSuffix(n, ext)
		orig := strings.TrimPrefix(ext, ".")
		ext = strings.ToLower(orig)

		switch ext {

		case "sav":
			fallthrough
		case "srm":
			fallthrough
		case "fla":
			typ = ext

		case "gz":
			fallthrough
		case "gzip":
			fallthrough
		case "zip":
			fallthrough
		case "7z":
			fallthrough
		case "xz":
			compressor = ext

		default:
			// not a known extension, so part of the name
			name = n + "." + orig
			return
		}
	}

	return name, typ, compressor
}

// IsSaveFile determines whether file has a known save type extension.
func IsSaveFile(file string) bool {
	_, typ, _ := SplitNameTypeCompressor(file)
	return typ != ""
}
