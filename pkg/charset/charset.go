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

// Package charset implements the 8 bit character set used for names and
// other text stored in Generation III save memory and ROM. Decoding is lossy:
// each byte without a glyph becomes a single Replacement rune, and decoding
// stops at the first Terminator byte.
package charset

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Western is the western (English/European) variant of the character set.
var Western encoding.Encoding = &western{}

//
type western struct{}

//
func (w *western) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &decoder{}}
}

//
func (w *western) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &encoder{}}
}

// Decode decodes a raw byte span into text.
func Decode(raw []byte) string {
	// the decoder never fails, short destination buffers are handled by
	// the transform package
	ret, _, _ := transform.Bytes(&decoder{}, raw)
	return string(ret)
}

// Encode encodes text into the character set, appending a Terminator. Runes
// without a representation yield an error.
func Encode(s string) ([]byte, error) {
	ret, _, err := transform.Bytes(&encoder{}, []byte(s))
	if err != nil {
		return nil, err
	}
	return append(ret, Terminator), nil
}

//
type decoder struct {
	terminated bool
}

//
func (d *decoder) Reset() {
	d.terminated = false
}

//
func (d *decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int,
	err error) {

	for nSrc < len(src) {

		if d.terminated {
			return nDst, len(src), nil
		}

		b := src[nSrc]
		if b == Terminator {
			d.terminated = true
			nSrc++
			continue
		}

		r := decodeTable[b]
		if r == invalid {
			r = Replacement
		}

		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}

	return nDst, nSrc, nil
}

// UnsupportedRuneError is returned when encoding a rune that has no
// representation in the character set.
type UnsupportedRuneError struct {
	Rune rune
}

//
func (e *UnsupportedRuneError) Error() string {
	return fmt.Sprintf("rune %q not supported by character set", e.Rune)
}

//
type encoder struct {
	transform.NopResetter
}

//
func (e *encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int,
	err error) {

	for nSrc < len(src) {

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size < 2 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			return nDst, nSrc, &UnsupportedRuneError{Rune: r}
		}

		b, ok := encodeTable[r]
		if !ok {
			return nDst, nSrc, &UnsupportedRuneError{Rune: r}
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		dst[nDst] = b
		nDst++
		nSrc += size
	}

	return nDst, nSrc, nil
}
