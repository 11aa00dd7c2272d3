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

package charset

// Terminator ends a string in the game's character set.
const Terminator = 0xFF

// Replacement is emitted for every byte without a glyph.
const Replacement = '�'

//
const invalid = -1

// glyphs of the western character set, everything not listed here has no
// printable representation
var glyphs = map[byte]rune{
	0x00: ' ', 0x01: 'À', 0x02: 'Á', 0x03: 'Â', 0x04: 'Ç', 0x05: 'È',
	0x06: 'É', 0x07: 'Ê', 0x08: 'Ë', 0x09: 'Ì', 0x0B: 'Î', 0x0C: 'Ï',
	0x0D: 'Ò', 0x0E: 'Ó', 0x0F: 'Ô', 0x10: 'Œ', 0x11: 'Ù', 0x12: 'Ú',
	0x13: 'Û', 0x14: 'Ñ', 0x15: 'ß', 0x16: 'à', 0x17: 'á', 0x19: 'ç',
	0x1A: 'è', 0x1B: 'é', 0x1C: 'ê', 0x1D: 'ë', 0x1E: 'ì', 0x20: 'î',
	0x21: 'ï', 0x22: 'ò', 0x23: 'ó', 0x24: 'ô', 0x25: 'œ', 0x26: 'ù',
	0x27: 'ú', 0x28: 'û', 0x29: 'ñ', 0x2A: 'º', 0x2B: 'ª', 0x2D: '&',
	0x2E: '+', 0x35: '=', 0x36: ';', 0x51: '¿', 0x52: '¡', 0x5A: 'Í',
	0x5B: '%', 0x5C: '(', 0x5D: ')', 0x68: 'â', 0x6F: 'í', 0x85: '<',
	0x86: '>',
	0xA1: '0', 0xA2: '1', 0xA3: '2', 0xA4: '3', 0xA5: '4', 0xA6: '5',
	0xA7: '6', 0xA8: '7', 0xA9: '8', 0xAA: '9',
	0xAB: '!', 0xAC: '?', 0xAD: '.', 0xAE: '-', 0xAF: '·', 0xB0: '…',
	0xB1: '“', 0xB2: '”', 0xB3: '‘', 0xB4: '\'', 0xB5: '♂', 0xB6: '♀',
	0xB7: '$', 0xB8: ',', 0xB9: '*', 0xBA: '/',
	0xEF: '▶', 0xF0: ':', 0xF1: 'Ä', 0xF2: 'Ö', 0xF3: 'Ü', 0xF4: 'ä',
	0xF5: 'ö', 0xF6: 'ü', 0xFE: '\n',
}

var decodeTable [256]rune
var encodeTable map[rune]byte

//
func init() {

	for ix := range decodeTable {
		decodeTable[ix] = invalid
	}

	for ix := 0; ix < 26; ix++ {
		glyphs[byte(0xBB+ix)] = rune('A' + ix)
		glyphs[byte(0xD5+ix)] = rune('a' + ix)
	}

	encodeTable = make(map[rune]byte, len(glyphs))
	for b, r := range glyphs {
		decodeTable[b] = r
		encodeTable[r] = b
	}
}
