// github.com/typebrew/fontcore - a library for reading and writing font files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package glyf

import "github.com/typebrew/fontcore/parser"

// DecodeLocaOffsets decodes a "loca" table into a slice of byte offsets
// into "glyf", one more entry than there are glyphs. locaFormat is
// head.indexToLocFormat: 0 for short (16-bit, doubled), 1 for long (32-bit).
func DecodeLocaOffsets(data []byte, locaFormat int16) ([]int, error) {
	return decodeLocaData(data, locaFormat)
}

// EncodeLocaOffsets is the exported form of encodeLoca, for callers (the
// table rewriter's glyf/loca rebuild) that accumulate offsets outside this
// package.
func EncodeLocaOffsets(offs []int) (data []byte, locaFormat int16, overflow bool) {
	for _, o := range offs {
		if o%2 != 0 || o > 0x1FFFE {
			overflow = true
			break
		}
	}
	data, locaFormat = encodeLoca(offs)
	return data, locaFormat, overflow
}

// decodeLoca decodes the "loca" table into a slice of byte offsets into
// "glyf", one more entry than there are glyphs.
func decodeLoca(enc *Encoded) ([]int, error) {
	return decodeLocaData(enc.LocaData, enc.LocaFormat)
}

func decodeLocaData(data []byte, locaFormat int16) ([]int, error) {
	if locaFormat == 0 {
		if len(data)%2 != 0 {
			return nil, &parser.InvalidFontError{
				SubSystem: "sfnt/loca",
				Reason:    "odd length for short loca table",
			}
		}
		n := len(data) / 2
		offs := make([]int, n)
		for i := 0; i < n; i++ {
			offs[i] = 2 * (int(data[2*i])<<8 | int(data[2*i+1]))
		}
		return offs, nil
	}

	if len(data)%4 != 0 {
		return nil, &parser.InvalidFontError{
			SubSystem: "sfnt/loca",
			Reason:    "invalid length for long loca table",
		}
	}
	n := len(data) / 4
	offs := make([]int, n)
	for i := 0; i < n; i++ {
		offs[i] = int(data[4*i])<<24 | int(data[4*i+1])<<16 | int(data[4*i+2])<<8 | int(data[4*i+3])
	}
	return offs, nil
}

// encodeLoca encodes a slice of byte offsets (as returned by decodeLoca, or
// accumulated while re-assembling "glyf") into a "loca" table, choosing the
// short format when every offset fits and falls on an even byte boundary.
func encodeLoca(offs []int) ([]byte, int16) {
	useShort := true
	for _, o := range offs {
		if o%2 != 0 || o > 0x1FFFE {
			useShort = false
			break
		}
	}

	if useShort {
		data := make([]byte, 2*len(offs))
		for i, o := range offs {
			v := o / 2
			data[2*i] = byte(v >> 8)
			data[2*i+1] = byte(v)
		}
		return data, 0
	}

	data := make([]byte, 4*len(offs))
	for i, o := range offs {
		data[4*i] = byte(o >> 24)
		data[4*i+1] = byte(o >> 16)
		data[4*i+2] = byte(o >> 8)
		data[4*i+3] = byte(o)
	}
	return data, 1
}
