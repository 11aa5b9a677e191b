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

package hhea

import "github.com/typebrew/fontcore/parser"

// Metrics is the decoded "hmtx" table: one (advanceWidth, lsb) pair per
// glyph. Glyphs at or beyond NumOfLongHorMetrics share the last advance
// width and carry only their own left side bearing.
type Metrics struct {
	Widths []uint16
	LSB    []int16
}

// DecodeHmtx decodes the "hmtx" table given the numberOfHMetrics recorded in
// "hhea" and the total glyph count from "maxp".
func DecodeHmtx(data []byte, numberOfHMetrics, numGlyphs int) (*Metrics, error) {
	if numberOfHMetrics > numGlyphs || numberOfHMetrics < 0 {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/hmtx", Reason: "invalid numberOfHMetrics"}
	}

	m := &Metrics{
		Widths: make([]uint16, numGlyphs),
		LSB:    make([]int16, numGlyphs),
	}

	pos := 0
	var prevWidth uint16
	for i := 0; i < numGlyphs; i++ {
		if i < numberOfHMetrics {
			if pos+4 > len(data) {
				return nil, &parser.InvalidFontError{SubSystem: "sfnt/hmtx", Reason: "table too short"}
			}
			prevWidth = uint16(data[pos])<<8 | uint16(data[pos+1])
			m.Widths[i] = prevWidth
			m.LSB[i] = int16(uint16(data[pos+2])<<8 | uint16(data[pos+3]))
			pos += 4
		} else {
			if pos+2 > len(data) {
				return nil, &parser.InvalidFontError{SubSystem: "sfnt/hmtx", Reason: "table too short"}
			}
			m.Widths[i] = prevWidth
			m.LSB[i] = int16(uint16(data[pos])<<8 | uint16(data[pos+1]))
			pos += 2
		}
	}

	return m, nil
}

// Encode re-assembles the "hmtx" table, trimming trailing glyphs whose
// advance width repeats the previous one into the short (LSB-only) form.
func (m *Metrics) Encode() (data []byte, numberOfHMetrics int) {
	n := len(m.Widths)
	numberOfHMetrics = n
	for numberOfHMetrics > 1 && m.Widths[numberOfHMetrics-1] == m.Widths[numberOfHMetrics-2] {
		numberOfHMetrics--
	}

	buf := make([]byte, 0, numberOfHMetrics*4+(n-numberOfHMetrics)*2)
	for i := 0; i < n; i++ {
		if i < numberOfHMetrics {
			buf = append(buf, byte(m.Widths[i]>>8), byte(m.Widths[i]))
		}
		lsb := uint16(m.LSB[i])
		buf = append(buf, byte(lsb>>8), byte(lsb))
	}
	return buf, numberOfHMetrics
}

// LSBOffset returns the byte offset of glyphId's left side bearing within
// the raw "hmtx" table bytes, without decoding the whole table. This lets
// callers that only need the LSB (the outline builder, in particular)
// avoid a full hmtx decode.
func LSBOffset(glyphID, numberOfHMetrics int) int {
	if glyphID < numberOfHMetrics {
		return glyphID*4 + 2
	}
	return numberOfHMetrics*4 + (glyphID-numberOfHMetrics)*2
}

// ReadLSB reads a single glyph's left side bearing directly from raw "hmtx"
// bytes using LSBOffset.
func ReadLSB(data []byte, glyphID, numberOfHMetrics int) (int16, error) {
	off := LSBOffset(glyphID, numberOfHMetrics)
	if off+2 > len(data) {
		return 0, &parser.InvalidFontError{SubSystem: "sfnt/hmtx", Reason: "lsb offset out of range"}
	}
	return int16(uint16(data[off])<<8 | uint16(data[off+1])), nil
}

// ReadAdvanceWidth reads a single glyph's advance width directly from raw
// "hmtx" bytes, falling back to the last long entry for glyphs beyond
// numberOfHMetrics.
func ReadAdvanceWidth(data []byte, glyphID, numberOfHMetrics int) (uint16, error) {
	idx := glyphID
	if idx >= numberOfHMetrics {
		idx = numberOfHMetrics - 1
	}
	if idx < 0 {
		return 0, &parser.InvalidFontError{SubSystem: "sfnt/hmtx", Reason: "empty hmtx table"}
	}
	off := idx * 4
	if off+2 > len(data) {
		return 0, &parser.InvalidFontError{SubSystem: "sfnt/hmtx", Reason: "advance width offset out of range"}
	}
	return uint16(data[off])<<8 | uint16(data[off+1]), nil
}
