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

package cmap

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"github.com/typebrew/fontcore/glyph"
)

// Format4 represents a format 4 cmap subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
//
// The binary encoding is most efficient if consecutive code points map to
// consecutive glyph IDs.
type Format4 map[uint16]glyph.ID

func decodeFormat4(in []byte, code2rune func(c int) rune) (Subtable, error) {
	if code2rune == nil {
		code2rune = unicode
	}

	if len(in)%2 != 0 || len(in) < 16 {
		return nil, errMalformedSubtable
	}

	segCountX2 := int(in[6])<<8 | int(in[7])
	if segCountX2%2 != 0 || 4*segCountX2+16 > len(in) {
		return nil, errMalformedSubtable
	}
	segCount := segCountX2 / 2

	words := make([]uint16, 0, (len(in)-14)/2)
	for i := 14; i < len(in); i += 2 {
		words = append(words, uint16(in[i])<<8|uint16(in[i+1]))
	}
	endCode := words[:segCount]
	// reservedPad omitted
	startCode := words[segCount+1 : 2*segCount+1]
	idDelta := words[2*segCount+1 : 3*segCount+1]
	idRangeOffset := words[3*segCount+1 : 4*segCount+1]
	glyphIDArray := words[4*segCount+1:]

	cmap := Format4{}
	prevEnd := uint32(0)
	for k := 0; k < segCount; k++ {
		start := uint32(startCode[k])
		end := uint32(endCode[k]) + 1
		if start < prevEnd || end <= start {
			return nil, errMalformedSubtable
		}
		prevEnd = end

		if idRangeOffset[k] == 0 {
			delta := idDelta[k]
			for idx := start; idx < end; idx++ {
				c := glyph.ID(uint16(idx) + delta)
				if c != 0 {
					cmap[uint16(code2rune(int(idx)))] = c
				}
			}
		} else {
			d := int(idRangeOffset[k])/2 - (segCount - k)
			if d < 0 || d+int(end-start) > len(glyphIDArray) {
				if start == 0xFFFF {
					// some fonts have invalid data for the last segment
					continue
				}
				return nil, errMalformedSubtable
			}
			for idx := start; idx < end; idx++ {
				c := glyph.ID(glyphIDArray[d+int(idx-start)])
				if c != 0 {
					cmap[uint16(code2rune(int(idx)))] = c
				}
			}
		}
	}
	return cmap, nil
}

// Lookup implements the Subtable interface.
func (cmap Format4) Lookup(r rune) glyph.ID {
	return cmap[uint16(r)]
}

// Encode encodes the subtable into a byte slice.
//
// Segments are chosen greedily from the low end of the code-point range
// upward: each run of consecutive codes with a constant glyphID delta
// becomes one delta segment, falling back to an explicit glyph-array
// segment once a run gets too short to be worth a delta. This gives up
// the last few bytes a globally optimal repacking could save, but keeps
// the segment search a single linear pass.
func (cmap Format4) Encode(language uint16) []byte {
	segments := greedySegments(cmap)

	var StartCode, EndCode, IDDelta, IDRangeOffsets, GlyphIDArray []uint16
	for i, s := range segments {
		StartCode = append(StartCode, s.first)
		EndCode = append(EndCode, s.last)
		IDDelta = append(IDDelta, s.delta)
		if !s.useValues {
			IDRangeOffsets = append(IDRangeOffsets, 0)
		} else {
			offs := 2 * (len(segments) - i + len(GlyphIDArray))
			if offs > 65535 {
				panic("cmap: too many mappings for a format 4 subtable")
			}
			IDRangeOffsets = append(IDRangeOffsets, uint16(offs))
			for c := uint32(s.first); c <= uint32(s.last); c++ {
				GlyphIDArray = append(GlyphIDArray, uint16(cmap[uint16(c)]))
			}
		}
	}

	segCount := len(StartCode)
	sel := bits.Len(uint(segCount))
	data := &cmapFormat4{
		Format:        4,
		Length:        uint16(2 * (8 + 4*segCount + len(GlyphIDArray))),
		Language:      language,
		SegCountX2:    uint16(2 * segCount),
		SearchRange:   1 << sel,
		EntrySelector: uint16(sel - 1),
	}
	data.RangeShift = data.SegCountX2 - data.SearchRange

	EndCode = append(EndCode, 0) // ReservedPad

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.BigEndian, data)
	for _, x := range [][]uint16{EndCode, StartCode, IDDelta, IDRangeOffsets, GlyphIDArray} {
		_ = binary.Write(buf, binary.BigEndian, x)
	}

	return buf.Bytes()
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap Format4) CodeRange() (low, high rune) {
	if len(cmap) == 0 {
		return
	}
	low = 1<<31 - 1
	for k := range cmap {
		if rune(k) < low {
			low = rune(k)
		}
		if rune(k) > high {
			high = rune(k)
		}
	}
	return
}

type segment struct {
	first     uint16
	last      uint16
	delta     uint16
	useValues bool
}

// greedySegments walks the code-point space from 0 to 0xFFFF, at each
// position picking the longest run that can be encoded as a single delta
// segment before falling back to an explicit glyph-array segment.
func greedySegments(cmap Format4) []*segment {
	var segs []*segment
	v := uint32(0)
	for v <= 0xFFFF {
		start := v
		var skip uint32
		for start < 0xFFFF && cmap[uint16(start)] == 0 {
			start++
			skip++
		}

		delta := uint16(cmap[uint16(start)]) - uint16(start)
		if start == 0xFFFF {
			segs = append(segs, &segment{first: 0xFFFF, last: 0xFFFF, delta: delta})
			break
		}

		end := start + 1
		for end < 0xFFFF && uint16(cmap[uint16(end)])-uint16(end) == delta {
			end++
		}

		if end-start >= 4 || start == 0xFFFE {
			segs = append(segs, &segment{first: uint16(start), last: uint16(end - 1), delta: delta})
			v = end
			continue
		}

		// explicit glyph-array segment: extend while runs stay short
		prevDelta := delta
		numDelta := 1
		numNotdef := 0
		e := start + 1
		for e < 0xFFFF {
			gid := cmap[uint16(e)]
			thisDelta := uint16(gid) - uint16(e)
			if thisDelta == prevDelta {
				numDelta++
			} else {
				prevDelta = thisDelta
				numDelta = 1 + numNotdef
			}
			if gid == 0 {
				numNotdef++
			} else {
				numNotdef = 0
			}
			if numDelta == 5 || numNotdef == 5 {
				segs = append(segs, &segment{first: uint16(start), last: uint16(e - 5), useValues: true})
				v = e - 4
				goto next
			}
			e++
		}
		segs = append(segs, &segment{first: uint16(start), last: uint16(e - uint32(numNotdef) - 1), useValues: true})
		v = e
	next:
	}
	return segs
}

type cmapFormat4 struct {
	Format        uint16
	Length        uint16
	Language      uint16
	SegCountX2    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}
