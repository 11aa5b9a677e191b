// github.com/typebrew/fontcore - a library for reading and writing font files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

package outline

import (
	"encoding/binary"
	"math"
)

// EncodeBatch serialises a page of a font's OutlineSet into the little-endian
// binary format a host decodes into glyph outlines without round-tripping
// through JSON. offset and limit are saturating: an out-of-range offset
// yields an empty batch (batchCount=0), never an error.
func (s *OutlineSet) EncodeBatch(offset, limit int) []byte {
	n := len(s.Outlines)
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := offset + limit
	if limit < 0 || end > n {
		end = n
	}
	if end < offset {
		end = offset
	}
	page := s.Outlines[offset:end]

	buf := make([]byte, 0, 10+len(page)*32)
	var hdr [10]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(s.NumGlyphs))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(page)))
	binary.LittleEndian.PutUint16(hdr[8:10], s.UnitsPerEm)
	buf = append(buf, hdr[:]...)

	for _, g := range page {
		buf = appendGlyphRecord(buf, g)
	}
	return buf
}

func appendGlyphRecord(buf []byte, g GlyphOutline) []byte {
	var rec [4]byte

	binary.LittleEndian.PutUint32(rec[:], g.GlyphID)
	buf = append(buf, rec[:]...)

	binary.LittleEndian.PutUint32(rec[:], math.Float32bits(g.AdvanceWidth))
	buf = append(buf, rec[:]...)

	if g.Bounds != nil {
		buf = append(buf, 1)
		var b [16]byte
		binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(g.Bounds.XMin)))
		binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(g.Bounds.YMin)))
		binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(g.Bounds.XMax)))
		binary.LittleEndian.PutUint32(b[12:16], math.Float32bits(float32(g.Bounds.YMax)))
		buf = append(buf, b[:]...)
	} else {
		buf = append(buf, 0)
	}

	name := []byte(g.Name)
	var nameLen [2]byte
	binary.LittleEndian.PutUint16(nameLen[:], uint16(len(name)))
	buf = append(buf, nameLen[:]...)
	buf = append(buf, name...)

	path := []byte(g.Path)
	var pathLen [4]byte
	binary.LittleEndian.PutUint32(pathLen[:], uint32(len(path)))
	buf = append(buf, pathLen[:]...)
	buf = append(buf, path...)

	return buf
}
