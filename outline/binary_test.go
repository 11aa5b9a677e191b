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
	"testing"
)

func sampleSet() *OutlineSet {
	return &OutlineSet{
		UnitsPerEm: 1000,
		NumGlyphs:  1,
		Outlines: []GlyphOutline{
			{
				GlyphID:      0,
				Name:         "U+0041",
				Path:         "M0,0L10,0Z",
				AdvanceWidth: 500,
				Bounds:       &GlyphBounds{XMin: 0, YMin: 0, XMax: 10, YMax: 10},
			},
		},
	}
}

func TestEncodeBatchHeader(t *testing.T) {
	set := sampleSet()
	data := set.EncodeBatch(0, 1)

	if len(data) < 10 {
		t.Fatalf("batch too short for header: %d bytes", len(data))
	}
	totalGlyphs := binary.LittleEndian.Uint32(data[0:4])
	batchCount := binary.LittleEndian.Uint32(data[4:8])
	unitsPerEm := binary.LittleEndian.Uint16(data[8:10])

	if totalGlyphs != 1 {
		t.Errorf("totalGlyphs = %d, want 1", totalGlyphs)
	}
	if batchCount != 1 {
		t.Errorf("batchCount = %d, want 1", batchCount)
	}
	if unitsPerEm != 1000 {
		t.Errorf("unitsPerEm = %d, want 1000", unitsPerEm)
	}
}

func TestEncodeBatchGlyphRecord(t *testing.T) {
	set := sampleSet()
	data := set.EncodeBatch(0, 1)
	rec := data[10:]

	glyphID := binary.LittleEndian.Uint32(rec[0:4])
	advance := math.Float32frombits(binary.LittleEndian.Uint32(rec[4:8]))
	hasBounds := rec[8]
	if glyphID != 0 {
		t.Errorf("glyphID = %d, want 0", glyphID)
	}
	if advance != 500 {
		t.Errorf("advanceWidth = %v, want 500", advance)
	}
	if hasBounds != 1 {
		t.Fatalf("hasBounds = %d, want 1", hasBounds)
	}

	b := rec[9:25]
	xMin := math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
	yMax := math.Float32frombits(binary.LittleEndian.Uint32(b[12:16]))
	if xMin != 0 {
		t.Errorf("xMin = %v, want 0", xMin)
	}
	if yMax != 10 {
		t.Errorf("yMax = %v, want 10", yMax)
	}

	rest := rec[25:]
	nameLen := binary.LittleEndian.Uint16(rest[0:2])
	name := string(rest[2 : 2+nameLen])
	if name != "U+0041" {
		t.Errorf("name = %q, want U+0041", name)
	}
	rest = rest[2+nameLen:]
	pathLen := binary.LittleEndian.Uint32(rest[0:4])
	path := string(rest[4 : 4+pathLen])
	if path != "M0,0L10,0Z" {
		t.Errorf("path = %q, want M0,0L10,0Z", path)
	}
}

func TestEncodeBatchNoBounds(t *testing.T) {
	set := &OutlineSet{
		UnitsPerEm: 1000,
		NumGlyphs:  1,
		Outlines:   []GlyphOutline{{GlyphID: 5, Name: "", Path: "", AdvanceWidth: 0}},
	}
	data := set.EncodeBatch(0, 1)
	rec := data[10:]
	if rec[8] != 0 {
		t.Errorf("hasBounds = %d, want 0 for a glyph with no Bounds", rec[8])
	}
}

func TestEncodeBatchSaturatingOffsetAndLimit(t *testing.T) {
	set := sampleSet()

	// offset past the end yields an empty batch, not an error
	data := set.EncodeBatch(100, 10)
	batchCount := binary.LittleEndian.Uint32(data[4:8])
	if batchCount != 0 {
		t.Errorf("batchCount = %d, want 0 for an out-of-range offset", batchCount)
	}
	if len(data) != 10 {
		t.Errorf("expected only the 10-byte header, got %d bytes", len(data))
	}

	// negative limit means "to the end"
	data = set.EncodeBatch(0, -1)
	batchCount = binary.LittleEndian.Uint32(data[4:8])
	if batchCount != 1 {
		t.Errorf("batchCount = %d, want 1 for a negative (unbounded) limit", batchCount)
	}

	// negative offset clamps to zero
	data = set.EncodeBatch(-5, 1)
	batchCount = binary.LittleEndian.Uint32(data[4:8])
	if batchCount != 1 {
		t.Errorf("batchCount = %d, want 1 for a negative offset clamped to 0", batchCount)
	}
}
