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

package fontcore

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/internal/testfont"
	"github.com/typebrew/fontcore/rewrite"
)

func writeTestFont(t *testing.T, numGlyphs int) string {
	t.Helper()
	glyphs := make([]testfont.Glyph, numGlyphs)
	glyphs[0] = testfont.Glyph{}
	for i := 1; i < numGlyphs; i++ {
		glyphs[i] = testfont.Glyph{
			Codepoint: rune('A' + i - 1),
			Advance:   500,
			LSB:       10,
			Simple: &glyf.SimpleUnpacked{Contours: []glyf.Contour{{
				{X: 0, Y: 0, OnCurve: true},
				{X: 500, Y: 0, OnCurve: true},
				{X: 250, Y: 500, OnCurve: true},
			}}},
		}
	}
	data := testfont.Build(glyphs)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.ttf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestParseFont(t *testing.T) {
	path := writeTestFont(t, 3)
	core := New()

	meta, err := core.ParseFont(path)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	if meta.NumGlyphs != 3 {
		t.Errorf("NumGlyphs = %d, want 3", meta.NumGlyphs)
	}
	if meta.FamilyName != "Test Sans" {
		t.Errorf("FamilyName = %q, want Test Sans", meta.FamilyName)
	}
	if meta.StyleName != "Regular" {
		t.Errorf("StyleName = %q, want Regular", meta.StyleName)
	}
}

func TestGetGlyphOutlinesBinaryUnitsPerEm(t *testing.T) {
	path := writeTestFont(t, 2)
	core := New()

	data, err := core.GetGlyphOutlinesBinary(path, 0, -1)
	if err != nil {
		t.Fatalf("GetGlyphOutlinesBinary: %v", err)
	}
	if len(data) < 10 {
		t.Fatalf("batch too short: %d bytes", len(data))
	}
	unitsPerEm := binary.LittleEndian.Uint16(data[8:10])
	if unitsPerEm != 1000 {
		t.Errorf("unitsPerEm = %d, want 1000", unitsPerEm)
	}
}

func TestSaveGlyphOutlineAddsNewGlyph(t *testing.T) {
	path := writeTestFont(t, 100)
	core := New()

	beforeMeta, err := core.ParseFont(path)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	if beforeMeta.NumGlyphs != 100 {
		t.Fatalf("expected 100 glyphs before the edit, got %d", beforeMeta.NumGlyphs)
	}

	if err := core.SaveGlyphOutline(path, 100, "M0,0L500,0L250,500Z", "glyf"); err != nil {
		t.Fatalf("SaveGlyphOutline: %v", err)
	}

	afterMeta, err := core.ParseFont(path)
	if err != nil {
		t.Fatalf("ParseFont after edit: %v", err)
	}
	if afterMeta.NumGlyphs != 101 {
		t.Fatalf("NumGlyphs after adding glyph 100 = %d, want 101", afterMeta.NumGlyphs)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	f, err := fontfile.Parse(data)
	if err != nil {
		t.Fatalf("fontfile.Parse: %v", err)
	}
	headInfo, err := f.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	offsets, err := f.LocaOffsets(headInfo)
	if err != nil {
		t.Fatalf("LocaOffsets: %v", err)
	}
	if len(offsets) != 102 {
		t.Fatalf("loca entries = %d, want 102 (101 glyphs + sentinel)", len(offsets))
	}
	for i, off := range offsets {
		if off%4 != 0 {
			t.Errorf("loca offset %d = %d is not a multiple of 4", i, off)
		}
		if i > 0 && off < offsets[i-1] {
			t.Errorf("loca offsets are not monotonic at index %d", i)
		}
	}

	glyphData, err := core.GetGlyphOutlineData(path, 100)
	if err != nil {
		t.Fatalf("GetGlyphOutlineData: %v", err)
	}
	if glyphData.IsComposite {
		t.Fatalf("new glyph should be simple, not composite")
	}
	if len(glyphData.Contours) != 1 || len(glyphData.Contours[0]) == 0 {
		t.Fatalf("expected a drawn contour for the new glyph, got %+v", glyphData.Contours)
	}
}

func TestSaveGlyphOutlineRejectsCubic(t *testing.T) {
	path := writeTestFont(t, 2)
	core := New()
	err := core.SaveGlyphOutline(path, 1, "M0,0C1,1 2,2 3,3Z", "glyf")
	if err == nil {
		t.Fatalf("expected an error saving a cubic path into a glyf glyph")
	}
}

func TestUpdateNameTablePreservesOtherRecords(t *testing.T) {
	path := writeTestFont(t, 2)
	core := New()

	before, err := core.GetTableContent(path, "name")
	if err != nil {
		t.Fatalf("GetTableContent(name): %v", err)
	}

	if err := core.UpdateNameTable(path, rewrite.NamePatch{NameID: 1, PlatformID: 3, Value: "Renamed Sans"}); err != nil {
		t.Fatalf("UpdateNameTable: %v", err)
	}

	meta, err := core.ParseFont(path)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	if meta.FamilyName != "Renamed Sans" {
		t.Errorf("FamilyName = %q, want Renamed Sans", meta.FamilyName)
	}
	if meta.StyleName != "Regular" {
		t.Errorf("StyleName = %q, want Regular (unchanged)", meta.StyleName)
	}

	after, err := core.GetTableContent(path, "name")
	if err != nil {
		t.Fatalf("GetTableContent(name) after edit: %v", err)
	}
	if string(before) == string(after) {
		t.Errorf("expected the name table JSON to change after the edit")
	}
}

func TestUpdateHeadTableWithWarmOutlineCache(t *testing.T) {
	path := writeTestFont(t, 2)
	core := New()

	// populate the outline cache before the edit
	if _, err := core.GetGlyphOutlinesBinary(path, 0, -1); err != nil {
		t.Fatalf("GetGlyphOutlinesBinary: %v", err)
	}

	bold := true
	if err := core.UpdateHeadTable(path, rewrite.HeadPatch{IsBold: &bold}); err != nil {
		t.Fatalf("UpdateHeadTable: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	f, err := fontfile.Parse(data)
	if err != nil {
		t.Fatalf("fontfile.Parse: %v", err)
	}
	headInfo, err := f.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if !headInfo.IsBold {
		t.Errorf("expected IsBold to be true after the patch")
	}
}
