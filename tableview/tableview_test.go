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

package tableview

import (
	"testing"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/internal/testfont"
)

func testFont(t *testing.T) *fontfile.Font {
	t.Helper()
	data := testfont.Build([]testfont.Glyph{
		{},
		{Codepoint: 'A', Advance: 500, LSB: 10, Simple: &glyf.SimpleUnpacked{
			Contours: []glyf.Contour{{
				{X: 0, Y: 0, OnCurve: true},
				{X: 500, Y: 0, OnCurve: true},
				{X: 250, Y: 500, OnCurve: true},
			}},
		}},
	})
	f, err := fontfile.Parse(data)
	if err != nil {
		t.Fatalf("fontfile.Parse: %v", err)
	}
	return f
}

func TestGetHead(t *testing.T) {
	f := testFont(t)
	view, err := Get(f, "head")
	if err != nil {
		t.Fatalf("Get(head): %v", err)
	}
	m, ok := view.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", view)
	}
	if m["unitsPerEm"] != uint16(1000) {
		t.Errorf("unitsPerEm = %v, want 1000", m["unitsPerEm"])
	}
}

func TestGetMaxp(t *testing.T) {
	f := testFont(t)
	view, err := Get(f, "maxp")
	if err != nil {
		t.Fatalf("Get(maxp): %v", err)
	}
	m := view.(map[string]any)
	if m["numGlyphs"] != uint16(2) {
		t.Errorf("numGlyphs = %v, want 2", m["numGlyphs"])
	}
	if m["isTrueType"] != true {
		t.Errorf("isTrueType = %v, want true", m["isTrueType"])
	}
}

func TestGetName(t *testing.T) {
	f := testFont(t)
	view, err := Get(f, "name")
	if err != nil {
		t.Fatalf("Get(name): %v", err)
	}
	m := view.(map[string]any)
	records, ok := m["records"].([]NameRecordView)
	if !ok {
		t.Fatalf("expected []NameRecordView, got %T", m["records"])
	}
	found := false
	for _, r := range records {
		if r.NameID == 1 && r.Value == "Test Sans" {
			found = true
		}
	}
	if !found {
		t.Errorf("records missing the family name: %+v", records)
	}
}

func TestGetLoca(t *testing.T) {
	f := testFont(t)
	view, err := Get(f, "loca")
	if err != nil {
		t.Fatalf("Get(loca): %v", err)
	}
	m := view.(map[string]any)
	entries, ok := m["entries"].([]LocaEntry)
	if !ok {
		t.Fatalf("expected []LocaEntry, got %T", m["entries"])
	}
	// glyph 0 (.notdef) is empty, so it has zero length.
	if entries[0].Length != 0 {
		t.Errorf("entry 0 length = %d, want 0", entries[0].Length)
	}
	if entries[1].Length <= 0 {
		t.Errorf("entry 1 length = %d, want > 0", entries[1].Length)
	}
}

func TestGetUnknownTagFallsBackToRaw(t *testing.T) {
	f := testFont(t)
	view, err := Get(f, "cmap")
	if err != nil {
		t.Fatalf("Get(cmap): %v", err)
	}
	raw, ok := view.(RawView)
	if !ok {
		t.Fatalf("expected RawView for an untyped tag, got %T", view)
	}
	if raw.Tag != "cmap" || raw.SizeBytes == 0 {
		t.Errorf("unexpected RawView: %+v", raw)
	}
}

func TestGetMissingTagReturnsNil(t *testing.T) {
	f := testFont(t)
	view, err := Get(f, "vhea")
	if err != nil {
		t.Fatalf("Get(vhea): %v", err)
	}
	if view != nil {
		t.Errorf("expected nil view for a table the font does not have, got %v", view)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	f := testFont(t)
	data, err := JSON(f, "maxp")
	if err != nil {
		t.Fatalf("JSON(maxp): %v", err)
	}
	if len(data) == 0 {
		t.Errorf("expected non-empty JSON output")
	}
}
