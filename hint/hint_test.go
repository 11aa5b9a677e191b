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

package hint

import (
	"testing"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/internal/testfont"
)

func sampleFontBytes() []byte {
	return testfont.Build([]testfont.Glyph{
		{},
		{Codepoint: 'A', Advance: 500, LSB: 10, Simple: &glyf.SimpleUnpacked{
			Contours: []glyf.Contour{{
				{X: 0, Y: 0, OnCurve: true},
				{X: 500, Y: 0, OnCurve: true},
				{X: 250, Y: 500, OnCurve: true},
			}},
		}},
	})
}

func TestCheckNoHintingPrograms(t *testing.T) {
	data := sampleFontBytes()
	f, err := fontfile.Parse(data)
	if err != nil {
		t.Fatalf("fontfile.Parse: %v", err)
	}
	info := Check(f)
	if info.HasTrueTypeHints {
		t.Errorf("expected no TrueType hinting programs in a synthetic font without fpgm/prep/cvt")
	}
	if info.HasCFFHints {
		t.Errorf("expected no CFF hints in a TrueType-only font")
	}
}

func TestGetOutlinesReturnsOnePathPerPpem(t *testing.T) {
	data := sampleFontBytes()
	paths, err := GetOutlines(data, 1, []float64{12, 24, 48})
	if err != nil {
		t.Fatalf("GetOutlines: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("len(paths) = %d, want 3", len(paths))
	}
}

func TestGetOutlinesOutOfRangeGlyphIsEmpty(t *testing.T) {
	data := sampleFontBytes()
	paths, err := GetOutlines(data, 9999, []float64{12})
	if err != nil {
		t.Fatalf("GetOutlines: %v", err)
	}
	if len(paths) != 1 || paths[0] != "" {
		t.Errorf("expected a single empty path for an out-of-range glyph id, got %+v", paths)
	}
}
