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

package editor

import (
	"testing"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/glyph"
	"github.com/typebrew/fontcore/internal/testfont"
)

// compositeOf builds a single-component composite glyph that places child
// at the origin with no scaling, the simplest possible reference.
func compositeOf(child glyph.ID) *glyf.CompositeGlyph {
	return &glyf.CompositeGlyph{
		Components: []glyf.GlyphComponent{
			{
				Flags:      glyf.FlagArgsAreXYValues,
				GlyphIndex: child,
				Data:       []byte{0, 0},
			},
		},
	}
}

func chainFont(t *testing.T) *fontfile.Font {
	t.Helper()
	leaf := &glyf.SimpleUnpacked{Contours: []glyf.Contour{{
		{X: 0, Y: 0, OnCurve: true},
		{X: 100, Y: 0, OnCurve: true},
		{X: 50, Y: 100, OnCurve: true},
	}}}

	// glyph 0: .notdef (empty)
	// glyph 1..6: each composite of the next glyph id
	// glyph 7: a simple leaf glyph (unreachable at the recursion bound)
	glyphs := make([]testfont.Glyph, 8)
	glyphs[0] = testfont.Glyph{}
	for i := 1; i <= 6; i++ {
		glyphs[i] = testfont.Glyph{Composite: compositeOf(glyph.ID(i + 1))}
	}
	glyphs[7] = testfont.Glyph{Simple: leaf, Advance: 100}

	data := testfont.Build(glyphs)
	f, err := fontfile.Parse(data)
	if err != nil {
		t.Fatalf("fontfile.Parse: %v", err)
	}
	return f
}

func TestBuildSimpleGlyph(t *testing.T) {
	f := chainFont(t)
	got, err := Build(f, 7)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.IsComposite {
		t.Fatalf("glyph 7 should not be composite")
	}
	if len(got.Contours) != 1 || len(got.Contours[0]) == 0 {
		t.Fatalf("expected a drawn contour, got %+v", got.Contours)
	}
}

func TestBuildCompositeDepthBound(t *testing.T) {
	f := chainFont(t)
	root, err := Build(f, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	node := root
	for level := 0; level < 4; level++ {
		if !node.IsComposite {
			t.Fatalf("level %d: expected a composite glyph", level)
		}
		if len(node.Components) != 1 {
			t.Fatalf("level %d: expected exactly one component, got %d", level, len(node.Components))
		}
		if node.Components[0].Outline == nil {
			t.Fatalf("level %d: expected the nested outline to be resolved", level)
		}
		node = node.Components[0].Outline
	}

	// node is now glyph 5 (nesting level 4, zero-indexed from the root at
	// level 0): its own component (glyph 6, nesting level 5) must be
	// present in the component list but have no resolved outline.
	if node.GlyphID != 5 {
		t.Fatalf("expected to have walked down to glyph 5, landed on glyph %d", node.GlyphID)
	}
	if len(node.Components) != 1 {
		t.Fatalf("expected glyph 5 to report its one component, got %d", len(node.Components))
	}
	if node.Components[0].ComponentGlyphID != 6 {
		t.Errorf("expected the unresolved component to reference glyph 6, got %d", node.Components[0].ComponentGlyphID)
	}
	if node.Components[0].Outline != nil {
		t.Errorf("expected the outline at nesting level 5 to be absent (recursion bound), got a resolved outline")
	}
}

func TestBuildUnknownGlyphID(t *testing.T) {
	f := chainFont(t)
	got, err := Build(f, 999)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != nil {
		t.Errorf("expected a nil result for an out-of-range glyph id, got %+v", got)
	}
}
