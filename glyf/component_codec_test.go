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

package glyf

import (
	"testing"

	"github.com/typebrew/fontcore/glyph"
)

func narrowComponent(gid glyph.ID, x, y int8, more bool) GlyphComponent {
	flags := FlagArgsAreXYValues
	if more {
		flags |= FlagMoreComponents
	}
	return GlyphComponent{
		Flags:      flags,
		GlyphIndex: gid,
		Data:       []byte{byte(x), byte(y)},
	}
}

func TestParseComponentOffsetsNarrow(t *testing.T) {
	g := CompositeGlyph{Components: []GlyphComponent{
		narrowComponent(3, 50, -30, true),
		narrowComponent(4, -5, 5, false),
	}}

	got := ParseComponentOffsets(g)
	want := []ComponentOffset{
		{GlyphID: 3, X: 50, Y: -30},
		{GlyphID: 4, X: -5, Y: 5},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseComponentOffsetsPointMatched(t *testing.T) {
	// ARGS_ARE_XY_VALUES unset: the two bytes are point-match indices, not
	// an offset, so the reported offset is zero.
	g := CompositeGlyph{Components: []GlyphComponent{
		{Flags: 0, GlyphIndex: 7, Data: []byte{2, 9}},
	}}
	got := ParseComponentOffsets(g)
	if got[0].X != 0 || got[0].Y != 0 {
		t.Errorf("point-matched component: got offset (%v,%v), want (0,0)", got[0].X, got[0].Y)
	}
}

func TestPatchComponentOffsetsRoundTrip(t *testing.T) {
	g := CompositeGlyph{Components: []GlyphComponent{
		narrowComponent(3, 10, 10, true),
		narrowComponent(4, 0, 0, false),
	}}

	patched := PatchComponentOffsets(g, map[int]ComponentOffset{
		1: {X: 20, Y: -15},
	})

	got := ParseComponentOffsets(patched)
	if got[0].X != 10 || got[0].Y != 10 {
		t.Errorf("unpatched component changed: got %+v", got[0])
	}
	if got[1].X != 20 || got[1].Y != -15 {
		t.Errorf("patched component: got %+v, want (20,-15)", got[1])
	}

	// MORE_COMPONENTS bits must survive exactly as they were on the
	// original stream, regardless of which index was patched.
	if patched.Components[0].Flags&FlagMoreComponents == 0 {
		t.Errorf("component 0 lost its MORE_COMPONENTS flag")
	}
	if patched.Components[1].Flags&FlagMoreComponents != 0 {
		t.Errorf("component 1 gained a MORE_COMPONENTS flag it never had")
	}
}

func TestPatchComponentOffsetsPromotesToWords(t *testing.T) {
	g := CompositeGlyph{Components: []GlyphComponent{
		narrowComponent(3, 10, 10, false),
	}}

	patched := PatchComponentOffsets(g, map[int]ComponentOffset{
		0: {X: 300, Y: -200}, // outside int8 range, must promote to words
	})

	c := patched.Components[0]
	if c.Flags&FlagArg1And2AreWords == 0 {
		t.Fatalf("expected ARG_1_AND_2_ARE_WORDS to be set for out-of-range offset")
	}
	if len(c.Data) < 4 {
		t.Fatalf("expected 4 bytes of word-width args, got %d", len(c.Data))
	}

	got := ParseComponentOffsets(patched)
	if got[0].X != 300 || got[0].Y != -200 {
		t.Errorf("round trip after promotion: got %+v, want (300,-200)", got[0])
	}
}

func TestPatchComponentOffsetsPreservesTransform(t *testing.T) {
	// WE_HAVE_A_SCALE contributes two extra bytes of transform data after
	// the x/y args; patching the offset must not disturb them.
	transform := []byte{0x40, 0x00} // 2.14 fixed-point scale of 1.0
	c := GlyphComponent{
		Flags:      FlagArgsAreXYValues | FlagWeHaveAScale,
		GlyphIndex: 9,
		Data:       append([]byte{5, 5}, transform...),
	}
	g := CompositeGlyph{Components: []GlyphComponent{c}}

	patched := PatchComponentOffsets(g, map[int]ComponentOffset{0: {X: 1, Y: 1}})
	got := patched.Components[0]
	if len(got.Data) != 4 {
		t.Fatalf("expected 2 bytes of narrow args + 2 bytes transform, got %d bytes", len(got.Data))
	}
	if got.Data[2] != transform[0] || got.Data[3] != transform[1] {
		t.Errorf("transform bytes not preserved verbatim: got %v, want %v", got.Data[2:], transform)
	}
}
