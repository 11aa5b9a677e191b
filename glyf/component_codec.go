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
	"math"

	"github.com/typebrew/fontcore/glyph"
)

// ComponentOffset is a single entry of a composite glyph's component list,
// as seen by the table rewriter: the referenced glyph and its placement
// offset. Components positioned by point-matching (ARGS_ARE_XY_VALUES
// unset) report a zero offset, since their true placement depends on the
// referenced glyphs' point data.
type ComponentOffset struct {
	GlyphID glyph.ID
	X, Y    float64
}

// ParseComponentOffsets decodes the component stream of a composite glyph
// (the CompositeGlyph.Components slice) into the positions the rewriter
// cares about.
func ParseComponentOffsets(g CompositeGlyph) []ComponentOffset {
	out := make([]ComponentOffset, len(g.Components))
	for i, c := range g.Components {
		out[i].GlyphID = c.GlyphIndex
		if c.Flags&FlagArgsAreXYValues == 0 {
			continue
		}
		x, y := decodeArgs(c)
		out[i].X = float64(x)
		out[i].Y = float64(y)
	}
	return out
}

// decodeArgs reads the raw x/y argument pair at the front of c.Data,
// honouring the word/byte width chosen by FlagArg1And2AreWords.
func decodeArgs(c GlyphComponent) (int16, int16) {
	if c.Flags&FlagArg1And2AreWords != 0 {
		if len(c.Data) < 4 {
			return 0, 0
		}
		x := int16(uint16(c.Data[0])<<8 | uint16(c.Data[1]))
		y := int16(uint16(c.Data[2])<<8 | uint16(c.Data[3]))
		return x, y
	}
	if len(c.Data) < 2 {
		return 0, 0
	}
	return int16(int8(c.Data[0])), int16(int8(c.Data[1]))
}

// argWidth returns the number of bytes occupied by the x/y argument pair,
// given the flags that were in effect when c.Data was captured.
func argWidth(flags ComponentFlag) int {
	if flags&FlagArg1And2AreWords != 0 {
		return 4
	}
	return 2
}

// PatchComponentOffsets rewrites the x/y offsets of the components of a
// composite glyph at the given positions, leaving glyph IDs, transform
// bytes, and the instruction stream untouched. Positions not present in
// newOffsets are left unchanged. Components addressed by point-matching
// (ARGS_ARE_XY_VALUES unset) are converted to XY-value placement.
func PatchComponentOffsets(g CompositeGlyph, newOffsets map[int]ComponentOffset) CompositeGlyph {
	out := CompositeGlyph{
		Components:   make([]GlyphComponent, len(g.Components)),
		Instructions: g.Instructions,
	}
	for i, c := range g.Components {
		patch, ok := newOffsets[i]
		if !ok {
			out.Components[i] = c
			continue
		}

		transform := c.Data[argWidth(c.Flags):]

		x := int16(math.Round(patch.X))
		y := int16(math.Round(patch.Y))

		flags := c.Flags &^ (FlagArg1And2AreWords | FlagArgsAreXYValues)
		flags |= FlagArgsAreXYValues
		wide := x < -128 || x > 127 || y < -128 || y > 127
		if wide {
			flags |= FlagArg1And2AreWords
		}

		var args []byte
		if wide {
			args = []byte{byte(uint16(x) >> 8), byte(x), byte(uint16(y) >> 8), byte(y)}
		} else {
			args = []byte{byte(int8(x)), byte(int8(y))}
		}

		data := make([]byte, 0, len(args)+len(transform))
		data = append(data, args...)
		data = append(data, transform...)

		out.Components[i] = GlyphComponent{
			Flags:      flags | (c.Flags & FlagMoreComponents),
			GlyphIndex: c.GlyphIndex,
			Data:       data,
		}
	}
	// Preserve MORE_COMPONENTS bits exactly as they were (they encode
	// position in the stream, not anything the patch should alter).
	for i := range out.Components {
		out.Components[i].Flags = (out.Components[i].Flags &^ FlagMoreComponents) | (g.Components[i].Flags & FlagMoreComponents)
	}
	return out
}
