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

package glyf

import (
	"fmt"
	"strings"

	"github.com/typebrew/fontcore/glyph"
	"github.com/typebrew/fontcore/parser"
)

// CompositeGlyph represents a glyph that is built from multiple component glyphs.
// Unlike simple glyphs which contain their own outline data, composite glyphs
// reference other glyphs and specify how to transform and position them.
type CompositeGlyph struct {
	Components   []GlyphComponent // The component glyphs that make up this composite
	Instructions []byte           // TrueType instructions for the composite glyph
}

// GlyphComponent represents a single component of a composite glyph.
// Each component references another glyph by ID and contains transformation
// data in its Data field that specifies how to position and transform the
// referenced glyph when rendering the composite.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#composite-glyph-description
type GlyphComponent struct {
	Flags      ComponentFlag // Flags controlling how the component is processed
	GlyphIndex glyph.ID      // ID of the glyph to include as a component
	Data       []byte        // Raw transformation data (arguments and matrix values)
}

// ComponentFlag controls how a component glyph is processed within a composite.
// These flags determine the format of transformation data and how components
// are combined.
type ComponentFlag uint16

func (f ComponentFlag) String() string {
	var res []string
	if f&FlagArg1And2AreWords != 0 {
		res = append(res, "ARG_1_AND_2_ARE_WORDS")
	}
	if f&FlagArgsAreXYValues != 0 {
		res = append(res, "ARGS_ARE_XY_VALUES")
	}
	if f&FlagRoundXYToGrid != 0 {
		res = append(res, "ROUND_XY_TO_GRID")
	}
	if f&FlagWeHaveAScale != 0 {
		res = append(res, "WE_HAVE_A_SCALE")
	}
	if f&FlagMoreComponents != 0 {
		res = append(res, "MORE_COMPONENTS")
	}
	if f&FlagWeHaveAnXAndYScale != 0 {
		res = append(res, "WE_HAVE_AN_X_AND_Y_SCALE")
	}
	if f&FlagWeHaveATwoByTwo != 0 {
		res = append(res, "WE_HAVE_A_TWO_BY_TWO")
	}
	if f&FlagWeHaveInstructions != 0 {
		res = append(res, "WE_HAVE_INSTRUCTIONS")
	}
	if f&FlagUseMyMetrics != 0 {
		res = append(res, "USE_MY_METRICS")
	}
	if f&FlagOverlapCompound != 0 {
		res = append(res, "OVERLAP_COMPOUND")
	}
	if f&FlagScaledComponentOffset != 0 {
		res = append(res, "SCALED_COMPONENT_OFFSET")
	}
	if f&FlagUnscaledComponentOffset != 0 {
		res = append(res, "UNSCALED_COMPONENT_OFFSET")
	}
	if f&0xE010 != 0 {
		res = append(res, fmt.Sprintf("0x%04x", f&0xE010))
	}
	return strings.Join(res, "|")
}

// The recognized values for the ComponentFlag field.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#compositeGlyphFlags
const (
	FlagArg1And2AreWords        ComponentFlag = 0x0001 // Arguments are 16-bit signed values
	FlagArgsAreXYValues         ComponentFlag = 0x0002 // Arguments are x,y offsets rather than point numbers
	FlagRoundXYToGrid           ComponentFlag = 0x0004 // Round offset values to grid
	FlagWeHaveAScale            ComponentFlag = 0x0008 // Component has uniform scaling
	FlagMoreComponents          ComponentFlag = 0x0020 // More components follow this one
	FlagWeHaveAnXAndYScale      ComponentFlag = 0x0040 // Component has separate x and y scaling
	FlagWeHaveATwoByTwo         ComponentFlag = 0x0080 // Component has full 2x2 transformation matrix
	FlagWeHaveInstructions      ComponentFlag = 0x0100 // Composite glyph has instructions
	FlagUseMyMetrics            ComponentFlag = 0x0200 // Use this component's metrics for the composite
	FlagOverlapCompound         ComponentFlag = 0x0400 // Components overlap (used by some rasterizers)
	FlagScaledComponentOffset   ComponentFlag = 0x0800 // Apply scaling to offset values
	FlagUnscaledComponentOffset ComponentFlag = 0x1000 // Do not apply scaling to offset values
)

// decodeGlyphComposite decodes a composite glyph from binary data.
// It parses the component descriptions and optional instructions
// according to the TrueType glyf table format.
func decodeGlyphComposite(data []byte) (*CompositeGlyph, error) {
	var components []GlyphComponent
	done := false
	weHaveInstructions := false
	for !done {
		if len(data) < 4 {
			return nil, errIncompleteGlyph
		}

		flags := ComponentFlag(data[0])<<8 | ComponentFlag(data[1])
		glyphIndex := uint16(data[2])<<8 | uint16(data[3])
		data = data[4:]

		if flags&FlagWeHaveInstructions != 0 {
			weHaveInstructions = true
		}

		skip := 0
		if flags&FlagArg1And2AreWords != 0 {
			skip += 4
		} else {
			skip += 2
		}
		if flags&FlagWeHaveAScale != 0 {
			skip += 2
		} else if flags&FlagWeHaveAnXAndYScale != 0 {
			skip += 4
		} else if flags&FlagWeHaveATwoByTwo != 0 {
			skip += 8
		}
		if len(data) < skip {
			return nil, errIncompleteGlyph
		}
		args := data[:skip]
		data = data[skip:]

		components = append(components, GlyphComponent{
			Flags:      flags,
			GlyphIndex: glyph.ID(glyphIndex),
			Data:       args,
		})

		done = flags&FlagMoreComponents == 0
	}

	if weHaveInstructions && len(data) >= 2 {
		L := int(data[0])<<8 | int(data[1])
		data = data[2:]
		if len(data) > L {
			data = data[:L]
		}
	} else {
		data = nil
	}

	res := &CompositeGlyph{
		Components:   components,
		Instructions: data,
	}
	return res, nil
}

var errIncompleteGlyph = &parser.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "incomplete glyph",
}
