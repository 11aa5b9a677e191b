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

// Package editor builds the structured, per-glyph view a font editor UI
// drives: contours as command lists rather than path strings, and composite
// glyphs resolved recursively into their components.
package editor

import (
	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/hhea"
	"github.com/typebrew/fontcore/outline"
)

// maxDepth bounds composite recursion; nesting beyond this returns an
// absent nested outline rather than failing the whole call.
const maxDepth = 5

// ComponentOffset is one direct component of a composite glyph, with its
// placement offset and, unless the recursion bound was hit, the component's
// own resolved outline.
type ComponentOffset struct {
	ComponentGlyphID uint32
	XOffset, YOffset float32
	Outline          *GlyphOutlineData // nil if unresolvable or depth exceeded
}

// GlyphOutlineData is the editor's structured view of a single glyph.
type GlyphOutlineData struct {
	GlyphID           uint32
	Contours          []outline.Contour // empty for composites
	AdvanceWidth      float32
	LeftSideBearing   float32
	Bounds            *outline.GlyphBounds
	IsComposite       bool
	ComponentGlyphIDs []uint32
	Components        []ComponentOffset
}

// Build constructs the GlyphOutlineData for glyphID.
func Build(f *fontfile.Font, glyphID uint32) (*GlyphOutlineData, error) {
	headInfo, err := f.Head()
	if err != nil {
		return nil, err
	}
	maxpInfo, err := f.Maxp()
	if err != nil {
		return nil, err
	}
	hheaInfo, err := f.Hhea()
	if err != nil {
		return nil, err
	}
	hmtxData, err := f.HmtxBytes()
	if err != nil {
		return nil, err
	}
	glyphs, err := f.Glyf(headInfo)
	if err != nil {
		return nil, err
	}
	return build(glyphs, hmtxData, int(hheaInfo.NumOfLongHorMetrics), int(maxpInfo.NumGlyphs), glyphID, 0)
}

func build(glyphs glyf.Glyphs, hmtxData []byte, numberOfHMetrics, numGlyphs int, glyphID uint32, depth int) (*GlyphOutlineData, error) {
	gid := int(glyphID)
	if gid < 0 || gid >= len(glyphs) || glyphs[gid] == nil {
		return nil, nil
	}
	g := glyphs[gid]

	out := &GlyphOutlineData{GlyphID: glyphID}
	if width, err := hhea.ReadAdvanceWidth(hmtxData, gid, numberOfHMetrics); err == nil {
		out.AdvanceWidth = float32(width)
	}
	if lsb, err := hhea.ReadLSB(hmtxData, gid, numberOfHMetrics); err == nil {
		out.LeftSideBearing = float32(lsb)
	}

	switch data := g.Data.(type) {
	case glyf.SimpleGlyph:
		unpacked, err := data.Unpack()
		if err != nil {
			return out, nil
		}
		var pen outline.StructuredPen
		bounds := &outline.BoundsPen{Pen: &pen}
		outline.WalkSimple(unpacked.Contours, bounds)
		out.Contours = pen.Contours
		if bounds.Bounds != (outline.Bounds{}) {
			out.Bounds = &outline.GlyphBounds{
				XMin: bounds.Bounds.XMin,
				YMin: bounds.Bounds.YMin,
				XMax: bounds.Bounds.XMax,
				YMax: bounds.Bounds.YMax,
			}
		}

	case glyf.CompositeGlyph:
		out.IsComposite = true
		offsets := glyf.ParseComponentOffsets(data)
		out.ComponentGlyphIDs = make([]uint32, len(offsets))
		out.Components = make([]ComponentOffset, len(offsets))
		for i, off := range offsets {
			out.ComponentGlyphIDs[i] = uint32(off.GlyphID)
			co := ComponentOffset{
				ComponentGlyphID: uint32(off.GlyphID),
				XOffset:          float32(off.X),
				YOffset:          float32(off.Y),
			}
			if depth+1 < maxDepth {
				if nested, err := build(glyphs, hmtxData, numberOfHMetrics, numGlyphs, uint32(off.GlyphID), depth+1); err == nil {
					co.Outline = nested
				}
			}
			out.Components[i] = co
		}
	}

	return out, nil
}
