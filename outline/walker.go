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
	"fmt"

	"github.com/typebrew/fontcore/cmap"
	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/hhea"
)

// GlyphBounds is the bounding box of a glyph's drawn outline, in font
// design units, computed over every coordinate visited while drawing
// (including quadratic and cubic control points).
type GlyphBounds struct {
	XMin, YMin, XMax, YMax float64
}

// GlyphOutline is one glyph's contribution to an OutlineSet: everything a
// host needs to draw or label the glyph without going back to the font
// bytes.
type GlyphOutline struct {
	GlyphID      uint32
	Name         string // "U+XXXX" from the first cmap codepoint, or empty
	Path         string
	AdvanceWidth float32
	Bounds       *GlyphBounds // nil if the glyph drew no points
}

// OutlineSet is the per-font result of walking every glyph once. Glyphs
// whose drawn path is empty (whitespace, marks with no visible ink) are
// omitted, and so are composite glyphs, whose components are not drawn
// into them; Outlines is therefore usually shorter than NumGlyphs.
type OutlineSet struct {
	Outlines   []GlyphOutline
	UnitsPerEm uint16
	NumGlyphs  int
}

// Walk decodes every table the walk needs and extracts the drawn outline of
// every simple glyph in the font, skipping glyphs that fail to decode or draw
// nothing rather than failing the whole walk. Composite glyphs are skipped
// as well: they are not flattened, so they get no entry.
func Walk(f *fontfile.Font) (*OutlineSet, error) {
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

	names := glyphNames(f)

	numGlyphs := int(maxpInfo.NumGlyphs)
	out := &OutlineSet{UnitsPerEm: headInfo.UnitsPerEm, NumGlyphs: numGlyphs}

	for gid := 0; gid < numGlyphs; gid++ {
		if gid >= len(glyphs) {
			break
		}
		entry, ok := drawGlyph(glyphs[gid])
		if !ok {
			continue
		}
		entry.GlyphID = uint32(gid)
		entry.Name = names[gid]
		if width, err := hhea.ReadAdvanceWidth(hmtxData, gid, int(hheaInfo.NumOfLongHorMetrics)); err == nil {
			entry.AdvanceWidth = float32(width)
		}
		out.Outlines = append(out.Outlines, entry)
	}
	return out, nil
}

// glyphNames builds the "U+XXXX" label for every glyph id that a cmap
// subtable maps a codepoint to. Glyphs with no cmap entry are left
// unlabeled; a font with no usable cmap subtable yields an empty map.
func glyphNames(f *fontfile.Font) map[int]string {
	names := make(map[int]string)
	cm, err := f.Cmap()
	if err != nil {
		return names
	}
	first, err := cmap.FirstCodepoints(cm)
	if err != nil {
		return names
	}
	for gid, r := range first {
		names[int(gid)] = fmt.Sprintf("U+%04X", r)
	}
	return names
}

// drawGlyph runs the string pen over a single decoded glyph and reports
// whether it produced a non-empty path. Composite glyphs are not flattened
// here: the walker only emits a glyph's own simple-glyph outline. A
// composite glyph's direct ink comes from its components, which are walked
// in their own right by gid.
func drawGlyph(g *glyf.Glyph) (GlyphOutline, bool) {
	simple, ok := g.Data.(glyf.SimpleGlyph)
	if !ok {
		return GlyphOutline{}, false
	}
	unpacked, err := simple.Unpack()
	if err != nil || len(unpacked.Contours) == 0 {
		return GlyphOutline{}, false
	}

	var pen StringPen
	bounds := &BoundsPen{Pen: &pen}
	WalkSimple(unpacked.Contours, bounds)

	path := pen.String()
	if path == "" {
		return GlyphOutline{}, false
	}

	return GlyphOutline{
		Path: path,
		Bounds: &GlyphBounds{
			XMin: bounds.Bounds.XMin,
			YMin: bounds.Bounds.YMin,
			XMax: bounds.Bounds.XMax,
			YMax: bounds.Bounds.YMax,
		},
	}, true
}
