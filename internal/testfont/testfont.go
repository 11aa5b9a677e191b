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

// Package testfont builds small, fully valid sfnt files for tests across
// the core's packages, using the packages' own encoders rather than
// hand-written byte literals. The fonts it builds are intentionally tiny
// (a handful of glyphs) but exercise every table the core reads.
package testfont

import (
	"bytes"

	"github.com/typebrew/fontcore/cmap"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/glyph"
	"github.com/typebrew/fontcore/head"
	"github.com/typebrew/fontcore/header"
	"github.com/typebrew/fontcore/hhea"
	"github.com/typebrew/fontcore/maxp"
	"github.com/typebrew/fontcore/name"
	"github.com/typebrew/fontcore/os2"
	"github.com/typebrew/fontcore/post"
)

// Glyph describes one glyph to bake into a Build font, keyed by its
// intended glyph id (ids must be assigned contiguously starting at 0 by the
// caller).
type Glyph struct {
	Codepoint rune // 0 means "no cmap entry"
	Advance   uint16
	LSB       int16
	Simple    *glyf.SimpleUnpacked // nil for an empty glyph (e.g. .notdef)
	Composite *glyf.CompositeGlyph
}

// Build assembles a minimal but fully valid TrueType font from glyphs
// (glyph id == slice index) and returns its encoded bytes.
func Build(glyphs []Glyph) []byte {
	gg := make(glyf.Glyphs, len(glyphs))
	widths := make([]uint16, len(glyphs))
	lsbs := make([]int16, len(glyphs))
	cm := make(cmap.Format4)

	for i, g := range glyphs {
		widths[i] = g.Advance
		lsbs[i] = g.LSB
		switch {
		case g.Composite != nil:
			gg[i] = &glyf.Glyph{Data: *g.Composite}
		case g.Simple != nil:
			built := g.Simple.AsGlyph()
			gg[i] = &built
		default:
			gg[i] = &glyf.Glyph{Data: glyf.SimpleGlyph{NumContours: 0}}
		}
		if g.Codepoint != 0 {
			cm[uint16(g.Codepoint)] = glyph.ID(i)
		}
	}

	enc := gg.Encode()

	headInfo := &head.Info{
		FontRevision:   0x00010000,
		UnitsPerEm:     1000,
		HasLongOffsets: enc.LocaFormat != 0,
		LowestRecPPEM:  8,
	}

	hmtxData, numberOfHMetrics := (&hhea.Metrics{Widths: widths, LSB: lsbs}).Encode()

	hheaInfo := &hhea.Info{
		Ascent:              800,
		Descent:             -200,
		LineGap:             90,
		AdvanceWidthMax:     maxUint16(widths),
		NumOfLongHorMetrics: uint16(numberOfHMetrics),
	}

	maxpInfo := &maxp.Info{
		NumGlyphs:   uint16(len(glyphs)),
		IsTrueType:  true,
		MaxPoints:   32,
		MaxContours: 4,
	}

	nameTable := &name.Table{Records: []name.Record{
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 1},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 2},
	}}
	_ = nameTable.Patch(1, 3, "Test Sans")
	_ = nameTable.Patch(2, 3, "Regular")

	postInfo := &post.Info{IsFixedPitch: false}
	os2Info := &os2.Info{AvgGlyphWidth: 500, Ascent: 800, Descent: -200}

	var cmapBuf bytes.Buffer
	_ = cmap.Table{{PlatformID: 3, EncodingID: 1}: cm.Encode(0)}.Write(&cmapBuf)

	tables := map[string][]byte{
		"head": headInfo.Encode(),
		"hhea": hheaInfo.Encode(),
		"maxp": maxpInfo.Encode(),
		"hmtx": hmtxData,
		"name": nameTable.Encode(),
		"post": postInfo.Encode(),
		"OS/2": os2Info.Encode(),
		"cmap": cmapBuf.Bytes(),
		"glyf": enc.GlyfData,
		"loca": enc.LocaData,
	}

	var out bytes.Buffer
	_, _ = header.Write(&out, header.ScalerTypeTrueType, tables)
	return out.Bytes()
}

func maxUint16(vs []uint16) uint16 {
	var m uint16
	for _, v := range vs {
		if v > m {
			m = v
		}
	}
	return m
}
