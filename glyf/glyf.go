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

// Package glyf reads and writes "glyf" and "loca" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"seehuhn.de/go/postscript/funit"

	"github.com/typebrew/fontcore/parser"
)

// Glyph is a single entry of the "glyf" table: either a SimpleGlyph or a
// CompositeGlyph, together with the bounding box recorded in the glyph
// header.
type Glyph struct {
	Rect16 funit.Rect16
	Data   any // SimpleGlyph or CompositeGlyph
}

// Glyphs contains a slice of TrueType glyph outlines.
// This represents the information stored in the "glyf" and "loca" tables
// of a TrueType font.
type Glyphs []*Glyph

// Encoded represents the data of a "glyf" and "loca" table.
type Encoded struct {
	GlyfData   []byte
	LocaData   []byte
	LocaFormat int16
}

// Decode converts the data from the "glyf" and "loca" tables into a slice of
// Glyphs.  The value for locaFormat is specified in the indexToLocFormat entry
// in the "head" table.
func Decode(enc *Encoded) (Glyphs, error) {
	offs, err := decodeLoca(enc)
	if err != nil {
		return nil, err
	}

	numGlyphs := len(offs) - 1

	gg := make(Glyphs, numGlyphs)
	for i := range gg {
		if offs[i+1] < offs[i] || offs[i+1] > len(enc.GlyfData) {
			return nil, &parser.InvalidFontError{
				SubSystem: "sfnt/glyf",
				Reason:    "loca offset out of range",
			}
		}
		data := enc.GlyfData[offs[i]:offs[i+1]]
		g, err := decodeGlyph(data)
		if err != nil {
			return nil, err
		}
		gg[i] = g
	}

	return gg, nil
}

// Encode encodes the Glyphs into a "glyf" and "loca" table.
func (gg Glyphs) Encode() *Encoded {
	n := len(gg)

	offs := make([]int, n+1)
	offs[0] = 0
	for i, g := range gg {
		l := g.encodeLen()
		offs[i+1] = offs[i] + l
	}
	locaData, locaFormat := encodeLoca(offs)

	glyfData := make([]byte, 0, offs[n])
	for _, g := range gg {
		glyfData = g.append(glyfData)
	}

	enc := &Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: locaFormat,
	}

	return enc
}

// decodeGlyph decodes a single "glyf" record, including the 10-byte glyph
// header.  An empty record (zero-length, as used for blank glyphs such as
// ".notdef" or space) decodes to a glyph with zero contours.
func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return &Glyph{Data: SimpleGlyph{NumContours: 0}}, nil
	}
	if len(data) < 10 {
		return nil, &parser.InvalidFontError{
			SubSystem: "sfnt/glyf",
			Reason:    "glyph record too short",
		}
	}

	numContours := int16(uint16(data[0])<<8 | uint16(data[1]))
	rect16 := funit.Rect16{
		LLx: funit.Int16(int16(uint16(data[2])<<8 | uint16(data[3]))),
		LLy: funit.Int16(int16(uint16(data[4])<<8 | uint16(data[5]))),
		URx: funit.Int16(int16(uint16(data[6])<<8 | uint16(data[7]))),
		URy: funit.Int16(int16(uint16(data[8])<<8 | uint16(data[9]))),
	}
	body := data[10:]

	var gdata any
	if numContours >= 0 {
		gdata = SimpleGlyph{
			NumContours: numContours,
			Encoded:     body,
		}
	} else {
		cg, err := decodeGlyphComposite(body)
		if err != nil {
			return nil, err
		}
		gdata = *cg
	}

	return &Glyph{Rect16: rect16, Data: gdata}, nil
}

// encodeLen returns the length in bytes of g's "glyf" record, including the
// 10-byte glyph header, without allocating.
func (g *Glyph) encodeLen() int {
	if g == nil {
		return 0
	}
	switch d := g.Data.(type) {
	case SimpleGlyph:
		if d.NumContours == 0 && len(d.Encoded) == 0 {
			return 0
		}
		return 10 + len(d.Encoded)
	case CompositeGlyph:
		return 10 + encodeCompositeLen(d)
	default:
		return 0
	}
}

// append appends g's "glyf" record to buf and returns the extended slice.
func (g *Glyph) append(buf []byte) []byte {
	if g == nil || g.encodeLen() == 0 {
		return buf
	}

	var numContours int16
	var body []byte
	switch d := g.Data.(type) {
	case SimpleGlyph:
		numContours = d.NumContours
		body = d.Encoded
	case CompositeGlyph:
		numContours = -1
		body = encodeComposite(d)
	}

	buf = append(buf,
		byte(numContours>>8), byte(numContours),
		byte(int16(g.Rect16.LLx)>>8), byte(int16(g.Rect16.LLx)),
		byte(int16(g.Rect16.LLy)>>8), byte(int16(g.Rect16.LLy)),
		byte(int16(g.Rect16.URx)>>8), byte(int16(g.Rect16.URx)),
		byte(int16(g.Rect16.URy)>>8), byte(int16(g.Rect16.URy)),
	)
	return append(buf, body...)
}
