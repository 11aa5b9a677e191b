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

// encodeCompositeLen returns the byte length of g's component stream,
// excluding the 10-byte glyph header.
func encodeCompositeLen(g CompositeGlyph) int {
	n := 0
	for _, c := range g.Components {
		n += 4 + len(c.Data)
	}
	if len(g.Instructions) > 0 {
		n += 2 + len(g.Instructions)
	}
	return n
}

// encodeComposite writes g's component stream, excluding the 10-byte glyph
// header. Every component's flags and argument bytes are re-emitted
// verbatim, so a decode/encode round trip is byte-identical unless the
// caller has rewritten a component's Data via the composite codec.
func encodeComposite(g CompositeGlyph) []byte {
	buf := make([]byte, 0, encodeCompositeLen(g))
	for _, c := range g.Components {
		buf = append(buf,
			byte(c.Flags>>8), byte(c.Flags),
			byte(c.GlyphIndex>>8), byte(c.GlyphIndex),
		)
		buf = append(buf, c.Data...)
	}
	if len(g.Instructions) > 0 {
		L := len(g.Instructions)
		buf = append(buf, byte(L>>8), byte(L))
		buf = append(buf, g.Instructions...)
	}
	return buf
}
