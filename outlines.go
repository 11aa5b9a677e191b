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

package fontcore

import (
	"github.com/typebrew/fontcore/editor"
	"github.com/typebrew/fontcore/fontfile"
)

// GetGlyphOutlinesBinary returns a length-prefixed binary page of path's
// outlines, memoising the OutlineSet on first use. offset and limit
// are saturating: an out-of-range request yields an empty batch rather than
// an error.
func (c *Core) GetGlyphOutlinesBinary(path string, offset, limit int) ([]byte, error) {
	data, err := c.load(path)
	if err != nil {
		return nil, err
	}
	set, err := c.store.GetOutlineSet(path, data)
	if err != nil {
		return nil, err
	}
	return set.EncodeBatch(offset, limit), nil
}

// GetGlyphOutlineData builds the structured editor view of a single glyph,
// recursively resolving composite components up to depth 5.
func (c *Core) GetGlyphOutlineData(path string, glyphID uint32) (*editor.GlyphOutlineData, error) {
	data, err := c.load(path)
	if err != nil {
		return nil, err
	}
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	return editor.Build(f, glyphID)
}
