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

import "github.com/typebrew/fontcore/rewrite"

// UpdateHeadTable applies patch to path's "head" table, overwrites the file,
// and invalidates the cached OutlineSet.
func (c *Core) UpdateHeadTable(path string, patch rewrite.HeadPatch) error {
	return c.applyEdit(path, func(data []byte) ([]byte, error) {
		return rewrite.UpdateHeadTable(data, patch)
	})
}

// UpdateHheaTable applies patch to path's "hhea" table.
func (c *Core) UpdateHheaTable(path string, patch rewrite.HheaPatch) error {
	return c.applyEdit(path, func(data []byte) ([]byte, error) {
		return rewrite.UpdateHheaTable(data, patch)
	})
}

// UpdateMaxpTable applies patch to path's "maxp" table.
func (c *Core) UpdateMaxpTable(path string, patch rewrite.MaxpPatch) error {
	return c.applyEdit(path, func(data []byte) ([]byte, error) {
		return rewrite.UpdateMaxpTable(data, patch)
	})
}

// UpdateNameTable replaces the single "name" record patch identifies,
// leaving every other record byte-for-byte unchanged.
func (c *Core) UpdateNameTable(path string, patch rewrite.NamePatch) error {
	return c.applyEdit(path, func(data []byte) ([]byte, error) {
		return rewrite.UpdateNameTable(data, patch)
	})
}

// UpdateCompositeOffsets rewrites the component offsets of the composite
// glyph at glyphID.
func (c *Core) UpdateCompositeOffsets(path string, glyphID int, patches []rewrite.ComponentOffsetPatch) error {
	return c.applyEdit(path, func(data []byte) ([]byte, error) {
		return rewrite.UpdateCompositeOffsets(data, glyphID, patches)
	})
}

// SaveGlyphOutline parses pathString and writes it into path's font at
// glyphID, growing "glyf"/"loca"/"hmtx"/"maxp" when glyphID names a new
// glyph. tableName must be "glyf".
func (c *Core) SaveGlyphOutline(path string, glyphID int, pathString, tableName string) error {
	return c.applyEdit(path, func(data []byte) ([]byte, error) {
		return rewrite.SaveGlyphOutline(data, glyphID, pathString, tableName)
	})
}

// applyEdit loads path's current bytes, runs edit against them, and commits
// the result. A failing edit aborts before any file write or cache mutation:
// errors during save leave both caches untouched.
func (c *Core) applyEdit(path string, edit func([]byte) ([]byte, error)) error {
	data, err := c.load(path)
	if err != nil {
		return err
	}
	newData, err := edit(data)
	if err != nil {
		return err
	}
	return c.commit(path, newData)
}
