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
	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/tableview"
)

// GetTableContent returns tag's JSON-serialised view of path's font.
func (c *Core) GetTableContent(path, tag string) ([]byte, error) {
	data, err := c.load(path)
	if err != nil {
		return nil, err
	}
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	return tableview.JSON(f, tag)
}
