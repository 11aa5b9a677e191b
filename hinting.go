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
	"github.com/typebrew/fontcore/hint"
)

// HintingInfo reports which hinting mechanism, if any, a font carries.
type HintingInfo struct {
	HasTrueTypeHints bool `json:"hasTrueTypeHints"`
	HasCFFHints      bool `json:"hasCffHints"`
}

// CheckFontHinting probes path's font for fpgm/prep/cvt (TrueType) and CFF
// tables.
func (c *Core) CheckFontHinting(path string) (*HintingInfo, error) {
	data, err := c.load(path)
	if err != nil {
		return nil, err
	}
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	info := hint.Check(f)
	return &HintingInfo{HasTrueTypeHints: info.HasTrueTypeHints, HasCFFHints: info.HasCFFHints}, nil
}

// GetHintedGlyphOutlines instantiates a TrueType hinting interpreter for
// each requested pixel size and returns one drawing-path string per size, in
// the same format as the unhinted outline walker. A ppem that fails to hint
// contributes an empty string rather than aborting the call.
func (c *Core) GetHintedGlyphOutlines(path string, glyphID uint32, ppems []float64) ([]string, error) {
	data, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return hint.GetOutlines(data, glyphID, ppems)
}
