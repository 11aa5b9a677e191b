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
	"path/filepath"
	"sort"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/name"
)

// nameFamily and nameSubfamily are the "name" table's nameID values for a
// font's family and style (subfamily) strings.
const (
	nameFamily    = 1
	nameSubfamily = 2
)

// FontMetadata is the summary a host shows after opening a font.
type FontMetadata struct {
	FileName        string   `json:"fileName"`
	FilePath        string   `json:"filePath"`
	FamilyName      string   `json:"familyName"`
	StyleName       string   `json:"styleName"`
	Version         string   `json:"version"`
	NumGlyphs       int      `json:"numGlyphs"`
	AvailableTables []string `json:"availableTables"`
}

// ParseFont opens path (loading and caching its bytes) and returns its
// metadata.
func (c *Core) ParseFont(path string) (*FontMetadata, error) {
	data, err := c.load(path)
	if err != nil {
		return nil, err
	}
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}

	headInfo, err := f.Head()
	if err != nil {
		return nil, err
	}
	maxpInfo, err := f.Maxp()
	if err != nil {
		return nil, err
	}

	tags := f.Tags()
	sort.Strings(tags)

	meta := &FontMetadata{
		FileName:        filepath.Base(path),
		FilePath:        path,
		Version:         headInfo.FontRevision.String(),
		NumGlyphs:       int(maxpInfo.NumGlyphs),
		AvailableTables: tags,
	}

	if table, err := f.Name(); err == nil {
		meta.FamilyName = bestNameString(table, nameFamily)
		meta.StyleName = bestNameString(table, nameSubfamily)
	}

	return meta, nil
}

// bestNameString returns the preferred string for nameID: Windows Unicode
// BMP (platform 3, encoding 1, US English) first, then any Macintosh Roman
// record, then the first record of any platform that matches nameID at all.
func bestNameString(table *name.Table, nameID uint16) string {
	var macRoman, anyMatch string
	for _, rec := range table.Records {
		if rec.NameID != nameID || rec.Value == "" {
			continue
		}
		if rec.PlatformID == 3 && rec.EncodingID == 1 && rec.LanguageID == 0x0409 {
			return rec.Value
		}
		if macRoman == "" && rec.PlatformID == 1 && rec.EncodingID == 0 {
			macRoman = rec.Value
		}
		if anyMatch == "" {
			anyMatch = rec.Value
		}
	}
	if macRoman != "" {
		return macRoman
	}
	return anyMatch
}
