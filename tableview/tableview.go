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

// Package tableview shapes the typed table decoders (head, hhea, maxp,
// post, OS/2, name, loca) into JSON-serialisable views for a host that
// cannot import Go struct types directly. Tags without a typed view fall
// back to a raw size report.
package tableview

import (
	"bytes"
	"encoding/json"

	"golang.org/x/text/language"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/os2"
)

// LocaEntry is one row of the loca view: a glyph id, its byte offset into
// "glyf", and the length of its record (next offset minus this one; zero
// for the final sentinel entry).
type LocaEntry struct {
	GlyphID int `json:"glyphId"`
	Offset  int `json:"offset"`
	Length  int `json:"length"`
}

// NameRecordView is one decodable "name" table record.
type NameRecordView struct {
	PlatformID  uint16 `json:"platformId"`
	EncodingID  uint16 `json:"encodingId"`
	LanguageID  uint16 `json:"languageId"`
	LanguageTag string `json:"languageTag,omitempty"`
	NameID      uint16 `json:"nameId"`
	Value       string `json:"value"`
}

// windowsLCIDTag maps the Microsoft LCIDs a "name" table is most likely to
// carry to their BCP-47 tags. Platform 3 (Windows) LanguageIDs are LCIDs;
// platform 0/1 records have no LCID and are left untagged.
var windowsLCIDTag = map[uint16]language.Tag{
	0x0409: language.AmericanEnglish,
	0x0809: language.BritishEnglish,
	0x040C: language.French,
	0x0407: language.German,
	0x0410: language.Italian,
	0x0416: language.BrazilianPortuguese,
	0x0816: language.EuropeanPortuguese,
	0x0411: language.Japanese,
	0x0412: language.Korean,
	0x0804: language.SimplifiedChinese,
	0x0404: language.TraditionalChinese,
	0x040A: language.EuropeanSpanish,
	0x0419: language.Russian,
}

// languageTagFor returns the BCP-47 tag for a Windows-platform "name"
// record's LCID, or "" when the LCID is unrecognised or the record is not
// from platform 3.
func languageTagFor(platformID uint16, languageID uint16) string {
	if platformID != 3 {
		return ""
	}
	tag, ok := windowsLCIDTag[languageID]
	if !ok {
		return ""
	}
	return tag.String()
}

// RawView is returned for any tag with no typed decoder.
type RawView struct {
	Tag       string `json:"tag"`
	SizeBytes int    `json:"sizeBytes"`
	Note      string `json:"note"`
}

// Get decodes tag from f and returns its JSON-ready view. An unsupported
// tag yields a RawView rather than an error.
func Get(f *fontfile.Font, tag string) (any, error) {
	switch tag {
	case "head":
		info, err := f.Head()
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"unitsPerEm":     info.UnitsPerEm,
			"fontRevision":   info.FontRevision.String(),
			"created":        info.Created,
			"modified":       info.Modified,
			"xMin":           info.FontBBox.LLx,
			"yMin":           info.FontBBox.LLy,
			"xMax":           info.FontBBox.URx,
			"yMax":           info.FontBBox.URy,
			"isBold":         info.IsBold,
			"isItalic":       info.IsItalic,
			"lowestRecPPEM":  info.LowestRecPPEM,
			"hasLongOffsets": info.HasLongOffsets,
		}, nil

	case "hhea":
		info, err := f.Hhea()
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"ascender":            info.Ascent,
			"descender":           info.Descent,
			"lineGap":             info.LineGap,
			"advanceWidthMax":     info.AdvanceWidthMax,
			"minLeftSideBearing":  info.MinLeftSideBearing,
			"minRightSideBearing": info.MinRightSideBearing,
			"xMaxExtent":          info.XMaxExtent,
			"numOfLongHorMetrics": info.NumOfLongHorMetrics,
		}, nil

	case "maxp":
		info, err := f.Maxp()
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"numGlyphs":  info.NumGlyphs,
			"isTrueType": info.IsTrueType,
			"maxPoints":  info.MaxPoints,
			"maxContours": info.MaxContours,
			"maxStorage": info.MaxStorage,
		}, nil

	case "post":
		info, err := f.Post()
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"italicAngle":        info.ItalicAngle,
			"underlinePosition":  info.UnderlinePosition,
			"underlineThickness": info.UnderlineThickness,
			"isFixedPitch":       info.IsFixedPitch,
		}, nil

	case "OS/2":
		data, ok := f.TableBytes("OS/2")
		if !ok {
			return nil, nil
		}
		info, err := os2.Read(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"weightClass":   info.WeightClass,
			"widthClass":    info.WidthClass,
			"isBold":        info.IsBold,
			"isItalic":      info.IsItalic,
			"ascent":        info.Ascent,
			"descent":       info.Descent,
			"lineGap":       info.LineGap,
			"capHeight":     info.CapHeight,
			"xHeight":       info.XHeight,
			"avgGlyphWidth": info.AvgGlyphWidth,
			"vendor":        info.Vendor,
		}, nil

	case "name":
		table, err := f.Name()
		if err != nil {
			return nil, err
		}
		var records []NameRecordView
		for _, rec := range table.Records {
			if rec.Value == "" {
				continue
			}
			records = append(records, NameRecordView{
				PlatformID:  rec.PlatformID,
				EncodingID:  rec.EncodingID,
				LanguageID:  rec.LanguageID,
				LanguageTag: languageTagFor(rec.PlatformID, rec.LanguageID),
				NameID:      rec.NameID,
				Value:       rec.Value,
			})
		}
		return map[string]any{"records": records}, nil

	case "loca":
		return locaView(f)

	default:
		data, ok := f.TableBytes(tag)
		if !ok {
			return nil, nil
		}
		return RawView{Tag: tag, SizeBytes: len(data), Note: "raw"}, nil
	}
}

func locaView(f *fontfile.Font) (any, error) {
	headInfo, err := f.Head()
	if err != nil {
		return nil, err
	}
	offsets, err := f.LocaOffsets(headInfo)
	if err != nil {
		return nil, err
	}
	entries := make([]LocaEntry, 0, len(offsets))
	for i := 0; i < len(offsets); i++ {
		length := 0
		if i+1 < len(offsets) {
			length = offsets[i+1] - offsets[i]
		}
		entries = append(entries, LocaEntry{GlyphID: i, Offset: offsets[i], Length: length})
	}
	return map[string]any{"entries": entries}, nil
}

// JSON decodes tag and marshals its view to indented JSON text, the shape
// getTableContent returns to the host.
func JSON(f *fontfile.Font, tag string) ([]byte, error) {
	view, err := Get(f, tag)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(view, "", "  ")
}
