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

// Package rewrite implements every font-mutating operation: single-table
// patches, composite-glyph offset edits, and saving a glyph outline as a
// new or replacement simple glyph. Every operation reads the font fresh
// from bytes and returns a complete, re-composed font; none of them mutate
// the input in place.
package rewrite

import (
	"bytes"

	"seehuhn.de/go/postscript/funit"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/head"
	"github.com/typebrew/fontcore/header"
	"github.com/typebrew/fontcore/hhea"
	"github.com/typebrew/fontcore/os2"
	"github.com/typebrew/fontcore/parser"
	"github.com/typebrew/fontcore/pathlang"
)

// allTables returns every table tag's raw bytes, for the "copy verbatim"
// side of a single-table edit.
func allTables(f *fontfile.Font) map[string][]byte {
	tables := make(map[string][]byte, len(f.Header.Toc))
	for tag := range f.Header.Toc {
		if b, ok := f.TableBytes(tag); ok {
			tables[tag] = append([]byte(nil), b...)
		}
	}
	return tables
}

func compose(f *fontfile.Font, tables map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := header.Write(&buf, f.Header.ScalerType, tables); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HeadPatch carries the subset of "head" fields a host may update. Nil
// pointers leave the corresponding field unchanged.
type HeadPatch struct {
	FontRevision  *head.Version
	IsBold        *bool
	IsItalic      *bool
	LowestRecPPEM *uint16
}

// UpdateHeadTable applies patch to the font's "head" table and returns the
// re-composed font bytes.
func UpdateHeadTable(data []byte, patch HeadPatch) ([]byte, error) {
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	info, err := f.Head()
	if err != nil {
		return nil, err
	}

	if patch.FontRevision != nil {
		info.FontRevision = *patch.FontRevision
	}
	if patch.IsBold != nil {
		info.IsBold = *patch.IsBold
	}
	if patch.IsItalic != nil {
		info.IsItalic = *patch.IsItalic
	}
	if patch.LowestRecPPEM != nil {
		info.LowestRecPPEM = *patch.LowestRecPPEM
	}

	tables := allTables(f)
	tables["head"] = info.Encode()
	return compose(f, tables)
}

// HheaPatch carries the subset of "hhea" fields a host may update.
type HheaPatch struct {
	Ascent  *int16
	Descent *int16
	LineGap *int16
}

// UpdateHheaTable applies patch to the font's "hhea" table and returns the
// re-composed font bytes.
func UpdateHheaTable(data []byte, patch HheaPatch) ([]byte, error) {
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	info, err := f.Hhea()
	if err != nil {
		return nil, err
	}

	if patch.Ascent != nil {
		info.Ascent = *patch.Ascent
	}
	if patch.Descent != nil {
		info.Descent = *patch.Descent
	}
	if patch.LineGap != nil {
		info.LineGap = *patch.LineGap
	}

	tables := allTables(f)
	tables["hhea"] = info.Encode()
	return compose(f, tables)
}

// MaxpPatch carries the subset of "maxp" fields a host may update directly
// (NumGlyphs is managed internally by SaveGlyphOutline and is not exposed
// here).
type MaxpPatch struct {
	MaxStorage *uint16
}

// UpdateMaxpTable applies patch to the font's "maxp" table and returns the
// re-composed font bytes.
func UpdateMaxpTable(data []byte, patch MaxpPatch) ([]byte, error) {
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	info, err := f.Maxp()
	if err != nil {
		return nil, err
	}

	if patch.MaxStorage != nil {
		info.MaxStorage = *patch.MaxStorage
	}

	tables := allTables(f)
	tables["maxp"] = info.Encode()
	return compose(f, tables)
}

// NamePatch identifies the single name record to replace.
type NamePatch struct {
	NameID     uint16
	PlatformID uint16
	Value      string
}

// UpdateNameTable replaces exactly the record matching (NameID, PlatformID)
// and returns the re-composed font bytes. Every other record is preserved
// byte-for-byte.
func UpdateNameTable(data []byte, patch NamePatch) ([]byte, error) {
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	table, err := f.Name()
	if err != nil {
		return nil, err
	}

	if err := table.Patch(patch.NameID, patch.PlatformID, patch.Value); err != nil {
		return nil, err
	}

	tables := allTables(f)
	tables["name"] = table.Encode()
	return compose(f, tables)
}

// ComponentOffsetPatch is a positional replacement offset for one component
// of a composite glyph.
type ComponentOffsetPatch struct {
	Index int
	X, Y  float64
}

// UpdateCompositeOffsets rewrites the component offsets of the composite
// glyph at glyphID and returns the re-composed font bytes.
func UpdateCompositeOffsets(data []byte, glyphID int, patches []ComponentOffsetPatch) ([]byte, error) {
	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	headInfo, err := f.Head()
	if err != nil {
		return nil, err
	}
	// maxp.numGlyphs is part of the record this edit must stay consistent
	// with, even though this operation does not itself change glyph count.
	if _, err := f.Maxp(); err != nil {
		return nil, err
	}
	glyphs, err := f.Glyf(headInfo)
	if err != nil {
		return nil, err
	}

	if glyphID < 0 || glyphID >= len(glyphs) || glyphs[glyphID] == nil {
		return nil, &parser.GlyphIDOverflowError{GlyphID: glyphID}
	}
	composite, ok := glyphs[glyphID].Data.(glyf.CompositeGlyph)
	if !ok {
		return nil, &parser.MalformedCompositeError{Reason: "glyph is not a composite"}
	}

	newOffsets := make(map[int]glyf.ComponentOffset, len(patches))
	for _, p := range patches {
		newOffsets[p.Index] = glyf.ComponentOffset{X: p.X, Y: p.Y}
	}

	patched := glyf.PatchComponentOffsets(composite, newOffsets)
	glyphs[glyphID] = &glyf.Glyph{Rect16: glyphs[glyphID].Rect16, Data: patched}

	enc := glyphs.Encode()
	tables := allTables(f)
	tables["glyf"] = enc.GlyfData
	tables["loca"] = enc.LocaData
	if enc.LocaFormat != 0 {
		headInfo.HasLongOffsets = true
	} else {
		headInfo.HasLongOffsets = false
	}
	tables["head"] = headInfo.Encode()
	return compose(f, tables)
}

// SaveGlyphOutline parses pathString, encodes it as a SimpleGlyph record,
// and writes it into the font at glyphID, extending
// "glyf"/"loca"/"hmtx"/"maxp" as needed for a new glyph beyond the current
// glyph count. tableName must be "glyf"; any other value (notably "CFF",
// "CFF2") is refused.
func SaveGlyphOutline(data []byte, glyphID int, pathString string, tableName string) ([]byte, error) {
	if tableName != "glyf" {
		return nil, &parser.UnsupportedOutlineTableError{Tag: tableName}
	}
	if glyphID < 0 || glyphID > 0xFFFF {
		return nil, &parser.GlyphIDOverflowError{GlyphID: glyphID}
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
	hheaInfo, err := f.Hhea()
	if err != nil {
		return nil, err
	}
	hmtxData, err := f.HmtxBytes()
	if err != nil {
		return nil, err
	}
	locaOffsets, err := f.LocaOffsets(headInfo)
	if err != nil {
		return nil, err
	}
	glyfData, ok := f.TableBytes("glyf")
	if !ok {
		return nil, &parser.TableMissingError{Tag: "glyf"}
	}

	cmds, err := pathlang.Parse(pathString)
	if err != nil {
		return nil, err
	}
	replacement, err := encodeSimpleGlyph(cmds)
	if err != nil {
		return nil, err
	}

	currentNumGlyphs := int(maxpInfo.NumGlyphs)
	isNew := glyphID >= currentNumGlyphs
	targetNumGlyphs := currentNumGlyphs
	if isNew {
		targetNumGlyphs = glyphID + 1
	}

	newGlyf, newOffsets, err := rebuildGlyfLoca(glyfData, locaOffsets, currentNumGlyphs, targetNumGlyphs, glyphID, replacement)
	if err != nil {
		return nil, err
	}
	locaData, locaFormat, overflow := glyf.EncodeLocaOffsets(newOffsets)
	if overflow {
		return nil, &parser.LocaOverflowError{Offset: newOffsets[len(newOffsets)-1]}
	}

	newHmtx := append([]byte(nil), hmtxData...)
	for i := currentNumGlyphs; i < targetNumGlyphs; i++ {
		newHmtx = append(newHmtx, 0, 0) // single 2-byte zero LSB; advance inherited
	}

	tables := allTables(f)
	tables["glyf"] = newGlyf
	tables["loca"] = locaData
	tables["hmtx"] = newHmtx
	headInfo.HasLongOffsets = locaFormat != 0
	tables["head"] = headInfo.Encode()

	if isNew {
		maxpInfo.NumGlyphs = uint16(targetNumGlyphs)
		tables["maxp"] = maxpInfo.Encode()

		if avg, ok := averageAdvanceWidth(newHmtx, int(hheaInfo.NumOfLongHorMetrics), targetNumGlyphs); ok {
			if os2Data, present := tables["OS/2"]; present {
				if info, err := os2.Read(bytes.NewReader(os2Data)); err == nil {
					info.AvgGlyphWidth = avg
					tables["OS/2"] = info.Encode()
				}
			}
		}
	}

	return compose(f, tables)
}

// rebuildGlyfLoca is the central glyf/loca rebuild algorithm: every glyph
// id in [0, targetNumGlyphs) is re-emitted in order, padded to a 4-byte
// boundary, with glyphID replaced by replacement and ids beyond the
// original glyph count synthesised as empty glyphs.
func rebuildGlyfLoca(glyfData []byte, origOffsets []int, currentNumGlyphs, targetNumGlyphs, targetGlyphID int, replacement []byte) ([]byte, []int, error) {
	var out []byte
	offsets := make([]int, 0, targetNumGlyphs+1)

	for i := 0; i < targetNumGlyphs; i++ {
		offsets = append(offsets, len(out))

		switch {
		case i == targetGlyphID:
			out = append(out, replacement...)
		case i < currentNumGlyphs:
			start, end := origOffsets[i], origOffsets[i+1]
			out = append(out, glyfData[start:end]...)
		default:
			// synthesised empty glyph
		}

		if pad := len(out) % 4; pad != 0 {
			out = append(out, make([]byte, 4-pad)...)
		}
	}
	offsets = append(offsets, len(out))

	return out, offsets, nil
}

// averageAdvanceWidth computes the integer mean advance width across every
// glyph in a rebuilt "hmtx" table, for the OS/2.xAvgCharWidth recompute
// that follows adding a new glyph.
func averageAdvanceWidth(hmtxData []byte, numberOfHMetrics, numGlyphs int) (funit.Int16, bool) {
	if numGlyphs == 0 {
		return 0, false
	}
	var sum int64
	var count int64
	for gid := 0; gid < numGlyphs; gid++ {
		width, err := hhea.ReadAdvanceWidth(hmtxData, gid, numberOfHMetrics)
		if err != nil {
			continue
		}
		sum += int64(width)
		count++
	}
	if count == 0 {
		return 0, false
	}
	return funit.Int16(sum / count), true
}
