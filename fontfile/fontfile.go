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

// Package fontfile decodes a whole sfnt file into the handful of tables the
// rest of the core operates on. It is the one place that turns a raw byte
// buffer into head/hhea/maxp/name/post/OS2/cmap/glyf structures, so every
// higher-level package (outline extraction, the structured editor view, the
// table rewriter) shares one reading of "what tables does this font have".
package fontfile

import (
	"bytes"

	"github.com/typebrew/fontcore/cmap"
	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/head"
	"github.com/typebrew/fontcore/header"
	"github.com/typebrew/fontcore/hhea"
	"github.com/typebrew/fontcore/maxp"
	"github.com/typebrew/fontcore/name"
	"github.com/typebrew/fontcore/os2"
	"github.com/typebrew/fontcore/parser"
	"github.com/typebrew/fontcore/post"
)

// Font is a parsed view onto a font file's bytes: the table directory plus
// on-demand decoders for the tables the core understands. Nothing here is
// cached across calls; callers that need to avoid repeated decoding (the
// outline walker in particular) keep their own derived state.
type Font struct {
	Data   []byte
	Header *header.Info
}

// Parse reads the sfnt offset table and table directory from data. The
// returned Font holds a reference to data; callers must not mutate it
// afterwards.
func Parse(data []byte) (*Font, error) {
	h, err := header.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Font{Data: data, Header: h}, nil
}

// Tags returns the font's table tags. The order is not defined; it does
// not follow the table directory.
func (f *Font) Tags() []string {
	tags := make([]string, 0, len(f.Header.Toc))
	for tag := range f.Header.Toc {
		tags = append(tags, tag)
	}
	return tags
}

// TableBytes returns the raw, undecoded bytes of the given table, or false
// if the table is absent.
func (f *Font) TableBytes(tag string) ([]byte, bool) {
	rec, ok := f.Header.Toc[tag]
	if !ok {
		return nil, false
	}
	start := rec.Offset
	end := rec.Offset + rec.Length
	if uint64(end) > uint64(len(f.Data)) {
		return nil, false
	}
	return f.Data[start:end], true
}

func (f *Font) requireTable(tag string) ([]byte, error) {
	data, ok := f.TableBytes(tag)
	if !ok {
		return nil, &parser.TableMissingError{Tag: tag}
	}
	return data, nil
}

// Head decodes the "head" table.
func (f *Font) Head() (*head.Info, error) {
	data, err := f.requireTable("head")
	if err != nil {
		return nil, err
	}
	return head.Read(data)
}

// Hhea decodes the "hhea" table.
func (f *Font) Hhea() (*hhea.Info, error) {
	data, err := f.requireTable("hhea")
	if err != nil {
		return nil, err
	}
	return hhea.Read(data)
}

// Maxp decodes the "maxp" table.
func (f *Font) Maxp() (*maxp.Info, error) {
	data, err := f.requireTable("maxp")
	if err != nil {
		return nil, err
	}
	return maxp.Read(data)
}

// Name decodes the "name" table.
func (f *Font) Name() (*name.Table, error) {
	data, err := f.requireTable("name")
	if err != nil {
		return nil, err
	}
	return name.Decode(data)
}

// Post decodes the "post" table.
func (f *Font) Post() (*post.Info, error) {
	data, err := f.requireTable("post")
	if err != nil {
		return nil, err
	}
	return post.Read(data)
}

// OS2 decodes the "OS/2" table.
func (f *Font) OS2() (*os2.Info, error) {
	data, err := f.requireTable("OS/2")
	if err != nil {
		return nil, err
	}
	return os2.Read(bytes.NewReader(data))
}

// Cmap decodes the "cmap" table.
func (f *Font) Cmap() (cmap.Table, error) {
	data, err := f.requireTable("cmap")
	if err != nil {
		return nil, err
	}
	return cmap.Decode(data)
}

// Hmtx decodes the "hmtx" table, given the numberOfHMetrics recorded in
// "hhea" and the glyph count recorded in "maxp".
func (f *Font) Hmtx(numberOfHMetrics, numGlyphs int) (*hhea.Metrics, error) {
	data, err := f.requireTable("hmtx")
	if err != nil {
		return nil, err
	}
	return hhea.DecodeHmtx(data, numberOfHMetrics, numGlyphs)
}

// HmtxBytes returns the raw "hmtx" bytes, for callers that only need a
// single glyph's LSB or advance width (hhea.ReadLSB / hhea.ReadAdvanceWidth)
// and want to avoid decoding every glyph's metrics.
func (f *Font) HmtxBytes() ([]byte, error) {
	return f.requireTable("hmtx")
}

// Glyf decodes the "glyf" and "loca" tables into a slice of glyphs, using
// headInfo.HasLongOffsets to choose the "loca" entry width.
func (f *Font) Glyf(headInfo *head.Info) (glyf.Glyphs, error) {
	glyfData, err := f.requireTable("glyf")
	if err != nil {
		return nil, err
	}
	locaData, err := f.requireTable("loca")
	if err != nil {
		return nil, err
	}
	var locaFormat int16
	if headInfo.HasLongOffsets {
		locaFormat = 1
	}
	return glyf.Decode(&glyf.Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: locaFormat,
	})
}

// LocaOffsets decodes just the "loca" table into byte offsets into "glyf",
// for callers (the table rewriter, the composite-offset editor) that need
// the offset table without paying for a full glyph decode.
func (f *Font) LocaOffsets(headInfo *head.Info) ([]int, error) {
	locaData, err := f.requireTable("loca")
	if err != nil {
		return nil, err
	}
	var locaFormat int16
	if headInfo.HasLongOffsets {
		locaFormat = 1
	}
	return glyf.DecodeLocaOffsets(locaData, locaFormat)
}
