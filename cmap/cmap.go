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

package cmap

import (
	"bytes"
	"errors"
	"io"
	"math"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/typebrew/fontcore/glyph"
	"github.com/typebrew/fontcore/mac"
)

// Key selects a subtable of a "cmap" table.
type Key struct {
	PlatformID uint16
	EncodingID uint16
	Language   uint16
}

// Table contains the raw bytes of all subtables of a "cmap" table, keyed by
// platform/encoding/language.
type Table map[Key][]byte

// Decode returns all subtables of the given "cmap" table. The returned
// subtable bytes are guaranteed to be at least 10 bytes long and to start
// with a valid format value.
func Decode(data []byte) (Table, error) {
	const minLength = 10 // length of an empty format 6 subtable

	if len(data) < 4 || len(data) > math.MaxUint32 {
		return nil, errMalformedCmap
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version != 0 {
		return nil, errMalformedCmap
	}
	numTables := int(data[2])<<8 | int(data[3])
	if len(data) < 4+8*numTables {
		return nil, errMalformedCmap
	}

	endOfHeader := uint32(4 + 8*numTables)
	endOfData := uint32(len(data))

	type seg struct{ start, end uint32 }
	var segs []seg

	res := make(Table)
	for i := 0; i < numTables; i++ {
		platformID := uint16(data[4+i*8])<<8 | uint16(data[5+i*8])
		if platformID > 4 {
			return nil, errMalformedCmap
		}
		encodingID := uint16(data[6+i*8])<<8 | uint16(data[7+i*8])

		o := uint32(data[8+i*8])<<24 |
			uint32(data[9+i*8])<<16 |
			uint32(data[10+i*8])<<8 |
			uint32(data[11+i*8])
		if o < endOfHeader || o > endOfData-minLength {
			return nil, errMalformedCmap
		}

		var language uint16
		var length uint32
		format := uint16(data[o])<<8 | uint16(data[o+1])
		checkLength := uint32(minLength)
		switch format {
		case 0, 2, 4, 6:
			length = uint32(data[o+2])<<8 | uint32(data[o+3])
			language = uint16(data[o+4])<<8 | uint16(data[o+5])
		case 8, 10, 12, 13:
			checkLength = 12
			if o > endOfData-checkLength {
				return nil, errMalformedCmap
			}
			length = uint32(data[o+4])<<24 |
				uint32(data[o+5])<<16 |
				uint32(data[o+6])<<8 |
				uint32(data[o+7])
			language = uint16(data[o+10])<<8 | uint16(data[o+11])
		case 14:
			length = uint32(data[o+2])<<24 |
				uint32(data[o+3])<<16 |
				uint32(data[o+4])<<8 |
				uint32(data[o+5])
		default:
			return nil, errMalformedCmap
		}
		if length < checkLength || length > endOfData-o {
			return nil, errMalformedCmap
		}

		if platformID != 1 {
			language = 0
		}

		idx := sort.Search(len(segs), func(i int) bool { return o <= segs[i].start })
		if idx == len(segs) || o != segs[idx].start {
			if idx > 0 && o < segs[idx-1].end ||
				idx < len(segs) && o+length > segs[idx].start {
				return nil, errMalformedCmap
			}
			segs = slices.Insert(segs, idx, seg{o, o + length})
		}

		key := Key{PlatformID: platformID, EncodingID: encodingID, Language: language}
		res[key] = data[o : o+length]
	}

	return res, nil
}

// Write encodes the "cmap" table, deduplicating byte-identical subtables.
func (ss Table) Write(w io.Writer) error {
	type extended struct {
		Data []byte
		Offs uint32
		Key
	}
	ext := make([]extended, 0, len(ss))
	for key, data := range ss {
		ext = append(ext, extended{Data: data, Key: key})
	}
	sort.Slice(ext, func(i, j int) bool {
		if ext[i].PlatformID != ext[j].PlatformID {
			return ext[i].PlatformID < ext[j].PlatformID
		}
		if ext[i].EncodingID != ext[j].EncodingID {
			return ext[i].EncodingID < ext[j].EncodingID
		}
		return ext[i].Language < ext[j].Language
	})

	numTables := len(ext)
	endOfHeader := uint32(4 + 8*numTables)

	pos := endOfHeader
offsLoop:
	for i, e := range ext {
		for j := 0; j < i; j++ {
			if bytes.Equal(e.Data, ext[j].Data) {
				ext[i].Offs = ext[j].Offs
				ext[i].Data = nil
				continue offsLoop
			}
		}
		ext[i].Offs = pos
		pos += uint32(len(e.Data))
	}

	header := make([]byte, endOfHeader)
	header[2] = byte(numTables >> 8)
	header[3] = byte(numTables)
	for i, e := range ext {
		header[4+i*8] = byte(e.PlatformID >> 8)
		header[5+i*8] = byte(e.PlatformID)
		header[6+i*8] = byte(e.EncodingID >> 8)
		header[7+i*8] = byte(e.EncodingID)
		header[8+i*8] = byte(e.Offs >> 24)
		header[9+i*8] = byte(e.Offs >> 16)
		header[10+i*8] = byte(e.Offs >> 8)
		header[11+i*8] = byte(e.Offs)
	}
	if _, err := w.Write(header); err != nil {
		return err
	}
	for _, e := range ext {
		if _, err := w.Write(e.Data); err != nil {
			return err
		}
	}
	return nil
}

// Get decodes the subtable stored under key.
func (ss Table) Get(key Key) (Subtable, error) {
	data, ok := ss[key]
	if !ok {
		return nil, errors.New("cmap: no such subtable")
	}

	macRoman := func(code int) rune { return mac.DecodeOne(byte(code)) }

	var code2rune func(int) rune
	if key.PlatformID == 1 {
		if key.EncodingID != 0 {
			return nil, errors.New("cmap: unsupported Mac encoding")
		}
		code2rune = macRoman
	}

	format := uint16(data[0])<<8 | uint16(data[1])
	decode, ok := decoders[format]
	if !ok {
		return nil, errUnsupportedCmapFormat
	}
	return decode(data, code2rune)
}

// GetBest selects the "best" subtable from a "cmap" table: the widest,
// most standard encoding that a renderer is likely to support.
func (ss Table) GetBest() (Subtable, error) {
	candidates := []Key{
		{PlatformID: 3, EncodingID: 10}, // full Unicode
		{PlatformID: 0, EncodingID: 4},
		{PlatformID: 3, EncodingID: 1}, // Unicode BMP
		{PlatformID: 0, EncodingID: 3},
		{PlatformID: 1, EncodingID: 0}, // vintage Apple format
	}

	for _, c := range candidates {
		if sub, err := ss.Get(c); err == nil {
			return sub, nil
		}
	}
	return nil, errors.New("cmap: no suitable subtable found")
}

// FirstCodepoints builds a glyphId -> firstCodepoint index from the "best"
// subtable, in a single forward pass over its code range. When several
// code points map to the same glyph, the lowest code point wins.
func FirstCodepoints(ss Table) (map[glyph.ID]rune, error) {
	sub, err := ss.GetBest()
	if err != nil {
		return nil, err
	}

	index := make(map[glyph.ID]rune)
	low, high := sub.CodeRange()
	for r := low; r <= high; r++ {
		gid := sub.Lookup(r)
		if gid == 0 {
			continue
		}
		if _, seen := index[gid]; !seen {
			index[gid] = r
		}
		if r == high {
			break // avoid overflow when high is the maximum rune value
		}
	}
	return index, nil
}
