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

// Package name reads, writes, and patches the "name" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"unicode/utf16"

	"github.com/typebrew/fontcore/mac"
	"github.com/typebrew/fontcore/parser"
)

// Record is a single entry of the "name" table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16

	// Value holds the decoded Unicode string, or the empty string if this
	// platform/encoding combination is not understood. Raw holds the
	// original bytes regardless, so an undecodable record still survives
	// an Encode round trip unchanged.
	Value string
	Raw   []byte
}

// Table is the decoded "name" table: a flat, ordered list of records (the
// storage-area layout is an implementation detail handled by Encode).
type Table struct {
	Records []Record
}

// Decode parses the binary representation of the "name" table.
func Decode(data []byte) (*Table, error) {
	if len(data) < 6 {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/name", Reason: "table too short"}
	}
	numRec := int(data[2])<<8 | int(data[3])
	storageOffset := int(data[4])<<8 | int(data[5])

	recBase := 6
	endOfHeader := recBase + 12*numRec
	if endOfHeader > len(data) || storageOffset > len(data) || storageOffset < endOfHeader {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/name", Reason: "malformed record directory"}
	}

	t := &Table{Records: make([]Record, 0, numRec)}
	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		platformID := uint16(data[pos])<<8 | uint16(data[pos+1])
		encodingID := uint16(data[pos+2])<<8 | uint16(data[pos+3])
		languageID := uint16(data[pos+4])<<8 | uint16(data[pos+5])
		nameID := uint16(data[pos+6])<<8 | uint16(data[pos+7])
		length := int(data[pos+8])<<8 | int(data[pos+9])
		offset := int(data[pos+10])<<8 | int(data[pos+11])

		if storageOffset+offset+length > len(data) {
			return nil, &parser.InvalidFontError{SubSystem: "sfnt/name", Reason: "string runs past end of table"}
		}
		raw := data[storageOffset+offset : storageOffset+offset+length]
		rawCopy := append([]byte(nil), raw...)

		rec := Record{
			PlatformID: platformID,
			EncodingID: encodingID,
			LanguageID: languageID,
			NameID:     nameID,
			Raw:        rawCopy,
		}
		switch {
		case platformID == 0 || platformID == 3: // Unicode, Windows
			rec.Value = utf16Decode(rawCopy)
		case platformID == 1 && encodingID == 0: // Macintosh Roman
			rec.Value = mac.Decode(rawCopy)
		}
		t.Records = append(t.Records, rec)
	}

	return t, nil
}

// Patch replaces the string of exactly the record matching (nameID,
// platformID), leaving every other record's bytes untouched. It returns
// parser.NoMatchingNameRecordError if no record matches.
func (t *Table) Patch(nameID, platformID uint16, value string) error {
	for i := range t.Records {
		rec := &t.Records[i]
		if rec.NameID != nameID || rec.PlatformID != platformID {
			continue
		}
		rec.Value = value
		switch {
		case rec.PlatformID == 0 || rec.PlatformID == 3:
			rec.Raw = utf16Encode(value)
		case rec.PlatformID == 1 && rec.EncodingID == 0:
			rec.Raw = mac.Encode(value)
		default:
			rec.Raw = []byte(value)
		}
		return nil
	}
	return &parser.NoMatchingNameRecordError{NameID: nameID, PlatformID: platformID}
}

// Encode reassembles the "name" table from its records, in their existing
// order, deduplicating identical strings in the storage area.
func (t *Table) Encode() []byte {
	type built struct {
		offset, length uint16
	}
	strIndex := make(map[string]built)
	var storage []byte

	add := func(b []byte) built {
		key := string(b)
		if bi, ok := strIndex[key]; ok {
			return bi
		}
		bi := built{offset: uint16(len(storage)), length: uint16(len(b))}
		strIndex[key] = bi
		storage = append(storage, b...)
		return bi
	}

	numRec := len(t.Records)
	startOfStorage := 6 + numRec*12
	res := make([]byte, startOfStorage)
	res[2] = byte(numRec >> 8)
	res[3] = byte(numRec)

	for i, rec := range t.Records {
		bi := add(rec.Raw)
		base := 6 + i*12
		res[base] = byte(rec.PlatformID >> 8)
		res[base+1] = byte(rec.PlatformID)
		res[base+2] = byte(rec.EncodingID >> 8)
		res[base+3] = byte(rec.EncodingID)
		res[base+4] = byte(rec.LanguageID >> 8)
		res[base+5] = byte(rec.LanguageID)
		res[base+6] = byte(rec.NameID >> 8)
		res[base+7] = byte(rec.NameID)
		res[base+8] = byte(bi.length >> 8)
		res[base+9] = byte(bi.length)
		res[base+10] = byte(bi.offset >> 8)
		res[base+11] = byte(bi.offset)
	}

	res[4] = byte(startOfStorage >> 8)
	res[5] = byte(startOfStorage)
	return append(res, storage...)
}

func utf16Decode(buf []byte) string {
	var words []uint16
	for i := 0; i+1 < len(buf); i += 2 {
		words = append(words, uint16(buf[i])<<8|uint16(buf[i+1]))
	}
	return string(utf16.Decode(words))
}

func utf16Encode(s string) []byte {
	words := utf16.Encode([]rune(s))
	res := make([]byte, len(words)*2)
	for i, w := range words {
		res[i*2] = byte(w >> 8)
		res[i*2+1] = byte(w)
	}
	return res
}
