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

// Package maxp reads and writes the "maxp" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
//
// Two versions exist: 0.5 (CFF-outlined fonts, numGlyphs only) and 1.0
// (TrueType-outlined fonts, with additional profiling fields the
// rasteriser uses to size its working buffers). This library edits
// TrueType fonts, so it keeps the version-1.0 fields it reads intact
// across a patch rather than collapsing to the simplified form.
package maxp

import (
	"bytes"
	"encoding/binary"

	"github.com/typebrew/fontcore/parser"
)

const (
	versionCFF      = 0x00005000
	versionTrueType = 0x00010000
)

// Info represents the information in the "maxp" table.
type Info struct {
	NumGlyphs uint16

	// IsTrueType is true if the table was read (or should be written) in
	// version 1.0, i.e. with the profiling fields below populated.
	IsTrueType bool

	MaxPoints             uint16
	MaxContours            uint16
	MaxCompositePoints     uint16
	MaxCompositeContours   uint16
	MaxZones               uint16
	MaxTwilightPoints      uint16
	MaxStorage             uint16
	MaxFunctionDefs        uint16
	MaxInstructionDefs     uint16
	MaxStackElements       uint16
	MaxSizeOfInstructions  uint16
	MaxComponentElements   uint16
	MaxComponentDepth      uint16
}

// Read decodes the binary representation of the "maxp" table.
func Read(data []byte) (*Info, error) {
	if len(data) < 6 {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/maxp", Reason: "table too short"}
	}
	version := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	numGlyphs := uint16(data[4])<<8 | uint16(data[5])

	switch version {
	case versionCFF:
		return &Info{NumGlyphs: numGlyphs}, nil
	case versionTrueType:
		if len(data) < 32 {
			return nil, &parser.InvalidFontError{SubSystem: "sfnt/maxp", Reason: "truncated version 1.0 table"}
		}
		var fields [13]uint16
		r := bytes.NewReader(data[6:32])
		if err := binary.Read(r, binary.BigEndian, &fields); err != nil {
			return nil, &parser.InvalidFontError{SubSystem: "sfnt/maxp", Reason: "truncated version 1.0 table"}
		}
		return &Info{
			NumGlyphs:             numGlyphs,
			IsTrueType:            true,
			MaxPoints:             fields[0],
			MaxContours:           fields[1],
			MaxCompositePoints:    fields[2],
			MaxCompositeContours:  fields[3],
			MaxZones:              fields[4],
			MaxTwilightPoints:     fields[5],
			MaxStorage:            fields[6],
			MaxFunctionDefs:       fields[7],
			MaxInstructionDefs:    fields[8],
			MaxStackElements:      fields[9],
			MaxSizeOfInstructions: fields[10],
			MaxComponentElements:  fields[11],
			MaxComponentDepth:     fields[12],
		}, nil
	default:
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/maxp", Reason: "unknown table version"}
	}
}

// Encode returns the binary representation of the "maxp" table.
func (info *Info) Encode() []byte {
	if !info.IsTrueType {
		return []byte{0x00, 0x00, 0x50, 0x00, byte(info.NumGlyphs >> 8), byte(info.NumGlyphs)}
	}

	buf := bytes.NewBuffer(make([]byte, 0, 32))
	buf.Write([]byte{0x00, 0x01, 0x00, 0x00})
	fields := [13]uint16{
		info.NumGlyphs,
		info.MaxPoints,
		info.MaxContours,
		info.MaxCompositePoints,
		info.MaxCompositeContours,
		info.MaxZones,
		info.MaxTwilightPoints,
		info.MaxStorage,
		info.MaxFunctionDefs,
		info.MaxInstructionDefs,
		info.MaxStackElements,
		info.MaxSizeOfInstructions,
		info.MaxComponentElements,
	}
	_ = binary.Write(buf, binary.BigEndian, fields)
	buf.Write([]byte{0x00, byte(info.MaxComponentDepth)})
	return buf.Bytes()
}

// WithNumGlyphs returns a copy of info with NumGlyphs replaced; the maxp
// profiling fields (point/contour/component maxima) are left as recorded,
// since appending an empty or simple new glyph cannot exceed them in a way
// that matters for a conforming rasteriser's buffer sizing.
func (info *Info) WithNumGlyphs(n int) *Info {
	cp := *info
	cp.NumGlyphs = uint16(n)
	return &cp
}
