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

// Package head reads, writes, and patches the "head" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"seehuhn.de/go/postscript/funit"

	"github.com/typebrew/fontcore/parser"
)

const Length = 54

// Info represents the information in the "head" table of an sfnt font.
type Info struct {
	FontRevision   Version // set by font manufacturer
	HasYBaseAt0    bool
	HasXBaseAt0    bool // left sidebearing point at x=0 (TrueType only)
	IsNonlinear    bool // outline/advance width may change nonlinearly
	UnitsPerEm     uint16
	Created        time.Time
	Modified       time.Time
	FontBBox       funit.Rect16
	IsBold         bool
	IsItalic       bool
	HasUnderline   bool
	IsOutline      bool
	HasShadow      bool
	IsCondensed    bool
	IsExtended     bool
	LowestRecPPEM  uint16
	HasLongOffsets bool // "loca" table uses 32 bit offsets
}

// Read decodes the binary representation of the "head" table.
func Read(data []byte) (*Info, error) {
	enc := &binaryHead{}
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, enc); err != nil {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/head", Reason: "table too short"}
	}

	if enc.Version != 0x00010000 {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/head", Reason: "unsupported table version"}
	}
	if enc.MagicNumber != 0x5F0F3CF5 {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/head", Reason: "invalid magic number"}
	}

	info := &Info{
		FontRevision: Version(enc.FontRevision),
		UnitsPerEm:   enc.UnitsPerEm,
		Created:      decodeTime(enc.Created),
		Modified:     decodeTime(enc.Modified),
		FontBBox: funit.Rect16{
			LLx: funit.Int16(enc.XMin),
			LLy: funit.Int16(enc.YMin),
			URx: funit.Int16(enc.XMax),
			URy: funit.Int16(enc.YMax),
		},
		LowestRecPPEM:  enc.LowestRecPPEM,
		HasLongOffsets: enc.IndexToLocFormat != 0,
	}

	flags := enc.Flags
	info.HasYBaseAt0 = flags&(1<<0) != 0
	info.HasXBaseAt0 = flags&(1<<1) != 0
	info.IsNonlinear = flags&(1<<2) != 0 || flags&(1<<4) != 0

	info.IsBold = enc.MacStyle&(1<<0) != 0
	info.IsItalic = enc.MacStyle&(1<<1) != 0
	info.HasUnderline = enc.MacStyle&(1<<2) != 0
	info.IsOutline = enc.MacStyle&(1<<3) != 0
	info.HasShadow = enc.MacStyle&(1<<4) != 0
	info.IsCondensed = enc.MacStyle&(1<<5) != 0
	info.IsExtended = enc.MacStyle&(1<<6) != 0

	return info, nil
}

// Encode returns the binary representation of the "head" table. The
// checksum adjustment field is left at zero; call PatchChecksum once the
// whole font has been assembled.
func (info *Info) Encode() []byte {
	var flags uint16
	if info.HasYBaseAt0 {
		flags |= 1 << 0
	}
	if info.HasXBaseAt0 {
		flags |= 1 << 1
	}
	if info.IsNonlinear {
		flags |= 1 << 2
		flags |= 1 << 4
	}
	flags |= 1 << 3
	flags |= 1 << 11
	flags |= 1 << 12
	flags |= 1 << 13

	var macStyle uint16
	if info.IsBold {
		macStyle |= 1 << 0
	}
	if info.IsItalic {
		macStyle |= 1 << 1
	}
	if info.HasUnderline {
		macStyle |= 1 << 2
	}
	if info.IsOutline {
		macStyle |= 1 << 3
	}
	if info.HasShadow {
		macStyle |= 1 << 4
	}
	if info.IsCondensed {
		macStyle |= 1 << 5
	}
	if info.IsExtended {
		macStyle |= 1 << 6
	}

	enc := &binaryHead{
		Version:           0x00010000,
		FontRevision:      uint32(info.FontRevision),
		MagicNumber:       0x5F0F3CF5,
		Flags:             flags,
		UnitsPerEm:        info.UnitsPerEm,
		Created:           encodeTime(info.Created),
		Modified:          encodeTime(info.Modified),
		XMin:              int16(info.FontBBox.LLx),
		YMin:              int16(info.FontBBox.LLy),
		XMax:              int16(info.FontBBox.URx),
		YMax:              int16(info.FontBBox.URy),
		MacStyle:          macStyle,
		LowestRecPPEM:     info.LowestRecPPEM,
		FontDirectionHint: 2,
	}
	if info.HasLongOffsets {
		enc.IndexToLocFormat = 1
	}

	buf := bytes.NewBuffer(make([]byte, 0, Length))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}

// PatchChecksum updates the checksum-adjustment field of an already-encoded
// "head" table in place. checksum is the simple big-endian-uint32 checksum
// of the entire font, computed with the checksum-adjustment field itself
// treated as zero.
func PatchChecksum(head []byte, checksum uint32) {
	binary.BigEndian.PutUint32(head[8:12], 0xB1B0AFBA-checksum)
}

type binaryHead struct {
	Version            uint32
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64

	XMin int16
	YMin int16
	XMax int16
	YMax int16

	MacStyle uint16

	LowestRecPPEM     uint16
	FontDirectionHint int16

	IndexToLocFormat int16
	GlyphDataFormat  int16
}

// Version is the font revision in 16.16 fixed-point format.
type Version uint32

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// Major and Minor split the 16.16 fixed-point value into the two decimal
// parts the FontMetadata.version string is built from.
func (v Version) Major() int { return int(v >> 16) }
func (v Version) Minor() int { return int(v & 0xFFFF) }

// the sfnt "longdatetime" epoch is 1904-01-01, not the Unix epoch.
var longDateTimeEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

func decodeTime(secs int64) time.Time {
	return longDateTimeEpoch.Add(time.Duration(secs) * time.Second)
}

func encodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return int64(t.Sub(longDateTimeEpoch).Seconds())
}
