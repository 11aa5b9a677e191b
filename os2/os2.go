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

// Package os2 reads and writes "OS/2" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/postscript/funit"

	"github.com/typebrew/fontcore/parser"
)

// Weight is the "usWeightClass" field of the "OS/2" table, a value from 1 to
// 1000, with the named constants below being the conventional steps of 100.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#usweightclass
type Weight uint16

// The named weight classes defined by the OpenType spec.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

func (w Weight) String() string {
	switch w {
	case WeightThin:
		return "Thin"
	case WeightExtraLight:
		return "ExtraLight"
	case WeightLight:
		return "Light"
	case WeightNormal:
		return "Normal"
	case WeightMedium:
		return "Medium"
	case WeightSemiBold:
		return "SemiBold"
	case WeightBold:
		return "Bold"
	case WeightExtraBold:
		return "ExtraBold"
	case WeightBlack:
		return "Black"
	default:
		return fmt.Sprintf("Weight(%d)", uint16(w))
	}
}

// Width is the "usWidthClass" field of the "OS/2" table, a value from 1
// (UltraCondensed) to 9 (UltraExpanded).
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#uswidthclass
type Width uint16

// The named width classes defined by the OpenType spec.
const (
	WidthUltraCondensed Width = 1
	WidthExtraCondensed Width = 2
	WidthCondensed      Width = 3
	WidthSemiCondensed  Width = 4
	WidthNormal         Width = 5
	WidthSemiExpanded   Width = 6
	WidthExpanded       Width = 7
	WidthExtraExpanded  Width = 8
	WidthUltraExpanded  Width = 9
)

func (w Width) String() string {
	switch w {
	case WidthUltraCondensed:
		return "UltraCondensed"
	case WidthExtraCondensed:
		return "ExtraCondensed"
	case WidthCondensed:
		return "Condensed"
	case WidthSemiCondensed:
		return "SemiCondensed"
	case WidthNormal:
		return "Normal"
	case WidthSemiExpanded:
		return "SemiExpanded"
	case WidthExpanded:
		return "Expanded"
	case WidthExtraExpanded:
		return "ExtraExpanded"
	case WidthUltraExpanded:
		return "UltraExpanded"
	default:
		return fmt.Sprintf("Width(%d)", uint16(w))
	}
}

// Info contains information from the "OS/2" table.
type Info struct {
	WeightClass Weight
	WidthClass  Width

	IsBold    bool // glyphs are emboldened
	IsItalic  bool // font contains italic or oblique glyphs
	IsRegular bool // glyphs are in the standard weight/style for the font
	IsOblique bool // font contains oblique glyphs

	FirstCharIndex uint16
	LastCharIndex  uint16

	Ascent     funit.Int16
	Descent    funit.Int16 // negative
	WinAscent  funit.Int16
	WinDescent funit.Int16 // positive
	LineGap    funit.Int16
	CapHeight  funit.Int16
	XHeight    funit.Int16

	AvgGlyphWidth funit.Int16 // arithmetic average of the width of all non-zero width glyphs

	SubscriptXSize     funit.Int16
	SubscriptYSize     funit.Int16
	SubscriptXOffset   funit.Int16
	SubscriptYOffset   funit.Int16
	SuperscriptXSize   funit.Int16
	SuperscriptYSize   funit.Int16
	SuperscriptXOffset funit.Int16
	SuperscriptYOffset funit.Int16
	StrikeoutSize      funit.Int16
	StrikeoutPosition  funit.Int16

	FamilyClass int16    // https://docs.microsoft.com/en-us/typography/opentype/spec/ibmfc
	Panose      [10]byte // https://monotype.github.io/panose/
	Vendor      string   // https://docs.microsoft.com/en-us/typography/opentype/spec/os2#achvendid

	UnicodeRange  UnicodeRange
	CodePageRange CodePageRange

	PermUse          Permissions
	PermNoSubsetting bool // the font may not be subsetted prior to embedding
	PermOnlyBitmap   bool // only bitmaps contained in the font may be embedded
}

// Read reads the "OS/2" table from r.
func Read(r io.Reader) (*Info, error) {
	v0 := &v0Data{}
	err := binary.Read(r, binary.BigEndian, v0)
	if err != nil {
		return nil, err
	} else if v0.Version > 5 {
		return nil, &parser.NotSupportedError{
			SubSystem: "sfnt/os2",
			Feature:   fmt.Sprintf("OS/2 table version %d", v0.Version),
		}
	}

	var permUse Permissions
	permBits := v0.Type
	if v0.Version < 3 {
		permBits &= 0xF
	}
	if permBits&8 != 0 {
		permUse = PermEdit
	} else if permBits&4 != 0 {
		permUse = PermView
	} else if permBits&2 != 0 {
		permUse = PermRestricted
	} else {
		permUse = PermInstall
	}

	sel := v0.Selection
	if v0.Version <= 3 {
		// Applications should ignore bits 7 to 15 in a font that has a
		// version 0 to version 3 OS/2 table.
		sel &= 0x007F
	}

	v0.UnicodeRange.Bool(57, v0.LastCharIndex == 0xFFFF) // "Non-Plane 0" bit

	info := &Info{
		WeightClass: Weight(v0.WeightClass),
		WidthClass:  Width(v0.WidthClass),

		IsBold:   sel&0x0060 == 0x0020,
		IsItalic: sel&0x0041 == 0x0001,
		// HasUnderline: sel&0x0042 == 0x0002,
		// IsOutlined:   sel&0x0048 == 0x0008,
		IsRegular: sel&0x0040 != 0,
		IsOblique: sel&0x0200 != 0,

		FirstCharIndex: v0.FirstCharIndex,
		LastCharIndex:  v0.LastCharIndex,

		AvgGlyphWidth: v0.AvgCharWidth,

		SubscriptXSize:     v0.SubscriptXSize,
		SubscriptYSize:     v0.SubscriptYSize,
		SubscriptXOffset:   v0.SubscriptXOffset,
		SubscriptYOffset:   v0.SubscriptYOffset,
		SuperscriptXSize:   v0.SuperscriptXSize,
		SuperscriptYSize:   v0.SuperscriptYSize,
		SuperscriptXOffset: v0.SuperscriptXOffset,
		SuperscriptYOffset: v0.SuperscriptYOffset,
		StrikeoutSize:      v0.StrikeoutSize,
		StrikeoutPosition:  v0.StrikeoutPosition,

		FamilyClass: v0.FamilyClass,
		Panose:      v0.Panose,
		Vendor:      string(v0.VendID[:]),

		UnicodeRange: v0.UnicodeRange,

		PermUse:          permUse,
		PermNoSubsetting: permBits&0x0100 != 0,
		PermOnlyBitmap:   permBits&0x0200 != 0,
	}

	v0ms := &v0MsData{}
	err = binary.Read(r, binary.BigEndian, v0ms)
	if err == io.EOF {
		return info, nil
	} else if err != nil {
		return nil, err
	}
	info.Ascent = v0ms.TypoAscender
	info.Descent = v0ms.TypoDescender
	info.LineGap = v0ms.TypoLineGap
	info.WinAscent = v0ms.WinAscent
	info.WinDescent = v0ms.WinDescent

	if v0.Version < 2 {
		return info, nil
	}

	var codePageRange [8]byte
	err = binary.Read(r, binary.BigEndian, codePageRange[:])
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	info.CodePageRange = CodePageRange(codePageRange[0])<<24 |
		CodePageRange(codePageRange[1])<<16 |
		CodePageRange(codePageRange[2])<<8 |
		CodePageRange(codePageRange[3]) |
		CodePageRange(codePageRange[4])<<56 |
		CodePageRange(codePageRange[5])<<48 |
		CodePageRange(codePageRange[6])<<40 |
		CodePageRange(codePageRange[7])<<32

	v2 := &v2Data{}
	err = binary.Read(r, binary.BigEndian, v2)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if v2.XHeight > 0 {
		info.XHeight = v2.XHeight
	}
	if v2.CapHeight > 0 {
		info.CapHeight = v2.CapHeight
	}

	return info, nil
}

// Encode converts the info to a "OS/2" table.
func (info *Info) Encode() []byte {
	var permBits uint16
	switch info.PermUse {
	case PermRestricted:
		permBits |= 2
	case PermView:
		permBits |= 4
	case PermEdit:
		permBits |= 8
	}
	if info.PermNoSubsetting {
		permBits |= 0x0100
	}
	if info.PermOnlyBitmap {
		permBits |= 0x0200
	}

	var sel uint16
	if info.IsRegular {
		sel |= 0x0040
	} else {
		if info.IsItalic {
			sel |= 0x0001
		}
		if info.IsBold {
			sel |= 0x0020
		}
	}
	// if info.HasUnderline {
	// 	sel |= 0x0002
	// }
	// if info.IsOutlined {
	// 	sel |= 0x0008
	// }
	if info.IsOblique {
		sel |= 0x0200
	}
	sel |= 0x0080 // Use_Typo_Metrics: always use Typo{A,De}scender

	vendor := [4]byte{' ', ' ', ' ', ' '}
	if len(info.Vendor) == 4 {
		copy(vendor[:], info.Vendor)
	}

	buf := &bytes.Buffer{}
	v0 := &v0Data{
		Version:            4,
		AvgCharWidth:       info.AvgGlyphWidth,
		WeightClass:        uint16(info.WeightClass),
		WidthClass:         uint16(info.WidthClass),
		Type:               permBits,
		SubscriptXSize:     info.SubscriptXSize,
		SubscriptYSize:     info.SubscriptYSize,
		SubscriptXOffset:   info.SubscriptXOffset,
		SubscriptYOffset:   info.SubscriptYOffset,
		SuperscriptXSize:   info.SuperscriptXSize,
		SuperscriptYSize:   info.SuperscriptYSize,
		SuperscriptXOffset: info.SuperscriptXOffset,
		SuperscriptYOffset: info.SuperscriptYOffset,
		StrikeoutSize:      info.StrikeoutSize,
		StrikeoutPosition:  info.StrikeoutPosition,
		FamilyClass:        info.FamilyClass,
		Panose:             info.Panose,
		UnicodeRange:       info.UnicodeRange,
		VendID:             vendor,
		Selection:          sel,
		FirstCharIndex:     info.FirstCharIndex,
		LastCharIndex:      info.LastCharIndex,
	}
	v0.UnicodeRange.Bool(57, info.LastCharIndex == 0xFFFF) // "Non-Plane 0" bit
	_ = binary.Write(buf, binary.BigEndian, v0)

	v0ms := &v0MsData{
		TypoAscender:  info.Ascent,
		TypoDescender: info.Descent,
		TypoLineGap:   info.LineGap,
		WinAscent:     info.WinAscent,
		WinDescent:    info.WinDescent,
	}
	_ = binary.Write(buf, binary.BigEndian, v0ms)

	codePageRange := info.CodePageRange
	buf.Write([]byte{
		byte(codePageRange >> 24),
		byte(codePageRange >> 16),
		byte(codePageRange >> 8),
		byte(codePageRange),
		byte(codePageRange >> 56),
		byte(codePageRange >> 48),
		byte(codePageRange >> 40),
		byte(codePageRange >> 32),
	})

	v2 := &v2Data{
		XHeight:   info.XHeight,
		CapHeight: info.CapHeight,
		// MaxContext:  0, // TODO(voss)
	}
	_ = binary.Write(buf, binary.BigEndian, v2)

	return buf.Bytes()
}

// UnicodeRange is a bitfield which describes which unicode
// blocks or ranges are "functional" in a font.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#ur
type UnicodeRange [4]uint32

// Set sets the given bit in the unicode range.
func (ur *UnicodeRange) Set(bit UnicodeRangeBit) {
	w := bit / 32
	bit = bit % 32
	ur[w] |= 1 << bit
}

// Bool sets or clears the given bit in the unicode range.
func (ur *UnicodeRange) Bool(bit UnicodeRangeBit, set bool) {
	w := bit / 32
	bit = bit % 32
	if set {
		ur[w] |= 1 << bit
	} else {
		ur[w] &^= 1 << bit
	}
}

// UnicodeRangeBit numbers a bit position within a UnicodeRange. Bit 57
// ("Non-Plane 0") is the only one the core sets or reads directly; the rest
// of the assignments are in the OpenType spec linked above.
type UnicodeRangeBit int

// CodePageRange is a bitmask of code pages supported by a font.
type CodePageRange uint64

// Set sets the given bit in the code page range.
func (cpr *CodePageRange) Set(bit CodePage) {
	*cpr |= 1 << bit
}

// CodePage represents the positions of individual bits which may be set in a
// [CodePageRange].
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#cpr
type CodePage int

// The code pages the core round-trips by name; the table's other bit
// positions still decode and re-encode correctly through CodePageRange.
const (
	CP1252      CodePage = 0  // CP1252, Latin 1
	CPMacintosh CodePage = 29 // Macintosh Character Set (US Roman)
	CPSymbol    CodePage = 31 // Symbol Character Set
)

// Permissions describes rights to embed and use a font.
type Permissions int

func (perm Permissions) String() string {
	switch perm {
	case PermInstall:
		return "can install"
	case PermEdit:
		return "can edit"
	case PermView:
		return "can view"
	case PermRestricted:
		return "restricted"
	default:
		return fmt.Sprintf("Permissions(%d)", perm)
	}
}

// The possible permission values.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#fstype
const (
	PermInstall    Permissions = iota // bits 0-3 unset
	PermEdit                          // only bit 3 set
	PermView                          // only bit 2 set
	PermRestricted                    // only bit 1 set
)

type v0Data struct {
	Version            uint16
	AvgCharWidth       funit.Int16
	WeightClass        uint16
	WidthClass         uint16
	Type               uint16
	SubscriptXSize     funit.Int16
	SubscriptYSize     funit.Int16
	SubscriptXOffset   funit.Int16
	SubscriptYOffset   funit.Int16
	SuperscriptXSize   funit.Int16
	SuperscriptYSize   funit.Int16
	SuperscriptXOffset funit.Int16
	SuperscriptYOffset funit.Int16
	StrikeoutSize      funit.Int16
	StrikeoutPosition  funit.Int16
	FamilyClass        int16
	Panose             [10]byte
	UnicodeRange       UnicodeRange
	VendID             [4]byte
	Selection          uint16
	FirstCharIndex     uint16
	LastCharIndex      uint16
}

type v0MsData struct {
	TypoAscender  funit.Int16
	TypoDescender funit.Int16
	TypoLineGap   funit.Int16
	WinAscent     funit.Int16
	WinDescent    funit.Int16 // positive
}

type v2Data struct {
	XHeight     funit.Int16
	CapHeight   funit.Int16
	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16
}
