// github.com/typebrew/fontcore - a library for reading and writing font files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package parser collects the error kinds returned across the font core.
// The table, outline and rewrite packages return these, so that a host can
// branch on the error kind without string-matching messages. The cmap
// package and the root package's import step return plain error values
// of their own instead.
package parser

import "fmt"

// InvalidFontError indicates a problem with font data: a header that does
// not parse, or a table whose bytes are truncated or self-contradictory.
type InvalidFontError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// NotSupportedError indicates that a font file seems valid but uses a
// feature this library does not implement.
type NotSupportedError struct {
	SubSystem string
	Feature   string
}

func (err *NotSupportedError) Error() string {
	return err.SubSystem + ": " + err.Feature + " not supported"
}

// IsUnsupported returns true if the error is a NotSupportedError.
func IsUnsupported(err error) bool {
	_, ok := err.(*NotSupportedError)
	return ok
}

// TableMissingError is returned when a requested table is absent from the
// font's table directory.
type TableMissingError struct {
	Tag string
}

func (err *TableMissingError) Error() string {
	return fmt.Sprintf("sfnt: table %q missing", err.Tag)
}

// MalformedTableError is returned when a table is present but its contents
// cannot be decoded.
type MalformedTableError struct {
	Tag    string
	Reason string
}

func (err *MalformedTableError) Error() string {
	return fmt.Sprintf("sfnt: table %q malformed: %s", err.Tag, err.Reason)
}

// BadPathError is returned by the path-language parser on a truncated
// command or an unparseable number.
type BadPathError struct {
	Reason string
}

func (err *BadPathError) Error() string {
	return "sfnt/pathlang: " + err.Reason
}

// CubicInGlyfError is returned when a cubic command reaches the SimpleGlyph
// encoder; the glyf table only supports quadratic curves.
type CubicInGlyfError struct{}

func (err *CubicInGlyfError) Error() string {
	return "sfnt/glyf: cubic curves are not representable in a SimpleGlyph record"
}

// MalformedCompositeError is returned when a composite component stream
// ends in the middle of a component record.
type MalformedCompositeError struct {
	Reason string
}

func (err *MalformedCompositeError) Error() string {
	return "sfnt/glyf: malformed composite: " + err.Reason
}

// GlyphIDOverflowError is returned when a glyph ID would exceed the 16-bit
// range that "loca" and "maxp" can represent.
type GlyphIDOverflowError struct {
	GlyphID int
}

func (err *GlyphIDOverflowError) Error() string {
	return fmt.Sprintf("sfnt/glyf: glyph id %d overflows a 16-bit font", err.GlyphID)
}

// LocaOverflowError is returned when an offset into "glyf" no longer fits
// the short (16-bit) "loca" format and the caller has not requested the
// long format.
type LocaOverflowError struct {
	Offset int
}

func (err *LocaOverflowError) Error() string {
	return fmt.Sprintf("sfnt/loca: offset %d overflows the short loca format", err.Offset)
}

// NoMatchingNameRecordError is returned when a name-table patch does not
// match any existing record.
type NoMatchingNameRecordError struct {
	NameID     uint16
	PlatformID uint16
}

func (err *NoMatchingNameRecordError) Error() string {
	return fmt.Sprintf("sfnt/name: no record for nameId=%d platformId=%d", err.NameID, err.PlatformID)
}

// UnsupportedOutlineTableError is returned when a write operation targets
// an outline table this library does not write, such as CFF or CFF2.
type UnsupportedOutlineTableError struct {
	Tag string
}

func (err *UnsupportedOutlineTableError) Error() string {
	return fmt.Sprintf("sfnt: writing outline table %q is not supported", err.Tag)
}
