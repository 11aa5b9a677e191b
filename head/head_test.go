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

package head

import (
	"errors"
	"testing"

	"github.com/typebrew/fontcore/parser"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := &Info{
		FontRevision:   0x00010000,
		UnitsPerEm:     1000,
		IsBold:         true,
		IsItalic:       true,
		LowestRecPPEM:  8,
		HasLongOffsets: true,
	}

	data := in.Encode()
	if len(data) != Length {
		t.Fatalf("Encode: len = %d, want %d", len(data), Length)
	}

	out, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out.UnitsPerEm != in.UnitsPerEm {
		t.Errorf("UnitsPerEm = %d, want %d", out.UnitsPerEm, in.UnitsPerEm)
	}
	if !out.IsBold || !out.IsItalic {
		t.Errorf("IsBold/IsItalic not preserved: %+v", out)
	}
	if !out.HasLongOffsets {
		t.Errorf("HasLongOffsets not preserved")
	}
}

func TestReadRejectsBadMagicNumber(t *testing.T) {
	in := &Info{UnitsPerEm: 1000}
	data := in.Encode()
	data[12] ^= 0xFF // corrupt the magic number

	_, err := Read(data)
	if err == nil {
		t.Fatalf("expected an error for a corrupted magic number")
	}
	var invalid *parser.InvalidFontError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected a parser.InvalidFontError, got %T: %v", err, err)
	}
}

func TestPatchChecksum(t *testing.T) {
	in := &Info{UnitsPerEm: 1000}
	data := in.Encode()
	PatchChecksum(data, 0)
	want := uint32(0xB1B0AFBA)
	got := uint32(data[8])<<24 | uint32(data[9])<<16 | uint32(data[10])<<8 | uint32(data[11])
	if got != want {
		t.Errorf("checksum adjustment = %#x, want %#x", got, want)
	}
}
