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

package pathlang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/typebrew/fontcore/outline"
	"github.com/typebrew/fontcore/parser"
)

func TestParseNegatesY(t *testing.T) {
	got, err := Parse("M10,20 L30,40 Z")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []outline.Command{
		{Kind: outline.CmdMove, Point: outline.Pt{X: 10, Y: -20}},
		{Kind: outline.CmdLine, Point: outline.Pt{X: 30, Y: -40}},
		{Kind: outline.CmdClose},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuadAndCubic(t *testing.T) {
	got, err := Parse("M0 0 Q10 -10 20 0 C1 2 3 4 5 6 Z")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []outline.Command{
		{Kind: outline.CmdMove, Point: outline.Pt{X: 0, Y: 0}},
		{Kind: outline.CmdQuad, Ctrl1: outline.Pt{X: 10, Y: 10}, Point: outline.Pt{X: 20, Y: 0}},
		{Kind: outline.CmdCubic,
			Ctrl1: outline.Pt{X: 1, Y: -2}, Ctrl2: outline.Pt{X: 3, Y: -4}, Point: outline.Pt{X: 5, Y: -6}},
		{Kind: outline.CmdClose},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScientificNotation(t *testing.T) {
	got, err := Parse("M1.5e1 -2E-1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 1 || got[0].Point.X != 15 || got[0].Point.Y != 0.2 {
		t.Fatalf("Parse scientific notation: got %+v", got)
	}
}

func TestParseLoneSignDiscarded(t *testing.T) {
	// a bare "-" with nothing following it is not a number and is dropped,
	// leaving the move one argument short, which is then an error.
	_, err := Parse("M10 - Z")
	if err == nil {
		t.Fatalf("Parse: expected error for truncated move")
	}
	var badPath *parser.BadPathError
	if !errors.As(err, &badPath) {
		t.Fatalf("Parse: expected BadPathError, got %T: %v", err, err)
	}
}

func TestParseTruncatedCommand(t *testing.T) {
	_, err := Parse("L5")
	if err == nil {
		t.Fatalf("Parse: expected error for truncated line")
	}
}

func TestParseBadNumber(t *testing.T) {
	_, err := Parse("M1e 2")
	// "1e" alone has no exponent digits, so it parses as the number "1"
	// followed by the unrecognised letter 'e', which is skipped.
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
}

func TestParseLeadingCommandRequired(t *testing.T) {
	_, err := Parse("10 20")
	if err == nil {
		t.Fatalf("Parse: expected error when path does not start with a command letter")
	}
}

