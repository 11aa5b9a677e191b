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

package rewrite

import (
	"testing"

	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/outline"
	"github.com/typebrew/fontcore/parser"
)

// decodeGlyphRecord decodes a single raw "glyf" table record (the 10-byte
// header plus body that encodeSimpleGlyph produces) the way it would be
// read back out of an actual glyf/loca table pair.
func decodeGlyphRecord(t *testing.T, record []byte) *glyf.Glyph {
	t.Helper()
	locaData, locaFormat, overflow := glyf.EncodeLocaOffsets([]int{0, len(record)})
	if overflow {
		t.Fatalf("unexpected loca overflow for a single glyph")
	}
	gg, err := glyf.Decode(&glyf.Encoded{GlyfData: record, LocaData: locaData, LocaFormat: locaFormat})
	if err != nil {
		t.Fatalf("glyf.Decode: %v", err)
	}
	if len(gg) != 1 {
		t.Fatalf("expected 1 glyph, got %d", len(gg))
	}
	return gg[0]
}

func triangleCommands() []outline.Command {
	return []outline.Command{
		{Kind: outline.CmdMove, Point: outline.Pt{X: 0, Y: 0}},
		{Kind: outline.CmdLine, Point: outline.Pt{X: 500, Y: 0}},
		{Kind: outline.CmdLine, Point: outline.Pt{X: 250, Y: 500}},
		{Kind: outline.CmdClose},
	}
}

func TestEncodeSimpleGlyphTriangle(t *testing.T) {
	data, err := encodeSimpleGlyph(triangleCommands())
	if err != nil {
		t.Fatalf("encodeSimpleGlyph: %v", err)
	}

	g := decodeGlyphRecord(t, data)
	sg, ok := g.Data.(glyf.SimpleGlyph)
	if !ok {
		t.Fatalf("expected SimpleGlyph, got %T", g.Data)
	}
	unpacked, err := sg.Unpack()
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(unpacked.Contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(unpacked.Contours))
	}
	ct := unpacked.Contours[0]
	if len(ct) != 3 {
		t.Fatalf("expected 3 points, got %d", len(ct))
	}
	want := []struct{ x, y int }{{0, 0}, {500, 0}, {250, 500}}
	for i, p := range ct {
		if int(p.X) != want[i].x || int(p.Y) != want[i].y || !p.OnCurve {
			t.Errorf("point %d: got (%d,%d,%v), want (%d,%d,true)", i, p.X, p.Y, p.OnCurve, want[i].x, want[i].y)
		}
	}
}

func TestEncodeSimpleGlyphWithQuadratic(t *testing.T) {
	cmds := []outline.Command{
		{Kind: outline.CmdMove, Point: outline.Pt{X: 0, Y: 0}},
		{Kind: outline.CmdQuad, Ctrl1: outline.Pt{X: 50, Y: 100}, Point: outline.Pt{X: 100, Y: 0}},
		{Kind: outline.CmdClose},
	}
	data, err := encodeSimpleGlyph(cmds)
	if err != nil {
		t.Fatalf("encodeSimpleGlyph: %v", err)
	}
	g := decodeGlyphRecord(t, data)
	sg, ok := g.Data.(glyf.SimpleGlyph)
	if !ok {
		t.Fatalf("expected SimpleGlyph, got %T", g.Data)
	}
	unpacked, err := sg.Unpack()
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	ct := unpacked.Contours[0]
	if len(ct) != 3 {
		t.Fatalf("expected 3 points (on, off, on), got %d", len(ct))
	}
	if !ct[0].OnCurve {
		t.Errorf("expected first point on-curve, got off-curve")
	}
	if ct[1].OnCurve {
		t.Errorf("expected second point off-curve, got on-curve")
	}
	if !ct[2].OnCurve {
		t.Errorf("expected third point on-curve, got off-curve")
	}
}

func TestEncodeSimpleGlyphRejectsCubic(t *testing.T) {
	cmds := []outline.Command{
		{Kind: outline.CmdMove, Point: outline.Pt{X: 0, Y: 0}},
		{Kind: outline.CmdCubic,
			Ctrl1: outline.Pt{X: 1, Y: 1}, Ctrl2: outline.Pt{X: 2, Y: 2}, Point: outline.Pt{X: 3, Y: 3}},
		{Kind: outline.CmdClose},
	}
	_, err := encodeSimpleGlyph(cmds)
	if err == nil {
		t.Fatalf("expected error for cubic command")
	}
	if _, ok := err.(*parser.CubicInGlyfError); !ok {
		t.Fatalf("expected *parser.CubicInGlyfError, got %T: %v", err, err)
	}
}

func TestEncodeSimpleGlyphEmpty(t *testing.T) {
	data, err := encodeSimpleGlyph(nil)
	if err != nil {
		t.Fatalf("encodeSimpleGlyph(nil): %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil data for an empty command list, got %d bytes", len(data))
	}
}
