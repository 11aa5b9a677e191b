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

// Package hint detects whether a font carries TrueType or CFF hinting
// programs and, for TrueType fonts, runs the bytecode interpreter to
// produce per-pixel-size hinted outlines. The interpreter itself is
// golang.org/x/image/font/sfnt's; this package only adapts its segment
// output to the drawing-path pen the rest of the core shares.
package hint

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/outline"
	"github.com/typebrew/fontcore/parser"
)

// Info reports which hinting mechanism, if any, a font carries.
type Info struct {
	HasTrueTypeHints bool // non-empty fpgm, prep, or cvt
	HasCFFHints      bool // has a CFF table (hints are embedded in charstrings)
}

// Check probes the font's table directory for hinting programs.
func Check(f *fontfile.Font) Info {
	var info Info
	for _, tag := range [...]string{"fpgm", "prep", "cvt "} {
		if b, ok := f.TableBytes(tag); ok && len(b) > 0 {
			info.HasTrueTypeHints = true
			break
		}
	}
	if b, ok := f.TableBytes("CFF "); ok && len(b) > 0 {
		info.HasCFFHints = true
	}
	return info
}

// GetOutlines instantiates a hinting interpreter for each of ppems and
// returns one drawing-path string per size, in the same format as the
// unhinted outline walker. A ppem that fails to hint (glyph index
// out of range) contributes an empty string rather than aborting the
// whole call; font data the interpreter cannot parse fails the whole call
// with an InvalidFontError.
func GetOutlines(data []byte, glyphID uint32, ppems []float64) ([]string, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/hint", Reason: err.Error()}
	}

	var buf sfnt.Buffer
	out := make([]string, len(ppems))
	for i, ppem := range ppems {
		segs, err := sf.LoadGlyph(&buf, sfnt.GlyphIndex(glyphID), fixed.Int26_6(ppem*64), &sfnt.LoadGlyphOptions{
			Hinting: font.HintingFull,
		})
		if err != nil {
			continue
		}
		var pen outline.StringPen
		walkSegments(segs, &pen)
		out[i] = pen.String()
	}
	return out, nil
}

// walkSegments drives pen over a hinted glyph's segments, closing each
// contour when the next MoveTo starts (or at the end of the last one).
func walkSegments(segs sfnt.Segments, pen outline.Pen) {
	started := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				pen.Close()
			}
			pen.MoveTo(toPt(seg.Args[0]))
			started = true
		case sfnt.SegmentOpLineTo:
			pen.LineTo(toPt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			pen.QuadTo(toPt(seg.Args[0]), toPt(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			pen.CubicTo(toPt(seg.Args[0]), toPt(seg.Args[1]), toPt(seg.Args[2]))
		}
	}
	if started {
		pen.Close()
	}
}

// toPt converts a 26.6 fixed-point, y-down rasteriser coordinate to a
// y-up point, undoing x/image's rasteriser convention. The values stay in
// pixels at the ppem the glyph was loaded at; they are not scaled back to
// design units.
func toPt(p fixed.Point26_6) outline.Pt {
	return outline.Pt{X: float64(p.X) / 64, Y: -float64(p.Y) / 64}
}
