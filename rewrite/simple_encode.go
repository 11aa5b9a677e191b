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
	"math"

	"github.com/typebrew/fontcore/outline"
	"github.com/typebrew/fontcore/parser"
)

type simplePoint struct {
	x, y    int32
	onCurve bool
}

// encodeSimpleGlyph turns a command list (font-space, Y-up) into a
// TrueType SimpleGlyph byte record using the uncompressed layout: no
// SHORT_VECTOR/SAME-flag compaction, 16-bit deltas throughout. This is
// deliberately not glyf.SimpleGlyph.Pack, which produces the compact
// encoding used for glyphs already on disk; saved glyphs use the simpler,
// always-valid layout instead.
//
// Cubic commands are rejected: the glyf table has no cubic primitive.
func encodeSimpleGlyph(cmds []outline.Command) ([]byte, error) {
	var contours [][]simplePoint
	var cur []simplePoint

	flush := func() {
		if len(cur) > 0 {
			contours = append(contours, cur)
			cur = nil
		}
	}

	for _, c := range cmds {
		switch c.Kind {
		case outline.CmdMove:
			flush()
			cur = append(cur, simplePoint{round32(c.Point.X), round32(c.Point.Y), true})
		case outline.CmdLine:
			cur = append(cur, simplePoint{round32(c.Point.X), round32(c.Point.Y), true})
		case outline.CmdQuad:
			cur = append(cur, simplePoint{round32(c.Ctrl1.X), round32(c.Ctrl1.Y), false})
			cur = append(cur, simplePoint{round32(c.Point.X), round32(c.Point.Y), true})
		case outline.CmdCubic:
			return nil, &parser.CubicInGlyfError{}
		case outline.CmdClose:
			flush()
		}
	}
	flush()

	if len(contours) == 0 {
		return nil, nil
	}

	var endPts []uint16
	var flags []byte
	var xs, ys []int32
	total := 0
	for _, ct := range contours {
		for _, p := range ct {
			flags = append(flags, boolFlag(p.onCurve))
			xs = append(xs, p.x)
			ys = append(ys, p.y)
		}
		total += len(ct)
		endPts = append(endPts, uint16(total-1))
	}

	xMin, yMin, xMax, yMax := boundsOf(xs, ys)

	numContours := len(contours)
	buf := make([]byte, 0, 10+2*numContours+2+len(flags)+4*len(xs))

	buf = appendInt16(buf, int16(numContours))
	buf = appendInt16(buf, xMin)
	buf = appendInt16(buf, yMin)
	buf = appendInt16(buf, xMax)
	buf = appendInt16(buf, yMax)
	for _, e := range endPts {
		buf = appendUint16(buf, e)
	}
	buf = appendUint16(buf, 0) // instructionLength

	buf = append(buf, flags...)

	prevX, prevY := int32(0), int32(0)
	for i := range xs {
		buf = appendInt16(buf, int16(xs[i]-prevX))
		prevX = xs[i]
	}
	for i := range ys {
		buf = appendInt16(buf, int16(ys[i]-prevY))
		prevY = ys[i]
	}

	return buf, nil
}

func boolFlag(onCurve bool) byte {
	if onCurve {
		return 0x01
	}
	return 0x00
}

func round32(v float64) int32 {
	return int32(math.Round(v))
}

func boundsOf(xs, ys []int32) (xMin, yMin, xMax, yMax int16) {
	if len(xs) == 0 {
		return 0, 0, 0, 0
	}
	lx, ly, hx, hy := xs[0], ys[0], xs[0], ys[0]
	for i := 1; i < len(xs); i++ {
		if xs[i] < lx {
			lx = xs[i]
		}
		if xs[i] > hx {
			hx = xs[i]
		}
		if ys[i] < ly {
			ly = ys[i]
		}
		if ys[i] > hy {
			hy = ys[i]
		}
	}
	return int16(lx), int16(ly), int16(hx), int16(hy)
}

func appendInt16(buf []byte, v int16) []byte {
	return append(buf, byte(uint16(v)>>8), byte(v))
}

func appendUint16(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}
