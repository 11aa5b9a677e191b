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

// Package outline drives a pen over decoded glyf contours, producing either
// a drawing-path string or a structured command sequence. Both outputs
// share the same contour walk so the two never drift apart.
package outline

import "github.com/typebrew/fontcore/glyf"

// Pt is a point in font design units.
type Pt struct{ X, Y float64 }

// Pen is the capability set a contour walk drives. Implementations render
// the sequence as text (StringPen in pen_string.go) or as structured
// commands (StructuredPen in pen_structured.go).
type Pen interface {
	MoveTo(p Pt)
	LineTo(p Pt)
	QuadTo(ctrl, p Pt)
	CubicTo(ctrl1, ctrl2, p Pt)
	Close()
}

// WalkSimple drives pen over every contour of a decoded simple glyph.
// Quadratic B-spline contours with implied on-curve midpoints between
// consecutive off-curve points are expanded into an explicit point list
// before being walked.
func WalkSimple(contours []glyf.Contour, pen Pen) {
	for _, cc := range contours {
		if len(cc) < 2 {
			continue
		}
		walkContour(cc, pen)
	}
}

type extPoint struct {
	pt      Pt
	onCurve bool
}

func walkContour(cc glyf.Contour, pen Pen) {
	n := len(cc)
	toPt := func(p glyf.Point) Pt { return Pt{float64(p.X), float64(p.Y)} }
	mid := func(a, b glyf.Point) Pt {
		return Pt{float64(a.X+b.X) / 2, float64(a.Y+b.Y) / 2}
	}

	var ext []extPoint
	for i := 0; i < n; i++ {
		cur := cc[i]
		ext = append(ext, extPoint{toPt(cur), cur.OnCurve})
		next := cc[(i+1)%n]
		if !cur.OnCurve && !next.OnCurve {
			ext = append(ext, extPoint{mid(cur, next), true})
		}
	}

	start := -1
	for i, p := range ext {
		if p.onCurve {
			start = i
			break
		}
	}
	if start < 0 {
		// degenerate: every point is off-curve and no adjacent pair produced
		// a midpoint (possible only for a single-point contour, already
		// filtered out above); nothing sensible to draw.
		return
	}

	m := len(ext)
	rotated := make([]extPoint, m)
	for i := 0; i < m; i++ {
		rotated[i] = ext[(start+i)%m]
	}

	pen.MoveTo(rotated[0].pt)
	i := 1
	for i <= m {
		idx := i % m
		p := rotated[idx]
		if p.onCurve {
			pen.LineTo(p.pt)
			i++
		} else {
			next := rotated[(idx+1)%m]
			pen.QuadTo(p.pt, next.pt)
			i += 2
		}
	}
	pen.Close()
}
