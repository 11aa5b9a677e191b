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

package outline

import (
	"strconv"
	"strings"
)

// StringPen renders a drawing-path string in Y-down screen space: every Y
// coordinate is negated relative to the font's Y-up design space. Numbers
// use the shortest round-trip decimal representation so the output is
// stable across platforms.
type StringPen struct {
	b strings.Builder
}

func (p *StringPen) fmt(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (p *StringPen) MoveTo(pt Pt) {
	p.b.WriteString("M ")
	p.b.WriteString(p.fmt(pt.X))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(-pt.Y))
	p.b.WriteByte(' ')
}

func (p *StringPen) LineTo(pt Pt) {
	p.b.WriteString("L ")
	p.b.WriteString(p.fmt(pt.X))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(-pt.Y))
	p.b.WriteByte(' ')
}

func (p *StringPen) QuadTo(ctrl, pt Pt) {
	p.b.WriteString("Q ")
	p.b.WriteString(p.fmt(ctrl.X))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(-ctrl.Y))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(pt.X))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(-pt.Y))
	p.b.WriteByte(' ')
}

func (p *StringPen) CubicTo(ctrl1, ctrl2, pt Pt) {
	p.b.WriteString("C ")
	p.b.WriteString(p.fmt(ctrl1.X))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(-ctrl1.Y))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(ctrl2.X))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(-ctrl2.Y))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(pt.X))
	p.b.WriteByte(' ')
	p.b.WriteString(p.fmt(-pt.Y))
	p.b.WriteByte(' ')
}

func (p *StringPen) Close() {
	p.b.WriteString("Z ")
}

// String returns the accumulated path string.
func (p *StringPen) String() string {
	return strings.TrimRight(p.b.String(), " ")
}

// Bounds tracks the smallest box enclosing every coordinate a pen has seen,
// including quadratic and cubic control points.
type Bounds struct {
	XMin, YMin, XMax, YMax float64
	any                    bool
}

func (b *Bounds) include(p Pt) {
	if !b.any {
		b.XMin, b.XMax = p.X, p.X
		b.YMin, b.YMax = p.Y, p.Y
		b.any = true
		return
	}
	if p.X < b.XMin {
		b.XMin = p.X
	}
	if p.X > b.XMax {
		b.XMax = p.X
	}
	if p.Y < b.YMin {
		b.YMin = p.Y
	}
	if p.Y > b.YMax {
		b.YMax = p.Y
	}
}

// BoundsPen wraps another Pen, forwarding every call while accumulating
// Bounds over every coordinate it observes.
type BoundsPen struct {
	Pen    Pen
	Bounds Bounds
}

func (p *BoundsPen) MoveTo(pt Pt) {
	p.Bounds.include(pt)
	p.Pen.MoveTo(pt)
}

func (p *BoundsPen) LineTo(pt Pt) {
	p.Bounds.include(pt)
	p.Pen.LineTo(pt)
}

func (p *BoundsPen) QuadTo(ctrl, pt Pt) {
	p.Bounds.include(ctrl)
	p.Bounds.include(pt)
	p.Pen.QuadTo(ctrl, pt)
}

func (p *BoundsPen) CubicTo(ctrl1, ctrl2, pt Pt) {
	p.Bounds.include(ctrl1)
	p.Bounds.include(ctrl2)
	p.Bounds.include(pt)
	p.Pen.CubicTo(ctrl1, ctrl2, pt)
}

func (p *BoundsPen) Close() { p.Pen.Close() }
