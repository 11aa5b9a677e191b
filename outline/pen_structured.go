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

package outline

// CommandKind identifies a drawing command within a Contour.
type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdLine
	CmdQuad
	CmdCubic
	CmdClose
)

// Command is one drawing instruction, in font-space (Y-up, not negated).
// Ctrl1/Ctrl2 are populated only for Quad (Ctrl1) and Cubic (Ctrl1, Ctrl2);
// Point is the command's endpoint and is unused for Close.
type Command struct {
	Kind         CommandKind
	Ctrl1, Ctrl2 Pt
	Point        Pt
}

// Contour is the command sequence following one Move, up to (and including,
// if present) its Close.
type Contour []Command

// StructuredPen accumulates Contours directly in font-space coordinates,
// for callers (the editor view) that need the command tree rather than a
// serialised path string.
type StructuredPen struct {
	Contours []Contour
	cur      Contour
}

func (p *StructuredPen) MoveTo(pt Pt) {
	if len(p.cur) > 0 {
		p.Contours = append(p.Contours, p.cur)
	}
	p.cur = Contour{{Kind: CmdMove, Point: pt}}
}

func (p *StructuredPen) LineTo(pt Pt) {
	p.cur = append(p.cur, Command{Kind: CmdLine, Point: pt})
}

func (p *StructuredPen) QuadTo(ctrl, pt Pt) {
	p.cur = append(p.cur, Command{Kind: CmdQuad, Ctrl1: ctrl, Point: pt})
}

func (p *StructuredPen) CubicTo(ctrl1, ctrl2, pt Pt) {
	p.cur = append(p.cur, Command{Kind: CmdCubic, Ctrl1: ctrl1, Ctrl2: ctrl2, Point: pt})
}

func (p *StructuredPen) Close() {
	p.cur = append(p.cur, Command{Kind: CmdClose})
	p.Contours = append(p.Contours, p.cur)
	p.cur = nil
}
