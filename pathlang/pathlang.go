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

// Package pathlang parses the drawing-path string produced by the outline
// walker back into a command list in font-space (Y-up). It is the inverse
// of outline.StringPen.
package pathlang

import (
	"strconv"

	"github.com/typebrew/fontcore/outline"
	"github.com/typebrew/fontcore/parser"
)

type tokenKind int

const (
	tokCommand tokenKind = iota
	tokNumber
)

type token struct {
	kind tokenKind
	cmd  byte
	num  float64
}

// tokenize splits a path string into command-letter and number tokens.
// Whitespace and commas separate tokens; a lone sign not followed by a
// digit is discarded.
func tokenize(s string) ([]token, error) {
	var toks []token
	i := 0
	n := len(s)
	isSep := func(c byte) bool {
		return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ','
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }

	for i < n {
		c := s[i]
		switch {
		case isSep(c):
			i++

		case c == 'M' || c == 'm' || c == 'L' || c == 'l' ||
			c == 'Q' || c == 'q' || c == 'C' || c == 'c' ||
			c == 'Z' || c == 'z':
			toks = append(toks, token{kind: tokCommand, cmd: c})
			i++

		case c == '+' || c == '-' || c == '.' || isDigit(c):
			start := i
			j := i
			if s[j] == '+' || s[j] == '-' {
				j++
			}
			sawDigitOrDot := false
			for j < n && (isDigit(s[j]) || s[j] == '.') {
				sawDigitOrDot = true
				j++
			}
			if j < n && (s[j] == 'e' || s[j] == 'E') && sawDigitOrDot {
				k := j + 1
				if k < n && (s[k] == '+' || s[k] == '-') {
					k++
				}
				if k < n && isDigit(s[k]) {
					j = k
					for j < n && isDigit(s[j]) {
						j++
					}
				}
			}
			if !sawDigitOrDot {
				// lone sign with no following digits: discard
				i = j
				continue
			}
			v, err := strconv.ParseFloat(s[start:j], 64)
			if err != nil {
				return nil, &parser.BadPathError{Reason: "unparseable number " + s[start:j]}
			}
			toks = append(toks, token{kind: tokNumber, num: v})
			i = j

		default:
			// unrecognised letter: skip
			i++
		}
	}
	return toks, nil
}

// Parse tokenises and assembles s into a command list in font-space (Y-up):
// every Y value read from the string is negated, undoing the pen's
// Y-down convention.
func Parse(s string) ([]outline.Command, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}

	var cmds []outline.Command
	i := 0
	need := func(k int) error {
		if i+k > len(toks) {
			return &parser.BadPathError{Reason: "truncated command"}
		}
		for j := 0; j < k; j++ {
			if toks[i+j].kind != tokNumber {
				return &parser.BadPathError{Reason: "expected number, found command letter"}
			}
		}
		return nil
	}
	num := func(j int) float64 { return toks[i+j].num }

	for i < len(toks) {
		t := toks[i]
		if t.kind != tokCommand {
			return nil, &parser.BadPathError{Reason: "expected command letter"}
		}
		i++

		switch t.cmd {
		case 'M', 'm':
			if err := need(2); err != nil {
				return nil, err
			}
			cmds = append(cmds, outline.Command{Kind: outline.CmdMove, Point: outline.Pt{X: num(0), Y: -num(1)}})
			i += 2

		case 'L', 'l':
			if err := need(2); err != nil {
				return nil, err
			}
			cmds = append(cmds, outline.Command{Kind: outline.CmdLine, Point: outline.Pt{X: num(0), Y: -num(1)}})
			i += 2

		case 'Q', 'q':
			if err := need(4); err != nil {
				return nil, err
			}
			cmds = append(cmds, outline.Command{
				Kind:  outline.CmdQuad,
				Ctrl1: outline.Pt{X: num(0), Y: -num(1)},
				Point: outline.Pt{X: num(2), Y: -num(3)},
			})
			i += 4

		case 'C', 'c':
			if err := need(6); err != nil {
				return nil, err
			}
			cmds = append(cmds, outline.Command{
				Kind:  outline.CmdCubic,
				Ctrl1: outline.Pt{X: num(0), Y: -num(1)},
				Ctrl2: outline.Pt{X: num(2), Y: -num(3)},
				Point: outline.Pt{X: num(4), Y: -num(5)},
			})
			i += 6

		case 'Z', 'z':
			cmds = append(cmds, outline.Command{Kind: outline.CmdClose})
		}
	}

	return cmds, nil
}
