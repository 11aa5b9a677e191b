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

// Command fontcore-probe exercises every host-facing fontcore operation
// from a terminal, for manual testing without a GUI shell around it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/typebrew/fontcore"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	core := fontcore.New()
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "inspect":
		err = runInspect(core, args)
	case "table":
		err = runTable(core, args)
	case "outline":
		err = runOutline(core, args)
	case "save":
		err = runSave(core, args)
	case "hint":
		err = runHint(core, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logrus.WithField("command", cmd).Errorf("fontcore-probe: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: fontcore-probe <command> [args]

commands:
  inspect <file>
  table   <file> <tag>
  outline <file> <glyph>
  save    <file> <glyph> <path-string>
  hint    <file> <glyph> <ppem...>`)
}

func runInspect(core *fontcore.Core, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("inspect: expected a single file path")
	}
	path := fs.Arg(0)

	logrus.Infof("inspecting %s", path)
	meta, err := core.ParseFont(path)
	if err != nil {
		return err
	}
	return printJSON(meta)
}

func runTable(core *fontcore.Core, args []string) error {
	fs := flag.NewFlagSet("table", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("table: expected <file> <tag>")
	}
	path, tag := fs.Arg(0), fs.Arg(1)

	logrus.Infof("reading table %q from %s", tag, path)
	data, err := core.GetTableContent(path, tag)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runOutline(core *fontcore.Core, args []string) error {
	fs := flag.NewFlagSet("outline", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("outline: expected <file> <glyph>")
	}
	path := fs.Arg(0)
	glyphID, err := strconv.ParseUint(fs.Arg(1), 10, 32)
	if err != nil {
		return fmt.Errorf("outline: bad glyph id: %w", err)
	}

	logrus.Infof("building outline data for glyph %d of %s", glyphID, path)
	data, err := core.GetGlyphOutlineData(path, uint32(glyphID))
	if err != nil {
		return err
	}
	return printJSON(data)
}

func runSave(core *fontcore.Core, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 3 {
		return fmt.Errorf("save: expected <file> <glyph> <path-string>")
	}
	path := fs.Arg(0)
	glyphID, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("save: bad glyph id: %w", err)
	}
	pathString := fs.Arg(2)

	logrus.Infof("saving glyph %d of %s", glyphID, path)
	if err := core.SaveGlyphOutline(path, glyphID, pathString, "glyf"); err != nil {
		return err
	}
	logrus.Infof("saved glyph %d of %s", glyphID, path)
	return nil
}

func runHint(core *fontcore.Core, args []string) error {
	fs := flag.NewFlagSet("hint", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 3 {
		return fmt.Errorf("hint: expected <file> <glyph> <ppem...>")
	}
	path := fs.Arg(0)
	glyphID, err := strconv.ParseUint(fs.Arg(1), 10, 32)
	if err != nil {
		return fmt.Errorf("hint: bad glyph id: %w", err)
	}

	ppemArgs := fs.Args()[2:]
	ppems := make([]float64, len(ppemArgs))
	for i, a := range ppemArgs {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("hint: bad ppem %q: %w", a, err)
		}
		ppems[i] = v
	}

	info, err := core.CheckFontHinting(path)
	if err != nil {
		return err
	}
	logrus.Infof("%s hinting: truetype=%v cff=%v", path, info.HasTrueTypeHints, info.HasCFFHints)

	paths, err := core.GetHintedGlyphOutlines(path, uint32(glyphID), ppems)
	if err != nil {
		return err
	}
	for i, p := range paths {
		fmt.Printf("ppem %s: %s\n", strings.TrimRight(ppemArgs[i], "0"), p)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
