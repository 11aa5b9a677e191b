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

package fontcore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedExtension is returned by ImportFont when srcPath does not
// end in ".ttf" or ".otf" (case-insensitive).
var ErrUnsupportedExtension = errors.New("fontcore: source file is not a .ttf or .otf font")

// ErrDestinationExists is returned by ImportFont when a file of the same
// name already exists under destDir.
var ErrDestinationExists = errors.New("fontcore: a font with that name already exists in the destination")

// ImportFont copies srcPath into destDir (creating it if absent) and
// returns the new path. It refuses to import anything other than a .ttf or
// .otf file, and refuses to overwrite an existing same-named file. This
// mirrors a desktop font manager's "add a font from outside the library"
// action: the parsing and editing operations above only ever operate on
// files already inside the managed directory.
func ImportFont(srcPath, destDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(srcPath))
	if ext != ".ttf" && ext != ".otf" {
		return "", ErrUnsupportedExtension
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	destPath := filepath.Join(destDir, filepath.Base(srcPath))
	if _, err := os.Stat(destPath); err == nil {
		return "", ErrDestinationExists
	} else if !os.IsNotExist(err) {
		return "", err
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(destPath)
		return "", err
	}
	return destPath, nil
}
