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

// Package fontcore is the host-facing surface of the font inspector/editor
// core: it wires the session cache, the outline pipelines, the structured
// editor, the path-language codec, and the table rewriter behind the
// synchronous operation set a GUI host calls into. Everything here is a
// thin adapter; the actual work happens in the subpackages it imports.
package fontcore

import (
	"os"

	"github.com/typebrew/fontcore/session"
)

// Core is the entry point a host constructs once per process. The zero
// value is not usable; call New.
type Core struct {
	store *session.Store
}

// New returns a ready-to-use Core with an empty session cache.
func New() *Core {
	return &Core{store: session.NewStore()}
}

// load returns the bytes for path, preferring the session cache and falling
// back to reading the file and populating the cache.
func (c *Core) load(path string) ([]byte, error) {
	if data, ok := c.store.Get(path); ok {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c.store.Put(path, data)
	return data, nil
}

// commit writes data to path, then replaces the cached bytes (which also
// invalidates the cached OutlineSet, per session.Store.Put).
func (c *Core) commit(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	c.store.Put(path, data)
	return nil
}
