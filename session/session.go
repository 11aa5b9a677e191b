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

// Package session holds the two process-wide caches a font editor's core
// keeps across calls: the current bytes of every open font, and the lazily
// computed OutlineSet derived from them. The two are deliberately guarded
// by separate mutexes (see Store.GetOutlineSet) so that the expensive
// outline walk never runs while either lock is held.
package session

import (
	"sync"

	"github.com/typebrew/fontcore/fontfile"
	"github.com/typebrew/fontcore/outline"
)

// Store is a process-wide, path-keyed font byte cache with a lazily
// computed, path-keyed OutlineSet cache layered on top. The zero value has
// no maps and is not ready to use; create a Store with NewStore.
type Store struct {
	bytesMu sync.Mutex
	bytes   map[string][]byte

	outlinesMu sync.Mutex
	outlines   map[string]*outline.OutlineSet
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		bytes:    make(map[string][]byte),
		outlines: make(map[string]*outline.OutlineSet),
	}
}

// Get returns a copy of the cached bytes for path, or false if nothing is
// cached (the caller is then expected to load the file itself and call Put).
func (s *Store) Get(path string) ([]byte, bool) {
	s.bytesMu.Lock()
	defer s.bytesMu.Unlock()
	b, ok := s.bytes[path]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

// Put replaces the cached bytes for path and invalidates its OutlineSet, in
// the same critical section so a reader never observes new bytes alongside
// a stale cached OutlineSet.
func (s *Store) Put(path string, data []byte) {
	s.bytesMu.Lock()
	defer s.bytesMu.Unlock()
	s.bytes[path] = append([]byte(nil), data...)
	s.invalidateOutlineSet(path)
}

// invalidateOutlineSet removes the memoised OutlineSet for path, if any.
func (s *Store) invalidateOutlineSet(path string) {
	s.outlinesMu.Lock()
	delete(s.outlines, path)
	s.outlinesMu.Unlock()
}

// GetOutlineSet returns the memoised OutlineSet for path, computing and
// caching it first if absent. The outline walk itself runs with neither
// lock held: the lock is acquired to check for a cached result, released
// for the (potentially expensive) walk, then re-acquired to insert it. Two
// callers racing on the same uncached path may both walk the font; the
// loser's result is discarded, which is harmless since both walks of the
// same bytes agree.
func (s *Store) GetOutlineSet(path string, data []byte) (*outline.OutlineSet, error) {
	if set, ok := s.peekOutlineSet(path); ok {
		return set, nil
	}

	f, err := fontfile.Parse(data)
	if err != nil {
		return nil, err
	}
	set, err := outline.Walk(f)
	if err != nil {
		return nil, err
	}

	s.outlinesMu.Lock()
	if existing, ok := s.outlines[path]; ok {
		set = existing
	} else {
		s.outlines[path] = set
	}
	s.outlinesMu.Unlock()

	return set, nil
}

func (s *Store) peekOutlineSet(path string) (*outline.OutlineSet, bool) {
	s.outlinesMu.Lock()
	defer s.outlinesMu.Unlock()
	set, ok := s.outlines[path]
	return set, ok
}
