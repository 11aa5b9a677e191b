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

package session

import (
	"testing"

	"github.com/typebrew/fontcore/glyf"
	"github.com/typebrew/fontcore/internal/testfont"
)

func sampleFontBytes() []byte {
	return testfont.Build([]testfont.Glyph{
		{},
		{Codepoint: 'A', Advance: 500, LSB: 10, Simple: &glyf.SimpleUnpacked{
			Contours: []glyf.Contour{{
				{X: 0, Y: 0, OnCurve: true},
				{X: 500, Y: 0, OnCurve: true},
				{X: 250, Y: 500, OnCurve: true},
			}},
		}},
	})
}

func TestStoreGetMiss(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("missing.ttf"); ok {
		t.Errorf("Get on an empty store should miss")
	}
}

func TestStorePutAndGetReturnsACopy(t *testing.T) {
	s := NewStore()
	data := []byte{1, 2, 3}
	s.Put("a.ttf", data)

	got, ok := s.Get("a.ttf")
	if !ok {
		t.Fatalf("Get after Put should hit")
	}
	got[0] = 99
	again, _ := s.Get("a.ttf")
	if again[0] != 1 {
		t.Errorf("Get must return an independent copy; mutating it changed the cache")
	}

	data[0] = 77
	stillOriginal, _ := s.Get("a.ttf")
	if stillOriginal[0] != 1 {
		t.Errorf("Put must copy its input; mutating the caller's slice changed the cache")
	}
}

func TestPutInvalidatesOutlineSet(t *testing.T) {
	s := NewStore()
	path := "a.ttf"
	data := sampleFontBytes()
	s.Put(path, data)

	set, err := s.GetOutlineSet(path, data)
	if err != nil {
		t.Fatalf("GetOutlineSet: %v", err)
	}
	if set == nil {
		t.Fatalf("expected a non-nil outline set")
	}

	cached, ok := s.peekOutlineSet(path)
	if !ok || cached != set {
		t.Fatalf("expected the outline set to be cached after GetOutlineSet")
	}

	s.Put(path, data)
	if _, ok := s.peekOutlineSet(path); ok {
		t.Errorf("Put should invalidate the cached outline set")
	}
}

func TestGetOutlineSetCaches(t *testing.T) {
	s := NewStore()
	data := sampleFontBytes()

	first, err := s.GetOutlineSet("a.ttf", data)
	if err != nil {
		t.Fatalf("GetOutlineSet: %v", err)
	}
	second, err := s.GetOutlineSet("a.ttf", data)
	if err != nil {
		t.Fatalf("GetOutlineSet: %v", err)
	}
	if first != second {
		t.Errorf("expected the second call to return the memoised OutlineSet, got a different pointer")
	}
	if first.NumGlyphs != 2 {
		t.Errorf("NumGlyphs = %d, want 2", first.NumGlyphs)
	}
}

func TestGetOutlineSetInvalidFont(t *testing.T) {
	s := NewStore()
	_, err := s.GetOutlineSet("bad.ttf", []byte("not a font"))
	if err == nil {
		t.Fatalf("expected an error decoding garbage bytes")
	}
}
