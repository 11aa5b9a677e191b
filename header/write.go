// github.com/typebrew/fontcore - a library for reading and writing font files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package header

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"sort"
)

// Write assembles a complete sfnt file from its tables and writes it to w.
// tableData maps 4-byte table tags to their already-encoded contents; tables
// are emitted in the recommended tag order (https://docs.microsoft.com/en-us/
// typography/opentype/spec/recom#optimized-table-ordering) and padded to a
// 4-byte boundary. If a "head" table is present, its checksumAdjustment
// field is patched in place before writing, using the whole-font checksum.
func Write(w io.Writer, scalerType uint32, tableData map[string][]byte) (int64, error) {
	names := orderedTableNames(tableData)
	numTables := len(names)

	sel := bits.Len(uint(numTables))
	if sel > 0 {
		sel--
	}
	var offsets struct {
		ScalerType    uint32
		NumTables     uint16
		SearchRange   uint16
		EntrySelector uint16
		RangeShift    uint16
	}
	offsets.ScalerType = scalerType
	offsets.NumTables = uint16(numTables)
	offsets.SearchRange = 1 << (sel + 4)
	offsets.EntrySelector = uint16(sel)
	offsets.RangeShift = uint16(16 * (numTables - 1<<sel))

	type record struct {
		Tag      [4]byte
		CheckSum uint32
		Offset   uint32
		Length   uint32
	}
	records := make([]record, numTables)
	offset := uint32(12 + 16*numTables)
	for i, name := range names {
		body := tableData[name]
		var rec record
		copy(rec.Tag[:], name)
		rec.CheckSum = Checksum(body)
		rec.Offset = offset
		rec.Length = uint32(len(body))
		records[i] = rec
		offset += 4 * ((rec.Length + 3) / 4)
	}
	sort.Slice(records, func(i, j int) bool {
		return bytes.Compare(records[i].Tag[:], records[j].Tag[:]) < 0
	})

	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.BigEndian, offsets); err != nil {
		return 0, err
	}
	if err := binary.Write(buf, binary.BigEndian, records); err != nil {
		return 0, err
	}
	headerBytes := buf.Bytes()

	var totalSum uint32
	totalSum += Checksum(headerBytes)
	for _, rec := range records {
		totalSum += rec.CheckSum
	}

	if headData, ok := tableData["head"]; ok && len(headData) >= 12 {
		// mirrors head.PatchChecksum; duplicated here so this package does
		// not need to import the table-specific head package.
		binary.BigEndian.PutUint32(headData[8:12], 0xB1B0AFBA-totalSum)
	}

	var totalSize int64
	n, err := w.Write(headerBytes)
	if err != nil {
		return 0, err
	}
	totalSize += int64(n)

	var pad [3]byte
	for _, name := range names {
		body := tableData[name]
		n, err := w.Write(body)
		if err != nil {
			return 0, err
		}
		totalSize += int64(n)
		if k := len(body) % 4; k != 0 {
			l, err := w.Write(pad[:4-k])
			if err != nil {
				return 0, err
			}
			totalSize += int64(l)
		}
	}

	return totalSize, nil
}

// recommendedOrder lists the conventional table order for TrueType-outlined
// fonts; tables not listed here are appended afterwards in sorted order.
var recommendedOrder = []string{
	"head", "hhea", "maxp", "OS/2", "hmtx", "LTSH", "VDMX", "hdmx", "cmap",
	"fpgm", "prep", "cvt ", "loca", "glyf", "kern", "name", "post", "gasp",
}

func orderedTableNames(tableData map[string][]byte) []string {
	var names []string
	done := make(map[string]bool)
	for _, name := range recommendedOrder {
		if _, ok := tableData[name]; ok {
			names = append(names, name)
			done[name] = true
		}
	}
	var extra []string
	for name := range tableData {
		if !done[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
