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

// Package hhea reads and writes the "hhea" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
package hhea

import (
	"bytes"
	"encoding/binary"

	"github.com/typebrew/fontcore/parser"
)

const Length = 36

// Info represents the information in the "hhea" table.
type Info struct {
	Ascent             int16
	Descent            int16
	LineGap            int16
	AdvanceWidthMax    uint16
	MinLeftSideBearing int16
	MinRightSideBearing int16
	XMaxExtent         int16
	CaretSlopeRise     int16
	CaretSlopeRun      int16
	CaretOffset        int16
	NumOfLongHorMetrics uint16
}

type binaryHhea struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	_                   int16 // reserved
	_                   int16 // reserved
	_                   int16 // reserved
	_                   int16 // reserved
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}

// Read decodes the binary representation of the "hhea" table.
func Read(data []byte) (*Info, error) {
	enc := &binaryHhea{}
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, enc); err != nil {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/hhea", Reason: "table too short"}
	}
	if enc.Version != 0x00010000 {
		return nil, &parser.InvalidFontError{SubSystem: "sfnt/hhea", Reason: "unsupported table version"}
	}
	if enc.MetricDataFormat != 0 {
		return nil, &parser.NotSupportedError{SubSystem: "sfnt/hhea", Feature: "non-zero metric data format"}
	}

	return &Info{
		Ascent:              enc.Ascent,
		Descent:             enc.Descent,
		LineGap:             enc.LineGap,
		AdvanceWidthMax:     enc.AdvanceWidthMax,
		MinLeftSideBearing:  enc.MinLeftSideBearing,
		MinRightSideBearing: enc.MinRightSideBearing,
		XMaxExtent:          enc.XMaxExtent,
		CaretSlopeRise:      enc.CaretSlopeRise,
		CaretSlopeRun:       enc.CaretSlopeRun,
		CaretOffset:         enc.CaretOffset,
		NumOfLongHorMetrics: enc.NumOfLongHorMetrics,
	}, nil
}

// Encode returns the binary representation of the "hhea" table.
func (info *Info) Encode() []byte {
	enc := &binaryHhea{
		Version:             0x00010000,
		Ascent:              info.Ascent,
		Descent:             info.Descent,
		LineGap:             info.LineGap,
		AdvanceWidthMax:     info.AdvanceWidthMax,
		MinLeftSideBearing:  info.MinLeftSideBearing,
		MinRightSideBearing: info.MinRightSideBearing,
		XMaxExtent:          info.XMaxExtent,
		CaretSlopeRise:      info.CaretSlopeRise,
		CaretSlopeRun:       info.CaretSlopeRun,
		CaretOffset:         info.CaretOffset,
		NumOfLongHorMetrics: info.NumOfLongHorMetrics,
	}
	buf := bytes.NewBuffer(make([]byte, 0, Length))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}
