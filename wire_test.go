// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import (
	"encoding/binary"
	"testing"
)

func TestAlign8(t *testing.T) {
	tests := []struct {
		N    int
		Want int
	}{
		{0, 0},
		{1, 7},
		{7, 1},
		{8, 0},
		{9, 7},
		{16, 0},
	}

	for _, test := range tests {
		if got := align8(test.N); got != test.Want {
			t.Errorf("align8(%d) = %d, want %d", test.N, got, test.Want)
		}
	}
}

func TestAlign4(t *testing.T) {
	tests := []struct {
		N    int
		Want int
	}{
		{0, 0},
		{1, 3},
		{3, 1},
		{4, 0},
		{5, 3},
	}

	for _, test := range tests {
		if got := align4(test.N); got != test.Want {
			t.Errorf("align4(%d) = %d, want %d", test.N, got, test.Want)
		}
	}
}

func TestWireWidth(t *testing.T) {
	tests := []struct {
		Type wireType
		Want int
	}{
		{miInt8, 1},
		{miUint8, 1},
		{miUtf8, 1},
		{miInt16, 2},
		{miUint16, 2},
		{miUtf16, 2},
		{miInt32, 4},
		{miUint32, 4},
		{miSingle, 4},
		{miUtf32, 4},
		{miInt64, 8},
		{miUint64, 8},
		{miDouble, 8},
		{miMatrix, 0},
	}

	for _, test := range tests {
		if got := wireWidth(test.Type); got != test.Want {
			t.Errorf("wireWidth(%d) = %d, want %d", test.Type, got, test.Want)
		}
	}
}

func TestCurReadU32RoundTrip(t *testing.T) {
	w := newBld(binary.LittleEndian)
	w.addU32(0x01020304)
	c := newCur(w.bytes(), binary.LittleEndian)
	got, ok := c.readU32()
	if !ok {
		t.Fatalf("readU32() failed unexpectedly")
	}
	if got != 0x01020304 {
		t.Errorf("readU32() = %#x, want %#x", got, 0x01020304)
	}
	if !c.empty() {
		t.Errorf("cursor has %d bytes left, want 0", c.len())
	}
}

func TestCurBigEndian(t *testing.T) {
	w := newBld(binary.BigEndian)
	w.addU16(0x0102)
	c := newCur(w.bytes(), binary.BigEndian)
	got, ok := c.readU16()
	if !ok || got != 0x0102 {
		t.Errorf("readU16() = %#x, %v, want %#x, true", got, ok, 0x0102)
	}
}
