// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import (
	"encoding/binary"
	"fmt"
	"testing"

	"rsc.io/diff"
)

// These byte fixtures are lifted from the original Rust parser's own
// binrw test vectors for the array-name sub-element: a small-framed
// name, the zero-length empty-name special case, and a normal-framed
// name long enough to need the 8-byte-aligned form.
func TestReadSubHeaderName(t *testing.T) {
	tests := []struct {
		Name    string
		Raw     []byte
		Want    string
		WantLen int
	}{
		{
			Name:    "small name abc",
			Raw:     []byte{0x01, 0x00, 0x03, 0x00, 0x61, 0x62, 0x63, 0x00},
			Want:    "abc",
			WantLen: 3,
		},
		{
			Name:    "empty name",
			Raw:     []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			Want:    "",
			WantLen: 0,
		},
		{
			Name: "normal name abcdef",
			Raw: []byte{
				0x01, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00,
				0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x00, 0x00,
			},
			Want:    "abcdef",
			WantLen: 6,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			c := newCur(test.Raw, binary.LittleEndian)
			name, err := readName(c)
			if err != nil {
				t.Fatalf("readName(): %v", err)
			}
			if name != test.Want {
				t.Errorf("readName() = %q, want %q", name, test.Want)
			}
			if !c.empty() {
				t.Errorf("cursor has %d bytes left, want 0", c.len())
			}
		})
	}
}

func TestWriteNameRoundTrip(t *testing.T) {
	tests := []struct {
		Name string
		Want []byte
	}{
		{
			Name: "abc",
			Want: []byte{0x01, 0x00, 0x03, 0x00, 0x61, 0x62, 0x63, 0x00},
		},
		{
			Name: "",
			Want: []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			Name: "abcdef",
			Want: []byte{
				0x01, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00,
				0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x00, 0x00,
			},
		},
	}

	for _, test := range tests {
		w := newBld(binary.LittleEndian)
		writeName(w, test.Name)
		got := w.bytes()
		if string(got) != string(test.Want) {
			t.Errorf("writeName(%q) mismatch:\n%s", test.Name,
				diff.Format(fmt.Sprintf("% x\n", test.Want), fmt.Sprintf("% x\n", got)))
		}
	}
}

// dimension_2_3, dimension_0_0 and dimension_2_3_2 from the original
// parser's array-dimensions test module.
func TestReadDimensions(t *testing.T) {
	tests := []struct {
		Name string
		Raw  []byte
		Want []int
	}{
		{
			Name: "2x3",
			Raw: []byte{
				0x05, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00,
				0x02, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00,
			},
			Want: []int{2, 3},
		},
		{
			Name: "0x0",
			Raw: []byte{
				0x05, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
			Want: []int{0, 0},
		},
		{
			Name: "2x3x2",
			Raw: []byte{
				0x05, 0x00, 0x00, 0x00, 0x0c, 0x00, 0x00, 0x00,
				0x02, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
			},
			Want: []int{2, 3, 2},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			c := newCur(test.Raw, binary.LittleEndian)
			dims, err := readDimensions(c)
			if err != nil {
				t.Fatalf("readDimensions(): %v", err)
			}
			if len(dims) != len(test.Want) {
				t.Fatalf("readDimensions() = %v, want %v", dims, test.Want)
			}
			for i := range dims {
				if dims[i] != test.Want[i] {
					t.Errorf("readDimensions()[%d] = %d, want %d", i, dims[i], test.Want[i])
				}
			}
		})
	}
}

func TestWriteDimensionsRoundTrip(t *testing.T) {
	dims := []int{2, 3}
	w := newBld(binary.LittleEndian)
	writeDimensions(w, dims)

	c := newCur(w.bytes(), binary.LittleEndian)
	got, err := readDimensions(c)
	if err != nil {
		t.Fatalf("readDimensions(): %v", err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("round trip = %v, want [2 3]", got)
	}
}

func TestSubHeaderSmallVsNormal(t *testing.T) {
	w := newBld(binary.LittleEndian)
	writeSubHeader(w, miInt8, []byte{1, 2, 3})
	c := newCur(w.bytes(), binary.LittleEndian)
	typ, payload, small, err := readSubHeader(c)
	if err != nil {
		t.Fatalf("readSubHeader(): %v", err)
	}
	if !small {
		t.Errorf("3-byte payload should use small framing")
	}
	if typ != miInt8 {
		t.Errorf("type = %d, want %d", typ, miInt8)
	}
	if payload.len() != 3 {
		t.Errorf("payload length = %d, want 3", payload.len())
	}

	w2 := newBld(binary.LittleEndian)
	writeSubHeader(w2, miInt8, []byte{1, 2, 3, 4, 5})
	c2 := newCur(w2.bytes(), binary.LittleEndian)
	_, payload2, small2, err := readSubHeader(c2)
	if err != nil {
		t.Fatalf("readSubHeader(): %v", err)
	}
	if small2 {
		t.Errorf("5-byte payload should use normal framing")
	}
	if payload2.len() != 5 {
		t.Errorf("payload length = %d, want 5", payload2.len())
	}
}
