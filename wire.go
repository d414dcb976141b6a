// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import (
	"encoding/binary"

	"golang.org/x/crypto/cryptobyte"
)

// wireType names the physical encoding of a sub-element payload, as
// distinct from the logical classTag of the enclosing array.
type wireType uint32

const (
	miInt8       wireType = 1
	miUint8      wireType = 2
	miInt16      wireType = 3
	miUint16     wireType = 4
	miInt32      wireType = 5
	miUint32     wireType = 6
	miSingle     wireType = 7
	miDouble     wireType = 9
	miInt64      wireType = 12
	miUint64     wireType = 13
	miMatrix     wireType = 14
	miCompressed wireType = 15
	miUtf8       wireType = 16
	miUtf16      wireType = 17
	miUtf32      wireType = 18
)

// classTag names the logical kind of an array, carried in the
// array-props block.
type classTag uint8

const (
	mxCell    classTag = 1
	mxStruct  classTag = 2
	mxObject  classTag = 3
	mxChar    classTag = 4
	mxSparse  classTag = 5
	mxDouble  classTag = 6
	mxSingle  classTag = 7
	mxInt8    classTag = 8
	mxUint8   classTag = 9
	mxInt16   classTag = 10
	mxUint16  classTag = 11
	mxInt32   classTag = 12
	mxUint32  classTag = 13
	mxInt64   classTag = 14
	mxUint64  classTag = 15
	mxHandle  classTag = 16
	mxOpaque  classTag = 17
)

// wireWidth reports how many bytes one element of wire type t
// occupies, used by the numeric wire encoder and decoder that drive
// the upcast table.
func wireWidth(t wireType) int {
	switch t {
	case miInt8, miUint8, miUtf8:
		return 1
	case miInt16, miUint16, miUtf16:
		return 2
	case miInt32, miUint32, miSingle, miUtf32:
		return 4
	case miInt64, miUint64, miDouble:
		return 8
	default:
		return 0
	}
}

// align8 returns the number of zero padding bytes needed to bring n up
// to the next multiple of 8.
func align8(n int) int {
	if n%8 == 0 {
		return 0
	}
	return 8 - n%8
}

// align4 returns the number of zero padding bytes needed to bring n up
// to the next multiple of 4.
func align4(n int) int {
	if n%4 == 0 {
		return 0
	}
	return 4 - n%4
}

// cur is a bounds-checked read cursor over one endian's worth of a
// sub-element region. It layers fixed-width integer decoding with a
// caller-selected byte order on top of cryptobyte.String's
// length-tracking, the same way the teacher package layers its own
// section framing on top of cryptobyte's primitives.
type cur struct {
	s     cryptobyte.String
	order binary.ByteOrder
}

func newCur(b []byte, order binary.ByteOrder) *cur {
	return &cur{s: cryptobyte.String(b), order: order}
}

func (c *cur) empty() bool { return len(c.s) == 0 }
func (c *cur) len() int    { return len(c.s) }

func (c *cur) readBytes(n int) ([]byte, bool) {
	var out []byte
	if !c.s.ReadBytes(&out, n) {
		return nil, false
	}
	return out, true
}

func (c *cur) skip(n int) bool {
	return c.s.Skip(n)
}

func (c *cur) readU16() (uint16, bool) {
	b, ok := c.readBytes(2)
	if !ok {
		return 0, false
	}
	return c.order.Uint16(b), true
}

func (c *cur) readU32() (uint32, bool) {
	b, ok := c.readBytes(4)
	if !ok {
		return 0, false
	}
	return c.order.Uint32(b), true
}

func (c *cur) readU64() (uint64, bool) {
	b, ok := c.readBytes(8)
	if !ok {
		return 0, false
	}
	return c.order.Uint64(b), true
}

// bld is the write-side counterpart of cur: a cryptobyte.Builder with
// a caller-selected byte order layered on top for fixed-width integer
// encoding.
type bld struct {
	b     *cryptobyte.Builder
	order binary.ByteOrder
}

func newBld(order binary.ByteOrder) *bld {
	return &bld{b: cryptobyte.NewBuilder(nil), order: order}
}

func (w *bld) bytes() []byte { return w.b.BytesOrPanic() }

func (w *bld) addBytes(p []byte) { w.b.AddBytes(p) }

func (w *bld) addU16(v uint16) {
	var buf [2]byte
	w.order.PutUint16(buf[:], v)
	w.b.AddBytes(buf[:])
}

func (w *bld) addU32(v uint32) {
	var buf [4]byte
	w.order.PutUint32(buf[:], v)
	w.b.AddBytes(buf[:])
}

func (w *bld) addU64(v uint64) {
	var buf [8]byte
	w.order.PutUint64(buf[:], v)
	w.b.AddBytes(buf[:])
}

func (w *bld) pad(n int) {
	if n <= 0 {
		return
	}
	w.b.AddBytes(make([]byte, n))
}
