// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// downcastCandidate names one of the narrower integer wire types the
// f64 downcast routine may choose, in priority order.
type downcastCandidate struct {
	wt  wireType
	lo  float64
	hi  float64
}

var downcastPriority = []downcastCandidate{
	{miUint8, 0, 255},
	{miInt8, -128, 127},
	{miUint16, 0, 65535},
	{miInt16, -32768, 32767},
	{miUint32, 0, 4294967295},
	{miInt32, -2147483648, 2147483647},
}

// chooseNumericWire decides the wire type and class tag used to write
// buffer b, applying the f64-only downcast rule: a double whose
// elements are all integral and within a narrower type's range is
// re-encoded using the narrowest fitting type, in priority order
// u8 -> i8 -> u16 -> i16 -> u32 -> i32, falling back to f64. The class
// tag always records b's declared Kind, never the chosen wire type.
func chooseNumericWire(b *buffer) (wt wireType, ct classTag, isLogical bool) {
	switch b.Kind {
	case KindU8:
		return miUint8, mxUint8, false
	case KindI8:
		return miInt8, mxInt8, false
	case KindU16:
		return miUint16, mxUint16, false
	case KindI16:
		return miInt16, mxInt16, false
	case KindU32:
		return miUint32, mxUint32, false
	case KindI32:
		return miInt32, mxInt32, false
	case KindU64:
		return miUint64, mxUint64, false
	case KindI64:
		return miInt64, mxInt64, false
	case KindF32:
		return miSingle, mxSingle, false
	case KindChar:
		return miUtf8, mxChar, false
	case KindBool:
		return miUint8, mxUint8, true
	case KindF64:
		return downcastF64(b.F64), mxDouble, false
	default:
		return miDouble, mxDouble, false
	}
}

func downcastF64(vals []float64) wireType {
candidate:
	for _, c := range downcastPriority {
		for _, v := range vals {
			if v != math.Trunc(v) || v < c.lo || v > c.hi {
				continue candidate
			}
		}
		return c.wt
	}
	return miDouble
}

// encodeNumericWire writes vals (already chosen to fit wt exactly) as
// raw bytes in the given byte order.
func encodeNumericWire(order binary.ByteOrder, wt wireType, vals []float64) []byte {
	n := len(vals)
	width := wireWidth(wt)
	if width == 0 {
		width = 8
	}
	out := make([]byte, n*width)
	for i, v := range vals {
		off := i * width
		switch wt {
		case miUint8:
			out[off] = uint8(v)
		case miInt8:
			out[off] = byte(int8(v))
		case miUint16:
			order.PutUint16(out[off:], uint16(v))
		case miInt16:
			order.PutUint16(out[off:], uint16(int16(v)))
		case miUint32:
			order.PutUint32(out[off:], uint32(v))
		case miInt32:
			order.PutUint32(out[off:], uint32(int32(v)))
		case miUint64:
			order.PutUint64(out[off:], uint64(v))
		case miInt64:
			order.PutUint64(out[off:], uint64(int64(v)))
		case miSingle:
			order.PutUint32(out[off:], math.Float32bits(float32(v)))
		case miDouble:
			order.PutUint64(out[off:], math.Float64bits(v))
		}
	}
	return out
}

// encodeUint64Wire and encodeInt64Wire write 64-bit integer values as
// raw bytes directly, bypassing the float64 intermediate encodeNumericWire
// uses: float64 cannot represent every uint64/int64 exactly, so these
// two wire types need their own typed path to survive a round trip.
func encodeUint64Wire(order binary.ByteOrder, vals []uint64) []byte {
	out := make([]byte, len(vals)*8)
	for i, v := range vals {
		order.PutUint64(out[i*8:], v)
	}
	return out
}

func encodeInt64Wire(order binary.ByteOrder, vals []int64) []byte {
	out := make([]byte, len(vals)*8)
	for i, v := range vals {
		order.PutUint64(out[i*8:], uint64(v))
	}
	return out
}

// encodeUtf8 ASCII-filters and concatenates a rune slice, matching the
// reference writer's char handling.
func encodeUtf8(runes []rune) []byte {
	out := make([]byte, 0, len(runes))
	for _, r := range runes {
		if r >= 0 && r < 128 {
			out = append(out, byte(r))
		}
	}
	return out
}

// numericValuesToF64 converts an element buffer's elements to float64
// for the numeric wire encoder above. Callers must route KindU64 and
// KindI64 buffers through encodeUint64Wire/encodeInt64Wire instead:
// float64 cannot represent every value those kinds can hold.
func numericValuesToF64(b *buffer) []float64 {
	out := make([]float64, b.Len())
	for i := range out {
		out[i] = b.atF64(i)
	}
	return out
}

// decodeNumericWire reads n elements of wire type wt from raw, in the
// given byte order, returning them as float64. n is len(raw) divided
// by the wire width; a trailing partial element is ignored. Callers
// must not use this for miUint64/
// miInt64: use decodeUint64Wire/decodeInt64Wire instead, since float64
// cannot represent every 64-bit integer exactly.
func decodeNumericWire(order binary.ByteOrder, wt wireType, raw []byte) []float64 {
	width := wireWidth(wt)
	if width == 0 {
		return nil
	}
	n := len(raw) / width
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		off := i * width
		switch wt {
		case miUint8:
			out[i] = float64(raw[off])
		case miInt8:
			out[i] = float64(int8(raw[off]))
		case miUint16:
			out[i] = float64(order.Uint16(raw[off:]))
		case miInt16:
			out[i] = float64(int16(order.Uint16(raw[off:])))
		case miUint32:
			out[i] = float64(order.Uint32(raw[off:]))
		case miInt32:
			out[i] = float64(int32(order.Uint32(raw[off:])))
		case miUint64:
			out[i] = float64(order.Uint64(raw[off:]))
		case miInt64:
			out[i] = float64(int64(order.Uint64(raw[off:])))
		case miSingle:
			out[i] = float64(math.Float32frombits(order.Uint32(raw[off:])))
		case miDouble:
			out[i] = math.Float64frombits(order.Uint64(raw[off:]))
		}
	}
	return out
}

// decodeUint64Wire and decodeInt64Wire read 64-bit integer values
// directly, bypassing decodeNumericWire's float64 intermediate for the
// same reason encodeUint64Wire/encodeInt64Wire bypass it on write.
func decodeUint64Wire(order binary.ByteOrder, raw []byte) []uint64 {
	n := len(raw) / 8
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = order.Uint64(raw[i*8:])
	}
	return out
}

func decodeInt64Wire(order binary.ByteOrder, raw []byte) []int64 {
	n := len(raw) / 8
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = int64(order.Uint64(raw[i*8:]))
	}
	return out
}

// decodeUtf16 decodes raw as a sequence of UTF-16 code units in the
// given byte order into runes.
func decodeUtf16(order binary.ByteOrder, raw []byte) []rune {
	n := len(raw) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = order.Uint16(raw[i*2:])
	}
	return utf16.Decode(units)
}

// upcastValue converts a decoded wire payload to the buffer Kind
// declared by the enclosing array's class tag, implementing the
// wire-type x class-tag widening table. isLogical promotes a uint8
// payload under the uint8 class to bool.
func upcastValue(order binary.ByteOrder, wt wireType, ct classTag, isLogical bool, raw []byte) (*buffer, error) {
	if wt == miUtf8 {
		if ct != mxChar {
			return nil, wireErrorf("utf8 payload under non-char class %d", ct)
		}
		runes := make([]rune, len(raw))
		for i, c := range raw {
			runes[i] = rune(c)
		}
		return &buffer{Kind: KindChar, Char: runes}, nil
	}
	if wt == miUtf16 {
		if ct != mxChar {
			return nil, wireErrorf("utf16 payload under non-char class %d", ct)
		}
		return &buffer{Kind: KindChar, Char: decodeUtf16(order, raw)}, nil
	}
	if wt == miUint64 {
		if ct != mxUint64 {
			return nil, wireErrorf("uint64 payload under non-uint64 class %d", ct)
		}
		return &buffer{Kind: KindU64, U64: decodeUint64Wire(order, raw)}, nil
	}
	if wt == miInt64 {
		if ct != mxInt64 {
			return nil, wireErrorf("int64 payload under non-int64 class %d", ct)
		}
		return &buffer{Kind: KindI64, I64: decodeInt64Wire(order, raw)}, nil
	}

	vals := decodeNumericWire(order, wt, raw)
	if vals == nil {
		return nil, wireErrorf("unsupported numeric wire type %d", wt)
	}

	out := &buffer{}
	switch ct {
	case mxUint8:
		if isLogical {
			out.Kind = KindBool
			out.Bool = make([]bool, len(vals))
			for i, v := range vals {
				out.Bool[i] = v != 0
			}
			return out, nil
		}
		out.Kind = KindU8
		out.U8 = make([]uint8, len(vals))
		for i, v := range vals {
			out.U8[i] = uint8(v)
		}
	case mxInt8:
		out.Kind = KindI8
		out.I8 = make([]int8, len(vals))
		for i, v := range vals {
			out.I8[i] = int8(v)
		}
	case mxUint16:
		out.Kind = KindU16
		out.U16 = make([]uint16, len(vals))
		for i, v := range vals {
			out.U16[i] = uint16(v)
		}
	case mxInt16:
		out.Kind = KindI16
		out.I16 = make([]int16, len(vals))
		for i, v := range vals {
			out.I16[i] = int16(v)
		}
	case mxUint32:
		out.Kind = KindU32
		out.U32 = make([]uint32, len(vals))
		for i, v := range vals {
			out.U32[i] = uint32(v)
		}
	case mxInt32:
		out.Kind = KindI32
		out.I32 = make([]int32, len(vals))
		for i, v := range vals {
			out.I32[i] = int32(v)
		}
	case mxUint64:
		out.Kind = KindU64
		out.U64 = make([]uint64, len(vals))
		for i, v := range vals {
			out.U64[i] = uint64(v)
		}
	case mxInt64:
		out.Kind = KindI64
		out.I64 = make([]int64, len(vals))
		for i, v := range vals {
			out.I64[i] = int64(v)
		}
	case mxSingle:
		out.Kind = KindF32
		out.F32 = make([]float32, len(vals))
		for i, v := range vals {
			out.F32[i] = float32(v)
		}
	case mxDouble:
		out.Kind = KindF64
		out.F64 = vals
	case mxChar:
		out.Kind = KindChar
		out.Char = make([]rune, len(vals))
		for i, v := range vals {
			out.Char[i] = rune(int64(v))
		}
	default:
		return nil, wireErrorf("cannot upcast wire type %d under class %d", wt, ct)
	}
	return out, nil
}
