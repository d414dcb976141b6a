// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

// Kind names one of the twelve homogeneous element kinds an element
// buffer may hold.
type Kind int

const (
	KindU8 Kind = iota
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindF32
	KindF64
	KindChar
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindI8:
		return "i8"
	case KindU16:
		return "u16"
	case KindI16:
		return "i16"
	case KindU32:
		return "u32"
	case KindI32:
		return "i32"
	case KindU64:
		return "u64"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindChar:
		return "char"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// buffer is a discriminated union over the twelve element kinds: the
// Go rendering of the closed sum type described by the element
// buffer's data model. Exactly one of the typed slices is populated,
// matching Kind.
type buffer struct {
	Kind Kind

	U8   []uint8
	I8   []int8
	U16  []uint16
	I16  []int16
	U32  []uint32
	I32  []int32
	U64  []uint64
	I64  []int64
	F32  []float32
	F64  []float64
	Char []rune
	Bool []bool
}

// Len returns the number of elements in the buffer.
func (b *buffer) Len() int {
	switch b.Kind {
	case KindU8:
		return len(b.U8)
	case KindI8:
		return len(b.I8)
	case KindU16:
		return len(b.U16)
	case KindI16:
		return len(b.I16)
	case KindU32:
		return len(b.U32)
	case KindI32:
		return len(b.I32)
	case KindU64:
		return len(b.U64)
	case KindI64:
		return len(b.I64)
	case KindF32:
		return len(b.F32)
	case KindF64:
		return len(b.F64)
	case KindChar:
		return len(b.Char)
	case KindBool:
		return len(b.Bool)
	default:
		return 0
	}
}

// atF64 returns the element at index i as a float64, the common
// denominator used by the zero test of the sparsify helper below and
// by the scalar accessors. bool and char are included via their zero-test encodings (0
// for false, the code point value for char).
func (b *buffer) atF64(i int) float64 {
	switch b.Kind {
	case KindU8:
		return float64(b.U8[i])
	case KindI8:
		return float64(b.I8[i])
	case KindU16:
		return float64(b.U16[i])
	case KindI16:
		return float64(b.I16[i])
	case KindU32:
		return float64(b.U32[i])
	case KindI32:
		return float64(b.I32[i])
	case KindU64:
		return float64(b.U64[i])
	case KindI64:
		return float64(b.I64[i])
	case KindF32:
		return float64(b.F32[i])
	case KindF64:
		return b.F64[i]
	case KindChar:
		return float64(b.Char[i])
	case KindBool:
		if b.Bool[i] {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// isZero reports whether element i is the kind's zero value: 0 for
// integers/floats, the NUL code point for char, false for bool.
func (b *buffer) isZero(i int) bool {
	return b.atF64(i) == 0
}

// cloneSingle returns a new buffer of length 1 holding a copy of
// element i, sharing b's Kind.
func (b *buffer) cloneSingle(i int) *buffer {
	out := &buffer{Kind: b.Kind}
	switch b.Kind {
	case KindU8:
		out.U8 = []uint8{b.U8[i]}
	case KindI8:
		out.I8 = []int8{b.I8[i]}
	case KindU16:
		out.U16 = []uint16{b.U16[i]}
	case KindI16:
		out.I16 = []int16{b.I16[i]}
	case KindU32:
		out.U32 = []uint32{b.U32[i]}
	case KindI32:
		out.I32 = []int32{b.I32[i]}
	case KindU64:
		out.U64 = []uint64{b.U64[i]}
	case KindI64:
		out.I64 = []int64{b.I64[i]}
	case KindF32:
		out.F32 = []float32{b.F32[i]}
	case KindF64:
		out.F64 = []float64{b.F64[i]}
	case KindChar:
		out.Char = []rune{b.Char[i]}
	case KindBool:
		out.Bool = []bool{b.Bool[i]}
	}
	return out
}

// extend appends other's elements to b. Kinds must match.
func (b *buffer) extend(other *buffer) error {
	if b.Kind != other.Kind {
		return constructionErrorf("cannot extend %s buffer with %s elements", b.Kind, other.Kind)
	}
	switch b.Kind {
	case KindU8:
		b.U8 = append(b.U8, other.U8...)
	case KindI8:
		b.I8 = append(b.I8, other.I8...)
	case KindU16:
		b.U16 = append(b.U16, other.U16...)
	case KindI16:
		b.I16 = append(b.I16, other.I16...)
	case KindU32:
		b.U32 = append(b.U32, other.U32...)
	case KindI32:
		b.I32 = append(b.I32, other.I32...)
	case KindU64:
		b.U64 = append(b.U64, other.U64...)
	case KindI64:
		b.I64 = append(b.I64, other.I64...)
	case KindF32:
		b.F32 = append(b.F32, other.F32...)
	case KindF64:
		b.F64 = append(b.F64, other.F64...)
	case KindChar:
		b.Char = append(b.Char, other.Char...)
	case KindBool:
		b.Bool = append(b.Bool, other.Bool...)
	}
	return nil
}

// joinBuffers concatenates a list of same-kind buffers into one.
func joinBuffers(parts []*buffer) (*buffer, error) {
	out := &buffer{}
	if len(parts) > 0 {
		out.Kind = parts[0].Kind
	}
	for _, p := range parts {
		if err := out.extend(p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// reshapeRowMajorToColumnMajor reads position (r, c) from source index
// r*cols+c and writes it to destination index c*rows+r, producing a
// new out-of-place buffer.
func reshapeRowMajorToColumnMajor(src *buffer, rows, cols int) *buffer {
	out := &buffer{Kind: src.Kind}
	n := rows * cols
	setLen(out, n)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			copyElem(out, c*rows+r, src, r*cols+c)
		}
	}
	return out
}

func setLen(b *buffer, n int) {
	switch b.Kind {
	case KindU8:
		b.U8 = make([]uint8, n)
	case KindI8:
		b.I8 = make([]int8, n)
	case KindU16:
		b.U16 = make([]uint16, n)
	case KindI16:
		b.I16 = make([]int16, n)
	case KindU32:
		b.U32 = make([]uint32, n)
	case KindI32:
		b.I32 = make([]int32, n)
	case KindU64:
		b.U64 = make([]uint64, n)
	case KindI64:
		b.I64 = make([]int64, n)
	case KindF32:
		b.F32 = make([]float32, n)
	case KindF64:
		b.F64 = make([]float64, n)
	case KindChar:
		b.Char = make([]rune, n)
	case KindBool:
		b.Bool = make([]bool, n)
	}
}

func copyElem(dst *buffer, di int, src *buffer, si int) {
	switch dst.Kind {
	case KindU8:
		dst.U8[di] = src.U8[si]
	case KindI8:
		dst.I8[di] = src.I8[si]
	case KindU16:
		dst.U16[di] = src.U16[si]
	case KindI16:
		dst.I16[di] = src.I16[si]
	case KindU32:
		dst.U32[di] = src.U32[si]
	case KindI32:
		dst.I32[di] = src.I32[si]
	case KindU64:
		dst.U64[di] = src.U64[si]
	case KindI64:
		dst.I64[di] = src.I64[si]
	case KindF32:
		dst.F32[di] = src.F32[si]
	case KindF64:
		dst.F64[di] = src.F64[si]
	case KindChar:
		dst.Char[di] = src.Char[si]
	case KindBool:
		dst.Bool[di] = src.Bool[si]
	}
}

// toSparse performs a column-major scan over a rows x cols buffer,
// emitting (ir, jc, values) for every non-zero element. Only f64 and
// bool source kinds are supported; see DESIGN.md for the rationale
// (this mirrors the reference implementation, which panics on any
// other kind).
func toSparse(b *buffer, rows, cols int) (ir []int, jc []int, values *buffer, ok bool) {
	if b.Kind != KindF64 && b.Kind != KindBool {
		return nil, nil, nil, false
	}

	jc = make([]int, cols+1)
	ir = []int{}
	values = &buffer{Kind: b.Kind}

	idx := 0
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			if !b.isZero(idx) {
				ir = append(ir, r)
				switch b.Kind {
				case KindF64:
					values.F64 = append(values.F64, b.F64[idx])
				case KindBool:
					values.Bool = append(values.Bool, b.Bool[idx])
				}
			}
			idx++
		}
		jc[c+1] = len(ir)
	}
	return ir, jc, values, true
}
