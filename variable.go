// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

// variableKind discriminates the variants of Variable, the recursive
// tagged value described by the data model: numeric array, sparse
// array, cell array, structure, structure array, a write-time
// compressed wrapper, and the empty/unsupported/null sentinels.
type variableKind int

const (
	varNumeric variableKind = iota
	varSparse
	varCell
	varStruct
	varStructArray
	varCompressed
	varEmpty
	varUnsupported
	varNull
)

// Variable is a MAT-file value: one numeric array, sparse array, cell
// array, structure, structure array, or the empty/unsupported/null
// sentinels. The zero Variable is Null.
type Variable struct {
	kind variableKind
	dims []int

	real *buffer
	imag *buffer

	ir []int
	jc []int

	cells []Variable

	fieldNames []string
	fields     []Variable

	inner *Variable
}

// Null is the sentinel value returned by out-of-range indexing and
// missing field lookups; it never fails a chained index expression.
var Null = Variable{kind: varNull}

// Dim returns the variable's dimension vector. Numeric and cell
// dimensions always have length >= 2 once constructed; a 1-D input is
// promoted to [1, n] and never squeezed back down.
func (v Variable) Dim() []int {
	out := make([]int, len(v.dims))
	copy(out, v.dims)
	return out
}

// ElementKind returns the declared element kind for numeric and sparse
// variables; ok is false for every other variant.
func (v Variable) ElementKind() (k Kind, ok bool) {
	if (v.kind == varNumeric || v.kind == varSparse) && v.real != nil {
		return v.real.Kind, true
	}
	return 0, false
}

// FieldNames returns the ordered field-name list for structure and
// structure-array variables; ok is false for every other variant.
func (v Variable) FieldNames() (names []string, ok bool) {
	if v.kind == varStruct || v.kind == varStructArray {
		out := make([]string, len(v.fieldNames))
		copy(out, v.fieldNames)
		return out, true
	}
	return nil, false
}

// IsComplex reports whether a numeric or sparse variable carries an
// imaginary companion buffer.
func (v Variable) IsComplex() bool {
	return (v.kind == varNumeric || v.kind == varSparse) && v.imag != nil
}

// IsNull reports whether v is the null sentinel.
func (v Variable) IsNull() bool { return v.kind == varNull }

func (v Variable) colMajorLen() int {
	n := 1
	for _, d := range v.dims {
		n *= d
	}
	return n
}

func colMajorIndex(dims []int, idx []int) (int, bool) {
	if len(idx) != len(dims) {
		return 0, false
	}
	stride := 1
	pos := 0
	for i, d := range dims {
		if idx[i] < 0 || idx[i] >= d {
			return 0, false
		}
		pos += idx[i] * stride
		stride *= d
	}
	return pos, true
}

// Index returns the value at column-major scalar position i. For
// numeric and sparse variables this clones a single element into a
// new 1x1 numeric array; for cell and structure-array variables it
// returns the stored inner variable; structures reject scalar
// indexing. Out-of-range indices return Null rather than failing.
func (v Variable) Index(i int) Variable {
	switch v.kind {
	case varNumeric:
		if i < 0 || i >= v.colMajorLen() {
			return Null
		}
		return variableFromBuffer(v.real.cloneSingle(i), v.complexSingle(i))
	case varSparse:
		return v.indexSparse(i)
	case varCell:
		if i < 0 || i >= len(v.cells) {
			return Null
		}
		return v.cells[i]
	case varStructArray:
		n := len(v.fieldNames)
		if n == 0 || i < 0 || (i+1)*n > len(v.fields) {
			return Null
		}
		cell := Variable{kind: varStruct, dims: []int{1, 1}, fieldNames: v.fieldNames, fields: v.fields[i*n : (i+1)*n]}
		return cell
	default:
		return Null
	}
}

func (v Variable) complexSingle(i int) *buffer {
	if v.imag == nil {
		return nil
	}
	return v.imag.cloneSingle(i)
}

func (v Variable) indexSparse(i int) Variable {
	if len(v.dims) != 2 {
		return Null
	}
	rows, cols := v.dims[0], v.dims[1]
	if i < 0 || i >= rows*cols {
		return Null
	}
	r, c := i%rows, i/rows
	for k := v.jc[c]; k < v.jc[c+1]; k++ {
		if v.ir[k] == r {
			return variableFromBuffer(v.real.cloneSingle(k), v.complexSingleSparse(k))
		}
	}
	return variableFromBuffer(zeroSingle(v.real.Kind), nil)
}

func (v Variable) complexSingleSparse(k int) *buffer {
	if v.imag == nil {
		return nil
	}
	return v.imag.cloneSingle(k)
}

func zeroSingle(k Kind) *buffer {
	b := &buffer{Kind: k}
	setLen(b, 1)
	return b
}

func variableFromBuffer(real, imag *buffer) Variable {
	return Variable{kind: varNumeric, dims: []int{1, 1}, real: real, imag: imag}
}

// IndexMulti indexes by an explicit per-dimension coordinate list,
// converting it to the equivalent column-major scalar position.
func (v Variable) IndexMulti(idx []int) Variable {
	pos, ok := colMajorIndex(v.dims, idx)
	if !ok {
		return Null
	}
	return v.Index(pos)
}

// Field looks up a field by name on a structure or a structure-array
// cell. Missing fields return Null.
func (v Variable) Field(name string) Variable {
	if v.kind != varStruct {
		return Null
	}
	for i, n := range v.fieldNames {
		if n == name && i < len(v.fields) {
			return v.fields[i]
		}
	}
	return Null
}

// Elements returns a column-major sequence of cloned 1x1 numeric
// arrays for a numeric variable. Iteration order over cell and
// structure-array variants is a design decision recorded in
// DESIGN.md: plain column-major index order, the same order Index
// uses.
func (v Variable) Elements() []Variable {
	switch v.kind {
	case varNumeric:
		n := v.colMajorLen()
		out := make([]Variable, n)
		for i := 0; i < n; i++ {
			out[i] = v.Index(i)
		}
		return out
	case varCell:
		out := make([]Variable, len(v.cells))
		copy(out, v.cells)
		return out
	case varStructArray:
		n := v.colMajorLen()
		out := make([]Variable, n)
		for i := 0; i < n; i++ {
			out[i] = v.Index(i)
		}
		return out
	default:
		return nil
	}
}

// ToSparse converts a 2-D numeric variable to a sparse variable of the
// same element kind. Only f64 and bool source kinds are supported,
// matching the reference implementation; any other kind returns
// ok=false rather than the panic the reference raises.
func (v Variable) ToSparse() (Variable, bool) {
	if v.kind != varNumeric || len(v.dims) != 2 {
		return Variable{}, false
	}
	ir, jc, vals, ok := toSparse(v.real, v.dims[0], v.dims[1])
	if !ok {
		return Variable{}, false
	}
	return Variable{kind: varSparse, dims: v.dims, real: vals, ir: ir, jc: jc}, true
}

func (v Variable) scalarF64(k Kind) (float64, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != k {
		return 0, false
	}
	if len(v.dims) != 2 || v.dims[0] != 1 || v.dims[1] != 1 {
		return 0, false
	}
	return v.real.atF64(0), true
}

// isScalar reports whether v is a 1x1 numeric array of real-buffer
// kind k, the same shape check scalarF64 makes, used by the typed
// 64-bit accessors below.
func (v Variable) isScalar(k Kind) bool {
	return v.kind == varNumeric && v.real != nil && v.real.Kind == k &&
		len(v.dims) == 2 && v.dims[0] == 1 && v.dims[1] == 1
}

func (v Variable) compScalarF64(k Kind) (float64, bool) {
	if v.kind != varNumeric || v.imag == nil || v.imag.Kind != k {
		return 0, false
	}
	if len(v.dims) != 2 || v.dims[0] != 1 || v.dims[1] != 1 {
		return 0, false
	}
	return v.imag.atF64(0), true
}

func (v Variable) vecF64(k Kind) ([]float64, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != k {
		return nil, false
	}
	out := make([]float64, v.real.Len())
	for i := range out {
		out[i] = v.real.atF64(i)
	}
	return out, true
}

func (v Variable) compVecF64(k Kind) ([]float64, bool) {
	if v.kind != varNumeric || v.imag == nil || v.imag.Kind != k {
		return nil, false
	}
	out := make([]float64, v.imag.Len())
	for i := range out {
		out[i] = v.imag.atF64(i)
	}
	return out, true
}

// The following accessor pairs are grounded one-to-one on the
// reference implementation's per-kind macro-generated scalar and
// vector accessors: one ToX/ToVecX pair for each of the twelve element
// kinds. CompToX/CompToVecX accessors for the imaginary buffer exist
// for f64 and f32 only.

func (v Variable) ToU8() (uint8, bool)  { f, ok := v.scalarF64(KindU8); return uint8(f), ok }
func (v Variable) ToI8() (int8, bool)   { f, ok := v.scalarF64(KindI8); return int8(f), ok }
func (v Variable) ToU16() (uint16, bool) { f, ok := v.scalarF64(KindU16); return uint16(f), ok }
func (v Variable) ToI16() (int16, bool)  { f, ok := v.scalarF64(KindI16); return int16(f), ok }
func (v Variable) ToU32() (uint32, bool) { f, ok := v.scalarF64(KindU32); return uint32(f), ok }
func (v Variable) ToI32() (int32, bool)  { f, ok := v.scalarF64(KindI32); return int32(f), ok }
// ToU64 and ToI64 read the scalar directly from the typed buffer
// rather than routing through scalarF64/atF64: float64 cannot
// represent every uint64/int64 value exactly, and the typed slice
// already holds the value at full precision.
func (v Variable) ToU64() (uint64, bool) {
	if !v.isScalar(KindU64) {
		return 0, false
	}
	return v.real.U64[0], true
}
func (v Variable) ToI64() (int64, bool) {
	if !v.isScalar(KindI64) {
		return 0, false
	}
	return v.real.I64[0], true
}
func (v Variable) ToF32() (float32, bool) { f, ok := v.scalarF64(KindF32); return float32(f), ok }
func (v Variable) ToF64() (float64, bool) { return v.scalarF64(KindF64) }
func (v Variable) ToBool() (bool, bool) {
	f, ok := v.scalarF64(KindBool)
	return f != 0, ok
}
func (v Variable) ToChar() (rune, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindChar || v.real.Len() != 1 {
		return 0, false
	}
	return v.real.Char[0], true
}

func (v Variable) ToVecU8() ([]uint8, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindU8 {
		return nil, false
	}
	out := make([]uint8, len(v.real.U8))
	copy(out, v.real.U8)
	return out, true
}
func (v Variable) ToVecI8() ([]int8, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindI8 {
		return nil, false
	}
	out := make([]int8, len(v.real.I8))
	copy(out, v.real.I8)
	return out, true
}
func (v Variable) ToVecU16() ([]uint16, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindU16 {
		return nil, false
	}
	out := make([]uint16, len(v.real.U16))
	copy(out, v.real.U16)
	return out, true
}
func (v Variable) ToVecI16() ([]int16, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindI16 {
		return nil, false
	}
	out := make([]int16, len(v.real.I16))
	copy(out, v.real.I16)
	return out, true
}
func (v Variable) ToVecU32() ([]uint32, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindU32 {
		return nil, false
	}
	out := make([]uint32, len(v.real.U32))
	copy(out, v.real.U32)
	return out, true
}
func (v Variable) ToVecI32() ([]int32, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindI32 {
		return nil, false
	}
	out := make([]int32, len(v.real.I32))
	copy(out, v.real.I32)
	return out, true
}
func (v Variable) ToVecU64() ([]uint64, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindU64 {
		return nil, false
	}
	out := make([]uint64, len(v.real.U64))
	copy(out, v.real.U64)
	return out, true
}
func (v Variable) ToVecI64() ([]int64, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindI64 {
		return nil, false
	}
	out := make([]int64, len(v.real.I64))
	copy(out, v.real.I64)
	return out, true
}
func (v Variable) ToVecF32() ([]float32, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindF32 {
		return nil, false
	}
	out := make([]float32, len(v.real.F32))
	copy(out, v.real.F32)
	return out, true
}
func (v Variable) ToVecF64() ([]float64, bool) { return v.vecF64(KindF64) }
func (v Variable) ToVecBool() ([]bool, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindBool {
		return nil, false
	}
	out := make([]bool, len(v.real.Bool))
	copy(out, v.real.Bool)
	return out, true
}
func (v Variable) ToVecChar() ([]rune, bool) {
	if v.kind != varNumeric || v.real == nil || v.real.Kind != KindChar {
		return nil, false
	}
	out := make([]rune, len(v.real.Char))
	copy(out, v.real.Char)
	return out, true
}

// ToString returns a char variable's contents as a Go string.
func (v Variable) ToString() (string, bool) {
	runes, ok := v.ToVecChar()
	if !ok {
		return "", false
	}
	return string(runes), true
}

func (v Variable) CompToF64() (float64, bool)  { return v.compScalarF64(KindF64) }
func (v Variable) CompToF32() (float32, bool) {
	f, ok := v.compScalarF64(KindF32)
	return float32(f), ok
}
func (v Variable) CompToVecF64() ([]float64, bool) { return v.compVecF64(KindF64) }
func (v Variable) CompToVecF32() ([]float32, bool) {
	if v.kind != varNumeric || v.imag == nil || v.imag.Kind != KindF32 {
		return nil, false
	}
	out := make([]float32, len(v.imag.F32))
	copy(out, v.imag.F32)
	return out, true
}
