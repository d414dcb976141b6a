// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

// normalizeDims promotes a 1-D dimension hint [n] to [1, n], matching
// the reference convention: higher-rank trailing-1s are never
// squeezed back down.
func normalizeDims(dims []int) []int {
	switch len(dims) {
	case 0:
		return []int{1, 1}
	case 1:
		return []int{1, dims[0]}
	default:
		out := make([]int, len(dims))
		copy(out, dims)
		return out
	}
}

// NewNumeric builds a numeric Variable of the given element kind and
// dimensions from float64-valued data in column-major order. Use
// NewNumericU64/NewNumericI64 instead for values that may fall outside
// float64's 2^53 exact-integer range.
func NewNumeric(kind Kind, dims []int, data []float64) (Variable, error) {
	dims = normalizeDims(dims)
	if product(dims) != len(data) {
		return Variable{}, constructionErrorf("dimension product %d does not match data length %d", product(dims), len(data))
	}
	return Variable{kind: varNumeric, dims: dims, real: newBufferFromF64(kind, data)}, nil
}

// NewNumericU64 and NewNumericI64 build a 64-bit integer numeric
// Variable directly from typed data in column-major order, bypassing
// the float64 intermediate NewNumeric uses: float64 cannot represent
// every uint64/int64 value exactly.
func NewNumericU64(dims []int, data []uint64) (Variable, error) {
	dims = normalizeDims(dims)
	if product(dims) != len(data) {
		return Variable{}, constructionErrorf("dimension product %d does not match data length %d", product(dims), len(data))
	}
	out := make([]uint64, len(data))
	copy(out, data)
	return Variable{kind: varNumeric, dims: dims, real: &buffer{Kind: KindU64, U64: out}}, nil
}

func NewNumericI64(dims []int, data []int64) (Variable, error) {
	dims = normalizeDims(dims)
	if product(dims) != len(data) {
		return Variable{}, constructionErrorf("dimension product %d does not match data length %d", product(dims), len(data))
	}
	out := make([]int64, len(data))
	copy(out, data)
	return Variable{kind: varNumeric, dims: dims, real: &buffer{Kind: KindI64, I64: out}}, nil
}

// NewChar builds a 1xN char-class Variable from a Go string.
func NewChar(s string) Variable {
	runes := []rune(s)
	return Variable{kind: varNumeric, dims: []int{1, len(runes)}, real: &buffer{Kind: KindChar, Char: runes}}
}

// NewStruct builds a scalar structure from an ordered field list.
func NewStruct(names []string, values []Variable) (Variable, error) {
	if len(names) != len(values) {
		return Variable{}, constructionErrorf("field name count %d does not match value count %d", len(names), len(values))
	}
	return Variable{kind: varStruct, dims: []int{1, 1}, fieldNames: names, fields: values}, nil
}

// NewCell builds a 1xN cell array from a list of arbitrary inner
// variables.
func NewCell(children []Variable) Variable {
	return Variable{kind: varCell, dims: []int{1, len(children)}, cells: children}
}

func newBufferFromF64(kind Kind, vals []float64) *buffer {
	b := &buffer{Kind: kind}
	setLen(b, len(vals))
	for i, v := range vals {
		switch kind {
		case KindU8:
			b.U8[i] = uint8(v)
		case KindI8:
			b.I8[i] = int8(v)
		case KindU16:
			b.U16[i] = uint16(v)
		case KindI16:
			b.I16[i] = int16(v)
		case KindU32:
			b.U32[i] = uint32(v)
		case KindI32:
			b.I32[i] = int32(v)
		case KindU64:
			b.U64[i] = uint64(v)
		case KindI64:
			b.I64[i] = int64(v)
		case KindF32:
			b.F32[i] = float32(v)
		case KindF64:
			b.F64[i] = v
		case KindChar:
			b.Char[i] = rune(int64(v))
		case KindBool:
			b.Bool[i] = v != 0
		}
	}
	return b
}

func isScalarNumeric(v Variable) bool {
	return v.kind == varNumeric && len(v.dims) == 2 && v.dims[0] == 1 && v.dims[1] == 1
}

func isRowVector(v Variable) bool {
	return v.kind == varNumeric && len(v.dims) == 2 && v.dims[0] == 1 && v.dims[1] > 1
}

func isColVector(v Variable) bool {
	return v.kind == varNumeric && len(v.dims) == 2 && v.dims[1] == 1 && v.dims[0] > 1
}

func dimsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Build assembles a Variable from a list of already-constructed child
// Variables, implementing the nested-literal constructor: dimension
// inference from the shape of the children, homogeneity checks, and
// flattening to column-major order.
func Build(children []Variable) (Variable, error) {
	if len(children) == 0 {
		return Variable{kind: varEmpty, dims: []int{0, 0}, real: &buffer{Kind: KindF64}}, nil
	}

	first := children[0]

	switch {
	case isScalarNumeric(first):
		kind, _ := first.ElementKind()
		complex := first.IsComplex()
		bufs := make([]*buffer, len(children))
		imagBufs := make([]*buffer, len(children))
		for i, ch := range children {
			if !isScalarNumeric(ch) {
				return buildCellOrStructArray(children)
			}
			k, _ := ch.ElementKind()
			if k != kind || ch.IsComplex() != complex {
				return Variable{}, constructionErrorf("nested-literal constructor requires homogeneous element kind, got %s and %s", kind, k)
			}
			bufs[i] = ch.real
			imagBufs[i] = ch.imag
		}
		joined, err := joinBuffers(bufs)
		if err != nil {
			return Variable{}, err
		}
		result := Variable{kind: varNumeric, dims: []int{1, len(children)}, real: joined}
		if complex {
			joinedImag, err := joinBuffers(imagBufs)
			if err != nil {
				return Variable{}, err
			}
			result.imag = joinedImag
		}
		return result, nil

	case isRowVector(first):
		k := first.dims[1]
		bufs := make([]*buffer, len(children))
		for i, ch := range children {
			if !isRowVector(ch) || ch.dims[1] != k {
				return Variable{}, constructionErrorf("nested-literal constructor requires matching row-vector shape [1, %d]", k)
			}
			bufs[i] = ch.real
		}
		flat, err := joinBuffers(bufs)
		if err != nil {
			return Variable{}, err
		}
		colMajor := reshapeRowMajorToColumnMajor(flat, len(children), k)
		return Variable{kind: varNumeric, dims: []int{len(children), k}, real: colMajor}, nil

	case isColVector(first):
		k := first.dims[0]
		bufs := make([]*buffer, len(children))
		for i, ch := range children {
			if !isColVector(ch) || ch.dims[0] != k {
				return Variable{}, constructionErrorf("nested-literal constructor requires matching column-vector shape [%d, 1]", k)
			}
			bufs[i] = ch.real
		}
		joined, err := joinBuffers(bufs)
		if err != nil {
			return Variable{}, err
		}
		return Variable{kind: varNumeric, dims: []int{k, len(children)}, real: joined}, nil

	case first.kind == varNumeric:
		s := first.dims
		bufs := make([]*buffer, len(children))
		for i, ch := range children {
			if ch.kind != varNumeric || !dimsEqual(ch.dims, s) {
				return Variable{}, constructionErrorf("nested-literal constructor requires matching inner dimensions %v", s)
			}
			bufs[i] = ch.real
		}
		joined, err := joinBuffers(bufs)
		if err != nil {
			return Variable{}, err
		}
		dims := append(append([]int{}, s...), len(children))
		return Variable{kind: varNumeric, dims: dims, real: joined}, nil

	default:
		return buildCellOrStructArray(children)
	}
}

// buildCellOrStructArray handles the demoted cases: if every child is
// a structure, the result is a structure array, and the children must
// share an identical field order or a construction error is returned;
// otherwise it is a cell array of dimension [1, n].
func buildCellOrStructArray(children []Variable) (Variable, error) {
	allStructs := true
	for _, ch := range children {
		if ch.kind != varStruct {
			allStructs = false
			break
		}
	}

	if allStructs {
		fieldNames := children[0].fieldNames
		for _, ch := range children[1:] {
			if !stringSliceEqual(ch.fieldNames, fieldNames) {
				return Variable{}, constructionErrorf("structure array requires identical field order across elements")
			}
		}
		total := make([]Variable, 0, len(children)*len(fieldNames))
		for _, ch := range children {
			total = append(total, ch.fields...)
		}
		return Variable{kind: varStructArray, dims: []int{1, len(children)}, fieldNames: fieldNames, fields: total}, nil
	}

	return NewCell(children), nil
}
