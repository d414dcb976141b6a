// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import "testing"

func TestBufferLenAndAtF64(t *testing.T) {
	b := &buffer{Kind: KindI16, I16: []int16{-5, 0, 5}}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
	if b.atF64(0) != -5 || b.atF64(1) != 0 || b.atF64(2) != 5 {
		t.Errorf("atF64 mismatch: %v %v %v", b.atF64(0), b.atF64(1), b.atF64(2))
	}
	if !b.isZero(1) || b.isZero(0) {
		t.Errorf("isZero mismatch")
	}
}

func TestBufferExtendMismatchedKind(t *testing.T) {
	a := &buffer{Kind: KindU8, U8: []uint8{1}}
	b := &buffer{Kind: KindI8, I8: []int8{2}}
	if err := a.extend(b); err == nil {
		t.Fatalf("extend() across kinds should fail")
	}
}

func TestJoinBuffers(t *testing.T) {
	a := &buffer{Kind: KindF64, F64: []float64{1, 2}}
	b := &buffer{Kind: KindF64, F64: []float64{3}}
	out, err := joinBuffers([]*buffer{a, b})
	if err != nil {
		t.Fatalf("joinBuffers(): %v", err)
	}
	want := []float64{1, 2, 3}
	if len(out.F64) != len(want) {
		t.Fatalf("joinBuffers() length = %d, want %d", len(out.F64), len(want))
	}
	for i := range want {
		if out.F64[i] != want[i] {
			t.Errorf("F64[%d] = %v, want %v", i, out.F64[i], want[i])
		}
	}
}

func TestReshapeRowMajorToColumnMajor(t *testing.T) {
	// 2 rows x 3 cols, row-major: [1 2 3 4 5 6] meaning
	// row0 = [1 2 3], row1 = [4 5 6].
	src := &buffer{Kind: KindF64, F64: []float64{1, 2, 3, 4, 5, 6}}
	out := reshapeRowMajorToColumnMajor(src, 2, 3)
	// Column-major storage of the same 2x3 matrix is [1 4 2 5 3 6].
	want := []float64{1, 4, 2, 5, 3, 6}
	for i := range want {
		if out.F64[i] != want[i] {
			t.Errorf("F64[%d] = %v, want %v", i, out.F64[i], want[i])
		}
	}
}

func TestToSparse(t *testing.T) {
	// Column-major 2x2 matrix [[0 3] [0 4]] stored as [0 0 3 4].
	b := &buffer{Kind: KindF64, F64: []float64{0, 0, 3, 4}}
	ir, jc, vals, ok := toSparse(b, 2, 2)
	if !ok {
		t.Fatalf("toSparse() failed unexpectedly")
	}
	if len(ir) != 2 || ir[0] != 0 || ir[1] != 1 {
		t.Errorf("ir = %v, want [0 1]", ir)
	}
	if len(jc) != 3 || jc[0] != 0 || jc[1] != 0 || jc[2] != 2 {
		t.Errorf("jc = %v, want [0 0 2]", jc)
	}
	if len(vals.F64) != 2 || vals.F64[0] != 3 || vals.F64[1] != 4 {
		t.Errorf("values = %v, want [3 4]", vals.F64)
	}
}

func TestToSparseUnsupportedKind(t *testing.T) {
	b := &buffer{Kind: KindU8, U8: []uint8{1}}
	if _, _, _, ok := toSparse(b, 1, 1); ok {
		t.Errorf("toSparse() on u8 buffer should fail")
	}
}
