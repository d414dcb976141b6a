// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import "testing"

func TestBuildScalars(t *testing.T) {
	children := make([]Variable, 3)
	for i, f := range []float64{1, 2, 3} {
		v, err := NewNumeric(KindF64, []int{1, 1}, []float64{f})
		if err != nil {
			t.Fatalf("NewNumeric(): %v", err)
		}
		children[i] = v
	}

	v, err := Build(children)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if got := v.Dim(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("Dim() = %v, want [1 3]", got)
	}
	vals, ok := v.ToVecF64()
	if !ok {
		t.Fatalf("ToVecF64() failed")
	}
	want := []float64{1, 2, 3}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("vals[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
}

func TestBuildRowVectors(t *testing.T) {
	row := func(vs ...float64) Variable {
		v, err := NewNumeric(KindF64, []int{1, len(vs)}, vs)
		if err != nil {
			t.Fatalf("NewNumeric(): %v", err)
		}
		return v
	}
	v, err := Build([]Variable{row(1, 2, 3), row(4, 5, 6)})
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if got := v.Dim(); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("Dim() = %v, want [2 3]", got)
	}
	// Column-major storage of [[1 2 3] [4 5 6]] is [1 4 2 5 3 6].
	vals, _ := v.ToVecF64()
	want := []float64{1, 4, 2, 5, 3, 6}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("vals[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
}

func TestBuildMismatchedKindFails(t *testing.T) {
	a, _ := NewNumeric(KindF64, []int{1, 1}, []float64{1})
	b, _ := NewNumeric(KindU8, []int{1, 1}, []float64{2})
	if _, err := Build([]Variable{a, b}); err == nil {
		t.Fatalf("Build() with mixed kinds should fail")
	}
}

func TestBuildEmpty(t *testing.T) {
	v, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil): %v", err)
	}
	if got := v.Dim(); len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Errorf("Dim() = %v, want [0 0]", got)
	}
}

func TestBuildStructArray(t *testing.T) {
	mkStruct := func(x float64) Variable {
		xv, _ := NewNumeric(KindF64, []int{1, 1}, []float64{x})
		s, err := NewStruct([]string{"x"}, []Variable{xv})
		if err != nil {
			t.Fatalf("NewStruct(): %v", err)
		}
		return s
	}
	v, err := Build([]Variable{mkStruct(1), mkStruct(2)})
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	elems := v.Elements()
	if len(elems) != 2 {
		t.Fatalf("Elements() length = %d, want 2", len(elems))
	}
	f0, ok := elems[0].Field("x").ToF64()
	if !ok || f0 != 1 {
		t.Errorf("elems[0].Field(x) = %v, %v, want 1, true", f0, ok)
	}
}

func TestBuildCellFallback(t *testing.T) {
	a, _ := NewNumeric(KindF64, []int{1, 1}, []float64{1})
	s, _ := NewStruct([]string{"x"}, []Variable{a})
	v, err := Build([]Variable{a, s})
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if got := v.Dim(); len(got) != 2 || got[1] != 2 {
		t.Fatalf("Dim() = %v, want [1 2]", got)
	}
	if len(v.Elements()) != 2 {
		t.Fatalf("Elements() length = %d, want 2", len(v.Elements()))
	}
}

func TestVariableIndexOutOfRange(t *testing.T) {
	v, _ := NewNumeric(KindF64, []int{1, 2}, []float64{1, 2})
	if !v.Index(5).IsNull() {
		t.Errorf("Index(5) should be Null for a 2-element array")
	}
}

func TestVariableFieldMissing(t *testing.T) {
	xv, _ := NewNumeric(KindF64, []int{1, 1}, []float64{1})
	s, _ := NewStruct([]string{"x"}, []Variable{xv})
	if !s.Field("y").IsNull() {
		t.Errorf("Field(y) on a struct without y should be Null")
	}
}

func TestToSparseVariable(t *testing.T) {
	v, _ := NewNumeric(KindF64, []int{2, 2}, []float64{0, 0, 3, 4})
	sp, ok := v.ToSparse()
	if !ok {
		t.Fatalf("ToSparse() failed")
	}
	if k, _ := sp.ElementKind(); k != KindF64 {
		t.Errorf("ElementKind() = %s, want f64", k)
	}
	if f, ok := sp.Index(2).ToF64(); !ok || f != 3 {
		t.Errorf("Index(2) = %v, %v, want 3, true", f, ok)
	}
	if f, ok := sp.Index(0).ToF64(); !ok || f != 0 {
		t.Errorf("Index(0) = %v, %v, want 0, true", f, ok)
	}
}

func TestBuildComplexScalarsPreservesImaginary(t *testing.T) {
	scalar := func(re, im float64) Variable {
		return Variable{
			kind: varNumeric,
			dims: []int{1, 1},
			real: &buffer{Kind: KindF64, F64: []float64{re}},
			imag: &buffer{Kind: KindF64, F64: []float64{im}},
		}
	}
	v, err := Build([]Variable{scalar(1, 2), scalar(3, 4)})
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if !v.IsComplex() {
		t.Fatalf("Build() of complex scalars should be complex")
	}
	reals, ok := v.ToVecF64()
	if !ok {
		t.Fatalf("ToVecF64() failed")
	}
	imags, ok := v.CompToVecF64()
	if !ok {
		t.Fatalf("CompToVecF64() failed")
	}
	wantReal := []float64{1, 3}
	wantImag := []float64{2, 4}
	for i := range wantReal {
		if reals[i] != wantReal[i] {
			t.Errorf("real[%d] = %v, want %v", i, reals[i], wantReal[i])
		}
		if imags[i] != wantImag[i] {
			t.Errorf("imag[%d] = %v, want %v", i, imags[i], wantImag[i])
		}
	}
}

func TestToU64ToI64ExactPrecision(t *testing.T) {
	u, err := NewNumericU64([]int{1, 1}, []uint64{18446744073709551615})
	if err != nil {
		t.Fatalf("NewNumericU64(): %v", err)
	}
	if got, ok := u.ToU64(); !ok || got != 18446744073709551615 {
		t.Errorf("ToU64() = %v, %v, want 18446744073709551615, true", got, ok)
	}

	i, err := NewNumericI64([]int{1, 1}, []int64{-9223372036854775808})
	if err != nil {
		t.Fatalf("NewNumericI64(): %v", err)
	}
	if got, ok := i.ToI64(); !ok || got != -9223372036854775808 {
		t.Errorf("ToI64() = %v, %v, want -9223372036854775808, true", got, ok)
	}
}

func TestNewCharAndToString(t *testing.T) {
	v := NewChar("hello")
	s, ok := v.ToString()
	if !ok || s != "hello" {
		t.Errorf("ToString() = %q, %v, want %q, true", s, ok, "hello")
	}
}
