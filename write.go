// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
)

// encodeVariable renders v (named name) as a complete matrix-element
// record: the miMatrix header followed by the array-props, dimension,
// name and class-specific payload blocks.
func encodeVariable(order binary.ByteOrder, name string, v Variable) ([]byte, error) {
	payload := newBld(order)
	if err := writeMatrixPayload(payload, name, v); err != nil {
		return nil, err
	}
	out := newBld(order)
	writeSubHeader(out, miMatrix, payload.bytes())
	return out.bytes(), nil
}

// encodeCompressed renders v as a compressed wrapper: a miCompressed
// header around a level-9 zlib stream whose inflated content is v's
// own plain matrix-element encoding.
func encodeCompressed(order binary.ByteOrder, name string, v Variable) ([]byte, error) {
	inner, err := encodeVariable(order, name, v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, ioErrorf("failed to create zlib writer: %v", err)
	}
	if _, err := zw.Write(inner); err != nil {
		return nil, ioErrorf("failed to compress variable %q: %v", name, err)
	}
	if err := zw.Close(); err != nil {
		return nil, ioErrorf("failed to flush zlib writer: %v", err)
	}

	out := newBld(order)
	writeSubHeader(out, miCompressed, buf.Bytes())
	return out.bytes(), nil
}

func writeMatrixPayload(w *bld, name string, v Variable) error {
	switch v.kind {
	case varNumeric, varEmpty:
		return writeNumericPayload(w, name, v)
	case varSparse:
		return writeSparsePayload(w, name, v)
	case varCell:
		return writeCellPayload(w, name, v)
	case varStruct, varStructArray:
		return writeStructPayload(w, name, v)
	case varUnsupported:
		return wireErrorf("writing opaque/object variables is not supported")
	default:
		return wireErrorf("cannot write variable of kind %d", v.kind)
	}
}

func writeValueBlock(w *bld, wt wireType, b *buffer) {
	switch b.Kind {
	case KindChar:
		writeSubHeader(w, miUtf8, encodeUtf8(b.Char))
		return
	case KindU64:
		writeSubHeader(w, wt, encodeUint64Wire(w.order, b.U64))
		return
	case KindI64:
		writeSubHeader(w, wt, encodeInt64Wire(w.order, b.I64))
		return
	}
	vals := numericValuesToF64(b)
	writeSubHeader(w, wt, encodeNumericWire(w.order, wt, vals))
}

func writeNumericPayload(w *bld, name string, v Variable) error {
	wt, ct, isLogical := chooseNumericWire(v.real)
	writeArrayProps(w, arrayProps{class: ct, complex: v.imag != nil, logical: isLogical})
	writeDimensions(w, v.dims)
	writeName(w, name)
	writeValueBlock(w, wt, v.real)
	if v.imag != nil {
		wt2, _, _ := chooseNumericWire(v.imag)
		writeValueBlock(w, wt2, v.imag)
	}
	return nil
}

// sparseWireKind picks the wire type/class/logical triple for a
// sparse value buffer. Only f64 and bool are supported, matching the
// reference writer; the f64 downcast rule does not apply to sparse
// values.
func sparseWireKind(b *buffer) (wireType, classTag, bool, error) {
	switch b.Kind {
	case KindF64:
		return miDouble, mxDouble, false, nil
	case KindBool:
		return miUint8, mxUint8, true, nil
	default:
		return 0, 0, false, constructionErrorf("sparse values must be f64 or bool, got %s", b.Kind)
	}
}

func writeSparsePayload(w *bld, name string, v Variable) error {
	wt, ct, isLogical, err := sparseWireKind(v.real)
	if err != nil {
		return err
	}
	_ = ct
	writeArrayProps(w, arrayProps{class: mxSparse, complex: v.imag != nil, logical: isLogical, sparseNum: uint32(len(v.ir))})
	writeDimensions(w, v.dims)
	writeName(w, name)
	writeDimensions(w, v.ir)
	writeDimensions(w, v.jc)
	writeValueBlock(w, wt, v.real)
	if v.imag != nil {
		wt2, _, _, err := sparseWireKind(v.imag)
		if err != nil {
			return err
		}
		writeValueBlock(w, wt2, v.imag)
	}
	return nil
}

func writeCellPayload(w *bld, name string, v Variable) error {
	writeArrayProps(w, arrayProps{class: mxCell})
	writeDimensions(w, v.dims)
	writeName(w, name)
	for _, cell := range v.cells {
		sub, err := encodeVariable(w.order, "", cell)
		if err != nil {
			return err
		}
		w.addBytes(sub)
	}
	return nil
}

func writeStructPayload(w *bld, name string, v Variable) error {
	writeArrayProps(w, arrayProps{class: mxStruct})
	writeDimensions(w, v.dims)
	writeName(w, name)
	writeFieldNames(w, v.fieldNames)
	for _, f := range v.fields {
		sub, err := encodeVariable(w.order, "", f)
		if err != nil {
			return err
		}
		w.addBytes(sub)
	}
	return nil
}
