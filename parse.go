// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
)

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// parseElement reads one length-prefixed element off c: either a plain
// matrix element or a compressed wrapper transparently expanding to
// one. This is the entry point for every nested inner variable (cell
// elements, structure fields), which never care about the matrix
// element's own name sub-element.
func parseElement(c *cur) (Variable, error) {
	_, v, err := parseNamedElement(c)
	return v, err
}

// parseNamedElement is parseElement's top-level counterpart: it also
// returns the variable's own name sub-element, used by the container
// reader to key the result.
func parseNamedElement(c *cur) (string, Variable, error) {
	t, payload, _, err := readSubHeader(c)
	if err != nil {
		return "", Variable{}, err
	}

	switch t {
	case miMatrix:
		return parseMatrixBody(payload)
	case miCompressed:
		raw, ok := payload.readBytes(payload.len())
		if !ok {
			return "", Variable{}, wireErrorf("truncated compressed payload")
		}
		return parseCompressed(raw, c.order)
	default:
		return "", Variable{}, wireErrorf("unexpected top-level wire type %d", t)
	}
}

// parseCompressed inflates an exact-bounded zlib stream and recurses
// into parseNamedElement over the resulting buffer. Inflation is
// bounded to exactly the compressed byte-count carried on the wire;
// readers must never read past it, per the format's compression
// policy.
func parseCompressed(raw []byte, order binary.ByteOrder) (string, Variable, error) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", Variable{}, wireErrorf("invalid zlib stream: %v", err)
	}
	defer zr.Close()

	inflated, err := io.ReadAll(zr)
	if err != nil {
		return "", Variable{}, wireErrorf("zlib inflate failed: %v", err)
	}

	return parseNamedElement(newCur(inflated, order))
}

// parseMatrixBody reads a matrix element's body (everything after the
// outer data-type/byte-count header): array-props, dimensions, name,
// and then the class-tag-dispatched payload.
func parseMatrixBody(c *cur) (string, Variable, error) {
	props, err := readArrayProps(c)
	if err != nil {
		return "", Variable{}, err
	}
	dims, err := readDimensions(c)
	if err != nil {
		return "", Variable{}, err
	}
	name, err := readName(c)
	if err != nil {
		return "", Variable{}, err
	}

	v, err := parseMatrixPayload(c, dims, props)
	return name, v, err
}

func parseMatrixPayload(c *cur, dims []int, props arrayProps) (Variable, error) {
	switch props.class {
	case mxStruct:
		return parseStruct(c, dims)
	case mxCell:
		return parseCell(c, dims)
	case mxSparse:
		return parseSparse(c, dims, props)
	case mxObject, mxHandle, mxOpaque:
		c.skip(c.len())
		return Variable{kind: varUnsupported, dims: dims}, nil
	default:
		return parseNumeric(c, dims, props)
	}
}

func parseStruct(c *cur, dims []int) (Variable, error) {
	fieldNames, err := readFieldNames(c)
	if err != nil {
		return Variable{}, err
	}
	n := product(dims)
	total := n * len(fieldNames)
	fields := make([]Variable, total)
	for i := 0; i < total; i++ {
		fields[i], err = parseElement(c)
		if err != nil {
			return Variable{}, err
		}
	}
	if n == 1 {
		return Variable{kind: varStruct, dims: []int{1, 1}, fieldNames: fieldNames, fields: fields}, nil
	}
	return Variable{kind: varStructArray, dims: dims, fieldNames: fieldNames, fields: fields}, nil
}

func parseCell(c *cur, dims []int) (Variable, error) {
	n := product(dims)
	cells := make([]Variable, n)
	var err error
	for i := 0; i < n; i++ {
		cells[i], err = parseElement(c)
		if err != nil {
			return Variable{}, err
		}
	}
	return Variable{kind: varCell, dims: dims, cells: cells}, nil
}

func sparseValueClass(t wireType) classTag {
	if t == miDouble {
		return mxDouble
	}
	return mxUint8
}

func parseSparse(c *cur, dims []int, props arrayProps) (Variable, error) {
	if len(dims) != 2 {
		return Variable{}, wireErrorf("sparse array must be 2-D, got %d dims", len(dims))
	}
	ir, err := readDimensions(c)
	if err != nil {
		return Variable{}, err
	}
	jc, err := readDimensions(c)
	if err != nil {
		return Variable{}, err
	}

	t, valPayload, _, err := readSubHeader(c)
	if err != nil {
		return Variable{}, err
	}
	raw, _ := valPayload.readBytes(valPayload.len())
	val, err := upcastValue(c.order, t, sparseValueClass(t), props.logical, raw)
	if err != nil {
		return Variable{}, err
	}

	var imagVal *buffer
	if props.complex {
		t2, imagPayload, _, err := readSubHeader(c)
		if err != nil {
			return Variable{}, err
		}
		raw2, _ := imagPayload.readBytes(imagPayload.len())
		imagVal, err = upcastValue(c.order, t2, sparseValueClass(t2), props.logical, raw2)
		if err != nil {
			return Variable{}, err
		}
	}

	return Variable{kind: varSparse, dims: dims, real: val, imag: imagVal, ir: ir, jc: jc}, nil
}

func parseNumeric(c *cur, dims []int, props arrayProps) (Variable, error) {
	t, valPayload, _, err := readSubHeader(c)
	if err != nil {
		return Variable{}, err
	}
	raw, _ := valPayload.readBytes(valPayload.len())
	val, err := upcastValue(c.order, t, props.class, props.logical, raw)
	if err != nil {
		return Variable{}, err
	}

	var imagVal *buffer
	if props.complex {
		t2, imagPayload, _, err := readSubHeader(c)
		if err != nil {
			return Variable{}, err
		}
		raw2, _ := imagPayload.readBytes(imagPayload.len())
		imagVal, err = upcastValue(c.order, t2, props.class, props.logical, raw2)
		if err != nil {
			return Variable{}, err
		}
	}

	kind := varNumeric
	if product(dims) == 0 {
		kind = varEmpty
	}
	return Variable{kind: kind, dims: dims, real: val, imag: imagVal}, nil
}
