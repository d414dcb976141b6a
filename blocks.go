// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

const (
	flagComplex = 0x08
	flagGlobal  = 0x04
	flagLogical = 0x02
)

// arrayProps is the fixed 16-byte array-props sub-element: class tag,
// packed flag bits, and the sparse non-zero count (unused outside
// sparse arrays).
type arrayProps struct {
	class     classTag
	complex   bool
	global    bool
	logical   bool
	sparseNum uint32
}

func readArrayProps(c *cur) (arrayProps, error) {
	dtype, ok := c.readU32()
	if !ok || wireType(dtype) != miUint32 {
		return arrayProps{}, wireErrorf("array-props data type %d, want uint32", dtype)
	}
	n, ok := c.readU32()
	if !ok || n != 8 {
		return arrayProps{}, wireErrorf("array-props byte count %d, want 8", n)
	}
	payload, ok := c.readBytes(8)
	if !ok {
		return arrayProps{}, wireErrorf("truncated array-props payload")
	}
	flags := payload[1]
	nzmax := c.order.Uint32(payload[4:8])
	return arrayProps{
		class:     classTag(payload[0]),
		complex:   flags&flagComplex != 0,
		global:    flags&flagGlobal != 0,
		logical:   flags&flagLogical != 0,
		sparseNum: nzmax,
	}, nil
}

func writeArrayProps(w *bld, p arrayProps) {
	w.addU32(uint32(miUint32))
	w.addU32(8)

	var flags byte
	if p.complex {
		flags |= flagComplex
	}
	if p.global {
		flags |= flagGlobal
	}
	if p.logical {
		flags |= flagLogical
	}

	payload := make([]byte, 8)
	payload[0] = byte(p.class)
	payload[1] = flags
	w.order.PutUint32(payload[4:8], p.sparseNum)
	w.addBytes(payload)
}

// readDimensions reads the array-dimension sub-element: a sequence of
// signed 32-bit dimensions, small-framed when there is at most one.
func readDimensions(c *cur) ([]int, error) {
	t, payload, _, err := readSubHeader(c)
	if err != nil {
		return nil, err
	}
	if t != miInt32 {
		return nil, wireErrorf("dimension sub-element has wire type %d, want int32", t)
	}
	n := payload.len() / 4
	dims := make([]int, n)
	for i := 0; i < n; i++ {
		v, _ := payload.readU32()
		dims[i] = int(int32(v))
	}
	return dims, nil
}

func writeDimensions(w *bld, dims []int) {
	payload := newBld(w.order)
	for _, d := range dims {
		payload.addU32(uint32(int32(d)))
	}
	writeSubHeader(w, miInt32, payload.bytes())
}

// readName reads the array-name sub-element, an ASCII payload under
// wire type int8.
func readName(c *cur) (string, error) {
	t, payload, _, err := readSubHeader(c)
	if err != nil {
		return "", err
	}
	if t != miInt8 {
		return "", wireErrorf("name sub-element has wire type %d, want int8", t)
	}
	raw, _ := payload.readBytes(payload.len())
	return string(raw), nil
}

func writeName(w *bld, name string) {
	writeSubHeader(w, miInt8, []byte(name))
}

// readFieldNames reads the two-part field-name table: a small-framed
// int32 holding the common stride, followed by an int8 block holding
// stride*n bytes, one null-padded name per field.
func readFieldNames(c *cur) ([]string, error) {
	t, strideBuf, small, err := readSubHeader(c)
	if err != nil {
		return nil, err
	}
	if t != miInt32 || !small {
		return nil, wireErrorf("field-name stride sub-element malformed")
	}
	strideRaw, _ := strideBuf.readBytes(strideBuf.len())
	if len(strideRaw) != 4 {
		return nil, wireErrorf("field-name stride payload must be 4 bytes")
	}
	stride := int(c.order.Uint32(strideRaw))

	t2, namesBuf, _, err := readSubHeader(c)
	if err != nil {
		return nil, err
	}
	if t2 != miInt8 {
		return nil, wireErrorf("field-name table has wire type %d, want int8", t2)
	}
	if stride <= 0 {
		return nil, nil
	}
	raw, _ := namesBuf.readBytes(namesBuf.len())
	count := len(raw) / stride
	names := make([]string, count)
	for i := 0; i < count; i++ {
		chunk := raw[i*stride : (i+1)*stride]
		end := 0
		for end < len(chunk) && chunk[end] != 0 {
			end++
		}
		names[i] = string(chunk[:end])
	}
	return names, nil
}

// fieldNameStride computes the per-name byte stride used on write: the
// longest ASCII-filtered, 63-char-truncated name plus one, with a
// floor of 5 for a single field and 3 for two fields, capped at 64.
func fieldNameStride(names []string) int {
	longest := 0
	for _, n := range names {
		n = asciiFilterTruncate(n)
		if len(n) > longest {
			longest = len(n)
		}
	}
	stride := longest + 1
	switch len(names) {
	case 1:
		if stride < 5 {
			stride = 5
		}
	case 2:
		if stride < 3 {
			stride = 3
		}
	}
	if stride > 64 {
		stride = 64
	}
	return stride
}

func asciiFilterTruncate(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s) && len(out) < 63; i++ {
		if s[i] < 128 {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func writeFieldNames(w *bld, names []string) {
	stride := fieldNameStride(names)

	strideBuilder := newBld(w.order)
	strideBuilder.addU32(uint32(stride))
	writeSubHeader(w, miInt32, strideBuilder.bytes())

	payload := make([]byte, 0, stride*len(names))
	for _, n := range names {
		n = asciiFilterTruncate(n)
		row := make([]byte, stride)
		copy(row, n)
		payload = append(payload, row...)
	}
	writeSubHeader(w, miInt8, payload)
}
