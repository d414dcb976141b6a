// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
)

const headerSize = 128

// readHeader reads the 128-byte MAT-file text header, returning the
// byte order the rest of the file is encoded in and the subsystem-data
// offset (0 if absent).
func readHeader(r io.Reader) (order binary.ByteOrder, subsystemOffset uint64, err error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, 0, ioErrorf("failed to read MAT-file header: %v", err)
	}

	switch {
	case buf[126] == 'M' && buf[127] == 'I':
		order = binary.LittleEndian
	case buf[126] == 'I' && buf[127] == 'M':
		order = binary.BigEndian
	default:
		return nil, 0, wireErrorf("invalid endian indicator %q", buf[126:128])
	}

	version := order.Uint16(buf[124:126])
	if version == 0x0200 {
		return nil, 0, &Error{Kind: ErrUnsupportedVersion, Err: wireErrorf("MAT-file version 7.3 (HDF5) is not supported")}
	}

	subsystemOffset = order.Uint64(buf[116:124])
	return order, subsystemOffset, nil
}

// writeHeader writes the 128-byte MAT-file text header for a Version 7
// file in the given byte order.
func writeHeader(w io.Writer, order binary.ByteOrder) error {
	buf := make([]byte, headerSize)
	desc := []byte("MATLAB 7.0 MAT-file, created by firefly-os.dev/matio")
	n := copy(buf, desc)
	for i := n; i < 116; i++ {
		buf[i] = ' '
	}
	order.PutUint16(buf[124:126], 0x0100)
	if order == binary.ByteOrder(binary.LittleEndian) {
		buf[126], buf[127] = 'M', 'I'
	} else {
		buf[126], buf[127] = 'I', 'M'
	}
	_, err := w.Write(buf)
	return err
}

// Load reads a MAT-file from r, consuming matrix elements until the
// subsystem offset (or end of stream) is reached.
func Load(r io.Reader) (*File, error) {
	order, subsystemOffset, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ioErrorf("failed to read MAT-file body: %v", err)
	}
	if subsystemOffset != 0 {
		limit := int64(subsystemOffset) - headerSize
		if limit >= 0 && limit < int64(len(data)) {
			data = data[:limit]
		}
	}

	f := NewFile()
	c := newCur(data, order)
	for !c.empty() {
		name, v, err := parseNamedElement(c)
		if err != nil {
			return nil, err
		}
		if err := f.Insert(name, v); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// LoadFile opens path and loads it as a MAT-file.
func LoadFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf("failed to open %s: %v", path, err)
	}
	defer r.Close()
	return Load(r)
}

// Save writes f to w as a Version 7 MAT-file. When compress is true,
// every variable is wrapped in a compressed (zlib level 9) frame.
func Save(w io.Writer, f *File, compress bool) error {
	order := binary.ByteOrder(binary.LittleEndian)
	if err := writeHeader(w, order); err != nil {
		return ioErrorf("failed to write MAT-file header: %v", err)
	}

	var buf bytes.Buffer
	var encErr error
	f.Each(func(name string, v Variable) {
		if encErr != nil {
			return
		}
		var b []byte
		if compress {
			b, encErr = encodeCompressed(order, name, v)
		} else {
			b, encErr = encodeVariable(order, name, v)
		}
		if encErr == nil {
			buf.Write(b)
		}
	})
	if encErr != nil {
		return encErr
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return ioErrorf("failed to write MAT-file body: %v", err)
	}
	return nil
}

// SaveFile creates (or truncates) path and saves f to it.
func SaveFile(path string, f *File, compress bool) error {
	w, err := os.Create(path)
	if err != nil {
		return ioErrorf("failed to create %s: %v", path, err)
	}
	defer w.Close()
	return Save(w, f, compress)
}
