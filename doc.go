// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package matio reads and writes MAT-file Version 7 binary container
// files, the legacy scientific data-interchange format used to store
// named numeric arrays, sparse matrices, cell arrays and structures.
//
// The package is organised around three cooperating pieces:
//
//   - Variable, a recursive tagged value holding one of a numeric
//     array, a sparse array, a cell array, a structure or a structure
//     array;
//   - a binary codec (the cur/bld cursor types) implementing the format's
//     length-prefixed "normal" and "small" sub-element framings, its
//     8-byte alignment rules and its per-element width coercions;
//   - File, an insertion-ordered container of named Variables with
//     Load and Save entry points.
//
// MAT-file Version 7.3 (HDF5-based) files are detected and rejected;
// this package only understands Version 7.
package matio
