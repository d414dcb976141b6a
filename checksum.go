// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

import (
	"crypto/sha256"
	"io"
)

// Checksum returns the SHA-256 digest of r's contents. MAT-file v7
// carries no in-format checksum field; this is an opt-in sidecar
// helper for callers that want to detect corruption in transit.
func Checksum(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, ioErrorf("failed to compute checksum: %v", err)
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
