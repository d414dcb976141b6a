// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

// readSubHeader reads one sub-element's framing off c, returning its
// wire type and a cursor over exactly its payload bytes (no padding).
// The framing is distinguished per the format's own rule: the upper
// 16 bits of the first 32-bit word are zero for "normal" framing and
// non-zero for "small" framing.
func readSubHeader(c *cur) (t wireType, payload *cur, small bool, err error) {
	if c.len() < 4 {
		return 0, nil, false, wireErrorf("truncated sub-element header")
	}
	word0, ok := c.readU32()
	if !ok {
		return 0, nil, false, wireErrorf("truncated sub-element header")
	}

	if word0>>16 != 0 {
		// Small framing: low 16 bits are the type, high 16 bits are
		// the byte count, followed by a fixed 4-byte payload slot.
		t = wireType(word0 & 0xFFFF)
		n := int(word0 >> 16)
		if n > 4 {
			return 0, nil, false, wireErrorf("small sub-element byte count %d exceeds 4", n)
		}
		raw, ok := c.readBytes(4)
		if !ok {
			return 0, nil, false, wireErrorf("truncated small sub-element payload")
		}
		return t, newCur(raw[:n], c.order), true, nil
	}

	t = wireType(word0)
	n, ok := c.readU32()
	if !ok {
		return 0, nil, false, wireErrorf("truncated sub-element byte count")
	}
	raw, ok := c.readBytes(int(n))
	if !ok {
		return 0, nil, false, wireErrorf("truncated sub-element payload of %d bytes", n)
	}
	if pad := align8(int(n)); pad > 0 {
		if !c.skip(pad) {
			return 0, nil, false, wireErrorf("truncated sub-element padding")
		}
	}
	return t, newCur(raw, c.order), false, nil
}

// writeSubHeader emits a sub-element's framing and payload, choosing
// small framing whenever the payload is at most 4 bytes.
func writeSubHeader(w *bld, t wireType, payload []byte) {
	if len(payload) <= 4 {
		word0 := uint32(t) | uint32(len(payload))<<16
		w.addU32(word0)
		var slot [4]byte
		copy(slot[:], payload)
		w.addBytes(slot[:])
		return
	}

	w.addU32(uint32(t))
	w.addU32(uint32(len(payload)))
	w.addBytes(payload)
	w.pad(align8(len(payload)))
}
