// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import "encoding/binary"

// output is a deferred compression: the inputs to the final
// compression of a chunk or parent node, captured before the ROOT
// decision is made. It serves two purposes:
//
//   - chainingValue() runs the compression without ROOT, producing
//     the node's 32-byte chaining value for use further up the tree.
//
//   - expand() runs the compression with ROOT and an incrementing
//     output-block counter, producing the extendable output stream.
//
// Holding the pre-compression inputs rather than a digest is what
// makes arbitrary-length output possible: each keystream block is an
// independent compression of the same seed under a different counter.
type output struct {
	inputCV    [8]uint32
	blockWords [16]uint32
	counter    uint64
	blockLen   uint32
	flags      uint32
}

// chainingValue finalizes the node as a non-root: its 8-word CV.
func (o *output) chainingValue() [8]uint32 {
	return first8(compress(&o.inputCV, &o.blockWords, o.counter, o.blockLen, o.flags))
}

// expand fills out with root keystream bytes. Successive 64-byte
// blocks come from compressing the seed with ROOT set and output
// block counters 0, 1, 2, …; the stream is truncated to len(out).
// A shorter request is therefore always a prefix of a longer one.
func (o *output) expand(out []byte) {
	var blockCounter uint64
	for len(out) > 0 {
		words := compress(&o.inputCV, &o.blockWords, blockCounter, o.blockLen, o.flags|flagRoot)
		for i := 0; i < 16 && len(out) > 0; i++ {
			if len(out) >= 4 {
				binary.LittleEndian.PutUint32(out, words[i])
				out = out[4:]
				continue
			}
			var tail [4]byte
			binary.LittleEndian.PutUint32(tail[:], words[i])
			copy(out, tail[:len(out)])
			return
		}
		blockCounter++
	}
}
