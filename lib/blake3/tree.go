// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import "math/bits"

// leftSubtreeBytes returns the byte length of the left subtree for an
// input of totalLen bytes spanning two or more chunks: the largest
// power-of-two number of chunks strictly less than the total chunk
// count. This split rule is a pure function of input length, which is
// what makes the tree shape independent of evaluation order.
func leftSubtreeBytes(totalLen int) int {
	// Round the chunk count down to a power of two, taking care that
	// an exact power of two splits one step lower (strictly less).
	fullChunks := (totalLen - 1) / ChunkLen
	return ChunkLen << (bits.Len(uint(fullChunks)) - 1)
}

// parentNode builds the deferred parent compression of two child
// chaining values: their concatenation as the message block, the key
// words as the input CV, counter 0, and the PARENT flag.
func parentNode(left, right [8]uint32, keyWords [8]uint32, flags uint32) output {
	var blockWords [16]uint32
	copy(blockWords[:8], left[:])
	copy(blockWords[8:], right[:])
	return output{
		inputCV:    keyWords,
		blockWords: blockWords,
		counter:    0,
		blockLen:   BlockLen,
		flags:      flags | flagParent,
	}
}

// parentCV combines two child chaining values into a non-root parent
// chaining value.
func parentCV(left, right [8]uint32, keyWords [8]uint32, flags uint32) [8]uint32 {
	node := parentNode(left, right, keyWords, flags)
	return node.chainingValue()
}

// subtreeCV computes the chaining value of the subtree covering data,
// whose first chunk has index chunkIndex. data must span at least one
// chunk and must not be the whole input (the root is finalized by
// rootNode instead, because ROOT cannot be added to a finished CV).
//
// The recursion halves the chunk count at every step, so its depth is
// bounded by log2 of the chunk count (at most 54 for a 64-bit byte
// length) regardless of input size.
func subtreeCV(data []byte, chunkIndex uint64, keyWords [8]uint32, flags uint32) [8]uint32 {
	if len(data) <= ChunkLen {
		return chunkCV(data, chunkIndex, keyWords, flags)
	}
	split := leftSubtreeBytes(len(data))
	left := subtreeCV(data[:split], chunkIndex, keyWords, flags)
	right := subtreeCV(data[split:], chunkIndex+uint64(split/ChunkLen), keyWords, flags)
	return parentCV(left, right, keyWords, flags)
}

// rootNode computes the deferred root compression for the whole
// input: the final-chunk output when the input fits in one chunk,
// otherwise the parent combination of the two subtrees spanning the
// entire range. Exactly this one node receives the ROOT flag, at
// expansion time.
func rootNode(data []byte, keyWords [8]uint32, flags uint32) output {
	if len(data) <= ChunkLen {
		return chunkOutput(data, 0, keyWords, flags)
	}
	split := leftSubtreeBytes(len(data))
	left := subtreeCV(data[:split], 0, keyWords, flags)
	right := subtreeCV(data[split:], uint64(split/ChunkLen), keyWords, flags)
	return parentNode(left, right, keyWords, flags)
}
