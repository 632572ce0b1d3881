// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

// compressChunkBlocks runs every block of a chunk except the last
// through the compression function and returns the running chaining
// value plus the final block, zero-padded to BlockLen, with its true
// length.
//
// chunk must be at most ChunkLen bytes. An empty chunk (legal only
// when the whole input is empty) yields an all-zero final block of
// length 0.
func compressChunkBlocks(chunk []byte, chunkIndex uint64, keyWords [8]uint32, flags uint32) (cv [8]uint32, finalBlock [16]uint32, finalLen uint32, finalFlags uint32) {
	cv = keyWords
	blockFlags := flags | flagChunkStart

	// Peel off full blocks while more input follows them. The last
	// block, full or short, is returned instead of compressed so the
	// caller can decide between CHUNK_END and CHUNK_END|ROOT.
	var blockWords [16]uint32
	for len(chunk) > BlockLen {
		loadBlockWords(&blockWords, chunk)
		cv = first8(compress(&cv, &blockWords, chunkIndex, BlockLen, blockFlags))
		blockFlags = flags
		chunk = chunk[BlockLen:]
	}

	var padded [BlockLen]byte
	copy(padded[:], chunk)
	loadBlockWords(&finalBlock, padded[:])
	return cv, finalBlock, uint32(len(chunk)), blockFlags | flagChunkEnd
}

// chunkOutput compresses a whole chunk and returns its output state.
// The output state defers the final compression so the caller can add
// the ROOT flag when the chunk is the entire input.
func chunkOutput(chunk []byte, chunkIndex uint64, keyWords [8]uint32, flags uint32) output {
	cv, finalBlock, finalLen, finalFlags := compressChunkBlocks(chunk, chunkIndex, keyWords, flags)
	return output{
		inputCV:    cv,
		blockWords: finalBlock,
		counter:    chunkIndex,
		blockLen:   finalLen,
		flags:      finalFlags,
	}
}

// chunkCV compresses a whole chunk into its chaining value. Only
// valid for non-root chunks: the ROOT flag can never be added after
// the fact.
func chunkCV(chunk []byte, chunkIndex uint64, keyWords [8]uint32, flags uint32) [8]uint32 {
	out := chunkOutput(chunk, chunkIndex, keyWords, flags)
	return out.chainingValue()
}
