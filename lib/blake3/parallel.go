// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"github.com/treehash-project/treehash/lib/workpool"
)

// parallelThreshold is the smallest subtree, in bytes, worth handing
// to another worker. Below this the per-fork scheduling cost exceeds
// the hashing cost on every machine we measured, so subtrees smaller
// than 128 chunks are always hashed inline. The threshold is a tuning
// parameter only: both sides of it run through the same tree rule, so
// output never depends on it.
const parallelThreshold = 128 * ChunkLen

// ParallelSum256 returns the 32-byte BLAKE3 hash of data, splitting
// the chunk tree across the pool's workers. The result is
// bit-identical to [Sum256] for every pool size, including a nil or
// size-1 pool (which degrade to fully sequential evaluation).
//
// The call blocks until the whole tree has been hashed. A panic in
// any worker subtask aborts the call by re-panicking on the calling
// goroutine; no partial digest is ever returned.
func ParallelSum256(pool *workpool.Pool, data []byte) Digest {
	node := parallelRootNode(pool, data, iv, 0)
	var digest Digest
	node.expand(digest[:])
	return digest
}

// ParallelSumXOF returns length bytes of BLAKE3 extended output for
// data, hashing the chunk tree across the pool's workers. The result
// is bit-identical to [SumXOF] for every pool size.
func ParallelSumXOF(pool *workpool.Pool, data []byte, length int) []byte {
	out := make([]byte, length)
	node := parallelRootNode(pool, data, iv, 0)
	node.expand(out)
	return out
}

// parallelRootNode is rootNode with the subtree computations forked
// across the pool. The root combination itself always happens on the
// calling goroutine, after both subtrees have joined.
func parallelRootNode(pool *workpool.Pool, data []byte, keyWords [8]uint32, flags uint32) output {
	if len(data) <= ChunkLen {
		return chunkOutput(data, 0, keyWords, flags)
	}
	split := leftSubtreeBytes(len(data))

	var left [8]uint32
	join := pool.Fork(func() {
		left = parallelSubtreeCV(pool, data[:split], 0, keyWords, flags)
	})
	right := parallelSubtreeCV(pool, data[split:], uint64(split/ChunkLen), keyWords, flags)
	join.Wait()

	return parentNode(left, right, keyWords, flags)
}

// parallelSubtreeCV computes a subtree chaining value, forking the
// left half whenever the subtree is above parallelThreshold and the
// pool grants a slot. Tasks own disjoint slices of data and write
// disjoint results; the Join is the only synchronization needed.
func parallelSubtreeCV(pool *workpool.Pool, data []byte, chunkIndex uint64, keyWords [8]uint32, flags uint32) [8]uint32 {
	if len(data) < parallelThreshold {
		return subtreeCV(data, chunkIndex, keyWords, flags)
	}
	split := leftSubtreeBytes(len(data))

	var left [8]uint32
	join := pool.Fork(func() {
		left = parallelSubtreeCV(pool, data[:split], chunkIndex, keyWords, flags)
	})
	right := parallelSubtreeCV(pool, data[split:], chunkIndex+uint64(split/ChunkLen), keyWords, flags)
	join.Wait()

	return parentCV(left, right, keyWords, flags)
}
