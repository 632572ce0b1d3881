// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

// Package blake3 implements the BLAKE3 cryptographic hash function
// from scratch: the compression core, chunked tree hashing, the
// extendable-output mode, and the keyed and derive-key variants.
//
// The package is organized around the layers of the construction:
//
//   - Compression: the fixed 64-byte block transform (compress.go).
//     Everything else in the package reduces to calls into it. The
//     implementation is pure scalar Go; output is bit-for-bit
//     compatible with the reference construction, which the tests
//     enforce by cross-checking against github.com/zeebo/blake3.
//
//   - Chunking: input is split into 1024-byte chunks, each compressed
//     block by block into a 32-byte chaining value (chunk.go). Chunk
//     indices feed the compression counter so identical chunks at
//     different positions produce different chaining values.
//
//   - Tree combination: chaining values merge bottom-up into a binary
//     tree (tree.go). The split rule — left subtree takes the largest
//     power of two strictly less than the chunk count — is a pure
//     function of input length, so sequential and parallel evaluation
//     produce identical roots by construction.
//
//   - Output: the root node is retained as a seed and expanded into
//     any requested number of output bytes (output.go). Shorter
//     outputs are always prefixes of longer ones.
//
// One-shot entry points cover the four modes: [Sum256] and [SumXOF]
// for plain hashing, [SumKeyed] for the 32-byte-key MAC mode, and
// [DeriveKey] for context-separated key derivation. [ParallelSum256]
// and [ParallelSumXOF] hash large inputs across a
// [github.com/treehash-project/treehash/lib/workpool.Pool] with
// output identical to the sequential entry points for every pool
// size.
//
// The package operates on in-memory byte slices only; there is no
// streaming hasher surface.
package blake3
