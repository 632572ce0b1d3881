// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

const (
	// DigestLen is the default output size in bytes.
	DigestLen = 32
	// KeyLen is the required key size for keyed hashing, in bytes.
	KeyLen = 32
	// BlockLen is the compression function block size in bytes.
	BlockLen = 64
	// ChunkLen is the maximum chunk size in bytes (16 blocks).
	ChunkLen = 1024
)

// Domain-separation flags. Every compression call carries the union
// of the flags that describe its structural position; the flag bits
// partition the output space so that chunk, parent, root, keyed, and
// derive-key compressions can never collide with one another.
const (
	flagChunkStart        uint32 = 1 << 0
	flagChunkEnd          uint32 = 1 << 1
	flagParent            uint32 = 1 << 2
	flagRoot              uint32 = 1 << 3
	flagKeyedHash         uint32 = 1 << 4
	flagDeriveKeyContext  uint32 = 1 << 5
	flagDeriveKeyMaterial uint32 = 1 << 6
)

// iv is the BLAKE3 initialization vector: the first eight words of
// the SHA-512 IV, same as BLAKE2s. It doubles as the key words for
// unkeyed hashing.
var iv = [8]uint32{
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A,
	0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

// msgPermutation rearranges the sixteen message words between rounds.
// Applying it six times (rounds 2 through 7) walks the words through
// the schedule of the reference construction.
var msgPermutation = [16]uint8{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8}
