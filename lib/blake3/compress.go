// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"encoding/binary"
	"math/bits"
)

// g is the quarter-round: it mixes two message words into four state
// words. The rotation distances (16, 12, 8, 7) are fixed by the
// construction.
func g(state *[16]uint32, a, b, c, d int, mx, my uint32) {
	state[a] = state[a] + state[b] + mx
	state[d] = bits.RotateLeft32(state[d]^state[a], -16)
	state[c] = state[c] + state[d]
	state[b] = bits.RotateLeft32(state[b]^state[c], -12)
	state[a] = state[a] + state[b] + my
	state[d] = bits.RotateLeft32(state[d]^state[a], -8)
	state[c] = state[c] + state[d]
	state[b] = bits.RotateLeft32(state[b]^state[c], -7)
}

// round applies one full round: four column mixes followed by four
// diagonal mixes, consuming all sixteen message words.
func round(state *[16]uint32, m *[16]uint32) {
	// Columns.
	g(state, 0, 4, 8, 12, m[0], m[1])
	g(state, 1, 5, 9, 13, m[2], m[3])
	g(state, 2, 6, 10, 14, m[4], m[5])
	g(state, 3, 7, 11, 15, m[6], m[7])
	// Diagonals.
	g(state, 0, 5, 10, 15, m[8], m[9])
	g(state, 1, 6, 11, 12, m[10], m[11])
	g(state, 2, 7, 8, 13, m[12], m[13])
	g(state, 3, 4, 9, 14, m[14], m[15])
}

// permute rearranges the message words according to msgPermutation.
func permute(m *[16]uint32) {
	var permuted [16]uint32
	for i := range permuted {
		permuted[i] = m[msgPermutation[i]]
	}
	*m = permuted
}

// compress is the BLAKE3 compression function. It mixes a 64-byte
// message block (as sixteen little-endian words) into an 8-word
// chaining value under a 64-bit counter, a block length, and domain
// flags, and returns the full 16-word output state.
//
// The first eight output words are the new chaining value. The second
// eight words are only meaningful for root output expansion, where
// the full state is the keystream block.
func compress(cv *[8]uint32, block *[16]uint32, counter uint64, blockLen uint32, flags uint32) [16]uint32 {
	state := [16]uint32{
		cv[0], cv[1], cv[2], cv[3],
		cv[4], cv[5], cv[6], cv[7],
		iv[0], iv[1], iv[2], iv[3],
		uint32(counter), uint32(counter >> 32), blockLen, flags,
	}
	m := *block

	round(&state, &m) // round 1
	permute(&m)
	round(&state, &m) // round 2
	permute(&m)
	round(&state, &m) // round 3
	permute(&m)
	round(&state, &m) // round 4
	permute(&m)
	round(&state, &m) // round 5
	permute(&m)
	round(&state, &m) // round 6
	permute(&m)
	round(&state, &m) // round 7

	// Feed-forward: fold the halves together. The low half becomes
	// the chaining value; the high half stays recoverable for XOF
	// use by XORing with the input chaining value.
	for i := 0; i < 8; i++ {
		state[i] ^= state[i+8]
		state[i+8] ^= cv[i]
	}
	return state
}

// first8 extracts the chaining value from a full compression output.
func first8(state [16]uint32) [8]uint32 {
	var cv [8]uint32
	copy(cv[:], state[:8])
	return cv
}

// loadBlockWords decodes a 64-byte block into sixteen little-endian
// words. The input must be at least BlockLen bytes; callers pad
// shorter final blocks with zeros before decoding.
func loadBlockWords(words *[16]uint32, block []byte) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(block[4*i:])
	}
}

// loadKeyWords decodes a 32-byte key into eight little-endian words.
func loadKeyWords(key *[KeyLen]byte) [8]uint32 {
	var words [8]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	return words
}
