// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"errors"
	"fmt"
)

// ErrInvalidKeyLength is returned by [SumKeyed] when the supplied key
// is not exactly [KeyLen] bytes. It is the only recoverable error in
// the package; every other operation is total over its input domain.
var ErrInvalidKeyLength = errors.New("blake3: key must be exactly 32 bytes")

// Sum256 returns the 32-byte BLAKE3 hash of data.
func Sum256(data []byte) Digest {
	node := rootNode(data, iv, 0)
	var digest Digest
	node.expand(digest[:])
	return digest
}

// SumXOF returns length bytes of BLAKE3 extended output for data.
// A length of 0 returns an empty (non-nil) slice. The first 32 bytes
// always equal [Sum256] of the same data, and the output for a
// shorter length is a prefix of the output for any longer one.
func SumXOF(data []byte, length int) []byte {
	out := make([]byte, length)
	node := rootNode(data, iv, 0)
	node.expand(out)
	return out
}

// SumKeyed returns the 32-byte keyed BLAKE3 hash (MAC) of data under
// key. The key must be exactly [KeyLen] bytes; any other length
// returns [ErrInvalidKeyLength]. Key content is not validated — any
// 32 bytes form a valid key.
func SumKeyed(key []byte, data []byte) (Digest, error) {
	var digest Digest
	if len(key) != KeyLen {
		return digest, fmt.Errorf("%w (got %d bytes)", ErrInvalidKeyLength, len(key))
	}
	var keyArray [KeyLen]byte
	copy(keyArray[:], key)
	node := rootNode(data, loadKeyWords(&keyArray), flagKeyedHash)
	node.expand(digest[:])
	return digest, nil
}

// DeriveKey derives length bytes of key material for the given
// context string. The derivation is two-phase: the context string is
// hashed under the derive-key-context domain to produce a context
// key, and the material is then hashed under the derive-key-material
// domain with the context key as the chaining key. The context string
// itself never keys the material hash directly, so distinct contexts
// yield independent derivation domains even for identical material.
//
// Context strings should be hardcoded, globally unique constants;
// material may be key bytes of any length.
func DeriveKey(context string, material []byte, length int) []byte {
	contextNode := rootNode([]byte(context), iv, flagDeriveKeyContext)
	var contextKey [KeyLen]byte
	contextNode.expand(contextKey[:])

	out := make([]byte, length)
	node := rootNode(material, loadKeyWords(&contextKey), flagDeriveKeyMaterial)
	node.expand(out)
	return out
}
