// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"encoding/hex"
	"fmt"
)

// Digest is a 32-byte BLAKE3 digest, the default output of every
// hashing mode in this package.
type Digest [DigestLen]byte

// String returns the canonical hex encoding of the digest. This is
// the format used in CLI output and logs.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest parses a 64-character hex string into a Digest. Returns
// an error if the string is not a valid hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != DigestLen {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), DigestLen)
	}
	copy(digest[:], decoded)
	return digest, nil
}
