// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contenthash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
type domainKey [32]byte

// Domain keys are the ASCII domain name zero-padded to 32 bytes.
// Changing one invalidates every digest already written in that domain.
var (
	payloadDomainKey = domainKey{
		'w', 'o', 'r', 'l', 'd', 'm', 'o', 'd', 'e', 'l', '.', 'p', 'a', 'y', 'l', 'o',
		'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	snapshotDomainKey = domainKey{
		'w', 'o', 'r', 'l', 'd', 'm', 'o', 'd', 'e', 'l', '.', 's', 'n', 'a', 'p', 's',
		'h', 'o', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Payload digests an opaque binary payload (octomap data) in its
// uncompressed form, so the digest survives a change of compression.
func Payload(data []byte) Hash {
	return keyedHash(payloadDomainKey, data)
}

// Snapshot digests the encoded body of a record snapshot.
func Snapshot(body []byte) Hash {
	return keyedHash(snapshotDomainKey, body)
}

func keyedHash(key domainKey, data []byte) Hash {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("contenthash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var result Hash
	copy(result[:], hasher.Sum(nil))
	return result
}

// String returns the lowercase hex form of the hash.
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// Parse decodes the hex form produced by [Hash.String].
func Parse(text string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return hash, fmt.Errorf("parsing hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("parsing hash: %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}
