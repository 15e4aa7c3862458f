// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"fmt"

	"github.com/bureau-foundation/worldmodel/lib/contenthash"
)

// Envelope is a compressed payload with the metadata needed to restore
// and verify it.
type Envelope struct {
	// Compression is the algorithm applied to Bytes. Never None for
	// envelopes built by Seal.
	Compression Compression

	// Size is the uncompressed length.
	Size int

	// Digest is the payload-domain BLAKE3 digest of the uncompressed
	// bytes.
	Digest contenthash.Hash

	// Bytes is the compressed payload.
	Bytes []byte
}

// Seal compresses data into an envelope. It returns
// [ErrIncompressible] when compression does not shrink the payload and
// an error for [None], which needs no envelope.
func Seal(data []byte, compression Compression) (Envelope, error) {
	if compression == None {
		return Envelope{}, fmt.Errorf("sealing payload: compression %s needs no envelope", compression)
	}
	compressed, err := Compress(data, compression)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Compression: compression,
		Size:        len(data),
		Digest:      contenthash.Payload(data),
		Bytes:       compressed,
	}, nil
}

// Open decompresses the envelope and verifies the size and digest.
func (envelope Envelope) Open() ([]byte, error) {
	data, err := Decompress(envelope.Bytes, envelope.Compression, envelope.Size)
	if err != nil {
		return nil, err
	}
	if digest := contenthash.Payload(data); digest != envelope.Digest {
		return nil, fmt.Errorf("payload digest mismatch: got %s, envelope records %s", digest, envelope.Digest)
	}
	return data, nil
}
