// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bureau-foundation/worldmodel/lib/contenthash"
)

// SnapshotVersion is the envelope format written by [Seal].
const SnapshotVersion = 1

var (
	// ErrVersion is returned by [Open] for envelopes written by an
	// unknown format version.
	ErrVersion = errors.New("codec: unsupported snapshot version")

	// ErrKindMismatch is returned by [Open] when the snapshot holds a
	// different kind of record than the caller asked for.
	ErrKindMismatch = errors.New("codec: snapshot kind mismatch")

	// ErrDigestMismatch is returned by [Open] when the body does not
	// hash to the recorded digest.
	ErrDigestMismatch = errors.New("codec: snapshot digest mismatch")
)

// Envelope is the on-disk form of a snapshot. Body is the record
// itself, CBOR-encoded; Digest is the snapshot-domain BLAKE3 hash of
// Body. Kind names the record type so a reader can pick the decode
// target before touching the body.
type Envelope struct {
	Version int    `cbor:"version"`
	Kind    string `cbor:"kind"`
	Digest  []byte `cbor:"digest"`
	Body    []byte `cbor:"body"`
}

// Seal encodes value as a snapshot of the given kind.
func Seal(kind string, value any) ([]byte, error) {
	body, err := Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding %s snapshot body: %w", kind, err)
	}
	digest := contenthash.Snapshot(body)
	data, err := Marshal(Envelope{
		Version: SnapshotVersion,
		Kind:    kind,
		Digest:  digest[:],
		Body:    body,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding %s snapshot envelope: %w", kind, err)
	}
	return data, nil
}

// ReadEnvelope decodes and verifies a snapshot envelope without
// decoding the body.
func ReadEnvelope(data []byte) (Envelope, error) {
	var envelope Envelope
	if err := Unmarshal(data, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("decoding snapshot envelope: %w", err)
	}
	if envelope.Version != SnapshotVersion {
		return Envelope{}, fmt.Errorf("%w: %d (this build reads %d)", ErrVersion, envelope.Version, SnapshotVersion)
	}
	digest := contenthash.Snapshot(envelope.Body)
	if !bytes.Equal(digest[:], envelope.Digest) {
		return Envelope{}, fmt.Errorf("%w: body hashes to %s", ErrDigestMismatch, digest)
	}
	return envelope, nil
}

// Open verifies a snapshot and decodes its body into target. An empty
// kind accepts a snapshot of any kind.
func Open(data []byte, kind string, target any) error {
	envelope, err := ReadEnvelope(data)
	if err != nil {
		return err
	}
	if kind != "" && envelope.Kind != kind {
		return fmt.Errorf("%w: snapshot holds %s, want %s", ErrKindMismatch, envelope.Kind, kind)
	}
	if err := Unmarshal(envelope.Body, target); err != nil {
		return fmt.Errorf("decoding %s snapshot body: %w", envelope.Kind, err)
	}
	return nil
}
