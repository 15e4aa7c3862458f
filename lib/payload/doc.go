// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package payload transports opaque binary payloads (octomap voxel
// data) through text documents.
//
// A payload is carried either raw or inside an [Envelope]: the bytes
// compressed with LZ4 or zstd, the uncompressed size, and a BLAKE3
// digest of the uncompressed bytes. [Seal] builds an envelope and
// [Envelope.Open] reverses it, verifying size and digest so a payload
// that was truncated or edited by hand is rejected rather than handed
// to the octree parser.
//
// The text encoding of the bytes themselves (YAML !!binary, base64) is
// the caller's concern; this package works on byte slices only.
package payload
