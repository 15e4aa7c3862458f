// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package contenthash computes domain-separated BLAKE3 digests for
// world-model content: raw occupancy-map payloads and encoded record
// snapshots.
//
// Each domain hashes with its own 32-byte BLAKE3 key, so identical
// bytes digest differently in different roles and a payload digest can
// never be replayed as a snapshot digest.
//
// This package depends on no other Bureau packages.
package contenthash
