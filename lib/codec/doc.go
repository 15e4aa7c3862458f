// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration and the
// snapshot format for world-model records.
//
// YAML (lib/scenecodec) is the interchange format: human-edited,
// diffable, and what other planning tools read. A snapshot is the
// binary cache of an already-validated record: a decoded scene is
// written once with [Seal] and reloaded with [Open] without going
// through the YAML parser and the structural checks again. Octomap
// payloads in particular stay raw byte strings instead of base64.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items. The same record always produces the same bytes, so the
// snapshot digest identifies the record content.
//
//	data, err := codec.Seal("PlanningScene", scene)
//	err = codec.Open(data, "PlanningScene", &scene)
//
// # Struct Tag Rules
//
// World-model records carry `cbor` tags only. They are never
// marshaled to JSON or YAML by reflection; the YAML form is produced
// by lib/scenecodec.
package codec
