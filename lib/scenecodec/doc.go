// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scenecodec converts world-model records (lib/worldmodel) to
// and from YAML document trees (*yaml.Node from gopkg.in/yaml.v3).
//
// Every entity has a typed codec pair: a decode function that reads a
// node and returns the record, and an encode method that builds a
// fresh node tree. Composite codecs are written against the pairs of
// their children, so a PlanningScene decode walks the document top
// down and delegates each child node to the codec for the child's
// type. The pairs are also collected in a registry keyed by [Kind] and
// by Go type, which backs the dynamic entry points [Encode], [Decode],
// [DecodeKind], and the generic [EncodeValue] and [DecodeValue].
//
// # Wire forms
//
// Fixed-arity tuples (Vector3, Point, Quaternion, ColorRGBA, Plane)
// encode as flow sequences ([x, y, z]) and decode from either a
// sequence of exactly the right length or a mapping of named fields.
// Floats are written in the shortest form that parses back to the
// same float64, so numeric round trips are exact.
//
// Octomap payloads encode as !!binary base64 scalars. Decoding also
// accepts a plain base64 string, the legacy sequence of signed bytes,
// and the compressed envelope written when [Encoder.PayloadCompression]
// is set (see lib/payload).
//
// Aggregates (PlanningScene, RobotState) omit sub-entities equal to
// their zero value and always write is_diff. An explicitly empty
// sub-entity and an absent one therefore decode identically.
//
// # Errors
//
// Decoding is all-or-nothing. A failure is a [*FormatError] carrying
// an [ErrorKind], the structural path to the offending node, and its
// source line and column. errors.Is matches by kind:
//
//	if errors.Is(err, scenecodec.ErrArityMismatch) { ... }
//
// Encoding a valid record never fails; the only encode errors are
// [ErrUnregistered] for values outside the entity set.
//
// # Concurrency
//
// The package holds no mutable state after initialization. Decode
// never modifies its input node, and each encode allocates a new
// tree, so all functions are safe for concurrent use.
package scenecodec
