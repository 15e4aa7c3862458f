// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Worldmodel is the command-line front end for world-model documents.
//
// Subcommands:
//
//   - check -- decode files as a record kind and report errors with
//     their record path, line, and column
//   - fmt -- print or rewrite the canonical encoding of a document
//   - snapshot -- write a digest-verified CBOR snapshot of a record
//   - restore -- verify a snapshot and print it as YAML, or dump its
//     CBOR diagnostic notation
//   - kinds -- list the registered record kinds
//
// Configuration comes from --config or WORLDMODEL_CONFIG (see
// lib/config). Logs go to stderr as text on a terminal and JSON
// otherwise.
package main
