// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package document is the text boundary of the world-model codec: it
// turns YAML or JSONC text into the *yaml.Node trees lib/scenecodec
// works on, and formats encoded trees back to YAML text.
//
// JSONC (JSON with // and /* */ comments and trailing commas) is
// accepted because scene fixtures are often exported from JSON tools
// and then annotated by hand. The comments are stripped with
// github.com/tidwall/jsonc and the remaining JSON is parsed as YAML,
// of which it is a subset, so both syntaxes produce the same node
// tree with line and column positions intact.
//
// [Locate] descends into a larger document to find an embedded
// record, such as a planning scene stored under a "scene" key of a
// benchmark description.
package document
