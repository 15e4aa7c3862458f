// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for world-model
// packages.
//
// [ParseNode] turns an inline YAML fixture into the root node of its
// document, so codec tests can be written as literal text instead of
// hand-built node trees. Fixtures are dedented first: tests indent
// their raw string literals to match the surrounding code, and YAML
// would otherwise reject or misread the leading whitespace.
//
// [RenderNode] is the inverse, used to compare encoder output against
// expected text and to print readable failure messages.
//
// [WriteFile] creates a file in the test's temporary directory for
// packages that load documents or configuration from disk.
//
// All helpers call t.Fatalf on failure rather than returning errors.
//
// This package depends only on gopkg.in/yaml.v3.
package testutil
