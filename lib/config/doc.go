// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the worldmodel
// tool.
//
// Configuration is loaded from a single file specified by either the
// WORLDMODEL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). [Resolve] picks between the two and falls back to
// [Default] when neither is given. There is no ~/.config discovery and
// no automatic file search.
//
// The file supports environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production defaults to JSON logs.
// Unknown keys are an error.
//
// The snapshot directory supports ${HOME} and ${VAR:-default}
// expansion through [Config.SnapshotDirectory]. No other environment
// variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Encoding, Logging, Snapshots
//   - [Default] -- returns a Config with development defaults
//   - [Load], [LoadFile], and [Resolve] -- the loading entry points
package config
