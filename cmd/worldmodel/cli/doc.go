// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the worldmodel tool:
// a [Command] tree with pflag parsing and typo suggestions, the
// terminal-aware structured logger, and YAML output highlighting.
package cli
