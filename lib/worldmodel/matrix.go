// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

import (
	"errors"
	"fmt"
)

// ErrNotSquare is wrapped by [AllowedCollisionMatrix.Validate] when the
// entry grid does not match the entry names on both axes.
var ErrNotSquare = errors.New("worldmodel: allowed collision matrix is not square")

// CollisionPermission is one cell of an [AllowedCollisionMatrix].
type CollisionPermission uint8

const (
	// Unspecified defers to the default entries or to the planner.
	Unspecified CollisionPermission = 0

	// Allowed means collisions between the pair are ignored.
	Allowed CollisionPermission = 1

	// Forbidden means collisions between the pair are reported.
	Forbidden CollisionPermission = 2
)

// String returns a readable name for the permission.
func (permission CollisionPermission) String() string {
	switch permission {
	case Unspecified:
		return "unspecified"
	case Allowed:
		return "allowed"
	case Forbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(permission))
	}
}

// AllowedCollisionEntry is one row of the matrix.
type AllowedCollisionEntry struct {
	Enabled []CollisionPermission `cbor:"enabled,omitempty"`
}

// AllowedCollisionMatrix records which pairs of links and objects may
// touch. EntryValues is a square grid indexed in EntryNames order.
// DefaultEntryValues runs parallel to DefaultEntryNames and applies to
// pairs whose cell is Unspecified.
type AllowedCollisionMatrix struct {
	EntryNames         []string                `cbor:"entry_names,omitempty"`
	EntryValues        []AllowedCollisionEntry `cbor:"entry_values,omitempty"`
	DefaultEntryNames  []string                `cbor:"default_entry_names,omitempty"`
	DefaultEntryValues []bool                  `cbor:"default_entry_values,omitempty"`
}

// IsZero reports whether the matrix has no entries of any kind.
func (matrix AllowedCollisionMatrix) IsZero() bool {
	return len(matrix.EntryNames) == 0 && len(matrix.EntryValues) == 0 &&
		len(matrix.DefaultEntryNames) == 0 && len(matrix.DefaultEntryValues) == 0
}

// Validate checks the square-grid and default-entry invariants.
func (matrix AllowedCollisionMatrix) Validate() error {
	size := len(matrix.EntryNames)
	if len(matrix.EntryValues) != size {
		return fmt.Errorf("%w: %d rows for %d entry names", ErrNotSquare, len(matrix.EntryValues), size)
	}
	for i, row := range matrix.EntryValues {
		if len(row.Enabled) != size {
			return fmt.Errorf("%w: row %d has %d cells for %d entry names", ErrNotSquare, i, len(row.Enabled), size)
		}
	}
	if len(matrix.DefaultEntryValues) != len(matrix.DefaultEntryNames) {
		return fmt.Errorf("%w: default_entry_values has %d entries, default_entry_names has %d",
			ErrParallelLength, len(matrix.DefaultEntryValues), len(matrix.DefaultEntryNames))
	}
	return nil
}

// Lookup returns the permission for a pair of names. A pair whose cell
// is Unspecified (or that is missing from the grid) falls back to the
// default entry of either name; Allowed wins if either default allows.
func (matrix AllowedCollisionMatrix) Lookup(first, second string) CollisionPermission {
	row, column := matrix.index(first), matrix.index(second)
	if row >= 0 && column >= 0 && row < len(matrix.EntryValues) && column < len(matrix.EntryValues[row].Enabled) {
		if cell := matrix.EntryValues[row].Enabled[column]; cell != Unspecified {
			return cell
		}
	}
	permission := Unspecified
	for i, name := range matrix.DefaultEntryNames {
		if i >= len(matrix.DefaultEntryValues) || (name != first && name != second) {
			continue
		}
		if matrix.DefaultEntryValues[i] {
			return Allowed
		}
		permission = Forbidden
	}
	return permission
}

func (matrix AllowedCollisionMatrix) index(name string) int {
	for i, entry := range matrix.EntryNames {
		if entry == name {
			return i
		}
	}
	return -1
}
