// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

import (
	"errors"
	"fmt"
)

// ErrParallelLength is wrapped by Validate methods when an array that
// must run parallel to a name array has a different length.
var ErrParallelLength = errors.New("worldmodel: parallel array length mismatch")

// JointState is the state of a set of single-degree-of-freedom joints.
// Position, Velocity, and Effort are each either empty or exactly as
// long as Name; entry i of each describes joint Name[i].
type JointState struct {
	Header   Header    `cbor:"header"`
	Name     []string  `cbor:"name,omitempty"`
	Position []float64 `cbor:"position,omitempty"`
	Velocity []float64 `cbor:"velocity,omitempty"`
	Effort   []float64 `cbor:"effort,omitempty"`
}

// IsZero reports whether the joint state carries no data.
func (s JointState) IsZero() bool {
	return s.Header.IsZero() && len(s.Name) == 0 && len(s.Position) == 0 &&
		len(s.Velocity) == 0 && len(s.Effort) == 0
}

// Validate checks the parallel-array invariant.
func (s JointState) Validate() error {
	return checkParallel(len(s.Name),
		parallelArray{"position", len(s.Position)},
		parallelArray{"velocity", len(s.Velocity)},
		parallelArray{"effort", len(s.Effort)},
	)
}

// PositionOf returns the position of the named joint. The second
// result is false when the joint is unknown or positions are absent.
func (s JointState) PositionOf(joint string) (float64, bool) {
	if len(s.Position) != len(s.Name) {
		return 0, false
	}
	for i, name := range s.Name {
		if name == joint {
			return s.Position[i], true
		}
	}
	return 0, false
}

// MultiDOFJointState is the state of a set of multi-degree-of-freedom
// joints (planar, floating). Transforms, Twist, and Wrench are each
// empty or parallel to JointNames.
type MultiDOFJointState struct {
	Header     Header      `cbor:"header"`
	JointNames []string    `cbor:"joint_names,omitempty"`
	Transforms []Transform `cbor:"transforms,omitempty"`
	Twist      []Twist     `cbor:"twist,omitempty"`
	Wrench     []Wrench    `cbor:"wrench,omitempty"`
}

// IsZero reports whether the state carries no data.
func (s MultiDOFJointState) IsZero() bool {
	return s.Header.IsZero() && len(s.JointNames) == 0 && len(s.Transforms) == 0 &&
		len(s.Twist) == 0 && len(s.Wrench) == 0
}

// Validate checks the parallel-array invariant.
func (s MultiDOFJointState) Validate() error {
	return checkParallel(len(s.JointNames),
		parallelArray{"transforms", len(s.Transforms)},
		parallelArray{"twist", len(s.Twist)},
		parallelArray{"wrench", len(s.Wrench)},
	)
}

type parallelArray struct {
	name   string
	length int
}

// checkParallel requires every array to be empty or exactly names long.
func checkParallel(names int, arrays ...parallelArray) error {
	for _, array := range arrays {
		if array.length != 0 && array.length != names {
			return fmt.Errorf("%w: %s has %d entries, names has %d",
				ErrParallelLength, array.name, array.length, names)
		}
	}
	return nil
}
