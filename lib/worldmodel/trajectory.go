// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

import "fmt"

// JointTrajectoryPoint is one waypoint of a [JointTrajectory]. Each
// array is empty or parallel to the owning trajectory's JointNames.
type JointTrajectoryPoint struct {
	Positions     []float64 `cbor:"positions,omitempty"`
	Velocities    []float64 `cbor:"velocities,omitempty"`
	Accelerations []float64 `cbor:"accelerations,omitempty"`
	Effort        []float64 `cbor:"effort,omitempty"`
	TimeFromStart Duration  `cbor:"time_from_start"`
}

// JointTrajectory is a timed sequence of joint-space waypoints. The
// attached-object detach posture uses it to describe a gripper
// opening motion.
type JointTrajectory struct {
	Header     Header                 `cbor:"header"`
	JointNames []string               `cbor:"joint_names,omitempty"`
	Points     []JointTrajectoryPoint `cbor:"points,omitempty"`
}

// IsZero reports whether the trajectory carries no data.
func (t JointTrajectory) IsZero() bool {
	return t.Header.IsZero() && len(t.JointNames) == 0 && len(t.Points) == 0
}

// Validate checks every point against the joint names.
func (t JointTrajectory) Validate() error {
	for i, point := range t.Points {
		err := checkParallel(len(t.JointNames),
			parallelArray{"positions", len(point.Positions)},
			parallelArray{"velocities", len(point.Velocities)},
			parallelArray{"accelerations", len(point.Accelerations)},
			parallelArray{"effort", len(point.Effort)},
		)
		if err != nil {
			return fmt.Errorf("points[%d]: %w", i, err)
		}
	}
	return nil
}
