// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package worldmodel defines the robot world-model records exchanged
// with motion planners: geometry primitives, joint states, trajectories,
// collision geometry, occupancy maps, and the two aggregate records
// [PlanningScene] and [RobotState].
//
// The record set is closed. Field names and layouts mirror the ROS
// message definitions the records were modeled on (std_msgs,
// geometry_msgs, sensor_msgs, trajectory_msgs, shape_msgs,
// octomap_msgs, moveit_msgs) so documents produced by other tools load
// without translation.
//
// Records are plain values. Slices are nil when empty: decoders in
// lib/scenecodec never produce zero-length non-nil slices, so
// reflect.DeepEqual is a faithful equality for decoded records.
//
// Several records carry parallel arrays (joint names and their
// positions, shapes and their poses, collision matrix rows and entry
// names). [JointState.Validate] and its siblings report violations of
// those invariants; encoders treat a violation as a caller bug, decoders
// reject it with a structured error.
//
// The struct tags are `cbor` only. The YAML representation is produced
// by lib/scenecodec, never by reflection, because several records need
// shape-dependent encodings (flow tuples, tri-state cells, binary
// payloads) that struct tags cannot express.
//
// This package depends on no other Bureau packages.
package worldmodel
