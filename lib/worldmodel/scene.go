// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

// RobotState is the full state of a robot: joint positions, the state
// of multi-DOF joints, and the objects the robot is holding.
//
// IsDiff marks the record as a sparse overlay on a previously known
// state rather than a complete state. Merging an overlay is the
// consumer's job; this package and lib/scenecodec only carry the flag.
type RobotState struct {
	JointState               JointState                `cbor:"joint_state"`
	MultiDOFJointState       MultiDOFJointState        `cbor:"multi_dof_joint_state"`
	AttachedCollisionObjects []AttachedCollisionObject `cbor:"attached_collision_objects,omitempty"`
	IsDiff                   bool                      `cbor:"is_diff"`
}

// IsZero reports whether the state carries no data and is not a diff.
func (s RobotState) IsZero() bool {
	return s.JointState.IsZero() && s.MultiDOFJointState.IsZero() &&
		len(s.AttachedCollisionObjects) == 0 && !s.IsDiff
}

// PlanningScene is everything a planner needs to know about the robot
// and its environment. Like [RobotState], IsDiff marks a sparse overlay.
type PlanningScene struct {
	Name                   string                 `cbor:"name,omitempty"`
	RobotState             RobotState             `cbor:"robot_state"`
	RobotModelName         string                 `cbor:"robot_model_name,omitempty"`
	FixedFrameTransforms   []TransformStamped     `cbor:"fixed_frame_transforms,omitempty"`
	AllowedCollisionMatrix AllowedCollisionMatrix `cbor:"allowed_collision_matrix"`
	LinkPadding            []LinkPadding          `cbor:"link_padding,omitempty"`
	LinkScale              []LinkScale            `cbor:"link_scale,omitempty"`
	ObjectColors           []ObjectColor          `cbor:"object_colors,omitempty"`
	World                  PlanningSceneWorld     `cbor:"world"`
	IsDiff                 bool                   `cbor:"is_diff"`
}

// Object returns the world collision object with the given ID. When
// the world lists the ID more than once the last one wins, matching
// the order in which a planning scene applies them.
func (scene PlanningScene) Object(id string) (CollisionObject, bool) {
	objects := scene.World.CollisionObjects
	for i := len(objects) - 1; i >= 0; i-- {
		if objects[i].ID == id {
			return objects[i], true
		}
	}
	return CollisionObject{}, false
}
