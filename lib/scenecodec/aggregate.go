// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

// The aggregate codecs treat every field as optional. On encode a
// sub-entity equal to its zero value is omitted, so an explicitly
// empty sub-entity and an absent one decode to the same record.

var decodeAttachedCollisionObjects = sequenceOf(decodeAttachedCollisionObject)

func decodeRobotState(node *yaml.Node) (worldmodel.RobotState, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.RobotState{}, err
	}
	var result worldmodel.RobotState
	if result.JointState, err = optional(mapping, "joint_state", decodeJointState); err != nil {
		return worldmodel.RobotState{}, err
	}
	if result.MultiDOFJointState, err = optional(mapping, "multi_dof_joint_state", decodeMultiDOFJointState); err != nil {
		return worldmodel.RobotState{}, err
	}
	if result.AttachedCollisionObjects, err = optional(mapping, "attached_collision_objects", decodeAttachedCollisionObjects); err != nil {
		return worldmodel.RobotState{}, err
	}
	if result.IsDiff, err = optional(mapping, "is_diff", decodeBool); err != nil {
		return worldmodel.RobotState{}, err
	}
	return result, nil
}

func (e *encoder) robotState(s worldmodel.RobotState) *yaml.Node {
	node := newMapping()
	if !s.JointState.IsZero() {
		setField(node, "joint_state", e.jointState(s.JointState))
	}
	if !s.MultiDOFJointState.IsZero() {
		setField(node, "multi_dof_joint_state", e.multiDOFJointState(s.MultiDOFJointState))
	}
	setSequence(node, "attached_collision_objects", s.AttachedCollisionObjects, func(values []worldmodel.AttachedCollisionObject) *yaml.Node {
		return sequenceNode(values, e.attachedCollisionObject)
	})
	setField(node, "is_diff", boolNode(s.IsDiff))
	return node
}

var (
	decodeTransformsStamped = sequenceOf(decodeTransformStamped)
	decodeLinkPaddings      = sequenceOf(decodeLinkPadding)
	decodeLinkScales        = sequenceOf(decodeLinkScale)
	decodeObjectColors      = sequenceOf(decodeObjectColor)
)

func decodePlanningScene(node *yaml.Node) (worldmodel.PlanningScene, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.PlanningScene{}, err
	}
	var result worldmodel.PlanningScene
	if result.Name, err = optional(mapping, "name", decodeString); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.RobotState, err = optional(mapping, "robot_state", decodeRobotState); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.RobotModelName, err = optional(mapping, "robot_model_name", decodeString); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.FixedFrameTransforms, err = optional(mapping, "fixed_frame_transforms", decodeTransformsStamped); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.AllowedCollisionMatrix, err = optional(mapping, "allowed_collision_matrix", decodeAllowedCollisionMatrix); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.LinkPadding, err = optional(mapping, "link_padding", decodeLinkPaddings); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.LinkScale, err = optional(mapping, "link_scale", decodeLinkScales); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.ObjectColors, err = optional(mapping, "object_colors", decodeObjectColors); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.World, err = optional(mapping, "world", decodePlanningSceneWorld); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	if result.IsDiff, err = optional(mapping, "is_diff", decodeBool); err != nil {
		return worldmodel.PlanningScene{}, err
	}
	return result, nil
}

func (e *encoder) planningScene(scene worldmodel.PlanningScene) *yaml.Node {
	node := newMapping()
	if scene.Name != "" {
		setField(node, "name", stringNode(scene.Name))
	}
	if !scene.RobotState.IsZero() {
		setField(node, "robot_state", e.robotState(scene.RobotState))
	}
	if scene.RobotModelName != "" {
		setField(node, "robot_model_name", stringNode(scene.RobotModelName))
	}
	setSequence(node, "fixed_frame_transforms", scene.FixedFrameTransforms, func(values []worldmodel.TransformStamped) *yaml.Node {
		return sequenceNode(values, e.transformStamped)
	})
	if !scene.AllowedCollisionMatrix.IsZero() {
		setField(node, "allowed_collision_matrix", e.allowedCollisionMatrix(scene.AllowedCollisionMatrix))
	}
	setSequence(node, "link_padding", scene.LinkPadding, func(values []worldmodel.LinkPadding) *yaml.Node {
		return sequenceNode(values, e.linkPadding)
	})
	setSequence(node, "link_scale", scene.LinkScale, func(values []worldmodel.LinkScale) *yaml.Node {
		return sequenceNode(values, e.linkScale)
	})
	setSequence(node, "object_colors", scene.ObjectColors, func(values []worldmodel.ObjectColor) *yaml.Node {
		return sequenceNode(values, e.objectColor)
	})
	if !scene.World.IsZero() {
		setField(node, "world", e.planningSceneWorld(scene.World))
	}
	setField(node, "is_diff", boolNode(scene.IsDiff))
	return node
}
