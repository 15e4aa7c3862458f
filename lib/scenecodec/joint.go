// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

// parallel decodes mapping[key] as a sequence that is either empty or
// exactly names long. A length mismatch is an ArityMismatch at key.
func parallel[T any](mapping *yaml.Node, key string, names int, decode func(*yaml.Node) ([]T, error)) ([]T, error) {
	values, err := optional(mapping, key, decode)
	if err != nil {
		return nil, err
	}
	if len(values) != 0 && len(values) != names {
		return nil, within(failAt(lookup(mapping, key), ArityMismatch,
			"%d entries for %d names", len(values), names), key)
	}
	return values, nil
}

// setSequence writes key only when values is non-empty.
func setSequence[T any](mapping *yaml.Node, key string, values []T, encode func([]T) *yaml.Node) {
	if len(values) > 0 {
		setField(mapping, key, encode(values))
	}
}

func decodeJointState(node *yaml.Node) (worldmodel.JointState, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.JointState{}, err
	}
	var result worldmodel.JointState
	if result.Header, err = optional(mapping, "header", decodeHeader); err != nil {
		return worldmodel.JointState{}, err
	}
	if result.Name, err = optional(mapping, "name", decodeStrings); err != nil {
		return worldmodel.JointState{}, err
	}
	names := len(result.Name)
	if result.Position, err = parallel(mapping, "position", names, decodeFloats); err != nil {
		return worldmodel.JointState{}, err
	}
	if result.Velocity, err = parallel(mapping, "velocity", names, decodeFloats); err != nil {
		return worldmodel.JointState{}, err
	}
	if result.Effort, err = parallel(mapping, "effort", names, decodeFloats); err != nil {
		return worldmodel.JointState{}, err
	}
	return result, nil
}

func (e *encoder) jointState(s worldmodel.JointState) *yaml.Node {
	node := newMapping()
	e.setHeader(node, s.Header)
	setField(node, "name", stringsNode(s.Name))
	setSequence(node, "position", s.Position, floatsNode)
	setSequence(node, "velocity", s.Velocity, floatsNode)
	setSequence(node, "effort", s.Effort, floatsNode)
	return node
}

var (
	decodeTransforms = sequenceOf(decodeTransform)
	decodeTwists     = sequenceOf(decodeTwist)
	decodeWrenches   = sequenceOf(decodeWrench)
)

func decodeMultiDOFJointState(node *yaml.Node) (worldmodel.MultiDOFJointState, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.MultiDOFJointState{}, err
	}
	var result worldmodel.MultiDOFJointState
	if result.Header, err = optional(mapping, "header", decodeHeader); err != nil {
		return worldmodel.MultiDOFJointState{}, err
	}
	if result.JointNames, err = optional(mapping, "joint_names", decodeStrings); err != nil {
		return worldmodel.MultiDOFJointState{}, err
	}
	names := len(result.JointNames)
	if result.Transforms, err = parallel(mapping, "transforms", names, decodeTransforms); err != nil {
		return worldmodel.MultiDOFJointState{}, err
	}
	if result.Twist, err = parallel(mapping, "twist", names, decodeTwists); err != nil {
		return worldmodel.MultiDOFJointState{}, err
	}
	if result.Wrench, err = parallel(mapping, "wrench", names, decodeWrenches); err != nil {
		return worldmodel.MultiDOFJointState{}, err
	}
	return result, nil
}

func (e *encoder) multiDOFJointState(s worldmodel.MultiDOFJointState) *yaml.Node {
	node := newMapping()
	e.setHeader(node, s.Header)
	setField(node, "joint_names", stringsNode(s.JointNames))
	setSequence(node, "transforms", s.Transforms, func(values []worldmodel.Transform) *yaml.Node {
		return sequenceNode(values, e.transform)
	})
	setSequence(node, "twist", s.Twist, func(values []worldmodel.Twist) *yaml.Node {
		return sequenceNode(values, e.twist)
	})
	setSequence(node, "wrench", s.Wrench, func(values []worldmodel.Wrench) *yaml.Node {
		return sequenceNode(values, e.wrench)
	})
	return node
}
