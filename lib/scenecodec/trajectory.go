// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

// decodeTrajectoryPoint decodes a waypoint without arity checks; the
// point alone does not know how many joints it describes.
func decodeTrajectoryPoint(node *yaml.Node) (worldmodel.JointTrajectoryPoint, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.JointTrajectoryPoint{}, err
	}
	var result worldmodel.JointTrajectoryPoint
	if result.Positions, err = optional(mapping, "positions", decodeFloats); err != nil {
		return worldmodel.JointTrajectoryPoint{}, err
	}
	if result.Velocities, err = optional(mapping, "velocities", decodeFloats); err != nil {
		return worldmodel.JointTrajectoryPoint{}, err
	}
	if result.Accelerations, err = optional(mapping, "accelerations", decodeFloats); err != nil {
		return worldmodel.JointTrajectoryPoint{}, err
	}
	if result.Effort, err = optional(mapping, "effort", decodeFloats); err != nil {
		return worldmodel.JointTrajectoryPoint{}, err
	}
	if result.TimeFromStart, err = optional(mapping, "time_from_start", decodeDuration); err != nil {
		return worldmodel.JointTrajectoryPoint{}, err
	}
	return result, nil
}

// decodeBoundPoint decodes a waypoint of a trajectory with the given
// number of joints.
func decodeBoundPoint(names int) func(*yaml.Node) (worldmodel.JointTrajectoryPoint, error) {
	return func(node *yaml.Node) (worldmodel.JointTrajectoryPoint, error) {
		point, err := decodeTrajectoryPoint(node)
		if err != nil {
			return worldmodel.JointTrajectoryPoint{}, err
		}
		mapping := resolve(node)
		arrays := []struct {
			key    string
			length int
		}{
			{"positions", len(point.Positions)},
			{"velocities", len(point.Velocities)},
			{"accelerations", len(point.Accelerations)},
			{"effort", len(point.Effort)},
		}
		for _, array := range arrays {
			if array.length != 0 && array.length != names {
				return worldmodel.JointTrajectoryPoint{}, within(failAt(lookup(mapping, array.key), ArityMismatch,
					"%d entries for %d joint names", array.length, names), array.key)
			}
		}
		return point, nil
	}
}

func (e *encoder) trajectoryPoint(p worldmodel.JointTrajectoryPoint) *yaml.Node {
	node := newMapping()
	setSequence(node, "positions", p.Positions, floatsNode)
	setSequence(node, "velocities", p.Velocities, floatsNode)
	setSequence(node, "accelerations", p.Accelerations, floatsNode)
	setSequence(node, "effort", p.Effort, floatsNode)
	setField(node, "time_from_start", e.duration(p.TimeFromStart))
	return node
}

func decodeJointTrajectory(node *yaml.Node) (worldmodel.JointTrajectory, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.JointTrajectory{}, err
	}
	var result worldmodel.JointTrajectory
	if result.Header, err = optional(mapping, "header", decodeHeader); err != nil {
		return worldmodel.JointTrajectory{}, err
	}
	if result.JointNames, err = optional(mapping, "joint_names", decodeStrings); err != nil {
		return worldmodel.JointTrajectory{}, err
	}
	decodePoints := sequenceOf(decodeBoundPoint(len(result.JointNames)))
	if result.Points, err = optional(mapping, "points", decodePoints); err != nil {
		return worldmodel.JointTrajectory{}, err
	}
	return result, nil
}

func (e *encoder) jointTrajectory(t worldmodel.JointTrajectory) *yaml.Node {
	node := newMapping()
	e.setHeader(node, t.Header)
	setField(node, "joint_names", stringsNode(t.JointNames))
	setSequence(node, "points", t.Points, func(values []worldmodel.JointTrajectoryPoint) *yaml.Node {
		return sequenceNode(values, e.trajectoryPoint)
	})
	return node
}
