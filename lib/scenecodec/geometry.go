// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

func decodeTime(node *yaml.Node) (worldmodel.Time, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Time{}, err
	}
	var result worldmodel.Time
	if result.Sec, err = optional(mapping, "secs", decodeUint32); err != nil {
		return worldmodel.Time{}, err
	}
	if result.Nsec, err = optional(mapping, "nsecs", decodeUint32); err != nil {
		return worldmodel.Time{}, err
	}
	return result, nil
}

func (*encoder) time(t worldmodel.Time) *yaml.Node {
	node := newMapping()
	setField(node, "secs", uintNode(uint64(t.Sec)))
	setField(node, "nsecs", uintNode(uint64(t.Nsec)))
	return node
}

// decodeDuration accepts the secs/nsecs mapping or a plain number of
// seconds, which is how hand-written documents usually spell it.
func decodeDuration(node *yaml.Node) (worldmodel.Duration, error) {
	if resolved := resolve(node); resolved != nil && resolved.Kind == yaml.ScalarNode {
		seconds, err := decodeFloat(resolved)
		if err != nil {
			return worldmodel.Duration{}, err
		}
		duration, err := worldmodel.DurationFromSeconds(seconds)
		if err != nil {
			return worldmodel.Duration{}, failAt(resolved, TypeMismatch, "want 32-bit seconds, got %q", resolved.Value)
		}
		return duration, nil
	}
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Duration{}, err
	}
	var result worldmodel.Duration
	if result.Sec, err = optional(mapping, "secs", decodeInt32); err != nil {
		return worldmodel.Duration{}, err
	}
	if result.Nsec, err = optional(mapping, "nsecs", decodeInt32); err != nil {
		return worldmodel.Duration{}, err
	}
	return result, nil
}

func (*encoder) duration(d worldmodel.Duration) *yaml.Node {
	node := newMapping()
	setField(node, "secs", intNode(int64(d.Sec)))
	setField(node, "nsecs", intNode(int64(d.Nsec)))
	return node
}

// decodeHeader treats every field as optional: a header is metadata,
// and a partially written one still places the data in a frame.
func decodeHeader(node *yaml.Node) (worldmodel.Header, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Header{}, err
	}
	var result worldmodel.Header
	if result.Seq, err = optional(mapping, "seq", decodeUint32); err != nil {
		return worldmodel.Header{}, err
	}
	if result.Stamp, err = optional(mapping, "stamp", decodeTime); err != nil {
		return worldmodel.Header{}, err
	}
	if result.FrameID, err = optional(mapping, "frame_id", decodeString); err != nil {
		return worldmodel.Header{}, err
	}
	return result, nil
}

func (e *encoder) header(h worldmodel.Header) *yaml.Node {
	node := newMapping()
	setField(node, "seq", uintNode(uint64(h.Seq)))
	setField(node, "stamp", e.time(h.Stamp))
	setField(node, "frame_id", stringNode(h.FrameID))
	return node
}

// setHeader writes a header field unless the header is zero. An
// absent header decodes as zero, so the omission is lossless.
func (e *encoder) setHeader(mapping *yaml.Node, h worldmodel.Header) {
	if !h.IsZero() {
		setField(mapping, "header", e.header(h))
	}
}

func decodePose(node *yaml.Node) (worldmodel.Pose, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Pose{}, err
	}
	var result worldmodel.Pose
	if result.Position, err = required(mapping, "position", decodePoint); err != nil {
		return worldmodel.Pose{}, err
	}
	if result.Orientation, err = required(mapping, "orientation", decodeQuaternion); err != nil {
		return worldmodel.Pose{}, err
	}
	return result, nil
}

func (e *encoder) pose(p worldmodel.Pose) *yaml.Node {
	node := newMapping()
	setField(node, "position", e.point(p.Position))
	setField(node, "orientation", e.quaternion(p.Orientation))
	return node
}

func decodeTransform(node *yaml.Node) (worldmodel.Transform, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Transform{}, err
	}
	var result worldmodel.Transform
	if result.Translation, err = required(mapping, "translation", decodeVector3); err != nil {
		return worldmodel.Transform{}, err
	}
	if result.Rotation, err = required(mapping, "rotation", decodeQuaternion); err != nil {
		return worldmodel.Transform{}, err
	}
	return result, nil
}

func (e *encoder) transform(t worldmodel.Transform) *yaml.Node {
	node := newMapping()
	setField(node, "translation", e.vector3(t.Translation))
	setField(node, "rotation", e.quaternion(t.Rotation))
	return node
}

func decodeTransformStamped(node *yaml.Node) (worldmodel.TransformStamped, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.TransformStamped{}, err
	}
	var result worldmodel.TransformStamped
	if result.Header, err = optional(mapping, "header", decodeHeader); err != nil {
		return worldmodel.TransformStamped{}, err
	}
	if result.ChildFrameID, err = optional(mapping, "child_frame_id", decodeString); err != nil {
		return worldmodel.TransformStamped{}, err
	}
	if result.Transform, err = required(mapping, "transform", decodeTransform); err != nil {
		return worldmodel.TransformStamped{}, err
	}
	return result, nil
}

func (e *encoder) transformStamped(t worldmodel.TransformStamped) *yaml.Node {
	node := newMapping()
	e.setHeader(node, t.Header)
	setField(node, "child_frame_id", stringNode(t.ChildFrameID))
	setField(node, "transform", e.transform(t.Transform))
	return node
}

func decodeTwist(node *yaml.Node) (worldmodel.Twist, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Twist{}, err
	}
	var result worldmodel.Twist
	if result.Linear, err = required(mapping, "linear", decodeVector3); err != nil {
		return worldmodel.Twist{}, err
	}
	if result.Angular, err = required(mapping, "angular", decodeVector3); err != nil {
		return worldmodel.Twist{}, err
	}
	return result, nil
}

func (e *encoder) twist(t worldmodel.Twist) *yaml.Node {
	node := newMapping()
	setField(node, "linear", e.vector3(t.Linear))
	setField(node, "angular", e.vector3(t.Angular))
	return node
}

func decodeWrench(node *yaml.Node) (worldmodel.Wrench, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Wrench{}, err
	}
	var result worldmodel.Wrench
	if result.Force, err = required(mapping, "force", decodeVector3); err != nil {
		return worldmodel.Wrench{}, err
	}
	if result.Torque, err = required(mapping, "torque", decodeVector3); err != nil {
		return worldmodel.Wrench{}, err
	}
	return result, nil
}

func (e *encoder) wrench(w worldmodel.Wrench) *yaml.Node {
	node := newMapping()
	setField(node, "force", e.vector3(w.Force))
	setField(node, "torque", e.vector3(w.Torque))
	return node
}
