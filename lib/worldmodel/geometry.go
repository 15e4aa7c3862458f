// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

// Vector3 is a free vector in 3-space.
type Vector3 struct {
	X float64 `cbor:"x"`
	Y float64 `cbor:"y"`
	Z float64 `cbor:"z"`
}

// Point is a position in 3-space.
type Point struct {
	X float64 `cbor:"x"`
	Y float64 `cbor:"y"`
	Z float64 `cbor:"z"`
}

// Quaternion is an orientation. Unit length is expected by consumers
// but never checked or enforced here.
type Quaternion struct {
	X float64 `cbor:"x"`
	Y float64 `cbor:"y"`
	Z float64 `cbor:"z"`
	W float64 `cbor:"w"`
}

// IdentityQuaternion is the orientation with no rotation.
var IdentityQuaternion = Quaternion{W: 1}

// Pose is a position and an orientation.
type Pose struct {
	Position    Point      `cbor:"position"`
	Orientation Quaternion `cbor:"orientation"`
}

// Transform is a rigid transform between two frames.
type Transform struct {
	Translation Vector3    `cbor:"translation"`
	Rotation    Quaternion `cbor:"rotation"`
}

// TransformStamped is a transform from Header.FrameID (the parent)
// to ChildFrameID.
type TransformStamped struct {
	Header       Header    `cbor:"header"`
	ChildFrameID string    `cbor:"child_frame_id,omitempty"`
	Transform    Transform `cbor:"transform"`
}

// Twist is a velocity: linear and angular parts.
type Twist struct {
	Linear  Vector3 `cbor:"linear"`
	Angular Vector3 `cbor:"angular"`
}

// Wrench is a force and a torque.
type Wrench struct {
	Force  Vector3 `cbor:"force"`
	Torque Vector3 `cbor:"torque"`
}
