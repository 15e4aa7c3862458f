// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

import "fmt"

// Operation says how a [CollisionObject] applies to the scene it is
// sent to. The numeric values match moveit_msgs/CollisionObject; the
// zero value is Add.
type Operation uint8

const (
	// Add inserts the object, replacing any object with the same ID.
	Add Operation = 0

	// Remove deletes the object with the same ID.
	Remove Operation = 1

	// Append adds the shapes to an existing object.
	Append Operation = 2

	// Move changes the pose of an existing object; shapes are ignored.
	Move Operation = 3
)

// String returns the wire token for the operation.
func (operation Operation) String() string {
	switch operation {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Append:
		return "append"
	case Move:
		return "move"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(operation))
	}
}

// ParseOperation parses a wire token. Matching is exact.
func ParseOperation(token string) (Operation, error) {
	switch token {
	case "add":
		return Add, nil
	case "remove":
		return Remove, nil
	case "append":
		return Append, nil
	case "move":
		return Move, nil
	default:
		return 0, fmt.Errorf("unknown collision object operation %q", token)
	}
}

// ObjectType is an object-recognition database reference.
type ObjectType struct {
	Key string `cbor:"key,omitempty"`
	DB  string `cbor:"db,omitempty"`
}

// IsZero reports whether the reference is unset.
func (t ObjectType) IsZero() bool {
	return t.Key == "" && t.DB == ""
}

// CollisionObject is a named collection of shapes. Each shape sequence
// runs parallel to its pose sequence.
type CollisionObject struct {
	Header         Header           `cbor:"header"`
	ID             string           `cbor:"id"`
	Type           ObjectType       `cbor:"type"`
	Primitives     []SolidPrimitive `cbor:"primitives,omitempty"`
	PrimitivePoses []Pose           `cbor:"primitive_poses,omitempty"`
	Meshes         []Mesh           `cbor:"meshes,omitempty"`
	MeshPoses      []Pose           `cbor:"mesh_poses,omitempty"`
	Planes         []Plane          `cbor:"planes,omitempty"`
	PlanePoses     []Pose           `cbor:"plane_poses,omitempty"`
	Operation      Operation        `cbor:"operation"`
}

// ShapeCount returns the total number of shapes of every kind.
func (object CollisionObject) ShapeCount() int {
	return len(object.Primitives) + len(object.Meshes) + len(object.Planes)
}

// Validate checks that each shape sequence matches its poses and that
// every primitive has the right number of dimensions.
func (object CollisionObject) Validate() error {
	pairs := []struct {
		shapes, poses string
		shapeCount    int
		poseCount     int
	}{
		{"primitives", "primitive_poses", len(object.Primitives), len(object.PrimitivePoses)},
		{"meshes", "mesh_poses", len(object.Meshes), len(object.MeshPoses)},
		{"planes", "plane_poses", len(object.Planes), len(object.PlanePoses)},
	}
	for _, pair := range pairs {
		if pair.shapeCount != pair.poseCount {
			return fmt.Errorf("collision object %q: %w: %s has %d entries, %s has %d",
				object.ID, ErrParallelLength, pair.poses, pair.poseCount, pair.shapes, pair.shapeCount)
		}
	}
	for i, primitive := range object.Primitives {
		if err := primitive.Validate(); err != nil {
			return fmt.Errorf("collision object %q: primitives[%d]: %w", object.ID, i, err)
		}
	}
	return nil
}

// AttachedCollisionObject is a collision object rigidly attached to a
// robot link. Collisions between the object and TouchLinks are
// ignored. DetachPosture is the end-effector motion that releases it.
type AttachedCollisionObject struct {
	LinkName      string          `cbor:"link_name"`
	Object        CollisionObject `cbor:"object"`
	TouchLinks    []string        `cbor:"touch_links,omitempty"`
	DetachPosture JointTrajectory `cbor:"detach_posture"`
	Weight        float64         `cbor:"weight,omitempty"`
}

// LinkPadding inflates the collision geometry of one link.
type LinkPadding struct {
	LinkName string  `cbor:"link_name"`
	Padding  float64 `cbor:"padding"`
}

// LinkScale scales the collision geometry of one link.
type LinkScale struct {
	LinkName string  `cbor:"link_name"`
	Scale    float64 `cbor:"scale"`
}

// ObjectColor sets the display color of one object or link.
type ObjectColor struct {
	ID    string    `cbor:"id"`
	Color ColorRGBA `cbor:"color"`
}

// PaddingFor returns the padding of the named link. Paddings are an
// ordered sequence that may name a link more than once; the last entry
// wins.
func PaddingFor(paddings []LinkPadding, link string) (float64, bool) {
	for i := len(paddings) - 1; i >= 0; i-- {
		if paddings[i].LinkName == link {
			return paddings[i].Padding, true
		}
	}
	return 0, false
}

// ScaleFor returns the scale of the named link; the last entry wins.
func ScaleFor(scales []LinkScale, link string) (float64, bool) {
	for i := len(scales) - 1; i >= 0; i-- {
		if scales[i].LinkName == link {
			return scales[i].Scale, true
		}
	}
	return 0, false
}

// ColorFor returns the color of the named object; the last entry wins.
func ColorFor(colors []ObjectColor, id string) (ColorRGBA, bool) {
	for i := len(colors) - 1; i >= 0; i-- {
		if colors[i].ID == id {
			return colors[i].Color, true
		}
	}
	return ColorRGBA{}, false
}
