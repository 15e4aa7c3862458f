// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

import "fmt"

// SolidPrimitiveType selects the shape of a [SolidPrimitive] and with
// it the number and meaning of its dimensions. The numeric values match
// shape_msgs/SolidPrimitive; the zero value is not a valid shape.
type SolidPrimitiveType uint8

const (
	// Box dimensions: size along x, y, z.
	Box SolidPrimitiveType = 1

	// Sphere dimensions: radius.
	Sphere SolidPrimitiveType = 2

	// Cylinder dimensions: height, radius. The axis is z.
	Cylinder SolidPrimitiveType = 3

	// Cone dimensions: height, radius of the base. The axis is z.
	Cone SolidPrimitiveType = 4
)

// String returns the wire token for the type.
func (kind SolidPrimitiveType) String() string {
	switch kind {
	case Box:
		return "box"
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	case Cone:
		return "cone"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(kind))
	}
}

// Arity returns the number of dimensions the type requires, or -1 for
// an unknown type.
func (kind SolidPrimitiveType) Arity() int {
	switch kind {
	case Box:
		return 3
	case Sphere:
		return 1
	case Cylinder, Cone:
		return 2
	default:
		return -1
	}
}

// ParseSolidPrimitiveType parses a wire token. Matching is exact.
func ParseSolidPrimitiveType(token string) (SolidPrimitiveType, error) {
	switch token {
	case "box":
		return Box, nil
	case "sphere":
		return Sphere, nil
	case "cylinder":
		return Cylinder, nil
	case "cone":
		return Cone, nil
	default:
		return 0, fmt.Errorf("unknown solid primitive type %q", token)
	}
}

// SolidPrimitive is a parametric shape. len(Dimensions) must equal
// Type.Arity().
type SolidPrimitive struct {
	Type       SolidPrimitiveType `cbor:"type"`
	Dimensions []float64          `cbor:"dimensions,omitempty"`
}

// Validate checks the dimension count against the type.
func (primitive SolidPrimitive) Validate() error {
	arity := primitive.Type.Arity()
	if arity < 0 {
		return fmt.Errorf("solid primitive: %s", primitive.Type)
	}
	if len(primitive.Dimensions) != arity {
		return fmt.Errorf("solid primitive %s: %d dimensions, want %d",
			primitive.Type, len(primitive.Dimensions), arity)
	}
	return nil
}

// MeshTriangle indexes three vertices of the owning [Mesh]. Indices
// are not checked against the vertex count.
type MeshTriangle struct {
	VertexIndices [3]uint32 `cbor:"vertex_indices"`
}

// Mesh is a triangle mesh.
type Mesh struct {
	Vertices  []Point        `cbor:"vertices,omitempty"`
	Triangles []MeshTriangle `cbor:"triangles,omitempty"`
}

// Plane is the plane ax + by + cz + d = 0, with Coef = {a, b, c, d}.
type Plane struct {
	Coef [4]float64 `cbor:"coef"`
}
