// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

func decodePrimitiveType(node *yaml.Node) (worldmodel.SolidPrimitiveType, error) {
	token, err := decodeString(node)
	if err != nil {
		return 0, err
	}
	kind, err := worldmodel.ParseSolidPrimitiveType(token)
	if err != nil {
		return 0, failAt(resolve(node), UnknownEnum, "%q is not one of box, sphere, cylinder, cone", token)
	}
	return kind, nil
}

// decodeSolidPrimitive reads the type before the dimensions: the type
// decides how many dimensions are expected. The type is keyed "type";
// "kind" is accepted when "type" is absent.
func decodeSolidPrimitive(node *yaml.Node) (worldmodel.SolidPrimitive, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.SolidPrimitive{}, err
	}
	typeKey := "type"
	if lookup(mapping, typeKey) == nil && lookup(mapping, "kind") != nil {
		typeKey = "kind"
	}
	var result worldmodel.SolidPrimitive
	if result.Type, err = required(mapping, typeKey, decodePrimitiveType); err != nil {
		return worldmodel.SolidPrimitive{}, err
	}
	if result.Dimensions, err = optional(mapping, "dimensions", decodeFloats); err != nil {
		return worldmodel.SolidPrimitive{}, err
	}
	if arity := result.Type.Arity(); len(result.Dimensions) != arity {
		at := lookup(mapping, "dimensions")
		if at == nil {
			at = mapping
		}
		return worldmodel.SolidPrimitive{}, within(failAt(at, ArityMismatch,
			"%s takes %d dimensions, got %d", result.Type, arity, len(result.Dimensions)), "dimensions")
	}
	return result, nil
}

func (*encoder) solidPrimitive(p worldmodel.SolidPrimitive) *yaml.Node {
	node := newMapping()
	setField(node, "type", stringNode(p.Type.String()))
	setField(node, "dimensions", floatsNode(p.Dimensions))
	return node
}

func decodeMeshTriangle(node *yaml.Node) (worldmodel.MeshTriangle, error) {
	resolved := resolve(node)
	if resolved == nil || resolved.Kind != yaml.SequenceNode {
		return worldmodel.MeshTriangle{}, mismatch(node, "sequence of 3 vertex indices")
	}
	if len(resolved.Content) != 3 {
		return worldmodel.MeshTriangle{}, failAt(resolved, ArityMismatch,
			"%d vertex indices, want 3", len(resolved.Content))
	}
	var result worldmodel.MeshTriangle
	for i, item := range resolved.Content {
		value, err := decodeUint32(item)
		if err != nil {
			return worldmodel.MeshTriangle{}, within(err, index(i))
		}
		result.VertexIndices[i] = value
	}
	return result, nil
}

func (*encoder) meshTriangle(t worldmodel.MeshTriangle) *yaml.Node {
	node := newSequence(true)
	for _, vertex := range t.VertexIndices {
		node.Content = append(node.Content, uintNode(uint64(vertex)))
	}
	return node
}

var (
	decodePoints    = sequenceOf(decodePoint)
	decodeTriangles = sequenceOf(decodeMeshTriangle)
)

func decodeMesh(node *yaml.Node) (worldmodel.Mesh, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Mesh{}, err
	}
	var result worldmodel.Mesh
	if result.Vertices, err = optional(mapping, "vertices", decodePoints); err != nil {
		return worldmodel.Mesh{}, err
	}
	if result.Triangles, err = optional(mapping, "triangles", decodeTriangles); err != nil {
		return worldmodel.Mesh{}, err
	}
	return result, nil
}

func (e *encoder) mesh(m worldmodel.Mesh) *yaml.Node {
	node := newMapping()
	setSequence(node, "vertices", m.Vertices, func(values []worldmodel.Point) *yaml.Node {
		return sequenceNode(values, e.point)
	})
	setSequence(node, "triangles", m.Triangles, func(values []worldmodel.MeshTriangle) *yaml.Node {
		return sequenceNode(values, e.meshTriangle)
	})
	return node
}

// decodePlane accepts [a, b, c, d], a mapping of a, b, c, d, or the
// message form {coef: [a, b, c, d]}.
func decodePlane(node *yaml.Node) (worldmodel.Plane, error) {
	if resolved := resolve(node); resolved != nil && resolved.Kind == yaml.MappingNode {
		if coef := lookup(resolved, "coef"); coef != nil {
			plane, err := decodePlane(coef)
			return plane, within(err, "coef")
		}
	}
	values, err := decodeTuple(node, planeFields)
	if err != nil {
		return worldmodel.Plane{}, err
	}
	var result worldmodel.Plane
	copy(result.Coef[:], values)
	return result, nil
}

func (*encoder) plane(p worldmodel.Plane) *yaml.Node {
	return floatsNode(p.Coef[:])
}
