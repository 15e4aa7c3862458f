// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

// Field names for the mapping form of each fixed-arity tuple.
var (
	vectorFields     = []string{"x", "y", "z"}
	quaternionFields = []string{"x", "y", "z", "w"}
	colorFields      = []string{"r", "g", "b", "a"}
	planeFields      = []string{"a", "b", "c", "d"}
)

// decodeTuple reads a fixed-arity numeric tuple written either as a
// sequence of exactly len(fields) numbers or as a mapping with every
// named field. Extra mapping keys are ignored.
func decodeTuple(node *yaml.Node, fields []string) ([]float64, error) {
	resolved := resolve(node)
	if resolved == nil {
		return nil, mismatch(node, "tuple")
	}
	values := make([]float64, len(fields))
	switch resolved.Kind {
	case yaml.SequenceNode:
		if len(resolved.Content) != len(fields) {
			return nil, failAt(resolved, ArityMismatch, "%d values, want %d (%s)",
				len(resolved.Content), len(fields), strings.Join(fields, ", "))
		}
		for i, item := range resolved.Content {
			value, err := decodeFloat(item)
			if err != nil {
				return nil, within(err, index(i))
			}
			values[i] = value
		}
	case yaml.MappingNode:
		for i, field := range fields {
			value, err := required(resolved, field, decodeFloat)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
	default:
		return nil, mismatch(node, "sequence or mapping")
	}
	return values, nil
}

func decodeVector3(node *yaml.Node) (worldmodel.Vector3, error) {
	values, err := decodeTuple(node, vectorFields)
	if err != nil {
		return worldmodel.Vector3{}, err
	}
	return worldmodel.Vector3{X: values[0], Y: values[1], Z: values[2]}, nil
}

func (*encoder) vector3(v worldmodel.Vector3) *yaml.Node {
	return floatsNode([]float64{v.X, v.Y, v.Z})
}

func decodePoint(node *yaml.Node) (worldmodel.Point, error) {
	values, err := decodeTuple(node, vectorFields)
	if err != nil {
		return worldmodel.Point{}, err
	}
	return worldmodel.Point{X: values[0], Y: values[1], Z: values[2]}, nil
}

func (*encoder) point(p worldmodel.Point) *yaml.Node {
	return floatsNode([]float64{p.X, p.Y, p.Z})
}

func decodeQuaternion(node *yaml.Node) (worldmodel.Quaternion, error) {
	values, err := decodeTuple(node, quaternionFields)
	if err != nil {
		return worldmodel.Quaternion{}, err
	}
	return worldmodel.Quaternion{X: values[0], Y: values[1], Z: values[2], W: values[3]}, nil
}

func (*encoder) quaternion(q worldmodel.Quaternion) *yaml.Node {
	return floatsNode([]float64{q.X, q.Y, q.Z, q.W})
}

func decodeColor(node *yaml.Node) (worldmodel.ColorRGBA, error) {
	values, err := decodeTuple(node, colorFields)
	if err != nil {
		return worldmodel.ColorRGBA{}, err
	}
	return worldmodel.ColorRGBA{R: values[0], G: values[1], B: values[2], A: values[3]}, nil
}

func (*encoder) color(c worldmodel.ColorRGBA) *yaml.Node {
	return floatsNode([]float64{c.R, c.G, c.B, c.A})
}
