// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

func decodeOperation(node *yaml.Node) (worldmodel.Operation, error) {
	token, err := decodeString(node)
	if err != nil {
		return 0, err
	}
	operation, err := worldmodel.ParseOperation(token)
	if err != nil {
		return 0, failAt(resolve(node), UnknownEnum, "%q is not one of add, remove, append, move", token)
	}
	return operation, nil
}

func decodeObjectType(node *yaml.Node) (worldmodel.ObjectType, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.ObjectType{}, err
	}
	var result worldmodel.ObjectType
	if result.Key, err = optional(mapping, "key", decodeString); err != nil {
		return worldmodel.ObjectType{}, err
	}
	if result.DB, err = optional(mapping, "db", decodeString); err != nil {
		return worldmodel.ObjectType{}, err
	}
	return result, nil
}

func (*encoder) objectType(t worldmodel.ObjectType) *yaml.Node {
	node := newMapping()
	setField(node, "key", stringNode(t.Key))
	setField(node, "db", stringNode(t.DB))
	return node
}

var (
	decodePoses      = sequenceOf(decodePose)
	decodePrimitives = sequenceOf(decodeSolidPrimitive)
	decodeMeshes     = sequenceOf(decodeMesh)
	decodePlanes     = sequenceOf(decodePlane)
)

// posesFor decodes the pose sequence that accompanies a shape sequence
// of the given length.
func posesFor(mapping *yaml.Node, key string, shapes int) ([]worldmodel.Pose, error) {
	poses, err := optional(mapping, key, decodePoses)
	if err != nil {
		return nil, err
	}
	if len(poses) != shapes {
		at := lookup(mapping, key)
		if at == nil {
			at = mapping
		}
		return nil, within(failAt(at, ArityMismatch, "%d poses for %d shapes", len(poses), shapes), key)
	}
	return poses, nil
}

func decodeCollisionObject(node *yaml.Node) (worldmodel.CollisionObject, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.CollisionObject{}, err
	}
	var result worldmodel.CollisionObject
	if result.ID, err = required(mapping, "id", decodeString); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if result.Header, err = optional(mapping, "header", decodeHeader); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if result.Operation, err = optional(mapping, "operation", decodeOperation); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if result.Type, err = optional(mapping, "type", decodeObjectType); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if result.Primitives, err = optional(mapping, "primitives", decodePrimitives); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if result.Meshes, err = optional(mapping, "meshes", decodeMeshes); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if result.Planes, err = optional(mapping, "planes", decodePlanes); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if lookup(mapping, combinedPosesKey) != nil {
		if err := splitCombinedPoses(mapping, &result); err != nil {
			return worldmodel.CollisionObject{}, err
		}
		return result, nil
	}
	if result.PrimitivePoses, err = posesFor(mapping, "primitive_poses", len(result.Primitives)); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if result.MeshPoses, err = posesFor(mapping, "mesh_poses", len(result.Meshes)); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	if result.PlanePoses, err = posesFor(mapping, "plane_poses", len(result.Planes)); err != nil {
		return worldmodel.CollisionObject{}, err
	}
	return result, nil
}

// combinedPosesKey holds one pose sequence for every shape of an
// object: primitives first, then meshes, then planes. It is accepted
// on decode only; encoding writes the per-shape lists.
const combinedPosesKey = "poses"

func splitCombinedPoses(mapping *yaml.Node, object *worldmodel.CollisionObject) error {
	at := lookup(mapping, combinedPosesKey)
	for _, key := range []string{"primitive_poses", "mesh_poses", "plane_poses"} {
		if lookup(mapping, key) != nil {
			return within(failAt(at, ArityMismatch, "%s cannot be combined with %s", combinedPosesKey, key), combinedPosesKey)
		}
	}
	poses, err := optional(mapping, combinedPosesKey, decodePoses)
	if err != nil {
		return err
	}
	primitives, meshes, planes := len(object.Primitives), len(object.Meshes), len(object.Planes)
	if len(poses) != primitives+meshes+planes {
		return within(failAt(at, ArityMismatch, "%d poses for %d shapes (%d primitives, %d meshes, %d planes)",
			len(poses), primitives+meshes+planes, primitives, meshes, planes), combinedPosesKey)
	}
	object.PrimitivePoses = nilIfEmpty(poses[:primitives])
	object.MeshPoses = nilIfEmpty(poses[primitives : primitives+meshes])
	object.PlanePoses = nilIfEmpty(poses[primitives+meshes:])
	return nil
}

// nilIfEmpty keeps decoded empty sequences nil, as sequenceOf does.
func nilIfEmpty[T any](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	return values[:len(values):len(values)]
}

func (e *encoder) collisionObject(object worldmodel.CollisionObject) *yaml.Node {
	node := newMapping()
	setField(node, "id", stringNode(object.ID))
	e.setHeader(node, object.Header)
	setField(node, "operation", stringNode(object.Operation.String()))
	if !object.Type.IsZero() {
		setField(node, "type", e.objectType(object.Type))
	}
	poses := func(values []worldmodel.Pose) *yaml.Node { return sequenceNode(values, e.pose) }
	setSequence(node, "primitives", object.Primitives, func(values []worldmodel.SolidPrimitive) *yaml.Node {
		return sequenceNode(values, e.solidPrimitive)
	})
	setSequence(node, "primitive_poses", object.PrimitivePoses, poses)
	setSequence(node, "meshes", object.Meshes, func(values []worldmodel.Mesh) *yaml.Node {
		return sequenceNode(values, e.mesh)
	})
	setSequence(node, "mesh_poses", object.MeshPoses, poses)
	setSequence(node, "planes", object.Planes, func(values []worldmodel.Plane) *yaml.Node {
		return sequenceNode(values, e.plane)
	})
	setSequence(node, "plane_poses", object.PlanePoses, poses)
	return node
}

func decodeAttachedCollisionObject(node *yaml.Node) (worldmodel.AttachedCollisionObject, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.AttachedCollisionObject{}, err
	}
	var result worldmodel.AttachedCollisionObject
	if result.LinkName, err = required(mapping, "link_name", decodeString); err != nil {
		return worldmodel.AttachedCollisionObject{}, err
	}
	if result.Object, err = required(mapping, "object", decodeCollisionObject); err != nil {
		return worldmodel.AttachedCollisionObject{}, err
	}
	if result.TouchLinks, err = optional(mapping, "touch_links", decodeStrings); err != nil {
		return worldmodel.AttachedCollisionObject{}, err
	}
	if result.DetachPosture, err = optional(mapping, "detach_posture", decodeJointTrajectory); err != nil {
		return worldmodel.AttachedCollisionObject{}, err
	}
	if result.Weight, err = optional(mapping, "weight", decodeFloat); err != nil {
		return worldmodel.AttachedCollisionObject{}, err
	}
	return result, nil
}

func (e *encoder) attachedCollisionObject(attached worldmodel.AttachedCollisionObject) *yaml.Node {
	node := newMapping()
	setField(node, "link_name", stringNode(attached.LinkName))
	setField(node, "object", e.collisionObject(attached.Object))
	setSequence(node, "touch_links", attached.TouchLinks, stringsNode)
	if !attached.DetachPosture.IsZero() {
		setField(node, "detach_posture", e.jointTrajectory(attached.DetachPosture))
	}
	if attached.Weight != 0 {
		setField(node, "weight", floatNode(attached.Weight))
	}
	return node
}

// decodePermission maps a matrix cell: true allows, false forbids,
// null leaves the pair to the defaults.
func decodePermission(node *yaml.Node) (worldmodel.CollisionPermission, error) {
	if resolve(node) == nil {
		return worldmodel.Unspecified, nil
	}
	allowed, err := decodeBool(node)
	if err != nil {
		return 0, err
	}
	if allowed {
		return worldmodel.Allowed, nil
	}
	return worldmodel.Forbidden, nil
}

func permissionNode(permission worldmodel.CollisionPermission) *yaml.Node {
	switch permission {
	case worldmodel.Allowed:
		return boolNode(true)
	case worldmodel.Forbidden:
		return boolNode(false)
	default:
		return nullNode()
	}
}

var decodePermissions = sequenceOf(decodePermission)

// decodeCollisionEntry accepts a bare row of cells or the message form
// {enabled: [...]}.
func decodeCollisionEntry(node *yaml.Node) (worldmodel.AllowedCollisionEntry, error) {
	resolved := resolve(node)
	if resolved != nil && resolved.Kind == yaml.MappingNode {
		enabled, err := optional(resolved, "enabled", decodePermissions)
		return worldmodel.AllowedCollisionEntry{Enabled: enabled}, err
	}
	enabled, err := decodePermissions(node)
	if err != nil {
		return worldmodel.AllowedCollisionEntry{}, err
	}
	return worldmodel.AllowedCollisionEntry{Enabled: enabled}, nil
}

func (*encoder) collisionEntry(entry worldmodel.AllowedCollisionEntry) *yaml.Node {
	node := newSequence(true)
	for _, cell := range entry.Enabled {
		node.Content = append(node.Content, permissionNode(cell))
	}
	return node
}

var (
	decodeCollisionEntries = sequenceOf(decodeCollisionEntry)
	decodeBools            = sequenceOf(decodeBool)
)

func decodeAllowedCollisionMatrix(node *yaml.Node) (worldmodel.AllowedCollisionMatrix, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.AllowedCollisionMatrix{}, err
	}
	var result worldmodel.AllowedCollisionMatrix
	if result.EntryNames, err = optional(mapping, "entry_names", decodeStrings); err != nil {
		return worldmodel.AllowedCollisionMatrix{}, err
	}
	if result.EntryValues, err = optional(mapping, "entry_values", decodeCollisionEntries); err != nil {
		return worldmodel.AllowedCollisionMatrix{}, err
	}
	size := len(result.EntryNames)
	rows := resolve(lookup(mapping, "entry_values"))
	if len(result.EntryValues) != size {
		at := rows
		if at == nil {
			at = mapping
		}
		return worldmodel.AllowedCollisionMatrix{}, within(failAt(at, ShapeMismatch,
			"%d rows for %d entry names", len(result.EntryValues), size), "entry_values")
	}
	for i, row := range result.EntryValues {
		if len(row.Enabled) != size {
			return worldmodel.AllowedCollisionMatrix{}, within(within(failAt(rows.Content[i], ShapeMismatch,
				"%d cells for %d entry names", len(row.Enabled), size), index(i)), "entry_values")
		}
	}
	if result.DefaultEntryNames, err = optional(mapping, "default_entry_names", decodeStrings); err != nil {
		return worldmodel.AllowedCollisionMatrix{}, err
	}
	if result.DefaultEntryValues, err = parallel(mapping, "default_entry_values", len(result.DefaultEntryNames), decodeBools); err != nil {
		return worldmodel.AllowedCollisionMatrix{}, err
	}
	if len(result.DefaultEntryNames) > 0 && len(result.DefaultEntryValues) == 0 {
		return worldmodel.AllowedCollisionMatrix{}, within(failAt(mapping, ArityMismatch,
			"no values for %d default entry names", len(result.DefaultEntryNames)), "default_entry_values")
	}
	return result, nil
}

func (e *encoder) allowedCollisionMatrix(matrix worldmodel.AllowedCollisionMatrix) *yaml.Node {
	node := newMapping()
	setField(node, "entry_names", stringsNode(matrix.EntryNames))
	setField(node, "entry_values", sequenceNode(matrix.EntryValues, e.collisionEntry))
	setSequence(node, "default_entry_names", matrix.DefaultEntryNames, stringsNode)
	setSequence(node, "default_entry_values", matrix.DefaultEntryValues, func(values []bool) *yaml.Node {
		sequence := newSequence(true)
		for _, value := range values {
			sequence.Content = append(sequence.Content, boolNode(value))
		}
		return sequence
	})
	return node
}

func decodeLinkPadding(node *yaml.Node) (worldmodel.LinkPadding, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.LinkPadding{}, err
	}
	var result worldmodel.LinkPadding
	if result.LinkName, err = required(mapping, "link_name", decodeString); err != nil {
		return worldmodel.LinkPadding{}, err
	}
	if result.Padding, err = required(mapping, "padding", decodeFloat); err != nil {
		return worldmodel.LinkPadding{}, err
	}
	return result, nil
}

func (*encoder) linkPadding(p worldmodel.LinkPadding) *yaml.Node {
	node := newMapping()
	setField(node, "link_name", stringNode(p.LinkName))
	setField(node, "padding", floatNode(p.Padding))
	return node
}

func decodeLinkScale(node *yaml.Node) (worldmodel.LinkScale, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.LinkScale{}, err
	}
	var result worldmodel.LinkScale
	if result.LinkName, err = required(mapping, "link_name", decodeString); err != nil {
		return worldmodel.LinkScale{}, err
	}
	if result.Scale, err = required(mapping, "scale", decodeFloat); err != nil {
		return worldmodel.LinkScale{}, err
	}
	return result, nil
}

func (*encoder) linkScale(s worldmodel.LinkScale) *yaml.Node {
	node := newMapping()
	setField(node, "link_name", stringNode(s.LinkName))
	setField(node, "scale", floatNode(s.Scale))
	return node
}

func decodeObjectColor(node *yaml.Node) (worldmodel.ObjectColor, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.ObjectColor{}, err
	}
	var result worldmodel.ObjectColor
	if result.ID, err = required(mapping, "id", decodeString); err != nil {
		return worldmodel.ObjectColor{}, err
	}
	if result.Color, err = required(mapping, "color", decodeColor); err != nil {
		return worldmodel.ObjectColor{}, err
	}
	return result, nil
}

func (e *encoder) objectColor(c worldmodel.ObjectColor) *yaml.Node {
	node := newMapping()
	setField(node, "id", stringNode(c.ID))
	setField(node, "color", e.color(c.Color))
	return node
}
