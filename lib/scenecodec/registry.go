// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Kind names a world-model entity. The set is closed: every kind is
// registered at package initialization and no other can be added.
type Kind string

const (
	KindTime                    Kind = "Time"
	KindDuration                Kind = "Duration"
	KindHeader                  Kind = "Header"
	KindVector3                 Kind = "Vector3"
	KindPoint                   Kind = "Point"
	KindQuaternion              Kind = "Quaternion"
	KindColorRGBA               Kind = "ColorRGBA"
	KindPose                    Kind = "Pose"
	KindTransform               Kind = "Transform"
	KindTransformStamped        Kind = "TransformStamped"
	KindTwist                   Kind = "Twist"
	KindWrench                  Kind = "Wrench"
	KindJointState              Kind = "JointState"
	KindMultiDOFJointState      Kind = "MultiDOFJointState"
	KindJointTrajectoryPoint    Kind = "JointTrajectoryPoint"
	KindJointTrajectory         Kind = "JointTrajectory"
	KindSolidPrimitive          Kind = "SolidPrimitive"
	KindMeshTriangle            Kind = "MeshTriangle"
	KindMesh                    Kind = "Mesh"
	KindPlane                   Kind = "Plane"
	KindObjectType              Kind = "ObjectType"
	KindCollisionObject         Kind = "CollisionObject"
	KindAttachedCollisionObject Kind = "AttachedCollisionObject"
	KindAllowedCollisionEntry   Kind = "AllowedCollisionEntry"
	KindAllowedCollisionMatrix  Kind = "AllowedCollisionMatrix"
	KindLinkPadding             Kind = "LinkPadding"
	KindLinkScale               Kind = "LinkScale"
	KindObjectColor             Kind = "ObjectColor"
	KindOctomap                 Kind = "Octomap"
	KindOctomapWithPose         Kind = "OctomapWithPose"
	KindPlanningSceneWorld      Kind = "PlanningSceneWorld"
	KindRobotState              Kind = "RobotState"
	KindPlanningScene           Kind = "PlanningScene"
)

// entry is a registered codec pair with its type erased.
type entry struct {
	kind   Kind
	goType reflect.Type
	encode func(*encoder, any) *yaml.Node
	decode func(*yaml.Node) (any, error)
}

type registry struct {
	order  []Kind
	byKind map[Kind]*entry
	byType map[reflect.Type]*entry
}

// register adds the codec pair for T. Registration happens only while
// the default registry is built; duplicates are programming errors.
func register[T any](r *registry, kind Kind, encode func(*encoder, T) *yaml.Node, decode func(*yaml.Node) (T, error)) {
	goType := reflect.TypeFor[T]()
	if _, exists := r.byKind[kind]; exists {
		panic(fmt.Sprintf("scenecodec: kind %s registered twice", kind))
	}
	if _, exists := r.byType[goType]; exists {
		panic(fmt.Sprintf("scenecodec: type %s registered twice", goType))
	}
	registered := &entry{
		kind:   kind,
		goType: goType,
		encode: func(e *encoder, value any) *yaml.Node {
			return encode(e, value.(T))
		},
		decode: func(node *yaml.Node) (any, error) {
			return decode(node)
		},
	}
	r.order = append(r.order, kind)
	r.byKind[kind] = registered
	r.byType[goType] = registered
}

func newRegistry() *registry {
	r := &registry{
		byKind: make(map[Kind]*entry),
		byType: make(map[reflect.Type]*entry),
	}

	register(r, KindTime, (*encoder).time, decodeTime)
	register(r, KindDuration, (*encoder).duration, decodeDuration)
	register(r, KindHeader, (*encoder).header, decodeHeader)
	register(r, KindVector3, (*encoder).vector3, decodeVector3)
	register(r, KindPoint, (*encoder).point, decodePoint)
	register(r, KindQuaternion, (*encoder).quaternion, decodeQuaternion)
	register(r, KindColorRGBA, (*encoder).color, decodeColor)

	register(r, KindPose, (*encoder).pose, decodePose)
	register(r, KindTransform, (*encoder).transform, decodeTransform)
	register(r, KindTransformStamped, (*encoder).transformStamped, decodeTransformStamped)
	register(r, KindTwist, (*encoder).twist, decodeTwist)
	register(r, KindWrench, (*encoder).wrench, decodeWrench)

	register(r, KindJointState, (*encoder).jointState, decodeJointState)
	register(r, KindMultiDOFJointState, (*encoder).multiDOFJointState, decodeMultiDOFJointState)
	register(r, KindJointTrajectoryPoint, (*encoder).trajectoryPoint, decodeTrajectoryPoint)
	register(r, KindJointTrajectory, (*encoder).jointTrajectory, decodeJointTrajectory)

	register(r, KindSolidPrimitive, (*encoder).solidPrimitive, decodeSolidPrimitive)
	register(r, KindMeshTriangle, (*encoder).meshTriangle, decodeMeshTriangle)
	register(r, KindMesh, (*encoder).mesh, decodeMesh)
	register(r, KindPlane, (*encoder).plane, decodePlane)

	register(r, KindObjectType, (*encoder).objectType, decodeObjectType)
	register(r, KindCollisionObject, (*encoder).collisionObject, decodeCollisionObject)
	register(r, KindAttachedCollisionObject, (*encoder).attachedCollisionObject, decodeAttachedCollisionObject)
	register(r, KindAllowedCollisionEntry, (*encoder).collisionEntry, decodeCollisionEntry)
	register(r, KindAllowedCollisionMatrix, (*encoder).allowedCollisionMatrix, decodeAllowedCollisionMatrix)
	register(r, KindLinkPadding, (*encoder).linkPadding, decodeLinkPadding)
	register(r, KindLinkScale, (*encoder).linkScale, decodeLinkScale)
	register(r, KindObjectColor, (*encoder).objectColor, decodeObjectColor)

	register(r, KindOctomap, (*encoder).octomap, decodeOctomap)
	register(r, KindOctomapWithPose, (*encoder).octomapWithPose, decodeOctomapWithPose)
	register(r, KindPlanningSceneWorld, (*encoder).planningSceneWorld, decodePlanningSceneWorld)

	register(r, KindRobotState, (*encoder).robotState, decodeRobotState)
	register(r, KindPlanningScene, (*encoder).planningScene, decodePlanningScene)

	return r
}

// defaultRegistry is built once and never modified afterwards.
var defaultRegistry = newRegistry()

// forValue finds the entry for a record or a pointer to one and
// returns the record itself.
func (r *registry) forValue(value any) (*entry, any, error) {
	if value == nil {
		return nil, nil, fmt.Errorf("%w: nil", ErrUnregistered)
	}
	reflected := reflect.ValueOf(value)
	if reflected.Kind() == reflect.Pointer {
		if reflected.IsNil() {
			return nil, nil, fmt.Errorf("%w: nil %T", ErrUnregistered, value)
		}
		reflected = reflected.Elem()
	}
	registered, ok := r.byType[reflected.Type()]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T", ErrUnregistered, value)
	}
	return registered, reflected.Interface(), nil
}

// forKindValue is forValue with the additional requirement that the
// record has the type registered for kind.
func (r *registry) forKindValue(kind Kind, value any) (*entry, any, error) {
	if _, ok := r.byKind[kind]; !ok {
		return nil, nil, fmt.Errorf("%w: kind %q", ErrUnregistered, kind)
	}
	registered, value, err := r.forValue(value)
	if err != nil {
		return nil, nil, err
	}
	if registered.kind != kind {
		return nil, nil, fmt.Errorf("scenecodec: cannot encode %s as %s", registered.kind, kind)
	}
	return registered, value, nil
}

// decodeRooted bounds alias expansion, runs the decoder, and roots
// any error path at the kind name.
func (registered *entry) decodeRooted(node *yaml.Node) (any, error) {
	if err := checkAliasExpansion(node); err != nil {
		return nil, within(err, string(registered.kind))
	}
	value, err := registered.decode(node)
	if err != nil {
		return nil, within(err, string(registered.kind))
	}
	return value, nil
}

// Kinds returns every registered kind, leaves first.
func Kinds() []Kind {
	return append([]Kind(nil), defaultRegistry.order...)
}

// KindOf returns the kind of a record or a pointer to one.
func KindOf(value any) (Kind, bool) {
	registered, _, err := defaultRegistry.forValue(value)
	if err != nil {
		return "", false
	}
	return registered.kind, true
}

// Encode converts a record to a document node using the default
// options (uncompressed payloads).
func Encode(value any) (*yaml.Node, error) {
	return defaultEncoder.Encode(value)
}

// EncodeKind encodes value as the named kind using the default
// options.
func EncodeKind(kind Kind, value any) (*yaml.Node, error) {
	return defaultEncoder.EncodeKind(kind, value)
}

// Decode decodes node into target, which must be a non-nil pointer to
// a registered record. Decoding is all-or-nothing: on error target is
// left untouched.
func Decode(node *yaml.Node, target any) error {
	reflected := reflect.ValueOf(target)
	if reflected.Kind() != reflect.Pointer || reflected.IsNil() {
		return fmt.Errorf("scenecodec: decode target must be a non-nil pointer, got %T", target)
	}
	registered, ok := defaultRegistry.byType[reflected.Type().Elem()]
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnregistered, target)
	}
	value, err := registered.decodeRooted(node)
	if err != nil {
		return err
	}
	reflected.Elem().Set(reflect.ValueOf(value))
	return nil
}

// DecodeKind decodes node as the named kind and returns the record by
// value.
func DecodeKind(kind Kind, node *yaml.Node) (any, error) {
	registered, ok := defaultRegistry.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q", ErrUnregistered, kind)
	}
	return registered.decodeRooted(node)
}

// New returns a pointer to a zero record of the named kind, for
// filling from another serialization such as a snapshot body.
func New(kind Kind) (any, error) {
	registered, ok := defaultRegistry.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q", ErrUnregistered, kind)
	}
	return reflect.New(registered.goType).Interface(), nil
}

// EncodeValue is the typed form of Encode.
func EncodeValue[T any](value T) (*yaml.Node, error) {
	return defaultEncoder.Encode(value)
}

// DecodeValue is the typed form of Decode.
func DecodeValue[T any](node *yaml.Node) (T, error) {
	var result T
	if err := Decode(node, &result); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
