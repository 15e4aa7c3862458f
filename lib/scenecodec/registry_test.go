// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bureau-foundation/worldmodel/lib/testutil"
	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

func TestRegistryIsExhaustive(t *testing.T) {
	t.Parallel()

	kinds := Kinds()
	samples := sampleRecords()
	if len(kinds) != len(samples) {
		t.Errorf("%d kinds registered, %d sampled", len(kinds), len(samples))
	}
	seen := make(map[Kind]bool)
	for _, kind := range kinds {
		if seen[kind] {
			t.Errorf("kind %s listed twice", kind)
		}
		seen[kind] = true

		record, ok := samples[kind]
		if !ok {
			t.Errorf("kind %s has no sample record", kind)
			continue
		}
		if got, ok := KindOf(record); !ok || got != kind {
			t.Errorf("KindOf(%T) = %s, %v; want %s", record, got, ok, kind)
		}
		registered := defaultRegistry.byKind[kind]
		if registered == nil || registered.encode == nil || registered.decode == nil {
			t.Errorf("kind %s lacks a codec direction", kind)
		}
	}
}

func TestKindsOrderLeavesFirst(t *testing.T) {
	t.Parallel()

	kinds := Kinds()
	if kinds[0] != KindTime || kinds[len(kinds)-1] != KindPlanningScene {
		t.Errorf("Kinds() = %v, want Time first and PlanningScene last", kinds)
	}

	kinds[0] = "mutated"
	if Kinds()[0] != KindTime {
		t.Error("Kinds returned the registry's own slice")
	}
}

func TestKindOfPointer(t *testing.T) {
	t.Parallel()

	scene := &worldmodel.PlanningScene{}
	if kind, ok := KindOf(scene); !ok || kind != KindPlanningScene {
		t.Errorf("KindOf(*PlanningScene) = %s, %v", kind, ok)
	}
	if _, ok := KindOf((*worldmodel.PlanningScene)(nil)); ok {
		t.Error("KindOf(nil pointer) reported a kind")
	}
	if _, ok := KindOf("scene"); ok {
		t.Error("KindOf(string) reported a kind")
	}
}

func TestEncodeUnregistered(t *testing.T) {
	t.Parallel()

	for _, value := range []any{nil, 42, struct{ X float64 }{1}, []worldmodel.Pose{}} {
		if _, err := Encode(value); !errors.Is(err, ErrUnregistered) {
			t.Errorf("Encode(%T) error = %v, want ErrUnregistered", value, err)
		}
	}
}

func TestEncodeKind(t *testing.T) {
	t.Parallel()

	point := worldmodel.Point{X: 1, Y: 2, Z: 3}
	node, err := EncodeKind(KindPoint, &point)
	if err != nil {
		t.Fatalf("EncodeKind: %v", err)
	}
	if got := testutil.RenderNode(t, node); got != "[1, 2, 3]\n" {
		t.Errorf("encoded %q", got)
	}

	if _, err := EncodeKind(KindVector3, point); err == nil {
		t.Error("EncodeKind accepted a Point as a Vector3")
	}
	if _, err := EncodeKind("Gripper", point); !errors.Is(err, ErrUnregistered) {
		t.Errorf("unknown kind error = %v, want ErrUnregistered", err)
	}
}

func TestDecodeTargets(t *testing.T) {
	t.Parallel()

	node := testutil.ParseNode(t, `[1, 2, 3]`)

	var point worldmodel.Point
	if err := Decode(node, point); err == nil {
		t.Error("Decode into a non-pointer succeeded")
	}
	var number float64
	if err := Decode(node, &number); !errors.Is(err, ErrUnregistered) {
		t.Errorf("Decode into *float64 error = %v, want ErrUnregistered", err)
	}
	if err := Decode(node, &point); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if point != (worldmodel.Point{X: 1, Y: 2, Z: 3}) {
		t.Errorf("point = %+v", point)
	}

	if _, err := DecodeKind("Gripper", node); !errors.Is(err, ErrUnregistered) {
		t.Errorf("DecodeKind unknown error = %v, want ErrUnregistered", err)
	}
	decoded, err := DecodeKind(KindVector3, node)
	if err != nil {
		t.Fatalf("DecodeKind: %v", err)
	}
	if _, ok := decoded.(worldmodel.Vector3); !ok {
		t.Errorf("DecodeKind returned %T, want worldmodel.Vector3", decoded)
	}
}

func TestTypedEntryPoints(t *testing.T) {
	t.Parallel()

	node, err := EncodeValue(sampleJointState)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	decoded, err := DecodeValue[worldmodel.JointState](node)
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	if !reflect.DeepEqual(decoded, sampleJointState) {
		t.Errorf("decoded %+v, want %+v", decoded, sampleJointState)
	}

	if _, err := EncodeValue(3.5); !errors.Is(err, ErrUnregistered) {
		t.Errorf("EncodeValue(float64) error = %v, want ErrUnregistered", err)
	}
	if _, err := DecodeValue[string](node); !errors.Is(err, ErrUnregistered) {
		t.Errorf("DecodeValue[string] error = %v, want ErrUnregistered", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		record, err := New(kind)
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		got, ok := KindOf(record)
		if !ok || got != kind {
			t.Errorf("KindOf(New(%s)) = %s, %v", kind, got, ok)
		}
		if reflect.ValueOf(record).Kind() != reflect.Pointer {
			t.Errorf("New(%s) returned %T, want a pointer", kind, record)
		}
	}

	if _, err := New("Robot"); !errors.Is(err, ErrUnregistered) {
		t.Errorf("New(unknown) error = %v, want ErrUnregistered", err)
	}
}
