// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

// samplePose exercises nested structs and the float encoding.
var samplePose = worldmodel.Pose{
	Position:    worldmodel.Point{X: 0.1, Y: -2.5, Z: 1e-9},
	Orientation: worldmodel.IdentityQuaternion,
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	t.Parallel()

	data, err := Marshal(samplePose)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded worldmodel.Pose
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != samplePose {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, samplePose)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Marshal(samplePose)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(samplePose)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestOmitemptyRespected(t *testing.T) {
	t.Parallel()

	// An empty mesh should encode smaller than one with vertices,
	// because the omitempty slices are absent rather than empty.
	withVertices, err := Marshal(worldmodel.Mesh{Vertices: []worldmodel.Point{{X: 1}}})
	if err != nil {
		t.Fatal(err)
	}
	empty, err := Marshal(worldmodel.Mesh{})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) >= len(withVertices) {
		t.Errorf("omitempty not effective: empty=%d bytes, with vertices=%d bytes", len(empty), len(withVertices))
	}

	var decoded worldmodel.Mesh
	if err := Unmarshal(empty, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Vertices != nil || decoded.Triangles != nil {
		t.Errorf("empty mesh decoded with non-nil slices: %+v", decoded)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	t.Parallel()

	var pose worldmodel.Pose
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &pose); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestUnmarshalRejectsDuplicateKeys(t *testing.T) {
	t.Parallel()

	// {"x": 1, "x": 2}
	data := []byte{0xa2, 0x61, 'x', 0x01, 0x61, 'x', 0x02}
	var point worldmodel.Point
	if err := Unmarshal(data, &point); err == nil {
		t.Error("Unmarshal accepted a map with a duplicate key")
	}
}

func TestByteStringRoundtrip(t *testing.T) {
	t.Parallel()

	// Octomap data must travel as a CBOR byte string (major type 2)
	// and come back byte for byte.
	original := worldmodel.Octomap{ID: "OcTree", Resolution: 0.05, Data: []byte{0, 1, 0x80, 0xff}}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded worldmodel.Octomap
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("byte string roundtrip: got %+v, want %+v", decoded, original)
	}
}

func TestCollisionPermissionsRoundtrip(t *testing.T) {
	t.Parallel()

	original := worldmodel.AllowedCollisionMatrix{
		EntryNames: []string{"a", "b"},
		EntryValues: []worldmodel.AllowedCollisionEntry{
			{Enabled: []worldmodel.CollisionPermission{worldmodel.Unspecified, worldmodel.Allowed}},
			{Enabled: []worldmodel.CollisionPermission{worldmodel.Allowed, worldmodel.Forbidden}},
		},
	}
	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded worldmodel.AllowedCollisionMatrix
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("got %+v, want %+v", decoded, original)
	}
}

func BenchmarkMarshal(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		Marshal(samplePose)
	}
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	data, err := Marshal(worldmodel.LinkPadding{LinkName: "arm", Padding: 0.5})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"link_name"`) {
		t.Errorf("notation %q does not contain \"link_name\"", notation)
	}
	if !strings.Contains(notation, `"arm"`) {
		t.Errorf("notation %q does not contain \"arm\"", notation)
	}
}
