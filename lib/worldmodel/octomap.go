// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

// Octomap is a serialized octree occupancy map. Data is the octree in
// the octomap library's own format (binary or full, per Binary) and is
// opaque here: it is transported byte for byte and never parsed.
type Octomap struct {
	Header     Header  `cbor:"header"`
	Binary     bool    `cbor:"binary"`
	ID         string  `cbor:"id,omitempty"`
	Resolution float64 `cbor:"resolution"`
	Data       []byte  `cbor:"data,omitempty"`
}

// IsZero reports whether the map is unset.
func (m Octomap) IsZero() bool {
	return m.Header.IsZero() && !m.Binary && m.ID == "" && m.Resolution == 0 && len(m.Data) == 0
}

// OctomapWithPose places an [Octomap] in a frame.
type OctomapWithPose struct {
	Header  Header  `cbor:"header"`
	Origin  Pose    `cbor:"origin"`
	Octomap Octomap `cbor:"octomap"`
}

// IsZero reports whether the posed map is unset.
func (m OctomapWithPose) IsZero() bool {
	return m.Header.IsZero() && m.Origin == (Pose{}) && m.Octomap.IsZero()
}

// PlanningSceneWorld is the environment around the robot: collision
// objects and an optional occupancy map.
type PlanningSceneWorld struct {
	CollisionObjects []CollisionObject `cbor:"collision_objects,omitempty"`
	Octomap          OctomapWithPose   `cbor:"octomap"`
}

// IsZero reports whether the world is empty.
func (w PlanningSceneWorld) IsZero() bool {
	return len(w.CollisionObjects) == 0 && w.Octomap.IsZero()
}
