// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/contenthash"
	"github.com/bureau-foundation/worldmodel/lib/payload"
	"github.com/bureau-foundation/worldmodel/lib/worldmodel"
)

// decodePayload restores octomap bytes from any of the accepted wire
// forms: a !!binary or plain base64 scalar, a legacy sequence of
// signed bytes, or a compressed envelope mapping.
func decodePayload(node *yaml.Node) ([]byte, error) {
	resolved := resolve(node)
	if resolved == nil {
		return nil, nil
	}
	var data []byte
	var err error
	switch resolved.Kind {
	case yaml.ScalarNode:
		data, err = decodeBase64(resolved)
	case yaml.SequenceNode:
		data, err = decodeByteSequence(resolved)
	case yaml.MappingNode:
		data, err = decodeEnvelope(resolved)
	default:
		return nil, mismatch(node, "payload")
	}
	if err != nil || len(data) == 0 {
		return nil, err
	}
	return data, nil
}

func decodeBase64(node *yaml.Node) ([]byte, error) {
	if tag := node.ShortTag(); tag != "!!binary" && tag != "!!str" {
		return nil, mismatch(node, "base64 string")
	}
	text := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, node.Value)
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, failAt(node, PayloadCorrupt, "invalid base64: %v", err)
	}
	return data, nil
}

// decodeByteSequence reads the legacy form, one integer per byte. Both
// the signed (-128..127) and unsigned (0..255) readings are accepted.
func decodeByteSequence(node *yaml.Node) ([]byte, error) {
	data := make([]byte, len(node.Content))
	for i, item := range node.Content {
		value, err := decodeInt(item)
		if err != nil {
			return nil, within(err, index(i))
		}
		if value < -128 || value > 255 {
			return nil, within(failAt(resolve(item), PayloadCorrupt, "%d is not a byte", value), index(i))
		}
		data[i] = byte(value)
	}
	return data, nil
}

func decodeCompression(node *yaml.Node) (payload.Compression, error) {
	token, err := decodeString(node)
	if err != nil {
		return 0, err
	}
	compression, err := payload.ParseCompression(token)
	if err != nil || compression == payload.None {
		return 0, failAt(resolve(node), PayloadCorrupt, "unsupported payload compression %q", token)
	}
	return compression, nil
}

func decodeDigest(node *yaml.Node) (contenthash.Hash, error) {
	text, err := decodeString(node)
	if err != nil {
		return contenthash.Hash{}, err
	}
	digest, err := contenthash.Parse(text)
	if err != nil {
		return contenthash.Hash{}, failAt(resolve(node), PayloadCorrupt, "%v", err)
	}
	return digest, nil
}

func decodeEnvelope(mapping *yaml.Node) ([]byte, error) {
	var envelope payload.Envelope
	var err error
	if envelope.Compression, err = required(mapping, "compression", decodeCompression); err != nil {
		return nil, err
	}
	if envelope.Size, err = required(mapping, "size", decodeInt); err != nil {
		return nil, err
	}
	if envelope.Digest, err = required(mapping, "digest", decodeDigest); err != nil {
		return nil, err
	}
	if envelope.Bytes, err = required(mapping, "bytes", decodeBase64); err != nil {
		return nil, err
	}
	data, err := envelope.Open()
	if err != nil {
		return nil, failAt(mapping, PayloadCorrupt, "%v", err)
	}
	return data, nil
}

func binaryNode(data []byte) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(data)}
}

// payloadNode writes data raw unless the encoder is configured to
// compress and the data actually shrinks.
func (e *encoder) payloadNode(data []byte) *yaml.Node {
	if e.compression == payload.None {
		return binaryNode(data)
	}
	envelope, err := payload.Seal(data, e.compression)
	if err != nil {
		if errors.Is(err, payload.ErrIncompressible) {
			e.logger.Debug("octomap payload incompressible, writing raw",
				"compression", e.compression, "size", len(data))
		} else {
			e.logger.Debug("octomap payload compression failed, writing raw",
				"compression", e.compression, "size", len(data), "error", err)
		}
		return binaryNode(data)
	}
	e.logger.Debug("octomap payload compressed",
		"compression", e.compression, "size", len(data), "compressed_size", len(envelope.Bytes))
	node := newMapping()
	setField(node, "compression", stringNode(envelope.Compression.String()))
	setField(node, "size", intNode(int64(envelope.Size)))
	setField(node, "digest", stringNode(envelope.Digest.String()))
	setField(node, "bytes", binaryNode(envelope.Bytes))
	return node
}

func decodeOctomap(node *yaml.Node) (worldmodel.Octomap, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.Octomap{}, err
	}
	var result worldmodel.Octomap
	if result.Header, err = optional(mapping, "header", decodeHeader); err != nil {
		return worldmodel.Octomap{}, err
	}
	if result.Binary, err = optional(mapping, "binary", decodeBool); err != nil {
		return worldmodel.Octomap{}, err
	}
	if result.ID, err = optional(mapping, "id", decodeString); err != nil {
		return worldmodel.Octomap{}, err
	}
	if result.Resolution, err = optional(mapping, "resolution", decodeFloat); err != nil {
		return worldmodel.Octomap{}, err
	}
	if result.Data, err = optional(mapping, "data", decodePayload); err != nil {
		return worldmodel.Octomap{}, err
	}
	return result, nil
}

func (e *encoder) octomap(m worldmodel.Octomap) *yaml.Node {
	node := newMapping()
	e.setHeader(node, m.Header)
	setField(node, "binary", boolNode(m.Binary))
	setField(node, "id", stringNode(m.ID))
	setField(node, "resolution", floatNode(m.Resolution))
	if len(m.Data) > 0 {
		setField(node, "data", e.payloadNode(m.Data))
	}
	return node
}

func decodeOctomapWithPose(node *yaml.Node) (worldmodel.OctomapWithPose, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.OctomapWithPose{}, err
	}
	var result worldmodel.OctomapWithPose
	if result.Header, err = optional(mapping, "header", decodeHeader); err != nil {
		return worldmodel.OctomapWithPose{}, err
	}
	if result.Origin, err = optional(mapping, "origin", decodePose); err != nil {
		return worldmodel.OctomapWithPose{}, err
	}
	if result.Octomap, err = optional(mapping, "octomap", decodeOctomap); err != nil {
		return worldmodel.OctomapWithPose{}, err
	}
	return result, nil
}

func (e *encoder) octomapWithPose(m worldmodel.OctomapWithPose) *yaml.Node {
	node := newMapping()
	e.setHeader(node, m.Header)
	setField(node, "origin", e.pose(m.Origin))
	setField(node, "octomap", e.octomap(m.Octomap))
	return node
}

var decodeCollisionObjects = sequenceOf(decodeCollisionObject)

func decodePlanningSceneWorld(node *yaml.Node) (worldmodel.PlanningSceneWorld, error) {
	mapping, err := expectMapping(node)
	if err != nil {
		return worldmodel.PlanningSceneWorld{}, err
	}
	var result worldmodel.PlanningSceneWorld
	if result.CollisionObjects, err = optional(mapping, "collision_objects", decodeCollisionObjects); err != nil {
		return worldmodel.PlanningSceneWorld{}, err
	}
	if result.Octomap, err = optional(mapping, "octomap", decodeOctomapWithPose); err != nil {
		return worldmodel.PlanningSceneWorld{}, err
	}
	return result, nil
}

func (e *encoder) planningSceneWorld(w worldmodel.PlanningSceneWorld) *yaml.Node {
	node := newMapping()
	setField(node, "collision_objects", sequenceNode(w.CollisionObjects, e.collisionObject))
	if !w.Octomap.IsZero() {
		setField(node, "octomap", e.octomapWithPose(w.Octomap))
	}
	return node
}
