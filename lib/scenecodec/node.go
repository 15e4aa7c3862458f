// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// resolve unwraps document and alias nodes. A nil or null node
// resolves to nil, so absent keys and explicit nulls are treated alike.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
				return nil
			}
			return node
		}
	}
	return nil
}

func describe(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar " + node.ShortTag()
	default:
		return "node"
	}
}

// expectMapping returns node resolved, or a TypeMismatch if it is not
// a mapping. The caller has already established that node is present.
func expectMapping(node *yaml.Node) (*yaml.Node, error) {
	resolved := resolve(node)
	if resolved == nil || resolved.Kind != yaml.MappingNode {
		return nil, mismatch(node, "mapping")
	}
	return resolved, nil
}

func mismatch(node *yaml.Node, want string) *FormatError {
	resolved := resolve(node)
	if resolved == nil {
		return failAt(node, TypeMismatch, "want %s, got null", want)
	}
	return failAt(resolved, TypeMismatch, "want %s, got %s", want, describe(resolved))
}

// lookup returns the value for key in a resolved mapping, or nil when
// the key is absent or null. Keys match exactly.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if keyNode := resolve(mapping.Content[i]); keyNode != nil && keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return resolve(mapping.Content[i+1])
		}
	}
	return nil
}

// required decodes mapping[key], failing with MissingField when absent.
func required[T any](mapping *yaml.Node, key string, decode func(*yaml.Node) (T, error)) (T, error) {
	value := lookup(mapping, key)
	if value == nil {
		var zero T
		return zero, within(failAt(mapping, MissingField, "%q is required", key), key)
	}
	result, err := decode(value)
	return result, within(err, key)
}

// optional decodes mapping[key], yielding the zero value when absent.
func optional[T any](mapping *yaml.Node, key string, decode func(*yaml.Node) (T, error)) (T, error) {
	value := lookup(mapping, key)
	if value == nil {
		var zero T
		return zero, nil
	}
	result, err := decode(value)
	return result, within(err, key)
}

// sequenceOf lifts an element decoder to a sequence decoder. Empty
// sequences decode to nil.
func sequenceOf[T any](decode func(*yaml.Node) (T, error)) func(*yaml.Node) ([]T, error) {
	return func(node *yaml.Node) ([]T, error) {
		resolved := resolve(node)
		if resolved == nil {
			return nil, nil
		}
		if resolved.Kind != yaml.SequenceNode {
			return nil, mismatch(node, "sequence")
		}
		if len(resolved.Content) == 0 {
			return nil, nil
		}
		result := make([]T, len(resolved.Content))
		for i, item := range resolved.Content {
			value, err := decode(item)
			if err != nil {
				return nil, within(err, index(i))
			}
			result[i] = value
		}
		return result, nil
	}
}

// scalar returns the resolved scalar node carrying one of the given
// short tags.
func scalar(node *yaml.Node, want string, tags ...string) (*yaml.Node, error) {
	resolved := resolve(node)
	if resolved == nil || resolved.Kind != yaml.ScalarNode {
		return nil, mismatch(node, want)
	}
	tag := resolved.ShortTag()
	for _, allowed := range tags {
		if tag == allowed {
			return resolved, nil
		}
	}
	return nil, mismatch(node, want)
}

func decodeFloat(node *yaml.Node) (float64, error) {
	resolved, err := scalar(node, "number", "!!float", "!!int")
	if err != nil {
		return 0, err
	}
	var value float64
	if err := resolved.Decode(&value); err != nil {
		return 0, failAt(resolved, TypeMismatch, "%v", err)
	}
	return value, nil
}

func decodeUint32(node *yaml.Node) (uint32, error) {
	resolved, err := scalar(node, "unsigned integer", "!!int")
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(strings.ReplaceAll(resolved.Value, "_", ""), 0, 32)
	if err != nil {
		return 0, failAt(resolved, TypeMismatch, "want unsigned 32-bit integer, got %q", resolved.Value)
	}
	return uint32(value), nil
}

func decodeInt32(node *yaml.Node) (int32, error) {
	resolved, err := scalar(node, "integer", "!!int")
	if err != nil {
		return 0, err
	}
	var value int32
	if err := resolved.Decode(&value); err != nil {
		return 0, failAt(resolved, TypeMismatch, "want 32-bit integer, got %q", resolved.Value)
	}
	return value, nil
}

func decodeInt(node *yaml.Node) (int, error) {
	resolved, err := scalar(node, "integer", "!!int")
	if err != nil {
		return 0, err
	}
	var value int
	if err := resolved.Decode(&value); err != nil {
		return 0, failAt(resolved, TypeMismatch, "want integer, got %q", resolved.Value)
	}
	return value, nil
}

func decodeBool(node *yaml.Node) (bool, error) {
	resolved, err := scalar(node, "boolean", "!!bool")
	if err != nil {
		return false, err
	}
	var value bool
	if err := resolved.Decode(&value); err != nil {
		return false, failAt(resolved, TypeMismatch, "%v", err)
	}
	return value, nil
}

// decodeString accepts any non-null scalar: identifiers such as
// "123" or "true" written without quotes are still names.
func decodeString(node *yaml.Node) (string, error) {
	resolved := resolve(node)
	if resolved == nil || resolved.Kind != yaml.ScalarNode {
		return "", mismatch(node, "string")
	}
	return resolved.Value, nil
}

var (
	decodeFloats  = sequenceOf(decodeFloat)
	decodeStrings = sequenceOf(decodeString)
)

// Encoding helpers. Every encode allocates fresh nodes; nothing is
// shared between trees.

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newSequence(flow bool) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if flow {
		node.Style = yaml.FlowStyle
	}
	return node
}

func setField(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

// formatFloat produces the shortest text that parses back to exactly
// v, using YAML's spellings for the non-finite values.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// floatNode tags integral values as !!int so the emitter writes "1"
// rather than "!!float 1"; decodeFloat accepts both tags. Negative
// zero is written "-0.0": as an integer it would lose its sign.
func floatNode(v float64) *yaml.Node {
	text := formatFloat(v)
	if text == "-0" {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-0.0"}
	}
	tag := "!!float"
	if !strings.ContainsAny(text, ".eEn") {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}

func intNode(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

func uintNode(v uint64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(v, 10)}
}

func boolNode(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

func stringNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func floatsNode(values []float64) *yaml.Node {
	node := newSequence(true)
	for _, v := range values {
		node.Content = append(node.Content, floatNode(v))
	}
	return node
}

func stringsNode(values []string) *yaml.Node {
	node := newSequence(true)
	for _, v := range values {
		node.Content = append(node.Content, stringNode(v))
	}
	return node
}

// sequenceNode encodes each element with encode into a block sequence.
func sequenceNode[T any](values []T, encode func(T) *yaml.Node) *yaml.Node {
	node := newSequence(false)
	for _, value := range values {
		node.Content = append(node.Content, encode(value))
	}
	return node
}
