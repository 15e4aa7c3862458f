// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Syntax selects the text syntax of a document.
type Syntax string

const (
	// YAML is YAML 1.2 as parsed by gopkg.in/yaml.v3.
	YAML Syntax = "yaml"

	// JSONC is JSON with comments and trailing commas.
	JSONC Syntax = "jsonc"
)

// ParseSyntax parses a syntax name. "json" is accepted as JSONC.
func ParseSyntax(name string) (Syntax, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return YAML, nil
	case "jsonc", "json":
		return JSONC, nil
	default:
		return "", fmt.Errorf("unknown document syntax %q (want yaml or jsonc)", name)
	}
}

// SyntaxFromPath picks JSONC for .json and .jsonc files and YAML for
// everything else.
func SyntaxFromPath(path string) Syntax {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return JSONC
	default:
		return YAML
	}
}

// ErrEmpty is returned by [Parse] for text that holds no document.
var ErrEmpty = errors.New("document: no content")

// ErrNotFound is wrapped by [Locate] when a path segment does not
// match.
var ErrNotFound = errors.New("document: path not found")

// Parse parses data and returns the root content node of its first
// document.
func Parse(data []byte, syntax Syntax) (*yaml.Node, error) {
	switch syntax {
	case YAML:
	case JSONC:
		data = jsonc.ToJSON(data)
	default:
		return nil, fmt.Errorf("parsing document: unknown syntax %q", syntax)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", syntax, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrEmpty
	}
	return root.Content[0], nil
}

// ReadFile reads and parses a document, choosing the syntax from the
// file extension.
func ReadFile(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	node, err := Parse(data, SyntaxFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

// DefaultIndent is the indentation used when Format is given a
// non-positive indent.
const DefaultIndent = 2

// Format renders node as YAML text.
func Format(node *yaml.Node, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = DefaultIndent
	}
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(indent)
	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("formatting document: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("formatting document: %w", err)
	}
	return buffer.Bytes(), nil
}

// Locate follows path from root and returns the node it names. Each
// segment is a mapping key, or a decimal index when the current node
// is a sequence. Aliases are followed. An empty path returns root.
func Locate(root *yaml.Node, path ...string) (*yaml.Node, error) {
	current := unwrap(root)
	for depth, segment := range path {
		if current == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(path[:depth+1], "."))
		}
		var next *yaml.Node
		switch current.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(current.Content); i += 2 {
				if key := unwrap(current.Content[i]); key != nil && key.Value == segment {
					next = current.Content[i+1]
					break
				}
			}
		case yaml.SequenceNode:
			position, err := strconv.Atoi(segment)
			if err == nil && position >= 0 && position < len(current.Content) {
				next = current.Content[position]
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(path[:depth+1], "."))
		}
		current = unwrap(next)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: empty node", ErrNotFound)
	}
	return current, nil
}

// SplitPath splits a dotted path ("scene.world") into segments. An
// empty string yields no segments.
func SplitPath(dotted string) []string {
	if dotted == "" {
		return nil
	}
	return strings.Split(dotted, ".")
}

func unwrap(node *yaml.Node) *yaml.Node {
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
			return node
		}
	}
	return nil
}
