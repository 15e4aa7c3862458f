// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDedent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already flush", "a: 1\nb: 2\n", "a: 1\nb: 2\n"},
		{"common margin", "\n    a: 1\n    b:\n      c: 2\n", "a: 1\nb:\n  c: 2\n"},
		{"tabs", "\n\t\ta: 1\n\t\tb: 2\n\t", "a: 1\nb: 2\n"},
		{"blank lines ignored", "\n    a: 1\n\n    b: 2\n", "a: 1\n\nb: 2\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := Dedent(test.input); got != test.want {
				t.Errorf("Dedent(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestParseNodeReturnsRootContent(t *testing.T) {
	t.Parallel()

	node := ParseNode(t, `
		frame_id: world
		seq: 3
	`)
	if node.Kind != yaml.MappingNode {
		t.Fatalf("Kind = %v, want mapping", node.Kind)
	}
	if len(node.Content) != 4 || node.Content[1].Value != "world" {
		t.Errorf("unexpected content: %+v", node.Content)
	}
	if node.Line != 1 {
		t.Errorf("Line = %d, want 1 after dedent", node.Line)
	}
}

func TestRenderNodeRoundTrip(t *testing.T) {
	t.Parallel()

	node := ParseNode(t, `
		name: scene
		values: [1, 2, 3]
	`)
	if got, want := RenderNode(t, node), "name: scene\nvalues: [1, 2, 3]\n"; got != want {
		t.Errorf("RenderNode = %q, want %q", got, want)
	}
}
