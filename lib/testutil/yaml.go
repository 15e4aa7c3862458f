// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// ParseNode parses a YAML fixture and returns the root content node
// (the child of the document node).
//
//	node := testutil.ParseNode(t, `
//	    position: [1, 2, 3]
//	    orientation: [0, 0, 0, 1]
//	`)
func ParseNode(t TB, text string) *yaml.Node {
	t.Helper()
	var document yaml.Node
	if err := yaml.Unmarshal([]byte(Dedent(text)), &document); err != nil {
		t.Fatalf("parsing fixture: %v\n%s", err, text)
	}
	if document.Kind != yaml.DocumentNode || len(document.Content) != 1 {
		t.Fatalf("fixture is not a single YAML document:\n%s", text)
	}
	return document.Content[0]
}

// RenderNode formats node as YAML text with two-space indentation.
func RenderNode(t TB, node *yaml.Node) string {
	t.Helper()
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		t.Fatalf("rendering node: %v", err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("rendering node: %v", err)
	}
	return buffer.String()
}

// Dedent removes the longest run of leading spaces and tabs common to
// every non-blank line, and a leading newline if present.
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	margin := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return text
	}
	for i, line := range lines {
		if len(line) >= margin {
			lines[i] = line[margin:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
