// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"gopkg.in/yaml.v3"
)

// Decoders follow aliases wherever they appear, so a short document
// whose aliases nest collections inside collections can expand to an
// arbitrarily large record. Before decoding, the tree is walked with
// aliases expanded and the walk stops once too large a share of the
// visited nodes was reached through an alias. The thresholds are the
// ones yaml.v3 applies when it decodes into Go values.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)

	// Documents smaller than these are never rejected for aliasing.
	aliasMinimumVisited = 1000
	aliasMinimumAliased = 100
)

// allowedAliasRatio is the largest share of aliased nodes tolerated
// after visited nodes: permissive for small documents, strict for
// large ones.
func allowedAliasRatio(visited int) float64 {
	switch {
	case visited <= aliasRatioRangeLow:
		return 0.99
	case visited >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(visited-aliasRatioRangeLow)/aliasRatioRange)
	}
}

// expansion counts the nodes a decode of the tree would visit.
type expansion struct {
	visited int
	aliased int

	// active holds the alias targets on the current walk path. An
	// alias to one of them would make decoding recurse forever.
	active map[*yaml.Node]bool
}

// checkAliasExpansion returns an ExcessiveAliasing error when decoding
// node would expand aliases far beyond the size of the document.
func checkAliasExpansion(node *yaml.Node) error {
	walk := expansion{active: make(map[*yaml.Node]bool)}
	return walk.visit(node, false)
}

func (walk *expansion) visit(node *yaml.Node, underAlias bool) error {
	if node == nil {
		return nil
	}
	walk.visited++
	if underAlias {
		walk.aliased++
	}
	if walk.aliased > aliasMinimumAliased && walk.visited > aliasMinimumVisited &&
		float64(walk.aliased)/float64(walk.visited) > allowedAliasRatio(walk.visited) {
		return failAt(node, ExcessiveAliasing, "aliases expand to more than %d nodes (%d reached through an alias)",
			walk.visited, walk.aliased)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if err := walk.visit(child, underAlias); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		target := node.Alias
		if walk.active[target] {
			return failAt(node, ExcessiveAliasing, "alias *%s refers to a node that contains it", node.Value)
		}
		walk.active[target] = true
		err := walk.visit(target, true)
		delete(walk.active, target)
		return err
	case yaml.SequenceNode:
		for i, item := range node.Content {
			if err := walk.visit(item, underAlias); err != nil {
				return within(err, index(i))
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			segment := "?"
			if key := resolve(node.Content[i]); key != nil && key.Kind == yaml.ScalarNode {
				segment = key.Value
			}
			if err := walk.visit(node.Content[i+1], underAlias); err != nil {
				return within(err, segment)
			}
		}
	}
	return nil
}
