// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/cli"
	"github.com/bureau-foundation/worldmodel/lib/scenecodec"
)

// Root returns the worldmodel command tree bound to env.
func Root(env Environment) *cli.Command {
	return &cli.Command{
		Name:   "worldmodel",
		Output: env.Stderr,
		Description: `Validate, canonicalize, and snapshot robot world-model documents:
planning scenes, collision objects, octomaps, joint states, and the
geometry records they are built from.`,
		Subcommands: []*cli.Command{
			checkCommand(env),
			fmtCommand(env),
			snapshotCommand(env),
			restoreCommand(env),
			kindsCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Validate a planning scene",
				Command:     "worldmodel check --kind PlanningScene scene.yaml",
			},
			{
				Description: "List the record kinds",
				Command:     "worldmodel kinds",
			},
		},
	}
}

func kindsCommand(env Environment) *cli.Command {
	return &cli.Command{
		Name:    "kinds",
		Summary: "List the record kinds, leaves first",
		Usage:   "worldmodel kinds",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("kinds takes no arguments")
			}
			for _, kind := range scenecodec.Kinds() {
				fmt.Fprintln(env.Stdout, kind)
			}
			return nil
		},
	}
}
