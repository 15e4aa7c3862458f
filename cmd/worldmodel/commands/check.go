// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/cli"
	"github.com/bureau-foundation/worldmodel/lib/scenecodec"
)

func checkCommand(env Environment) *cli.Command {
	var flags documentFlags

	return &cli.Command{
		Name:    "check",
		Summary: "Validate documents against a record kind",
		Description: `Decode each FILE as the given record kind and report the first
problem found in each, with its path inside the record and its line
and column. Prints one line per file. Exits 1 if any file is invalid.`,
		Usage: "worldmodel check --kind KIND [flags] FILE...",
		Examples: []cli.Example{
			{
				Description: "Validate a planning scene",
				Command:     "worldmodel check --kind PlanningScene scene.yaml",
			},
			{
				Description: "Validate the world nested under a top-level key",
				Command:     "worldmodel check --kind PlanningSceneWorld --at scene.world scene.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("check", pflag.ContinueOnError)
			flags.register(flagSet, true)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one FILE argument is required")
			}
			if _, err := parseKind(flags.kind); err != nil {
				return err
			}
			session, err := env.openSession(flags.configPath, "check")
			if err != nil {
				return err
			}

			failures := 0
			for _, path := range args {
				kind, _, err := flags.decodeDocument(env, path)
				if err != nil {
					failures++
					fmt.Fprintf(env.Stdout, "%s: %v\n", path, err)
					var formatError *scenecodec.FormatError
					if errors.As(err, &formatError) {
						session.logger.Debug("document invalid",
							"file", path,
							"error_kind", formatError.Kind.String(),
							"path", formatError.PathString(),
							"line", formatError.Line,
							"column", formatError.Column,
						)
					}
					continue
				}
				fmt.Fprintf(env.Stdout, "%s: ok (%s)\n", path, kind)
			}

			if failures > 0 {
				session.logger.Info("check failed", "files", len(args), "invalid", failures)
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
