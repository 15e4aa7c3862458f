// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/cli"
	"github.com/bureau-foundation/worldmodel/lib/document"
)

func fmtCommand(env Environment) *cli.Command {
	var (
		input  documentFlags
		output outputFlags
		write  bool
	)

	return &cli.Command{
		Name:    "fmt",
		Summary: "Re-encode a document in canonical form",
		Description: `Decode FILE as the given record kind and print its canonical
encoding: fixed key order, zero-valued optional fields omitted, and
octomap payloads rewritten with the configured compression. With
--write the file is replaced in place.`,
		Usage: "worldmodel fmt --kind KIND [flags] FILE",
		Examples: []cli.Example{
			{
				Description: "Print the canonical form of a scene",
				Command:     "worldmodel fmt --kind PlanningScene scene.yaml",
			},
			{
				Description: "Compress octomap payloads with zstd and rewrite the file",
				Command:     "worldmodel fmt --kind PlanningSceneWorld --compress zstd --write world.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fmt", pflag.ContinueOnError)
			input.register(flagSet, true)
			output.register(flagSet)
			flagSet.BoolVarP(&write, "write", "w", false, "replace FILE with the canonical form")
			return flagSet
		},
		Run: func(args []string) error {
			path, err := singleFile(args)
			if err != nil {
				return err
			}
			if write && path == stdinPath {
				return fmt.Errorf("--write cannot be used with standard input")
			}
			if write && input.at != "" {
				return fmt.Errorf("--write cannot be combined with --at")
			}
			if write {
				syntax, err := input.syntaxFor(path)
				if err != nil {
					return err
				}
				if syntax != document.YAML {
					return fmt.Errorf("--write only rewrites YAML documents; %s is %s", path, syntax)
				}
			}
			session, err := env.openSession(input.configPath, "fmt")
			if err != nil {
				return err
			}

			kind, value, err := input.decodeDocument(env, path)
			if err != nil {
				return err
			}
			text, err := output.render(session, kind, value)
			if err != nil {
				return err
			}

			if !write {
				return output.print(session, text)
			}

			existing, err := os.ReadFile(path)
			if err == nil && bytes.Equal(existing, text) {
				session.logger.Debug("already canonical", "file", path)
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, text, info.Mode().Perm()); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			session.logger.Info("rewrote document", "file", path, "kind", string(kind))
			return nil
		},
	}
}
