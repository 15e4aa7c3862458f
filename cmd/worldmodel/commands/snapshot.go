// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/cli"
	"github.com/bureau-foundation/worldmodel/lib/codec"
	"github.com/bureau-foundation/worldmodel/lib/contenthash"
)

// snapshotExtension is appended to snapshots written to the configured
// snapshot directory.
const snapshotExtension = ".wmsnap"

func snapshotCommand(env Environment) *cli.Command {
	var (
		input      documentFlags
		outputPath string
	)

	return &cli.Command{
		Name:    "snapshot",
		Summary: "Freeze a document into a verified binary snapshot",
		Description: `Decode FILE as the given record kind and write it as a CBOR
snapshot: a versioned envelope holding the kind, the deterministic
CBOR body, and a BLAKE3 digest of the body. Without --output the
snapshot goes to the configured snapshot directory, named after FILE.
Prints the path written.`,
		Usage: "worldmodel snapshot --kind KIND [flags] FILE",
		Examples: []cli.Example{
			{
				Description: "Snapshot a scene next to it",
				Command:     "worldmodel snapshot --kind PlanningScene -o scene.wmsnap scene.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("snapshot", pflag.ContinueOnError)
			input.register(flagSet, true)
			flagSet.StringVarP(&outputPath, "output", "o", "", "snapshot path (default: snapshot directory from config)")
			return flagSet
		},
		Run: func(args []string) error {
			path, err := singleFile(args)
			if err != nil {
				return err
			}
			session, err := env.openSession(input.configPath, "snapshot")
			if err != nil {
				return err
			}

			kind, value, err := input.decodeDocument(env, path)
			if err != nil {
				return err
			}
			data, err := codec.Seal(string(kind), value)
			if err != nil {
				return err
			}

			destination := outputPath
			if destination == "" {
				if path == stdinPath {
					return fmt.Errorf("--output is required when reading standard input")
				}
				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				destination = filepath.Join(session.config.SnapshotDirectory(), base+snapshotExtension)
			}
			if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
				return fmt.Errorf("creating snapshot directory: %w", err)
			}
			if err := os.WriteFile(destination, data, 0o644); err != nil {
				return fmt.Errorf("writing snapshot: %w", err)
			}

			envelope, err := codec.ReadEnvelope(data)
			if err != nil {
				return err
			}
			var digest contenthash.Hash
			copy(digest[:], envelope.Digest)
			session.logger.Info("snapshot written",
				"path", destination,
				"kind", string(kind),
				"bytes", len(data),
				"digest", digest.String(),
			)
			fmt.Fprintln(env.Stdout, destination)
			return nil
		},
	}
}
