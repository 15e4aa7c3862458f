// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/cli"
	"github.com/bureau-foundation/worldmodel/lib/codec"
	"github.com/bureau-foundation/worldmodel/lib/contenthash"
	"github.com/bureau-foundation/worldmodel/lib/scenecodec"
)

func restoreCommand(env Environment) *cli.Command {
	var (
		configPath string
		kind       string
		diagnose   bool
		output     outputFlags
	)

	return &cli.Command{
		Name:    "restore",
		Summary: "Turn a snapshot back into a YAML document",
		Description: `Verify a snapshot written by 'worldmodel snapshot' and print the
record it holds as a canonical YAML document. With --diagnose, print
the envelope metadata and the CBOR diagnostic notation of the body
instead of decoding it.`,
		Usage: "worldmodel restore [flags] SNAPSHOT",
		Examples: []cli.Example{
			{
				Description: "Restore a scene snapshot",
				Command:     "worldmodel restore scene.wmsnap > scene.yaml",
			},
			{
				Description: "Inspect a snapshot without decoding it",
				Command:     "worldmodel restore --diagnose scene.wmsnap",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("restore", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "configuration file (default $WORLDMODEL_CONFIG)")
			flagSet.StringVarP(&kind, "kind", "k", "", "expected record kind; empty accepts any")
			flagSet.BoolVar(&diagnose, "diagnose", false, "print CBOR diagnostic notation instead of YAML")
			output.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			path, err := singleFile(args)
			if err != nil {
				return err
			}
			session, err := env.openSession(configPath, "restore")
			if err != nil {
				return err
			}

			var data []byte
			if path == stdinPath {
				data, err = io.ReadAll(env.Stdin)
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			envelope, err := codec.ReadEnvelope(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if kind != "" && envelope.Kind != kind {
				return fmt.Errorf("%s: %w: snapshot holds %s, want %s", path, codec.ErrKindMismatch, envelope.Kind, kind)
			}
			var digest contenthash.Hash
			copy(digest[:], envelope.Digest)
			session.logger.Debug("snapshot verified",
				"path", path,
				"kind", envelope.Kind,
				"digest", digest.String(),
			)

			if diagnose {
				notation, err := codec.Diagnose(envelope.Body)
				if err != nil {
					return err
				}
				fmt.Fprintf(env.Stdout, "version: %d\nkind: %s\ndigest: %s\nbody: %s\n",
					envelope.Version, envelope.Kind, digest, notation)
				return nil
			}

			recordKind := scenecodec.Kind(envelope.Kind)
			target, err := scenecodec.New(recordKind)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := codec.Unmarshal(envelope.Body, target); err != nil {
				return fmt.Errorf("%s: decoding %s body: %w", path, envelope.Kind, err)
			}
			text, err := output.render(session, recordKind, target)
			if err != nil {
				return err
			}
			return output.print(session, text)
		},
	}
}
