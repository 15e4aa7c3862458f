// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/cli"
	"github.com/bureau-foundation/worldmodel/lib/config"
	"github.com/bureau-foundation/worldmodel/lib/document"
	"github.com/bureau-foundation/worldmodel/lib/payload"
	"github.com/bureau-foundation/worldmodel/lib/scenecodec"
)

// Environment is the process I/O a command tree runs against.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// stdinPath names standard input wherever a FILE argument is accepted.
const stdinPath = "-"

// session is the per-run state shared by a command's Run function.
type session struct {
	env    Environment
	config *config.Config
	logger *slog.Logger
}

// openSession resolves configuration and builds the logger.
func (env Environment) openSession(configPath, command string) (*session, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(env.Stderr, cfg.Logging.Format, level)
	if err != nil {
		return nil, err
	}
	return &session{
		env:    env,
		config: cfg,
		logger: logger.With("command", command),
	}, nil
}

// documentFlags are the flags shared by commands that read a document.
type documentFlags struct {
	configPath string
	kind       string
	at         string
	syntax     string
}

func (flags *documentFlags) register(flagSet *pflag.FlagSet, kindRequired bool) {
	kindHelp := "record kind of the document (see 'worldmodel kinds')"
	if !kindRequired {
		kindHelp = "expected record kind; empty accepts any"
	}
	flagSet.StringVar(&flags.configPath, "config", "", "configuration file (default $WORLDMODEL_CONFIG)")
	flagSet.StringVarP(&flags.kind, "kind", "k", "", kindHelp)
	flagSet.StringVar(&flags.at, "at", "", "dotted path of the record inside the document (e.g. scene.world)")
	flagSet.StringVar(&flags.syntax, "syntax", "", "input syntax: yaml or jsonc (default from file extension)")
}

// parseKind resolves a kind name, suggesting the closest registered
// kind on a miss.
func parseKind(name string) (scenecodec.Kind, error) {
	if name == "" {
		return "", fmt.Errorf("--kind is required")
	}
	kinds := scenecodec.Kinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		if string(kind) == name {
			return kind, nil
		}
		names[i] = string(kind)
	}
	if suggestion := cli.Suggest(name, names); suggestion != "" {
		return "", fmt.Errorf("unknown kind %q (did you mean %q?)", name, suggestion)
	}
	return "", fmt.Errorf("unknown kind %q; run 'worldmodel kinds' for the list", name)
}

// syntaxFor returns the --syntax flag when set, else the syntax
// implied by the file extension.
func (flags *documentFlags) syntaxFor(path string) (document.Syntax, error) {
	if flags.syntax != "" {
		return document.ParseSyntax(flags.syntax)
	}
	return document.SyntaxFromPath(path), nil
}

// readDocument reads the document at path (or standard input for "-")
// and returns the node named by the --at path.
func (flags *documentFlags) readDocument(env Environment, path string) (*yaml.Node, error) {
	syntax, err := flags.syntaxFor(path)
	if err != nil {
		return nil, err
	}

	var data []byte
	if path == stdinPath {
		data, err = io.ReadAll(env.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	root, err := document.Parse(data, syntax)
	if err != nil {
		return nil, err
	}
	return document.Locate(root, document.SplitPath(flags.at)...)
}

// decodeDocument reads path and decodes it as the flagged kind.
func (flags *documentFlags) decodeDocument(env Environment, path string) (scenecodec.Kind, any, error) {
	kind, err := parseKind(flags.kind)
	if err != nil {
		return "", nil, err
	}
	node, err := flags.readDocument(env, path)
	if err != nil {
		return "", nil, err
	}
	value, err := scenecodec.DecodeKind(kind, node)
	if err != nil {
		return "", nil, err
	}
	return kind, value, nil
}

// outputFlags are the flags shared by commands that print a document.
type outputFlags struct {
	compress string
	indent   int
	color    string
}

func (flags *outputFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.compress, "compress", "", "octomap payload compression: none, lz4, or zstd (default from config)")
	flagSet.IntVar(&flags.indent, "indent", 0, "spaces per indentation level (default from config)")
	flagSet.StringVar(&flags.color, "color", cli.ColorAuto, "highlight output: auto, always, or never")
}

// encoder builds the scenecodec encoder for this run, letting the
// --compress flag override the configured compression.
func (flags *outputFlags) encoder(session *session) (scenecodec.Encoder, error) {
	name := session.config.Encoding.PayloadCompression
	if flags.compress != "" {
		name = flags.compress
	}
	compression, err := payload.ParseCompression(name)
	if err != nil {
		return scenecodec.Encoder{}, err
	}
	return scenecodec.Encoder{
		PayloadCompression: compression,
		Logger:             session.logger,
	}, nil
}

func (flags *outputFlags) indentFor(session *session) int {
	if flags.indent > 0 {
		return flags.indent
	}
	return session.config.Encoding.Indent
}

// render encodes value and formats it as YAML text.
func (flags *outputFlags) render(session *session, kind scenecodec.Kind, value any) ([]byte, error) {
	encoder, err := flags.encoder(session)
	if err != nil {
		return nil, err
	}
	node, err := encoder.EncodeKind(kind, value)
	if err != nil {
		return nil, err
	}
	return document.Format(node, flags.indentFor(session))
}

// print writes rendered YAML to standard output, highlighted per
// --color.
func (flags *outputFlags) print(session *session, text []byte) error {
	color, err := cli.ParseColorMode(flags.color, session.env.Stdout)
	if err != nil {
		return err
	}
	return cli.WriteYAML(session.env.Stdout, string(text), color)
}

// singleFile checks that args names exactly one file.
func singleFile(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one FILE argument, got %d", len(args))
	}
	return args[0], nil
}
