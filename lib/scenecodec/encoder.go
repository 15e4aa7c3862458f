// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/payload"
)

// Encoder holds the options that affect encoding. The zero value is
// ready to use and writes payloads uncompressed. An Encoder is
// read-only during encoding and may be shared between goroutines.
type Encoder struct {
	// PayloadCompression compresses octomap payloads into a verified
	// envelope. Payloads that do not shrink are written raw.
	PayloadCompression payload.Compression

	// Logger receives debug records about encoding decisions. Nil
	// discards them.
	Logger *slog.Logger
}

// Encode converts a registered world-model record (a value or a
// pointer to one) to a fresh document node. It returns
// ErrUnregistered for any other type.
func (options Encoder) Encode(value any) (*yaml.Node, error) {
	registered, value, err := defaultRegistry.forValue(value)
	if err != nil {
		return nil, err
	}
	return registered.encode(options.state(), value), nil
}

// EncodeKind encodes value as the named kind. value must have the Go
// type registered for kind.
func (options Encoder) EncodeKind(kind Kind, value any) (*yaml.Node, error) {
	registered, value, err := defaultRegistry.forKindValue(kind, value)
	if err != nil {
		return nil, err
	}
	return registered.encode(options.state(), value), nil
}

func (options Encoder) state() *encoder {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &encoder{compression: options.PayloadCompression, logger: logger}
}

// encoder is the per-call encoding state threaded through every
// per-entity encode method.
type encoder struct {
	compression payload.Compression
	logger      *slog.Logger
}

// defaultEncoder backs the package-level functions.
var defaultEncoder = Encoder{}
