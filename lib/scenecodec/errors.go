// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenecodec

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrorKind classifies a decode failure.
type ErrorKind uint8

const (
	// MissingField means a required mapping key is absent.
	MissingField ErrorKind = iota + 1

	// TypeMismatch means a node is present but has the wrong shape
	// (a sequence where a number was expected, a negative index, ...).
	TypeMismatch

	// ArityMismatch means a fixed-length tuple or a parallel array
	// has the wrong number of elements.
	ArityMismatch

	// UnknownEnum means an enum token is not recognized.
	UnknownEnum

	// ShapeMismatch means a matrix is not square or its dimensions
	// disagree with its entry names.
	ShapeMismatch

	// PayloadCorrupt means embedded binary data cannot be restored
	// to bytes.
	PayloadCorrupt

	// ExcessiveAliasing means the document's aliases expand to far
	// more nodes than it contains, or an alias refers to a node that
	// contains it.
	ExcessiveAliasing
)

// String returns the human-readable name of the kind.
func (kind ErrorKind) String() string {
	switch kind {
	case MissingField:
		return "missing field"
	case TypeMismatch:
		return "type mismatch"
	case ArityMismatch:
		return "arity mismatch"
	case UnknownEnum:
		return "unknown enum"
	case ShapeMismatch:
		return "shape mismatch"
	case PayloadCorrupt:
		return "payload corrupt"
	case ExcessiveAliasing:
		return "excessive aliasing"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(kind))
	}
}

// FormatError is a decode failure. Path is the structural location of
// the offending node, outermost first: the entity kind, then field
// names and sequence indices ("PlanningScene", "world",
// "collision_objects", "[0]", "id"). Line and Column locate the node
// in the source text when the document was parsed from text (both are
// zero for trees built in memory).
type FormatError struct {
	Kind   ErrorKind
	Path   []string
	Line   int
	Column int
	Detail string
}

// Error formats the error with its path and source position.
func (e *FormatError) Error() string {
	var builder strings.Builder
	builder.WriteString("scenecodec: ")
	if path := e.PathString(); path != "" {
		builder.WriteString(path)
		builder.WriteString(": ")
	}
	builder.WriteString(e.Kind.String())
	if e.Detail != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Detail)
	}
	if e.Line > 0 {
		fmt.Fprintf(&builder, " (line %d, column %d)", e.Line, e.Column)
	}
	return builder.String()
}

// PathString joins Path with dots, attaching index segments directly
// to the preceding field: "world.collision_objects[0].id".
func (e *FormatError) PathString() string {
	var builder strings.Builder
	for i, segment := range e.Path {
		if i > 0 && !strings.HasPrefix(segment, "[") {
			builder.WriteByte('.')
		}
		builder.WriteString(segment)
	}
	return builder.String()
}

// Is reports whether target is a FormatError of the same kind, so
// errors.Is(err, scenecodec.ErrArityMismatch) matches any arity
// failure regardless of path.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is. They carry no path.
var (
	ErrMissingField   = &FormatError{Kind: MissingField}
	ErrTypeMismatch   = &FormatError{Kind: TypeMismatch}
	ErrArityMismatch  = &FormatError{Kind: ArityMismatch}
	ErrUnknownEnum    = &FormatError{Kind: UnknownEnum}
	ErrShapeMismatch  = &FormatError{Kind: ShapeMismatch}
	ErrPayloadCorrupt = &FormatError{Kind: PayloadCorrupt}

	ErrExcessiveAliasing = &FormatError{Kind: ExcessiveAliasing}
)

// ErrUnregistered is returned by the registry entry points for values
// and kinds outside the closed world-model entity set.
var ErrUnregistered = errors.New("scenecodec: not a registered world-model entity")

// failAt builds a FormatError positioned at node. The path is filled
// in by the callers as the error propagates.
func failAt(node *yaml.Node, kind ErrorKind, format string, args ...any) *FormatError {
	err := &FormatError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
	if node != nil {
		err.Line, err.Column = node.Line, node.Column
	}
	return err
}

// within prefixes segment to the path of a FormatError. Errors of any
// other type pass through unchanged.
func within(err error, segment string) error {
	if err == nil {
		return nil
	}
	var formatError *FormatError
	if errors.As(err, &formatError) {
		formatError.Path = append([]string{segment}, formatError.Path...)
	}
	return err
}

func index(i int) string {
	return fmt.Sprintf("[%d]", i)
}
