// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Color modes accepted by [ParseColorMode].
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ParseColorMode reports whether output to w should be highlighted
// under the named mode.
func ParseColorMode(mode string, w io.Writer) (bool, error) {
	switch mode {
	case ColorAuto:
		return IsTerminal(w), nil
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want %s, %s, or %s)", mode, ColorAuto, ColorAlways, ColorNever)
	}
}

// WriteYAML writes YAML text to w, syntax-highlighted for a 256-color
// terminal when color is set. Highlighting failures fall back to the
// plain text.
func WriteYAML(w io.Writer, text string, color bool) error {
	if color {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, text, "yaml", "terminal256", "monokai"); err == nil {
			_, err := io.WriteString(w, buffer.String())
			return err
		}
	}
	_, err := io.WriteString(w, text)
	return err
}
