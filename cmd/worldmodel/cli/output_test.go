// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	// A buffer is never a terminal, so auto selects JSON.
	for _, format := range []string{LogFormatAuto, LogFormatJSON} {
		var buffer bytes.Buffer
		logger, err := NewLogger(&buffer, format, slog.LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger(%s): %v", format, err)
		}
		logger.Info("snapshot written", "kind", "PlanningScene")
		var record map[string]any
		if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
			t.Fatalf("%s format did not produce JSON: %q", format, buffer.String())
		}
		if record["kind"] != "PlanningScene" {
			t.Errorf("%s record = %v", format, record)
		}
	}

	var buffer bytes.Buffer
	logger, err := NewLogger(&buffer, LogFormatText, slog.LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger(text): %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept", "file", "scene.yaml")
	output := buffer.String()
	if strings.Contains(output, "dropped") {
		t.Errorf("info record logged at warn level: %q", output)
	}
	if !strings.Contains(output, "msg=kept") || !strings.Contains(output, "file=scene.yaml") {
		t.Errorf("text output = %q", output)
	}

	if _, err := NewLogger(&buffer, "xml", slog.LevelInfo); err == nil {
		t.Error("NewLogger accepted an unknown format")
	}
}

func TestParseColorMode(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer

	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{mode: ColorAuto, want: false},
		{mode: ColorAlways, want: true},
		{mode: ColorNever, want: false},
		{mode: "sometimes", wantErr: true},
	}
	for _, test := range tests {
		got, err := ParseColorMode(test.mode, &buffer)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v, wantErr %v", test.mode, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", test.mode, got, test.want)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()
	text := "frame_id: world\nposition: [1, 2, 3]\n"

	var plain bytes.Buffer
	if err := WriteYAML(&plain, text, false); err != nil {
		t.Fatalf("WriteYAML(plain): %v", err)
	}
	if plain.String() != text {
		t.Errorf("plain output = %q, want %q", plain.String(), text)
	}

	var colored bytes.Buffer
	if err := WriteYAML(&colored, text, true); err != nil {
		t.Fatalf("WriteYAML(color): %v", err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape sequences: %q", colored.String())
	}
	if !strings.Contains(colored.String(), "frame_id") {
		t.Errorf("colored output lost content: %q", colored.String())
	}
}
