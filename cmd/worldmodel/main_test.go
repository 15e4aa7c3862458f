// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/commands"
	"github.com/bureau-foundation/worldmodel/lib/testutil"
)

func runWith(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, commands.Environment{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return code, stdout.String(), stderr.String()
}

func TestRunExitCodes(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runWith("kinds")
	if code != 0 || !strings.Contains(stdout, "PlanningScene") {
		t.Errorf("kinds: code %d, stdout %q", code, stdout)
	}

	code, _, stderr := runWith("chek")
	if code != 1 || !strings.Contains(stderr, `error: unknown command "chek" (did you mean "check"?)`) {
		t.Errorf("unknown command: code %d, stderr %q", code, stderr)
	}

	code, _, stderr = runWith("--help")
	if code != 0 || !strings.Contains(stderr, "Commands:") {
		t.Errorf("help: code %d, stderr %q", code, stderr)
	}
}

func TestRunInvalidDocumentSkipsErrorLine(t *testing.T) {
	t.Parallel()
	configPath := testutil.WriteFile(t, "worldmodel.yaml", `
		logging:
		  format: json
	`)
	path := testutil.WriteFile(t, "pose.yaml", "position: [1, 2, 3]\n")

	code, stdout, stderr := runWith("check", "--config", configPath, "--kind", "Pose", path)
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(stdout, "missing field") {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.Contains(stderr, "error: ") {
		t.Errorf("stderr repeats the failure: %q", stderr)
	}
}
