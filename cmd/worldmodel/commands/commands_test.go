// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/cli"
	"github.com/bureau-foundation/worldmodel/lib/codec"
	"github.com/bureau-foundation/worldmodel/lib/scenecodec"
	"github.com/bureau-foundation/worldmodel/lib/testutil"
)

const poseDocument = `
	position: {x: 1.0, y: 2, z: 3}
	orientation: {x: 0, y: 0, z: 0, w: 1}
`

const canonicalPose = "position: [1, 2, 3]\norientation: [0, 0, 0, 1]\n"

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the command tree with a debug-level JSON logging config
// unless args already name one.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	if len(args) > 1 && !containsFlag(args, "--config") {
		configPath := testutil.WriteFile(t, "worldmodel.yaml", `
			logging:
			  level: debug
			  format: json
		`)
		args = append([]string{args[0], "--config", configPath}, args[1:]...)
	}
	var stdout, stderr bytes.Buffer
	err := Root(Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}).Execute(args)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func containsFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag || strings.HasPrefix(arg, flag+"=") {
			return true
		}
	}
	return false
}

func TestKinds(t *testing.T) {
	t.Parallel()
	got := execute(t, "", "kinds")
	if got.err != nil {
		t.Fatalf("kinds: %v", got.err)
	}
	lines := strings.Split(strings.TrimSpace(got.stdout), "\n")
	kinds := scenecodec.Kinds()
	if len(lines) != len(kinds) {
		t.Fatalf("kinds printed %d lines, want %d", len(lines), len(kinds))
	}
	for i, kind := range kinds {
		if lines[i] != string(kind) {
			t.Errorf("line %d = %q, want %q", i, lines[i], kind)
		}
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	valid := testutil.WriteFile(t, "pose.yaml", poseDocument)
	invalid := testutil.WriteFile(t, "sphere.yaml", `
		type: sphere
		dimensions: [1, 2]
	`)

	got := execute(t, "", "check", "--kind", "Pose", valid)
	if got.err != nil {
		t.Fatalf("check valid: %v", got.err)
	}
	if got.stdout != valid+": ok (Pose)\n" {
		t.Errorf("stdout = %q", got.stdout)
	}

	got = execute(t, "", "check", "--kind", "SolidPrimitive", invalid)
	var exit *cli.ExitError
	if !errors.As(got.err, &exit) || exit.Code != 1 {
		t.Fatalf("check invalid: error = %v, want exit code 1", got.err)
	}
	for _, want := range []string{invalid + ": ", "SolidPrimitive.dimensions", "arity mismatch", "line 2, column 13"} {
		if !strings.Contains(got.stdout, want) {
			t.Errorf("stdout %q does not contain %q", got.stdout, want)
		}
	}
	if !strings.Contains(got.stderr, `"error_kind":"arity mismatch"`) {
		t.Errorf("debug log missing error kind: %q", got.stderr)
	}
}

func TestCheckReportsEveryFile(t *testing.T) {
	t.Parallel()
	first := testutil.WriteFile(t, "first.yaml", "position: [1, 2]\norientation: [0, 0, 0, 1]\n")
	second := testutil.WriteFile(t, "second.yaml", poseDocument)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	got := execute(t, "", "check", "--kind", "Pose", first, second, missing)
	if got.err == nil {
		t.Fatal("check succeeded with invalid files")
	}
	lines := strings.Split(strings.TrimSpace(got.stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("stdout has %d lines, want 3:\n%s", len(lines), got.stdout)
	}
	if !strings.Contains(lines[0], "Pose.position") {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != second+": ok (Pose)" {
		t.Errorf("second line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "missing.yaml") {
		t.Errorf("third line = %q", lines[2])
	}
}

func TestCheckAtPathAndSyntax(t *testing.T) {
	t.Parallel()
	nested := testutil.WriteFile(t, "robot.yaml", `
		robot:
		  mounts:
		    - position: [0, 0, 1]
		      orientation: [0, 0, 0, 1]
	`)
	got := execute(t, "", "check", "--kind", "Pose", "--at", "robot.mounts.0", nested)
	if got.err != nil {
		t.Fatalf("check --at: %v\n%s", got.err, got.stdout)
	}

	got = execute(t, "", "check", "--kind", "Pose", "--at", "robot.arms", nested)
	if got.err == nil || !strings.Contains(got.stdout, "path not found") {
		t.Errorf("missing --at path: err = %v, stdout = %q", got.err, got.stdout)
	}

	commented := testutil.WriteFile(t, "pose.jsonc", `
		{
		  // mounted on the table
		  "position": [0, 0, 0.75],
		  "orientation": [0, 0, 0, 1],
		}
	`)
	got = execute(t, "", "check", "--kind", "Pose", commented)
	if got.err != nil {
		t.Fatalf("check jsonc: %v\n%s", got.err, got.stdout)
	}

	got = execute(t, "", "check", "--kind", "Pose", "--syntax", "yaml", commented)
	if got.err == nil {
		t.Error("JSONC with comments parsed as YAML")
	}
}

func TestUnknownKindSuggestion(t *testing.T) {
	t.Parallel()
	path := testutil.WriteFile(t, "pose.yaml", poseDocument)

	got := execute(t, "", "check", "--kind", "Pos", path)
	if got.err == nil || !strings.Contains(got.err.Error(), `did you mean "Pose"`) {
		t.Errorf("error = %v, want suggestion for Pose", got.err)
	}

	got = execute(t, "", "check", path)
	if got.err == nil || !strings.Contains(got.err.Error(), "--kind is required") {
		t.Errorf("error = %v, want --kind is required", got.err)
	}
}

func TestFmt(t *testing.T) {
	t.Parallel()
	path := testutil.WriteFile(t, "pose.yaml", poseDocument)

	got := execute(t, "", "fmt", "--kind", "Pose", "--color", "never", path)
	if got.err != nil {
		t.Fatalf("fmt: %v", got.err)
	}
	if got.stdout != canonicalPose {
		t.Errorf("stdout = %q, want %q", got.stdout, canonicalPose)
	}

	got = execute(t, testutil.Dedent(poseDocument), "fmt", "--kind", "Pose", "--color", "never", "-")
	if got.err != nil {
		t.Fatalf("fmt stdin: %v", got.err)
	}
	if got.stdout != canonicalPose {
		t.Errorf("stdin stdout = %q, want %q", got.stdout, canonicalPose)
	}
}

func TestFmtIndent(t *testing.T) {
	t.Parallel()
	path := testutil.WriteFile(t, "stamped.yaml", `
		header: {frame_id: world}
		pose:
		  position: [1, 2, 3]
		  orientation: [0, 0, 0, 1]
	`)

	got := execute(t, "", "fmt", "--kind", "PoseStamped", "--color", "never", "--indent", "4", path)
	if got.err != nil {
		t.Fatalf("fmt: %v", got.err)
	}
	want := "header:\n" +
		"    seq: 0\n" +
		"    stamp:\n" +
		"        secs: 0\n" +
		"        nsecs: 0\n" +
		"    frame_id: world\n" +
		"pose:\n" +
		"    position: [1, 2, 3]\n" +
		"    orientation: [0, 0, 0, 1]\n"
	if got.stdout != want {
		t.Errorf("stdout = %q, want %q", got.stdout, want)
	}
}

func TestFmtWrite(t *testing.T) {
	t.Parallel()
	path := testutil.WriteFile(t, "pose.yaml", poseDocument)

	got := execute(t, "", "fmt", "--kind", "Pose", "--write", path)
	if got.err != nil {
		t.Fatalf("fmt --write: %v", got.err)
	}
	if got.stdout != "" {
		t.Errorf("fmt --write printed %q", got.stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != canonicalPose {
		t.Errorf("rewritten file = %q, want %q", data, canonicalPose)
	}

	got = execute(t, "", "fmt", "--kind", "Pose", "--write", "--at", "pose", path)
	if got.err == nil {
		t.Error("fmt --write --at succeeded")
	}
	got = execute(t, "", "fmt", "--kind", "Pose", "--write", "-")
	if got.err == nil {
		t.Error("fmt --write on stdin succeeded")
	}
}

func TestFmtWriteRefusesJSON(t *testing.T) {
	t.Parallel()
	const original = `{"position": [1, 2, 3], "orientation": [0, 0, 0, 1]}` + "\n"
	path := testutil.WriteFile(t, "pose.json", original)

	got := execute(t, "", "fmt", "--kind", "Pose", "--write", path)
	if got.err == nil || !strings.Contains(got.err.Error(), "only rewrites YAML") {
		t.Errorf("fmt --write on JSON: err = %v", got.err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Errorf("JSON file rewritten to %q", data)
	}

	yamlPath := testutil.WriteFile(t, "pose.yaml", poseDocument)
	got = execute(t, "", "fmt", "--kind", "Pose", "--syntax", "jsonc", "--write", yamlPath)
	if got.err == nil {
		t.Error("fmt --write with --syntax jsonc succeeded")
	}
}

func TestFmtCompressesOctomapPayload(t *testing.T) {
	t.Parallel()
	zeros := strings.TrimSuffix(strings.Repeat("0, ", 512), ", ")
	path := testutil.WriteFile(t, "octomap.yaml", `
		binary: true
		id: OcTree
		resolution: 0.05
		data: [`+zeros+`]
	`)

	got := execute(t, "", "fmt", "--kind", "Octomap", "--color", "never", "--compress", "zstd", path)
	if got.err != nil {
		t.Fatalf("fmt: %v", got.err)
	}
	for _, want := range []string{"compression: zstd", "size: 512", "digest: "} {
		if !strings.Contains(got.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, got.stdout)
		}
	}
	if !strings.Contains(got.stderr, "octomap payload compressed") {
		t.Errorf("stderr missing compression record: %q", got.stderr)
	}

	compressed := testutil.WriteFile(t, "compressed.yaml", got.stdout)
	got = execute(t, "", "fmt", "--kind", "Octomap", "--color", "never", "--compress", "none", compressed)
	if got.err != nil {
		t.Fatalf("fmt decompress: %v", got.err)
	}
	if strings.Contains(got.stdout, "compression:") || !strings.Contains(got.stdout, "data: !!binary") {
		t.Errorf("uncompressed output:\n%s", got.stdout)
	}

	got = execute(t, "", "fmt", "--kind", "Octomap", "--compress", "brotli", path)
	if got.err == nil {
		t.Error("unknown --compress accepted")
	}
}

func TestSnapshotRestore(t *testing.T) {
	t.Parallel()
	path := testutil.WriteFile(t, "pose.yaml", poseDocument)
	snapshotPath := filepath.Join(t.TempDir(), "nested", "pose.wmsnap")

	got := execute(t, "", "snapshot", "--kind", "Pose", "-o", snapshotPath, path)
	if got.err != nil {
		t.Fatalf("snapshot: %v", got.err)
	}
	if got.stdout != snapshotPath+"\n" {
		t.Errorf("snapshot stdout = %q", got.stdout)
	}
	if !strings.Contains(got.stderr, `"msg":"snapshot written"`) {
		t.Errorf("snapshot log = %q", got.stderr)
	}

	got = execute(t, "", "restore", "--color", "never", snapshotPath)
	if got.err != nil {
		t.Fatalf("restore: %v", got.err)
	}
	if got.stdout != canonicalPose {
		t.Errorf("restored = %q, want %q", got.stdout, canonicalPose)
	}

	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		t.Fatal(err)
	}
	got = execute(t, string(data), "restore", "--color", "never", "--kind", "Pose", "-")
	if got.err != nil {
		t.Fatalf("restore stdin: %v", got.err)
	}
	if got.stdout != canonicalPose {
		t.Errorf("restored from stdin = %q", got.stdout)
	}

	got = execute(t, "", "restore", "--kind", "Twist", snapshotPath)
	if !errors.Is(got.err, codec.ErrKindMismatch) {
		t.Errorf("restore wrong kind: error = %v, want ErrKindMismatch", got.err)
	}
}

func TestSnapshotDefaultDirectory(t *testing.T) {
	t.Parallel()
	directory := filepath.Join(t.TempDir(), "snapshots")
	configPath := testutil.WriteFile(t, "worldmodel.yaml", `
		logging:
		  format: json
		snapshots:
		  directory: `+directory+`
	`)
	path := testutil.WriteFile(t, "kitchen.yaml", poseDocument)

	got := execute(t, "", "snapshot", "--config", configPath, "--kind", "Pose", path)
	if got.err != nil {
		t.Fatalf("snapshot: %v", got.err)
	}
	want := filepath.Join(directory, "kitchen.wmsnap")
	if got.stdout != want+"\n" {
		t.Errorf("stdout = %q, want %q", got.stdout, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}

	got = execute(t, testutil.Dedent(poseDocument), "snapshot", "--config", configPath, "--kind", "Pose", "-")
	if got.err == nil {
		t.Error("snapshot of stdin without --output succeeded")
	}
}

func TestRestoreDiagnose(t *testing.T) {
	t.Parallel()
	path := testutil.WriteFile(t, "pose.yaml", poseDocument)
	snapshotPath := filepath.Join(t.TempDir(), "pose.wmsnap")
	if got := execute(t, "", "snapshot", "--kind", "Pose", "-o", snapshotPath, path); got.err != nil {
		t.Fatalf("snapshot: %v", got.err)
	}

	got := execute(t, "", "restore", "--diagnose", snapshotPath)
	if got.err != nil {
		t.Fatalf("restore --diagnose: %v", got.err)
	}
	for _, want := range []string{"version: 1\n", "kind: Pose\n", "digest: ", `"position"`} {
		if !strings.Contains(got.stdout, want) {
			t.Errorf("diagnose output missing %q:\n%s", want, got.stdout)
		}
	}
}

func TestRestoreRejectsTamperedSnapshot(t *testing.T) {
	t.Parallel()
	body, err := codec.Marshal(map[string]string{"frame_id": "world"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := codec.Marshal(codec.Envelope{
		Version: codec.SnapshotVersion,
		Kind:    "Header",
		Digest:  make([]byte, 32),
		Body:    body,
	})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "tampered.wmsnap")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got := execute(t, "", "restore", path)
	if !errors.Is(got.err, codec.ErrDigestMismatch) {
		t.Errorf("error = %v, want ErrDigestMismatch", got.err)
	}
}

func TestInvalidConfigIsReported(t *testing.T) {
	t.Parallel()
	configPath := testutil.WriteFile(t, "worldmodel.yaml", `
		encoding:
		  indent: 20
	`)
	path := testutil.WriteFile(t, "pose.yaml", poseDocument)

	got := execute(t, "", "fmt", "--config", configPath, "--kind", "Pose", path)
	if got.err == nil || !strings.Contains(got.err.Error(), "encoding.indent") {
		t.Errorf("error = %v, want indent validation failure", got.err)
	}
}
