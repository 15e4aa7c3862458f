// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition
		{"kitten", "sitting", 3},
		{"octomap", "octmap", 1},
	}

	for _, test := range tests {
		got := levenshtein(test.a, test.b)
		if got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
		if reverse := levenshtein(test.b, test.a); reverse != got {
			t.Errorf("levenshtein(%q, %q) = %d, reverse = %d", test.a, test.b, got, reverse)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()
	candidates := []string{"Pose", "PoseStamped", "Octomap", "OctomapWithPose", "PlanningScene", "JointState"}

	tests := []struct {
		input string
		want  string
	}{
		{"Octmap", "Octomap"},
		{"octomap", "Octomap"},
		{"planningscene", "PlanningScene"},
		{"PlaningScene", "PlanningScene"},
		{"JointStat", "JointState"},
		{"Trajectory", ""},
		{"zzzzzzzzz", ""},
	}

	for _, test := range tests {
		if got := Suggest(test.input, candidates); got != test.want {
			t.Errorf("Suggest(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	t.Parallel()
	makeFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.String("kind", "", "")
		flagSet.String("compress", "", "")
		flagSet.StringP("output", "o", "", "")
		flagSet.Bool("diagnose", false, "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "close typo", args: []string{"--knd"}, want: "--kind"},
		{name: "flag with equals", args: []string{"--compres=zstd"}, want: "--compress"},
		{name: "after known flags", args: []string{"--kind", "Pose", "--diagnoze"}, want: "--diagnose"},
		{name: "known shorthand skipped", args: []string{"-o", "x", "--outptu"}, want: "--output"},
		{name: "nothing close", args: []string{"--zzzzzzzzz"}, want: ""},
		{name: "no flags", args: []string{"positional"}, want: ""},
		{name: "after terminator", args: []string{"--", "--knd"}, want: ""},
	}

	for _, test := range tests {
		if got := suggestFlag(test.args, makeFlagSet()); got != test.want {
			t.Errorf("%s: suggestFlag(%v) = %q, want %q", test.name, test.args, got, test.want)
		}
	}
}
