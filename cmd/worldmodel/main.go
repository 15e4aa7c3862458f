// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/worldmodel/cmd/worldmodel/commands"
)

func main() {
	os.Exit(run(os.Args[1:], commands.Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}

func run(args []string, env commands.Environment) int {
	if err := commands.Root(env).Execute(args); err != nil {
		// Commands that already reported their outcome return an error
		// carrying the exit code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			return coder.ExitCode()
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
