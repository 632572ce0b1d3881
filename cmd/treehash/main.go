// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
)

const version = "0.3.0"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 2
	}

	var err error
	switch os.Args[1] {
	case "sum":
		err = runSum(os.Args[2:])
	case "bench":
		err = runBench(os.Args[2:])
	case "version", "--version":
		fmt.Printf("treehash %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		printUsage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprint(os.Stderr, `usage: treehash <command> [flags]

commands:
  sum      hash files or stdin with BLAKE3
  bench    measure hashing throughput, sequential and parallel
  version  print the version

Run "treehash <command> --help" for command flags.
`)
}

// newLogger builds the CLI logger. Operational messages (pool
// lifecycle) only appear with --verbose; errors always print via the
// normal error path, not the logger.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
