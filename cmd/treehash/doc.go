// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

// treehash is the command-line front end for the BLAKE3 engine in
// lib/blake3.
//
// Subcommands:
//
//	sum      hash files or stdin (plain, keyed, or derive-key mode)
//	bench    measure sequential and parallel hashing throughput
//	version  print the version
//
// Configuration comes from an optional YAML file (--config or
// TREEHASH_CONFIG; see lib/config) with per-run overrides via flags.
package main
