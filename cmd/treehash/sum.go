// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/treehash-project/treehash/lib/blake3"
	"github.com/treehash-project/treehash/lib/config"
	"github.com/treehash-project/treehash/lib/workpool"
)

// sumParams holds the parsed flags for the sum command.
type sumParams struct {
	configPath string
	length     int
	keyHex     string
	context    string
	parallel   bool
	sequential bool
	workers    int
	verbose    bool
}

func runSum(args []string) error {
	var params sumParams

	flags := pflag.NewFlagSet("sum", pflag.ContinueOnError)
	flags.StringVar(&params.configPath, "config", "", "path to YAML config file (default: $TREEHASH_CONFIG)")
	flags.IntVar(&params.length, "length", 0, "output length in bytes (default from config, normally 32)")
	flags.StringVar(&params.keyHex, "key", "", "64-character hex key for keyed (MAC) mode")
	flags.StringVar(&params.context, "derive", "", "context string for derive-key mode")
	flags.BoolVar(&params.parallel, "parallel", false, "force the parallel hashing path")
	flags.BoolVar(&params.sequential, "sequential", false, "force the sequential hashing path")
	flags.IntVar(&params.workers, "workers", 0, "worker pool size for parallel hashing (0 = one per CPU)")
	flags.BoolVar(&params.verbose, "verbose", false, "log pool lifecycle to stderr")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, "usage: treehash sum [flags] [file...]\n\nHashes each file (or stdin when no files are given) and prints\n\"<hex digest>  <name>\" per input, sha256sum style.\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(params.configPath)
	if err != nil {
		return err
	}
	if !flags.Changed("length") {
		params.length = cfg.OutputLength
	}
	if params.workers == 0 {
		params.workers = cfg.Workers
	}
	parallel := cfg.Parallel
	if params.parallel {
		parallel = true
	}
	if params.sequential {
		parallel = false
	}

	if params.length < 0 {
		return fmt.Errorf("--length must be >= 0, got %d", params.length)
	}
	if params.keyHex != "" && params.context != "" {
		return fmt.Errorf("--key and --derive are mutually exclusive")
	}
	if params.keyHex != "" && params.length != blake3.DigestLen {
		return fmt.Errorf("keyed mode produces exactly %d bytes; --length cannot change it", blake3.DigestLen)
	}

	var key []byte
	if params.keyHex != "" {
		key, err = hex.DecodeString(params.keyHex)
		if err != nil {
			return fmt.Errorf("decoding --key: %w", err)
		}
	}

	// One pool for the whole run, only when the parallel path is on.
	var pool *workpool.Pool
	if parallel && params.context == "" && params.keyHex == "" {
		pool = workpool.New(workpool.Config{
			Workers: params.workers,
			Logger:  newLogger(params.verbose),
		})
		defer pool.Close()
	}

	names := flags.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}
	for _, name := range names {
		if err := sumOne(os.Stdout, name, key, params.context, params.length, pool); err != nil {
			return err
		}
	}
	return nil
}

// sumOne hashes a single input and writes its digest line to w. name
// "-" reads stdin.
func sumOne(w io.Writer, name string, key []byte, context string, length int, pool *workpool.Pool) error {
	var data []byte
	var err error
	display := name
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
		display = "-"
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", display, err)
	}

	var out []byte
	switch {
	case len(key) > 0:
		digest, err := blake3.SumKeyed(key, data)
		if err != nil {
			return err
		}
		out = digest[:]
	case context != "":
		out = blake3.DeriveKey(context, data, length)
	case pool != nil:
		out = blake3.ParallelSumXOF(pool, data, length)
	default:
		out = blake3.SumXOF(data, length)
	}

	fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(out), display)
	return nil
}
