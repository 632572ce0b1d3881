// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/treehash-project/treehash/lib/blake3"
	"github.com/treehash-project/treehash/lib/config"
	"github.com/treehash-project/treehash/lib/workpool"
)

const benchWarmupRounds = 3

// benchParams holds the parsed flags for the bench command.
type benchParams struct {
	configPath string
	size       int
	iterations int
	workers    int
	verbose    bool
}

// benchResult is one measured row of the report.
type benchResult struct {
	mode       string
	iterations int
	total      time.Duration
	throughput uint64 // bytes per second
}

func runBench(args []string) error {
	var params benchParams

	flags := pflag.NewFlagSet("bench", pflag.ContinueOnError)
	flags.StringVar(&params.configPath, "config", "", "path to YAML config file (default: $TREEHASH_CONFIG)")
	flags.IntVar(&params.size, "size", 16<<20, "input buffer size in bytes")
	flags.IntVar(&params.iterations, "iterations", 10, "measured iterations per mode")
	flags.IntVar(&params.workers, "workers", 0, "worker pool size (0 = one per CPU)")
	flags.BoolVar(&params.verbose, "verbose", false, "log pool lifecycle to stderr")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, "usage: treehash bench [flags]\n\nHashes a deterministic buffer repeatedly, sequentially and in\nparallel, and reports elapsed time and throughput per mode.\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(flags.Args()) > 0 {
		return fmt.Errorf("unexpected argument: %s", flags.Args()[0])
	}
	if params.size <= 0 {
		return fmt.Errorf("--size must be positive, got %d", params.size)
	}
	if params.iterations <= 0 {
		return fmt.Errorf("--iterations must be positive, got %d", params.iterations)
	}

	cfg, err := config.Load(params.configPath)
	if err != nil {
		return err
	}
	if params.workers == 0 {
		params.workers = cfg.Workers
	}

	// Deterministic non-trivial content: the digest of every run is
	// comparable, and the buffer is not compressible to a constant.
	data := make([]byte, params.size)
	for i := range data {
		data[i] = byte(i % 251)
	}

	pool := workpool.New(workpool.Config{
		Workers: params.workers,
		Logger:  newLogger(params.verbose),
	})
	defer pool.Close()

	sequential := measure("sequential", params.iterations, len(data), func() {
		blake3.Sum256(data)
	})
	parallel := measure(fmt.Sprintf("parallel (%d workers)", pool.Size()), params.iterations, len(data), func() {
		blake3.ParallelSum256(pool, data)
	})

	// The two paths must agree before the numbers mean anything.
	if blake3.Sum256(data) != blake3.ParallelSum256(pool, data) {
		return fmt.Errorf("sequential and parallel digests disagree; refusing to report")
	}

	printBenchReport(params, []benchResult{sequential, parallel})
	return nil
}

// measure runs fn for warmup rounds, then times the measured
// iterations.
func measure(mode string, iterations, inputLen int, fn func()) benchResult {
	for i := 0; i < benchWarmupRounds; i++ {
		fn()
	}
	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	total := time.Since(start)

	bytesHashed := uint64(inputLen) * uint64(iterations)
	seconds := total.Seconds()
	var throughput uint64
	if seconds > 0 {
		throughput = uint64(float64(bytesHashed) / seconds)
	}
	return benchResult{
		mode:       mode,
		iterations: iterations,
		total:      total,
		throughput: throughput,
	}
}

func printBenchReport(params benchParams, results []benchResult) {
	header := fmt.Sprintf("treehash bench: %s input, %d iterations",
		humanize.IBytes(uint64(params.size)), params.iterations)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		header = lipgloss.NewStyle().Bold(true).Render(header)
	}
	fmt.Println(header)

	writer := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "MODE\tTOTAL\tPER OP\tTHROUGHPUT")
	for _, result := range results {
		perOp := result.total / time.Duration(result.iterations)
		fmt.Fprintf(writer, "%s\t%v\t%v\t%s/s\n",
			result.mode,
			result.total.Round(time.Millisecond),
			perOp.Round(time.Microsecond),
			humanize.IBytes(result.throughput),
		)
	}
	writer.Flush()
}
