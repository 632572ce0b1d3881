// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/treehash-project/treehash/lib/workpool"
)

// parallelSizes straddles the parallel threshold from both sides and
// includes ragged tails.
var parallelSizes = []int{
	0, 1, 1024, 2049,
	parallelThreshold - 1, parallelThreshold, parallelThreshold + 1,
	4 * parallelThreshold, 1 << 20, 1<<20 + 17, 3 << 20,
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pool := workpool.New(workpool.Config{Workers: workers})
			defer pool.Close()

			for _, size := range parallelSizes {
				data := testPattern(size)
				sequential := Sum256(data)
				parallel := ParallelSum256(pool, data)
				if sequential != parallel {
					t.Errorf("size %d: parallel = %s, sequential = %s", size, parallel, sequential)
				}
			}
		})
	}
}

func TestParallelXOFMatchesSequential(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 4})
	defer pool.Close()

	for _, size := range []int{0, 1024, parallelThreshold + 1, 1 << 20} {
		data := testPattern(size)
		for _, length := range []int{0, 32, 100, 4096} {
			sequential := SumXOF(data, length)
			parallel := ParallelSumXOF(pool, data, length)
			if !bytes.Equal(sequential, parallel) {
				t.Errorf("size %d length %d: parallel XOF differs from sequential", size, length)
			}
		}
	}
}

func TestParallelNilPool(t *testing.T) {
	data := testPattern(1 << 20)
	if got, want := ParallelSum256(nil, data), Sum256(data); got != want {
		t.Errorf("nil pool: parallel = %s, sequential = %s", got, want)
	}
}

func TestParallelClosedPool(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 4})
	pool.Close()

	data := testPattern(1 << 20)
	if got, want := ParallelSum256(pool, data), Sum256(data); got != want {
		t.Errorf("closed pool: parallel = %s, sequential = %s", got, want)
	}
}

func TestParallelMillionZeroBytes(t *testing.T) {
	// End-to-end: 1,000,000 zero bytes, every pool size, repeated
	// runs. All digests must be the same 32 bytes.
	data := make([]byte, 1_000_000)
	want := Sum256(data)

	for _, workers := range []int{1, 4, 8} {
		pool := workpool.New(workpool.Config{Workers: workers})
		for run := 0; run < 3; run++ {
			if got := ParallelSum256(pool, data); got != want {
				t.Errorf("workers=%d run=%d: digest %s, want %s", workers, run, got, want)
			}
		}
		pool.Close()
	}
}

func TestParallelSharedPoolConcurrentCallers(t *testing.T) {
	// Multiple goroutines hashing different inputs through one pool
	// must not interfere: results are position-dependent only.
	pool := workpool.New(workpool.Config{Workers: 8})
	defer pool.Close()

	const callers = 8
	inputs := make([][]byte, callers)
	want := make([]Digest, callers)
	for i := range inputs {
		inputs[i] = testPattern(1<<20 + i*1031)
		want[i] = Sum256(inputs[i])
	}

	errs := make(chan string, callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			if got := ParallelSum256(pool, inputs[i]); got != want[i] {
				errs <- fmt.Sprintf("caller %d: digest mismatch", i)
			} else {
				errs <- ""
			}
		}(i)
	}
	for i := 0; i < callers; i++ {
		if msg := <-errs; msg != "" {
			t.Error(msg)
		}
	}
}

func BenchmarkSum256Sequential(b *testing.B) {
	data := testPattern(1 << 20)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Sum256(data)
	}
}

func BenchmarkSum256Parallel(b *testing.B) {
	pool := workpool.New(workpool.Config{})
	defer pool.Close()
	data := testPattern(1 << 20)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		ParallelSum256(pool, data)
	}
}
