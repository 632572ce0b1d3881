// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

// Package workpool provides a bounded fork/join pool for CPU-bound
// divide-and-conquer work.
//
// A [Pool] is an explicit object with a lifecycle (construct, use,
// [Pool.Close]) rather than process-global state: callers build one
// pool at startup and pass it to every parallel entry point. The pool
// never queues work. [Pool.Fork] either grants a worker slot and runs
// the function on a new goroutine, or — when all slots are busy, the
// pool is closed, or the pool is nil — runs it inline on the calling
// goroutine. Inline execution is the degraded mode, not an error:
// a pool of size 1 grants no slots at all, which makes every
// computation strictly sequential with output identical to the
// parallel case.
//
// A panic inside a forked function is captured and re-raised from
// [Join.Wait] on the joining goroutine, so a worker fault aborts the
// whole computation instead of yielding a partial result.
package workpool
