// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package workpool

import (
	"log/slog"
	"runtime"
	"sync"
)

// Config holds the parameters for constructing a Pool. The zero value
// is usable: it sizes the pool to the machine and discards logs.
type Config struct {
	// Workers is the total parallelism of the pool, counting the
	// goroutine that calls into it. If zero or negative, defaults to
	// runtime.NumCPU(). A pool of 1 performs all work inline on the
	// calling goroutine.
	Workers int

	// Logger receives lifecycle messages (pool construction and
	// close). If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Pool is a fixed-size fork/join worker pool. Forked functions own
// disjoint work; the pool itself holds no work queue — a fork either
// gets a dedicated goroutine immediately or runs inline.
//
// Pool is safe for concurrent use, including nested forks from inside
// forked functions. A nil *Pool is valid and always runs inline.
type Pool struct {
	// slots holds one token per worker beyond the caller itself.
	// Fork takes a token to spawn; the spawned goroutine returns it
	// when the function finishes.
	slots chan struct{}

	size   int
	logger *slog.Logger

	mu      sync.Mutex
	closed  bool
	running sync.WaitGroup
}

// New constructs a ready Pool. The caller must Close the pool when no
// more parallel work will be submitted.
func New(cfg Config) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	size := cfg.Workers
	if size <= 0 {
		size = runtime.NumCPU()
	}

	pool := &Pool{
		slots:  make(chan struct{}, size-1),
		size:   size,
		logger: logger,
	}
	for i := 0; i < size-1; i++ {
		pool.slots <- struct{}{}
	}

	logger.Info("worker pool ready", "workers", size)
	return pool
}

// Size returns the total parallelism of the pool, counting the
// calling goroutine. Always positive. A nil pool has size 1.
func (p *Pool) Size() int {
	if p == nil {
		return 1
	}
	return p.size
}

// Close marks the pool closed and waits for in-flight forked
// functions to finish. Forks after Close run inline, so closing a
// pool degrades callers to sequential execution rather than breaking
// them. Close is idempotent.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	alreadyClosed := p.closed
	p.closed = true
	p.mu.Unlock()

	p.running.Wait()
	if !alreadyClosed {
		p.logger.Info("worker pool closed", "workers", p.size)
	}
}

// Join is the handle for one forked function. Exactly one goroutine
// must Wait on it, after which the handle is spent.
type Join struct {
	done       chan struct{}
	panicValue any
}

// completedJoin is returned for inline execution: the work is already
// done by the time Fork returns, and any panic has already unwound
// through the caller.
var completedJoin = &Join{}

// Wait blocks until the forked function has finished. If the function
// panicked, Wait re-panics with the original panic value on the
// waiting goroutine, so the fault surfaces exactly where the result
// would have been consumed.
func (j *Join) Wait() {
	if j.done != nil {
		<-j.done
	}
	if j.panicValue != nil {
		panic(j.panicValue)
	}
}

// Fork runs fn, on a pool worker when a slot is free and the pool is
// open, otherwise inline before Fork returns. The returned Join must
// be waited on before any result written by fn is read: the Join is
// the only synchronization between fn and the caller.
func (p *Pool) Fork(fn func()) *Join {
	if p == nil || !p.takeSlot() {
		fn()
		return completedJoin
	}

	join := &Join{done: make(chan struct{})}
	go func() {
		defer func() {
			join.panicValue = recover()
			close(join.done)
			p.slots <- struct{}{}
			p.running.Done()
		}()
		fn()
	}()
	return join
}

// takeSlot claims a worker slot and registers the fork as in-flight,
// without blocking. Returns false when the pool is closed or
// saturated; the caller then runs inline.
//
// The WaitGroup increment happens under the same lock that Close uses
// to set closed, so Close can never observe a granted slot whose
// increment has not landed yet: either takeSlot wins the lock and
// Close's Wait sees the counter, or Close wins and takeSlot sees
// closed.
func (p *Pool) takeSlot() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case <-p.slots:
		p.running.Add(1)
		return true
	default:
		return false
	}
}
