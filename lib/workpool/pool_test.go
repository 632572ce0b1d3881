// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

package workpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/treehash-project/treehash/lib/testutil"
)

func TestSizeDefaultsToMachine(t *testing.T) {
	pool := New(Config{})
	defer pool.Close()
	if pool.Size() < 1 {
		t.Errorf("Size() = %d, want >= 1", pool.Size())
	}
}

func TestSizeReportsConfiguredWorkers(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		pool := New(Config{Workers: workers})
		if pool.Size() != workers {
			t.Errorf("Size() = %d, want %d", pool.Size(), workers)
		}
		pool.Close()
	}
}

func TestNilPoolSize(t *testing.T) {
	var pool *Pool
	if pool.Size() != 1 {
		t.Errorf("nil pool Size() = %d, want 1", pool.Size())
	}
}

func TestForkRunsFunction(t *testing.T) {
	pool := New(Config{Workers: 4})
	defer pool.Close()

	var ran atomic.Bool
	join := pool.Fork(func() { ran.Store(true) })
	join.Wait()
	if !ran.Load() {
		t.Error("forked function did not run before Wait returned")
	}
}

func TestSizeOnePoolRunsInline(t *testing.T) {
	pool := New(Config{Workers: 1})
	defer pool.Close()

	// With no spare slots, Fork must complete the function before
	// returning; the unsynchronized read below is race-free only if
	// execution was inline.
	ran := false
	pool.Fork(func() { ran = true })
	if !ran {
		t.Error("size-1 pool forked to another goroutine")
	}
}

func TestNilPoolRunsInline(t *testing.T) {
	var pool *Pool
	ran := false
	join := pool.Fork(func() { ran = true })
	if !ran {
		t.Error("nil pool did not run inline")
	}
	join.Wait() // must not block or panic
}

func TestForkAfterCloseRunsInline(t *testing.T) {
	pool := New(Config{Workers: 4})
	pool.Close()

	ran := false
	pool.Fork(func() { ran = true })
	if !ran {
		t.Error("fork after Close did not run inline")
	}
}

func TestCloseIdempotent(t *testing.T) {
	pool := New(Config{Workers: 2})
	pool.Close()
	pool.Close()
}

func TestSaturatedPoolRunsInline(t *testing.T) {
	pool := New(Config{Workers: 2}) // one spare slot
	defer pool.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	blocker := pool.Fork(func() {
		close(started)
		<-release
	})
	testutil.RequireClosed(t, started, 5*time.Second, "blocking task started")

	// The single spare slot is held; this fork must be inline.
	ran := false
	pool.Fork(func() { ran = true })
	if !ran {
		t.Error("fork with saturated pool did not run inline")
	}

	close(release)
	blocker.Wait()
}

func TestSlotReturnsAfterJoin(t *testing.T) {
	pool := New(Config{Workers: 2})
	defer pool.Close()

	for i := 0; i < 10; i++ {
		done := make(chan struct{})
		join := pool.Fork(func() { close(done) })
		testutil.RequireClosed(t, done, 5*time.Second, "forked task %d ran", i)
		join.Wait()
	}
}

func TestNestedForks(t *testing.T) {
	pool := New(Config{Workers: 4})
	defer pool.Close()

	var total atomic.Int64
	outer := pool.Fork(func() {
		inner := pool.Fork(func() { total.Add(1) })
		total.Add(1)
		inner.Wait()
	})
	outer.Wait()
	if total.Load() != 2 {
		t.Errorf("total = %d, want 2", total.Load())
	}
}

func TestForkPanicPropagatesToWait(t *testing.T) {
	pool := New(Config{Workers: 4})
	defer pool.Close()

	join := pool.Fork(func() { panic("worker fault") })

	defer func() {
		recovered := recover()
		if recovered != "worker fault" {
			t.Errorf("recovered %v, want \"worker fault\"", recovered)
		}
	}()
	join.Wait()
	t.Error("Wait returned instead of panicking")
}

func TestPanickedTaskReturnsSlot(t *testing.T) {
	pool := New(Config{Workers: 2})
	defer pool.Close()

	join := pool.Fork(func() { panic("fault") })
	func() {
		defer func() { recover() }()
		join.Wait()
	}()

	// The slot must be reusable after the fault.
	done := make(chan struct{})
	pool.Fork(func() { close(done) })
	testutil.RequireClosed(t, done, 5*time.Second, "fork after panicked task")
}

func TestCloseWaitsForRacingFork(t *testing.T) {
	// Fork and Close racing from different goroutines: whenever the
	// fork wins a slot, its function must have finished by the time
	// Close returns. Inline execution (the fork losing the race) is
	// the allowed degraded mode and is skipped by the assertion.
	for i := 0; i < 2000; i++ {
		pool := New(Config{Workers: 2})

		var finished atomic.Bool
		joinCh := make(chan *Join, 1)
		go func() {
			joinCh <- pool.Fork(func() {
				finished.Store(true)
			})
		}()

		pool.Close()
		finishedAtClose := finished.Load()

		join := testutil.RequireReceive(t, joinCh, 5*time.Second, "fork %d returned", i)
		if join != completedJoin && !finishedAtClose {
			t.Fatalf("iteration %d: Close returned while a forked task was still running", i)
		}
		join.Wait()
	}
}

func TestCloseWaitsForRunningTasks(t *testing.T) {
	pool := New(Config{Workers: 2})

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})
	pool.Fork(func() {
		close(started)
		<-release
		close(finished)
	})
	testutil.RequireClosed(t, started, 5*time.Second, "task started")

	closed := make(chan struct{})
	go func() {
		pool.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a task was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	testutil.RequireClosed(t, finished, 5*time.Second, "task finished")
	testutil.RequireClosed(t, closed, 5*time.Second, "Close returned")
}
