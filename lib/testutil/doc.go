// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for treehash packages.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with a time.After fallback) so that tests
// waiting on worker-pool goroutines cannot hang the suite when
// synchronization is broken — they fail with a message instead.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no treehash-internal dependencies.
package testutil
