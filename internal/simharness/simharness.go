// Package simharness drives a hostio.HostStore with many concurrently
// simulated contract invocations, for exercising a store implementation
// (e.g. hoststore.Badger) under load in tests and benchmarks. It is
// test-only scaffolding: the core packages (entry, typedcell, synccell,
// lazymap) remain single-threaded per call, as required by their protocol;
// this harness only concurrently dispatches independent calls against the
// store underneath them.
//
// Adapted from the singleflight-based load de-duplication this module's
// ambient concurrency tooling was built around: concurrent invocations
// touching the same key are coalesced so the simulated workload never
// races two writers against one slot.
//
// © 2025 contractstore authors. MIT License.
package simharness

import (
	"context"
	"encoding/hex"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/voskan/contractstore/pkg/hostio"
	"github.com/voskan/contractstore/pkg/storagekey"
)

// Invocation models one simulated contract call touching a single slot:
// either a write (Value non-nil) or a clear (Value nil).
type Invocation struct {
	Key   storagekey.StorageKey
	Value []byte
}

// Harness fans simulated Invocations out across goroutines against a single
// hostio.HostStore.
type Harness struct {
	store hostio.HostStore
	group singleflight.Group
}

// New constructs a Harness driving store.
func New(store hostio.HostStore) *Harness {
	return &Harness{store: store}
}

// Run dispatches every invocation concurrently, coalescing invocations that
// target the same key via singleflight, and returns the first error
// encountered (if any). After an error, invocations that have not yet
// started are skipped; host calls already under way run to completion.
func (h *Harness) Run(ctx context.Context, invocations []Invocation) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, inv := range invocations {
		inv := inv
		g.Go(func() error {
			return h.dispatch(ctx, inv)
		})
	}
	return g.Wait()
}

func (h *Harness) dispatch(ctx context.Context, inv Invocation) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	dedupKey := hex.EncodeToString(inv.Key[:])
	_, err, _ := h.group.Do(dedupKey, func() (any, error) {
		if inv.Value == nil {
			return nil, h.store.Clear(inv.Key)
		}
		return nil, h.store.Store(inv.Key, inv.Value)
	})
	return err
}
