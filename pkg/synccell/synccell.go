// Package synccell implements SyncCell: a read-caching, write-through
// single-slot cell built on top of typedcell.TypedCell. The cache has two
// states — Desync (in-memory value unknown) and Sync (known, possibly
// absent) — and a read through a Desync cache performs exactly one host
// load; every subsequent Get is served from the cache, which Set and Clear
// keep in step with the host as they write through.
//
// © 2025 contractstore authors. MIT License.
package synccell

import (
	"github.com/voskan/contractstore/pkg/hostio"
	"github.com/voskan/contractstore/pkg/keyptr"
	"github.com/voskan/contractstore/pkg/storagekey"
	"github.com/voskan/contractstore/pkg/typedcell"
)

// FootprintSyncCell is the number of contiguous slots a SyncCell reserves in
// the spread layout.
const FootprintSyncCell uint64 = 1

type cacheState uint8

const (
	desync cacheState = iota
	synced
)

// SyncCell wraps a TypedCell with a single-entry read cache. Because a
// shared-reference Get is allowed to populate the cache (the cell is always
// accessed single-threaded, per §5), the returned pointer remains valid for
// as long as the cell itself does — Go's garbage collector keeps the
// pointee alive, and no subsequent Get reallocates it.
type SyncCell[V any] struct {
	cell  *typedcell.TypedCell[V]
	state cacheState
	value *V
}

// New constructs a SyncCell bound to key, with a Desync cache.
func New[V any](key storagekey.StorageKey, store hostio.HostStore, codec hostio.Codec) *SyncCell[V] {
	return &SyncCell[V]{cell: typedcell.New[V](key, store, codec), state: desync}
}

// PullSpread constructs a SyncCell bound to the next FootprintSyncCell slots
// of ptr, advancing it.
func PullSpread[V any](ptr *keyptr.KeyPtr, store hostio.HostStore, codec hostio.Codec) *SyncCell[V] {
	key := ptr.AdvanceBy(FootprintSyncCell)
	return New[V](key, store, codec)
}

// Get returns the cell's value, loading it from the host on the first call
// and serving every subsequent call from the cache.
func (c *SyncCell[V]) Get() (*V, error) {
	if c.state == desync {
		v, err := c.cell.Load()
		if err != nil {
			return nil, err
		}
		c.value = v
		c.state = synced
	}
	return c.value, nil
}

// Set writes v through to the host and updates the cache to match.
func (c *SyncCell[V]) Set(v V) error {
	if err := c.cell.Store(&v); err != nil {
		return err
	}
	c.value = &v
	c.state = synced
	return nil
}

// Clear deletes the host slot and caches the absence.
func (c *SyncCell[V]) Clear() error {
	if err := c.cell.Clear(); err != nil {
		return err
	}
	c.value = nil
	c.state = synced
	return nil
}

// MutateWith ensures the cache is synced, applies f to the cached value if
// present, writes the mutated value through, and reports whether a value
// was present to mutate.
func (c *SyncCell[V]) MutateWith(f func(*V)) (bool, error) {
	if c.state == desync {
		if _, err := c.Get(); err != nil {
			return false, err
		}
	}
	if c.value == nil {
		return false, nil
	}
	f(c.value)
	if err := c.cell.Store(c.value); err != nil {
		return false, err
	}
	return true, nil
}

// PushSpread implements keyptr.SpreadLayout. SyncCell has no separate dirty
// tag of its own — Set/Clear already write through immediately — so
// PushSpread is a pure cursor-advance.
func (c *SyncCell[V]) PushSpread(ptr *keyptr.KeyPtr) error {
	ptr.AdvanceBy(FootprintSyncCell)
	return nil
}

// ClearSpread clears the cell's slot and advances ptr.
func (c *SyncCell[V]) ClearSpread(ptr *keyptr.KeyPtr) error {
	ptr.AdvanceBy(FootprintSyncCell)
	return c.Clear()
}
