// Package typedcell provides a thin typed veneer over a single StorageKey
// slot: decode on Load, encode on Store, no caching whatsoever. SyncCell
// layers the read-caching, write-through behavior on top of this.
//
// © 2025 contractstore authors. MIT License.
package typedcell

import (
	"github.com/voskan/contractstore/pkg/hostio"
	"github.com/voskan/contractstore/pkg/storagekey"
)

// TypedCell is an uncached typed view over a single contract storage slot.
type TypedCell[V any] struct {
	key   storagekey.StorageKey
	store hostio.HostStore
	codec hostio.Codec
}

// New constructs a TypedCell bound to key.
func New[V any](key storagekey.StorageKey, store hostio.HostStore, codec hostio.Codec) *TypedCell[V] {
	return &TypedCell[V]{key: key, store: store, codec: codec}
}

// Key returns the slot this cell is bound to.
func (c *TypedCell[V]) Key() storagekey.StorageKey {
	return c.key
}

// Load reads and decodes the cell's slot. It returns (nil, nil) when the
// slot is empty, and a *hostio.DecodeError when the stored bytes cannot be
// decoded into V.
func (c *TypedCell[V]) Load() (*V, error) {
	raw, found, err := c.store.Load(c.key)
	if err != nil {
		return nil, hostio.NewHostFailure("load", err)
	}
	if !found {
		return nil, nil
	}
	var v V
	if err := c.codec.Decode(raw, &v); err != nil {
		return nil, hostio.NewDecodeError(err)
	}
	return &v, nil
}

// Store encodes v and writes it to the cell's slot.
func (c *TypedCell[V]) Store(v *V) error {
	encoded, err := c.codec.Encode(v)
	if err != nil {
		return hostio.NewDecodeError(err)
	}
	if err := c.store.Store(c.key, encoded); err != nil {
		return hostio.NewHostFailure("store", err)
	}
	return nil
}

// Clear deletes the cell's slot.
func (c *TypedCell[V]) Clear() error {
	if err := c.store.Clear(c.key); err != nil {
		return hostio.NewHostFailure("clear", err)
	}
	return nil
}
