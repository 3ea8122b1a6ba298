// Package lazymap implements LazyHashMap: a hash-addressed lazy map of
// many storage slots with a per-entry, pointer-stable in-memory cache. This
// is the central algorithm of the lazy contract storage layer — see
// SPEC_FULL.md §4.5.
//
// Every cached Entry is stored as a *entry.Entry[V] inside a Go map. Go
// guarantees that relocating a map's internal buckets never moves the
// object a pointer value points to, so references returned by Get/GetMut
// remain valid across later insertions into the same map — exactly the
// heap-indirection guarantee the original design requires (§9).
//
// © 2025 contractstore authors. MIT License.
package lazymap

import (
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/voskan/contractstore/pkg/entry"
	"github.com/voskan/contractstore/pkg/hostio"
	"github.com/voskan/contractstore/pkg/keyptr"
	"github.com/voskan/contractstore/pkg/storagekey"
)

// FootprintLazyHashMap is the number of contiguous slots a LazyHashMap
// reserves in the spread layout. The map itself occupies exactly one root
// slot; its entries live at hashed slots elsewhere in the key space.
//
// Developer note: LazyHashMap is deliberately not packable (it does not
// implement keyptr.PackedLayout) because two packed LazyHashMaps sharing a
// root key would collide in the hashed subspace.
const FootprintLazyHashMap uint64 = 1

// slotPrefix is the fixed 11-byte ASCII tag mixed into every slot
// derivation. This is a wire-compatibility constant (§6) — changing it
// breaks compatibility with previously written storage, so it must never be
// parameterized.
var slotPrefix = [11]byte{'i', 'n', 'k', ' ', 'h', 'a', 's', 'h', 'm', 'a', 'p'}

// LazyHashMap is a lazy storage mapping that stores entries under hashes of
// their SCALE/CBOR-encoded keys, offset by a bound root key.
type LazyHashMap[K comparable, V any] struct {
	root    *storagekey.StorageKey
	entries map[K]*entry.Entry[V]
	hasher  hash.Hash
	codec   hostio.Codec
	store   hostio.HostStore
}

// New creates a new, unbound lazy hash map. A map created this way cannot
// load from or write to contract storage: all operations that touch the
// host will return hostio.ErrUnboundMap.
func New[K comparable, V any](hasher hostio.HasherFactory, codec hostio.Codec, store hostio.HostStore) *LazyHashMap[K, V] {
	return &LazyHashMap[K, V]{
		entries: make(map[K]*entry.Entry[V]),
		hasher:  hasher(),
		codec:   codec,
		store:   store,
	}
}

// Lazy creates a new, empty lazy hash map bound to root. Exported for
// callers that bind a map outside of the PullSpread protocol (e.g. a
// higher-level container computing its own offset).
func Lazy[K comparable, V any](root storagekey.StorageKey, hasher hostio.HasherFactory, codec hostio.Codec, store hostio.HostStore) *LazyHashMap[K, V] {
	m := New[K, V](hasher, codec, store)
	m.root = &root
	return m
}

// PullSpread constructs a LazyHashMap bound to the next FootprintLazyHashMap
// slot of ptr, advancing it.
func PullSpread[K comparable, V any](ptr *keyptr.KeyPtr, hasher hostio.HasherFactory, codec hostio.Codec, store hostio.HostStore) *LazyHashMap[K, V] {
	key := ptr.AdvanceBy(FootprintLazyHashMap)
	return Lazy[K, V](key, hasher, codec, store)
}

// Key returns the bound root key, or nil if the map is unbound.
func (m *LazyHashMap[K, V]) Key() *storagekey.StorageKey {
	return m.root
}

// slotFor derives the storage slot for k: H(prefix ‖ root_key ‖ encode(k)).
// The root key contributes its raw 32 bytes (a StorageKey has no encoding
// ambiguity of its own); the user key goes through the injected Codec.
func (m *LazyHashMap[K, V]) slotFor(k K) (storagekey.StorageKey, error) {
	if m.root == nil {
		return storagekey.StorageKey{}, hostio.ErrUnboundMap
	}
	encodedKey, err := m.codec.Encode(k)
	if err != nil {
		return storagekey.StorageKey{}, hostio.NewDecodeError(err)
	}
	m.hasher.Reset()
	m.hasher.Write(slotPrefix[:])
	m.hasher.Write(m.root[:])
	m.hasher.Write(encodedKey)
	sum := m.hasher.Sum(nil)
	if len(sum) < storagekey.Size {
		return storagekey.StorageKey{}, fmt.Errorf("contractstore: hasher output shorter than %d bytes", storagekey.Size)
	}
	return storagekey.FromBytes(sum[:storagekey.Size]), nil
}

// lazilyLoad returns the cached entry for k, loading it from the host on
// first touch. If the map is unbound, a miss is treated as an absent value
// (a fresh unbound map behaves as empty) rather than an error, matching
// §4.5's lazy load protocol.
func (m *LazyHashMap[K, V]) lazilyLoad(k K) (*entry.Entry[V], error) {
	if e, ok := m.entries[k]; ok {
		return e, nil
	}

	if m.root == nil {
		e := entry.New[V](nil, entry.Preserved)
		m.entries[k] = e
		return e, nil
	}

	slot, err := m.slotFor(k)
	if err != nil {
		return nil, err
	}
	raw, found, err := m.store.Load(slot)
	if err != nil {
		return nil, hostio.NewHostFailure("load", err)
	}
	var value *V
	if found {
		var v V
		if err := m.codec.Decode(raw, &v); err != nil {
			return nil, hostio.NewDecodeError(err)
		}
		value = &v
	}
	e := entry.New(value, entry.Preserved)
	m.entries[k] = e
	return e, nil
}

// Get returns a reference to the value associated with k, if any.
func (m *LazyHashMap[K, V]) Get(k K) (*V, error) {
	e, err := m.lazilyLoad(k)
	if err != nil {
		return nil, err
	}
	return e.Value(), nil
}

// GetMut returns an exclusive reference to the value associated with k, if
// any. Identical to Get in this single-threaded model; kept as a distinct
// method to mirror the exclusive-vs-shared access distinction in §5.
func (m *LazyHashMap[K, V]) GetMut(k K) (*V, error) {
	e, err := m.lazilyLoad(k)
	if err != nil {
		return nil, err
	}
	return e.Value(), nil
}

// Put unconditionally inserts Entry(new, Mutated), performing no load.
// Contrast with PutGet, which loads first and returns the old value.
func (m *LazyHashMap[K, V]) Put(k K, newValue *V) {
	m.entries[k] = entry.New(newValue, entry.Mutated)
}

// PutGet loads the current entry for k, replaces its value, and returns the
// value that was there before the replacement.
func (m *LazyHashMap[K, V]) PutGet(k K, newValue *V) (*V, error) {
	e, err := m.lazilyLoad(k)
	if err != nil {
		return nil, err
	}
	return e.Put(newValue), nil
}

// Swap exchanges the values stored at x and y. If x == y the call is a
// no-op. If both entries are currently absent, the call is also a no-op (no
// entry is marked dirty). The two loaded entries are provably distinct
// heap objects whenever x != y, since lazilyLoad inserts at most one entry
// per distinct key and Go map values are independently allocated — so the
// in-place swap below never aliases.
func (m *LazyHashMap[K, V]) Swap(x, y K) error {
	if x == y {
		return nil
	}
	ex, err := m.lazilyLoad(x)
	if err != nil {
		return err
	}
	ey, err := m.lazilyLoad(y)
	if err != nil {
		return err
	}
	if ex.Value() == nil && ey.Value() == nil {
		return nil
	}
	ex.ReplaceState(entry.Mutated)
	ey.ReplaceState(entry.Mutated)
	vx, vy := ex.Value(), ey.Value()
	ex.SetValue(vy)
	ey.SetValue(vx)
	return nil
}

// deepCleanupValue is implemented by V types that own child storage which
// must be released recursively when their top-level slot is cleared.
type deepCleanupValue interface {
	RequiresDeepCleanUp() bool
	ClearSpread(ptr *keyptr.KeyPtr) error
}

// ClearPackedAt clears the host-side slot for k. This is an unsynchronized
// host-side clear: the in-memory cache is deliberately NOT updated (§4.5,
// §9 Open Question). Callers must not rely on a subsequent Get returning
// nil for k unless they also update the cache themselves (e.g. via Put).
func (m *LazyHashMap[K, V]) ClearPackedAt(k K) error {
	slot, err := m.slotFor(k)
	if err != nil {
		return err
	}
	if dc, ok := any((*V)(nil)).(deepCleanupValue); ok && dc.RequiresDeepCleanUp() {
		v, err := m.Get(k)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("contractstore: cannot clear a non-existing entity")
		}
		if asDC, ok := any(v).(deepCleanupValue); ok {
			if err := asDC.ClearSpread(keyptr.New(slot)); err != nil {
				return err
			}
		}
	}
	if err := m.store.Clear(slot); err != nil {
		return hostio.NewHostFailure("clear", err)
	}
	return nil
}

// PushSpread writes every cached entry back to its derived slot. Iteration
// order does not matter: slots are independent (§4.5).
func (m *LazyHashMap[K, V]) PushSpread(ptr *keyptr.KeyPtr) error {
	ptr.AdvanceBy(FootprintLazyHashMap)
	for k, e := range m.entries {
		slot, err := m.slotFor(k)
		if err != nil {
			return err
		}
		if err := e.PushPackedRoot(slot, m.store, m.codec); err != nil {
			return err
		}
	}
	return nil
}

// ClearSpread is a no-op at this level: the map does not know its full key
// set. Higher-level containers that do know are responsible for calling
// ClearPackedAt for each of their keys (§4.5).
func (m *LazyHashMap[K, V]) ClearSpread(ptr *keyptr.KeyPtr) error {
	ptr.AdvanceBy(FootprintLazyHashMap)
	return nil
}

// String renders the map in the stable debug grammar from §6:
// LazyHashMap { key: <Option<Key>>, cached_entries: { <k>: Entry{...}, ... } }.
// Cached entries are rendered in a stable (sorted by %v) order so the
// output is deterministic for tests, even though map iteration is not.
func (m *LazyHashMap[K, V]) String() string {
	var keyRepr string
	if m.root == nil {
		keyRepr = "None"
	} else {
		keyRepr = fmt.Sprintf("Some(%x)", m.root[:])
	}

	type kv struct {
		k string
		e *entry.Entry[V]
	}
	items := make([]kv, 0, len(m.entries))
	for k, e := range m.entries {
		items = append(items, kv{k: fmt.Sprintf("%v", k), e: e})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].k < items[j].k })

	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s: %s", it.k, it.e.String()))
	}
	return fmt.Sprintf("LazyHashMap { key: %s, cached_entries: {%s} }", keyRepr, strings.Join(parts, ", "))
}
