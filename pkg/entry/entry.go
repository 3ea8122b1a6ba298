// Package entry implements the cached-value-plus-dirty-tag pair shared by
// every caching layer in this module (SyncCell, LazyHashMap). An Entry holds
// an optional value (nil means "slot absent") and a two-state tag recording
// whether the in-memory value has been written since it was last known to
// match the host store.
//
// © 2025 contractstore authors. MIT License.
package entry

import (
	"fmt"

	"github.com/voskan/contractstore/pkg/hostio"
	"github.com/voskan/contractstore/pkg/storagekey"
)

// State is the dirty-tracking tag of an Entry.
type State uint8

const (
	// Preserved means the in-memory value matches storage (or both are
	// absent).
	Preserved State = iota
	// Mutated means the slot must be rewritten on flush.
	Mutated
)

func (s State) String() string {
	if s == Mutated {
		return "Mutated"
	}
	return "Preserved"
}

// Entry is a cached optional value paired with its dirty-state tag. A nil
// value represents "slot absent", which is itself a legal cached value.
type Entry[V any] struct {
	value *V
	state State
}

// New constructs an Entry with the given value (nil for absent) and state.
func New[V any](value *V, state State) *Entry[V] {
	return &Entry[V]{value: value, state: state}
}

// Value returns the cached value, or nil if the slot is cached as absent.
func (e *Entry[V]) Value() *V {
	return e.value
}

// SetValue overwrites the cached value in place without touching the dirty
// state. Used internally by operations (e.g. Swap) that manage state
// transitions themselves.
func (e *Entry[V]) SetValue(v *V) {
	e.value = v
}

// State returns the current dirty-state tag.
func (e *Entry[V]) State() State {
	return e.state
}

// ReplaceState overrides the dirty-state tag directly.
func (e *Entry[V]) ReplaceState(s State) {
	e.state = s
}

// Put replaces the cached value and returns the previous one. The resulting
// state is always Mutated, even when overwriting nil with nil, because the
// caller's intent was an explicit write.
func (e *Entry[V]) Put(newValue *V) *V {
	old := e.value
	e.value = newValue
	e.state = Mutated
	return old
}

// PushPackedRoot writes the entry to the host store iff its state is
// Mutated, then transitions it to Preserved. A nil value clears the host
// slot instead of storing it. Entries that are already Preserved are left
// untouched and no host call is made.
func (e *Entry[V]) PushPackedRoot(key storagekey.StorageKey, store hostio.HostStore, codec hostio.Codec) error {
	if e.state != Mutated {
		return nil
	}
	if e.value == nil {
		if err := store.Clear(key); err != nil {
			return hostio.NewHostFailure("clear", err)
		}
		e.state = Preserved
		return nil
	}
	encoded, err := codec.Encode(e.value)
	if err != nil {
		return hostio.NewDecodeError(err)
	}
	if err := store.Store(key, encoded); err != nil {
		return hostio.NewHostFailure("store", err)
	}
	e.state = Preserved
	return nil
}

// String renders the entry in the stable debug grammar from spec §6:
// Entry { value: <Option<V>>, state: <Mutated|Preserved> }.
func (e *Entry[V]) String() string {
	if e.value == nil {
		return fmt.Sprintf("Entry { value: None, state: %s }", e.state)
	}
	return fmt.Sprintf("Entry { value: Some(%v), state: %s }", *e.value, e.state)
}
