// Package hostio declares the external capabilities the lazy storage layer
// consumes but does not implement: the raw host key-value store, the value
// codec, and the hash function used for slot derivation. Concrete
// implementations live in sibling packages (hoststore, codec/cborcodec,
// hash) so that the core packages (entry, typedcell, synccell, lazymap)
// depend only on these interfaces, never on a specific backend.
//
// © 2025 contractstore authors. MIT License.
package hostio

import (
	"hash"

	"github.com/voskan/contractstore/pkg/storagekey"
)

// HostStore is the raw host storage ABI: load/store/clear by 256-bit key.
// Implementations must be synchronous and are treated by the core as
// instantaneous (§5).
type HostStore interface {
	// Load returns the raw bytes stored at key, or found=false if the slot
	// is empty.
	Load(key storagekey.StorageKey) (value []byte, found bool, err error)
	// Store writes value at key, overwriting any previous contents.
	Store(key storagekey.StorageKey, value []byte) error
	// Clear deletes any value stored at key. Clearing an already-empty slot
	// is not an error.
	Clear(key storagekey.StorageKey) error
}

// Codec performs deterministic encode/decode of values. The same input MUST
// always produce the same output bytes: slot derivation and storage
// round-tripping both depend on that determinism.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

// HasherFactory produces a fresh hash.Hash ready for use. Modeling the
// Hasher capability this way lets a standard-library-shaped constructor such
// as sha256.New serve directly; constructors that take extra arguments, such
// as blake2b.New256, need only a small closure (see pkg/hash).
type HasherFactory func() hash.Hash
