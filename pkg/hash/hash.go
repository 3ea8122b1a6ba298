// Package hash provides the two concrete hostio.HasherFactory
// implementations named by this module's slot-derivation protocol (§6):
// BLAKE2-256 and SHA2-256. Both of the underlying constructors already
// return a stdlib-shaped hash.Hash, so no adapter type is needed — see
// hostio.HasherFactory.
//
// © 2025 contractstore authors. MIT License.
package hash

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/voskan/contractstore/pkg/hostio"
)

// Blake2b256 returns a HasherFactory producing 32-byte BLAKE2b digests, the
// default hasher for slot derivation.
func Blake2b256() hostio.HasherFactory {
	return func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			// blake2b.New256 only fails for a too-long key, and we never
			// pass one.
			panic("hash: blake2b.New256 failed unexpectedly: " + err.Error())
		}
		return h
	}
}

// Sha256 returns a HasherFactory producing 32-byte SHA-256 digests, the
// second hasher explicitly named by this module's protocol. No third-party
// package in this module's dependency set improves on the standard
// library's crypto/sha256 for this exact, stdlib-shaped construction, so it
// is used directly rather than through an adapter.
func Sha256() hostio.HasherFactory {
	return sha256.New
}
