// Package cborcodec implements hostio.Codec on top of
// github.com/fxamacker/cbor/v2, using CBOR's canonical encoding mode
// (RFC 8949 §4.2.1) so that encoding the same Go value always produces the
// same bytes — the determinism slot derivation and storage round-tripping
// both depend on.
//
// © 2025 contractstore authors. MIT License.
package cborcodec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Codec is a hostio.Codec backed by canonical CBOR.
type Codec struct {
	encMode cbor.EncMode
}

// New constructs a Codec using CBOR's canonical encoding options.
func New() *Codec {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		// CanonicalEncOptions() is a fixed, known-good option set; EncMode
		// only errors on invalid option combinations.
		panic("cborcodec: canonical EncMode construction failed: " + err.Error())
	}
	return &Codec{encMode: mode}
}

// Encode renders v as canonical CBOR.
func (c *Codec) Encode(v any) ([]byte, error) {
	b, err := c.encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cborcodec: encode: %w", err)
	}
	return b, nil
}

// Decode parses CBOR bytes into out, which must be a pointer.
func (c *Codec) Decode(data []byte, out any) error {
	if err := cbor.Unmarshal(data, out); err != nil {
		return fmt.Errorf("cborcodec: decode: %w", err)
	}
	return nil
}
