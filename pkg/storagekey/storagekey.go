// Package storagekey implements the 256-bit slot identifier used to address
// contract storage. A StorageKey behaves like a raw pointer into a flat
// key-value store: it supports equality, total ordering, and big-endian,
// wrapping arithmetic with u32/u64/u128 operands. Keys are opaque — nested
// data structures partition the 256-bit space by arithmetic, not by nominal
// structure, so a wide key keeps logically-disjoint regions from colliding.
//
// Arithmetic is implemented on top of github.com/holiman/uint256, which
// already models exactly the ring we need: a fixed-width unsigned integer
// with wrapping add/sub over 2^256.
//
// © 2025 contractstore authors. MIT License.
package storagekey

import (
	"bytes"

	"github.com/holiman/uint256"
)

// Size is the byte width of a StorageKey and of a KeyDiff.
const Size = 32

// StorageKey is a 32-byte slot identifier in contract storage.
type StorageKey [Size]byte

// Zero is the all-zero key, handed out by KeyPtr at the root of a fresh
// instance before any FOOTPRINT has been consumed.
var Zero = StorageKey{}

// FromBytes copies the first Size bytes of b into a new StorageKey. It
// panics if b is shorter than Size, mirroring the fixed-width contract the
// rest of the package relies on.
func FromBytes(b []byte) StorageKey {
	if len(b) < Size {
		panic("storagekey: source slice shorter than key size")
	}
	var k StorageKey
	copy(k[:], b[:Size])
	return k
}

// Bytes returns the big-endian byte representation of the key.
func (k StorageKey) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, k[:])
	return out
}

// Equal reports whether two keys are identical.
func (k StorageKey) Equal(other StorageKey) bool {
	return k == other
}

// Compare returns -1, 0 or 1 following the big-endian byte ordering of the
// two keys, giving StorageKey a total order.
func (k StorageKey) Compare(other StorageKey) int {
	return bytes.Compare(k[:], other[:])
}

func (k StorageKey) toUint256() *uint256.Int {
	z := new(uint256.Int)
	z.SetBytes(k[:])
	return z
}

func fromUint256(z *uint256.Int) StorageKey {
	var k StorageKey
	b := z.Bytes32()
	copy(k[:], b[:])
	return k
}

// AddU32 adds n to the key using big-endian wrapping arithmetic over the
// 2^256 ring. The second return value is true iff the addition wrapped past
// the top of the ring (an OverflowNotice condition, §7).
func (k StorageKey) AddU32(n uint32) (StorageKey, bool) {
	return k.AddU64(uint64(n))
}

// SubU32 subtracts n from the key with the same wrapping semantics as AddU32.
func (k StorageKey) SubU32(n uint32) (StorageKey, bool) {
	return k.SubU64(uint64(n))
}

// AddU64 adds n to the key using big-endian wrapping arithmetic.
func (k StorageKey) AddU64(n uint64) (StorageKey, bool) {
	x := k.toUint256()
	y := new(uint256.Int).SetUint64(n)
	sum := new(uint256.Int).Add(x, y)
	overflowed := sum.Lt(x) // wrapped iff result is smaller than either operand
	return fromUint256(sum), overflowed
}

// SubU64 subtracts n from the key using big-endian wrapping arithmetic.
func (k StorageKey) SubU64(n uint64) (StorageKey, bool) {
	x := k.toUint256()
	y := new(uint256.Int).SetUint64(n)
	diff := new(uint256.Int).Sub(x, y)
	overflowed := diff.Gt(x) // wrapped iff result is larger than the minuend
	return fromUint256(diff), overflowed
}

// Uint128 is an unsigned 128-bit value represented as two 64-bit words,
// since Go has no native 128-bit integer type.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

func (u Uint128) toUint256() *uint256.Int {
	words := [4]uint64{u.Lo, u.Hi, 0, 0}
	return new(uint256.Int).SetBytes(encodeWords(words))
}

// encodeWords renders the little-endian 64-bit words as a big-endian byte
// slice suitable for uint256.SetBytes.
func encodeWords(words [4]uint64) []byte {
	var b [32]byte
	for i, w := range words {
		off := 24 - i*8
		b[off] = byte(w >> 56)
		b[off+1] = byte(w >> 48)
		b[off+2] = byte(w >> 40)
		b[off+3] = byte(w >> 32)
		b[off+4] = byte(w >> 24)
		b[off+5] = byte(w >> 16)
		b[off+6] = byte(w >> 8)
		b[off+7] = byte(w)
	}
	return b[:]
}

// AddU128 adds a 128-bit operand to the key using wrapping arithmetic.
func (k StorageKey) AddU128(n Uint128) (StorageKey, bool) {
	x := k.toUint256()
	y := n.toUint256()
	sum := new(uint256.Int).Add(x, y)
	overflowed := sum.Lt(x)
	return fromUint256(sum), overflowed
}

// SubU128 subtracts a 128-bit operand from the key using wrapping
// arithmetic.
func (k StorageKey) SubU128(n Uint128) (StorageKey, bool) {
	x := k.toUint256()
	y := n.toUint256()
	diff := new(uint256.Int).Sub(x, y)
	overflowed := diff.Gt(x)
	return fromUint256(diff), overflowed
}

// Sub computes the 256-bit two's-complement difference k - other, returning
// a KeyDiff. This is always defined (it wraps like the rest of the ring) and
// satisfies (a + n) - a == KeyDiff(n) for any n that did not overflow.
func (k StorageKey) Sub(other StorageKey) KeyDiff {
	x := k.toUint256()
	y := other.toUint256()
	diff := new(uint256.Int).Sub(x, y)
	return KeyDiff(fromUint256(diff))
}

// KeyDiff is the 256-bit difference between two StorageKeys.
type KeyDiff StorageKey

// Bytes returns the big-endian byte representation of the difference.
func (d KeyDiff) Bytes() []byte {
	return StorageKey(d).Bytes()
}

// TryToU32 succeeds iff all bytes above the low 4 are zero.
func (d KeyDiff) TryToU32() (uint32, bool) {
	const width = 4
	if !highBytesZero(d[:], width) {
		return 0, false
	}
	return uint32(lowBytesUint(d[:], width)), true
}

// TryToU64 succeeds iff all bytes above the low 8 are zero.
func (d KeyDiff) TryToU64() (uint64, bool) {
	const width = 8
	if !highBytesZero(d[:], width) {
		return 0, false
	}
	return lowBytesUint(d[:], width), true
}

// TryToU128 succeeds iff all bytes above the low 16 are zero. The result is
// returned as a Uint128 since Go lacks a native 128-bit integer.
func (d KeyDiff) TryToU128() (Uint128, bool) {
	const width = 16
	if !highBytesZero(d[:], width) {
		return Uint128{}, false
	}
	lo := lowBytesUint(d[:], 8)
	hi := lowBytesUint(d[8:Size-8], 8)
	return Uint128{Hi: hi, Lo: lo}, true
}

func highBytesZero(b []byte, keepLow int) bool {
	for _, by := range b[:len(b)-keepLow] {
		if by != 0 {
			return false
		}
	}
	return true
}

func lowBytesUint(b []byte, width int) uint64 {
	tail := b[len(b)-width:]
	var v uint64
	for _, by := range tail {
		v = v<<8 | uint64(by)
	}
	return v
}
