package storagekey

import "testing"

func TestAddSubU32RoundTrip(t *testing.T) {
	k := StorageKey{0x42}
	for i := range k {
		k[i] = 0x42
	}
	sum, overflow := k.AddU32(1337)
	if overflow {
		t.Fatalf("unexpected overflow")
	}
	diff := sum.Sub(k)
	got, ok := diff.TryToU32()
	if !ok || got != 1337 {
		t.Fatalf("got %v, %v, want 1337, true", got, ok)
	}
	back, overflow := sum.SubU32(1337)
	if overflow {
		t.Fatalf("unexpected overflow on the way back")
	}
	if back != k {
		t.Fatalf("(k + n) - n != k")
	}
}

func TestKeySubLiteral(t *testing.T) {
	zeroMinusOne, overflow := StorageKey{}.SubU32(1)
	if !overflow {
		t.Fatalf("expected overflow wrapping below zero")
	}
	want := StorageKey{}
	for i := range want {
		want[i] = 0xFF
	}
	if zeroMinusOne != want {
		t.Fatalf("got %x, want all-0xFF", zeroMinusOne)
	}
}

func TestKeySubSameAsOriginal(t *testing.T) {
	key := StorageKey{}
	for i := range key {
		key[i] = 0x42
	}
	same, overflow := key.SubU32(0)
	if overflow {
		t.Fatalf("unexpected overflow")
	}
	if same != key {
		t.Fatalf("subtracting zero must be a no-op")
	}
}

func TestAddU32OverflowWraps(t *testing.T) {
	allOnes := StorageKey{}
	for i := range allOnes {
		allOnes[i] = 0xFF
	}
	wrapped, overflow := allOnes.AddU32(1)
	if !overflow {
		t.Fatalf("expected adding 1 to the maximum key to overflow the ring")
	}
	if wrapped != (StorageKey{}) {
		t.Fatalf("expected wraparound to the zero key, got %x", wrapped)
	}
}

func TestKeyDiffTryToWidths(t *testing.T) {
	k1 := StorageKey{}
	k2, _ := k1.AddU32(0x42)
	diff := k2.Sub(k1)
	if v, ok := diff.TryToU32(); !ok || v != 0x42 {
		t.Fatalf("TryToU32 = %v, %v", v, ok)
	}
	if v, ok := diff.TryToU64(); !ok || v != 0x42 {
		t.Fatalf("TryToU64 = %v, %v", v, ok)
	}

	k3, _ := k1.AddU64(uint64(^uint32(0)) + 1)
	diff2 := k3.Sub(k1)
	if _, ok := diff2.TryToU32(); ok {
		t.Fatalf("expected TryToU32 to fail for a value above the u32 range")
	}
	if v, ok := diff2.TryToU64(); !ok || v != uint64(^uint32(0))+1 {
		t.Fatalf("TryToU64 = %v, %v", v, ok)
	}
}

func TestKeyDiffTryToU128(t *testing.T) {
	k1 := StorageKey{}
	k2, _ := k1.AddU128(Uint128{Hi: 1, Lo: 42})
	diff := k2.Sub(k1)
	v, ok := diff.TryToU128()
	if !ok || v.Hi != 1 || v.Lo != 42 {
		t.Fatalf("TryToU128 = %+v, %v", v, ok)
	}
	if _, ok := diff.TryToU64(); ok {
		t.Fatalf("expected TryToU64 to fail once the high word is non-zero")
	}
}

func TestCompareAndEqual(t *testing.T) {
	a := StorageKey{}
	b, _ := a.AddU32(1)
	if !(a.Compare(b) < 0) {
		t.Fatalf("expected a < b")
	}
	if a.Equal(b) {
		t.Fatalf("expected a != b")
	}
	if !a.Equal(a) {
		t.Fatalf("expected a == a")
	}
}
