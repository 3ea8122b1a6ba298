package hash

import "testing"

func TestBlake2b256ProducesA32ByteDigest(t *testing.T) {
	h := Blake2b256()()
	h.Write([]byte("ink hashmap"))
	sum := h.Sum(nil)
	if len(sum) != 32 {
		t.Fatalf("expected 32-byte digest, got %d", len(sum))
	}
}

func TestSha256ProducesA32ByteDigest(t *testing.T) {
	h := Sha256()()
	h.Write([]byte("ink hashmap"))
	sum := h.Sum(nil)
	if len(sum) != 32 {
		t.Fatalf("expected 32-byte digest, got %d", len(sum))
	}
}

func TestFactoriesProduceIndependentInstances(t *testing.T) {
	factory := Blake2b256()
	a := factory()
	b := factory()
	a.Write([]byte("x"))
	if string(a.Sum(nil)) == string(b.Sum(nil)) {
		t.Fatalf("two instances from the same factory shared state")
	}
}
