package entry

import (
	"testing"

	"github.com/voskan/contractstore/pkg/storagekey"
)

type memStore struct {
	data map[storagekey.StorageKey][]byte
}

func newMemStore() *memStore { return &memStore{data: map[storagekey.StorageKey][]byte{}} }

func (m *memStore) Load(key storagekey.StorageKey) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}
func (m *memStore) Store(key storagekey.StorageKey, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}
func (m *memStore) Clear(key storagekey.StorageKey) error {
	delete(m.data, key)
	return nil
}

type identityCodec struct{}

func (identityCodec) Encode(v any) ([]byte, error) {
	p := v.(*int)
	return []byte{byte(*p)}, nil
}
func (identityCodec) Decode(data []byte, out any) error {
	p := out.(*int)
	*p = int(data[0])
	return nil
}

func TestPutAlwaysMutates(t *testing.T) {
	e := New[int](nil, Preserved)
	old := e.Put(nil)
	if old != nil {
		t.Fatalf("expected no previous value")
	}
	if e.State() != Mutated {
		t.Fatalf("Put(None) over None must still mark Mutated")
	}
}

func TestPushPackedRootWritesOnlyWhenMutated(t *testing.T) {
	store := newMemStore()
	codec := identityCodec{}
	key := storagekey.StorageKey{0x01}

	v := 7
	e := New(&v, Mutated)
	if err := e.PushPackedRoot(key, store, codec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.State() != Preserved {
		t.Fatalf("expected Preserved after flush")
	}
	if _, ok := store.data[key]; !ok {
		t.Fatalf("expected value to be written to host")
	}

	// A Preserved entry must not touch the host again.
	delete(store.data, key)
	if err := e.PushPackedRoot(key, store, codec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.data[key]; ok {
		t.Fatalf("Preserved entry must not be rewritten")
	}
}

func TestPushPackedRootClearsOnNil(t *testing.T) {
	store := newMemStore()
	codec := identityCodec{}
	key := storagekey.StorageKey{0x02}
	store.data[key] = []byte{9}

	e := New[int](nil, Mutated)
	if err := e.PushPackedRoot(key, store, codec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.data[key]; ok {
		t.Fatalf("expected host slot to be cleared")
	}
}

func TestStringDebugGrammar(t *testing.T) {
	v := 1
	e := New(&v, Mutated)
	want := "Entry { value: Some(1), state: Mutated }"
	if got := e.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	e2 := New[int](nil, Preserved)
	want2 := "Entry { value: None, state: Preserved }"
	if got := e2.String(); got != want2 {
		t.Fatalf("got %q, want %q", got, want2)
	}
}
