package hoststore

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/voskan/contractstore/pkg/metrics"
	"github.com/voskan/contractstore/pkg/storagekey"
)

// Badger is a durable hostio.HostStore backed by an embedded BadgerDB
// instance, adapted from the disk-resident second-level store pattern this
// module's ambient tooling was built around: every StorageKey's raw bytes
// become the Badger key directly, so no key translation layer is needed.
type Badger struct {
	db     *badger.DB
	metric metrics.Sink
}

// OpenBadger opens (creating if absent) a Badger database at dir.
func OpenBadger(dir string) (*Badger, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("hoststore: open badger at %q: %w", dir, err)
	}
	return &Badger{db: db, metric: metrics.Noop()}, nil
}

// WithMetrics attaches a metrics sink to an existing Badger store.
func (b *Badger) WithMetrics(sink metrics.Sink) *Badger {
	b.metric = sink
	return b
}

// Close releases the underlying Badger handle.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Load implements hostio.HostStore.
func (b *Badger) Load(key storagekey.StorageKey) ([]byte, bool, error) {
	b.metric.IncLoad()
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key[:])
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			out = append([]byte(nil), v...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("hoststore: badger load: %w", err)
	}
	return out, true, nil
}

// Store implements hostio.HostStore.
func (b *Badger) Store(key storagekey.StorageKey, value []byte) error {
	b.metric.IncStore()
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key[:], value)
	})
	if err != nil {
		return fmt.Errorf("hoststore: badger store: %w", err)
	}
	return nil
}

// Clear implements hostio.HostStore.
func (b *Badger) Clear(key storagekey.StorageKey) error {
	b.metric.IncClear()
	err := b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key[:])
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("hoststore: badger clear: %w", err)
	}
	return nil
}

// KeyCount iterates the database and counts occupied slots, for the
// inspector tool's snapshot endpoint. It is O(n) and not meant for the hot
// path.
func (b *Badger) KeyCount() (uint64, error) {
	var n uint64
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("hoststore: badger count: %w", err)
	}
	return n, nil
}
