// Package hoststore provides concrete hostio.HostStore implementations: an
// in-memory map for tests and simulation, and a BadgerDB-backed store for
// durable, disk-resident contract storage.
//
// © 2025 contractstore authors. MIT License.
package hoststore

import (
	"sync"

	"github.com/voskan/contractstore/pkg/metrics"
	"github.com/voskan/contractstore/pkg/storagekey"
)

// Mem is a goroutine-safe, in-memory hostio.HostStore. It is the store used
// by the benchmarks in bench/ and by internal/simharness and its tests.
type Mem struct {
	mu     sync.RWMutex
	data   map[storagekey.StorageKey][]byte
	metric metrics.Sink
}

// NewMem constructs an empty Mem store with metric observation disabled.
func NewMem() *Mem {
	return &Mem{data: make(map[storagekey.StorageKey][]byte), metric: metrics.Noop()}
}

// WithMetrics attaches a metrics sink to an existing Mem store.
func (m *Mem) WithMetrics(sink metrics.Sink) *Mem {
	m.metric = sink
	return m
}

// Load implements hostio.HostStore.
func (m *Mem) Load(key storagekey.StorageKey) ([]byte, bool, error) {
	m.metric.IncLoad()
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Store implements hostio.HostStore.
func (m *Mem) Store(key storagekey.StorageKey, value []byte) error {
	m.metric.IncStore()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Clear implements hostio.HostStore.
func (m *Mem) Clear(key storagekey.StorageKey) error {
	m.metric.IncClear()
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len reports the number of occupied slots. Useful for tests and the
// inspector tool's snapshot endpoint.
func (m *Mem) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
