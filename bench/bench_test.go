// Package bench provides reproducible micro-benchmarks for the lazy storage
// layer. Run via: go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// The LazyHashMap and SyncCell benchmarks use a single key/value shape so
// results are comparable across versions:
//   - Key   — uint64
//   - Value — 64-byte struct
//
// We measure:
//  1. LazyHashMapPut         — write-only, cache-only workload
//  2. LazyHashMapGetCached   — read-only, served entirely from cache
//  3. LazyHashMapGetCold     — read-only, forcing a host Load every time
//  4. LazyHashMapPushSpread  — flush cost for N dirty entries
//  5. SyncCellGet            — cached read after the first Desync load
//  6. HostStoreLoadStoreZipf — raw hoststore.Mem Load over zipf-skewed
//     StorageKeys with []byte values
//
// © 2025 contractstore authors. MIT License.
package bench

import (
	"math/rand"
	"runtime"
	"testing"

	"github.com/voskan/contractstore/internal/keydataset"
	"github.com/voskan/contractstore/pkg/codec/cborcodec"
	"github.com/voskan/contractstore/pkg/hash"
	"github.com/voskan/contractstore/pkg/hoststore"
	"github.com/voskan/contractstore/pkg/keyptr"
	"github.com/voskan/contractstore/pkg/lazymap"
	"github.com/voskan/contractstore/pkg/storagekey"
	"github.com/voskan/contractstore/pkg/synccell"
)

type value64 struct {
	_ [64]byte
}

const keyCount = 1 << 16

var ds = func() []uint64 {
	// Package-level vars are initialized before init() runs, so the dataset
	// uses its own seeded source rather than the global one.
	rnd := rand.New(rand.NewSource(42))
	arr := make([]uint64, keyCount)
	for i := range arr {
		arr[i] = rnd.Uint64()
	}
	return arr
}()

func newBoundLazyHashMap(b *testing.B) *lazymap.LazyHashMap[uint64, value64] {
	b.Helper()
	store := hoststore.NewMem()
	codec := cborcodec.New()
	hasher := hash.Blake2b256()
	return lazymap.PullSpread[uint64, value64](keyptr.New(storagekey.Zero), hasher, codec, store)
}

func BenchmarkLazyHashMapPut(b *testing.B) {
	m := newBoundLazyHashMap(b)
	val := value64{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := ds[i&(keyCount-1)]
		m.Put(key, &val)
	}
}

func BenchmarkLazyHashMapGetCached(b *testing.B) {
	m := newBoundLazyHashMap(b)
	val := value64{}
	for _, k := range ds {
		m.Put(k, &val)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := ds[i&(keyCount-1)]
		if _, err := m.Get(k); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLazyHashMapGetCold(b *testing.B) {
	val := value64{}
	store := hoststore.NewMem()
	codec := cborcodec.New()
	hasher := hash.Blake2b256()
	writer := lazymap.PullSpread[uint64, value64](keyptr.New(storagekey.Zero), hasher, codec, store)
	for _, k := range ds {
		writer.Put(k, &val)
	}
	if err := writer.PushSpread(keyptr.New(storagekey.Zero)); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Fresh instance per iteration so every Get is a genuine cache miss.
		reader := lazymap.PullSpread[uint64, value64](keyptr.New(storagekey.Zero), hasher, codec, store)
		k := ds[i&(keyCount-1)]
		if _, err := reader.Get(k); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLazyHashMapPushSpread(b *testing.B) {
	val := value64{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m := newBoundLazyHashMap(b)
		for _, k := range ds[:1024] {
			m.Put(k, &val)
		}
		b.StartTimer()
		if err := m.PushSpread(keyptr.New(storagekey.Zero)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSyncCellGet(b *testing.B) {
	store := hoststore.NewMem()
	codec := cborcodec.New()
	cell := synccell.PullSpread[value64](keyptr.New(storagekey.Zero), store, codec)
	if err := cell.Set(value64{}); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cell.Get(); err != nil {
			b.Fatal(err)
		}
	}
}

// zipfSlots is the same zipf-skewed StorageKey dataset tools/dataset_gen
// writes to disk for external load generators — generated here through the
// shared internal/keydataset.Generate so the two never drift apart.
var zipfSlots = func() []storagekey.StorageKey {
	keys, err := keydataset.Generate(keydataset.Options{
		N:     keyCount,
		Dist:  keydataset.Zipf,
		ZipfS: 1.2,
		ZipfV: 1.0,
		Seed:  42,
	})
	if err != nil {
		panic(err)
	}
	return keys
}()

// BenchmarkHostStoreLoadStoreZipf measures raw hostio.HostStore throughput
// under the hot-key access pattern a ledger-style LazyHashMap produces in
// practice (a handful of accounts dominating traffic), bypassing the
// hashing/codec layer entirely so the numbers isolate store overhead.
func BenchmarkHostStoreLoadStoreZipf(b *testing.B) {
	store := hoststore.NewMem()
	val := []byte("contractstore-bench-value")
	for _, k := range zipfSlots {
		if err := store.Store(k, val); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := zipfSlots[i&(keyCount-1)]
		if _, _, err := store.Load(k); err != nil {
			b.Fatal(err)
		}
	}
}

func init() {
	rand.Seed(42)
	runtime.GOMAXPROCS(runtime.NumCPU())
}
