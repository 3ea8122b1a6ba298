// Package keydataset generates deterministic StorageKey datasets shared by
// tools/dataset_gen (which writes them to a file for external load
// generators) and bench/bench_test.go (which benchmarks hoststore.Mem
// directly against them), so both stay reproducible from the same seed.
//
// Each key is derived the same way LazyHashMap derives a slot from a user
// key: hash an index drawn from the requested distribution. The skew of the
// "zipf" distribution models the hot-key access pattern of a ledger-style
// LazyHashMap, where a handful of accounts dominate traffic.
//
// © 2025 contractstore authors. MIT License.
package keydataset

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	contracthash "github.com/voskan/contractstore/pkg/hash"
	"github.com/voskan/contractstore/pkg/storagekey"
)

// Distribution selects how indices are drawn before being hashed into keys.
type Distribution string

const (
	Uniform Distribution = "uniform"
	Zipf    Distribution = "zipf"
)

// Options configures Generate.
type Options struct {
	N     int
	Dist  Distribution
	ZipfS float64
	ZipfV float64
	Seed  int64
}

// Generate returns opts.N StorageKeys obtained by BLAKE2-256-hashing a
// sequence of uint64 indices drawn from opts.Dist. The result is fully
// determined by opts.Seed.
func Generate(opts Options) ([]storagekey.StorageKey, error) {
	rnd := rand.New(rand.NewSource(opts.Seed))

	var gen func() uint64
	switch opts.Dist {
	case Uniform, "":
		gen = rnd.Uint64
	case Zipf:
		if opts.ZipfS <= 1.0 || opts.ZipfV < 1.0 {
			return nil, fmt.Errorf("keydataset: zipf s must be >1 and v >=1, got s=%v v=%v", opts.ZipfS, opts.ZipfV)
		}
		z := rand.NewZipf(rnd, opts.ZipfS, opts.ZipfV, ^uint64(0))
		gen = z.Uint64
	default:
		return nil, fmt.Errorf("keydataset: unknown distribution %q", opts.Dist)
	}

	factory := contracthash.Blake2b256()
	keys := make([]storagekey.StorageKey, opts.N)
	var idxBuf [8]byte
	for i := 0; i < opts.N; i++ {
		binary.LittleEndian.PutUint64(idxBuf[:], gen())
		h := factory()
		h.Write(idxBuf[:])
		keys[i] = storagekey.FromBytes(h.Sum(nil))
	}
	return keys, nil
}
