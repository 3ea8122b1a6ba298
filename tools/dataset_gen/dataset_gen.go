// Command dataset_gen writes deterministic StorageKey datasets to a file,
// for standalone contract-storage load testing outside `go test`. Each line
// is one 64-character hex-encoded 32-byte key, derived the same way
// bench/bench_test.go derives its benchmark dataset: both call
// internal/keydataset.Generate, so a run here with the same flags reproduces
// exactly the keys the benchmarks exercise.
//
// Usage:
//
//	go run ./tools/dataset_gen -n 1000000 -dist=zipf -seed=42 -out keys.txt
//
// Flags:
//
//	-n       number of keys to generate (default 1e6)
//	-dist    distribution: "uniform" or "zipf" (default uniform)
//	-zipfs   Zipf s parameter (>1)  (default 1.2)
//	-zipfv   Zipf v parameter (>=1) (default 1.0)
//	-seed    RNG seed (default current time)
//	-out     output file (default stdout)
//
// © 2025 contractstore authors. MIT License.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/voskan/contractstore/internal/keydataset"
)

func main() {
	var (
		n       = flag.Int("n", 1_000_000, "number of keys to generate")
		dist    = flag.String("dist", "uniform", "distribution: uniform or zipf")
		zipfS   = flag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV   = flag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	keys, err := keydataset.Generate(keydataset.Options{
		N:     *n,
		Dist:  keydataset.Distribution(*dist),
		ZipfS: *zipfS,
		ZipfV: *zipfV,
		Seed:  *seedVal,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var out *os.File
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()

	for _, k := range keys {
		fmt.Fprintf(w, "%x\n", k.Bytes())
	}
}
