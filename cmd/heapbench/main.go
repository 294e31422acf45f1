// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command heapbench replays a pseudo-random allocate/realloc/free trace
// against a heap.Heap and reports the backing region's final size and
// elapsed time.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/cznic/heapfit/arena"
	"github.com/cznic/heapfit/heap"
)

var (
	maxHandles = flag.Int("n", 1000, "target live allocation count")
	maxSize    = flag.Int("sz", 1<<16, "maximum requested payload size")
	seed       = flag.Int64("seed", 42, "PRNG seed")
	verify     = flag.Bool("verify", false, "run Check() after every operation")
	file       = flag.String("file", "", "back the heap with this file instead of memory")
)

func newBacking() (heap.Backing, func()) {
	if *file == "" {
		return arena.New(), func() {}
	}

	f, err := os.OpenFile(*file, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0666)
	if err != nil {
		log.Fatal(err)
	}

	a, err := arena.NewFileArena(f)
	if err != nil {
		log.Fatal(err)
	}

	return a, func() {
		f.Close()
		os.Remove(*file)
	}
}

func run(n, maxSz int, seed int64, verify bool) (int64, time.Duration) {
	a, cleanup := newBacking()
	defer cleanup()

	h := heap.New(a, heap.Config{})
	rng := rand.New(rand.NewSource(seed))

	var handles []int64
	t0 := time.Now()

	checkpoint := func() {
		if verify && !h.Check() {
			log.Fatal("heap failed Check after a trace operation")
		}
	}

	for len(handles) < n {
		for nalloc := len(handles)/2 + 1; nalloc != 0; nalloc-- {
			ln := int64(rng.Intn(maxSz + 1))
			p, err := h.Allocate(ln)
			if err != nil {
				log.Fatal(err)
			}
			checkpoint()
			handles = append(handles, p)
		}

		for nrealloc := len(handles) / 2; nrealloc != 0; nrealloc-- {
			i := rng.Intn(len(handles))
			// A size of 0 would free the handle in place (Reallocate's
			// documented zero-size behaviour), leaving handles[i] stale for
			// any later operation; skip it rather than special-casing that
			// return here.
			ln := int64(1 + rng.Intn(maxSz))
			p, err := h.Reallocate(handles[i], ln)
			if err != nil {
				log.Fatal(err)
			}
			checkpoint()
			handles[i] = p
		}

		for ndel := len(handles) / 4; ndel != 0 && len(handles) > 1; ndel-- {
			i := rng.Intn(len(handles))
			ln := len(handles)
			h.Free(handles[i])
			checkpoint()
			handles[i] = handles[ln-1]
			handles = handles[:ln-1]
		}
	}

	for _, p := range handles {
		h.Free(p)
		checkpoint()
	}

	if !h.Check() {
		log.Fatal("heap failed Check after the full trace drained")
	}

	return a.Size(), time.Since(t0)
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	sz, d := run(*maxHandles, *maxSize, *seed, *verify)
	fmt.Printf("n %d, final region size %d, time %s\n", *maxHandles, sz, d)
}
