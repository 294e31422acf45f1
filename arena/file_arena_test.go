// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import (
	"os"
	"testing"
)

func newTestFileArena(t *testing.T) (*FileArena, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "heapfit-arena-")
	if err != nil {
		t.Fatal(err)
	}

	a, err := NewFileArena(f)
	if err != nil {
		t.Fatal(err)
	}

	return a, func() {
		f.Close()
		os.Remove(f.Name())
	}
}

func TestFileArenaGrowAndReadWrite(t *testing.T) {
	a, cleanup := newTestFileArena(t)
	defer cleanup()

	off, err := a.Sbrk(64)
	if err != nil {
		t.Fatal(err)
	}

	if off != 0 {
		t.Fatalf("Sbrk off = %d, want 0", off)
	}

	if g, e := a.Size(), int64(64); g != e {
		t.Fatalf("Size() = %d, want %d", g, e)
	}

	want := []byte{1, 2, 3, 4, 5}
	if _, err := a.WriteAt(want, 10); err != nil {
		t.Fatal(err)
	}

	got := make([]byte, len(want))
	if _, err := a.ReadAt(got, 10); err != nil {
		t.Fatal(err)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestFileArenaReset(t *testing.T) {
	a, cleanup := newTestFileArena(t)
	defer cleanup()

	if _, err := a.Sbrk(128); err != nil {
		t.Fatal(err)
	}

	a.Reset()

	if g, e := a.Size(), int64(0); g != e {
		t.Fatalf("Size() = %d, want %d", g, e)
	}

	if g, e := a.High(), int64(-1); g != e {
		t.Fatalf("High() = %d, want %d", g, e)
	}
}
