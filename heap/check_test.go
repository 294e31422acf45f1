// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"sort"
	"testing"

	"github.com/cznic/sortutil"
)

func TestCheckEmptyHeap(t *testing.T) {
	h, _ := newHeap()

	if !h.Check() {
		t.Fatal("Check reported corruption on an empty heap")
	}
}

func TestCheckAllAllocatedIsSane(t *testing.T) {
	h, _ := newHeap()

	for i := 0; i < 8; i++ {
		if _, err := h.Allocate(int64(16 * (i + 1))); err != nil {
			t.Fatal(err)
		}
	}

	if !h.Check() {
		t.Fatal("Check reported corruption with nothing freed")
	}
}

// TestCheckDetectsBrokenBackwardLink corrupts a free block's backward-link
// slot directly and expects Check to report the heap unsound.
func TestCheckDetectsBrokenBackwardLink(t *testing.T) {
	h, a := newHeap()

	p, err := h.Allocate(64)
	if err != nil {
		t.Fatal(err)
	}

	q, err := h.Allocate(64)
	if err != nil {
		t.Fatal(err)
	}

	h.Free(p)
	h.Free(q)

	if !h.Check() {
		t.Fatal("heap unexpectedly already unsound")
	}

	var garbage [8]byte
	for i := range garbage {
		garbage[i] = 0xff
	}

	head, err := h.head()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.WriteAt(garbage[:], backwardSlot(head)); err != nil {
		t.Fatal(err)
	}

	if h.Check() {
		t.Fatal("Check missed a corrupted backward link")
	}
}

// TestFreeListAddressOrder verifies the §3.3 invariant that the free list is
// kept in strictly increasing address order, independent of insertion
// order, using sortutil to check the walked sequence.
func TestFreeListAddressOrder(t *testing.T) {
	h, _ := newHeap()

	var ptrs []int64
	for i := 0; i < 6; i++ {
		p, err := h.Allocate(32)
		if err != nil {
			t.Fatal(err)
		}
		ptrs = append(ptrs, p)
	}

	// Free every other block, in reverse order, so list insertion order
	// differs from address order and the untouched blocks between them
	// keep the freed ones from coalescing into one.
	for i := len(ptrs) - 1; i >= 0; i -= 2 {
		h.Free(ptrs[i])
	}

	var walked sortutil.Int64Slice
	cur, err := h.head()
	if err != nil {
		t.Fatal(err)
	}

	for cur != 0 {
		walked = append(walked, cur)
		cur, err = h.forward(cur)
		if err != nil {
			t.Fatal(err)
		}
	}

	if !sort.IsSorted(walked) {
		t.Fatalf("free list not address-ordered: %v", []int64(walked))
	}

	if !h.Check() {
		t.Fatal("Check reported corruption")
	}
}
