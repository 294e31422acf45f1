// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/cznic/mathutil"

// Reallocate implements spec.md §4.4: the null/zero degenerate cases, the
// no-op shrink short-circuit, in-place growth against a free successor
// (splitting or absorbing it), tail extension, and the malloc+copy+free
// fallback. Grounded on the retry-state-machine shape of
// lldb.Allocator.realloc (falloc.go), with the tail-extension branch
// (lldb's Filer grows implicitly on WriteAt, so falloc.go has none) taken
// from the original mm_realloc instead.
func (h *Heap) Reallocate(ptr, requested int64) (int64, error) {
	if ptr == Nil {
		return h.Allocate(requested)
	}

	if requested == 0 {
		h.Free(ptr)
		return ptr, nil
	}

	if requested < 0 {
		return Nil, &ErrInvalidSize{requested}
	}

	hdr := headerOf(ptr)
	oldSize, _, err := h.header(hdr)
	if err != nil {
		return Nil, err
	}

	newSize := alignUp(requested + headerSize)
	if newSize <= oldSize {
		return ptr, nil
	}

	successorHdr := headerOf(ptr) + oldSize
	isTail := h.isTail(successorHdr)

	if !isTail {
		succSize, succAllocated, err := h.header(successorHdr)
		if err != nil {
			return Nil, err
		}

		if !succAllocated && newSize-oldSize <= succSize {
			return h.growIntoSuccessor(ptr, hdr, oldSize, newSize, successorHdr, succSize)
		}
	}

	if isTail {
		if _, err := h.a.Sbrk(newSize - oldSize); err != nil {
			return Nil, &ErrOutOfMemory{requested}
		}

		if err := h.setHeader(hdr, newSize, true); err != nil {
			return Nil, err
		}

		return ptr, nil
	}

	return h.reallocFallback(ptr, hdr, oldSize, requested)
}

// growIntoSuccessor absorbs or shrinks the free successor block to satisfy
// newSize in place, per spec.md §4.4 step 3.
func (h *Heap) growIntoSuccessor(ptr, hdr, oldSize, newSize, succHdr, succSize int64) (int64, error) {
	succBlock := payloadOf(succHdr)
	prev, err := h.backwardHandle(succBlock)
	if err != nil {
		return Nil, err
	}

	next, err := h.forward(succBlock)
	if err != nil {
		return Nil, err
	}

	need := newSize - oldSize
	remainder := succSize - need

	if remainder >= minBlockSize {
		newFreeHdr := hdr + newSize
		if err := h.relocateFree(newFreeHdr, remainder, prev, next); err != nil {
			return Nil, err
		}
	} else {
		newSize = oldSize + succSize
		if err := h.unlink(succBlock, prev, next); err != nil {
			return Nil, err
		}
	}

	if err := h.setHeader(hdr, newSize, true); err != nil {
		return Nil, err
	}

	return ptr, nil
}

// reallocFallback is the malloc+copy+free path of spec.md §4.4 step 5. On
// allocation failure the original block is left allocated and untouched.
func (h *Heap) reallocFallback(ptr, hdr, oldSize, requested int64) (int64, error) {
	newPtr, err := h.Allocate(requested)
	if err != nil {
		return Nil, err
	}

	oldPayload := oldSize - headerSize
	n := mathutil.MinInt64(oldPayload, requested)

	buf := make([]byte, n)
	if _, err := h.a.ReadAt(buf, ptr); err != nil {
		return Nil, err
	}

	if _, err := h.a.WriteAt(buf, newPtr); err != nil {
		return Nil, err
	}

	h.Free(ptr)
	return newPtr, nil
}
