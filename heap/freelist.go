// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Free list maintenance: a single doubly linked, address-ordered list of
// free blocks threaded through the region, per spec.md §3.3 / §4.3.
// Grounded on lldb.Allocator's link/unlink/free2 (falloc.go), generalized
// from lldb's segregated free list table down to one address-ordered list.

func (h *Heap) head() (int64, error) { return h.readOffsetWord(h.listHeadOff()) }

func (h *Heap) setHead(block int64) error { return h.writeOffsetWord(h.listHeadOff(), block) }

// forward returns block's forward link (the handle of the next free block,
// or Nil).
func (h *Heap) forward(block int64) (int64, error) { return h.readOffsetWord(block) }

func (h *Heap) setForward(block, next int64) error { return h.writeOffsetWord(block, next) }

// backwardHandle returns the handle of block's predecessor in the free
// list, decoded from the raw backward-link-slot value, or Nil if block is
// first.
func (h *Heap) backwardHandle(block int64) (int64, error) {
	raw, err := h.readOffsetWord(backwardSlot(block))
	if err != nil || raw == 0 {
		return 0, err
	}
	return raw - pointerSize, nil
}

// setBackwardHandle records prev as block's predecessor, storing the
// backward-link-slot address convention spec.md §3.3 mandates.
func (h *Heap) setBackwardHandle(block, prev int64) error {
	raw := int64(0)
	if prev != 0 {
		raw = backwardSlot(prev)
	}
	return h.writeOffsetWord(backwardSlot(block), raw)
}

// locate walks the free list from the head and returns the pair (before,
// after) bracketing ptr: before is the last free block with a handle below
// ptr (or Nil), after is the first free block with a handle above ptr (or
// Nil).
func (h *Heap) locate(ptr int64) (before, after int64, err error) {
	head, err := h.head()
	if err != nil {
		return 0, 0, err
	}

	if head == 0 || head > ptr {
		return 0, head, nil
	}

	cur := head
	for {
		next, err := h.forward(cur)
		if err != nil {
			return 0, 0, err
		}

		if next == 0 || next > ptr {
			return cur, next, nil
		}

		cur = next
	}
}

// insert links block into the free list between prev and next, updating
// the list head and both neighbours' links as required.
func (h *Heap) insert(block, prev, next int64) error {
	if err := h.setForward(block, next); err != nil {
		return err
	}

	if err := h.setBackwardHandle(block, prev); err != nil {
		return err
	}

	if prev == 0 {
		if err := h.setHead(block); err != nil {
			return err
		}
	} else if err := h.setForward(prev, block); err != nil {
		return err
	}

	if next != 0 {
		if err := h.setBackwardHandle(next, block); err != nil {
			return err
		}
	}

	return nil
}

// unlink removes block, whose neighbours are prev and next, from the free
// list.
func (h *Heap) unlink(block, prev, next int64) error {
	if prev == 0 {
		if err := h.setHead(next); err != nil {
			return err
		}
	} else if err := h.setForward(prev, next); err != nil {
		return err
	}

	if next != 0 {
		if err := h.setBackwardHandle(next, prev); err != nil {
			return err
		}
	}

	return nil
}

// relocateFree turns the region at headerOff into a free block of the given
// size and re-links it between the already-known neighbours prev and next,
// without re-deriving their position via locate. Used by Reallocate when
// shrinking a successor free block in place shifts its header.
func (h *Heap) relocateFree(headerOff, size, prev, next int64) error {
	if err := h.setHeader(headerOff, size, false); err != nil {
		return err
	}

	return h.insert(payloadOf(headerOff), prev, next)
}

// adjacent reports whether the block with handle a and given size ends
// exactly where the block headerOffB begins.
func adjacent(sizeA, aBlock, headerOffB int64) bool {
	return endOf(aBlock, sizeA) == headerOffB
}

// free implements spec.md §4.3: clear the allocation flag, splice the block
// into the address-ordered list, then coalesce with either neighbour.
func (h *Heap) free(ptr int64) error {
	hdr := headerOf(ptr)
	size, _, err := h.header(hdr)
	if err != nil {
		return err
	}

	if err := h.setHeader(hdr, size, false); err != nil {
		return err
	}

	before, after, err := h.locate(ptr)
	if err != nil {
		return err
	}

	if err := h.insert(ptr, before, after); err != nil {
		return err
	}

	cur, curSize := ptr, size

	if before != 0 {
		beforeSize, _, err := h.header(headerOf(before))
		if err != nil {
			return err
		}

		if adjacent(beforeSize, before, hdr) {
			newSize := beforeSize + curSize
			if err := h.setHeader(headerOf(before), newSize, false); err != nil {
				return err
			}

			fwd, err := h.forward(cur)
			if err != nil {
				return err
			}

			if err := h.setForward(before, fwd); err != nil {
				return err
			}

			if fwd != 0 {
				if err := h.setBackwardHandle(fwd, before); err != nil {
					return err
				}
			}

			cur, curSize = before, newSize
		}
	}

	if after != 0 {
		curHdr := headerOf(cur)
		if adjacent(curSize, cur, headerOf(after)) {
			afterSize, _, err := h.header(headerOf(after))
			if err != nil {
				return err
			}

			newSize := curSize + afterSize
			if err := h.setHeader(curHdr, newSize, false); err != nil {
				return err
			}

			fwd, err := h.forward(after)
			if err != nil {
				return err
			}

			if err := h.setForward(cur, fwd); err != nil {
				return err
			}

			if fwd != 0 {
				if err := h.setBackwardHandle(fwd, cur); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
