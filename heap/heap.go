// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package heap implements a best-fit, address-ordered explicit free list
allocator over a single contiguous, monotonically growable backing region,
plus bidirectional coalescing on free and an in-place splitting realloc.

Backing region

The backing region (a Backing) is a byte-addressable growable area offering
Low, High, Size and Sbrk, the same role a Filer plays for lldb.Allocator.
Offsets into it stand in for pointers; this package never uses
unsafe.Pointer.

Blocks

Every block is 8-byte aligned and carries a one machine-word header holding
the block's total size with the low bit repurposed as an allocation flag (1
== allocated, 0 == free). There is no footer. A free block additionally
carries a forward link and a backward link immediately after the header;
the backward link holds the address of the predecessor's backward-link slot,
not the predecessor's header or forward-link address (see Free).

The first pointer-sized bytes of the region are reserved to hold the head of
the free list: either 0 (empty list) or the forward-link-slot address (i.e.
the payload address) of the first free block.

*/
package heap

import (
	"encoding/binary"

	"github.com/cznic/mathutil"
)

const (
	pointerSize  = 8
	headerSize   = 8
	alignment    = 8
	minPayload   = 2 * pointerSize
	minBlockSize = (headerSize + minPayload + alignment - 1) &^ (alignment - 1)
)

// Nil is the zero offset: never a valid payload address, since the region's
// first pointer-sized bytes are always reserved for the free list head.
const Nil int64 = 0

// Backing is the external, sbrk-like collaborator a Heap grows against. The
// *arena.Arena type implements it; Heap depends only on this narrower
// interface, the way lldb.Allocator depends on Filer rather than on any one
// concrete implementation.
type Backing interface {
	Low() int64
	High() int64
	Size() int64
	Sbrk(delta int64) (int64, error)
	ReadAt(b []byte, off int64) (int, error)
	WriteAt(b []byte, off int64) (int, error)
}

// Heap is a best-fit allocator over a Backing region. It is not safe for
// concurrent use; see spec.md §5.
type Heap struct {
	a    Backing
	hint int64
}

// New returns a Heap growing the given Backing region. The region should be
// empty (Size() == 0); otherwise the first Allocate assumes it is already
// laid out as a valid heap per this package's block format.
func New(a Backing, cfg Config) *Heap {
	return &Heap{a: a, hint: cfg.ArenaHint}
}

// Init resets the Heap's backing region (if it supports resetting) so that
// the next call behaves as a first allocation.
func (h *Heap) Init() error {
	if r, ok := h.a.(interface{ Reset() }); ok {
		r.Reset()
	}
	return nil
}

func alignUp(x int64) int64 {
	return (x + alignment - 1) &^ (alignment - 1)
}

// blockSizeFor returns the total block size (header + payload, rounded and
// floored so a freed block can host the two link words) for a requested
// payload size.
func blockSizeFor(requested int64) int64 {
	requested = mathutil.MaxInt64(requested, minPayload)
	return alignUp(requested + headerSize)
}

// listHeadOff returns the offset of the reserved free-list-head slot.
func (h *Heap) listHeadOff() int64 { return h.a.Low() }

// firstBlockOff returns the offset of the first possible block header: the
// smallest 8-aligned offset strictly after the reserved list-head slot.
func (h *Heap) firstBlockOff() int64 {
	return alignUp(h.a.Low() + pointerSize)
}

func (h *Heap) readOffsetWord(off int64) (int64, error) {
	var b [8]byte
	if _, err := h.a.ReadAt(b[:], off); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func (h *Heap) writeOffsetWord(off, v int64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	_, err := h.a.WriteAt(b[:], off)
	return err
}

// header returns the decoded (size, allocated) pair for the block whose
// header lives at off.
func (h *Heap) header(off int64) (size int64, allocated bool, err error) {
	w, err := h.readOffsetWord(off)
	if err != nil {
		return 0, false, err
	}
	return w &^ 1, w&1 != 0, nil
}

// isTail reports whether end (exclusive) is the current end of the region,
// i.e. whether a block ending there is the heap's tail block.
func (h *Heap) isTail(end int64) bool { return end-1 == h.a.High() }

func (h *Heap) setHeader(off, size int64, allocated bool) error {
	w := size
	if allocated {
		w |= 1
	}
	return h.writeOffsetWord(off, w)
}
