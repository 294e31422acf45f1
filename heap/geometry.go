// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Block geometry. Every function here is a fixed-offset translation and
// performs no I/O; they mirror the moved_pointer positions of spec.md §4.1.
//
// A free block's canonical "handle" throughout this package is its
// forward-link-slot offset, which is also its payload offset - the same
// convention the original C source uses (a free block's list pointer always
// refers to this position, never the header).

// payloadOf returns the payload (== forward-link) offset of the block whose
// header is at headerOff.
func payloadOf(headerOff int64) int64 { return headerOff + headerSize }

// headerOf returns the header offset of the block whose handle (payload /
// forward-link offset) is block.
func headerOf(block int64) int64 { return block - headerSize }

// backwardSlot returns the address of block's own backward-link slot. This
// is also the value stored as the backward link of block's successor in the
// free list (spec.md §3.3: "backward links point to the backward-link slot,
// not the header, of the preceding free block").
func backwardSlot(block int64) int64 { return block + pointerSize }

// endOf returns the offset one past the last byte of the block with handle
// block and total size.
func endOf(block, size int64) int64 { return headerOf(block) + size }
