// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arena implements a memory-backed, monotonically growable byte
// region standing in for the sbrk-like backing allocator a heap manager
// grows against. It grows only through Sbrk and WriteAt; Reset is the only
// way to shrink it, and it discards every page at once.
package arena

import (
	"github.com/cznic/mathutil"
)

const (
	pgBits = 12
	pgSize = 1 << pgBits
	pgMask = pgSize - 1
)

type page = [pgSize]byte

// Arena is a growable byte region addressed by absolute offsets starting at
// zero. It is not safe for concurrent use.
type Arena struct {
	pages map[int64]*page
	size  int64
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{pages: map[int64]*page{}}
}

// Low returns the offset of the first byte of the region. An Arena always
// starts at offset zero.
func (a *Arena) Low() int64 { return 0 }

// High returns the offset of the last valid byte of the region, or Low()-1
// if the region is empty.
func (a *Arena) High() int64 { return a.size - 1 }

// Size returns the current size of the region in bytes.
func (a *Arena) Size() int64 { return a.size }

// Sbrk grows the region by delta bytes (delta must be >= 0) and returns the
// offset of the first newly added byte.
func (a *Arena) Sbrk(delta int64) (int64, error) {
	if delta < 0 {
		return 0, &ErrInvalid{"Sbrk: negative delta", delta}
	}

	off := a.size
	a.size = mathutil.MaxInt64(a.size, off+delta)
	return off, nil
}

var zero page

// ReadAt copies len(b) bytes starting at off into b. Reading beyond Size is
// an error.
func (a *Arena) ReadAt(b []byte, off int64) (n int, err error) {
	if off < 0 || off+int64(len(b)) > a.size {
		return 0, &ErrInvalid{"ReadAt: out of range", off}
	}

	pgI := off >> pgBits
	pgO := int(off & pgMask)
	rem := len(b)
	for rem != 0 {
		pg := a.pages[pgI]
		if pg == nil {
			pg = &zero
		}
		nc := copy(b[:mathutil.Min(rem, pgSize-pgO)], pg[pgO:])
		pgI++
		pgO = 0
		rem -= nc
		n += nc
		b = b[nc:]
	}
	return n, nil
}

// WriteAt copies b into the region starting at off, growing the region if
// needed. Writing must start at or before the current Size (an Arena has no
// concept of sparse holes past its end; grow via Sbrk first).
func (a *Arena) WriteAt(b []byte, off int64) (n int, err error) {
	if off < 0 || off > a.size {
		return 0, &ErrInvalid{"WriteAt: out of range", off}
	}

	pgI := off >> pgBits
	pgO := int(off & pgMask)
	rem := len(b)
	want := len(b)
	for rem != 0 {
		pg := a.pages[pgI]
		if pg == nil {
			pg = &page{}
			a.pages[pgI] = pg
		}
		nc := copy(pg[pgO:], b)
		pgI++
		pgO = 0
		rem -= nc
		n += nc
		b = b[nc:]
	}
	a.size = mathutil.MaxInt64(a.size, off+int64(want))
	return n, nil
}

// Reset discards all pages and shrinks the region back to empty, so that the
// next Sbrk behaves as if the Arena had just been created.
func (a *Arena) Reset() {
	a.pages = map[int64]*page{}
	a.size = 0
}

// ErrInvalid reports an out-of-range Arena access.
type ErrInvalid struct {
	Msg string
	Off int64
}

func (e *ErrInvalid) Error() string { return e.Msg }
