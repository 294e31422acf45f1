// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import (
	"os"

	"github.com/cznic/mathutil"
)

// FileArena is an *os.File backed region implementing the same Low/High/
// Size/Sbrk/ReadAt/WriteAt contract as Arena, for callers that want a heap
// to persist rather than live only in process memory. Like
// lldb.SimpleFileFiler, it does nothing to protect structural integrity
// across a crash; a heap built on it is only as durable as a single
// unsynced file.
type FileArena struct {
	file *os.File
	size int64
}

// NewFileArena returns a FileArena backed by f. f's existing contents (if
// any) become the region's initial bytes.
func NewFileArena(f *os.File) (*FileArena, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return &FileArena{file: f, size: fi.Size()}, nil
}

// Low returns the offset of the first byte of the region. A FileArena
// always starts at offset zero.
func (a *FileArena) Low() int64 { return 0 }

// High returns the offset of the last valid byte of the region, or Low()-1
// if the region is empty.
func (a *FileArena) High() int64 { return a.size - 1 }

// Size returns the current size of the region in bytes.
func (a *FileArena) Size() int64 { return a.size }

// Sbrk grows the region by delta bytes (delta must be >= 0), zero-filling
// the new bytes via Truncate, and returns the offset of the first newly
// added byte.
func (a *FileArena) Sbrk(delta int64) (int64, error) {
	if delta < 0 {
		return 0, &ErrInvalid{"Sbrk: negative delta", delta}
	}

	off := a.size
	newSize := off + delta
	if err := a.file.Truncate(newSize); err != nil {
		return 0, err
	}

	a.size = newSize
	return off, nil
}

// ReadAt copies len(b) bytes starting at off into b. Reading beyond Size is
// an error.
func (a *FileArena) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(b)) > a.size {
		return 0, &ErrInvalid{"ReadAt: out of range", off}
	}

	return a.file.ReadAt(b, off)
}

// WriteAt copies b into the region starting at off, growing the region if
// needed.
func (a *FileArena) WriteAt(b []byte, off int64) (int, error) {
	if off < 0 || off > a.size {
		return 0, &ErrInvalid{"WriteAt: out of range", off}
	}

	n, err := a.file.WriteAt(b, off)
	a.size = mathutil.MaxInt64(a.size, off+int64(len(b)))
	return n, err
}

// Reset truncates the backing file back to empty, so that the next Sbrk
// behaves as if the FileArena had just been created.
func (a *FileArena) Reset() {
	if err := a.file.Truncate(0); err != nil {
		panic(err)
	}

	a.size = 0
}
