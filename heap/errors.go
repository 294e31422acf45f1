// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// ErrOutOfMemory is returned by Allocate and Reallocate when the backing
// Sbrk refuses to extend the region. The heap is left exactly as it was
// before the call.
type ErrOutOfMemory struct {
	Requested int64
}

func (e *ErrOutOfMemory) Error() string {
	return fmt.Sprintf("heap: out of memory allocating %d bytes", e.Requested)
}

// ErrInvalidSize is returned for a negative size request.
type ErrInvalidSize struct {
	Requested int64
}

func (e *ErrInvalidSize) Error() string {
	return fmt.Sprintf("heap: invalid size %d", e.Requested)
}
