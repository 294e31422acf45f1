// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Free implements spec.md §4.3. ptr must be Nil or a payload offset
// previously returned by Allocate or Reallocate and not already freed;
// anything else is undefined behaviour per spec.md §7. Free panics only when
// an offset it reads or writes lies outside the backing region; other
// invalid pointers, such as a double free, are not detected.
func (h *Heap) Free(ptr int64) {
	if ptr == Nil {
		return
	}

	if err := h.free(ptr); err != nil {
		panic(err)
	}
}
