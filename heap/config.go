// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Config carries the knobs New accepts. Alignment and the minimum block
// size are not configurable: spec.md's non-goals foreclose alignment above
// 8 bytes, and the minimum block size follows directly from the pointer
// size the free list links need.
type Config struct {
	// ArenaHint is a pre-reservation size hint. New stores it on the Heap
	// but does not pass it to the Backing, and nothing in this module reads
	// it.
	ArenaHint int64
}
