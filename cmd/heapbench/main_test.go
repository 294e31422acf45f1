// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "testing"

func TestRunDrainsCleanly(t *testing.T) {
	sz, _ := run(64, 256, 1, true)
	if sz <= 0 {
		t.Fatalf("final region size %d, want > 0", sz)
	}
}
