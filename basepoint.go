// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "sync"

// basePoint holds the fixed (x, y) coordinates of the secp256k1 base point
// G. Its precomputation table is built exactly once, under baseOnce,
// regardless of how many goroutines call G concurrently — spec.md §4.4's
// "process-wide constant... memoized under a one-time-initialization
// discipline."
var (
	baseOnce  sync.Once
	basePoint *Point
)

const (
	baseX = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	baseY = "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
)

func initBasePoint() {
	var x, y FieldVal
	x.SetHex(baseX)
	y.SetHex(baseY)
	basePoint = NewAffinePoint(&x, &y)
	if err := Precompute(DefaultWindow, basePoint); err != nil {
		panic("secp256k1: failed to precompute base point table: " + err.Error())
	}
}

// G returns the secp256k1 base point. The returned Point's precomputed
// table is built on the first call across all goroutines and is
// thereafter immutable, making repeated ScalarMult(k, G) calls safe for
// concurrent use without additional synchronization on the caller's part.
func G() *Point {
	baseOnce.Do(initBasePoint)
	return basePoint
}
