// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// HashToScalar implements RFC 6979's bits2int followed by a reduction
// modulo n: it interprets the leftmost 256 bits of hash as a big-endian
// integer and reduces the result into a scalar. This is the z value
// spec.md §4.6 derives from the message hash for both signing and
// verification.
func HashToScalar(hash []byte) *ModNScalar {
	reduced := new(big.Int).Mod(bitsToInt(hash), curveOrder)
	var z ModNScalar
	z.n.Set(reduced)
	return &z
}
