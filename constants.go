// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// FieldPrime returns a copy of p, the secp256k1 field prime
// 2^256 - 2^32 - 977, matching spec.md §6's P constant.
func FieldPrime() *big.Int {
	return new(big.Int).Set(fieldPrime)
}

// CurveOrder returns a copy of n, the order of the secp256k1 base point,
// matching spec.md §6's N constant.
func CurveOrder() *big.Int {
	return new(big.Int).Set(curveOrder)
}
