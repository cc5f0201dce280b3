// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/hex"
	"math/big"
)

// curveOrder is n, the order of the secp256k1 base point and the modulus
// all ECDSA scalar arithmetic is performed under.
var curveOrder = mustHex(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

var curveOrderMinus2 = new(big.Int).Sub(curveOrder, big.NewInt(2))

// ModNScalar represents an element of the scalar field of the secp256k1
// group, i.e. an integer in [0, n).
//
// See the FieldVal doc comment: the same internal-representation deviation
// from the teacher applies here (math/big.Int instead of hand-unrolled
// limbs), with the teacher's canonical API preserved.
type ModNScalar struct {
	n big.Int
}

func (s *ModNScalar) reduce() *ModNScalar {
	s.n.Mod(&s.n, curveOrder)
	return s
}

// Set sets s to the value of val.
func (s *ModNScalar) Set(val *ModNScalar) *ModNScalar {
	s.n.Set(&val.n)
	return s
}

// Zero sets s to zero.
func (s *ModNScalar) Zero() {
	s.n.SetInt64(0)
}

// SetInt sets s to the given small integer.
func (s *ModNScalar) SetInt(ui uint64) *ModNScalar {
	s.n.SetUint64(ui)
	return s
}

// SetBytes interprets b as a 256-bit big-endian unsigned integer, reduces
// it modulo the group order, and stores the canonical result in s. It
// returns 1 if the raw interpretation of b was greater than or equal to n.
func (s *ModNScalar) SetBytes(b *[32]byte) uint32 {
	s.n.SetBytes(b[:])
	overflow := uint32(0)
	if s.n.Cmp(curveOrder) >= 0 {
		overflow = 1
	}
	s.reduce()
	return overflow
}

// SetByteSlice behaves like SetBytes but accepts a variable-length slice,
// left-padding shorter slices and truncating leading bytes of longer ones.
func (s *ModNScalar) SetByteSlice(b []byte) bool {
	var buf [32]byte
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(buf[32-len(b):], b)
	return s.SetBytes(&buf) != 0
}

// SetHex sets s from a hexadecimal string, ignoring an optional "0x" prefix.
func (s *ModNScalar) SetHex(str string) *ModNScalar {
	if len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X') {
		str = str[2:]
	}
	n, ok := new(big.Int).SetString(str, 16)
	if !ok {
		panic("secp256k1: invalid hex scalar value " + str)
	}
	s.n.Set(n)
	s.reduce()
	return s
}

// PutBytesUnchecked writes the canonical 32-byte big-endian encoding of s
// into b, which must have a length of at least 32.
func (s *ModNScalar) PutBytesUnchecked(b []byte) {
	raw := s.n.Bytes()
	for i := range b[:32] {
		b[i] = 0
	}
	copy(b[32-len(raw):32], raw)
}

// PutBytes writes the canonical 32-byte big-endian encoding of s into b.
func (s *ModNScalar) PutBytes(b *[32]byte) {
	s.PutBytesUnchecked(b[:])
}

// Bytes returns the canonical 32-byte big-endian encoding of s.
func (s *ModNScalar) Bytes() [32]byte {
	var b [32]byte
	s.PutBytesUnchecked(b[:])
	return b
}

// IsZero returns whether s is exactly zero.
func (s *ModNScalar) IsZero() bool {
	return s.n.Sign() == 0
}

// IsZeroBit returns 1 if s is zero and 0 otherwise, for call sites that
// prefer the teacher's bitmask-style boolean.
func (s *ModNScalar) IsZeroBit() uint32 {
	if s.IsZero() {
		return 1
	}
	return 0
}

// IsOdd returns whether s, as a canonical integer, is odd.
func (s *ModNScalar) IsOdd() bool {
	return s.n.Bit(0) == 1
}

// Equals returns whether s and val represent the same scalar.
func (s *ModNScalar) Equals(val *ModNScalar) bool {
	return s.n.Cmp(&val.n) == 0
}

// String returns the canonical, zero-padded lowercase hex encoding of s.
func (s *ModNScalar) String() string {
	b := s.Bytes()
	return hex.EncodeToString(b[:])
}

// NegateVal sets s to -val mod n.
func (s *ModNScalar) NegateVal(val *ModNScalar) *ModNScalar {
	s.n.Neg(&val.n)
	return s.reduce()
}

// Negate sets s to -s mod n.
func (s *ModNScalar) Negate() *ModNScalar {
	return s.NegateVal(s)
}

// Add2 sets s = val1 + val2 mod n.
func (s *ModNScalar) Add2(val1, val2 *ModNScalar) *ModNScalar {
	s.n.Add(&val1.n, &val2.n)
	return s.reduce()
}

// Add sets s = s + val mod n.
func (s *ModNScalar) Add(val *ModNScalar) *ModNScalar {
	return s.Add2(s, val)
}

// Mul2 sets s = val1 * val2 mod n.
func (s *ModNScalar) Mul2(val1, val2 *ModNScalar) *ModNScalar {
	s.n.Mul(&val1.n, &val2.n)
	return s.reduce()
}

// Mul sets s = s * val mod n.
func (s *ModNScalar) Mul(val *ModNScalar) *ModNScalar {
	return s.Mul2(s, val)
}

// SquareVal sets s = val * val mod n.
func (s *ModNScalar) SquareVal(val *ModNScalar) *ModNScalar {
	return s.Mul2(val, val)
}

// Square sets s = s * s mod n.
func (s *ModNScalar) Square() *ModNScalar {
	return s.SquareVal(s)
}

// InverseValNonConst sets s to the modular inverse of val modulo n, via
// Fermat's little theorem (val^(n-2) mod n). Fails with
// ErrScalarInverseOfZero if val is zero.
func (s *ModNScalar) InverseValNonConst(val *ModNScalar) error {
	if val.IsZero() {
		return makeError(ErrScalarInverseOfZero,
			"cannot invert the zero scalar")
	}
	s.n.Exp(&val.n, curveOrderMinus2, curveOrder)
	return nil
}

// InverseNonConst sets s to its own modular inverse mod n.
func (s *ModNScalar) InverseNonConst() error {
	return s.InverseValNonConst(s)
}

// IsOverHalfOrder returns whether s is strictly greater than n/2, the
// threshold used to decide canonical (low-S) signatures.
func (s *ModNScalar) IsOverHalfOrder() bool {
	halfOrder := new(big.Int).Rsh(curveOrder, 1)
	return s.n.Cmp(halfOrder) > 0
}

// Int returns a copy of s as a big.Int, a convenience accessor for
// big.Int-backed interop (e.g. helpers that need the raw integer value).
func (s *ModNScalar) Int() *big.Int {
	return new(big.Int).Set(&s.n)
}
