// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/hex"
	"math/big"
)

// fieldPrime is the prime that defines the field: 2^256 - 2^32 - 977.
var fieldPrime = mustHex(
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")

// fieldPrimeMinus2 is used as the exponent for the Fermat-based modular
// inverse: a^(p-2) == a^-1 (mod p) for any nonzero a.
var fieldPrimeMinus2 = new(big.Int).Sub(fieldPrime, big.NewInt(2))

// fieldSqrtExponent is (p+1)/4, valid because p ≡ 3 (mod 4), which lets
// modular square roots be computed as a single Fermat-style exponentiation
// instead of a general Tonelli-Shanks search.
var fieldSqrtExponent = new(big.Int).Rsh(new(big.Int).Add(fieldPrime, big.NewInt(1)), 2)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: invalid embedded constant " + s)
	}
	return n
}

// FieldVal represents an element of the secp256k1 base field, i.e. an
// integer in [0, p).
//
// WARNING: unlike the decred implementation this type is modeled on, every
// exported method on FieldVal leaves the receiver in a fully reduced,
// canonical state. There is no magnitude to track and no explicit
// Normalize step required before comparing or encoding a value; Normalize
// is kept as a no-op for API compatibility with code ported in that style.
type FieldVal struct {
	n big.Int
}

// reduce replaces f.n with f.n mod p, always leaving a nonnegative,
// less-than-p result.
func (f *FieldVal) reduce() *FieldVal {
	f.n.Mod(&f.n, fieldPrime)
	return f
}

// Set sets f to the value of val.
func (f *FieldVal) Set(val *FieldVal) *FieldVal {
	f.n.Set(&val.n)
	return f
}

// Zero sets f to zero.
func (f *FieldVal) Zero() {
	f.n.SetInt64(0)
}

// SetInt sets f to the given small integer.
func (f *FieldVal) SetInt(ui uint64) *FieldVal {
	f.n.SetUint64(ui)
	return f
}

// SetBytes interprets b as a 256-bit big-endian unsigned integer, reduces it
// modulo the field prime, and stores the canonical result in f. It returns
// 1 if the raw interpretation of b was greater than or equal to the field
// prime (i.e. reduction changed the value) and 0 otherwise, mirroring the
// overflow-signalling convention of the type this is modeled on.
func (f *FieldVal) SetBytes(b *[32]byte) uint32 {
	f.n.SetBytes(b[:])
	overflow := uint32(0)
	if f.n.Cmp(fieldPrime) >= 0 {
		overflow = 1
	}
	f.reduce()
	return overflow
}

// SetByteSlice behaves like SetBytes but accepts a variable-length slice.
// Slices shorter than 32 bytes are treated as left-padded with zeros;
// slices longer than 32 bytes have their leading bytes truncated, matching
// the teacher's documented behavior for PrivKeyFromBytes-style inputs.
func (f *FieldVal) SetByteSlice(b []byte) bool {
	var buf [32]byte
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(buf[32-len(b):], b)
	return f.SetBytes(&buf) != 0
}

// SetHex sets f from a hexadecimal string, ignoring an optional "0x" prefix.
// Panics on malformed input; intended for constants and tests.
func (f *FieldVal) SetHex(s string) *FieldVal {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: invalid hex field value " + s)
	}
	f.n.Set(n)
	f.reduce()
	return f
}

// Normalize is a no-op retained for API parity with magnitude-tracking
// field element implementations: FieldVal is always canonical.
func (f *FieldVal) Normalize() *FieldVal {
	return f
}

// PutBytesUnchecked writes the canonical 32-byte big-endian encoding of f
// into b, which must have a length of at least 32.
func (f *FieldVal) PutBytesUnchecked(b []byte) {
	raw := f.n.Bytes()
	for i := range b[:32] {
		b[i] = 0
	}
	copy(b[32-len(raw):32], raw)
}

// PutBytes writes the canonical 32-byte big-endian encoding of f into b.
func (f *FieldVal) PutBytes(b *[32]byte) {
	f.PutBytesUnchecked(b[:])
}

// Bytes returns the canonical 32-byte big-endian encoding of f.
func (f *FieldVal) Bytes() *[32]byte {
	var b [32]byte
	f.PutBytesUnchecked(b[:])
	return &b
}

// IsZero returns whether f is exactly zero.
func (f *FieldVal) IsZero() bool {
	return f.n.Sign() == 0
}

// IsOdd returns whether f, as a canonical integer, is odd.
func (f *FieldVal) IsOdd() bool {
	return f.n.Bit(0) == 1
}

// Equals returns whether f and val represent the same field element.
func (f *FieldVal) Equals(val *FieldVal) bool {
	return f.n.Cmp(&val.n) == 0
}

// String returns the canonical, zero-padded lowercase hex encoding of f.
func (f *FieldVal) String() string {
	return hex.EncodeToString(f.Bytes()[:])
}

// NegateVal sets f to -val mod p.
func (f *FieldVal) NegateVal(val *FieldVal) *FieldVal {
	f.n.Neg(&val.n)
	return f.reduce()
}

// Negate sets f to -f mod p.
func (f *FieldVal) Negate() *FieldVal {
	return f.NegateVal(f)
}

// Add2 sets f = val1 + val2 mod p.
func (f *FieldVal) Add2(val1, val2 *FieldVal) *FieldVal {
	f.n.Add(&val1.n, &val2.n)
	return f.reduce()
}

// Add sets f = f + val mod p.
func (f *FieldVal) Add(val *FieldVal) *FieldVal {
	return f.Add2(f, val)
}

// AddInt sets f = f + ui mod p.
func (f *FieldVal) AddInt(ui uint64) *FieldVal {
	f.n.Add(&f.n, new(big.Int).SetUint64(ui))
	return f.reduce()
}

// Sub2 sets f = val1 - val2 mod p.
func (f *FieldVal) Sub2(val1, val2 *FieldVal) *FieldVal {
	f.n.Sub(&val1.n, &val2.n)
	return f.reduce()
}

// Sub sets f = f - val mod p.
func (f *FieldVal) Sub(val *FieldVal) *FieldVal {
	return f.Sub2(f, val)
}

// Mul2 sets f = val1 * val2 mod p.
func (f *FieldVal) Mul2(val1, val2 *FieldVal) *FieldVal {
	f.n.Mul(&val1.n, &val2.n)
	return f.reduce()
}

// Mul sets f = f * val mod p.
func (f *FieldVal) Mul(val *FieldVal) *FieldVal {
	return f.Mul2(f, val)
}

// SquareVal sets f = val * val mod p.
func (f *FieldVal) SquareVal(val *FieldVal) *FieldVal {
	return f.Mul2(val, val)
}

// Square sets f = f * f mod p.
func (f *FieldVal) Square() *FieldVal {
	return f.SquareVal(f)
}

// PowVal sets f = val^exp mod p for a nonnegative exponent, using
// math/big's modular exponentiation; the number of operations it performs
// depends on exp and is not fixed.
func (f *FieldVal) PowVal(val *FieldVal, exp *big.Int) *FieldVal {
	f.n.Exp(&val.n, exp, fieldPrime)
	return f
}

// Pow sets f = f^exp mod p.
func (f *FieldVal) Pow(exp *big.Int) *FieldVal {
	return f.PowVal(f, exp)
}

// InverseValNonConst sets f to the modular inverse of val using Fermat's
// little theorem (val^(p-2) mod p). It fails with ErrFieldInverseOfZero if
// val is zero, which has no inverse.
func (f *FieldVal) InverseValNonConst(val *FieldVal) error {
	if val.IsZero() {
		return makeError(ErrFieldInverseOfZero,
			"cannot invert the zero field element")
	}
	f.n.Exp(&val.n, fieldPrimeMinus2, fieldPrime)
	return nil
}

// Inverse sets f to its own modular inverse.
func (f *FieldVal) Inverse() error {
	return f.InverseValNonConst(f)
}

// SqrtVal sets f to a square root of val, i.e. a value r such that
// r*r == val (mod p), using val^((p+1)/4) mod p (valid since p ≡ 3 mod 4).
// The caller-visible contract matches spec.md §4.1: the candidate is
// verified by squaring before being accepted, so a non-residue input
// deterministically fails rather than silently returning a wrong root.
func (f *FieldVal) SqrtVal(val *FieldVal) error {
	var candidate FieldVal
	candidate.n.Exp(&val.n, fieldSqrtExponent, fieldPrime)

	var check FieldVal
	check.SquareVal(&candidate)
	if !check.Equals(val) {
		return makeError(ErrFieldNoSquareRoot,
			"value is not a quadratic residue mod the field prime")
	}
	f.n.Set(&candidate.n)
	return nil
}

// Sqrt sets f to a square root of itself.
func (f *FieldVal) Sqrt() error {
	return f.SqrtVal(f)
}
