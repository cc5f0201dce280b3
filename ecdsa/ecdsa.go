// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	secp256k1 "github.com/quantumca/noble-secp256k1"
)

// RecoveryCode encodes the information needed to recover a public key
// from a signature and message hash: bit 0 is the parity of R's
// y-coordinate, bit 1 is set when R's x-coordinate overflowed the group
// order and had to be reduced.
type RecoveryCode = byte

// Sign produces a deterministic ECDSA signature over hash using privKey,
// following the RFC 6979 nonce schedule of spec.md §4.5 and the signing
// algorithm of §4.6. When canonical is true, s is flipped to the lower of
// {s, n-s} and the recovery code's parity bit is adjusted to match, the
// low-S convention most consensus systems require.
func Sign(privKey *secp256k1.PrivateKey, hash []byte, canonical bool) (*Signature, RecoveryCode, error) {
	if err := privKey.Validate(); err != nil {
		return nil, 0, err
	}

	z := secp256k1.HashToScalar(hash)
	privBytes := privKey.Serialize()
	gen := secp256k1.NewRfc6979Generator(privBytes, hash)

	for {
		k := gen.Next()

		point, err := secp256k1.ScalarMult(k, secp256k1.G())
		if err != nil {
			return nil, 0, err
		}
		if point.IsIdentity() {
			continue
		}

		xBytes := point.X().Bytes()
		var r secp256k1.ModNScalar
		overflow := r.SetBytes(xBytes)
		if r.IsZero() {
			continue
		}

		var rd secp256k1.ModNScalar
		rd.Mul2(&r, &privKey.Key)
		rd.Add(z)

		var kInv secp256k1.ModNScalar
		if err := kInv.InverseValNonConst(k); err != nil {
			continue
		}

		var s secp256k1.ModNScalar
		s.Mul2(&kInv, &rd)
		if s.IsZero() {
			continue
		}

		recovery := RecoveryCode(0)
		if point.Y().IsOdd() {
			recovery |= 0x01
		}
		if overflow != 0 {
			recovery |= 0x02
		}

		if canonical && s.IsOverHalfOrder() {
			s.Negate()
			recovery ^= 0x01
		}

		return NewSignature(&r, &s), recovery, nil
	}
}

// Verify reports whether sig is a valid ECDSA signature over hash under
// pubKey. It never returns an error: any malformed or out-of-range input
// simply fails to verify, per spec.md §7.
func Verify(sig *Signature, hash []byte, pubKey *secp256k1.PublicKey) bool {
	if sig.r.IsZero() || sig.s.IsZero() {
		return false
	}
	if !pubKey.IsOnCurve() {
		return false
	}

	var sInv secp256k1.ModNScalar
	if err := sInv.InverseValNonConst(&sig.s); err != nil {
		return false
	}

	z := secp256k1.HashToScalar(hash)

	var u1, u2 secp256k1.ModNScalar
	u1.Mul2(z, &sInv)
	u2.Mul2(&sig.r, &sInv)

	p1, err := secp256k1.ScalarMult(&u1, secp256k1.G())
	if err != nil {
		return false
	}
	p2, err := secp256k1.ScalarMult(&u2, pubKey.Point())
	if err != nil {
		return false
	}
	sum := secp256k1.Add(p1, p2)
	if sum.IsIdentity() {
		return false
	}

	xBytes := sum.X().Bytes()
	var rPrime secp256k1.ModNScalar
	rPrime.SetBytes(xBytes)

	return rPrime.Equals(&sig.r)
}

// RecoverPublicKey reconstructs the public key that would have produced
// sig over hash under the given recovery code, per spec.md §4.6's
// recovery procedure. It returns a nil key and no error if the inputs are
// consistent but do not recover a valid point — the algorithm's ⊥ result
// is modeled as (nil, nil) rather than as an error, since it is an
// expected outcome of malformed or unrelated inputs rather than a bug.
func RecoverPublicKey(sig *Signature, hash []byte, recovery RecoveryCode) (*secp256k1.PublicKey, error) {
	if recovery > 3 {
		return nil, secp256k1.Error{
			Err:         secp256k1.ErrSigInvalidRecoveryCode,
			Description: "invalid recovery code: must be in [0, 3]",
		}
	}
	if sig.r.IsZero() || sig.s.IsZero() {
		return nil, nil
	}

	xInt := sig.r.Int()
	if recovery&0x02 != 0 {
		xInt.Add(xInt, secp256k1.CurveOrder())
	}
	if xInt.Cmp(secp256k1.FieldPrime()) >= 0 {
		return nil, nil
	}

	var x, y secp256k1.FieldVal
	x.SetByteSlice(xInt.Bytes())
	oddY := recovery&0x01 != 0
	if !secp256k1.DecompressY(&x, oddY, &y) {
		return nil, nil
	}
	r := secp256k1.NewAffinePoint(&x, &y)

	z := secp256k1.HashToScalar(hash)

	sR, err := secp256k1.ScalarMult(&sig.s, r)
	if err != nil {
		return nil, nil
	}
	zG, err := secp256k1.ScalarMult(z, secp256k1.G())
	if err != nil {
		return nil, nil
	}
	diff := secp256k1.Add(sR, zG.Negate())

	var rInv secp256k1.ModNScalar
	if err := rInv.InverseValNonConst(&sig.r); err != nil {
		return nil, nil
	}

	q, err := secp256k1.ScalarMult(&rInv, diff)
	if err != nil {
		return nil, nil
	}
	if q.IsIdentity() {
		return nil, nil
	}

	return secp256k1.NewPublicKey(q.X(), q.Y()), nil
}
