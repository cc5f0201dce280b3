// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ecdsa implements signing, verification, and public-key recovery
// for ECDSA over the secp256k1 curve, per spec.md §4.6, together with the
// DER encoding of §4.7. Recovery codes are returned and accepted as a
// separate value; there is no compact signature encoding.
package ecdsa

import (
	"math/big"

	secp256k1 "github.com/quantumca/noble-secp256k1"
)

// Signature is an ECDSA (r, s) pair.
type Signature struct {
	r, s secp256k1.ModNScalar
}

// NewSignature builds a Signature from its two scalar components.
func NewSignature(r, s *secp256k1.ModNScalar) *Signature {
	sig := &Signature{}
	sig.r.Set(r)
	sig.s.Set(s)
	return sig
}

// R returns a copy of the signature's r component.
func (sig *Signature) R() *secp256k1.ModNScalar {
	var r secp256k1.ModNScalar
	r.Set(&sig.r)
	return &r
}

// S returns a copy of the signature's s component.
func (sig *Signature) S() *secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	s.Set(&sig.s)
	return &s
}

// IsEqual reports whether sig and other have the same r and s.
func (sig *Signature) IsEqual(other *Signature) bool {
	return sig.r.Equals(&other.r) && sig.s.Equals(&other.s)
}

const (
	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02

	minSigLen = 8
	maxSigLen = 72
)

// asn1EncodeInt returns the minimal big-endian two's-complement encoding
// of the nonnegative integer v, per spec.md §4.7's INT(v) rule: a leading
// 0x00 is prepended only if the high bit of the first byte would
// otherwise be set, and no other leading zero bytes are kept.
func asn1EncodeInt(v []byte) []byte {
	i := 0
	for i < len(v)-1 && v[i] == 0 {
		i++
	}
	v = v[i:]
	if len(v) == 0 {
		return []byte{0x00}
	}
	if v[0]&0x80 != 0 {
		padded := make([]byte, len(v)+1)
		copy(padded[1:], v)
		return padded
	}
	return v
}

// Serialize encodes the signature in strict DER form: 0x30 len
// INT(r) INT(s).
func (sig *Signature) Serialize() []byte {
	rBytes := sig.r.Bytes()
	sBytes := sig.s.Bytes()
	rEnc := asn1EncodeInt(rBytes[:])
	sEnc := asn1EncodeInt(sBytes[:])

	body := make([]byte, 0, 4+len(rEnc)+len(sEnc))
	body = append(body, asn1IntegerID, byte(len(rEnc)))
	body = append(body, rEnc...)
	body = append(body, asn1IntegerID, byte(len(sEnc)))
	body = append(body, sEnc...)

	out := make([]byte, 0, 2+len(body))
	out = append(out, asn1SequenceID, byte(len(body)))
	out = append(out, body...)
	return out
}

// parseSignature is the shared implementation behind ParseSignature and
// ParseDERSignature. When strict is true, leading-zero-padded INTEGER
// encodings are rejected (spec.md §9's "bitcoin-consensus" strict mode);
// when false, they're tolerated for interoperability on decode, matching
// the teacher's ParseSignature/ParseDERSignature split.
func parseSignature(sigStr []byte, strict bool) (*Signature, error) {
	sigErr := func(kind secp256k1.ErrorKind, desc string) error {
		return secp256k1.Error{Err: kind, Description: desc}
	}

	if len(sigStr) < minSigLen {
		return nil, sigErr(secp256k1.ErrSigTooShort, "malformed signature: too short")
	}
	if len(sigStr) > maxSigLen {
		return nil, sigErr(secp256k1.ErrSigTooLong, "malformed signature: too long")
	}
	if sigStr[0] != asn1SequenceID {
		return nil, sigErr(secp256k1.ErrSigInvalidSeqID,
			"malformed signature: format has wrong type")
	}
	if int(sigStr[1]) != len(sigStr)-2 {
		return nil, sigErr(secp256k1.ErrSigInvalidDataLen,
			"malformed signature: bad length")
	}

	index := 2
	if sigStr[index] != asn1IntegerID {
		return nil, sigErr(secp256k1.ErrSigInvalidRIntID,
			"malformed signature: R integer marker is wrong type")
	}
	index++
	if index >= len(sigStr) {
		return nil, sigErr(secp256k1.ErrSigInvalidDataLen,
			"malformed signature: missing R length")
	}
	rLen := int(sigStr[index])
	index++
	if rLen == 0 {
		return nil, sigErr(secp256k1.ErrSigZeroRLen,
			"malformed signature: R length is zero")
	}
	if index+rLen > len(sigStr) {
		return nil, sigErr(secp256k1.ErrSigInvalidDataLen,
			"malformed signature: R length exceeds available data")
	}
	rBytes := sigStr[index : index+rLen]
	if rBytes[0]&0x80 != 0 {
		return nil, sigErr(secp256k1.ErrSigNegativeR,
			"malformed signature: R is negative")
	}
	if strict && len(rBytes) > 1 && rBytes[0] == 0 && rBytes[1]&0x80 == 0 {
		return nil, sigErr(secp256k1.ErrSigTooMuchRPadding,
			"malformed signature: R has excess padding")
	}
	index += rLen

	if index >= len(sigStr) {
		return nil, sigErr(secp256k1.ErrSigMissingSTypeID,
			"malformed signature: missing S integer marker")
	}
	if sigStr[index] != asn1IntegerID {
		return nil, sigErr(secp256k1.ErrSigInvalidSIntID,
			"malformed signature: S integer marker is wrong type")
	}
	index++
	if index >= len(sigStr) {
		return nil, sigErr(secp256k1.ErrSigMissingSLen,
			"malformed signature: missing S length")
	}
	sLen := int(sigStr[index])
	index++
	if sLen == 0 {
		return nil, sigErr(secp256k1.ErrSigZeroSLen,
			"malformed signature: S length is zero")
	}
	if index+sLen != len(sigStr) {
		return nil, sigErr(secp256k1.ErrSigInvalidSLen,
			"malformed signature: S length does not match remaining data")
	}
	sBytes := sigStr[index : index+sLen]
	if sBytes[0]&0x80 != 0 {
		return nil, sigErr(secp256k1.ErrSigNegativeS,
			"malformed signature: S is negative")
	}
	if strict && len(sBytes) > 1 && sBytes[0] == 0 && sBytes[1]&0x80 == 0 {
		return nil, sigErr(secp256k1.ErrSigTooMuchSPadding,
			"malformed signature: S has excess padding")
	}
	index += sLen
	if index != len(sigStr) {
		return nil, sigErr(secp256k1.ErrSigInvalidLen,
			"malformed signature: extraneous trailing bytes")
	}

	r := new(big.Int).SetBytes(rBytes)
	if r.Sign() == 0 {
		return nil, sigErr(secp256k1.ErrSigRIsZero, "invalid signature: R is zero")
	}
	if r.Cmp(secp256k1.CurveOrder()) >= 0 {
		return nil, sigErr(secp256k1.ErrSigRTooBig, "invalid signature: R >= group order")
	}

	s := new(big.Int).SetBytes(sBytes)
	if s.Sign() == 0 {
		return nil, sigErr(secp256k1.ErrSigSIsZero, "invalid signature: S is zero")
	}
	if s.Cmp(secp256k1.CurveOrder()) >= 0 {
		return nil, sigErr(secp256k1.ErrSigSTooBig, "invalid signature: S >= group order")
	}

	var rs, ss secp256k1.ModNScalar
	rs.SetByteSlice(r.Bytes())
	ss.SetByteSlice(s.Bytes())
	return NewSignature(&rs, &ss), nil
}

// ParseSignature parses a signature leniently, accepting leading-zero
// padding on the R/S integers for interoperability with encoders that
// pad unnecessarily.
func ParseSignature(sigStr []byte) (*Signature, error) {
	return parseSignature(sigStr, false)
}

// ParseDERSignature parses a signature under strict DER rules, rejecting
// non-minimal INTEGER encodings. Use this in contexts (e.g. consensus
// rule enforcement) where only canonical DER is acceptable — spec.md §9's
// open question, resolved per DESIGN.md.
func ParseDERSignature(sigStr []byte) (*Signature, error) {
	return parseSignature(sigStr, true)
}
