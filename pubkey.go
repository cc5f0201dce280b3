// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "fmt"

// Hybrid SEC1/ANSI X9.62 public key format bytes: a rarely-produced but
// still-parsed format that carries both coordinates like uncompressed
// form while also repeating the y-parity bit of compressed form, per
// ANSI X9.62-1998 §4.3.6.
const (
	pubKeyFormatHybridEven byte = 0x06
	pubKeyFormatHybridOdd  byte = 0x07
)

// PublicKey represents a secp256k1 public key: a non-identity point on
// the curve.
type PublicKey struct {
	point Point
}

// NewPublicKey instantiates a public key from the given coordinates
// without verifying they lie on the curve; use IsOnCurve to check.
func NewPublicKey(x, y *FieldVal) *PublicKey {
	return &PublicKey{point: *NewAffinePoint(x, y)}
}

// ParsePubKey parses a public key encoded per ANSI X9.62-1998, which is
// also compatible with SEC1: the compressed, uncompressed, and hybrid
// formats are all accepted. Each failure mode is reported with its own
// error kind (ErrPubKeyInvalidLen, ErrPubKeyInvalidFormat,
// ErrPubKeyXTooBig, ErrPubKeyYTooBig, ErrPubKeyMismatchedOddness,
// ErrPubKeyNotOnCurve) rather than collapsed into one generic kind, since
// a public key parse failure is a different caller-facing condition than
// a bare curve-point decode failure.
func ParsePubKey(serialized []byte) (*PublicKey, error) {
	var x, y FieldVal
	switch len(serialized) {
	case pointBytesLenUncompressed:
		format := serialized[0]
		switch format {
		case pointFormatUncompressed, pubKeyFormatHybridEven, pubKeyFormatHybridOdd:
		default:
			return nil, makeError(ErrPubKeyInvalidFormat,
				fmt.Sprintf("invalid public key: unsupported format: %x", format))
		}

		if x.SetByteSlice(serialized[1:33]) {
			return nil, makeError(ErrPubKeyXTooBig, "invalid public key: x >= field prime")
		}
		if y.SetByteSlice(serialized[33:65]) {
			return nil, makeError(ErrPubKeyYTooBig, "invalid public key: y >= field prime")
		}

		if format == pubKeyFormatHybridEven || format == pubKeyFormatHybridOdd {
			wantOddY := format == pubKeyFormatHybridOdd
			if y.IsOdd() != wantOddY {
				return nil, makeError(ErrPubKeyMismatchedOddness,
					fmt.Sprintf("invalid public key: y oddness does not match specified value of %v", wantOddY))
			}
		}

		if !isOnCurve(&x, &y) {
			return nil, makeError(ErrPubKeyNotOnCurve,
				fmt.Sprintf("invalid public key: [%s,%s] not on secp256k1 curve", x.String(), y.String()))
		}

	case pointBytesLenCompressed:
		format := serialized[0]
		switch format {
		case pointFormatCompressedEven, pointFormatCompressedOdd:
		default:
			return nil, makeError(ErrPubKeyInvalidFormat,
				fmt.Sprintf("invalid public key: unsupported format: %x", format))
		}

		if x.SetByteSlice(serialized[1:33]) {
			return nil, makeError(ErrPubKeyXTooBig, "invalid public key: x >= field prime")
		}

		wantOddY := format == pointFormatCompressedOdd
		if !DecompressY(&x, wantOddY, &y) {
			return nil, makeError(ErrPubKeyNotOnCurve,
				fmt.Sprintf("invalid public key: x coordinate %s is not on the secp256k1 curve", x.String()))
		}

	default:
		return nil, makeError(ErrPubKeyInvalidLen,
			fmt.Sprintf("malformed public key: invalid length: %d", len(serialized)))
	}

	return &PublicKey{point: *NewAffinePoint(&x, &y)}, nil
}

// X returns the public key's affine x-coordinate.
func (p *PublicKey) X() *FieldVal { return p.point.X() }

// Y returns the public key's affine y-coordinate.
func (p *PublicKey) Y() *FieldVal { return p.point.Y() }

// Point returns the public key's underlying curve point.
func (p *PublicKey) Point() *Point {
	cp := *NewAffinePoint(&p.point.x, &p.point.y)
	return &cp
}

// IsOnCurve reports whether the public key's coordinates satisfy the
// curve equation.
func (p *PublicKey) IsOnCurve() bool {
	return p.point.IsOnCurve()
}

// IsEqual reports whether p and other describe the same point.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	return p.point.Equals(&other.point)
}

// SerializeUncompressed returns the 65-byte uncompressed SEC1 encoding.
func (p *PublicKey) SerializeUncompressed() []byte {
	b, _ := p.point.ToBytes(false)
	return b
}

// SerializeCompressed returns the 33-byte compressed SEC1 encoding.
func (p *PublicKey) SerializeCompressed() []byte {
	b, _ := p.point.ToBytes(true)
	return b
}

// ToHex returns the SEC1 hex encoding, compressed if requested.
func (p *PublicKey) ToHex(compressed bool) string {
	s, _ := p.point.ToHex(compressed)
	return s
}
