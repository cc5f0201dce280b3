// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
	"sync"
)

// curveB is the secp256k1 curve equation constant: y^2 = x^3 + 7.
var curveB = new(FieldVal).SetInt(7)

// Point is an affine point on the secp256k1 curve, or the distinguished
// point at infinity (the group identity) when infinity is true. The zero
// value of Point is NOT the point at infinity; use Identity() to obtain
// it.
type Point struct {
	x, y     FieldVal
	infinity bool

	// cache holds the windowed precomputation table lazily built (or
	// explicitly built via Precompute) for this point, per spec.md §4.4.
	// cacheInit guards allocation of cache itself; cache.mu guards the
	// table within it, since Precompute may rebuild it with a different
	// window width at any time.
	cacheInit sync.Once
	cache     *pointCache
}

// NewAffinePoint constructs a Point from the given coordinates without
// verifying that it lies on the curve. Use IsOnCurve to check validity.
func NewAffinePoint(x, y *FieldVal) *Point {
	p := &Point{}
	p.x.Set(x)
	p.y.Set(y)
	return p
}

// Identity returns the point at infinity, the group's neutral element.
func Identity() *Point {
	return &Point{infinity: true}
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.infinity
}

// X returns the affine x-coordinate. Calling it on the point at infinity
// returns a zero FieldVal; callers should check IsIdentity first.
func (p *Point) X() *FieldVal {
	var x FieldVal
	x.Set(&p.x)
	return &x
}

// Y returns the affine y-coordinate, with the same caveat as X.
func (p *Point) Y() *FieldVal {
	var y FieldVal
	y.Set(&p.y)
	return &y
}

// IsOnCurve reports whether p satisfies y^2 == x^3 + 7 (mod p). The point
// at infinity is considered on-curve by convention.
func (p *Point) IsOnCurve() bool {
	if p.infinity {
		return true
	}
	return isOnCurve(&p.x, &p.y)
}

func isOnCurve(x, y *FieldVal) bool {
	var lhs, rhs, xCubed FieldVal
	lhs.SquareVal(y)

	rhs.SquareVal(x)
	rhs.Mul(x)
	xCubed.Set(&rhs)
	rhs.Add2(&xCubed, curveB)

	return lhs.Equals(&rhs)
}

// Equals reports whether p and q represent the same point.
func (p *Point) Equals(q *Point) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Equals(&q.x) && p.y.Equals(&q.y)
}

// Negate returns -p: the point with the same x-coordinate and negated y.
func (p *Point) Negate() *Point {
	if p.infinity {
		return Identity()
	}
	r := &Point{}
	r.x.Set(&p.x)
	r.y.NegateVal(&p.y)
	return r
}

// Add implements the affine group law of spec.md §4.3: identity
// short-circuits, equal-x-opposite-y cancels to infinity, equal points
// double, and the generic case applies the chord-and-tangent formula.
func Add(p, q *Point) *Point {
	if p.infinity {
		return &Point{x: q.x, y: q.y, infinity: q.infinity}
	}
	if q.infinity {
		return &Point{x: p.x, y: p.y, infinity: p.infinity}
	}

	if p.x.Equals(&q.x) {
		var negQy FieldVal
		negQy.NegateVal(&q.y)
		if p.y.Equals(&negQy) {
			return Identity()
		}
		if p.y.Equals(&q.y) {
			return Double(p)
		}
		// Same x, and neither equal nor opposite y: cannot happen for
		// distinct points on a curve of this form, but fall through to
		// infinity rather than dividing by zero.
		return Identity()
	}

	var lambda, num, den FieldVal
	num.Sub2(&q.y, &p.y)
	den.Sub2(&q.x, &p.x)
	if err := den.Inverse(); err != nil {
		return Identity()
	}
	lambda.Mul2(&num, &den)

	var x3, y3, lambdaSq FieldVal
	lambdaSq.SquareVal(&lambda)
	x3.Sub2(&lambdaSq, &p.x)
	x3.Sub(&q.x)

	var pxMinusX3 FieldVal
	pxMinusX3.Sub2(&p.x, &x3)
	y3.Mul2(&lambda, &pxMinusX3)
	y3.Sub(&p.y)

	return &Point{x: x3, y: y3}
}

// Double implements point doubling per spec.md §4.3: λ = 3x² · (2y)⁻¹.
func Double(p *Point) *Point {
	if p.infinity || p.y.IsZero() {
		return Identity()
	}

	var lambda, num, den FieldVal
	num.SquareVal(&p.x)
	num.Mul(new(FieldVal).SetInt(3))
	den.Add2(&p.y, &p.y)
	if err := den.Inverse(); err != nil {
		return Identity()
	}
	lambda.Mul2(&num, &den)

	var x3, y3, lambdaSq FieldVal
	lambdaSq.SquareVal(&lambda)
	x3.Sub2(&lambdaSq, &p.x)
	x3.Sub(&p.x)

	var pxMinusX3 FieldVal
	pxMinusX3.Sub2(&p.x, &x3)
	y3.Mul2(&lambda, &pxMinusX3)
	y3.Sub(&p.y)

	return &Point{x: x3, y: y3}
}

// DecompressY recovers a y-coordinate for the given x such that (x, y) is
// on the curve and y has the requested parity. It returns false if x is
// not the abscissa of any curve point.
func DecompressY(x *FieldVal, oddY bool, y *FieldVal) bool {
	var rhs, xCubed FieldVal
	xCubed.SquareVal(x)
	xCubed.Mul(x)
	rhs.Add2(&xCubed, curveB)

	var candidate FieldVal
	if err := candidate.SqrtVal(&rhs); err != nil {
		return false
	}
	if candidate.IsOdd() != oddY {
		candidate.Negate()
	}
	y.Set(&candidate)
	return true
}

// SEC1 point serialization, spec.md §4.3.
const (
	pointBytesLenCompressed   = 33
	pointBytesLenUncompressed = 65

	pointFormatCompressedEven byte = 0x02
	pointFormatCompressedOdd  byte = 0x03
	pointFormatUncompressed   byte = 0x04
)

// ToHex encodes p in SEC1 form: compressed if requested, else
// uncompressed. Encoding the point at infinity is a caller error, per
// spec.md §4.3.
func (p *Point) ToHex(compressed bool) (string, error) {
	b, err := p.ToBytes(compressed)
	if err != nil {
		return "", err
	}
	return bytesToHex(b), nil
}

// ToBytes is the byte-slice counterpart of ToHex.
func (p *Point) ToBytes(compressed bool) ([]byte, error) {
	if p.infinity {
		return nil, makeError(ErrCompressedNotEncodable,
			"the point at infinity has no SEC1 encoding")
	}

	if compressed {
		b := make([]byte, pointBytesLenCompressed)
		if p.y.IsOdd() {
			b[0] = pointFormatCompressedOdd
		} else {
			b[0] = pointFormatCompressedEven
		}
		p.x.PutBytesUnchecked(b[1:33])
		return b, nil
	}

	b := make([]byte, pointBytesLenUncompressed)
	b[0] = pointFormatUncompressed
	p.x.PutBytesUnchecked(b[1:33])
	p.y.PutBytesUnchecked(b[33:65])
	return b, nil
}

// PointFromHex parses a SEC1-encoded point (compressed or uncompressed)
// from its hex string form.
func PointFromHex(s string) (*Point, error) {
	b, err := hexToBytes(s)
	if err != nil {
		return nil, err
	}
	return PointFromBytes(b)
}

// PointFromBytes parses a SEC1-encoded point. Decoding the 0x00 identity
// tag is rejected, matching spec.md §4.3.
func PointFromBytes(b []byte) (*Point, error) {
	if len(b) == 0 {
		return nil, makeError(ErrPointNotOnCurve, "empty point encoding")
	}

	switch len(b) {
	case pointBytesLenUncompressed:
		if b[0] != pointFormatUncompressed {
			return nil, makeError(ErrPointNotOnCurve,
				fmt.Sprintf("unsupported uncompressed point format byte 0x%02x", b[0]))
		}
		var x, y FieldVal
		if x.SetByteSlice(b[1:33]) {
			return nil, makeError(ErrPointNotOnCurve, "x coordinate >= field prime")
		}
		if y.SetByteSlice(b[33:65]) {
			return nil, makeError(ErrPointNotOnCurve, "y coordinate >= field prime")
		}
		if !isOnCurve(&x, &y) {
			return nil, makeError(ErrPointNotOnCurve, "point is not on the secp256k1 curve")
		}
		return &Point{x: x, y: y}, nil

	case pointBytesLenCompressed:
		var wantOddY bool
		switch b[0] {
		case pointFormatCompressedEven:
			wantOddY = false
		case pointFormatCompressedOdd:
			wantOddY = true
		default:
			return nil, makeError(ErrPointNotOnCurve,
				fmt.Sprintf("unsupported compressed point format byte 0x%02x", b[0]))
		}
		var x, y FieldVal
		if x.SetByteSlice(b[1:33]) {
			return nil, makeError(ErrPointNotOnCurve, "x coordinate >= field prime")
		}
		if !DecompressY(&x, wantOddY, &y) {
			return nil, makeError(ErrFieldNoSquareRoot,
				"x coordinate is not the abscissa of a curve point")
		}
		return &Point{x: x, y: y}, nil

	default:
		return nil, makeError(ErrPointNotOnCurve,
			fmt.Sprintf("invalid point encoding length: %d", len(b)))
	}
}
