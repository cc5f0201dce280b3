// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/subtle"
	"sync"
)

// DefaultWindow is the window width used by ScalarMult when no
// precomputed table has been built for a point yet, and by the base
// point's table.
const DefaultWindow = 4

// precomputedTable holds, for each window index i, the 2^(w-1) affine
// multiples {1*(2^(i*w))*P, 2*(2^(i*w))*P, ..., 2^(w-1)*(2^(i*w))*P} used
// by the windowed scalar multiplication fast path described in spec.md
// §4.4.
type precomputedTable struct {
	w       int
	windows [][]*Point
}

// Point.cache is guarded by mu rather than sync.Once because Precompute
// may legitimately be called again with a different window width, which
// must replace the existing cache (spec.md §4.4 "Rebuilding with a
// different W replaces the cache").
type pointCache struct {
	mu    sync.Mutex
	table *precomputedTable
}

func buildPrecomputedTable(w int, p *Point) *precomputedTable {
	numWindows := (256+w-1)/w + 1
	size := 1 << uint(w-1)

	windows := make([][]*Point, numWindows)
	base := p
	for i := 0; i < numWindows; i++ {
		row := make([]*Point, size)
		row[0] = base
		cur := base
		for j := 1; j < size; j++ {
			cur = Add(cur, base)
			row[j] = cur
		}
		windows[i] = row

		next := base
		for k := 0; k < w; k++ {
			next = Double(next)
		}
		base = next
	}
	return &precomputedTable{w: w, windows: windows}
}

// Precompute eagerly builds (or rebuilds) a windowed precomputation table
// of width w for p. w must be at least 2; the spec's default is 4, and
// larger values such as 8 trade cache size for fewer point additions per
// multiply.
func Precompute(w int, p *Point) error {
	if w < 2 || w > 16 {
		return makeError(ErrScalarOutOfRange, "precompute window width out of supported range")
	}
	if p.infinity {
		return makeError(ErrPointAtInfinity, "cannot precompute a table for the point at infinity")
	}
	table := buildPrecomputedTable(w, p)
	p.cacheOnce()
	p.cache.mu.Lock()
	p.cache.table = table
	p.cache.mu.Unlock()
	return nil
}

// cacheOnce lazily allocates the pointCache holder itself (not the table);
// this is cheap and only exists so Point's zero value doesn't need a
// pre-initialized mutex struct embedded by value.
func (p *Point) cacheOnce() {
	p.cacheInit.Do(func() {
		p.cache = &pointCache{}
	})
}

// windowedSignedDigits decomposes the nonnegative integer represented by
// kBytes into ⌈256/w⌉+1 signed digits in [-2^(w-1), 2^(w-1)], balanced
// around zero, such that k == Σ digits[i] * 2^(i*w). This is the recoding
// step of spec.md §4.4; the number of windows produced depends only on w
// (a public parameter), never on k.
func windowedSignedDigits(k *ModNScalar, w int) []int {
	kInt := k.Int()
	numWindows := (256+w-1)/w + 1
	half := 1 << uint(w-1)
	full := 1 << uint(w)

	digits := make([]int, numWindows)
	carry := 0
	for i := 0; i < numWindows; i++ {
		d := 0
		base := i * w
		for b := 0; b < w; b++ {
			if kInt.Bit(base+b) == 1 {
				d |= 1 << uint(b)
			}
		}
		d += carry
		if d > half {
			d -= full
			carry = 1
		} else {
			carry = 0
		}
		digits[i] = d
	}
	return digits
}

// ctSelectPoint scans every entry of row (a full window of precomputed
// multiples) unconditionally and returns the entry at index idx without
// branching on idx: every iteration performs the same constant-time byte
// copy driven by a mask from crypto/subtle, so the number and kind of
// operations executed is independent of idx.
func ctSelectPoint(row []*Point, idx int) *Point {
	var xBuf, yBuf [32]byte
	for j, candidate := range row {
		mask := subtle.ConstantTimeEq(int32(j), int32(idx))
		cx := candidate.x.Bytes()
		cy := candidate.y.Bytes()
		subtle.ConstantTimeCopy(mask, xBuf[:], cx[:])
		subtle.ConstantTimeCopy(mask, yBuf[:], cy[:])
	}
	var x, y FieldVal
	x.SetBytes(&xBuf)
	y.SetBytes(&yBuf)
	return &Point{x: x, y: y}
}

// ctNegateIfOdd returns p unchanged if sign is 0, or -p if sign is 1,
// without a value-dependent branch: both p and -p are always computed and
// the result is chosen with a masked byte copy.
func ctNegateIfOdd(p *Point, sign int) *Point {
	neg := p.Negate()
	var yBuf [32]byte
	py := p.y.Bytes()
	yBuf = *py
	ny := neg.y.Bytes()
	subtle.ConstantTimeCopy(sign, yBuf[:], ny[:])

	var y FieldVal
	y.SetBytes(&yBuf)
	return &Point{x: p.x, y: y}
}

// ctSelectAddend folds ctSelectPoint and ctNegateIfOdd together and also
// implements the fake-point discipline of spec.md §4.4: when digit is
// zero the loop still performs a full table scan and a full point
// addition against a nonzero sentinel entry, and only the final
// accumulator update is masked away, so a zero digit costs exactly the
// same group operations as any other digit.
func ctSelectAddend(row []*Point, digit int) (addend *Point, isZero int) {
	sign := int((uint32(digit) >> 31) & 1)
	absIdx := (digit ^ -sign) + sign
	isZero = subtle.ConstantTimeEq(int32(digit), 0)
	// Table rows are indexed 0..size-1 for digit magnitudes 1..size; a
	// zero digit still selects a valid sentinel entry (index 0) so the
	// lookup loop never special-cases it.
	lookupIdx := subtle.ConstantTimeSelect(isZero, 0, absIdx-1)
	selected := ctSelectPoint(row, lookupIdx)
	return ctNegateIfOdd(selected, sign), isZero
}

// ScalarMult computes k*p in constant algorithmic flow with respect to k,
// per spec.md §4.4. k=0 returns the point at infinity; k outside [0, n)
// fails with ErrScalarOutOfRange. If p has no precomputed table, one is
// built lazily using DefaultWindow and cached on p for subsequent calls.
func ScalarMult(k *ModNScalar, p *Point) (*Point, error) {
	if k.n.Sign() < 0 || k.n.Cmp(curveOrder) >= 0 {
		return nil, makeError(ErrScalarOutOfRange, "scalar is not in [0, n)")
	}
	if k.IsZero() {
		return Identity(), nil
	}
	if p.infinity {
		return Identity(), nil
	}

	table := p.ensureCache()

	digits := windowedSignedDigits(k, table.w)
	acc := Identity()
	for i := len(digits) - 1; i >= 0; i-- {
		addend, isZero := ctSelectAddend(table.windows[i], digits[i])
		candidate := Add(acc, addend)
		acc = maskedSelectPoint(isZero, acc, candidate)
	}
	return acc, nil
}

// ensureCache returns p's precomputed table, building one with
// DefaultWindow on first use if none exists yet. The lock ensures
// concurrent callers racing to build the first table for a shared point
// converge on a single winner rather than each building their own,
// satisfying spec.md §5's requirement that shared caller-point caches be
// built under a synchronization guard.
func (p *Point) ensureCache() *precomputedTable {
	p.cacheOnce()
	p.cache.mu.Lock()
	defer p.cache.mu.Unlock()
	if p.cache.table == nil {
		p.cache.table = buildPrecomputedTable(DefaultWindow, p)
	}
	return p.cache.table
}

// maskedSelectPoint returns a if mask is 1, else b, via a masked byte
// copy rather than a branch on mask. The infinity flag is selected the
// same masked way as the coordinates: a partial accumulator can
// legitimately become the point at infinity mid-computation (when an
// addend exactly cancels it) even though the overall scalar is nonzero,
// and losing that flag here would silently treat (0, 0) as a bogus
// affine point in every later step.
func maskedSelectPoint(mask int, a, b *Point) *Point {
	var xBuf, yBuf [32]byte
	ax, ay := a.x.Bytes(), a.y.Bytes()
	xBuf, yBuf = *ax, *ay
	bx, by := b.x.Bytes(), b.y.Bytes()
	subtle.ConstantTimeCopy(1-mask, xBuf[:], bx[:])
	subtle.ConstantTimeCopy(1-mask, yBuf[:], by[:])

	var aInf, bInf [1]byte
	if a.infinity {
		aInf[0] = 1
	}
	if b.infinity {
		bInf[0] = 1
	}
	subtle.ConstantTimeCopy(1-mask, aInf[:], bInf[:])

	var x, y FieldVal
	x.SetBytes(&xBuf)
	y.SetBytes(&yBuf)
	return &Point{x: x, y: y, infinity: aInf[0] == 1}
}
