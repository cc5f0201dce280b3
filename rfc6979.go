// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// hmacSHA256 is the external collaborator spec.md §1/§4.5 calls out: "the
// HMAC-SHA256 primitive used by RFC 6979 (specified only via its
// interface)". crypto/hmac + crypto/sha256 are the stdlib implementation
// of exactly that interface, so no third-party HMAC package is needed or
// appropriate here.
func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

func padTo32(b []byte) [32]byte {
	var out [32]byte
	if len(b) >= 32 {
		copy(out[:], b[len(b)-32:])
		return out
	}
	copy(out[32-len(b):], b)
	return out
}

// bitsToInt implements RFC 6979's bits2int for the 256-bit secp256k1
// group order: it interprets the leftmost 256 bits of h as a big-endian
// integer, right-shifting away any excess low-order bits if h is longer
// than 256 bits.
func bitsToInt(h []byte) *big.Int {
	n := new(big.Int).SetBytes(h)
	excessBits := len(h)*8 - 256
	if excessBits > 0 {
		n.Rsh(n, uint(excessBits))
	}
	return n
}

// bitsToOctets implements RFC 6979's bits2octets: bits2int(h) mod n,
// re-encoded as 32 big-endian bytes.
func bitsToOctets(h []byte) [32]byte {
	reduced := new(big.Int).Mod(bitsToInt(h), curveOrder)
	var scalar ModNScalar
	scalar.n.Set(reduced)
	return scalar.Bytes()
}

// Rfc6979Generator produces a stream of deterministic candidate nonces
// for ECDSA signing, per spec.md §4.5. Most callers want a single valid
// nonce; Next also implements the algorithm's own retry step for a
// candidate outside [1, n-1], and repeated calls to Next on the same
// generator implement Ecdsa's "iterate Rfc6979 for a new candidate" retry
// when a usable-looking nonce turns out to yield r=0 or s=0.
type Rfc6979Generator struct {
	k, v  [32]byte
	retry bool
}

// NewRfc6979Generator initializes a generator for the given 32-byte
// message hash and private key, executing steps 1-5 of spec.md §4.5.
func NewRfc6979Generator(privKey, msgHash []byte) *Rfc6979Generator {
	privOctets := padTo32(privKey)
	hOctets := bitsToOctets(msgHash)

	var v, k [32]byte
	for i := range v {
		v[i] = 0x01
	}
	// K is already all-zero by default.

	seed0 := append(append(append([]byte{}, v[:]...), 0x00), privOctets[:]...)
	seed0 = append(seed0, hOctets[:]...)
	k = [32]byte(hmacSHA256(k[:], seed0))
	v = [32]byte(hmacSHA256(k[:], v[:]))

	seed1 := append(append(append([]byte{}, v[:]...), 0x01), privOctets[:]...)
	seed1 = append(seed1, hOctets[:]...)
	k = [32]byte(hmacSHA256(k[:], seed1))
	v = [32]byte(hmacSHA256(k[:], v[:]))

	return &Rfc6979Generator{k: k, v: v}
}

// Next returns the next deterministic candidate nonce in [1, n-1]. Every
// candidate after the first, whether rejected inside Next or requested by
// a further call, is preceded by the K = HMAC(K, V||0x00), V = HMAC(K, V)
// update.
func (g *Rfc6979Generator) Next() *ModNScalar {
	for {
		if g.retry {
			g.k = [32]byte(hmacSHA256(g.k[:], append(append([]byte{}, g.v[:]...), 0x00)))
			g.v = [32]byte(hmacSHA256(g.k[:], g.v[:]))
		}
		g.retry = true

		var t []byte
		for len(t) < 32 {
			g.v = [32]byte(hmacSHA256(g.k[:], g.v[:]))
			t = append(t, g.v[:]...)
		}

		var candidate ModNScalar
		tArr := [32]byte(t[:32])
		overflow := candidate.SetBytes(&tArr)
		if overflow == 0 && !candidate.IsZero() {
			return &candidate
		}
	}
}

// NonceRFC6979 is a convenience one-shot wrapper around Rfc6979Generator
// for callers that only need a single nonce and don't care about the
// rejection-retry protocol.
func NonceRFC6979(privKey, msgHash []byte) *ModNScalar {
	return NewRfc6979Generator(privKey, msgHash).Next()
}
