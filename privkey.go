// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import csprng "crypto/rand"

// PrivateKeyBytesLen is the length in bytes of a serialized private key.
const PrivateKeyBytesLen = 32

// PrivateKey represents a secp256k1 private key: a scalar in [1, N-1].
type PrivateKey struct {
	Key ModNScalar
}

// NewPrivateKey instantiates a private key directly from a scalar.
// Callers are responsible for ensuring the scalar is in [1, N-1]; use
// Validate to check.
func NewPrivateKey(key *ModNScalar) *PrivateKey {
	pk := &PrivateKey{}
	pk.Key.Set(key)
	return pk
}

// PrivKeyFromBytes interprets b as an unsigned 256-bit big-endian integer
// reduced modulo N. As with the teacher, slices longer than 32 bytes are
// truncated and the caller is responsible for supplying a value in range;
// GeneratePrivateKey should be preferred when creating new keys.
func PrivKeyFromBytes(b []byte) *PrivateKey {
	pk := &PrivateKey{}
	pk.Key.SetByteSlice(b)
	return pk
}

// GeneratePrivateKey returns a new cryptographically secure private key.
func GeneratePrivateKey() (*PrivateKey, error) {
	var pk PrivateKey
	var buf [32]byte
	for {
		if _, err := csprng.Read(buf[:]); err != nil {
			return nil, err
		}
		overflow := pk.Key.SetBytes(&buf)
		if overflow == 0 && !pk.Key.IsZero() {
			break
		}
	}
	zero32(&buf)
	return &pk, nil
}

// Validate returns an error if the private key's scalar is not in the
// range [1, N-1] required by spec.md §3.
func (p *PrivateKey) Validate() error {
	if p.Key.IsZero() {
		return makeError(ErrPrivateKeyInvalid, "private key scalar is zero")
	}
	// SetByteSlice/SetBytes always leave Key already reduced mod N, so
	// the only remaining out-of-range case is exactly zero.
	return nil
}

// PubKey computes and returns the public key corresponding to p.
func (p *PrivateKey) PubKey() (*PublicKey, error) {
	point, err := ScalarMult(&p.Key, G())
	if err != nil {
		return nil, err
	}
	if point.IsIdentity() {
		return nil, makeError(ErrPrivateKeyInvalid, "private key produced the point at infinity")
	}
	return &PublicKey{point: *point}, nil
}

// Serialize returns p's scalar as a 32-byte big-endian encoding.
func (p *PrivateKey) Serialize() []byte {
	b := p.Key.Bytes()
	return b[:]
}

// Zero overwrites the private key's scalar, for callers that want to
// scrub key material from memory as soon as possible.
func (p *PrivateKey) Zero() {
	p.Key.Zero()
}

func zero32(b *[32]byte) {
	for i := range b {
		b[i] = 0
	}
}
