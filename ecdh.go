// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// GenerateSharedSecret performs ECDH key agreement: it computes d·Q for
// the given private scalar d and public point Q, and returns the SEC1
// encoding of the resulting point (compressed if requested).
//
// Unlike the teacher this is adapted from — whose version, per RFC 5903
// §9, returns only the x-coordinate of d·Q — this returns the full point
// encoding, per spec.md §6's binding convention for this library. See
// DESIGN.md for why: spec.md §9 flags the x-only and full-point
// conventions as mutually exclusive and warns against silently switching
// between them, so callers that specifically need the x-only convention
// must extract it themselves from the X coordinate bytes of the returned
// encoding (bytes 1 through 32).
func GenerateSharedSecret(privkey *PrivateKey, pubkey *PublicKey, compressed bool) ([]byte, error) {
	shared, err := ScalarMult(&privkey.Key, pubkey.Point())
	if err != nil {
		return nil, err
	}
	if shared.IsIdentity() {
		return nil, makeError(ErrPointAtInfinity, "ECDH result is the point at infinity")
	}
	return shared.ToBytes(compressed)
}

// ECDH generates a shared secret and is an alias to GenerateSharedSecret,
// returning the uncompressed encoding, closer to Go's own crypto/ecdh API
// shape.
func (privkey *PrivateKey) ECDH(remote *PublicKey) ([]byte, error) {
	return GenerateSharedSecret(privkey, remote, false)
}
