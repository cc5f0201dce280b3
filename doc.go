// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package secp256k1 implements the secp256k1 elliptic curve: field and
scalar arithmetic, affine point operations, windowed scalar
multiplication with precomputation caching, SEC1 point encoding, and
RFC 6979 deterministic nonce generation.

An overview of the features provided by this package:

  - Private key generation, serialization, and parsing
  - Public key generation, serialization, and parsing, in both
    compressed and uncompressed SEC1 form
  - FieldVal for arithmetic modulo the secp256k1 field prime
  - ModNScalar for arithmetic modulo the secp256k1 group order
  - Affine point addition, doubling, and negation
  - Constant-flow windowed scalar multiplication against an arbitrary
    point or the base point, with a precomputation cache shared across
    calls to the same point
  - Point decompression from an x coordinate and a parity bit
  - ECDH shared secret derivation
  - RFC 6979 deterministic nonce generation, exposed as a generator so
    callers needing the algorithm's own retry step (for the rare r=0 or
    s=0 case) can pull additional candidates

The ecdsa sub package builds signing, verification, public key
recovery, and strict and lenient DER signature codecs on top of these
primitives.
The xkeys sub package builds BIP32-style hierarchical key derivation on
top of them.
*/
package secp256k1
