// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package xkeys

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	secp256k1 "github.com/quantumca/noble-secp256k1"
	"golang.org/x/crypto/ripemd160"
)

func doubleSha256(in []byte) []byte {
	a := sha256.Sum256(in)
	a = sha256.Sum256(a[:])
	return a[:]
}

// rmd160sha256 is BIP32's HASH160: RIPEMD-160 of SHA-256, used here for
// parent-key fingerprints.
func rmd160sha256(in []byte) []byte {
	a := sha256.Sum256(in)
	rmd := ripemd160.New()
	rmd.Write(a[:])
	return rmd.Sum(nil)
}

// hmacCKD implements BIP32's child key derivation function: an
// HMAC-SHA512 of seed under salt, split into the 32-byte key material IL
// and 32-byte chain code IR.
func hmacCKD(seed, salt []byte) (key, chainCode []byte, err error) {
	mac := hmac.New(sha512.New, salt)
	if _, err = mac.Write(seed); err != nil {
		return nil, nil, err
	}
	i := mac.Sum(nil)

	key = i[:32]
	chainCode = i[32:]

	var keyI secp256k1.ModNScalar
	overflow := keyI.SetByteSlice(key)
	if overflow || keyI.IsZero() {
		err = ErrShaKeyInvalid
	}
	return key, chainCode, err
}

func paddedAppend(size int, dst, src []byte) []byte {
	if len(src) < size {
		pad := make([]byte, size-len(src))
		dst = append(dst, pad...)
	}
	return append(dst, src...)
}
