// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package xkeys implements BIP32-style hierarchical deterministic key
// derivation over the secp256k1 curve: extended private and public keys
// that can be derived into child keys along a numeric path, serialized,
// and parsed back.
package xkeys

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"math/big"

	secp256k1 "github.com/quantumca/noble-secp256k1"
)

// HardenedBit marks a child index as requesting hardened derivation.
const HardenedBit = 0x80000000

// serializedKeyLen is the length, in bytes, of an extended key's payload
// before the trailing 4-byte checksum: version(4) + depth(1) +
// fingerprint(4) + child number(4) + chain code(32) + key data(33).
const serializedKeyLen = 78

// ExtendedKey is a BIP32 extended key: either private or public,
// depending on Version, together with the chain code and path metadata
// needed to derive children deterministically.
type ExtendedKey struct {
	Version     KeyVersion
	Depth       uint8
	Fingerprint [4]byte
	ChildNumber uint32
	KeyData     []byte // 33 bytes: 0x00||scalar for private, compressed point for public
	ChainCode   []byte // 32 bytes
}

// FromBitcoinSeed derives a master extended private key from a seed using
// Bitcoin's standard HMAC salt, per BIP32.
func FromBitcoinSeed(seed []byte) (*ExtendedKey, error) {
	return FromSeed(seed, []byte("Bitcoin seed"))
}

// FromSeed derives a master extended private key from seed using the
// given HMAC salt, allowing non-Bitcoin derivation schemes that reuse
// BIP32's construction with a different domain separator.
func FromSeed(seed, masterSecret []byte) (*ExtendedKey, error) {
	key, chainCode, err := hmacCKD(seed, masterSecret)
	if err != nil {
		return nil, err
	}
	keyData := make([]byte, 0, 33)
	keyData = append(keyData, 0x00)
	keyData = paddedAppend(32, keyData, key)

	return &ExtendedKey{
		Version:   BitcoinMainnetPrivate,
		KeyData:   keyData,
		ChainCode: chainCode,
	}, nil
}

// FromString parses a hex-encoded extended key, the form this package's
// String returns. Unlike the base58check encoding common in the wild,
// this is not wire-compatible with other BIP32 implementations; use
// MarshalBinary/UnmarshalBinary to interoperate with a base58 codec
// supplied by the caller.
func FromString(s string) (*ExtendedKey, error) {
	bin, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	k := &ExtendedKey{}
	return k, k.UnmarshalBinary(bin)
}

// IsPrivate reports whether k is a private extended key.
func (k *ExtendedKey) IsPrivate() bool {
	return k.Version.IsPrivate()
}

// privateScalar returns k's private scalar. It does not check that k is
// private: for a public k it returns a scalar built from the key's
// x-coordinate bytes, so callers must check IsPrivate first.
func (k *ExtendedKey) privateScalar() *secp256k1.PrivateKey {
	return secp256k1.PrivKeyFromBytes(k.KeyData[1:])
}

// Child derives the extended key at child index i. A hardened child
// (i with HardenedBit set) can only be derived from a private key; a
// non-hardened child can be derived from either, yielding a child of the
// same kind as the parent.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	if k.Depth == 0xff {
		return nil, ErrMaxDepthExceeded
	}

	isChildHardened := i&HardenedBit == HardenedBit
	if !k.IsPrivate() && isChildHardened {
		return nil, ErrDerivingHardenedFromPublic
	}

	const keyLen = 33
	seed := make([]byte, keyLen+4)
	if isChildHardened {
		// k.KeyData already carries the 0x00 prefix, so this is
		// 0x00 || ser256(k) || ser32(i) as BIP32 requires.
		copy(seed, k.KeyData)
	} else {
		copy(seed, k.pubKeyBytes())
	}
	binary.BigEndian.PutUint32(seed[keyLen:], i)

	ilBytes, chainCode, err := hmacCKD(seed, k.ChainCode)
	if err != nil {
		return nil, err
	}

	child := &ExtendedKey{
		ChainCode:   chainCode,
		Depth:       k.Depth + 1,
		ChildNumber: i,
	}
	copy(child.Fingerprint[:], rmd160sha256(k.pubKeyBytes())[:4])

	if k.IsPrivate() {
		var il secp256k1.ModNScalar
		il.SetByteSlice(ilBytes)

		var childScalar secp256k1.ModNScalar
		childScalar.Add2(&il, &k.privateScalar().Key)
		if childScalar.IsZero() {
			return nil, ErrInvalidKey
		}

		keyData := make([]byte, 0, 33)
		keyData = append(keyData, 0x00)
		scalarBytes := childScalar.Bytes()
		keyData = append(keyData, scalarBytes[:]...)
		child.KeyData = keyData
		child.Version = k.Version
	} else {
		var il secp256k1.ModNScalar
		il.SetByteSlice(ilBytes)

		ilPoint, err := secp256k1.ScalarMult(&il, secp256k1.G())
		if err != nil || ilPoint.IsIdentity() {
			return nil, ErrInvalidKey
		}

		parentPub, err := secp256k1.ParsePubKey(k.KeyData)
		if err != nil {
			return nil, err
		}

		childPoint := secp256k1.Add(ilPoint, parentPub.Point())
		if childPoint.IsIdentity() {
			return nil, ErrInvalidKey
		}

		child.KeyData = secp256k1.NewPublicKey(childPoint.X(), childPoint.Y()).SerializeCompressed()
		child.Version = k.Version.ToPublic()
	}
	return child, nil
}

// Derive walks k through each index in path in turn, returning the final
// descendant extended key.
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	extKey := k
	for _, i := range path {
		var err error
		extKey, err = extKey.Child(i)
		if err != nil {
			return nil, ErrDerivingChild
		}
	}
	return extKey, nil
}

// Public returns the extended public key corresponding to k, leaving an
// already-public k unchanged.
func (k *ExtendedKey) Public() (*ExtendedKey, error) {
	if !k.IsPrivate() {
		return k, nil
	}
	return &ExtendedKey{
		Version:     k.Version.ToPublic(),
		KeyData:     k.pubKeyBytes(),
		ChainCode:   k.ChainCode,
		Fingerprint: k.Fingerprint,
		Depth:       k.Depth,
		ChildNumber: k.ChildNumber,
	}, nil
}

// MarshalBinary encodes k in the standard 78-byte BIP32 payload plus a
// 4-byte double-SHA256 checksum.
func (k *ExtendedKey) MarshalBinary() ([]byte, error) {
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.ChildNumber)

	out := make([]byte, 0, serializedKeyLen+4)
	out = append(out, k.Version[:]...)
	out = append(out, k.Depth)
	out = append(out, k.Fingerprint[:]...)
	out = append(out, childNumBytes[:]...)
	out = append(out, k.ChainCode...)
	out = append(out, k.KeyData...)

	checksum := doubleSha256(out)[:4]
	out = append(out, checksum...)
	return out, nil
}

// UnmarshalBinary decodes k from the standard 78-byte BIP32 payload plus
// checksum, validating the checksum and the key data's range.
func (k *ExtendedKey) UnmarshalBinary(data []byte) error {
	if len(data) != serializedKeyLen+4 {
		return ErrInvalidKeyLen
	}

	payload := data[:len(data)-4]
	checksum := data[len(data)-4:]
	if !bytes.Equal(checksum, doubleSha256(payload)[:4]) {
		return ErrBadChecksum
	}

	var version KeyVersion
	copy(version[:], payload[:4])
	depth := payload[4]
	var fingerprint [4]byte
	copy(fingerprint[:], payload[5:9])
	childNumber := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	isPrivate := keyData[0] == 0x00
	if isPrivate != version.IsPrivate() {
		return ErrInvalidPrivateFlag
	}

	if isPrivate {
		scalarBytes := keyData[1:]
		keyNum := new(big.Int).SetBytes(scalarBytes)
		if keyNum.Cmp(secp256k1.CurveOrder()) >= 0 || keyNum.Sign() == 0 {
			return ErrInvalidSeed
		}
	} else {
		if _, err := secp256k1.ParsePubKey(keyData); err != nil {
			return err
		}
	}

	k.Version = version
	k.KeyData = append([]byte{}, keyData...)
	k.ChainCode = append([]byte{}, chainCode...)
	k.Fingerprint = fingerprint
	k.Depth = depth
	k.ChildNumber = childNumber
	return nil
}

// String returns the hex encoding of k's serialized form.
func (k *ExtendedKey) String() string {
	bin, _ := k.MarshalBinary()
	return hex.EncodeToString(bin)
}

// pubKeyBytes returns the 33-byte compressed public key associated with
// k, computing it from the private scalar when k is a private key.
func (k *ExtendedKey) pubKeyBytes() []byte {
	if !k.IsPrivate() {
		return k.KeyData
	}
	pub, err := k.privateScalar().PubKey()
	if err != nil {
		// A valid extended private key's scalar always has a public
		// point; reaching here means KeyData was never validated.
		panic("xkeys: private key has no corresponding public point: " + err.Error())
	}
	return pub.SerializeCompressed()
}

// PrivateKey returns k's private key. It returns an error if k is public.
func (k *ExtendedKey) PrivateKey() (*secp256k1.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, ErrInvalidKey
	}
	return k.privateScalar(), nil
}

// PublicKey returns k's public key, deriving it from the private scalar
// if necessary.
func (k *ExtendedKey) PublicKey() (*secp256k1.PublicKey, error) {
	if k.IsPrivate() {
		return k.privateScalar().PubKey()
	}
	return secp256k1.ParsePubKey(k.KeyData)
}
