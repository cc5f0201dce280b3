// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	secp256k1 "github.com/quantumca/noble-secp256k1"
)

func testPrivKey(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return priv
}

func TestSignVerifyRoundTrip(t *testing.T) {
	priv := testPrivKey(t)
	pub, err := priv.PubKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i)
	}

	sig, _, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !Verify(sig, hash, pub) {
		t.Error("signature failed to verify")
	}
}

func TestVerifyFailsForWrongKey(t *testing.T) {
	priv := testPrivKey(t)
	other := testPrivKey(t)
	otherPub, err := other.PubKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash := make([]byte, 32)
	sig, _, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Verify(sig, hash, otherPub) {
		t.Error("signature should not verify under an unrelated public key")
	}
}

func TestVerifyFailsForTamperedHash(t *testing.T) {
	priv := testPrivKey(t)
	pub, err := priv.PubKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash := make([]byte, 32)
	sig, _, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tampered := make([]byte, 32)
	tampered[0] = 1
	if Verify(sig, tampered, pub) {
		t.Error("signature should not verify against a different hash")
	}
}

func TestSignIsDeterministic(t *testing.T) {
	priv := testPrivKey(t)
	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i * 3)
	}

	sig1, recovery1, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sig2, recovery2, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sig1.IsEqual(sig2) {
		t.Error("RFC 6979 signing should be deterministic")
	}
	if recovery1 != recovery2 {
		t.Error("recovery code should be deterministic alongside the signature")
	}
}

func TestSignCanonicalKeepsLowS(t *testing.T) {
	priv := testPrivKey(t)
	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(255 - i)
	}

	sig, _, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.S().IsOverHalfOrder() {
		t.Error("canonical signature should not have s over half the group order")
	}
}

func TestRecoverPublicKey(t *testing.T) {
	priv := testPrivKey(t)
	pub, err := priv.PubKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i + 1)
	}

	sig, recovery, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recovered, err := RecoverPublicKey(sig, hash, recovery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recovered == nil {
		t.Fatal("expected a recovered public key, got nil")
	}
	if !recovered.IsEqual(pub) {
		t.Error("recovered public key does not match the signer's key")
	}
}

func TestRecoverPublicKeyRejectsBadCode(t *testing.T) {
	priv := testPrivKey(t)
	hash := make([]byte, 32)
	sig, _, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := RecoverPublicKey(sig, hash, 4); err == nil {
		t.Fatal("expected error for an out-of-range recovery code")
	}
}

func TestDERSerializeParseRoundTrip(t *testing.T) {
	priv := testPrivKey(t)
	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i)
	}

	sig, _, err := Sign(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	der := sig.Serialize()
	back, err := ParseDERSignature(der)
	if err != nil {
		t.Fatalf("unexpected error parsing DER signature: %v", err)
	}
	if !back.IsEqual(sig) {
		t.Error("DER round trip changed the signature")
	}

	lenient, err := ParseSignature(der)
	if err != nil {
		t.Fatalf("unexpected error parsing signature leniently: %v", err)
	}
	if !lenient.IsEqual(sig) {
		t.Error("lenient parse of a valid DER signature changed the signature")
	}
}

func TestParseDERSignatureRejectsPadding(t *testing.T) {
	// R encoded as 0x00 0x01: a redundant leading zero byte where the
	// minimal encoding would just be 0x01. S is minimally encoded.
	padded := []byte{
		0x30, 0x07,
		0x02, 0x02, 0x00, 0x01,
		0x02, 0x01, 0x01,
	}

	if _, err := ParseDERSignature(padded); err == nil {
		t.Error("expected strict parser to reject a padded R integer")
	}
	if _, err := ParseSignature(padded); err != nil {
		t.Errorf("expected lenient parser to accept a padded R integer, got: %v", err)
	}
}

func TestParseSignatureRejectsTooShort(t *testing.T) {
	if _, err := ParseSignature([]byte{0x30, 0x02, 0x02, 0x00}); err == nil {
		t.Error("expected error for a too-short signature")
	}
}

// TestSignVerifyKnownKeyAndMessage is a known-answer test: it signs
// SHA-256("abc") with a fixed, published private key and checks the
// result verifies under the key's public point, rather than relying
// solely on a freshly generated key pair.
func TestSignVerifyKnownKeyAndMessage(t *testing.T) {
	d, err := hex.DecodeString(
		"a665a45920422f9d417e4867efdc4fb08c921564e1d97f33079ddd98d38c1f74")
	if err != nil {
		t.Fatalf("bad test vector: %v", err)
	}
	priv := secp256k1.PrivKeyFromBytes(d)
	pub, err := priv.PubKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash := sha256.Sum256([]byte("abc"))
	wantHash, err := hex.DecodeString(
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	if err != nil {
		t.Fatalf("bad test vector: %v", err)
	}
	if !bytes.Equal(hash[:], wantHash) {
		t.Fatalf("sha256(\"abc\") = %x, want %x", hash, wantHash)
	}

	sig, _, err := Sign(priv, hash[:], true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Verify(sig, hash[:], pub) {
		t.Error("signature over the known message hash failed to verify")
	}
}

// TestSignMatchesRFC6979KnownAnswerVector asserts the exact (r, s)
// produced for the standard RFC 6979 secp256k1 test vector: private key
// C9AFA9D845BA75166B5C215767B1D6934E50C3DB36E89B127B8A622B120F6721 over
// SHA-256("sample"). This is the vector itself, not merely a check that
// signing is self-consistent, so it exercises the deterministic nonce
// derivation against a result this package did not produce.
func TestSignMatchesRFC6979KnownAnswerVector(t *testing.T) {
	d, err := hex.DecodeString(
		"c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721")
	if err != nil {
		t.Fatalf("bad test vector: %v", err)
	}
	priv := secp256k1.PrivKeyFromBytes(d)

	hash := sha256.Sum256([]byte("sample"))
	wantHash, err := hex.DecodeString(
		"af2bdbe1aa9b6ec1e2ade1d694f41fc71a831d0268e9891562113d8a62add1bf")
	if err != nil {
		t.Fatalf("bad test vector: %v", err)
	}
	if !bytes.Equal(hash[:], wantHash) {
		t.Fatalf("sha256(\"sample\") = %x, want %x", hash, wantHash)
	}

	// The RFC 6979 Appendix A.2.5 vector gives the raw (r, s) pair, with
	// no low-S canonicalization applied, so sign non-canonically here.
	sig, _, err := Sign(priv, hash[:], false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantR, err := hex.DecodeString(
		"efd48b2aacb6a8fd1140dd9cd45e81d69d2c877b56aaf991c34d0ea84eaf3716")
	if err != nil {
		t.Fatalf("bad test vector: %v", err)
	}
	wantS, err := hex.DecodeString(
		"f7cb1c942d657c41d436c7a1b6e29f65f3e900dbb9aff4064dc4ab2f843acda8")
	if err != nil {
		t.Fatalf("bad test vector: %v", err)
	}
	var wantRScalar, wantSScalar secp256k1.ModNScalar
	wantRScalar.SetByteSlice(wantR)
	wantSScalar.SetByteSlice(wantS)

	if !sig.R().Equals(&wantRScalar) {
		t.Errorf("r = %s, want %s", sig.R().String(), wantRScalar.String())
	}
	if !sig.S().Equals(&wantSScalar) {
		t.Errorf("s = %s, want %s", sig.S().String(), wantSScalar.String())
	}
}
