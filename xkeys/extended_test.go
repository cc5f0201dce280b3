// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package xkeys

import "testing"

func testSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

func TestFromBitcoinSeedIsPrivate(t *testing.T) {
	master, err := FromBitcoinSeed(testSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !master.IsPrivate() {
		t.Error("master key derived from a seed should be private")
	}
	if master.Depth != 0 {
		t.Errorf("master key depth should be 0, got %d", master.Depth)
	}
}

func TestChildDerivationIsDeterministic(t *testing.T) {
	master, err := FromBitcoinSeed(testSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := []uint32{0, 1, HardenedBit | 2}

	a, err := master.Derive(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := master.Derive(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.String() != b.String() {
		t.Error("deriving the same path twice should yield identical extended keys")
	}
}

func TestNonHardenedChildMatchesAcrossPrivatePublic(t *testing.T) {
	master, err := FromBitcoinSeed(testSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	privChild, err := master.Child(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	masterPub, err := master.Public()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pubChild, err := masterPub.Child(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	privChildPub, err := privChild.Public()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if privChildPub.String() != pubChild.String() {
		t.Error("deriving a non-hardened child from the public key should match deriving it from the private key and taking the public half")
	}
}

func TestHardenedChildFromPublicKeyFails(t *testing.T) {
	master, err := FromBitcoinSeed(testSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	masterPub, err := master.Public()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := masterPub.Child(HardenedBit | 0); err != ErrDerivingHardenedFromPublic {
		t.Errorf("expected ErrDerivingHardenedFromPublic, got %v", err)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	master, err := FromBitcoinSeed(testSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child, err := master.Child(HardenedBit | 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bin, err := child.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back := &ExtendedKey{}
	if err := back.UnmarshalBinary(bin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if back.String() != child.String() {
		t.Error("marshal/unmarshal round trip changed the extended key")
	}
}

func TestFromStringRoundTrip(t *testing.T) {
	master, err := FromBitcoinSeed(testSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, err := FromString(master.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.String() != master.String() {
		t.Error("FromString(String()) round trip changed the extended key")
	}
}

func TestUnmarshalBinaryRejectsBadChecksum(t *testing.T) {
	master, err := FromBitcoinSeed(testSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, err := master.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin[len(bin)-1] ^= 0xff

	back := &ExtendedKey{}
	if err := back.UnmarshalBinary(bin); err != ErrBadChecksum {
		t.Errorf("expected ErrBadChecksum, got %v", err)
	}
}

func TestPrivateKeyAndPublicKeyAccessors(t *testing.T) {
	master, err := FromBitcoinSeed(testSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	priv, err := master.PrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pub, err := master.PublicKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	derivedPub, err := priv.PubKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pub.IsEqual(derivedPub) {
		t.Error("PublicKey() should match the public key derived from PrivateKey()")
	}
}
