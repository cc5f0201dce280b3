// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "encoding/hex"

// bytesToHex and hexToBytes are the thin boundary-conversion helpers
// spec.md §1 calls out as an external collaborator ("hex/byte encoding
// helpers"); they exist only so the exported *Hex APIs don't each repeat
// the same two lines, per spec.md §9's guidance to keep the arithmetic
// core monomorphic and push type juggling to the boundary.

func bytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

func hexToBytes(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, makeError(ErrMalformedHex, "malformed hex input: "+err.Error())
	}
	return b, nil
}
