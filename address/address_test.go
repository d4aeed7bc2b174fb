// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address_test

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/filevaultd/address"
)

func makeAddress(t *testing.T) *address.Address {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		t.Fatalf("key generation failed: %s", err)
	}
	a, err := address.New(publicKey, true)
	if nil != err {
		t.Fatalf("address creation failed: %s", err)
	}
	return a
}

func TestBase58RoundTrip(t *testing.T) {

	a := makeAddress(t)

	encoded := a.String()
	decoded, err := address.FromBase58(encoded)
	if nil != err {
		t.Fatalf("decode failed: %s", err)
	}

	if !a.Equal(decoded) {
		t.Errorf("round trip mismatch: got: %v  expected: %v", decoded, a)
	}
	if !decoded.Test {
		t.Error("test flag lost in round trip")
	}
}

func TestBytesRoundTrip(t *testing.T) {

	a := makeAddress(t)

	decoded, err := address.FromBytes(a.Bytes())
	if nil != err {
		t.Fatalf("decode failed: %s", err)
	}
	if !a.Equal(decoded) {
		t.Errorf("round trip mismatch: got: %v  expected: %v", decoded, a)
	}
}

func TestJSONRoundTrip(t *testing.T) {

	a := makeAddress(t)

	buffer, err := json.Marshal(a)
	if nil != err {
		t.Fatalf("marshal failed: %s", err)
	}

	var decoded address.Address
	err = json.Unmarshal(buffer, &decoded)
	if nil != err {
		t.Fatalf("unmarshal failed: %s", err)
	}
	if !a.Equal(&decoded) {
		t.Errorf("round trip mismatch: got: %v  expected: %v", decoded, a)
	}
}

func TestInvalid(t *testing.T) {

	if _, err := address.FromBase58(""); nil == err {
		t.Error("empty string accepted")
	}
	if _, err := address.FromBase58("IIIIOOOO"); nil == err {
		t.Error("invalid base58 accepted")
	}
	if _, err := address.New([]byte{1, 2, 3}, false); nil == err {
		t.Error("short key accepted")
	}
}

func TestZero(t *testing.T) {

	var zero address.Address
	if !zero.IsZero() {
		t.Error("zero value not detected")
	}
	if zero.String() != "" {
		t.Errorf("zero value has text form: %q", zero.String())
	}

	a := makeAddress(t)
	if a.IsZero() {
		t.Error("real address detected as zero")
	}
	if a.Equal(&zero) {
		t.Error("real address equal to zero value")
	}
}
