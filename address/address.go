// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - account addresses
//
// an address is an ed25519 public key prefixed by a key-variant byte
// the text form is Base58
//
// signature checking belongs to the consensus layer and is deliberately
// absent here
package address

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/filevaultd/fault"
)

// bits in the key-variant byte
const (
	publicKeyCode = 0x01
	testKeyCode   = 0x02
)

// Address - an account address
type Address struct {
	Test      bool
	PublicKey []byte
}

// New - create an address from an ed25519 public key
func New(publicKey []byte, testnet bool) (*Address, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &Address{
		Test:      testnet,
		PublicKey: publicKey,
	}, nil
}

// FromBase58 - decode the Base58 text form of an address
func FromBase58(s string) (*Address, error) {
	decoded, err := base58.Decode(s)
	if nil != err {
		return nil, fault.ErrCannotDecodeAddress
	}
	if len(decoded) < 2 {
		return nil, fault.ErrCannotDecodeAddress
	}

	keyVariant := decoded[0]
	if keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}

	publicKey := decoded[1:]
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}

	return &Address{
		Test:      keyVariant&testKeyCode == testKeyCode,
		PublicKey: publicKey,
	}, nil
}

// FromBytes - rebuild an address from its stored byte form
func FromBytes(buffer []byte) (*Address, error) {
	if 0 == len(buffer) {
		return nil, nil
	}
	if len(buffer) < 2 {
		return nil, fault.ErrCannotDecodeAddress
	}
	keyVariant := buffer[0]
	if keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}
	publicKey := buffer[1:]
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &Address{
		Test:      keyVariant&testKeyCode == testKeyCode,
		PublicKey: publicKey,
	}, nil
}

// Bytes - the key-variant byte followed by the raw public key
//
// this is the storage key form used by the Accounts pool
func (address *Address) Bytes() []byte {
	if nil == address {
		return nil
	}
	keyVariant := byte(publicKeyCode)
	if address.Test {
		keyVariant |= testKeyCode
	}
	buffer := make([]byte, 1, len(address.PublicKey)+1)
	buffer[0] = keyVariant
	return append(buffer, address.PublicKey...)
}

// String - Base58 text form
func (address *Address) String() string {
	if nil == address {
		return ""
	}
	return base58.Encode(address.Bytes())
}

// MarshalText - satisfy the encoding.TextMarshaler interface
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - satisfy the encoding.TextUnmarshaler interface
func (address *Address) UnmarshalText(s []byte) error {
	if 0 == len(s) {
		*address = Address{}
		return nil
	}
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*address = *a
	return nil
}

// IsZero - check for the unset address
func (address *Address) IsZero() bool {
	return nil == address || 0 == len(address.PublicKey)
}

// Equal - compare two addresses
func (address *Address) Equal(other *Address) bool {
	if address.IsZero() || other.IsZero() {
		return address.IsZero() && other.IsZero()
	}
	return address.Test == other.Test &&
		bytes.Equal(address.PublicKey, other.PublicKey)
}
