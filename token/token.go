// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - the fee ledger used by the command handlers
//
// the chain's native token pays transaction fees; the ledger itself is
// maintained by the hosting node, so only the operations the handlers
// need are exposed here
package token

import (
	"sync"

	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/constants"
	"github.com/bitmark-inc/filevaultd/fault"
)

// number of base units in one whole token
const BaseUnitsPerToken uint64 = 100000000

// Ledger - access to token balances
//
// implementations must be safe for concurrent readers; writers are
// serialised by the caller
type Ledger interface {
	AvailableBalance(owner *address.Address) uint64
	Transfer(from *address.Address, to *address.Address, amount uint64) error
}

// ToBaseUnits - convert a whole token amount to base units
func ToBaseUnits(tokens uint64) uint64 {
	return tokens * BaseUnitsPerToken
}

// CheckSpendable - reject a fee that would push the available balance
// below the reserve
//
// computed without subtraction so that a fee larger than the balance
// cannot underflow
func CheckSpendable(balance uint64, fee uint64) error {
	if balance < fee || balance-fee < constants.Reserve {
		return fault.ErrInsufficientBalance
	}
	return nil
}

// MemoryLedger - an in-memory ledger
//
// used by the standalone daemon and throughout the tests; a node
// embedding this module substitutes its own chain-backed ledger
type MemoryLedger struct {
	sync.RWMutex
	balances map[string]uint64
}

// NewMemoryLedger - create an empty ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]uint64),
	}
}

// Deposit - credit an account
func (ledger *MemoryLedger) Deposit(owner *address.Address, amount uint64) {
	ledger.Lock()
	ledger.balances[owner.String()] += amount
	ledger.Unlock()
}

// AvailableBalance - current balance of an account
func (ledger *MemoryLedger) AvailableBalance(owner *address.Address) uint64 {
	ledger.RLock()
	balance := ledger.balances[owner.String()]
	ledger.RUnlock()
	return balance
}

// Transfer - move base units between accounts
func (ledger *MemoryLedger) Transfer(from *address.Address, to *address.Address, amount uint64) error {
	ledger.Lock()
	defer ledger.Unlock()

	balance := ledger.balances[from.String()]
	if balance < amount {
		return fault.ErrInsufficientBalance
	}
	ledger.balances[from.String()] = balance - amount
	ledger.balances[to.String()] += amount
	return nil
}
