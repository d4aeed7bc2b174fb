// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/storage"
)

// StoredAccount - an account together with its storage key
type StoredAccount struct {
	Address *address.Address
	Account *record.Account
}

// Account - load one account by address
func Account(owner *address.Address) (*record.Account, bool) {
	buffer := storage.Pool.Accounts.Get(owner.Bytes())
	if nil == buffer {
		return nil, false
	}
	account := &record.Account{}
	err := json.Unmarshal(buffer, account)
	logger.PanicIfError("state.Account", err)
	return account, true
}

// SetAccount - store one account
func SetAccount(trx storage.Transaction, owner *address.Address, account *record.Account) {
	buffer, err := json.Marshal(account)
	logger.PanicIfError("state.SetAccount", err)
	trx.Put(storage.Pool.Accounts, owner.Bytes(), buffer)
}

// AllAccounts - scan the whole account table
//
// the cleanup passes need every account because access grants carry no
// reverse index; registries are small enough that a full scan per
// affected operation is acceptable
func AllAccounts() []StoredAccount {
	accounts := []StoredAccount{}
	err := storage.Pool.Accounts.NewFetchCursor().Map(func(key []byte, value []byte) error {
		owner, err := address.FromBytes(key)
		if nil != err {
			return err
		}
		account := &record.Account{}
		err = json.Unmarshal(value, account)
		if nil != err {
			return err
		}
		accounts = append(accounts, StoredAccount{
			Address: owner,
			Account: account,
		})
		return nil
	})
	logger.PanicIfError("state.AllAccounts", err)
	return accounts
}

// EmailMap - reverse lookup from sha256(email)
func EmailMap(emailHash string) (*record.MapEntry, bool) {
	return mapEntry(storage.Pool.EmailMap, []byte(emailHash))
}

// SetEmailMap - register an email reverse lookup
func SetEmailMap(trx storage.Transaction, emailHash string, entry *record.MapEntry) {
	setMapEntry(trx, storage.Pool.EmailMap, []byte(emailHash), entry)
}

// UsernameMap - reverse lookup from username
func UsernameMap(username string) (*record.MapEntry, bool) {
	return mapEntry(storage.Pool.UsernameMap, []byte(username))
}

// SetUsernameMap - register a username reverse lookup
func SetUsernameMap(trx storage.Transaction, username string, entry *record.MapEntry) {
	setMapEntry(trx, storage.Pool.UsernameMap, []byte(username), entry)
}

func mapEntry(pool *storage.PoolHandle, key []byte) (*record.MapEntry, bool) {
	buffer := pool.Get(key)
	if nil == buffer {
		return nil, false
	}
	entry := &record.MapEntry{}
	err := json.Unmarshal(buffer, entry)
	logger.PanicIfError("state.mapEntry", err)
	return entry, true
}

func setMapEntry(trx storage.Transaction, pool *storage.PoolHandle, key []byte, entry *record.MapEntry) {
	buffer, err := json.Marshal(entry)
	logger.PanicIfError("state.setMapEntry", err)
	trx.Put(pool, key, buffer)
}
