// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - a batched unit of registry writes
//
// Begin marks the shared batch as in use; writes stay in the batch and
// the overlay cache so later reads inside the same transaction observe
// them; Commit persists everything at once; Abort discards everything.
// the dry-run verification pass is simply Begin ... Abort
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
}

type TransactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionData{
		access: access,
	}
}

func (t *TransactionData) Begin() error {
	return t.access.Begin()
}

func (t *TransactionData) Abort() {
	t.access.Abort()
}

func (t *TransactionData) Commit() error {
	err := t.access.Commit()
	t.access.Abort() // release and reset regardless of the write outcome
	return err
}

func (t *TransactionData) InUse() bool {
	return t.access.InUse()
}

func (t *TransactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	pool.put(key, value)
}

func (t *TransactionData) Delete(pool *PoolHandle, key []byte) {
	pool.remove(key)
}

func (t *TransactionData) Get(pool *PoolHandle, key []byte) []byte {
	return pool.Get(key)
}

func (t *TransactionData) Has(pool *PoolHandle, key []byte) bool {
	return pool.Has(key)
}
