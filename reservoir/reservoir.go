// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - the transaction processing engine
//
// one handler per transaction type, each exposing the same two entry
// points: Verify runs the full state transition against the storage
// overlay and discards every write; Execute runs the identical logic
// and commits. a transaction admitted to a block can therefore never
// be retroactively rejected: Execute absorbs errors into the returned
// Outcome instead of failing
package reservoir

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/counter"
	"github.com/bitmark-inc/filevaultd/fault"
	"github.com/bitmark-inc/filevaultd/storage"
	"github.com/bitmark-inc/filevaultd/token"
	"github.com/bitmark-inc/filevaultd/validate"
)

// TagType - transaction type tags on the wire
type TagType uint64

// the fixed transaction type tags
const (
	InitializeAccountTag          TagType = iota + 1 // 1
	CreateFileTag                                    // 2
	UpdateFileTag                                    // 3
	CreateCollectionTag                              // 4
	UpdateCollectionTag                              // 5
	RespondToFileRequestTag                          // 6
	RespondToCollectionRequestTag                    // 7
	RequestFileTransferTag                           // 8
	RequestFileOwnershipTag                          // 9
	RequestFileAccessTag                             // 10
	TimedTransferTag                                 // 11
	RequestCollectionTransferTag                     // 12
	RequestCollectionOwnershipTag                    // 13
	CancelRequestTag                                 // 14
)

// Context - per-transaction data supplied by the surrounding node
type Context struct {
	TxId   string           // transaction id, hex
	Sender *address.Address // signer of the transaction
	Fee    uint64           // declared transaction fee in base units
}

// Outcome - the result of the commit phase
//
// Applied false with a non-nil Err means the error was absorbed and
// the state transition became a no-op
type Outcome struct {
	Applied bool
	Err     error
}

// Transaction - one registry transaction
type Transaction interface {
	Tag() TagType
	apply(trx storage.Transaction, ctx *Context, dryRun bool) error
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	ledger      token.Ledger
	expiration  int64
	verifyCount counter.Counter
	commitCount counter.Counter
	initialised bool
}

var globalData globalDataType

// Initialise - start the transaction engine
func Initialise(ledger token.Ledger, expiration int64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("reservoir")
	globalData.log.Info("starting…")

	globalData.ledger = ledger
	globalData.expiration = expiration

	globalData.initialised = true
	return nil
}

// Finalise - stop the transaction engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// Expiration - seconds a timed transfer remains claimable
func Expiration() int64 {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.expiration
}

// Verify - the dry-run pass
//
// runs the full state transition and discards every write; safe to
// call repeatedly for the same transaction
func Verify(tx Transaction, ctx *Context) error {
	if err := checkContext(ctx); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	globalData.verifyCount.Increment()

	return tx.apply(trx, ctx, true)
}

// Execute - the commit pass
//
// never returns an error to the caller: a failure is logged and
// reported through the Outcome with the state left untouched
func Execute(tx Transaction, ctx *Context) Outcome {
	if err := checkContext(ctx); nil != err {
		globalData.log.Errorf("execute tx: %s  context rejected: %s", ctx.TxId, err)
		return Outcome{Applied: false, Err: err}
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		globalData.log.Errorf("execute tx: %s  begin failed: %s", ctx.TxId, err)
		return Outcome{Applied: false, Err: err}
	}

	err = tx.apply(trx, ctx, false)
	if nil != err {
		trx.Abort()
		globalData.log.Warnf("execute tx: %s  tag: %d  absorbed error: %s", ctx.TxId, tx.Tag(), err)
		return Outcome{Applied: false, Err: err}
	}

	err = trx.Commit()
	if nil != err {
		globalData.log.Errorf("execute tx: %s  commit failed: %s", ctx.TxId, err)
		return Outcome{Applied: false, Err: err}
	}

	globalData.commitCount.Increment()
	globalData.log.Infof("execute tx: %s  tag: %d  applied", ctx.TxId, tx.Tag())
	return Outcome{Applied: true}
}

// ReadCounters - verified and committed transaction counts
func ReadCounters() (uint64, uint64) {
	return globalData.verifyCount.Uint64(), globalData.commitCount.Uint64()
}

func checkContext(ctx *Context) error {
	if nil == ctx || !validate.HexId(ctx.TxId) {
		return fault.ErrInvalidId
	}
	if ctx.Sender.IsZero() {
		return fault.ErrSenderNotInitialised
	}
	return nil
}

// checkAffordable - balance floor check without moving funds
func checkAffordable(payer *address.Address, fee uint64) error {
	return token.CheckSpendable(globalData.ledger.AvailableBalance(payer), fee)
}

// settleFee - balance floor check, then move the fee unless dry-run
func settleFee(payer *address.Address, payee *address.Address, fee uint64, dryRun bool) error {
	if err := checkAffordable(payer, fee); nil != err {
		return err
	}
	if dryRun || 0 == fee {
		return nil
	}
	return globalData.ledger.Transfer(payer, payee, fee)
}
