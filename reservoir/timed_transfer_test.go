// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/filevaultd/constants"
	"github.com/bitmark-inc/filevaultd/fault"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/reservoir"
	"github.com/bitmark-inc/filevaultd/state"
)

func timedTransferTx(recipientEmailHash string, checksum string, hash string, transferFee uint64) *reservoir.TimedTransfer {
	return &reservoir.TimedTransfer{
		RecipientEmailHash: recipientEmailHash,
		Title:              "handover",
		Name:               "handover.bin",
		Size:               4096,
		Type:               "application/octet-stream",
		Checksum:           checksum,
		Hash:               hash,
		TransferFee:        transferFee,
		Timestamp:          pastTime(),
	}
}

func TestTimedTransferToRegisteredEmail(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	bob := makeAddress(t)
	initAccount(t, alice, checksumFill('a'), "alice")
	initAccount(t, bob, checksumFill('b'), "bob")

	// sending to your own email is forbidden
	outcome := reservoir.Execute(
		timedTransferTx(checksumFill('a'), checksumFill('1'), "hash-one", 0),
		context(alice, constants.TimedTransferFee))
	assert.Equal(t, fault.ErrSelfTransferForbidden, outcome.Err)

	ctx := context(alice, constants.TimedTransferFee)
	execute(t, timedTransferTx(checksumFill('b'), checksumFill('1'), "hash-one", 0), ctx)

	files := state.Files()
	assert.Equal(t, 1, len(files))
	assert.True(t, alice.Equal(files[0].Data.Owner))
	assert.Equal(t, record.HistoryTimedTransferSubmission, files[0].Data.History[0].Activity)
	assert.NotEqual(t, int64(0), files[0].Meta.Expiration.Unix)

	// the pending request is bound to bob's address
	request, ok := files[0].FindRequest(ctx.TxId)
	assert.True(t, ok)
	assert.Equal(t, record.RequestTimedTransfer, request.Type)
	assert.True(t, bob.Equal(request.Recipient))

	bobAccount, _ := state.Account(bob)
	assert.Equal(t, 1, len(bobAccount.IncomingFileRequests))
	aliceAccount, _ := state.Account(alice)
	assert.Equal(t, 1, len(aliceAccount.OutgoingFileRequests))
	assert.True(t, aliceAccount.OwnsFile(ctx.TxId))

	transfers := state.TimedTransfers()
	assert.Equal(t, 1, len(transfers))
	assert.Equal(t, ctx.TxId, transfers[0].Id)
	assert.Equal(t, checksumFill('b'), transfers[0].RecipientEmailHash)
}

func TestTimedTransferClaim(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	bob := makeAddress(t)
	carol := makeAddress(t)
	initAccount(t, alice, checksumFill('a'), "alice")
	initAccount(t, bob, checksumFill('b'), "bob")
	initAccount(t, carol, checksumFill('c'), "carol")

	transferFee := uint64(2 * constants.Reserve)
	ctx := context(alice, constants.TimedTransferFee)
	execute(t, timedTransferTx(checksumFill('b'), checksumFill('1'), "hash-one", transferFee), ctx)

	// only the addressed recipient may claim
	outcome := reservoir.Execute(&reservoir.RespondToFileRequest{
		FileId:    ctx.TxId,
		RequestId: ctx.TxId,
		Accept:    true,
		NewHash:   "hash-rekeyed",
		Timestamp: pastTime(),
	}, context(carol, 0))
	assert.Equal(t, fault.ErrNotRequestRecipient, outcome.Err)

	aliceBalance := ledger.AvailableBalance(alice)
	bobBalance := ledger.AvailableBalance(bob)

	execute(t, &reservoir.RespondToFileRequest{
		FileId:    ctx.TxId,
		RequestId: ctx.TxId,
		Accept:    true,
		NewHash:   "hash-rekeyed",
		Timestamp: pastTime(),
	}, context(bob, 0))

	files := state.Files()
	assert.True(t, bob.Equal(files[0].Data.Owner))
	assert.Equal(t, "hash-rekeyed", files[0].Data.Hash)
	assert.Equal(t, 0, len(files[0].Data.Requests))

	// a claimed file no longer expires
	assert.Equal(t, int64(0), files[0].Meta.Expiration.Unix)
	assert.Equal(t, 0, len(state.TimedTransfers()))

	// the audit entry names the original sender
	history := files[0].Data.History
	assert.Equal(t, record.HistoryTimedTransferResponse, history[len(history)-1].Activity)
	assert.True(t, alice.Equal(history[len(history)-1].UserAddress))

	// the claimer pays the original sender
	assert.Equal(t, aliceBalance+transferFee, ledger.AvailableBalance(alice))
	assert.Equal(t, bobBalance-transferFee, ledger.AvailableBalance(bob))

	aliceAccount, _ := state.Account(alice)
	assert.False(t, aliceAccount.OwnsFile(ctx.TxId))
	assert.Equal(t, 0, len(aliceAccount.OutgoingFileRequests))
	bobAccount, _ := state.Account(bob)
	assert.True(t, bobAccount.OwnsFile(ctx.TxId))
	assert.Equal(t, 0, len(bobAccount.IncomingFileRequests))

	assert.Equal(t, uint64(1), state.Statistics().Transfers)
}

func TestTimedTransferRecipientBalanceFloor(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	bob := makeAddress(t)
	initAccount(t, alice, checksumFill('a'), "alice")

	// bob holds one base unit less than the claim fee plus the reserve
	transferFee := uint64(2 * constants.Reserve)
	ledger.Deposit(bob, transferFee+constants.Reserve-1)
	execute(t, &reservoir.InitializeAccount{
		EmailHash: checksumFill('b'),
		Username:  "bob",
		Timestamp: pastTime(),
	}, context(bob, 0))

	err := reservoir.Verify(
		timedTransferTx(checksumFill('b'), checksumFill('1'), "hash-one", transferFee),
		context(alice, constants.TimedTransferFee))
	assert.True(t, fault.IsErrBalance(err))

	outcome := reservoir.Execute(
		timedTransferTx(checksumFill('b'), checksumFill('1'), "hash-one", transferFee),
		context(alice, constants.TimedTransferFee))
	assert.Equal(t, fault.ErrInsufficientBalance, outcome.Err)
	assert.Equal(t, 0, len(state.Files()))

	// one more base unit clears the floor
	ledger.Deposit(bob, 1)
	execute(t,
		timedTransferTx(checksumFill('b'), checksumFill('1'), "hash-one", transferFee),
		context(alice, constants.TimedTransferFee))
}

func TestTimedTransferToUnregisteredEmail(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	initAccount(t, alice, checksumFill('a'), "alice")

	danEmail := checksumFill('d')
	ctx := context(alice, constants.TimedTransferFee)
	execute(t, timedTransferTx(danEmail, checksumFill('1'), "hash-one", 0), ctx)

	// the email is pre-registered without an address
	entry, ok := state.EmailMap(danEmail)
	assert.True(t, ok)
	assert.True(t, entry.Address.IsZero())

	// the pending request has no recipient yet
	files := state.Files()
	request, _ := files[0].FindRequest(ctx.TxId)
	assert.True(t, request.Recipient.IsZero())

	// a stranger with a different email cannot claim
	eve := makeAddress(t)
	initAccount(t, eve, checksumFill('e'), "eve")
	outcome := reservoir.Execute(&reservoir.RespondToFileRequest{
		FileId:    ctx.TxId,
		RequestId: ctx.TxId,
		Accept:    true,
		NewHash:   "hash-rekeyed",
		Timestamp: pastTime(),
	}, context(eve, 0))
	assert.Equal(t, fault.ErrNotRequestRecipient, outcome.Err)

	// registering the email claims the waiting request
	dan := makeAddress(t)
	initAccount(t, dan, danEmail, "dan")
	danAccount, _ := state.Account(dan)
	assert.Equal(t, []record.FileRequestRef{{FileId: ctx.TxId, RequestId: ctx.TxId}}, danAccount.IncomingFileRequests)

	// the matching email hash authorises the response
	execute(t, &reservoir.RespondToFileRequest{
		FileId:    ctx.TxId,
		RequestId: ctx.TxId,
		Accept:    true,
		NewHash:   "hash-rekeyed",
		Timestamp: pastTime(),
	}, context(dan, 0))

	files = state.Files()
	assert.True(t, dan.Equal(files[0].Data.Owner))
	assert.Equal(t, 0, len(state.TimedTransfers()))
}

func TestTimedTransferRejected(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	bob := makeAddress(t)
	initAccount(t, alice, checksumFill('a'), "alice")
	initAccount(t, bob, checksumFill('b'), "bob")

	ctx := context(alice, constants.TimedTransferFee)
	execute(t, timedTransferTx(checksumFill('b'), checksumFill('1'), "hash-one", 0), ctx)

	execute(t, &reservoir.RespondToFileRequest{
		FileId:    ctx.TxId,
		RequestId: ctx.TxId,
		Accept:    false,
		Timestamp: pastTime(),
	}, context(bob, 0))

	// the sender keeps the file; the expiry entry stays until the sweep
	files := state.Files()
	assert.True(t, alice.Equal(files[0].Data.Owner))
	assert.Equal(t, 0, len(files[0].Data.Requests))
	assert.Equal(t, 1, len(state.TimedTransfers()))

	bobAccount, _ := state.Account(bob)
	assert.Equal(t, 0, len(bobAccount.IncomingFileRequests))
	aliceAccount, _ := state.Account(alice)
	assert.Equal(t, 0, len(aliceAccount.OutgoingFileRequests))
}
