// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/bitmark-inc/filevaultd/fault"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/state"
	"github.com/bitmark-inc/filevaultd/storage"
	"github.com/bitmark-inc/filevaultd/validate"
)

// RespondToFileRequest - accept or reject one pending file request
//
// who may respond follows from the request record: the recipient of
// the request is always the deciding party. an accepted ownership
// flip requires a fresh content hash re-encrypted for the new owner
type RespondToFileRequest struct {
	FileId    string `json:"fileId"`
	RequestId string `json:"requestId"`
	Accept    bool   `json:"accept"`
	NewHash   string `json:"newHash"`
	Timestamp int64  `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *RespondToFileRequest) Tag() TagType {
	return RespondToFileRequestTag
}

func (tx *RespondToFileRequest) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.FileId) || !validate.HexId(tx.RequestId) {
		return fault.ErrInvalidId
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}

	files := state.Files()
	i, ok := state.FindFile(files, tx.FileId)
	if !ok {
		return fault.ErrFileNotFound
	}
	file := &files[i]

	found, ok := file.FindRequest(tx.RequestId)
	if !ok {
		return fault.ErrRequestNotFound
	}
	request := *found // the resolution below clears the pending list

	if err := tx.checkResponder(ctx, &request); nil != err {
		return err
	}

	if !tx.Accept {
		err := state.RemoveFileRequest(trx, file, tx.RequestId)
		if nil != err {
			return err
		}
		state.SetFiles(trx, files)
		return nil
	}

	var err error
	switch request.Type {
	case record.RequestOwnership:
		err = tx.acceptOwnership(trx, ctx, files, file, &request, dryRun)
	case record.RequestAccessPermission:
		err = tx.acceptAccess(trx, ctx, file, &request, dryRun)
	case record.RequestTransfer:
		err = tx.acceptTransfer(trx, ctx, files, file, &request, dryRun)
	case record.RequestTimedTransfer:
		err = tx.acceptTimedTransfer(trx, ctx, files, file, &request, dryRun)
	default:
		err = fault.ErrRequestNotFound
	}
	if nil != err {
		return err
	}

	state.SetFiles(trx, files)
	return nil
}

// checkResponder - only the recipient of the request may respond; an
// unbound timed transfer is claimable by whoever owns the target email
func (tx *RespondToFileRequest) checkResponder(ctx *Context, request *record.Request) error {
	if !request.Recipient.IsZero() {
		if !ctx.Sender.Equal(request.Recipient) {
			return fault.ErrNotRequestRecipient
		}
		return nil
	}

	if record.RequestTimedTransfer != request.Type {
		return fault.ErrNotRequestRecipient
	}

	sender, ok := state.Account(ctx.Sender)
	if !ok {
		return fault.ErrSenderNotInitialised
	}
	transfers := state.TimedTransfers()
	i, ok := state.FindTimedTransfer(transfers, tx.FileId)
	if !ok || transfers[i].RecipientEmailHash != sender.Identity.EmailHash {
		return fault.ErrNotRequestRecipient
	}
	return nil
}

func (tx *RespondToFileRequest) checkNewHash(files []record.File, file *record.File) error {
	if !validate.ContentHash(tx.NewHash) {
		return fault.ErrMissingUpdatedHash
	}
	if j, ok := state.FindFileByHash(files, tx.NewHash); ok && files[j].Data.Id != file.Data.Id {
		return fault.ErrDuplicateFile
	}
	return nil
}

// acceptOwnership - the owner hands the file to the requester, who
// pays the transfer fee
func (tx *RespondToFileRequest) acceptOwnership(trx storage.Transaction, ctx *Context, files []record.File, file *record.File, request *record.Request, dryRun bool) error {

	if err := tx.checkNewHash(files, file); nil != err {
		return err
	}
	if err := settleFee(request.Sender, ctx.Sender, file.Data.TransferFee, dryRun); nil != err {
		return err
	}

	// every grant and pending request on the file lapses
	state.CleanupFileGrants(trx, file)

	oldOwner, ok := state.Account(ctx.Sender)
	if !ok {
		return fault.ErrOwnerNotInitialised
	}
	newOwner, ok := state.Account(request.Sender)
	if !ok {
		return fault.ErrRequesterNotInitialised
	}

	oldOwner.RemoveFileOwned(file.Data.Id)
	newOwner.AddFileOwned(file.Data.Id)
	state.SetAccount(trx, ctx.Sender, oldOwner)
	state.SetAccount(trx, request.Sender, newOwner)

	file.Data.Owner = request.Sender
	file.Data.Hash = tx.NewHash
	file.Meta.LastModified = record.NewDateTime(tx.Timestamp)
	file.AddHistory(ctx.TxId, tx.Timestamp, record.HistoryTransfer, request.Sender)

	bumpTransfers(trx)
	return nil
}

// acceptAccess - the owner grants view access; ownership and content
// hash stay as they are
func (tx *RespondToFileRequest) acceptAccess(trx storage.Transaction, ctx *Context, file *record.File, request *record.Request, dryRun bool) error {

	if err := settleFee(request.Sender, ctx.Sender, file.Data.AccessPermissionFee, dryRun); nil != err {
		return err
	}

	err := state.RemoveFileRequest(trx, file, request.RequestId)
	if nil != err {
		return err
	}

	requester, ok := state.Account(request.Sender)
	if !ok {
		return fault.ErrRequesterNotInitialised
	}
	requester.AddFileAllowed(file.Data.Id)
	state.SetAccount(trx, request.Sender, requester)

	file.AddHistory(ctx.TxId, tx.Timestamp, record.HistoryAccessPermission, request.Sender)
	return nil
}

// acceptTransfer - the offered-to account takes the file and pays the
// fee to the original owner; funds flow opposite to an ownership
// request
func (tx *RespondToFileRequest) acceptTransfer(trx storage.Transaction, ctx *Context, files []record.File, file *record.File, request *record.Request, dryRun bool) error {

	if err := tx.checkNewHash(files, file); nil != err {
		return err
	}
	if err := settleFee(ctx.Sender, request.Sender, file.Data.TransferFee, dryRun); nil != err {
		return err
	}

	state.CleanupFileGrants(trx, file)

	oldOwner, ok := state.Account(request.Sender)
	if !ok {
		return fault.ErrOwnerNotInitialised
	}
	newOwner, ok := state.Account(ctx.Sender)
	if !ok {
		return fault.ErrSenderNotInitialised
	}

	oldOwner.RemoveFileOwned(file.Data.Id)
	newOwner.AddFileOwned(file.Data.Id)
	state.SetAccount(trx, request.Sender, oldOwner)
	state.SetAccount(trx, ctx.Sender, newOwner)

	file.Data.Owner = ctx.Sender
	file.Data.Hash = tx.NewHash
	file.Meta.LastModified = record.NewDateTime(tx.Timestamp)
	file.AddHistory(ctx.TxId, tx.Timestamp, record.HistoryTransfer, ctx.Sender)

	bumpTransfers(trx)
	return nil
}

// acceptTimedTransfer - the claimer takes the file; the file is new so
// only the one request and any stale access grant need unwinding
func (tx *RespondToFileRequest) acceptTimedTransfer(trx storage.Transaction, ctx *Context, files []record.File, file *record.File, request *record.Request, dryRun bool) error {

	if err := tx.checkNewHash(files, file); nil != err {
		return err
	}
	if err := settleFee(ctx.Sender, request.Sender, file.Data.TransferFee, dryRun); nil != err {
		return err
	}

	originalSender, ok := state.Account(request.Sender)
	if !ok {
		return fault.ErrSenderNotInitialised
	}
	claimer, ok := state.Account(ctx.Sender)
	if !ok {
		return fault.ErrRecipientNotInitialised
	}

	file.RemoveRequest(request.RequestId)

	originalSender.RemoveFileRequestRefs(request.RequestId)
	originalSender.RemoveFileOwned(file.Data.Id)
	state.SetAccount(trx, request.Sender, originalSender)

	claimer.RemoveFileRequestRefs(request.RequestId)
	claimer.RemoveFileAllowed(file.Data.Id)
	claimer.AddFileOwned(file.Data.Id)
	state.SetAccount(trx, ctx.Sender, claimer)

	transfers := state.TimedTransfers()
	if i, ok := state.FindTimedTransfer(transfers, file.Data.Id); ok {
		transfers = append(transfers[:i], transfers[i+1:]...)
		state.SetTimedTransfers(trx, transfers)
	}

	file.Data.Owner = ctx.Sender
	file.Data.Hash = tx.NewHash
	file.Meta.Expiration = record.DateTime{} // claimed, no longer expiring
	file.Meta.LastModified = record.NewDateTime(tx.Timestamp)
	file.AddHistory(ctx.TxId, tx.Timestamp, record.HistoryTimedTransferResponse, request.Sender)

	bumpTransfers(trx)
	return nil
}

func bumpTransfers(trx storage.Transaction) {
	statistics := state.Statistics()
	statistics.Transfers += 1
	state.SetStatistics(trx, statistics)
}
