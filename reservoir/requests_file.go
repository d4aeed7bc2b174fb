// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/fault"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/state"
	"github.com/bitmark-inc/filevaultd/storage"
	"github.com/bitmark-inc/filevaultd/validate"
)

// RequestFileOwnership - ask the owner to hand over a file
//
// the requester pays the file's transfer fee on acceptance
type RequestFileOwnership struct {
	FileId    string `json:"fileId"`
	Timestamp int64  `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *RequestFileOwnership) Tag() TagType {
	return RequestFileOwnershipTag
}

func (tx *RequestFileOwnership) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.FileId) {
		return fault.ErrInvalidId
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}

	sender, ok := state.Account(ctx.Sender)
	if !ok || !sender.Initialised() {
		return fault.ErrSenderNotInitialised
	}

	files := state.Files()
	i, ok := state.FindFile(files, tx.FileId)
	if !ok {
		return fault.ErrFileNotFound
	}
	file := &files[i]

	if file.InCollection() {
		return fault.ErrPartOfCollection
	}
	if ctx.Sender.Equal(file.Data.Owner) {
		return fault.ErrAlreadyOwner
	}
	if _, ok := state.Account(file.Data.Owner); !ok {
		return fault.ErrOwnerNotInitialised
	}
	if hasPendingRequest(file.Data.Requests, ctx.Sender, record.RequestOwnership) {
		return fault.ErrDuplicateRequest
	}

	// the requester is the paying party
	if err := checkAffordable(ctx.Sender, file.Data.TransferFee); nil != err {
		return err
	}

	err := state.AddFileRequest(trx, file, record.Request{
		RequestId: ctx.TxId,
		Type:      record.RequestOwnership,
		Sender:    ctx.Sender,
		Recipient: file.Data.Owner,
	})
	if nil != err {
		return err
	}

	state.SetFiles(trx, files)
	return nil
}

// RequestFileAccess - ask the owner for view access to a file
//
// the requester pays the file's access permission fee on acceptance
type RequestFileAccess struct {
	FileId    string `json:"fileId"`
	Timestamp int64  `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *RequestFileAccess) Tag() TagType {
	return RequestFileAccessTag
}

func (tx *RequestFileAccess) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.FileId) {
		return fault.ErrInvalidId
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}

	sender, ok := state.Account(ctx.Sender)
	if !ok || !sender.Initialised() {
		return fault.ErrSenderNotInitialised
	}

	files := state.Files()
	i, ok := state.FindFile(files, tx.FileId)
	if !ok {
		return fault.ErrFileNotFound
	}
	file := &files[i]

	if file.InCollection() {
		return fault.ErrPartOfCollection
	}
	if ctx.Sender.Equal(file.Data.Owner) {
		return fault.ErrAlreadyOwner
	}
	if sender.HasFileAccess(tx.FileId) {
		return fault.ErrAlreadyHasAccess
	}
	if _, ok := state.Account(file.Data.Owner); !ok {
		return fault.ErrOwnerNotInitialised
	}
	if hasPendingRequest(file.Data.Requests, ctx.Sender, record.RequestAccessPermission) {
		return fault.ErrDuplicateRequest
	}

	if err := checkAffordable(ctx.Sender, file.Data.AccessPermissionFee); nil != err {
		return err
	}

	err := state.AddFileRequest(trx, file, record.Request{
		RequestId: ctx.TxId,
		Type:      record.RequestAccessPermission,
		Sender:    ctx.Sender,
		Recipient: file.Data.Owner,
	})
	if nil != err {
		return err
	}

	state.SetFiles(trx, files)
	return nil
}

// RequestFileTransfer - offer an owned file to another account
//
// the recipient is the paying party: whoever ends up owning the file
// settles the transfer fee on acceptance
type RequestFileTransfer struct {
	FileId    string           `json:"fileId"`
	Recipient *address.Address `json:"recipient"`
	Timestamp int64            `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *RequestFileTransfer) Tag() TagType {
	return RequestFileTransferTag
}

func (tx *RequestFileTransfer) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.FileId) {
		return fault.ErrInvalidId
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}
	if tx.Recipient.IsZero() {
		return fault.ErrMissingParameters
	}
	if ctx.Sender.Equal(tx.Recipient) {
		return fault.ErrSelfTransferForbidden
	}

	sender, ok := state.Account(ctx.Sender)
	if !ok || !sender.Initialised() {
		return fault.ErrSenderNotInitialised
	}
	if _, ok := state.Account(tx.Recipient); !ok {
		return fault.ErrRecipientNotInitialised
	}

	files := state.Files()
	i, ok := state.FindFile(files, tx.FileId)
	if !ok {
		return fault.ErrFileNotFound
	}
	file := &files[i]

	if !ctx.Sender.Equal(file.Data.Owner) {
		return fault.ErrNotFileOwner
	}
	if file.InCollection() {
		return fault.ErrPartOfCollection
	}
	if 0 < len(file.Data.Requests) {
		return fault.ErrPendingRequestsExist
	}

	if err := checkAffordable(tx.Recipient, file.Data.TransferFee); nil != err {
		return err
	}

	err := state.AddFileRequest(trx, file, record.Request{
		RequestId: ctx.TxId,
		Type:      record.RequestTransfer,
		Sender:    ctx.Sender,
		Recipient: tx.Recipient,
	})
	if nil != err {
		return err
	}

	state.SetFiles(trx, files)
	return nil
}

func hasPendingRequest(requests []record.Request, sender *address.Address, requestType record.RequestType) bool {
	for _, request := range requests {
		if request.Type == requestType && sender.Equal(request.Sender) {
			return true
		}
	}
	return false
}
