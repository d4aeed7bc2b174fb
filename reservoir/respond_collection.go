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

// RespondToCollectionRequest - accept or reject one pending collection
// request
//
// an accepted request flips ownership of the collection and every
// member file in one transition; each member file needs a fresh
// content hash keyed by file id, and a missing entry rejects the whole
// transaction before any mutation
type RespondToCollectionRequest struct {
	CollectionId    string            `json:"collectionId"`
	RequestId       string            `json:"requestId"`
	Accept          bool              `json:"accept"`
	UpdatedFileData map[string]string `json:"updatedFileData"`
	Timestamp       int64             `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *RespondToCollectionRequest) Tag() TagType {
	return RespondToCollectionRequestTag
}

func (tx *RespondToCollectionRequest) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.CollectionId) || !validate.HexId(tx.RequestId) {
		return fault.ErrInvalidId
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}

	collections := state.Collections()
	ci, ok := state.FindCollection(collections, tx.CollectionId)
	if !ok {
		return fault.ErrCollectionNotFound
	}
	collection := &collections[ci]

	found, ok := collection.FindRequest(tx.RequestId)
	if !ok {
		return fault.ErrRequestNotFound
	}
	request := *found

	if !ctx.Sender.Equal(request.Recipient) {
		return fault.ErrNotRequestRecipient
	}

	if !tx.Accept {
		err := state.RemoveCollectionRequest(trx, collection, tx.RequestId)
		if nil != err {
			return err
		}
		state.SetCollections(trx, collections)
		return nil
	}

	// funds flow depends on who asked: an ownership requester pays to
	// receive, a transfer recipient pays to accept
	var oldOwnerAddress, newOwnerAddress *address.Address
	switch request.Type {
	case record.RequestOwnership:
		oldOwnerAddress = ctx.Sender
		newOwnerAddress = request.Sender
	case record.RequestTransfer:
		oldOwnerAddress = request.Sender
		newOwnerAddress = ctx.Sender
	default:
		return fault.ErrRequestNotFound
	}

	// validate every member before any mutation
	files := state.Files()
	members := make([]*record.File, 0, len(collection.FileIds))
	for _, fileId := range collection.FileIds {
		i, ok := state.FindFile(files, fileId)
		if !ok {
			return fault.ErrFileNotFound
		}
		file := &files[i]

		newHash, ok := tx.UpdatedFileData[fileId]
		if !ok || !validate.ContentHash(newHash) {
			return fault.ErrMissingUpdatedHash
		}
		if j, ok := state.FindFileByHash(files, newHash); ok && files[j].Data.Id != fileId {
			return fault.ErrDuplicateFile
		}
		members = append(members, file)
	}

	err := settleFee(newOwnerAddress, oldOwnerAddress, collection.TransferFee, dryRun)
	if nil != err {
		return err
	}

	// account-table scan must precede any account rewrite
	state.CleanupFileGrants(trx, members...)
	state.ClearCollectionRequests(trx, collection)

	oldOwner, ok := state.Account(oldOwnerAddress)
	if !ok {
		return fault.ErrOwnerNotInitialised
	}
	newOwner, ok := state.Account(newOwnerAddress)
	if !ok {
		return fault.ErrRequesterNotInitialised
	}

	for _, file := range members {
		file.Data.Owner = newOwnerAddress
		file.Data.Hash = tx.UpdatedFileData[file.Data.Id]
		file.Meta.LastModified = record.NewDateTime(tx.Timestamp)
		file.AddHistory(ctx.TxId, tx.Timestamp, record.HistoryTransferredViaCollection, newOwnerAddress)

		oldOwner.RemoveFileOwned(file.Data.Id)
		newOwner.AddFileOwned(file.Data.Id)
	}

	oldOwner.RemoveCollectionOwned(collection.Id)
	newOwner.AddCollectionOwned(collection.Id)
	state.SetAccount(trx, oldOwnerAddress, oldOwner)
	state.SetAccount(trx, newOwnerAddress, newOwner)

	collection.Owner = newOwnerAddress

	state.SetFiles(trx, files)
	state.SetCollections(trx, collections)

	bumpTransfers(trx)
	return nil
}
