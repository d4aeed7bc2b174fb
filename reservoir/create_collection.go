// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/bitmark-inc/filevaultd/constants"
	"github.com/bitmark-inc/filevaultd/fault"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/state"
	"github.com/bitmark-inc/filevaultd/storage"
	"github.com/bitmark-inc/filevaultd/validate"
)

// CreateCollection - register a new collection owned by the sender
type CreateCollection struct {
	Title       string   `json:"title"`
	TransferFee uint64   `json:"transferFee"`
	FileIds     []string `json:"fileIds"`
	Timestamp   int64    `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *CreateCollection) Tag() TagType {
	return CreateCollectionTag
}

func (tx *CreateCollection) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if "" == tx.Title {
		return fault.ErrMissingParameters
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}
	if ctx.Fee < constants.CreateCollectionFee {
		return fault.ErrTransactionFeeTooLow
	}
	if constants.MaxFilesInCollection < len(tx.FileIds) {
		return fault.ErrTooManyFilesInCollection
	}
	if validate.HasDuplicates(tx.FileIds) {
		return fault.ErrDuplicateFileIds
	}

	sender, ok := state.Account(ctx.Sender)
	if !ok || !sender.Initialised() {
		return fault.ErrSenderNotInitialised
	}

	collections := state.Collections()
	if _, ok := state.FindCollectionByTitle(collections, tx.Title); ok {
		return fault.ErrCollectionAlreadyExists
	}

	collection := record.Collection{
		Id:          ctx.TxId,
		Title:       tx.Title,
		Owner:       ctx.Sender,
		FileIds:     []string{},
		TransferFee: tx.TransferFee,
		Requests:    []record.Request{},
	}

	files := state.Files()
	if 0 < len(tx.FileIds) {
		err := attachFiles(trx, files, &collection, tx.FileIds, ctx, tx.Timestamp)
		if nil != err {
			return err
		}
		collection.FileIds = tx.FileIds
		state.SetFiles(trx, files)
	}

	state.SetCollections(trx, append(collections, collection))

	// the attach pass may have rewritten the sender's request pointers
	sender, _ = state.Account(ctx.Sender)
	sender.AddCollectionOwned(ctx.TxId)
	state.SetAccount(trx, ctx.Sender, sender)

	statistics := state.Statistics()
	statistics.Collections += 1
	state.SetStatistics(trx, statistics)

	return nil
}

// attachFiles - validate and attach new member files to a collection
//
// the files table slice is mutated in place; the caller stores it
func attachFiles(trx storage.Transaction, files []record.File, collection *record.Collection, addIds []string, ctx *Context, timestamp int64) error {

	attached := make([]*record.File, 0, len(addIds))
	for _, fileId := range addIds {
		i, ok := state.FindFile(files, fileId)
		if !ok {
			return fault.ErrFileNotFound
		}
		file := &files[i]

		if !collection.Owner.Equal(file.Data.Owner) {
			return fault.ErrNotFileOwner
		}
		if file.InCollection() && file.Meta.Collection.Id != collection.Id {
			return fault.ErrPartOfCollection
		}
		attached = append(attached, file)
	}

	// access permission does not survive entering a collection
	state.CleanupFileGrants(trx, attached...)

	for _, file := range attached {
		file.Meta.Collection = record.CollectionRef{
			Id:    collection.Id,
			Title: collection.Title,
		}
		file.AddHistory(ctx.TxId, timestamp, record.HistoryAddedToCollection, ctx.Sender)
	}
	return nil
}
