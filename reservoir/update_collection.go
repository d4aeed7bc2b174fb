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

// UpdateCollection - replace the membership and transfer fee of a
// collection
type UpdateCollection struct {
	CollectionId string   `json:"collectionId"`
	FileIds      []string `json:"fileIds"`
	TransferFee  uint64   `json:"transferFee"`
	Timestamp    int64    `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *UpdateCollection) Tag() TagType {
	return UpdateCollectionTag
}

func (tx *UpdateCollection) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.CollectionId) {
		return fault.ErrInvalidId
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}
	if constants.MaxFilesInCollection < len(tx.FileIds) {
		return fault.ErrTooManyFilesInCollection
	}
	if validate.HasDuplicates(tx.FileIds) {
		return fault.ErrDuplicateFileIds
	}

	collections := state.Collections()
	ci, ok := state.FindCollection(collections, tx.CollectionId)
	if !ok {
		return fault.ErrCollectionNotFound
	}
	collection := &collections[ci]

	if !ctx.Sender.Equal(collection.Owner) {
		return fault.ErrNotCollectionOwner
	}

	newMembers := make(map[string]struct{}, len(tx.FileIds))
	for _, fileId := range tx.FileIds {
		newMembers[fileId] = struct{}{}
	}

	addIds := []string{}
	for _, fileId := range tx.FileIds {
		if !collection.HasFile(fileId) {
			addIds = append(addIds, fileId)
		}
	}

	removeIds := []string{}
	for _, fileId := range collection.FileIds {
		if _, ok := newMembers[fileId]; !ok {
			removeIds = append(removeIds, fileId)
		}
	}

	files := state.Files()

	err := attachFiles(trx, files, collection, addIds, ctx, tx.Timestamp)
	if nil != err {
		return err
	}

	for _, fileId := range removeIds {
		i, ok := state.FindFile(files, fileId)
		if !ok {
			// membership may point at a file the sweep already removed
			continue
		}
		files[i].Meta.Collection = record.CollectionRef{}
		files[i].AddHistory(ctx.TxId, tx.Timestamp, record.HistoryRemovedFromCollection, ctx.Sender)
	}

	collection.FileIds = tx.FileIds
	collection.TransferFee = tx.TransferFee

	state.SetFiles(trx, files)
	state.SetCollections(trx, collections)

	return nil
}
