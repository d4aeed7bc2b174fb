// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/bitmark-inc/filevaultd/fault"
	"github.com/bitmark-inc/filevaultd/state"
	"github.com/bitmark-inc/filevaultd/storage"
	"github.com/bitmark-inc/filevaultd/validate"
)

// CancelRequest - withdraw one pending request without a decision
//
// exactly one of fileId and collectionId selects the target; either
// party to the request may cancel it
type CancelRequest struct {
	FileId       string `json:"fileId"`
	CollectionId string `json:"collectionId"`
	RequestId    string `json:"requestId"`
	Timestamp    int64  `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *CancelRequest) Tag() TagType {
	return CancelRequestTag
}

func (tx *CancelRequest) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.RequestId) {
		return fault.ErrInvalidId
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}
	if "" == tx.FileId && "" == tx.CollectionId {
		return fault.ErrMissingCancelTarget
	}
	if "" != tx.FileId && "" != tx.CollectionId {
		return fault.ErrAmbiguousCancelTarget
	}

	if "" != tx.FileId {
		files := state.Files()
		i, ok := state.FindFile(files, tx.FileId)
		if !ok {
			return fault.ErrFileNotFound
		}
		file := &files[i]

		request, ok := file.FindRequest(tx.RequestId)
		if !ok {
			return fault.ErrRequestNotFound
		}
		if !ctx.Sender.Equal(request.Sender) && !ctx.Sender.Equal(request.Recipient) {
			return fault.ErrNotRequestParty
		}

		err := state.RemoveFileRequest(trx, file, tx.RequestId)
		if nil != err {
			return err
		}
		state.SetFiles(trx, files)
		return nil
	}

	collections := state.Collections()
	i, ok := state.FindCollection(collections, tx.CollectionId)
	if !ok {
		return fault.ErrCollectionNotFound
	}
	collection := &collections[i]

	request, ok := collection.FindRequest(tx.RequestId)
	if !ok {
		return fault.ErrRequestNotFound
	}
	if !ctx.Sender.Equal(request.Sender) && !ctx.Sender.Equal(request.Recipient) {
		return fault.ErrNotRequestParty
	}

	err := state.RemoveCollectionRequest(trx, collection, tx.RequestId)
	if nil != err {
		return err
	}
	state.SetCollections(trx, collections)
	return nil
}
