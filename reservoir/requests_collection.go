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

// RequestCollectionOwnership - ask the owner to hand over a collection
// and all its member files
type RequestCollectionOwnership struct {
	CollectionId string `json:"collectionId"`
	Timestamp    int64  `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *RequestCollectionOwnership) Tag() TagType {
	return RequestCollectionOwnershipTag
}

func (tx *RequestCollectionOwnership) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.CollectionId) {
		return fault.ErrInvalidId
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}

	sender, ok := state.Account(ctx.Sender)
	if !ok || !sender.Initialised() {
		return fault.ErrSenderNotInitialised
	}

	collections := state.Collections()
	i, ok := state.FindCollection(collections, tx.CollectionId)
	if !ok {
		return fault.ErrCollectionNotFound
	}
	collection := &collections[i]

	if ctx.Sender.Equal(collection.Owner) {
		return fault.ErrAlreadyOwner
	}
	if _, ok := state.Account(collection.Owner); !ok {
		return fault.ErrOwnerNotInitialised
	}
	if hasPendingRequest(collection.Requests, ctx.Sender, record.RequestOwnership) {
		return fault.ErrDuplicateRequest
	}

	// the requester is the paying party
	if err := checkAffordable(ctx.Sender, collection.TransferFee); nil != err {
		return err
	}

	err := state.AddCollectionRequest(trx, collection, record.Request{
		RequestId: ctx.TxId,
		Type:      record.RequestOwnership,
		Sender:    ctx.Sender,
		Recipient: collection.Owner,
	})
	if nil != err {
		return err
	}

	state.SetCollections(trx, collections)
	return nil
}

// RequestCollectionTransfer - offer an owned collection to another
// account
//
// the recipient is the paying party on acceptance
type RequestCollectionTransfer struct {
	CollectionId string           `json:"collectionId"`
	Recipient    *address.Address `json:"recipient"`
	Timestamp    int64            `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *RequestCollectionTransfer) Tag() TagType {
	return RequestCollectionTransferTag
}

func (tx *RequestCollectionTransfer) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.HexId(tx.CollectionId) {
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

	collections := state.Collections()
	i, ok := state.FindCollection(collections, tx.CollectionId)
	if !ok {
		return fault.ErrCollectionNotFound
	}
	collection := &collections[i]

	if !ctx.Sender.Equal(collection.Owner) {
		return fault.ErrNotCollectionOwner
	}
	if 0 == len(collection.FileIds) {
		return fault.ErrCollectionIsEmpty
	}
	if 0 < len(collection.Requests) {
		return fault.ErrPendingRequestsExist
	}

	if err := checkAffordable(tx.Recipient, collection.TransferFee); nil != err {
		return err
	}

	err := state.AddCollectionRequest(trx, collection, record.Request{
		RequestId: ctx.TxId,
		Type:      record.RequestTransfer,
		Sender:    ctx.Sender,
		Recipient: tx.Recipient,
	})
	if nil != err {
		return err
	}

	state.SetCollections(trx, collections)
	return nil
}
