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

// TimedTransfer - register a file addressed to an email hash
//
// the recipient need not have an account yet; the file stays claimable
// until the expiry sweep removes it
type TimedTransfer struct {
	RecipientEmailHash  string `json:"recipientEmailHash"`
	Title               string `json:"title"`
	Name                string `json:"name"`
	Size                uint64 `json:"size"`
	Type                string `json:"type"`
	Checksum            string `json:"checksum"`
	Hash                string `json:"hash"`
	CustomFields        []byte `json:"customFields"`
	TransferFee         uint64 `json:"transferFee"`
	AccessPermissionFee uint64 `json:"accessPermissionFee"`
	Private             bool   `json:"private"`
	Timestamp           int64  `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *TimedTransfer) Tag() TagType {
	return TimedTransferTag
}

func (tx *TimedTransfer) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.EmailHash(tx.RecipientEmailHash) {
		return fault.ErrInvalidEmailHash
	}
	if !validate.Checksum(tx.Checksum) {
		return fault.ErrInvalidChecksum
	}
	if !validate.ContentHash(tx.Hash) {
		return fault.ErrInvalidContentHash
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}
	if ctx.Fee < constants.TimedTransferFee {
		return fault.ErrTransactionFeeTooLow
	}

	sender, ok := state.Account(ctx.Sender)
	if !ok || !sender.Initialised() {
		return fault.ErrSenderNotInitialised
	}
	if sender.Identity.EmailHash == tx.RecipientEmailHash {
		return fault.ErrSelfTransferForbidden
	}

	files := state.Files()
	if _, ok := state.FindFileByChecksum(files, tx.Checksum); ok {
		return fault.ErrDuplicateFile
	}
	if _, ok := state.FindFileByHash(files, tx.Hash); ok {
		return fault.ErrDuplicateFile
	}

	// the recipient address is bound when the email is registered
	var recipient *record.MapEntry
	if entry, ok := state.EmailMap(tx.RecipientEmailHash); ok {
		recipient = entry
	}

	created := record.NewDateTime(tx.Timestamp)
	expiration := record.NewDateTime(tx.Timestamp + Expiration())

	file := record.File{
		Meta: record.Meta{
			CreatedAt:    created,
			LastModified: created,
			Expiration:   expiration,
		},
		Data: record.FileData{
			Id:                  ctx.TxId,
			Title:               tx.Title,
			Name:                tx.Name,
			Size:                tx.Size,
			Type:                tx.Type,
			Checksum:            tx.Checksum,
			Hash:                tx.Hash,
			Owner:               ctx.Sender,
			CustomFields:        tx.CustomFields,
			TransferFee:         tx.TransferFee,
			AccessPermissionFee: tx.AccessPermissionFee,
			Requests:            []record.Request{},
			History:             []record.HistoryItem{},
			Private:             tx.Private,
		},
	}
	file.AddHistory(ctx.TxId, tx.Timestamp, record.HistoryTimedTransferSubmission, ctx.Sender)

	request := record.Request{
		RequestId: ctx.TxId,
		Type:      record.RequestTimedTransfer,
		Sender:    ctx.Sender,
	}
	if nil != recipient && !recipient.Address.IsZero() {
		request.Recipient = recipient.Address
	}
	file.Data.Requests = append(file.Data.Requests, request)

	state.SetFiles(trx, append(files, file))

	sender.AddFileOwned(ctx.TxId)
	sender.AddOutgoingFileRequest(ctx.TxId, ctx.TxId)
	state.SetAccount(trx, ctx.Sender, sender)

	if nil != recipient && !recipient.Address.IsZero() {
		recipientAccount, ok := state.Account(recipient.Address)
		if !ok {
			return fault.ErrRecipientNotInitialised
		}
		// the recipient pays the transfer fee on claim
		if err := checkAffordable(recipient.Address, tx.TransferFee); nil != err {
			return err
		}
		recipientAccount.AddIncomingFileRequest(ctx.TxId, ctx.TxId)
		state.SetAccount(trx, recipient.Address, recipientAccount)
	} else if nil == recipient {
		// pre-register the email so a later account claims the transfer
		state.SetEmailMap(trx, tx.RecipientEmailHash, &record.MapEntry{
			EmailHash: tx.RecipientEmailHash,
		})
	}

	transfers := state.TimedTransfers()
	transfers = append(transfers, record.TimedTransferSummary{
		Id:                 ctx.TxId,
		Expiration:         expiration,
		Sender:             ctx.Sender,
		RecipientEmailHash: tx.RecipientEmailHash,
	})
	state.SetTimedTransfers(trx, transfers)

	statistics := state.Statistics()
	statistics.Files += 1
	state.SetStatistics(trx, statistics)

	return nil
}
