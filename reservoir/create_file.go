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

// CreateFile - register a new file owned by the sender
type CreateFile struct {
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
func (tx *CreateFile) Tag() TagType {
	return CreateFileTag
}

func (tx *CreateFile) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.Checksum(tx.Checksum) {
		return fault.ErrInvalidChecksum
	}
	if !validate.ContentHash(tx.Hash) {
		return fault.ErrInvalidContentHash
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}
	if ctx.Fee < constants.CreateFileFee {
		return fault.ErrTransactionFeeTooLow
	}

	sender, ok := state.Account(ctx.Sender)
	if !ok || !sender.Initialised() {
		return fault.ErrSenderNotInitialised
	}

	files := state.Files()
	if _, ok := state.FindFileByChecksum(files, tx.Checksum); ok {
		return fault.ErrDuplicateFile
	}
	if _, ok := state.FindFileByHash(files, tx.Hash); ok {
		return fault.ErrDuplicateFile
	}

	created := record.NewDateTime(tx.Timestamp)
	file := record.File{
		Meta: record.Meta{
			CreatedAt:    created,
			LastModified: created,
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
	file.AddHistory(ctx.TxId, tx.Timestamp, record.HistoryRegistration, ctx.Sender)

	state.SetFiles(trx, append(files, file))

	sender.AddFileOwned(ctx.TxId)
	state.SetAccount(trx, ctx.Sender, sender)

	statistics := state.Statistics()
	statistics.Files += 1
	state.SetStatistics(trx, statistics)

	return nil
}
