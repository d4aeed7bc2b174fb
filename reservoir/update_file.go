// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"bytes"

	"github.com/bitmark-inc/filevaultd/fault"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/state"
	"github.com/bitmark-inc/filevaultd/storage"
	"github.com/bitmark-inc/filevaultd/validate"
)

// UpdateFile - owner-only mutation of the negotiable properties
//
// the content itself changes hands only through transfer responses, so
// the hash is not updatable here
type UpdateFile struct {
	FileId              string `json:"fileId"`
	TransferFee         uint64 `json:"transferFee"`
	AccessPermissionFee uint64 `json:"accessPermissionFee"`
	Private             bool   `json:"private"`
	CustomFields        []byte `json:"customFields"`
	Timestamp           int64  `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *UpdateFile) Tag() TagType {
	return UpdateFileTag
}

func (tx *UpdateFile) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

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

	if !ctx.Sender.Equal(file.Data.Owner) {
		return fault.ErrNotFileOwner
	}

	// an in-flight request was made against the old terms
	if 0 < len(file.Data.Requests) {
		return fault.ErrPendingRequestsExist
	}

	if file.Data.TransferFee == tx.TransferFee &&
		file.Data.AccessPermissionFee == tx.AccessPermissionFee &&
		file.Data.Private == tx.Private &&
		bytes.Equal(file.Data.CustomFields, tx.CustomFields) {
		return fault.ErrNoChangesDetected
	}

	file.Data.TransferFee = tx.TransferFee
	file.Data.AccessPermissionFee = tx.AccessPermissionFee
	file.Data.Private = tx.Private
	file.Data.CustomFields = tx.CustomFields
	file.Meta.LastModified = record.NewDateTime(tx.Timestamp)

	state.SetFiles(trx, files)
	return nil
}
