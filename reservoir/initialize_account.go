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

// InitializeAccount - bind an email hash and username to the sender
type InitializeAccount struct {
	EmailHash string `json:"emailHash"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}

// Tag - the transaction type tag
func (tx *InitializeAccount) Tag() TagType {
	return InitializeAccountTag
}

func (tx *InitializeAccount) apply(trx storage.Transaction, ctx *Context, dryRun bool) error {

	if !validate.EmailHash(tx.EmailHash) {
		return fault.ErrInvalidEmailHash
	}
	if "" == tx.Username {
		return fault.ErrMissingParameters
	}
	if !validate.PastTimestamp(tx.Timestamp) {
		return fault.ErrInvalidTimestamp
	}

	if _, ok := state.Account(ctx.Sender); ok {
		return fault.ErrAccountAlreadyInitialised
	}
	if _, ok := state.UsernameMap(tx.Username); ok {
		return fault.ErrUsernameTaken
	}

	account := record.NewAccount(tx.EmailHash, tx.Username)

	// timed transfers sent to this email before it was registered
	// become incoming requests of the new account
	transfers := state.TimedTransfers()
	if 0 < len(transfers) {
		files := state.Files()
		for _, transfer := range transfers {
			if transfer.RecipientEmailHash != tx.EmailHash {
				continue
			}
			i, ok := state.FindFile(files, transfer.Id)
			if !ok {
				continue
			}
			for _, request := range files[i].Data.Requests {
				if record.RequestTimedTransfer == request.Type {
					account.AddIncomingFileRequest(transfer.Id, request.RequestId)
				}
			}
		}
	}

	entry := &record.MapEntry{
		Address:   ctx.Sender,
		Username:  tx.Username,
		EmailHash: tx.EmailHash,
	}
	state.SetEmailMap(trx, tx.EmailHash, entry)
	state.SetUsernameMap(trx, tx.Username, entry)
	state.SetAccount(trx, ctx.Sender, account)

	statistics := state.Statistics()
	statistics.Accounts += 1
	state.SetStatistics(trx, statistics)

	return nil
}
