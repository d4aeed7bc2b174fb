// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sweep - the block-boundary expiry pass
//
// after every block the registry drops timed transfers whose
// expiration precedes the block timestamp: the backing file vanishes
// and both the sender and a bound recipient lose every reference to
// it. expiry is not a party action, so there is no authorization or
// balance check and the pass is idempotent
package sweep

import (
	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/state"
	"github.com/bitmark-inc/filevaultd/storage"
)

// Run - remove every timed transfer expired at the given block time
//
// returns the number of transfers removed; when nothing is due no
// transaction is opened and no write happens
func Run(blockTime int64) (int, error) {

	transfers := state.TimedTransfers()

	expired := []record.TimedTransferSummary{}
	remaining := transfers[:0]
	for _, transfer := range transfers {
		if transfer.Expiration.Unix < blockTime {
			expired = append(expired, transfer)
		} else {
			remaining = append(remaining, transfer)
		}
	}
	if 0 == len(expired) {
		return 0, nil
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	files := state.Files()
	for _, transfer := range expired {

		i, ok := state.FindFile(files, transfer.Id)

		requestIds := []string{transfer.Id}
		if ok {
			for _, request := range files[i].Data.Requests {
				requestIds = append(requestIds, request.RequestId)
			}
			files = append(files[:i], files[i+1:]...)
		}

		purge(trx, transfer.Sender, transfer.Id, requestIds)

		// a recipient may have registered the email since the transfer
		if entry, ok := state.EmailMap(transfer.RecipientEmailHash); ok && !entry.Address.IsZero() {
			purge(trx, entry.Address, transfer.Id, requestIds)
		}
	}

	state.SetFiles(trx, files)
	state.SetTimedTransfers(trx, remaining)

	err = trx.Commit()
	if nil != err {
		return 0, err
	}
	return len(expired), nil
}

// purge - unconditionally strip one account's references to a file
func purge(trx storage.Transaction, owner *address.Address, fileId string, requestIds []string) {
	account, ok := state.Account(owner)
	if !ok {
		return
	}
	account.RemoveFileOwned(fileId)
	account.RemoveFileAllowed(fileId)
	for _, requestId := range requestIds {
		account.RemoveFileRequestRefs(requestId)
	}
	state.SetAccount(trx, owner, account)
}
