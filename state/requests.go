// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/fault"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/storage"
)

// a pending request always exists in exactly three places: the target
// entity's request list, the sender's outgoing list and the
// recipient's incoming list. the helpers here are the only code that
// adds or removes request records, so the three copies cannot drift

// AddFileRequest - mirror a new request on the file and both accounts
func AddFileRequest(trx storage.Transaction, file *record.File, request record.Request) error {
	sender, ok := Account(request.Sender)
	if !ok {
		return fault.ErrSenderNotInitialised
	}
	recipient, ok := Account(request.Recipient)
	if !ok {
		return fault.ErrRecipientNotInitialised
	}

	file.Data.Requests = append(file.Data.Requests, request)
	sender.AddOutgoingFileRequest(file.Data.Id, request.RequestId)
	recipient.AddIncomingFileRequest(file.Data.Id, request.RequestId)

	SetAccount(trx, request.Sender, sender)
	SetAccount(trx, request.Recipient, recipient)
	return nil
}

// RemoveFileRequest - three-way removal of one resolved request
func RemoveFileRequest(trx storage.Transaction, file *record.File, requestId string) error {
	request, ok := file.FindRequest(requestId)
	if !ok {
		return fault.ErrRequestNotFound
	}

	purgeAccountRequestRefs(trx, request.Sender, requestId, false)
	purgeAccountRequestRefs(trx, request.Recipient, requestId, false)
	file.RemoveRequest(requestId)
	return nil
}

// ClearFileRequests - drop every pending request on a file, purging
// the account-side pointers of each
func ClearFileRequests(trx storage.Transaction, file *record.File) {
	for _, request := range file.Data.Requests {
		purgeAccountRequestRefs(trx, request.Sender, request.RequestId, false)
		purgeAccountRequestRefs(trx, request.Recipient, request.RequestId, false)
	}
	file.Data.Requests = []record.Request{}
}

// AddCollectionRequest - mirror a new request on the collection and
// both accounts
func AddCollectionRequest(trx storage.Transaction, collection *record.Collection, request record.Request) error {
	sender, ok := Account(request.Sender)
	if !ok {
		return fault.ErrSenderNotInitialised
	}
	recipient, ok := Account(request.Recipient)
	if !ok {
		return fault.ErrRecipientNotInitialised
	}

	collection.Requests = append(collection.Requests, request)
	sender.AddOutgoingCollectionRequest(collection.Id, request.RequestId)
	recipient.AddIncomingCollectionRequest(collection.Id, request.RequestId)

	SetAccount(trx, request.Sender, sender)
	SetAccount(trx, request.Recipient, recipient)
	return nil
}

// RemoveCollectionRequest - three-way removal of one resolved request
func RemoveCollectionRequest(trx storage.Transaction, collection *record.Collection, requestId string) error {
	request, ok := collection.FindRequest(requestId)
	if !ok {
		return fault.ErrRequestNotFound
	}

	purgeAccountRequestRefs(trx, request.Sender, requestId, true)
	purgeAccountRequestRefs(trx, request.Recipient, requestId, true)
	collection.RemoveRequest(requestId)
	return nil
}

// ClearCollectionRequests - drop every pending request on a collection
func ClearCollectionRequests(trx storage.Transaction, collection *record.Collection) {
	for _, request := range collection.Requests {
		purgeAccountRequestRefs(trx, request.Sender, request.RequestId, true)
		purgeAccountRequestRefs(trx, request.Recipient, request.RequestId, true)
	}
	collection.Requests = []record.Request{}
}

// CleanupFileGrants - provenance cleanup when files change hands
//
// every account loses its access grant on the files and any pointer to
// a pending request of the files. the scan reads committed account
// records, so this must run before the same transaction rewrites any
// account it may touch. every account is visited in full: the loop
// never returns early
func CleanupFileGrants(trx storage.Transaction, files ...*record.File) {
	fileIds := make(map[string]struct{}, len(files))
	requestIds := make(map[string]struct{})
	for _, file := range files {
		fileIds[file.Data.Id] = struct{}{}
		for _, request := range file.Data.Requests {
			requestIds[request.RequestId] = struct{}{}
		}
	}

	for _, stored := range AllAccounts() {
		changed := false

		for fileId := range fileIds {
			if stored.Account.HasFileAccess(fileId) {
				stored.Account.RemoveFileAllowed(fileId)
				changed = true
			}
		}

		for requestId := range requestIds {
			before := len(stored.Account.IncomingFileRequests) + len(stored.Account.OutgoingFileRequests)
			stored.Account.RemoveFileRequestRefs(requestId)
			if before != len(stored.Account.IncomingFileRequests)+len(stored.Account.OutgoingFileRequests) {
				changed = true
			}
		}

		if changed {
			SetAccount(trx, stored.Address, stored.Account)
		}
	}

	for _, file := range files {
		file.Data.Requests = []record.Request{}
	}
}

func purgeAccountRequestRefs(trx storage.Transaction, owner *address.Address, requestId string, collection bool) {
	account, ok := Account(owner)
	if !ok {
		// a timed transfer recipient may never have registered
		return
	}
	if collection {
		account.RemoveCollectionRequestRefs(requestId)
	} else {
		account.RemoveFileRequestRefs(requestId)
	}
	SetAccount(trx, owner, account)
}
