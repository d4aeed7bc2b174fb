// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

// FileRequestRef - an account-side pointer to a pending file request
type FileRequestRef struct {
	FileId    string `json:"fileId"`
	RequestId string `json:"requestId"`
}

// CollectionRequestRef - an account-side pointer to a pending
// collection request
type CollectionRequestRef struct {
	CollectionId string `json:"collectionId"`
	RequestId    string `json:"requestId"`
}

// Identity - the immutable identity map set at initialisation
type Identity struct {
	EmailHash string `json:"emailHash"`
	Username  string `json:"username"`
}

// Account - per-address registry state
//
// the address is the storage key and is not repeated inside the record
type Account struct {
	FilesOwned                 []string               `json:"filesOwned"`
	FilesAllowed               []string               `json:"filesAllowed"`
	CollectionsOwned           []string               `json:"collectionsOwned"`
	CollectionsAllowed         []string               `json:"collectionsAllowed"`
	IncomingFileRequests       []FileRequestRef       `json:"incomingFileRequests"`
	OutgoingFileRequests       []FileRequestRef       `json:"outgoingFileRequests"`
	IncomingCollectionRequests []CollectionRequestRef `json:"incomingCollectionRequests"`
	OutgoingCollectionRequests []CollectionRequestRef `json:"outgoingCollectionRequests"`
	Identity                   Identity               `json:"identity"`
}

// NewAccount - an account with all lists empty
func NewAccount(emailHash string, username string) *Account {
	return &Account{
		FilesOwned:                 []string{},
		FilesAllowed:               []string{},
		CollectionsOwned:           []string{},
		CollectionsAllowed:         []string{},
		IncomingFileRequests:       []FileRequestRef{},
		OutgoingFileRequests:       []FileRequestRef{},
		IncomingCollectionRequests: []CollectionRequestRef{},
		OutgoingCollectionRequests: []CollectionRequestRef{},
		Identity: Identity{
			EmailHash: emailHash,
			Username:  username,
		},
	}
}

// Initialised - an account becomes usable once its identity map is set
func (account *Account) Initialised() bool {
	return nil != account && "" != account.Identity.EmailHash && "" != account.Identity.Username
}

// OwnsFile - membership test on filesOwned
func (account *Account) OwnsFile(fileId string) bool {
	return containsString(account.FilesOwned, fileId)
}

// HasFileAccess - membership test on filesAllowed
func (account *Account) HasFileAccess(fileId string) bool {
	return containsString(account.FilesAllowed, fileId)
}

// OwnsCollection - membership test on collectionsOwned
func (account *Account) OwnsCollection(collectionId string) bool {
	return containsString(account.CollectionsOwned, collectionId)
}

// AddFileOwned - append a file id, ignoring duplicates
func (account *Account) AddFileOwned(fileId string) {
	if !containsString(account.FilesOwned, fileId) {
		account.FilesOwned = append(account.FilesOwned, fileId)
	}
}

// RemoveFileOwned - drop a file id
func (account *Account) RemoveFileOwned(fileId string) {
	account.FilesOwned = removeString(account.FilesOwned, fileId)
}

// AddFileAllowed - append an access grant, ignoring duplicates
func (account *Account) AddFileAllowed(fileId string) {
	if !containsString(account.FilesAllowed, fileId) {
		account.FilesAllowed = append(account.FilesAllowed, fileId)
	}
}

// RemoveFileAllowed - revoke an access grant
func (account *Account) RemoveFileAllowed(fileId string) {
	account.FilesAllowed = removeString(account.FilesAllowed, fileId)
}

// AddCollectionOwned - append a collection id, ignoring duplicates
func (account *Account) AddCollectionOwned(collectionId string) {
	if !containsString(account.CollectionsOwned, collectionId) {
		account.CollectionsOwned = append(account.CollectionsOwned, collectionId)
	}
}

// RemoveCollectionOwned - drop a collection id
func (account *Account) RemoveCollectionOwned(collectionId string) {
	account.CollectionsOwned = removeString(account.CollectionsOwned, collectionId)
}

// AddIncomingFileRequest - record an incoming request pointer
func (account *Account) AddIncomingFileRequest(fileId string, requestId string) {
	account.IncomingFileRequests = append(account.IncomingFileRequests,
		FileRequestRef{FileId: fileId, RequestId: requestId})
}

// AddOutgoingFileRequest - record an outgoing request pointer
func (account *Account) AddOutgoingFileRequest(fileId string, requestId string) {
	account.OutgoingFileRequests = append(account.OutgoingFileRequests,
		FileRequestRef{FileId: fileId, RequestId: requestId})
}

// RemoveFileRequestRefs - purge a request id from both file request
// pointer lists
func (account *Account) RemoveFileRequestRefs(requestId string) {
	account.IncomingFileRequests = removeFileRef(account.IncomingFileRequests, requestId)
	account.OutgoingFileRequests = removeFileRef(account.OutgoingFileRequests, requestId)
}

// AddIncomingCollectionRequest - record an incoming request pointer
func (account *Account) AddIncomingCollectionRequest(collectionId string, requestId string) {
	account.IncomingCollectionRequests = append(account.IncomingCollectionRequests,
		CollectionRequestRef{CollectionId: collectionId, RequestId: requestId})
}

// AddOutgoingCollectionRequest - record an outgoing request pointer
func (account *Account) AddOutgoingCollectionRequest(collectionId string, requestId string) {
	account.OutgoingCollectionRequests = append(account.OutgoingCollectionRequests,
		CollectionRequestRef{CollectionId: collectionId, RequestId: requestId})
}

// RemoveCollectionRequestRefs - purge a request id from both
// collection request pointer lists
func (account *Account) RemoveCollectionRequestRefs(requestId string) {
	account.IncomingCollectionRequests = removeCollectionRef(account.IncomingCollectionRequests, requestId)
	account.OutgoingCollectionRequests = removeCollectionRef(account.OutgoingCollectionRequests, requestId)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	result := list[:0]
	for _, item := range list {
		if item != s {
			result = append(result, item)
		}
	}
	return result
}

func removeFileRef(list []FileRequestRef, requestId string) []FileRequestRef {
	result := list[:0]
	for _, item := range list {
		if item.RequestId != requestId {
			result = append(result, item)
		}
	}
	return result
}

func removeCollectionRef(list []CollectionRequestRef, requestId string) []CollectionRequestRef {
	result := list[:0]
	for _, item := range list {
		if item.RequestId != requestId {
			result = append(result, item)
		}
	}
	return result
}
