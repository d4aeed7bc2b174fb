// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/filevaultd/address"
)

// CollectionRef - back-reference from a file to its owning collection
//
// both fields are empty when the file is not in a collection
type CollectionRef struct {
	Id    string `json:"id"`
	Title string `json:"title"`
}

// Meta - lifecycle timestamps and collection membership of a file
type Meta struct {
	CreatedAt    DateTime      `json:"createdAt"`
	LastModified DateTime      `json:"lastModified"`
	Expiration   DateTime      `json:"expiration"`
	Collection   CollectionRef `json:"collection"`
}

// FileData - the registered properties of a file
type FileData struct {
	Id                  string           `json:"id"`
	Title               string           `json:"title"`
	Name                string           `json:"name"`
	Size                uint64           `json:"size"`
	Type                string           `json:"type"`
	Checksum            string           `json:"checksum"`
	Hash                string           `json:"hash"`
	Owner               *address.Address `json:"owner"`
	CustomFields        []byte           `json:"customFields"`
	TransferFee         uint64           `json:"transferFee"`
	AccessPermissionFee uint64           `json:"accessPermissionFee"`
	Requests            []Request        `json:"requests"`
	History             []HistoryItem    `json:"history"`
	Private             bool             `json:"private"`
}

// File - one registered file
type File struct {
	Meta Meta     `json:"meta"`
	Data FileData `json:"data"`
}

// InCollection - check the collection back-reference
func (file *File) InCollection() bool {
	return "" != file.Meta.Collection.Id
}

// FindRequest - locate a pending request by id
func (file *File) FindRequest(requestId string) (*Request, bool) {
	for i := range file.Data.Requests {
		if file.Data.Requests[i].RequestId == requestId {
			return &file.Data.Requests[i], true
		}
	}
	return nil, false
}

// RemoveRequest - strip a request from the pending list
func (file *File) RemoveRequest(requestId string) {
	requests := file.Data.Requests[:0]
	for _, request := range file.Data.Requests {
		if request.RequestId != requestId {
			requests = append(requests, request)
		}
	}
	file.Data.Requests = requests
}

// AddHistory - append an audit trail entry
func (file *File) AddHistory(txId string, createdAt int64, activity HistoryType, user *address.Address) {
	file.Data.History = append(file.Data.History, HistoryItem{
		Id:          txId,
		CreatedAt:   NewDateTime(createdAt),
		Activity:    activity,
		UserAddress: user,
	})
}

// IsUpdated - true once the content hash has been replaced after
// registration
func (file *File) IsUpdated() bool {
	return file.Meta.CreatedAt.Unix != file.Meta.LastModified.Unix
}
