// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/filevaultd/address"
)

// Collection - a titled group of files transferred as one unit
type Collection struct {
	Id          string           `json:"id"`
	Title       string           `json:"title"`
	Owner       *address.Address `json:"owner"`
	FileIds     []string         `json:"fileIds"`
	TransferFee uint64           `json:"transferFee"`
	Requests    []Request        `json:"requests"`
}

// FindRequest - locate a pending request by id
func (collection *Collection) FindRequest(requestId string) (*Request, bool) {
	for i := range collection.Requests {
		if collection.Requests[i].RequestId == requestId {
			return &collection.Requests[i], true
		}
	}
	return nil, false
}

// RemoveRequest - strip a request from the pending list
func (collection *Collection) RemoveRequest(requestId string) {
	requests := collection.Requests[:0]
	for _, request := range collection.Requests {
		if request.RequestId != requestId {
			requests = append(requests, request)
		}
	}
	collection.Requests = requests
}

// HasFile - collection membership check
func (collection *Collection) HasFile(fileId string) bool {
	for _, id := range collection.FileIds {
		if id == fileId {
			return true
		}
	}
	return false
}
