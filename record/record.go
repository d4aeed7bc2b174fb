// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the entities held in the registry state
//
// all records marshal to JSON blobs for the storage pools; the address
// fields use the Base58 text form via encoding.TextMarshaler
package record

import (
	"time"

	"github.com/bitmark-inc/filevaultd/address"
)

// DateTime - a unix timestamp paired with its human readable form
type DateTime struct {
	Unix  int64  `json:"unix"`
	Human string `json:"human"`
}

// NewDateTime - build the pair from a unix timestamp
func NewDateTime(unix int64) DateTime {
	return DateTime{
		Unix:  unix,
		Human: time.Unix(unix, 0).UTC().Format(time.RFC3339),
	}
}

// RequestType - the kind of right a pending request asks for
type RequestType string

const (
	RequestOwnership        RequestType = "ownership"
	RequestAccessPermission RequestType = "accessPermission"
	RequestTransfer         RequestType = "transfer"
	RequestTimedTransfer    RequestType = "timedTransfer"
)

// HistoryType - activities recorded in a file's audit trail
type HistoryType string

const (
	HistoryRegistration             HistoryType = "registration"
	HistoryTransfer                 HistoryType = "transfer"
	HistoryAccessPermission         HistoryType = "accessPermission"
	HistoryTimedTransferSubmission  HistoryType = "timedTransferSubmission"
	HistoryTimedTransferResponse    HistoryType = "timedTransferResponse"
	HistoryAddedToCollection        HistoryType = "addedToCollection"
	HistoryRemovedFromCollection    HistoryType = "removedFromCollection"
	HistoryTransferredViaCollection HistoryType = "transferredViaCollection"
)

// HistoryItem - one append-only audit trail entry on a file
type HistoryItem struct {
	Id          string           `json:"id"`
	CreatedAt   DateTime         `json:"createdAt"`
	Activity    HistoryType      `json:"activity"`
	UserAddress *address.Address `json:"userAddress"`
}

// Request - a pending request against a file or collection
//
// the same record is mirrored in the sender's outgoing list and the
// recipient's incoming list; the three copies are always added and
// removed together
type Request struct {
	RequestId string           `json:"requestId"`
	Type      RequestType      `json:"type"`
	Sender    *address.Address `json:"sender"`
	Recipient *address.Address `json:"recipient"`
}

// TimedTransferSummary - a file sent to a possibly unregistered email,
// pending claim or expiry
type TimedTransferSummary struct {
	Id                 string           `json:"id"`
	Expiration         DateTime         `json:"expiration"`
	Sender             *address.Address `json:"sender"`
	RecipientEmailHash string           `json:"recipientEmailHash"`
}

// Statistics - aggregate registry counters
type Statistics struct {
	Accounts    uint64 `json:"accounts"`
	Files       uint64 `json:"files"`
	Transfers   uint64 `json:"transfers"`
	Collections uint64 `json:"collections"`
}

// MapEntry - reverse lookup value for the email and username maps
type MapEntry struct {
	Address   *address.Address `json:"address"`
	Username  string           `json:"username"`
	EmailHash string           `json:"emailHash"`
}
