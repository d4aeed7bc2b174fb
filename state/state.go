// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - typed accessors over the storage pools
//
// the table blobs live under fixed keys; accounts and the reverse
// lookup maps are keyed individually. reads go through the storage
// overlay, so inside a transaction they observe uncommitted writes.
// writes always require the transaction handle
package state

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/storage"
)

// fixed keys for the table blobs
var (
	filesKey          = []byte("files")
	collectionsKey    = []byte("collections")
	timedTransfersKey = []byte("timedTransfers")
	statisticsKey     = []byte("statistics")
)

// blob wrappers
type filesBlob struct {
	Files []record.File `json:"files"`
}

type collectionsBlob struct {
	Collections []record.Collection `json:"collections"`
}

type timedTransfersBlob struct {
	TimedTransfers []record.TimedTransferSummary `json:"timedTransfers"`
}

// Files - the full file table
func Files() []record.File {
	buffer := storage.Pool.Files.Get(filesKey)
	if nil == buffer {
		return []record.File{}
	}
	var blob filesBlob
	err := json.Unmarshal(buffer, &blob)
	logger.PanicIfError("state.Files", err)
	return blob.Files
}

// SetFiles - replace the file table
func SetFiles(trx storage.Transaction, files []record.File) {
	buffer, err := json.Marshal(filesBlob{Files: files})
	logger.PanicIfError("state.SetFiles", err)
	trx.Put(storage.Pool.Files, filesKey, buffer)
}

// Collections - the full collection table
func Collections() []record.Collection {
	buffer := storage.Pool.Collections.Get(collectionsKey)
	if nil == buffer {
		return []record.Collection{}
	}
	var blob collectionsBlob
	err := json.Unmarshal(buffer, &blob)
	logger.PanicIfError("state.Collections", err)
	return blob.Collections
}

// SetCollections - replace the collection table
func SetCollections(trx storage.Transaction, collections []record.Collection) {
	buffer, err := json.Marshal(collectionsBlob{Collections: collections})
	logger.PanicIfError("state.SetCollections", err)
	trx.Put(storage.Pool.Collections, collectionsKey, buffer)
}

// TimedTransfers - pending timed transfer summaries
func TimedTransfers() []record.TimedTransferSummary {
	buffer := storage.Pool.TimedTransfers.Get(timedTransfersKey)
	if nil == buffer {
		return []record.TimedTransferSummary{}
	}
	var blob timedTransfersBlob
	err := json.Unmarshal(buffer, &blob)
	logger.PanicIfError("state.TimedTransfers", err)
	return blob.TimedTransfers
}

// SetTimedTransfers - replace the timed transfer table
func SetTimedTransfers(trx storage.Transaction, transfers []record.TimedTransferSummary) {
	buffer, err := json.Marshal(timedTransfersBlob{TimedTransfers: transfers})
	logger.PanicIfError("state.SetTimedTransfers", err)
	trx.Put(storage.Pool.TimedTransfers, timedTransfersKey, buffer)
}

// Statistics - aggregate counters
func Statistics() record.Statistics {
	buffer := storage.Pool.Statistics.Get(statisticsKey)
	if nil == buffer {
		return record.Statistics{}
	}
	var statistics record.Statistics
	err := json.Unmarshal(buffer, &statistics)
	logger.PanicIfError("state.Statistics", err)
	return statistics
}

// SetStatistics - replace the counters
func SetStatistics(trx storage.Transaction, statistics record.Statistics) {
	buffer, err := json.Marshal(statistics)
	logger.PanicIfError("state.SetStatistics", err)
	trx.Put(storage.Pool.Statistics, statisticsKey, buffer)
}
