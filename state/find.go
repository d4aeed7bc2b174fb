// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/filevaultd/record"
)

// FindFile - locate a file in a loaded table by id
func FindFile(files []record.File, id string) (int, bool) {
	for i := range files {
		if files[i].Data.Id == id {
			return i, true
		}
	}
	return -1, false
}

// FindFileByChecksum - locate a file by its content checksum
func FindFileByChecksum(files []record.File, checksum string) (int, bool) {
	for i := range files {
		if files[i].Data.Checksum == checksum {
			return i, true
		}
	}
	return -1, false
}

// FindFileByHash - locate a file by its current content-version hash
func FindFileByHash(files []record.File, hash string) (int, bool) {
	for i := range files {
		if files[i].Data.Hash == hash {
			return i, true
		}
	}
	return -1, false
}

// FindCollection - locate a collection in a loaded table by id
func FindCollection(collections []record.Collection, id string) (int, bool) {
	for i := range collections {
		if collections[i].Id == id {
			return i, true
		}
	}
	return -1, false
}

// FindCollectionByTitle - locate a collection by its unique title
func FindCollectionByTitle(collections []record.Collection, title string) (int, bool) {
	for i := range collections {
		if collections[i].Title == title {
			return i, true
		}
	}
	return -1, false
}

// FindTimedTransfer - locate a timed transfer summary by file id
func FindTimedTransfer(transfers []record.TimedTransferSummary, id string) (int, bool) {
	for i := range transfers {
		if transfers[i].Id == id {
			return i, true
		}
	}
	return -1, false
}
