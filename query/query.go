// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package query - read-only projections of the registry state
//
// no endpoint here mutates anything; pagination and filtering happen
// on loaded copies of the tables
package query

import (
	"sort"
	"strings"

	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/state"
)

// Page - pagination window; Limit of -1 means unlimited
type Page struct {
	Offset int
	Limit  int
}

// sort orders for the file listing
const (
	SortDateAsc  = "date:asc"
	SortDateDesc = "date:desc"
	SortSizeAsc  = "size:asc"
	SortSizeDesc = "size:desc"
)

// FileFilter - the file listing filter set
type FileFilter struct {
	Search    string // case-insensitive match on title, collection title and custom fields
	MimeType  string
	IsUpdated bool   // only files whose content was replaced after registration
	Sort      string // one of the Sort constants, default newest first
}

// Files - filtered, sorted, paginated file listing
//
// private files never appear in the listing; they remain reachable by
// direct id lookup
func Files(filter FileFilter, page Page) []record.File {
	files := state.Files()

	matched := make([]record.File, 0, len(files))
	for _, file := range files {
		if file.Data.Private {
			continue
		}
		if !matchFile(&file, &filter) {
			continue
		}
		matched = append(matched, file)
	}

	sortFiles(matched, filter.Sort)
	return paginateFiles(matched, page)
}

func matchFile(file *record.File, filter *FileFilter) bool {
	if "" != filter.MimeType && filter.MimeType != file.Data.Type {
		return false
	}
	if filter.IsUpdated && !file.IsUpdated() {
		return false
	}
	if "" != filter.Search {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(file.Data.Title), needle) &&
			!strings.Contains(strings.ToLower(file.Meta.Collection.Title), needle) &&
			!strings.Contains(strings.ToLower(string(file.Data.CustomFields)), needle) {
			return false
		}
	}
	return true
}

func sortFiles(files []record.File, order string) {
	switch order {
	case SortDateAsc:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Meta.CreatedAt.Unix < files[j].Meta.CreatedAt.Unix
		})
	case SortSizeAsc:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Data.Size < files[j].Data.Size
		})
	case SortSizeDesc:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Data.Size > files[j].Data.Size
		})
	default: // newest first
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Meta.CreatedAt.Unix > files[j].Meta.CreatedAt.Unix
		})
	}
}

func paginateFiles(files []record.File, page Page) []record.File {
	if page.Offset >= len(files) {
		return []record.File{}
	}
	files = files[page.Offset:]
	if page.Limit >= 0 && page.Limit < len(files) {
		files = files[:page.Limit]
	}
	return files
}

// FileById - direct lookup, private files included
func FileById(id string) (*record.File, bool) {
	files := state.Files()
	if i, ok := state.FindFile(files, id); ok {
		return &files[i], true
	}
	return nil, false
}

// FilesByIds - bulk direct lookup, unknown ids skipped
func FilesByIds(ids []string) []record.File {
	files := state.Files()
	result := make([]record.File, 0, len(ids))
	for _, id := range ids {
		if i, ok := state.FindFile(files, id); ok {
			result = append(result, files[i])
		}
	}
	return result
}

// FileByHash - lookup by current content-version hash
func FileByHash(hash string) (*record.File, bool) {
	files := state.Files()
	if i, ok := state.FindFileByHash(files, hash); ok {
		return &files[i], true
	}
	return nil, false
}

// FileByChecksum - lookup by content checksum
func FileByChecksum(checksum string) (*record.File, bool) {
	files := state.Files()
	if i, ok := state.FindFileByChecksum(files, checksum); ok {
		return &files[i], true
	}
	return nil, false
}

// Collections - paginated collection listing
func Collections(page Page) []record.Collection {
	collections := state.Collections()
	if page.Offset >= len(collections) {
		return []record.Collection{}
	}
	collections = collections[page.Offset:]
	if page.Limit >= 0 && page.Limit < len(collections) {
		collections = collections[:page.Limit]
	}
	return collections
}

// CollectionById - direct lookup
func CollectionById(id string) (*record.Collection, bool) {
	collections := state.Collections()
	if i, ok := state.FindCollection(collections, id); ok {
		return &collections[i], true
	}
	return nil, false
}

// CollectionsByIds - bulk direct lookup, unknown ids skipped
func CollectionsByIds(ids []string) []record.Collection {
	collections := state.Collections()
	result := make([]record.Collection, 0, len(ids))
	for _, id := range ids {
		if i, ok := state.FindCollection(collections, id); ok {
			result = append(result, collections[i])
		}
	}
	return result
}

// Statistics - the aggregate counters
func Statistics() record.Statistics {
	return state.Statistics()
}

// Account - one account by address
func Account(owner *address.Address) (*record.Account, bool) {
	return state.Account(owner)
}

// AccountIsInitialized - check the identity map is bound
func AccountIsInitialized(owner *address.Address) bool {
	account, ok := state.Account(owner)
	return ok && account.Initialised()
}

// EmailOrUsernameMap - reverse lookup trying email hash first
func EmailOrUsernameMap(key string) (*record.MapEntry, bool) {
	if entry, ok := state.EmailMap(key); ok {
		return entry, true
	}
	return state.UsernameMap(key)
}

// AccountIsTaken - an email is taken once it maps to a bound address;
// an unbound entry pre-registered by a timed transfer does not count
func AccountIsTaken(emailHash string) bool {
	entry, ok := state.EmailMap(emailHash)
	return ok && !entry.Address.IsZero()
}

// TimedTransfers - the pending transfer summaries
func TimedTransfers() []record.TimedTransferSummary {
	return state.TimedTransfers()
}
