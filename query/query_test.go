// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package query_test

import (
	"crypto/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/query"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/state"
	"github.com/bitmark-inc/filevaultd/storage"
)

// test database file
const databaseFileName = "test"

func removeFiles() {
	os.RemoveAll(databaseFileName + ".leveldb")
}

// seed a small registry directly through the state layer
func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}

func makeAddress(t *testing.T) *address.Address {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		t.Fatalf("key generation failed: %s", err)
	}
	a, err := address.New(publicKey, true)
	if nil != err {
		t.Fatalf("address creation failed: %s", err)
	}
	return a
}

func seedFile(id string, title string, mimeType string, size uint64, createdAt int64, private bool, owner *address.Address) record.File {
	return record.File{
		Meta: record.Meta{
			CreatedAt:    record.NewDateTime(createdAt),
			LastModified: record.NewDateTime(createdAt),
		},
		Data: record.FileData{
			Id:       id,
			Title:    title,
			Name:     title + ".bin",
			Size:     size,
			Type:     mimeType,
			Checksum: "checksum-" + id,
			Hash:     "hash-" + id,
			Owner:    owner,
			Requests: []record.Request{},
			History:  []record.HistoryItem{},
			Private:  private,
		},
	}
}

func storeFiles(t *testing.T, files []record.File) {
	t.Helper()
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	state.SetFiles(trx, files)
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestFileListing(t *testing.T) {
	setup(t)
	defer teardown(t)

	owner := makeAddress(t)
	storeFiles(t, []record.File{
		seedFile("f1", "Quarterly Report", "application/pdf", 100, 1000, false, owner),
		seedFile("f2", "holiday photo", "image/jpeg", 5000, 2000, false, owner),
		seedFile("f3", "secret notes", "text/plain", 50, 3000, true, owner),
		seedFile("f4", "report appendix", "application/pdf", 300, 4000, false, owner),
	})

	// default order is newest first, private excluded
	files := query.Files(query.FileFilter{}, query.Page{Limit: -1})
	assert.Equal(t, 3, len(files))
	assert.Equal(t, "f4", files[0].Data.Id)
	assert.Equal(t, "f2", files[1].Data.Id)
	assert.Equal(t, "f1", files[2].Data.Id)

	// substring search is case-insensitive
	files = query.Files(query.FileFilter{Search: "REPORT"}, query.Page{Limit: -1})
	assert.Equal(t, 2, len(files))

	// mime type filter
	files = query.Files(query.FileFilter{MimeType: "image/jpeg"}, query.Page{Limit: -1})
	assert.Equal(t, 1, len(files))
	assert.Equal(t, "f2", files[0].Data.Id)

	// explicit sort orders
	files = query.Files(query.FileFilter{Sort: query.SortDateAsc}, query.Page{Limit: -1})
	assert.Equal(t, "f1", files[0].Data.Id)
	files = query.Files(query.FileFilter{Sort: query.SortSizeDesc}, query.Page{Limit: -1})
	assert.Equal(t, "f2", files[0].Data.Id)

	// pagination
	files = query.Files(query.FileFilter{}, query.Page{Offset: 1, Limit: 1})
	assert.Equal(t, 1, len(files))
	assert.Equal(t, "f2", files[0].Data.Id)
	files = query.Files(query.FileFilter{}, query.Page{Offset: 10, Limit: -1})
	assert.Equal(t, 0, len(files))
	files = query.Files(query.FileFilter{}, query.Page{Limit: 0})
	assert.Equal(t, 0, len(files))
}

func TestUpdatedFilter(t *testing.T) {
	setup(t)
	defer teardown(t)

	owner := makeAddress(t)
	unchanged := seedFile("f1", "stable", "text/plain", 10, 1000, false, owner)
	changed := seedFile("f2", "edited", "text/plain", 10, 1000, false, owner)
	changed.Meta.LastModified = record.NewDateTime(2000)
	storeFiles(t, []record.File{unchanged, changed})

	files := query.Files(query.FileFilter{IsUpdated: true}, query.Page{Limit: -1})
	assert.Equal(t, 1, len(files))
	assert.Equal(t, "f2", files[0].Data.Id)
}

func TestDirectLookups(t *testing.T) {
	setup(t)
	defer teardown(t)

	owner := makeAddress(t)
	storeFiles(t, []record.File{
		seedFile("f1", "public", "text/plain", 10, 1000, false, owner),
		seedFile("f2", "hidden", "text/plain", 10, 1000, true, owner),
	})

	// private files stay reachable by id, hash and checksum
	file, ok := query.FileById("f2")
	assert.True(t, ok)
	assert.Equal(t, "hidden", file.Data.Title)

	file, ok = query.FileByHash("hash-f2")
	assert.True(t, ok)
	assert.Equal(t, "f2", file.Data.Id)

	file, ok = query.FileByChecksum("checksum-f1")
	assert.True(t, ok)
	assert.Equal(t, "f1", file.Data.Id)

	_, ok = query.FileById("missing")
	assert.False(t, ok)

	// bulk lookup skips unknown ids
	files := query.FilesByIds([]string{"f1", "missing", "f2"})
	assert.Equal(t, 2, len(files))
}

func TestCollections(t *testing.T) {
	setup(t)
	defer teardown(t)

	owner := makeAddress(t)
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	state.SetCollections(trx, []record.Collection{
		{Id: "c1", Title: "first", Owner: owner, FileIds: []string{}, Requests: []record.Request{}},
		{Id: "c2", Title: "second", Owner: owner, FileIds: []string{}, Requests: []record.Request{}},
		{Id: "c3", Title: "third", Owner: owner, FileIds: []string{}, Requests: []record.Request{}},
	})
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	collections := query.Collections(query.Page{Limit: -1})
	assert.Equal(t, 3, len(collections))

	collections = query.Collections(query.Page{Offset: 1, Limit: 1})
	assert.Equal(t, 1, len(collections))
	assert.Equal(t, "c2", collections[0].Id)

	collection, ok := query.CollectionById("c3")
	assert.True(t, ok)
	assert.Equal(t, "third", collection.Title)

	collections = query.CollectionsByIds([]string{"c1", "missing"})
	assert.Equal(t, 1, len(collections))
}

func TestAccountLookups(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	stranger := makeAddress(t)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	account := record.NewAccount("e1e1", "alice")
	state.SetAccount(trx, alice, account)
	state.SetEmailMap(trx, "e1e1", &record.MapEntry{
		Address:   alice,
		Username:  "alice",
		EmailHash: "e1e1",
	})
	state.SetUsernameMap(trx, "alice", &record.MapEntry{
		Address:   alice,
		Username:  "alice",
		EmailHash: "e1e1",
	})
	// an unbound entry left by a timed transfer to an unknown email
	state.SetEmailMap(trx, "e2e2", &record.MapEntry{EmailHash: "e2e2"})
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	loaded, ok := query.Account(alice)
	assert.True(t, ok)
	assert.Equal(t, "alice", loaded.Identity.Username)
	assert.True(t, query.AccountIsInitialized(alice))
	assert.False(t, query.AccountIsInitialized(stranger))

	// reverse lookup tries email hash first, then username
	entry, ok := query.EmailOrUsernameMap("e1e1")
	assert.True(t, ok)
	assert.True(t, alice.Equal(entry.Address))
	entry, ok = query.EmailOrUsernameMap("alice")
	assert.True(t, ok)
	assert.True(t, alice.Equal(entry.Address))
	_, ok = query.EmailOrUsernameMap("nobody")
	assert.False(t, ok)

	// only a bound address makes an email taken
	assert.True(t, query.AccountIsTaken("e1e1"))
	assert.False(t, query.AccountIsTaken("e2e2"))
	assert.False(t, query.AccountIsTaken("e3e3"))
}
