// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"crypto/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/record"
	"github.com/bitmark-inc/filevaultd/state"
	"github.com/bitmark-inc/filevaultd/storage"
)

const databaseFileName = "test"

func removeFiles() {
	os.RemoveAll(databaseFileName + ".leveldb")
}

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

func begin(t *testing.T) storage.Transaction {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	return trx
}

func commit(t *testing.T, trx storage.Transaction) {
	err := trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestTableBlobs(t *testing.T) {
	setup(t)
	defer teardown(t)

	// empty state yields empty tables
	assert.Empty(t, state.Files())
	assert.Empty(t, state.Collections())
	assert.Empty(t, state.TimedTransfers())
	assert.Equal(t, record.Statistics{}, state.Statistics())

	owner := makeAddress(t)

	trx := begin(t)
	files := []record.File{{
		Data: record.FileData{
			Id:       "f1",
			Title:    "report",
			Checksum: "aa",
			Owner:    owner,
		},
	}}
	state.SetFiles(trx, files)
	state.SetStatistics(trx, record.Statistics{Files: 1})
	commit(t, trx)

	loaded := state.Files()
	assert.Len(t, loaded, 1)
	assert.Equal(t, "f1", loaded[0].Data.Id)
	assert.True(t, owner.Equal(loaded[0].Data.Owner))
	assert.Equal(t, uint64(1), state.Statistics().Files)
}

func TestAccountRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	owner := makeAddress(t)

	_, ok := state.Account(owner)
	assert.False(t, ok)

	trx := begin(t)
	account := record.NewAccount("ab", "alice")
	account.AddFileOwned("f1")
	state.SetAccount(trx, owner, account)

	// read-your-writes inside the transaction
	loaded, ok := state.Account(owner)
	assert.True(t, ok)
	assert.Equal(t, []string{"f1"}, loaded.FilesOwned)

	commit(t, trx)

	loaded, ok = state.Account(owner)
	assert.True(t, ok)
	assert.Equal(t, "alice", loaded.Identity.Username)
}

func TestAllAccounts(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	bob := makeAddress(t)

	trx := begin(t)
	state.SetAccount(trx, alice, record.NewAccount("a1", "alice"))
	state.SetAccount(trx, bob, record.NewAccount("b1", "bob"))
	commit(t, trx)

	accounts := state.AllAccounts()
	assert.Len(t, accounts, 2)

	usernames := map[string]bool{}
	for _, stored := range accounts {
		usernames[stored.Account.Identity.Username] = true
	}
	assert.True(t, usernames["alice"])
	assert.True(t, usernames["bob"])
}

func TestMaps(t *testing.T) {
	setup(t)
	defer teardown(t)

	owner := makeAddress(t)

	trx := begin(t)
	entry := &record.MapEntry{
		Address:   owner,
		Username:  "alice",
		EmailHash: "ab12",
	}
	state.SetEmailMap(trx, "ab12", entry)
	state.SetUsernameMap(trx, "alice", entry)
	commit(t, trx)

	loaded, ok := state.EmailMap("ab12")
	assert.True(t, ok)
	assert.Equal(t, "alice", loaded.Username)

	loaded, ok = state.UsernameMap("alice")
	assert.True(t, ok)
	assert.True(t, owner.Equal(loaded.Address))

	_, ok = state.EmailMap("missing")
	assert.False(t, ok)
}

func TestFileRequestBookkeeping(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	bob := makeAddress(t)

	trx := begin(t)
	state.SetAccount(trx, alice, record.NewAccount("a1", "alice"))
	state.SetAccount(trx, bob, record.NewAccount("b1", "bob"))
	commit(t, trx)

	file := &record.File{Data: record.FileData{Id: "f1", Owner: bob}}

	trx = begin(t)
	err := state.AddFileRequest(trx, file, record.Request{
		RequestId: "r1",
		Type:      record.RequestOwnership,
		Sender:    alice,
		Recipient: bob,
	})
	assert.NoError(t, err)
	commit(t, trx)

	assert.Len(t, file.Data.Requests, 1)

	aliceAccount, _ := state.Account(alice)
	bobAccount, _ := state.Account(bob)
	assert.Len(t, aliceAccount.OutgoingFileRequests, 1)
	assert.Len(t, bobAccount.IncomingFileRequests, 1)

	trx = begin(t)
	err = state.RemoveFileRequest(trx, file, "r1")
	assert.NoError(t, err)
	commit(t, trx)

	assert.Empty(t, file.Data.Requests)

	aliceAccount, _ = state.Account(alice)
	bobAccount, _ = state.Account(bob)
	assert.Empty(t, aliceAccount.OutgoingFileRequests)
	assert.Empty(t, bobAccount.IncomingFileRequests)
}

func TestRemoveMissingRequest(t *testing.T) {
	setup(t)
	defer teardown(t)

	file := &record.File{Data: record.FileData{Id: "f1"}}

	trx := begin(t)
	defer trx.Abort()

	err := state.RemoveFileRequest(trx, file, "missing")
	assert.Error(t, err)
}

func TestCleanupFileGrants(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := makeAddress(t)
	bob := makeAddress(t)
	carol := makeAddress(t)

	trx := begin(t)
	aliceAccount := record.NewAccount("a1", "alice")
	aliceAccount.AddFileAllowed("f1")
	state.SetAccount(trx, alice, aliceAccount)

	bobAccount := record.NewAccount("b1", "bob")
	bobAccount.AddIncomingFileRequest("f1", "r1")
	state.SetAccount(trx, bob, bobAccount)

	carolAccount := record.NewAccount("c1", "carol")
	carolAccount.AddOutgoingFileRequest("f1", "r1")
	carolAccount.AddFileAllowed("f2") // unrelated grant survives
	state.SetAccount(trx, carol, carolAccount)
	commit(t, trx)

	file := &record.File{Data: record.FileData{
		Id: "f1",
		Requests: []record.Request{
			{RequestId: "r1", Type: record.RequestOwnership, Sender: carol, Recipient: bob},
		},
	}}

	trx = begin(t)
	state.CleanupFileGrants(trx, file)
	commit(t, trx)

	assert.Empty(t, file.Data.Requests)

	loaded, _ := state.Account(alice)
	assert.False(t, loaded.HasFileAccess("f1"))

	loaded, _ = state.Account(bob)
	assert.Empty(t, loaded.IncomingFileRequests)

	loaded, _ = state.Account(carol)
	assert.Empty(t, loaded.OutgoingFileRequests)
	assert.True(t, loaded.HasFileAccess("f2"))
}
