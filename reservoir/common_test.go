// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/constants"
	"github.com/bitmark-inc/filevaultd/reservoir"
	"github.com/bitmark-inc/filevaultd/storage"
	"github.com/bitmark-inc/filevaultd/token"
)

// test directory and database
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"
)

// a balance well above the retained reserve
const richBalance = 100 * constants.CreateFileFee

var ledger *token.MemoryLedger

var txSequence int

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	ledger = token.NewMemoryLedger()
	err = reservoir.Initialise(ledger, constants.DefaultExpiration)
	if nil != err {
		t.Fatalf("reservoir initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	_ = reservoir.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// makeAddress - a fresh test-network address
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

// context - a fresh transaction context with a unique id
func context(sender *address.Address, fee uint64) *reservoir.Context {
	txSequence += 1
	return &reservoir.Context{
		TxId:   fmt.Sprintf("%08x", txSequence),
		Sender: sender,
		Fee:    fee,
	}
}

func pastTime() int64 {
	return time.Now().UTC().Unix() - 10
}

// execute - run a transaction and fail the test if it is absorbed
func execute(t *testing.T, tx reservoir.Transaction, ctx *reservoir.Context) {
	t.Helper()
	outcome := reservoir.Execute(tx, ctx)
	if !outcome.Applied {
		t.Fatalf("transaction not applied: %s", outcome.Err)
	}
}

// initAccount - register an account with a funded balance
func initAccount(t *testing.T, owner *address.Address, emailHash string, username string) {
	t.Helper()
	ledger.Deposit(owner, richBalance)
	execute(t, &reservoir.InitializeAccount{
		EmailHash: emailHash,
		Username:  username,
		Timestamp: pastTime(),
	}, context(owner, 0))
}

// createFile - register a simple file and return its id
func createFile(t *testing.T, owner *address.Address, checksum string, hash string, transferFee uint64, accessFee uint64) string {
	t.Helper()
	ctx := context(owner, constants.CreateFileFee)
	execute(t, &reservoir.CreateFile{
		Title:               "title " + checksum[:8],
		Name:                "file.bin",
		Size:                1024,
		Type:                "application/octet-stream",
		Checksum:            checksum,
		Hash:                hash,
		TransferFee:         transferFee,
		AccessPermissionFee: accessFee,
		Timestamp:           pastTime(),
	}, ctx)
	return ctx.TxId
}

// checksumFill - a well-formed checksum from a single character
func checksumFill(c byte) string {
	buffer := make([]byte, 64)
	for i := range buffer {
		buffer[i] = c
	}
	return string(buffer)
}
