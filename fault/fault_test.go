// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/filevaultd/fault"
)

// test that the classification of an error is correct
func TestClassification(t *testing.T) {

	errorList := []struct {
		e        error
		balance  bool
		exists   bool
		invalid  bool
		notFound bool
		process  bool
	}{
		{fault.ErrInsufficientBalance, true, false, false, false, false},
		{fault.ErrDuplicateFile, false, true, false, false, false},
		{fault.ErrUsernameTaken, false, true, false, false, false},
		{fault.ErrInvalidTimestamp, false, false, true, false, false},
		{fault.ErrPartOfCollection, false, false, true, false, false},
		{fault.ErrFileNotFound, false, false, false, true, false},
		{fault.ErrSenderNotInitialised, false, false, false, true, false},
		{fault.ErrAlreadyInitialised, false, false, false, false, true},
	}

	for i, item := range errorList {
		if fault.IsErrBalance(item.e) != item.balance {
			t.Errorf("%d: balance class mismatch for: %v", i, item.e)
		}
		if fault.IsErrExists(item.e) != item.exists {
			t.Errorf("%d: exists class mismatch for: %v", i, item.e)
		}
		if fault.IsErrInvalid(item.e) != item.invalid {
			t.Errorf("%d: invalid class mismatch for: %v", i, item.e)
		}
		if fault.IsErrNotFound(item.e) != item.notFound {
			t.Errorf("%d: not found class mismatch for: %v", i, item.e)
		}
		if fault.IsErrProcess(item.e) != item.process {
			t.Errorf("%d: process class mismatch for: %v", i, item.e)
		}
	}
}
