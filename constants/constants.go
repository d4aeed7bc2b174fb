// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

// balance that must remain available after any fee bearing operation
// denominated in base units
const (
	Reserve uint64 = 5000000
)

// minimum declared transaction fees in base units
const (
	CreateFileFee       uint64 = 10000000000
	TimedTransferFee    uint64 = 2500000000
	CreateCollectionFee uint64 = 5000000000
)

// seconds a timed transfer remains claimable before the sweep removes it
const (
	DefaultExpiration int64 = 604800 // 7 days
)

// upper bound on collection membership
const (
	MaxFilesInCollection = 10
)
