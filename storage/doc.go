// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk registry state
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. address      = key-variant byte ++ ed25519 public key (33 bytes)
// 4. *others*     = byte values of various length
//
// Registry:
//
//   F ++ "files"          - the file table
//                           data: JSON { files: [...] }
//   C ++ "collections"    - the collection table
//                           data: JSON { collections: [...] }
//   W ++ "timedTransfers" - pending timed transfers
//                           data: JSON { timedTransfers: [...] }
//   S ++ "statistics"     - aggregate counters
//                           data: JSON { accounts, files, transfers, collections }
//
// Accounts:
//
//   A ++ address          - per-account registry state
//                           data: JSON account record
//   E ++ emailHash        - email reverse lookup
//                           data: JSON map entry
//   U ++ username         - username reverse lookup
//                           data: JSON map entry
//
// Testing:
//   Z ++ key              - testing data
package storage
