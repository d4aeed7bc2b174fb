// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validate - stateless predicates shared by the command handlers
// and the query endpoints
package validate

import (
	"time"
)

// Checksum - content checksum must be 64 hexadecimal characters
func Checksum(s string) bool {
	return isHex(s, 64)
}

// EmailHash - sha256 hex digest, 64 hexadecimal characters
func EmailHash(s string) bool {
	return isHex(s, 64)
}

// HexId - transaction and entity ids are non-empty hexadecimal strings
func HexId(s string) bool {
	return len(s) > 0 && isHex(s, len(s))
}

// ContentHash - the mutable content-version hash
//
// the hash algorithm is decided by the storage client, so only require
// a non-empty value here
func ContentHash(s string) bool {
	return len(s) > 0
}

// PastTimestamp - a command timestamp must be strictly before the
// current wall-clock time
func PastTimestamp(ts int64) bool {
	return ts < time.Now().UTC().Unix()
}

// HasDuplicates - detect duplicate entries in a list of ids
func HasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

func isHex(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
