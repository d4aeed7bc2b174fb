// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type BalanceError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountAlreadyInitialised    = ExistsError("account is already initialised")
	ErrAlreadyHasAccess             = ExistsError("sender already has access")
	ErrAlreadyInitialised           = ProcessError("already initialised")
	ErrAlreadyOwner                 = ExistsError("sender is already owner")
	ErrAmbiguousCancelTarget        = InvalidError("only one of collection id or file id can be supplied")
	ErrCannotDecodeAddress          = InvalidError("cannot decode address")
	ErrCollectionAlreadyExists      = ExistsError("collection already exists")
	ErrCollectionIsEmpty            = InvalidError("collection is empty")
	ErrCollectionNotFound           = NotFoundError("collection not found")
	ErrDuplicateFile                = ExistsError("file already exists")
	ErrDuplicateFileIds             = InvalidError("file ids contain duplicates")
	ErrDuplicateRequest             = ExistsError("a pending request already exists")
	ErrFileNotFound                 = NotFoundError("file not found")
	ErrInsufficientBalance          = BalanceError("fee exceeds available balance")
	ErrInvalidChecksum              = InvalidError("checksum is invalid")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidCursor                = InvalidError("invalid cursor")
	ErrInvalidContentHash           = InvalidError("content hash is invalid")
	ErrInvalidEmailHash             = InvalidError("email hash is invalid")
	ErrInvalidId                    = InvalidError("id is invalid")
	ErrInvalidKeyLength             = InvalidError("key length is invalid")
	ErrInvalidTimestamp             = InvalidError("timestamp is invalid")
	ErrMissingCancelTarget          = InvalidError("a collection id or file id is required")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrMissingUpdatedHash           = InvalidError("no updated hash supplied for file")
	ErrNoChangesDetected            = InvalidError("no changes detected")
	ErrNotCollectionOwner           = InvalidError("sender is not owner of collection")
	ErrNotFileOwner                 = InvalidError("sender is not owner of file")
	ErrNotInitialised               = ProcessError("not initialised")
	ErrNotRequestParty              = InvalidError("sender is not a party to the request")
	ErrNotRequestRecipient          = InvalidError("sender is not the recipient of the request")
	ErrNotPublicKey                 = InvalidError("not a public key")
	ErrOwnerNotInitialised          = NotFoundError("owner account is not initialised")
	ErrPartOfCollection             = InvalidError("file is part of a collection")
	ErrPendingRequestsExist         = InvalidError("pending requests block this update")
	ErrRecipientNotInitialised      = NotFoundError("recipient account is not initialised")
	ErrRequestNotFound              = NotFoundError("request not found")
	ErrRequesterNotInitialised      = NotFoundError("requester account is not initialised")
	ErrSelfTransferForbidden        = InvalidError("sender can not be recipient")
	ErrSenderNotInitialised         = NotFoundError("sender account is not initialised")
	ErrTooManyFilesInCollection     = InvalidError("collection file limit exceeded")
	ErrTransactionFeeTooLow         = InvalidError("transaction fee is too low")
	ErrTransactionInUse             = ProcessError("transaction already in use")
	ErrUnknownTransactionTag        = InvalidError("unknown transaction tag")
	ErrUsernameTaken                = ExistsError("username is already registered")
	ErrWrongNetworkForPublicKey     = InvalidError("wrong network for public key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e BalanceError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrBalance(e error) bool  { _, ok := e.(BalanceError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
