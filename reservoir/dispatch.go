// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"encoding/json"

	"github.com/bitmark-inc/filevaultd/fault"
)

// Dispatch - decode transaction parameters for a tagged command
func Dispatch(tag TagType, params []byte) (Transaction, error) {

	var tx Transaction
	switch tag {
	case InitializeAccountTag:
		tx = &InitializeAccount{}
	case CreateFileTag:
		tx = &CreateFile{}
	case UpdateFileTag:
		tx = &UpdateFile{}
	case CreateCollectionTag:
		tx = &CreateCollection{}
	case UpdateCollectionTag:
		tx = &UpdateCollection{}
	case RespondToFileRequestTag:
		tx = &RespondToFileRequest{}
	case RespondToCollectionRequestTag:
		tx = &RespondToCollectionRequest{}
	case RequestFileTransferTag:
		tx = &RequestFileTransfer{}
	case RequestFileOwnershipTag:
		tx = &RequestFileOwnership{}
	case RequestFileAccessTag:
		tx = &RequestFileAccess{}
	case TimedTransferTag:
		tx = &TimedTransfer{}
	case RequestCollectionTransferTag:
		tx = &RequestCollectionTransfer{}
	case RequestCollectionOwnershipTag:
		tx = &RequestCollectionOwnership{}
	case CancelRequestTag:
		tx = &CancelRequest{}
	default:
		return nil, fault.ErrUnknownTransactionTag
	}

	err := json.Unmarshal(params, tx)
	if nil != err {
		return nil, err
	}
	return tx, nil
}
