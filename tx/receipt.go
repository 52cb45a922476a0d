// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tokenfarm/farm"
)

// Event represents a contract event log.
type Event struct {
	// address of the contract that generated the event
	Address farm.Address
	// list of topics provided by the contract, the event id first
	Topics []farm.Bytes32
	// supplied by the contract, usually ABI-encoded
	Data []byte
}

// Events slice of event logs.
type Events []*Event

// Output output of clause execution.
type Output struct {
	Events Events
	// ABI encoded return values
	Data []byte
}

// Receipt represents the results of a transaction.
type Receipt struct {
	TxID   farm.Bytes32
	Origin farm.Address
	// block in which the tx was executed
	BlockNumber uint32
	// gas used by this tx
	GasUsed uint64
	// if the tx reverted, all its clauses are rolled back
	Reverted bool
	// set on revert
	RevertReason string
	// outputs of each clause, empty when reverted
	Outputs []*Output
}

// Receipts slice of receipts.
type Receipts []*Receipt

// EncodeReceipts encodes receipts for storage.
func EncodeReceipts(receipts Receipts) ([]byte, error) {
	return rlp.EncodeToBytes(receipts)
}

// DecodeReceipts decodes stored receipts.
func DecodeReceipts(data []byte) (Receipts, error) {
	var receipts Receipts
	if err := rlp.DecodeBytes(data, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}
