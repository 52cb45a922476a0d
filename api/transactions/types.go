// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/tx"
)

// Clause for json marshal.
type Clause struct {
	To   *farm.Address `json:"to"`
	Data hexutil.Bytes `json:"data"`
}

func (c *Clause) convert() (*tx.Clause, error) {
	if c.To == nil {
		return nil, errors.New("to: required")
	}
	return tx.NewClause(*c.To).WithData(c.Data), nil
}

// Transaction is a transaction sent on behalf of Caller.
type Transaction struct {
	Caller  farm.Address `json:"caller"`
	Clauses []*Clause    `json:"clauses"`
	Gas     uint64       `json:"gas,omitempty"`
	Nonce   uint64       `json:"nonce,omitempty"`
}

// CallData is a clause executed without changing the state.
type CallData struct {
	Caller farm.Address `json:"caller"`
	Clause
	Gas uint64 `json:"gas,omitempty"`
}

// Event for json marshal.
type Event struct {
	Address farm.Address   `json:"address"`
	Topics  []farm.Bytes32 `json:"topics"`
	Data    hexutil.Bytes  `json:"data"`
}

// Output of a clause.
type Output struct {
	Events []*Event      `json:"events"`
	Data   hexutil.Bytes `json:"data"`
}

// Receipt for json marshal.
type Receipt struct {
	TxID         farm.Bytes32 `json:"txID"`
	Origin       farm.Address `json:"origin"`
	BlockNumber  uint32       `json:"blockNumber"`
	GasUsed      uint64       `json:"gasUsed"`
	Reverted     bool         `json:"reverted"`
	RevertReason string       `json:"revertReason,omitempty"`
	Outputs      []*Output    `json:"outputs"`
}

// CallResult is the output of a successful call.
type CallResult struct {
	Data    hexutil.Bytes `json:"data"`
	Events  []*Event      `json:"events"`
	GasUsed uint64        `json:"gasUsed"`
}

func convertEvents(events tx.Events) []*Event {
	result := make([]*Event, 0, len(events))
	for _, ev := range events {
		result = append(result, &Event{
			Address: ev.Address,
			Topics:  ev.Topics,
			Data:    ev.Data,
		})
	}
	return result
}

func convertReceipt(receipt *tx.Receipt) *Receipt {
	result := &Receipt{
		TxID:         receipt.TxID,
		Origin:       receipt.Origin,
		BlockNumber:  receipt.BlockNumber,
		GasUsed:      receipt.GasUsed,
		Reverted:     receipt.Reverted,
		RevertReason: receipt.RevertReason,
		Outputs:      make([]*Output, 0, len(receipt.Outputs)),
	}
	for _, output := range receipt.Outputs {
		result.Outputs = append(result.Outputs, &Output{
			Events: convertEvents(output.Events),
			Data:   output.Data,
		})
	}
	return result
}
