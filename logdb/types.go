// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/tx"
)

// Event represents tx.Event that can be stored in db.
type Event struct {
	BlockNumber uint32
	Index       uint32
	BlockID     farm.Bytes32
	BlockTime   uint64
	TxID        farm.Bytes32
	TxOrigin    farm.Address // who sent the transaction
	ClauseIndex uint32
	Address     farm.Address // always a contract address
	Topics      [5]*farm.Bytes32
	Data        []byte
}

func newEvent(b *chain.Block, index uint32, receipt *tx.Receipt, clauseIndex uint32, ev *tx.Event) *Event {
	event := &Event{
		BlockNumber: b.Number(),
		Index:       index,
		BlockID:     b.ID(),
		BlockTime:   b.Timestamp(),
		TxID:        receipt.TxID,
		TxOrigin:    receipt.Origin,
		ClauseIndex: clauseIndex,
		Address:     ev.Address,
		Data:        ev.Data,
	}
	for i := 0; i < len(ev.Topics) && i < len(event.Topics); i++ {
		topic := ev.Topics[i]
		event.Topics[i] = &topic
	}
	return event
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block number range.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events by emitter and topics, nil fields match anything.
type EventCriteria struct {
	Address *farm.Address
	Topics  [5]*farm.Bytes32
}

// EventFilter selects events matching any of the criteria.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
