// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/tx"
)

type LogMeta struct {
	BlockID        farm.Bytes32 `json:"blockID"`
	BlockNumber    uint32       `json:"blockNumber"`
	BlockTimestamp uint64       `json:"blockTimestamp"`
	TxID           farm.Bytes32 `json:"txID"`
	TxOrigin       farm.Address `json:"txOrigin"`
	ClauseIndex    uint32       `json:"clauseIndex"`
}

// EventMessage is pushed to subscribers for each matching event.
type EventMessage struct {
	Address farm.Address   `json:"address"`
	Topics  []farm.Bytes32 `json:"topics"`
	Data    hexutil.Bytes  `json:"data"`
	Meta    LogMeta        `json:"meta"`
}

func convertEvent(b *chain.Block, receipt *tx.Receipt, clauseIndex uint32, event *tx.Event) *EventMessage {
	return &EventMessage{
		Address: event.Address,
		Topics:  event.Topics,
		Data:    event.Data,
		Meta: LogMeta{
			BlockID:        b.ID(),
			BlockNumber:    b.Number(),
			BlockTimestamp: b.Timestamp(),
			TxID:           receipt.TxID,
			TxOrigin:       receipt.Origin,
			ClauseIndex:    clauseIndex,
		},
	}
}

// EventFilter matches events by emitter and topics, nil fields match anything.
type EventFilter struct {
	Address *farm.Address
	Topic0  *farm.Bytes32
	Topic1  *farm.Bytes32
	Topic2  *farm.Bytes32
	Topic3  *farm.Bytes32
	Topic4  *farm.Bytes32
}

func (ef *EventFilter) Match(event *tx.Event) bool {
	if ef.Address != nil && *ef.Address != event.Address {
		return false
	}

	matchTopic := func(topic *farm.Bytes32, index int) bool {
		if topic != nil {
			if len(event.Topics) <= index {
				return false
			}
			if *topic != event.Topics[index] {
				return false
			}
		}
		return true
	}

	return matchTopic(ef.Topic0, 0) &&
		matchTopic(ef.Topic1, 1) &&
		matchTopic(ef.Topic2, 2) &&
		matchTopic(ef.Topic3, 3) &&
		matchTopic(ef.Topic4, 4)
}
