// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/logdb"
)

type LogMeta struct {
	BlockID        farm.Bytes32 `json:"blockID"`
	BlockNumber    uint32       `json:"blockNumber"`
	BlockTimestamp uint64       `json:"blockTimestamp"`
	TxID           farm.Bytes32 `json:"txID"`
	TxOrigin       farm.Address `json:"txOrigin"`
	ClauseIndex    uint32       `json:"clauseIndex"`
}

type FilteredEvent struct {
	Address farm.Address    `json:"address"`
	Topics  []*farm.Bytes32 `json:"topics"`
	Data    hexutil.Bytes   `json:"data"`
	Meta    LogMeta         `json:"meta"`
}

// convert a logdb.Event into a json format Event
func convertEvent(event *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Address: event.Address,
		Data:    event.Data,
		Meta: LogMeta{
			BlockID:        event.BlockID,
			BlockNumber:    event.BlockNumber,
			BlockTimestamp: event.BlockTime,
			TxID:           event.TxID,
			TxOrigin:       event.TxOrigin,
			ClauseIndex:    event.ClauseIndex,
		},
	}
	fe.Topics = make([]*farm.Bytes32, 0)
	for _, topic := range event.Topics {
		if topic != nil {
			fe.Topics = append(fe.Topics, topic)
		}
	}
	return fe
}

type EventCriteria struct {
	Address *farm.Address `json:"address"`
	TopicSet
}

type TopicSet struct {
	Topic0 *farm.Bytes32 `json:"topic0"`
	Topic1 *farm.Bytes32 `json:"topic1"`
	Topic2 *farm.Bytes32 `json:"topic2"`
	Topic3 *farm.Bytes32 `json:"topic3"`
	Topic4 *farm.Bytes32 `json:"topic4"`
}

// Range of block numbers, a missing To means the best block.
type Range struct {
	From *uint32 `json:"from,omitempty"`
	To   *uint32 `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
	Order       logdb.Order      `json:"order"`
}

func convertEventFilter(best uint32, filter *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		Order: filter.Order,
		Range: &logdb.Range{From: 0, To: best},
	}
	if filter.Range != nil {
		if filter.Range.From != nil {
			f.Range.From = *filter.Range.From
		}
		if filter.Range.To != nil && *filter.Range.To < best {
			f.Range.To = *filter.Range.To
		}
	}
	if filter.Options != nil {
		f.Options = &logdb.Options{
			Offset: filter.Options.Offset,
			Limit:  filter.Options.Limit,
		}
	}
	for _, c := range filter.CriteriaSet {
		f.CriteriaSet = append(f.CriteriaSet, &logdb.EventCriteria{
			Address: c.Address,
			Topics: [5]*farm.Bytes32{
				c.Topic0,
				c.Topic1,
				c.Topic2,
				c.Topic3,
				c.Topic4,
			},
		})
	}
	return f
}
