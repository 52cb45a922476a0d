// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/vechain/tokenfarm/chain"
)

// blocks read per call
const readBatch = 16

type msgReader interface {
	Read() (msgs []any, hasMore bool, err error)
}

type eventReader struct {
	repo     *chain.Repository
	filter   *EventFilter
	position uint32 // next block to read
}

func newEventReader(repo *chain.Repository, position uint32, filter *EventFilter) *eventReader {
	return &eventReader{
		repo:     repo,
		filter:   filter,
		position: position,
	}
}

func (er *eventReader) Read() ([]any, bool, error) {
	best := er.repo.BestBlock().Number()
	if er.position > best {
		return nil, false, nil
	}

	var msgs []any
	for read := 0; read < readBatch && er.position <= best; read++ {
		b, err := er.repo.GetBlock(er.position)
		if err != nil {
			return nil, false, err
		}
		receipts, err := er.repo.GetBlockReceipts(er.position)
		if err != nil {
			return nil, false, err
		}
		for _, receipt := range receipts {
			for i, output := range receipt.Outputs {
				for _, event := range output.Events {
					if er.filter.Match(event) {
						msgs = append(msgs, convertEvent(b, receipt, uint32(i), event))
					}
				}
			}
		}
		er.position++
	}
	return msgs, er.position <= best, nil
}
